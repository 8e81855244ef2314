// hubctl is a command-line consumer of the Projects Hub API: account signup
// and login, organization management, and member invitations. The session
// survives between invocations in a local file, so protected commands work
// until the refresh token lapses.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/projectshub/go-hub-client/apiclient"
	"github.com/projectshub/go-hub-client/auth"
	"github.com/projectshub/go-hub-client/internal/config"
	"github.com/projectshub/go-hub-client/organizations"
	"github.com/projectshub/go-hub-client/sessions"
)

const usageText = `Usage: hubctl <command> [flags]

Commands:
  signup    -first NAME -last NAME -email EMAIL -password PASSWORD
  login     -email EMAIL -password PASSWORD [-force]
  logout
  whoami
  refresh
  test
  org create  -name NAME [-plan FREE|PREMIUM|PRO]
  org list
  org members -org ORGANIZATION_ID
  org invite  -org ORGANIZATION_ID -email EMAIL [-manager]
  invite preview -token TOKEN
  invite accept  -token TOKEN

Environment:
  HUB_API_BASE_URL  remote API base URL (default http://localhost:8080)
  HUB_SESSION_FILE  session file path (default ~/.projects-hub/session.json)
  HUB_HTTP_TIMEOUT  per-request timeout (default 15s)
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

type app struct {
	cfg         config.Config
	coordinator *auth.Coordinator
	orgs        *organizations.Service
}

func run(args []string) error {
	_ = godotenv.Load()

	cfg := config.New()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if cfg.GetEnv() == "DEV" {
		logger = logger.Level(zerolog.DebugLevel)
	} else {
		logger = logger.Level(zerolog.WarnLevel)
	}

	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		displayAppName(cfg.GetAppName())
		fmt.Print(usageText)
		return nil
	}

	store := sessions.NewFileStore(cfg.GetSessionFile(), sessions.WithFileStoreLogger(logger))
	api := apiclient.New(cfg.GetAPIBaseURL(),
		apiclient.WithHTTPClient(&http.Client{Timeout: cfg.GetHTTPTimeout()}),
		apiclient.WithLogger(logger),
	)

	coordinator, err := auth.NewCoordinator(api, store, auth.WithLogger(logger))
	if err != nil {
		return err
	}
	defer coordinator.Close()

	orgs, err := organizations.NewService(api, coordinator)
	if err != nil {
		return err
	}

	a := &app{cfg: cfg, coordinator: coordinator, orgs: orgs}
	ctx := context.Background()

	command, rest := args[0], args[1:]
	switch command {
	case "signup":
		return a.signup(ctx, rest)
	case "login":
		return a.login(ctx, rest)
	case "logout":
		return a.logout()
	case "whoami":
		return a.whoami()
	case "refresh":
		return a.refresh(ctx)
	case "test":
		return a.test(ctx)
	case "org":
		return a.org(ctx, rest)
	case "invite":
		return a.invite(ctx, rest)
	default:
		fmt.Print(usageText)
		return fmt.Errorf("unknown command %q", command)
	}
}

// requireAuth is the protected-route guard: commands that need an identity
// fail here, before any network call, when no usable session is stored.
func (a *app) requireAuth() (*auth.User, error) {
	if !a.coordinator.IsAuthenticated() {
		return nil, fmt.Errorf("not logged in, run %q first", "hubctl login")
	}
	user := a.coordinator.User()
	if user == nil || user.UserID == "" {
		return nil, fmt.Errorf("stored session has no user id, log in again")
	}
	return user, nil
}

func displayAppName(appName string) {
	myFigure := figure.NewFigure(appName, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}

func printJSON(v any) error {
	encoded, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(encoded))
	return nil
}
