package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"

	"github.com/projectshub/go-hub-client/auth"
)

func (a *app) signup(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("signup", flag.ContinueOnError)
	first := fs.String("first", "", "first name")
	last := fs.String("last", "", "last name")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	resp, err := a.coordinator.Signup(ctx, auth.SignupRequest{
		FirstName: *first,
		LastName:  *last,
		Email:     *email,
		Password:  *password,
	})
	if err != nil {
		return err
	}

	if resp.Message != "" {
		fmt.Println(resp.Message)
	} else {
		fmt.Println("Account created. You can log in now.")
	}
	return nil
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	force := fs.Bool("force", false, "replace an existing session")
	if err := fs.Parse(args); err != nil {
		return err
	}

	// public-route guard: an authenticated user has no business logging in
	// again unless they ask to replace the session
	if a.coordinator.IsAuthenticated() && !*force {
		return fmt.Errorf("already logged in as %s, use -force to replace the session", a.coordinator.Session().Email)
	}

	session, err := a.coordinator.Login(ctx, auth.LoginRequest{Email: *email, Password: *password})
	if err != nil {
		return err
	}

	fmt.Printf("Logged in as %s. Access token expires at %s.\n", session.Email, session.AccessTokenExpiresAt)
	return nil
}

func (a *app) logout() error {
	a.coordinator.Logout()
	fmt.Println("Logged out.")
	return nil
}

func (a *app) whoami() error {
	user, err := a.requireAuth()
	if err != nil {
		return err
	}
	return printJSON(user)
}

func (a *app) refresh(ctx context.Context) error {
	session, err := a.coordinator.RefreshTokens(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Tokens refreshed. Access token expires at %s.\n", session.AccessTokenExpiresAt)
	return nil
}

// test calls the protected smoke endpoint with the stored session.
func (a *app) test(ctx context.Context) error {
	if _, err := a.requireAuth(); err != nil {
		return err
	}

	payload, err := a.coordinator.GetAuthorized(ctx, "/api/test")
	if err != nil {
		return err
	}
	if len(payload) == 0 {
		fmt.Println("Protected endpoint called successfully.")
		return nil
	}

	var result any
	if err := json.Unmarshal(payload, &result); err != nil {
		return err
	}
	return printJSON(result)
}
