package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/projectshub/go-hub-client/apiclient"
	"github.com/projectshub/go-hub-client/sessions"
)

const (
	signupPath  = "/api/auth/signup"
	loginPath   = "/api/auth/login"
	refreshPath = "/api/auth/refresh"

	refreshKey = "refresh"
)

// DefaultRenewalLeeway is how long before the access-token expiry the
// background renewal fires.
const DefaultRenewalLeeway = 30 * time.Second

// Coordinator owns the client-side session lifecycle: signup, login, logout,
// single-flight token refresh, one transparent 401 retry per authorized call,
// and proactive renewal ahead of expiry. The session is replaced wholesale on
// every change and mirrored into the Store; the in-memory copy is always the
// source of truth.
type Coordinator struct {
	api      *apiclient.Client
	store    sessions.Store
	validate *validator.Validate
	logger   zerolog.Logger
	nowTime  func() time.Time
	leeway   time.Duration

	mu         sync.RWMutex
	session    *sessions.Session
	refreshing bool

	refreshGroup singleflight.Group

	timerMu    sync.Mutex
	renewTimer *time.Timer
	closed     bool
}

// Option defines a function type to modify a Coordinator instance.
type Option func(*Coordinator)

// WithNowTime sets the now time function (primarily for testing).
func WithNowTime(nowFunc func() time.Time) Option {
	return func(c *Coordinator) {
		c.nowTime = nowFunc
	}
}

// WithRenewalLeeway overrides how far ahead of expiry renewal is scheduled.
func WithRenewalLeeway(leeway time.Duration) Option {
	return func(c *Coordinator) {
		c.leeway = leeway
	}
}

// WithLogger sets the coordinator logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Coordinator) {
		c.logger = logger
	}
}

// NewCoordinator initializes a Coordinator, adopting any session the store
// still holds from a previous run and arming its renewal timer.
func NewCoordinator(api *apiclient.Client, store sessions.Store, options ...Option) (*Coordinator, error) {
	if api == nil {
		return nil, errors.New("[NewCoordinator] api client is required")
	}
	if store == nil {
		return nil, errors.New("[NewCoordinator] session store is required")
	}

	c := &Coordinator{
		api:      api,
		store:    store,
		validate: validator.New(),
		logger:   zerolog.Nop(),
		nowTime:  time.Now,
		leeway:   DefaultRenewalLeeway,
	}

	for _, opt := range options {
		opt(c)
	}

	c.session = store.Load()
	c.scheduleRenewal()

	return c, nil
}

// Close cancels the background renewal timer. The coordinator must not be
// used after Close.
func (c *Coordinator) Close() {
	c.timerMu.Lock()
	defer c.timerMu.Unlock()

	c.closed = true
	if c.renewTimer != nil {
		c.renewTimer.Stop()
		c.renewTimer = nil
	}
}

// Session returns the current session, nil when anonymous. The session object
// is never mutated in place, so the returned pointer stays consistent.
func (c *Coordinator) Session() *sessions.Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

// User returns the display view derived from the current access token, nil
// when anonymous.
func (c *Coordinator) User() *User {
	return userFromSession(c.Session())
}

// IsAuthenticated reports whether a session with an access token is present.
func (c *Coordinator) IsAuthenticated() bool {
	s := c.Session()
	return s != nil && s.AccessToken != ""
}

// IsRefreshing reports whether a token refresh is currently in flight.
func (c *Coordinator) IsRefreshing() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.refreshing
}

// Signup forwards the account-creation request. It has no session side
// effect; failures surface verbatim.
func (c *Coordinator) Signup(ctx context.Context, req SignupRequest) (*SignupResponse, error) {
	if err := c.validate.Struct(req); err != nil {
		return nil, errors.Wrap(err, "[Signup] invalid request")
	}

	payload, err := c.api.PostJSON(ctx, signupPath, req, "")
	if err != nil {
		return nil, err
	}

	resp := &SignupResponse{}
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, resp); err != nil {
			return nil, errors.Wrap(err, "[Signup] decode response")
		}
	}
	return resp, nil
}

// Login posts the credentials and, on success, adopts and persists a session
// built from the returned token payload plus the email supplied here. Any
// failure leaves the prior state untouched.
func (c *Coordinator) Login(ctx context.Context, req LoginRequest) (*sessions.Session, error) {
	if err := c.validate.Struct(req); err != nil {
		return nil, errors.Wrap(err, "[Login] invalid request")
	}

	payload, err := c.api.PostJSON(ctx, loginPath, req, "")
	if err != nil {
		return nil, err
	}

	var tokens TokenPayload
	if err := json.Unmarshal(payload, &tokens); err != nil {
		return nil, errors.Wrap(err, "[Login] decode token payload")
	}

	next := tokens.session(req.Email)
	c.setSession(next)
	c.logger.Info().Str("email", req.Email).Msg("logged in")
	return next, nil
}

// Logout clears the session and its persisted mirror. No network call is
// made; logging out while anonymous is a no-op.
func (c *Coordinator) Logout() {
	c.setSession(nil)
	c.logger.Info().Msg("logged out")
}

// RefreshTokens exchanges the current refresh token for a new session.
// Concurrent callers coalesce onto one in-flight exchange and observe the
// same outcome; a failed exchange clears the session entirely, forcing a new
// login.
func (c *Coordinator) RefreshTokens(ctx context.Context) (*sessions.Session, error) {
	current := c.Session()
	if current == nil || current.RefreshToken == "" {
		return nil, errNoRefreshToken()
	}

	result, err, _ := c.refreshGroup.Do(refreshKey, func() (any, error) {
		return c.doRefresh(ctx, current)
	})
	if err != nil {
		return nil, err
	}
	return result.(*sessions.Session), nil
}

func (c *Coordinator) doRefresh(ctx context.Context, current *sessions.Session) (*sessions.Session, error) {
	c.setRefreshing(true)
	defer c.setRefreshing(false)

	payload, err := c.api.PostJSON(ctx, refreshPath, refreshRequest{RefreshToken: current.RefreshToken}, "")
	if err != nil {
		c.setSession(nil)
		c.logger.Warn().Err(err).Msg("token refresh failed, session cleared")
		return nil, err
	}

	var tokens TokenPayload
	if err := json.Unmarshal(payload, &tokens); err != nil {
		c.setSession(nil)
		return nil, errors.Wrap(err, "[RefreshTokens] decode token payload")
	}
	if tokens.AccessToken == "" {
		c.setSession(nil)
		return nil, &apiclient.APIError{
			Message: "refresh response missing access token",
			Status:  http.StatusUnauthorized,
			Code:    CodeUnauthorized,
		}
	}

	next := tokens.session(current.Email)
	c.setSession(next)
	c.logger.Debug().Time("accessTokenExpiresAt", next.AccessTokenExpiresAt).Msg("tokens refreshed")
	return next, nil
}

// GetAuthorized issues a GET with the current access token. On a 401 it
// performs exactly one refresh and retries once with the new token; every
// other failure, including a 401 on the retry, surfaces as-is. Without an
// access token it fails immediately and issues no network call.
func (c *Coordinator) GetAuthorized(ctx context.Context, path string) (json.RawMessage, error) {
	current := c.Session()
	if current == nil || current.AccessToken == "" {
		return nil, errNotLoggedIn()
	}

	payload, err := c.api.GetJSON(ctx, path, current.AccessToken)
	if err == nil {
		return payload, nil
	}

	apiErr, ok := apiclient.AsAPIError(err)
	if !ok || apiErr.Status != http.StatusUnauthorized || current.RefreshToken == "" {
		return nil, err
	}

	refreshed, err := c.RefreshTokens(ctx)
	if err != nil {
		return nil, err
	}
	return c.api.GetJSON(ctx, path, refreshed.AccessToken)
}

// setSession adopts next as the current session, mirrors the change into the
// store, and re-arms the renewal timer. nil clears both copies.
func (c *Coordinator) setSession(next *sessions.Session) {
	c.mu.Lock()
	c.session = next
	c.mu.Unlock()

	if next != nil {
		c.store.Save(next)
	} else {
		c.store.Clear()
	}

	c.scheduleRenewal()
}

func (c *Coordinator) setRefreshing(v bool) {
	c.mu.Lock()
	c.refreshing = v
	c.mu.Unlock()
}

// scheduleRenewal cancels any pending renewal and arms a new one-shot timer
// when the session has both an access-token expiry and a refresh token. The
// delay is floor-clamped so an already-due token refreshes immediately. At
// most one timer is ever pending.
//
// The delay is computed from the access-token expiry only; a refresh token
// that is itself about to lapse still gets one renewal attempt, whose failure
// clears the session.
func (c *Coordinator) scheduleRenewal() {
	c.timerMu.Lock()
	defer c.timerMu.Unlock()

	if c.renewTimer != nil {
		c.renewTimer.Stop()
		c.renewTimer = nil
	}
	if c.closed {
		return
	}

	current := c.Session()
	if current == nil || current.RefreshToken == "" || current.AccessTokenExpiresAt.IsZero() {
		return
	}

	delay := current.AccessTokenExpiresAt.Sub(c.nowTime()) - c.leeway
	if delay < 0 {
		delay = 0
	}

	c.renewTimer = time.AfterFunc(delay, func() {
		if _, err := c.RefreshTokens(context.Background()); err != nil {
			c.logger.Warn().Err(err).Msg("scheduled token renewal failed")
		}
	})
}
