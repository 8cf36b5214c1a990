// Package client is a Go client for the TravelBuddy backend. It drives
// the same two-step login flow as the browser UI: request a code for an
// email, verify it, then call the trip endpoints with the stored bearer
// token.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/travelbuddy-app/travelbuddy-backend/internal/models"
)

// State is the auth controller state.
type State int

const (
	LoggedOut State = iota
	EmailEntry
	AwaitingCode
	LoggedIn
)

func (s State) String() string {
	switch s {
	case EmailEntry:
		return "email-entry"
	case AwaitingCode:
		return "awaiting-code"
	case LoggedIn:
		return "logged-in"
	default:
		return "logged-out"
	}
}

var (
	// ErrNotLoggedIn gates the trip actions; callers should send the user
	// back to the email step.
	ErrNotLoggedIn = errors.New("not logged in")
	// ErrUnauthorized means the server rejected the stored token. The
	// token has already been evicted when this is returned.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrMethodNotAllowed mirrors the 405 special case in the UI.
	ErrMethodNotAllowed = errors.New("method not allowed")
)

// APIError carries a server-reported failure message verbatim.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server error: %d", e.Status)
}

// GeneratedTrip is the generate-trip response payload.
type GeneratedTrip struct {
	ID string `json:"id"`
	models.TripPlan
}

// Client talks to the backend and tracks the login state machine:
// LoggedOut -> EmailEntry -> AwaitingCode -> LoggedIn, dropping back to
// EmailEntry on a failed verify and to LoggedOut on logout or 401.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenStore

	state State
	email string
}

// New creates a client. The token store decides whether logins survive
// restarts; use Restore to pick up a previously stored token.
func New(baseURL string, tokens TokenStore) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		tokens:  tokens,
		state:   LoggedOut,
	}
}

// State returns the current auth state.
func (c *Client) State() State {
	return c.state
}

// DisplayName is the identity shown in the UI: the local part of the
// logged-in email, or "User" for a restored session.
func (c *Client) DisplayName() string {
	if c.email == "" {
		return "User"
	}
	if at := strings.Index(c.email, "@"); at > 0 {
		return c.email[:at]
	}
	return c.email
}

// Restore checks a previously stored token against the health endpoint.
// A dead server or missing token leaves the client logged out with the
// token evicted, matching the page-load probe in the UI.
func (c *Client) Restore(ctx context.Context) error {
	token, err := c.tokens.Load()
	if err != nil {
		c.state = LoggedOut
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/health", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		if resp != nil {
			resp.Body.Close()
		}
		_ = c.tokens.Clear()
		c.state = LoggedOut
		return nil
	}
	resp.Body.Close()

	c.state = LoggedIn
	return nil
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Token   string          `json:"token"`
	Trip    json.RawMessage `json:"trip"`
	Trips   []models.Trip   `json:"trips"`
}

// SendOTP requests a login code for the email and advances to the
// code-entry step.
func (c *Client) SendOTP(ctx context.Context, email string) error {
	env, err := c.post(ctx, "/api/send-otp", map[string]string{"email": email}, "")
	if err != nil {
		return err
	}
	if !env.Success {
		return &APIError{Message: env.Message}
	}

	c.email = email
	c.state = AwaitingCode
	return nil
}

// VerifyOTP submits the code. On success the token is persisted and the
// client is logged in; on failure the flow returns to the email step.
func (c *Client) VerifyOTP(ctx context.Context, code string) error {
	if c.state != AwaitingCode {
		return ErrNotLoggedIn
	}

	env, err := c.post(ctx, "/api/verify-otp", map[string]string{"email": c.email, "otp": code}, "")
	if err != nil {
		return err
	}
	if !env.Success {
		c.state = EmailEntry
		return &APIError{Message: env.Message}
	}

	if err := c.tokens.Save(env.Token); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	c.state = LoggedIn
	return nil
}

// GenerateTrip plans a trip. It is only available when logged in; calling
// it earlier redirects the flow to the email step.
func (c *Client) GenerateTrip(ctx context.Context, req *models.TripRequest) (*GeneratedTrip, error) {
	if c.state != LoggedIn {
		c.state = EmailEntry
		return nil, ErrNotLoggedIn
	}

	token, err := c.tokens.Load()
	if err != nil {
		c.state = EmailEntry
		return nil, ErrNotLoggedIn
	}

	env, err := c.post(ctx, "/api/generate-trip", req, token)
	if err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, &APIError{Message: env.Message}
	}

	var trip GeneratedTrip
	if err := json.Unmarshal(env.Trip, &trip); err != nil {
		return nil, fmt.Errorf("invalid trip payload: %w", err)
	}
	return &trip, nil
}

// MyTrips lists the logged-in user's saved trips.
func (c *Client) MyTrips(ctx context.Context) ([]models.Trip, error) {
	if c.state != LoggedIn {
		c.state = EmailEntry
		return nil, ErrNotLoggedIn
	}

	token, err := c.tokens.Load()
	if err != nil {
		c.state = EmailEntry
		return nil, ErrNotLoggedIn
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/my-trips", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	env, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, &APIError{Message: env.Message}
	}
	return env.Trips, nil
}

// Logout discards the token and resets the state machine.
func (c *Client) Logout() {
	_ = c.tokens.Clear()
	c.email = ""
	c.state = LoggedOut
}

func (c *Client) post(ctx context.Context, path string, body any, token string) (*envelope, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return c.do(req)
}

func (c *Client) do(req *http.Request) (*envelope, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("network or server error: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		_ = c.tokens.Clear()
		c.email = ""
		c.state = LoggedOut
		return nil, ErrUnauthorized
	case http.StatusMethodNotAllowed:
		return nil, ErrMethodNotAllowed
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, &APIError{Status: resp.StatusCode}
	}
	return &env, nil
}
