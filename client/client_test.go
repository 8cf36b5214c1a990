package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelbuddy-app/travelbuddy-backend/internal/models"
)

// stubBackend mimics the server contract closely enough to drive the
// state machine: fixed code 123456, mock tokens, one canned trip.
func stubBackend(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()

	writeJSON := func(w http.ResponseWriter, status int, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}

	mux.HandleFunc("POST /api/send-otp", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "OTP sent successfully"})
	})

	mux.HandleFunc("POST /api/verify-otp", func(w http.ResponseWriter, r *http.Request) {
		var req struct{ Email, Otp string }
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Otp != "123456" {
			writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": "Invalid OTP"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true, "token": "mock-jwt-token-" + req.Email,
		})
	})

	requireToken := func(w http.ResponseWriter, r *http.Request) bool {
		if r.Header.Get("Authorization") != "Bearer mock-jwt-token-a@b.com" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "message": "Invalid token"})
			return false
		}
		return true
	}

	mux.HandleFunc("POST /api/generate-trip", func(w http.ResponseWriter, r *http.Request) {
		if !requireToken(w, r) {
			return
		}
		// Mixed activity shapes on purpose
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"trip": map[string]any{
				"id": "t1", "destination": "Goa", "budget": 15000, "members": 4, "days": 3,
				"itinerary": []any{
					map[string]any{"title": "Day 1", "activities": []any{"Visit landmark", "Lunch at cafe"}},
					map[string]any{"day": 2, "title": "Day 2", "activities": []any{
						map[string]any{"activity": "Shopping", "time": "11:00 AM", "cost": 500},
					}},
					map[string]any{"title": "Day 3", "activities": []any{
						map[string]any{"name": "Museum visit"},
						map[string]any{"description": "Return home"},
					}},
				},
			},
		})
	})

	mux.HandleFunc("GET /api/my-trips", func(w http.ResponseWriter, r *http.Request) {
		if !requireToken(w, r) {
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"trips": []any{map[string]any{
				"id": "t1", "user_email": "a@b.com", "destination": "Goa",
				"plan": map[string]any{"destination": "Goa", "itinerary": []any{}},
			}},
		})
	})

	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestLoginFlowStateMachine(t *testing.T) {
	server := stubBackend(t)
	c := New(server.URL, NewMemoryTokenStore())
	ctx := context.Background()

	assert.Equal(t, LoggedOut, c.State())

	// Email step
	require.NoError(t, c.SendOTP(ctx, "a@b.com"))
	assert.Equal(t, AwaitingCode, c.State())

	// Failed verify drops back to the email step
	err := c.VerifyOTP(ctx, "000000")
	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Invalid OTP", apiErr.Message)
	assert.Equal(t, EmailEntry, c.State())

	// Retry from the top
	require.NoError(t, c.SendOTP(ctx, "a@b.com"))
	require.NoError(t, c.VerifyOTP(ctx, "123456"))
	assert.Equal(t, LoggedIn, c.State())
	assert.Equal(t, "a", c.DisplayName())

	token, err := c.tokens.Load()
	require.NoError(t, err)
	assert.Equal(t, "mock-jwt-token-a@b.com", token)
}

func TestVerifyOutsideCodeStep(t *testing.T) {
	server := stubBackend(t)
	c := New(server.URL, NewMemoryTokenStore())

	assert.ErrorIs(t, c.VerifyOTP(context.Background(), "123456"), ErrNotLoggedIn)
}

func TestGenerateTripGatedOnLogin(t *testing.T) {
	server := stubBackend(t)
	c := New(server.URL, NewMemoryTokenStore())

	_, err := c.GenerateTrip(context.Background(), &models.TripRequest{Destination: "Goa"})
	assert.ErrorIs(t, err, ErrNotLoggedIn)
	assert.Equal(t, EmailEntry, c.State(), "redirects to the email step")
}

func TestGenerateTripNormalizesActivityShapes(t *testing.T) {
	server := stubBackend(t)
	c := New(server.URL, NewMemoryTokenStore())
	ctx := context.Background()

	require.NoError(t, c.SendOTP(ctx, "a@b.com"))
	require.NoError(t, c.VerifyOTP(ctx, "123456"))

	trip, err := c.GenerateTrip(ctx, &models.TripRequest{Destination: "Goa", Budget: 15000, Members: 4, Days: 3})
	require.NoError(t, err)
	assert.Equal(t, "t1", trip.ID)
	assert.Equal(t, "Goa", trip.Destination)
	require.Len(t, trip.Itinerary, 3)

	var names []string
	for _, day := range trip.Itinerary {
		for _, activity := range day.Activities {
			names = append(names, activity.DisplayName())
		}
	}
	assert.Equal(t, []string{
		"Visit landmark", "Lunch at cafe", "Shopping", "Museum visit", "Return home",
	}, names)
}

func TestUnauthorizedEvictsToken(t *testing.T) {
	server := stubBackend(t)
	store := NewMemoryTokenStore()
	require.NoError(t, store.Save("mock-jwt-token-someone-else@b.com"))

	c := New(server.URL, store)
	c.state = LoggedIn

	_, err := c.MyTrips(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, LoggedOut, c.State())

	_, err = store.Load()
	assert.ErrorIs(t, err, ErrNoToken, "401 must evict the stored token")
}

func TestLogout(t *testing.T) {
	server := stubBackend(t)
	c := New(server.URL, NewMemoryTokenStore())
	ctx := context.Background()

	require.NoError(t, c.SendOTP(ctx, "a@b.com"))
	require.NoError(t, c.VerifyOTP(ctx, "123456"))

	c.Logout()
	assert.Equal(t, LoggedOut, c.State())
	_, err := c.tokens.Load()
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestRestoreWithHealthyServer(t *testing.T) {
	server := stubBackend(t)
	store := NewMemoryTokenStore()
	require.NoError(t, store.Save("mock-jwt-token-a@b.com"))

	c := New(server.URL, store)
	require.NoError(t, c.Restore(context.Background()))
	assert.Equal(t, LoggedIn, c.State())
	assert.Equal(t, "User", c.DisplayName(), "restored sessions have no email on hand")
}

func TestRestoreWithDeadServerEvictsToken(t *testing.T) {
	server := httptest.NewServer(nil)
	server.Close()

	store := NewMemoryTokenStore()
	require.NoError(t, store.Save("mock-jwt-token-a@b.com"))

	c := New(server.URL, store)
	require.NoError(t, c.Restore(context.Background()))
	assert.Equal(t, LoggedOut, c.State())
	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestFileTokenStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "authToken")
	store := NewFileTokenStore(path)

	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNoToken)

	require.NoError(t, store.Save("mock-jwt-token-a@b.com"))
	token, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "mock-jwt-token-a@b.com", token)

	require.NoError(t, store.Clear())
	_, err = store.Load()
	assert.ErrorIs(t, err, ErrNoToken)
	assert.NoError(t, store.Clear(), "clearing twice is fine")
}
