package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ishaangoyal/quickmark/internal/userservice"
	"github.com/stretchr/testify/assert"
)

func strptr(s string) *string {
	return &s
}

func newBareApplication() *application {
	return &application{
		config:      &Config{},
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		userService: userservice.NewUserService(nil, nil, nil, "test-secret-key", time.Hour),
	}
}

func TestRecoverPanic(t *testing.T) {
	app := newBareApplication()

	// Create a test HTTP handler that will panic
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("something went wrong")
	})

	middleware := app.recoverPanic(handler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	res := httptest.NewRecorder()

	middleware.ServeHTTP(res, req)

	assert.Equal(t, http.StatusInternalServerError, res.Code)
	assert.Equal(t, "close", res.Header().Get("Connection"))
}

func TestAuthenticate(t *testing.T) {
	app := newBareApplication()

	validToken := func() *string {
		token, err := app.userService.NewToken(42)
		assert.NoError(t, err)
		return &token
	}

	tests := []struct {
		name           string
		authHeader     func() *string
		expectedStatus int
		expectedUserID int
	}{
		{
			name:           "No Authentication Header",
			authHeader:     func() *string { return nil },
			expectedStatus: http.StatusOK,
			expectedUserID: 0,
		},
		{
			name:           "Invalid Authentication Header",
			authHeader:     func() *string { return strptr("invalid-token") },
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Valid Token With Bearer Prefix",
			authHeader:     validToken,
			expectedStatus: http.StatusOK,
			expectedUserID: 42,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUserID int
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUserID = app.getUserContext(r)
				w.WriteHeader(http.StatusOK)
			})

			middleware := app.authenticate(handler)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if token := tt.authHeader(); token != nil {
				req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", *token))
			}

			res := httptest.NewRecorder()

			middleware.ServeHTTP(res, req)

			assert.Equal(t, tt.expectedStatus, res.Code)
			if res.Code == http.StatusOK {
				assert.Equal(t, tt.expectedUserID, gotUserID)
			}
		})
	}
}

func TestAuthenticateBareToken(t *testing.T) {
	app := newBareApplication()

	token, err := app.userService.NewToken(7)
	assert.NoError(t, err)

	var gotUserID int
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = app.getUserContext(r)
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", token)

	res := httptest.NewRecorder()

	app.authenticate(handler).ServeHTTP(res, req)

	assert.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, 7, gotUserID)
}

func TestRequireAuth(t *testing.T) {
	app := newBareApplication()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("Anonymous", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = app.createUserContext(req, 0)

		res := httptest.NewRecorder()

		app.requireAuth(handler).ServeHTTP(res, req)

		assert.Equal(t, http.StatusUnauthorized, res.Code)
	})

	t.Run("Authenticated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = app.createUserContext(req, 42)

		res := httptest.NewRecorder()

		app.requireAuth(handler).ServeHTTP(res, req)

		assert.Equal(t, http.StatusOK, res.Code)
	})
}

func TestRateLimit(t *testing.T) {
	app := newBareApplication()
	app.config.RateLimitRPS = 2
	app.config.RateLimitBurst = 4
	app.config.RateLimitEnabled = true

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	middleware := app.rateLimit(handler)

	server := httptest.NewServer(middleware)
	defer server.Close()

	tests := []struct {
		name           string
		requests       int
		expectedStatus int
	}{
		{
			name:           "Within Limit",
			requests:       4,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Over Limit",
			requests:       6,
			expectedStatus: http.StatusTooManyRequests,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var lastStatusCode int

			for i := 0; i < tt.requests; i++ {
				res, err := http.Get(server.URL)
				assert.NoError(t, err)

				lastStatusCode = res.StatusCode
			}

			assert.Equal(t, tt.expectedStatus, lastStatusCode)
		})
	}
}
