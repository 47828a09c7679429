package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestAuth_PassesIdentityToContext(t *testing.T) {
	var gotUserID int64
	var gotRole string

	handler := Auth(nopLogger{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetUserID(r.Context())
		require.True(t, ok)
		role, ok := GetUserRole(r.Context())
		require.True(t, ok)

		gotUserID = userID
		gotRole = role
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/1", nil)
	req.Header.Set("X-User-ID", "42")
	req.Header.Set("X-User-Role", "mentor")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(42), gotUserID)
	assert.Equal(t, "mentor", gotRole)
}

func TestAuth_RejectsBadHeaders(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
	}{
		{"no headers", map[string]string{}},
		{"missing role", map[string]string{"X-User-ID": "42"}},
		{"missing user id", map[string]string{"X-User-Role": "mentor"}},
		{"non-numeric user id", map[string]string{"X-User-ID": "abc", "X-User-Role": "mentor"}},
		{"zero user id", map[string]string{"X-User-ID": "0", "X-User-Role": "mentor"}},
		{"negative user id", map[string]string{"X-User-ID": "-5", "X-User-Role": "mentor"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := Auth(nopLogger{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/1", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, called)
		})
	}
}
