package middlewarectx_test

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/repair-orders/internal/http/middlewarectx"
	"github.com/magabrotheeeer/repair-orders/internal/models"
)

// Mock for AuthService
type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) ValidateToken(token string) (*models.Identity, error) {
	args := m.Called(token)
	identity, _ := args.Get(0).(*models.Identity)
	return identity, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestJWTMiddleware(t *testing.T) {
	authMock := new(AuthServiceMock)
	logger := newNoopLogger()

	handlerCalled := false

	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		identity, ok := middlewarectx.IdentityFromContext(r.Context())
		assert.True(t, ok)
		assert.Equal(t, "admin@szerviz.hu", identity.Email)
		assert.Equal(t, "ADMIN", identity.Role)
		w.WriteHeader(http.StatusOK)
	})

	middlewareFn := middlewarectx.JWTMiddleware(authMock, logger)(nextHandler)

	tests := []struct {
		name           string
		authHeader     string
		mockIdentity   *models.Identity
		mockErr        error
		wantStatusCode int
		wantCalled     bool
	}{
		{
			name:           "missing Authorization header",
			authHeader:     "",
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
		},
		{
			name:           "invalid Authorization header prefix",
			authHeader:     "Basic sometoken",
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
		},
		{
			name:           "token validation error",
			authHeader:     "Bearer badtoken",
			mockIdentity:   nil,
			mockErr:        errors.New("token is malformed"),
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
		},
		{
			name:       "valid token",
			authHeader: "Bearer validtoken",
			mockIdentity: &models.Identity{
				UserID: 1,
				Email:  "admin@szerviz.hu",
				Role:   "ADMIN",
				Name:   "Kovács Béla",
			},
			mockErr:        nil,
			wantStatusCode: http.StatusOK,
			wantCalled:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerCalled = false
			authMock.ExpectedCalls = nil
			authMock.Calls = nil
			if tt.mockIdentity != nil || tt.mockErr != nil {
				authMock.On("ValidateToken", strings.TrimPrefix(tt.authHeader, "Bearer ")).
					Return(tt.mockIdentity, tt.mockErr).Once()
			}

			req := httptest.NewRequest(http.MethodGet, "/somepath", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			rec := httptest.NewRecorder()
			middlewareFn.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.Equal(t, tt.wantCalled, handlerCalled)

			authMock.AssertExpectations(t)
		})
	}
}
