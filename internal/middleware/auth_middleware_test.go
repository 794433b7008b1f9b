//go:build !integration

package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"devMart/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

type stubTokenValidator struct {
	userID string
	err    error
}

func (s *stubTokenValidator) ValidateToken(ctx context.Context, token string) (string, error) {
	return s.userID, s.err
}

func newAuthContext(authHeader string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func okHandler(called *bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		*called = true
		return c.NoContent(http.StatusOK)
	}
}

// expiredToken signs a token whose expiry is already in the past.
func expiredToken(t *testing.T, secret string) string {
	t.Helper()

	claims := utils.Claims{
		UserID: "42",
		Role:   "customer",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signing expired token: %v", err)
	}

	return token
}

func TestAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	utils.InitJWT("middleware-test-secret")

	called := false
	c, rec := newAuthContext("")

	if err := AuthMiddleware()(okHandler(&called))(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}

	if called {
		t.Error("handler was called without an Authorization header")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestAuthMiddlewareRejectsMalformedHeader(t *testing.T) {
	utils.InitJWT("middleware-test-secret")

	cases := []string{
		"not-a-bearer",
		"Basic dXNlcjpwYXNz",
		"Bearer",
		"Bearer too many parts",
	}

	for _, header := range cases {
		called := false
		c, rec := newAuthContext(header)

		if err := AuthMiddleware()(okHandler(&called))(c); err != nil {
			t.Fatalf("header %q: middleware returned error: %v", header, err)
		}

		if called {
			t.Errorf("header %q: handler was called", header)
		}
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("header %q: status = %d, want %d", header, rec.Code, http.StatusUnauthorized)
		}
	}
}

func TestAuthMiddlewareRejectsInvalidToken(t *testing.T) {
	utils.InitJWT("middleware-test-secret")

	called := false
	c, rec := newAuthContext("Bearer not.a.jwt")

	if err := AuthMiddleware()(okHandler(&called))(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}

	if called {
		t.Error("handler was called with an invalid token")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestAuthMiddlewareRejectsExpiredToken(t *testing.T) {
	utils.InitJWT("middleware-test-secret")

	called := false
	c, rec := newAuthContext("Bearer " + expiredToken(t, "middleware-test-secret"))

	if err := AuthMiddleware()(okHandler(&called))(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}

	if called {
		t.Error("handler was called with an expired token")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	utils.InitJWT("middleware-test-secret")

	token, err := utils.GenerateJWT("42", "customer")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	called := false
	c, rec := newAuthContext("Bearer " + token)

	if err := AuthMiddleware()(okHandler(&called))(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}

	if !called {
		t.Fatal("handler was not called for a valid token")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got, ok := c.Get("user_id").(uint); !ok || got != 42 {
		t.Errorf("user_id = %v, want 42", c.Get("user_id"))
	}
	if got, ok := c.Get("role").(string); !ok || got != "customer" {
		t.Errorf("role = %v, want customer", c.Get("role"))
	}
}

func TestAuthMiddlewareWithCacheRejectsMissingHeader(t *testing.T) {
	utils.InitJWT("middleware-test-secret")

	called := false
	c, rec := newAuthContext("")

	mw := AuthMiddlewareWithCache(&stubTokenValidator{})
	if err := mw(okHandler(&called))(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}

	if called {
		t.Error("handler was called without an Authorization header")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestAuthMiddlewareWithCacheRejectsRevokedToken(t *testing.T) {
	utils.InitJWT("middleware-test-secret")

	token, err := utils.GenerateJWT("42", "customer")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	called := false
	c, rec := newAuthContext("Bearer " + token)

	mw := AuthMiddlewareWithCache(&stubTokenValidator{err: errors.New("token not found or expired")})
	if err := mw(okHandler(&called))(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}

	if called {
		t.Error("handler was called with a revoked token")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestAuthMiddlewareWithCacheRejectsUserMismatch(t *testing.T) {
	utils.InitJWT("middleware-test-secret")

	token, err := utils.GenerateJWT("42", "customer")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	called := false
	c, rec := newAuthContext("Bearer " + token)

	mw := AuthMiddlewareWithCache(&stubTokenValidator{userID: "7"})
	if err := mw(okHandler(&called))(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}

	if called {
		t.Error("handler was called despite a cache/JWT user mismatch")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestAuthMiddlewareWithCacheAcceptsValidToken(t *testing.T) {
	utils.InitJWT("middleware-test-secret")

	token, err := utils.GenerateJWT("42", "customer")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	called := false
	c, rec := newAuthContext("Bearer " + token)

	mw := AuthMiddlewareWithCache(&stubTokenValidator{userID: "42"})
	if err := mw(okHandler(&called))(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}

	if !called {
		t.Fatal("handler was not called for a valid cached token")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got, ok := c.Get("user_id").(uint); !ok || got != 42 {
		t.Errorf("user_id = %v, want 42", c.Get("user_id"))
	}
}

func TestAdminOnly(t *testing.T) {
	cases := []struct {
		name     string
		role     interface{}
		wantCode int
		wantNext bool
	}{
		{"admin passes", "admin", http.StatusOK, true},
		{"uppercase admin passes", "ADMIN", http.StatusOK, true},
		{"customer rejected", "customer", http.StatusForbidden, false},
		{"missing role rejected", nil, http.StatusForbidden, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			called := false
			c, rec := newAuthContext("")
			if tc.role != nil {
				c.Set("role", tc.role)
			}

			if err := AdminOnly()(okHandler(&called))(c); err != nil {
				t.Fatalf("middleware returned error: %v", err)
			}

			if called != tc.wantNext {
				t.Errorf("handler called = %v, want %v", called, tc.wantNext)
			}
			if rec.Code != tc.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tc.wantCode)
			}
		})
	}
}
