//go:build !integration

package rest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"devMart/domain"
	"devMart/pkg/apperr"

	"github.com/labstack/echo/v4"
)

type stubUserService struct {
	registerFn func(ctx context.Context, user *domain.User) (domain.User, error)
	loginFn    func(ctx context.Context, email, password, ipAddress, userAgent string) (string, domain.User, error)
	logoutFn   func(ctx context.Context, userID uint, token string) error
	getFn      func(ctx context.Context, id uint) (domain.User, error)
}

func (s *stubUserService) Register(ctx context.Context, user *domain.User) (domain.User, error) {
	return s.registerFn(ctx, user)
}

func (s *stubUserService) Login(ctx context.Context, email, password, ipAddress, userAgent string) (string, domain.User, error) {
	return s.loginFn(ctx, email, password, ipAddress, userAgent)
}

func (s *stubUserService) Logout(ctx context.Context, userID uint, token string) error {
	return s.logoutFn(ctx, userID, token)
}

func (s *stubUserService) GetUserByID(ctx context.Context, id uint) (domain.User, error) {
	return s.getFn(ctx, id)
}

func newUserContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestLoginHandlerMasksBadCredentials(t *testing.T) {
	svc := &stubUserService{
		loginFn: func(ctx context.Context, email, password, ipAddress, userAgent string) (string, domain.User, error) {
			return "", domain.User{}, apperr.Permission("invalid email or password")
		},
	}
	handler := NewUserHandler(svc)

	c, rec := newUserContext(http.MethodPost, "/api/v1/auth/login",
		`{"email":"alex@example.com","password":"wrong-pass"}`)

	if err := handler.Login(c); err != nil {
		t.Fatalf("Login: %v", err)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if !strings.Contains(rec.Body.String(), "invalid email or password") {
		t.Errorf("body %q does not carry the masked credentials message", rec.Body.String())
	}
}

func TestLoginHandlerSurfacesInfrastructureFailure(t *testing.T) {
	svc := &stubUserService{
		loginFn: func(ctx context.Context, email, password, ipAddress, userAgent string) (string, domain.User, error) {
			return "", domain.User{}, apperr.Persistence("failed to generate token", errors.New("secret missing"))
		},
	}
	handler := NewUserHandler(svc)

	c, rec := newUserContext(http.MethodPost, "/api/v1/auth/login",
		`{"email":"alex@example.com","password":"hunter22"}`)

	if err := handler.Login(c); err != nil {
		t.Fatalf("Login: %v", err)
	}

	// an outage must not masquerade as bad credentials
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	if strings.Contains(rec.Body.String(), "invalid email or password") {
		t.Errorf("body %q masks an infrastructure failure as bad credentials", rec.Body.String())
	}
}

func TestLoginHandlerSuccess(t *testing.T) {
	svc := &stubUserService{
		loginFn: func(ctx context.Context, email, password, ipAddress, userAgent string) (string, domain.User, error) {
			return "signed-token", domain.User{ID: 42, Email: email, Role: "customer"}, nil
		},
	}
	handler := NewUserHandler(svc)

	c, rec := newUserContext(http.MethodPost, "/api/v1/auth/login",
		`{"email":"alex@example.com","password":"hunter22"}`)

	if err := handler.Login(c); err != nil {
		t.Fatalf("Login: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "signed-token") {
		t.Errorf("body %q does not carry the access token", rec.Body.String())
	}
}

func TestRegisterHandlerConflict(t *testing.T) {
	svc := &stubUserService{
		registerFn: func(ctx context.Context, user *domain.User) (domain.User, error) {
			return domain.User{}, apperr.Conflict("email already exists")
		},
	}
	handler := NewUserHandler(svc)

	c, rec := newUserContext(http.MethodPost, "/api/v1/auth/register",
		`{"username":"alex","email":"alex@example.com","password":"hunter22"}`)

	if err := handler.Register(c); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusConflict)
	}
}
