package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"devMart/pkg/logger"
	jsonres "devMart/pkg/response"
	"devMart/pkg/utils"

	"github.com/labstack/echo/v4"
)

// TokenValidator checks issued tokens against the cache, so revoked tokens
// stop working before their JWT expiry.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (string, error)
}

// authFailure is a rejected bearer token, carrying the status and message
// the middleware should answer with.
type authFailure struct {
	status int
	code   string
	msg    string
}

// AuthMiddleware authenticates the bearer JWT and exposes the numeric
// user id to handlers.
func AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, tokenString, fail := parseBearer(c)
			if fail != nil {
				return c.JSON(fail.status, jsonres.Error(fail.code, fail.msg, nil))
			}

			userIDUint, err := strconv.ParseUint(claims.UserID, 10, 64)
			if err != nil {
				logger.Error("Invalid user ID in token", err)
				return c.JSON(http.StatusForbidden, jsonres.Error(
					"FORBIDDEN", "Invalid user ID in token", nil,
				))
			}

			c.Set("user_id", uint(userIDUint))
			c.Set("role", claims.Role)
			c.Set("token", tokenString)

			return next(c)
		}
	}
}

// AuthMiddlewareWithCache additionally requires the token to still be
// present in the token cache.
func AuthMiddlewareWithCache(tokenValidator TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, tokenString, fail := parseBearer(c)
			if fail != nil {
				return c.JSON(fail.status, jsonres.Error(fail.code, fail.msg, nil))
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()

			userID, err := tokenValidator.ValidateToken(ctx, tokenString)
			if err != nil {
				logger.Error("Token not found in cache", err)
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHORIZED", "Token expired or invalid", nil,
				))
			}

			if userID != claims.UserID {
				logger.Error("UserID mismatch between JWT and cache")
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHORIZED", "Invalid token", nil,
				))
			}

			userIDUint, err := strconv.ParseUint(claims.UserID, 10, 64)
			if err != nil {
				logger.Error("Invalid user ID in token", err)
				return c.JSON(http.StatusForbidden, jsonres.Error(
					"FORBIDDEN", "Invalid user ID in token", nil,
				))
			}

			c.Set("user_id", uint(userIDUint))
			c.Set("role", claims.Role)
			c.Set("token", tokenString)

			return next(c)
		}
	}
}

func AdminOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get("role").(string)
			if !ok || strings.ToUpper(role) != "ADMIN" {
				return c.JSON(http.StatusForbidden, jsonres.Error(
					"FORBIDDEN", "Admin access required", nil,
				))
			}

			return next(c)
		}
	}
}

// parseBearer extracts and verifies the bearer token. A non-nil failure
// means the request must be rejected without reaching the handler.
func parseBearer(c echo.Context) (*utils.Claims, string, *authFailure) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return nil, "", &authFailure{
			status: http.StatusUnauthorized,
			code:   "UNAUTHORIZED",
			msg:    "Missing authorization header",
		}
	}

	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		return nil, "", &authFailure{
			status: http.StatusUnauthorized,
			code:   "UNAUTHORIZED",
			msg:    "Invalid authorization format",
		}
	}

	tokenString := tokenParts[1]

	claims, err := utils.ParseJWT(tokenString)
	if err != nil {
		return nil, "", &authFailure{
			status: http.StatusUnauthorized,
			code:   "UNAUTHORIZED",
			msg:    "Invalid token",
		}
	}

	expAt, err := claims.GetExpirationTime()
	if err != nil || expAt == nil || time.Now().After(expAt.Time) {
		return nil, "", &authFailure{
			status: http.StatusForbidden,
			code:   "FORBIDDEN",
			msg:    "Token expired",
		}
	}

	return claims, tokenString, nil
}
