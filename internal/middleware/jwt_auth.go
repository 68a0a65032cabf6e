package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/anonto42/inkwell/backend/internal/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

// TokenCookie is the cookie carrying the session JWT.
const TokenCookie = "access_token"

// AccountLookup reports whether the account behind a token still exists.
type AccountLookup interface {
	Lookup(ctx context.Context, id uint) (models.UserCompact, bool, error)
}

// JWTAuthMiddleware requires a valid JWT, taken from the Authorization
// header or the access_token cookie, and stores its claims under "user".
// When accounts is non-nil, tokens of deleted accounts are rejected.
func JWTAuthMiddleware(secret string, accounts AccountLookup) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString, err := extractToken(c)
			if err != nil {
				return err
			}
			if tokenString == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing authentication token")
			}

			claims, err := ParseToken(tokenString, secret)
			if err != nil {
				if errors.Is(err, jwt.ErrSignatureInvalid) {
					return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token signature")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			exists, err := accountExists(c, accounts, claims.UserID)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "Failed to verify account").SetInternal(err)
			}
			if !exists {
				return echo.NewHTTPError(http.StatusUnauthorized, "Account no longer exists")
			}

			c.Set("user", claims)
			return next(c)
		}
	}
}

// OptionalJWTAuthMiddleware stores claims when a valid token of an existing
// account is present and lets anonymous requests through otherwise.
func OptionalJWTAuthMiddleware(secret string, accounts AccountLookup) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString, err := extractToken(c)
			if err != nil || tokenString == "" {
				return next(c)
			}
			claims, err := ParseToken(tokenString, secret)
			if err != nil {
				return next(c)
			}
			exists, err := accountExists(c, accounts, claims.UserID)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "Failed to verify account").SetInternal(err)
			}
			if exists {
				c.Set("user", claims)
			}
			return next(c)
		}
	}
}

// AdminOnly must run after JWTAuthMiddleware.
func AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := c.Get("user").(*models.JwtCustomClaims)
		if !ok || claims.Role != models.RoleAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "Admin access required")
		}
		return next(c)
	}
}

// ParseToken validates an HS256 token signed with secret.
func ParseToken(tokenString, secret string) (*models.JwtCustomClaims, error) {
	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

func accountExists(c echo.Context, accounts AccountLookup, id uint) (bool, error) {
	if accounts == nil {
		return true, nil
	}
	_, ok, err := accounts.Lookup(c.Request().Context(), id)
	return ok, err
}

func extractToken(c echo.Context) (string, error) {
	if authHeader := c.Request().Header.Get("Authorization"); authHeader != "" {
		// Expecting "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return "", echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization header format")
		}
		return parts[1], nil
	}
	if cookie, err := c.Cookie(TokenCookie); err == nil {
		return cookie.Value, nil
	}
	return "", nil
}
