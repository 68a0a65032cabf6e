package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anonto42/inkwell/backend/internal/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signedToken(t *testing.T, secret string, claims *models.JwtCustomClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func validClaims(role string) *models.JwtCustomClaims {
	return &models.JwtCustomClaims{
		UserID: 7,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

type accountSet map[uint]bool

func (a accountSet) Lookup(ctx context.Context, id uint) (models.UserCompact, bool, error) {
	if !a[id] {
		return models.UserCompact{}, false, nil
	}
	return models.UserCompact{ID: id}, true, nil
}

type failingAccounts struct{}

func (failingAccounts) Lookup(ctx context.Context, id uint) (models.UserCompact, bool, error) {
	return models.UserCompact{}, false, errors.New("users store unavailable")
}

func run(mw echo.MiddlewareFunc, req *http.Request) (*httptest.ResponseRecorder, *models.JwtCustomClaims, error) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	var seen *models.JwtCustomClaims
	err := mw(func(c echo.Context) error {
		seen, _ = c.Get("user").(*models.JwtCustomClaims)
		return c.NoContent(http.StatusOK)
	})(c)
	return rec, seen, err
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected *echo.HTTPError, got %T", err)
	return he.Code
}

func TestJWTAuthFromHeaderAndCookie(t *testing.T) {
	token := signedToken(t, testSecret, validClaims(models.RoleUser))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	_, claims, err := run(JWTAuthMiddleware(testSecret, nil), req)
	require.NoError(t, err)
	require.Equal(t, uint(7), claims.UserID)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookie, Value: token})
	_, claims, err = run(JWTAuthMiddleware(testSecret, nil), req)
	require.NoError(t, err)
	require.Equal(t, uint(7), claims.UserID)
}

func TestJWTAuthRejects(t *testing.T) {
	cases := map[string]string{
		"missing":      "",
		"bad format":   "Token abc",
		"wrong secret": "Bearer " + signedToken(t, "other", validClaims(models.RoleUser)),
		"garbage":      "Bearer not.a.jwt",
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			_, _, err := run(JWTAuthMiddleware(testSecret, nil), req)
			require.Equal(t, http.StatusUnauthorized, statusOf(t, err))
		})
	}
}

func TestOptionalJWTAuth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookie, Value: "stale"})
	rec, claims, err := run(OptionalJWTAuthMiddleware(testSecret, nil), req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Nil(t, claims)
}

func TestAdminOnly(t *testing.T) {
	admin := echo.MiddlewareFunc(func(next echo.HandlerFunc) echo.HandlerFunc {
		return JWTAuthMiddleware(testSecret, nil)(AdminOnly(next))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, testSecret, validClaims(models.RoleUser)))
	_, _, err := run(admin, req)
	require.Equal(t, http.StatusForbidden, statusOf(t, err))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, testSecret, validClaims(models.RoleAdmin)))
	_, claims, err := run(admin, req)
	require.NoError(t, err)
	require.Equal(t, models.RoleAdmin, claims.Role)
}

func TestJWTAuthRejectsDeletedAccount(t *testing.T) {
	token := signedToken(t, testSecret, validClaims(models.RoleUser))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	_, claims, err := run(JWTAuthMiddleware(testSecret, accountSet{7: true}), req)
	require.NoError(t, err)
	require.Equal(t, uint(7), claims.UserID)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	_, claims, err = run(JWTAuthMiddleware(testSecret, accountSet{}), req)
	require.Equal(t, http.StatusUnauthorized, statusOf(t, err))
	require.Nil(t, claims)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	_, _, err = run(JWTAuthMiddleware(testSecret, failingAccounts{}), req)
	require.Equal(t, http.StatusInternalServerError, statusOf(t, err))
}

func TestOptionalJWTAuthTreatsDeletedAccountAsAnonymous(t *testing.T) {
	token := signedToken(t, testSecret, validClaims(models.RoleUser))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookie, Value: token})
	rec, claims, err := run(OptionalJWTAuthMiddleware(testSecret, accountSet{}), req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Nil(t, claims)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookie, Value: token})
	_, claims, err = run(OptionalJWTAuthMiddleware(testSecret, accountSet{7: true}), req)
	require.NoError(t, err)
	require.Equal(t, uint(7), claims.UserID)
}
