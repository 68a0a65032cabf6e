package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/anonto42/inkwell/backend/internal/middleware"
	"github.com/anonto42/inkwell/backend/internal/models"
	"github.com/anonto42/inkwell/backend/internal/repositories"
	"github.com/anonto42/inkwell/backend/internal/services"
	"github.com/anonto42/inkwell/backend/pkg/firebase"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 72 * time.Hour

// GoogleVerifier checks a Firebase ID token from a Google sign-in.
type GoogleVerifier interface {
	VerifyGoogleToken(ctx context.Context, idToken string) (*firebase.GoogleIdentity, error)
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	userRepository repositories.UserRepository
	banRepository  repositories.BanRepository
	passwordResets *services.PasswordResetService
	google         GoogleVerifier
	jwtSecret      string
	secureCookies  bool
}

// NewAuthHandler creates a new AuthHandler. google may be nil, which
// disables Google sign-in.
func NewAuthHandler(
	userRepo repositories.UserRepository,
	banRepo repositories.BanRepository,
	passwordResets *services.PasswordResetService,
	google GoogleVerifier,
	jwtSecret string,
	secureCookies bool,
) *AuthHandler {
	return &AuthHandler{
		userRepository: userRepo,
		banRepository:  banRepo,
		passwordResets: passwordResets,
		google:         google,
		jwtSecret:      jwtSecret,
		secureCookies:  secureCookies,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	g.POST("/google-login", h.GoogleLogin)
	g.GET("/logout", h.Logout)
	g.POST("/send-reset-code", h.SendResetCode)
	g.POST("/verify-reset-code", h.VerifyResetCode)
	g.POST("/reset-password", h.ResetPassword)
}

// Register handles local user registration with email and password
func (h *AuthHandler) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password").SetInternal(err)
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashedPassword),
		Role:     models.RoleUser,
	}
	if err := h.userRepository.CreateUser(c.Request().Context(), user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return echo.NewHTTPError(http.StatusConflict, "User already registered.")
		}
		return httpError(err, "Failed to register user")
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "message": "Registration successful."})
}

// Login authenticates with email and password and issues a session token
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	if err := h.checkBan(ctx, req.Email); err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return notFound(err, "User not found!", "Failed to sign in")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Wrong password!")
	}

	return h.startSession(c, user, "Login successful.")
}

// GoogleLogin verifies a Firebase ID token, creating the user on first sign-in
func (h *AuthHandler) GoogleLogin(c echo.Context) error {
	if h.google == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Google sign-in is not configured")
	}

	var req models.GoogleLoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	identity, err := h.google.VerifyGoogleToken(ctx, req.IDToken)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Google ID token").SetInternal(err)
	}
	if err := h.checkBan(ctx, identity.Email); err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByEmail(ctx, identity.Email)
	if errors.Is(err, repositories.ErrNotFound) {
		// Google accounts get an unguessable password; they sign in through Google
		// or reset it by e-mail.
		hashedPassword, hashErr := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
		if hashErr != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create user").SetInternal(hashErr)
		}
		user = &models.User{
			Name:     identity.Name,
			Email:    identity.Email,
			Avatar:   identity.Avatar,
			Password: string(hashedPassword),
			Role:     models.RoleUser,
		}
		err = h.userRepository.CreateUser(ctx, user)
	}
	if err != nil {
		return httpError(err, "Failed to sign in with Google")
	}

	return h.startSession(c, user, "Login successful.")
}

// Logout clears the session cookie
func (h *AuthHandler) Logout(c echo.Context) error {
	cookie := h.sessionCookie("")
	cookie.Expires = time.Unix(0, 0)
	cookie.MaxAge = -1
	c.SetCookie(cookie)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Logout successful."})
}

func (h *AuthHandler) SendResetCode(c echo.Context) error {
	var req models.SendResetCodeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.passwordResets.SendCode(c.Request().Context(), req.Email); err != nil {
		return notFound(err, "User not found", "Failed to send reset code")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Reset code sent to your email"})
}

func (h *AuthHandler) VerifyResetCode(c echo.Context) error {
	var req models.VerifyResetCodeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.passwordResets.VerifyCode(c.Request().Context(), req.Email, req.Code); err != nil {
		return httpError(err, "Failed to verify code")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Code verified successfully"})
}

func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req models.ResetPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.passwordResets.ResetPassword(c.Request().Context(), req.Email, req.Code, req.NewPassword); err != nil {
		return notFound(err, "User not found", "Failed to reset password")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Password reset successfully"})
}

func (h *AuthHandler) checkBan(ctx context.Context, email string) error {
	banned, err := h.banRepository.IsBanned(ctx, email)
	if err != nil {
		return httpError(err, "Failed to sign in")
	}
	if banned {
		return echo.NewHTTPError(http.StatusForbidden, "You are banned by the Admin. Please contact the administrator for more details.")
	}
	return nil
}

func (h *AuthHandler) startSession(c echo.Context, user *models.User, message string) error {
	token, err := h.generateJWT(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token").SetInternal(err)
	}
	c.SetCookie(h.sessionCookie(token))
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": message,
		"user":    user,
		"token":   token,
	})
}

func (h *AuthHandler) sessionCookie(value string) *http.Cookie {
	cookie := &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(tokenTTL.Seconds()),
	}
	if h.secureCookies {
		cookie.SameSite = http.SameSiteNoneMode
	}
	return cookie
}

// generateJWT generates a JWT token for a given user
func (h *AuthHandler) generateJWT(user *models.User) (string, error) {
	claims := &models.JwtCustomClaims{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Avatar: user.Avatar,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}
