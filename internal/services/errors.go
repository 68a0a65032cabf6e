package services

import (
	"errors"

	"github.com/anonto42/inkwell/backend/internal/repositories"
)

var (
	ErrNotFound           = repositories.ErrNotFound
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("already exists")
	ErrBanned             = errors.New("account banned")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidCode        = errors.New("invalid or expired reset code")
)
