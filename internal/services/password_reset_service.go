package services

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/anonto42/inkwell/backend/internal/repositories"
	"github.com/anonto42/inkwell/backend/pkg/mailer"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const ResetCodeTTL = 10 * time.Minute

type PasswordResetService struct {
	users  repositories.UserRepository
	codes  repositories.ResetCodeRepository
	mail   mailSender
	logger *zap.SugaredLogger
}

func NewPasswordResetService(users repositories.UserRepository, codes repositories.ResetCodeRepository, mail mailSender, logger *zap.SugaredLogger) *PasswordResetService {
	return &PasswordResetService{users: users, codes: codes, mail: mail, logger: logger}
}

// SendCode issues a fresh 6-digit code for email and mails it.
func (s *PasswordResetService) SendCode(ctx context.Context, email string) error {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}

	code, err := generateCode()
	if err != nil {
		return err
	}
	if err := s.codes.SetCode(ctx, email, code, ResetCodeTTL); err != nil {
		return err
	}
	if err := s.mail.Send(mailer.PasswordResetCode(email, user.Name, code, ResetCodeTTL)); err != nil {
		s.logger.Errorw("email sending error", "email", email, "error", err)
		return fmt.Errorf("send reset code: %w", err)
	}
	return nil
}

func (s *PasswordResetService) VerifyCode(ctx context.Context, email, code string) error {
	stored, err := s.codes.GetCode(ctx, email)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrInvalidCode
	}
	if err != nil {
		return err
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
		return ErrInvalidCode
	}
	return nil
}

// ResetPassword replaces the password of email once code checks out; the
// code is single use.
func (s *PasswordResetService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	if err := s.VerifyCode(ctx, email, code); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, email, string(hash)); err != nil {
		return err
	}
	if err := s.codes.ClearCode(ctx, email); err != nil {
		s.logger.Warnw("could not clear reset code", "email", email, "error", err)
	}
	return nil
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
