package usecases

import (
	"context"
	"errors"
	"strconv"
	"time"

	"go.uber.org/zap"

	"obra-connect.backend/internal/domain/entities"
	domainerrors "obra-connect.backend/internal/domain/errors"
	"obra-connect.backend/internal/domain/repositories"
	"obra-connect.backend/pkg/crypto"
	"obra-connect.backend/pkg/logger"
)

// TemplatePasswordReset is the mail template carrying the reset code
const TemplatePasswordReset = "password_reset"

var generateResetCode = func() (string, error) {
	return crypto.GenerateNumericCode(ResetCodeDigits)
}

// PasswordResetUsecase issues and redeems short-lived single-use reset codes
type PasswordResetUsecase struct {
	userRepo    repositories.UserRepository
	codes       ResetCodeStore
	mailer      Mailer
	ttl         time.Duration
	maxAttempts int64
}

// NewPasswordResetUsecase creates a new password reset usecase
func NewPasswordResetUsecase(userRepo repositories.UserRepository, codes ResetCodeStore, mailer Mailer, ttl time.Duration, maxAttempts int) *PasswordResetUsecase {
	if ttl <= 0 {
		ttl = DefaultResetCodeTTL
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultResetMaxAttempt
	}
	return &PasswordResetUsecase{
		userRepo:    userRepo,
		codes:       codes,
		mailer:      mailer,
		ttl:         ttl,
		maxAttempts: int64(maxAttempts),
	}
}

// RequestReset mails a code when an active account exists. The outcome is
// never reported to the caller so accounts cannot be enumerated.
func (u *PasswordResetUsecase) RequestReset(ctx context.Context, email string) {
	email = normalizeEmail(email)

	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, domainerrors.ErrNotFound) {
			logger.Error(ctx, "Password reset lookup failed", zap.Error(err))
		}
		return
	}
	if !user.Active {
		logger.Warn(ctx, "Password reset requested for disabled account", zap.String("user_id", user.ID.String()))
		return
	}

	code, err := generateResetCode()
	if err != nil {
		logger.Error(ctx, "Password reset code generation failed", zap.Error(err))
		return
	}
	if err := u.codes.Save(ctx, email, crypto.DigestToken(code), u.ttl); err != nil {
		logger.Error(ctx, "Password reset code not stored", zap.Error(err))
		return
	}

	err = u.mailer.Send(ctx, TemplatePasswordReset, email, map[string]string{
		"name":       user.Name,
		"code":       code,
		"ttlMinutes": strconv.Itoa(int(u.ttl / time.Minute)),
	})
	if err != nil {
		logger.Error(ctx, "Password reset email not delivered", zap.String("user_id", user.ID.String()), zap.Error(err))
	}
}

func invalidResetCode() *domainerrors.AppError {
	return domainerrors.FieldError("code", "invalid or expired code")
}

// ResetPassword redeems a code and sets the new password
func (u *PasswordResetUsecase) ResetPassword(ctx context.Context, input *entities.ResetPasswordInput) error {
	if input.Password != input.ConfirmPassword {
		return domainerrors.FieldError("confirmPassword", "passwords do not match")
	}
	email := normalizeEmail(input.Email)

	digest, found, err := u.codes.Digest(ctx, email)
	if err != nil {
		return err
	}
	if !found {
		return invalidResetCode()
	}

	// the guess budget spans every code issued in the window
	failures, err := u.codes.Failures(ctx, email)
	if err != nil {
		return err
	}
	if failures >= u.maxAttempts {
		if _, err := u.codes.Consume(ctx, email); err != nil {
			return err
		}
		return invalidResetCode()
	}

	if !crypto.EqualDigest(crypto.DigestToken(input.Code), digest) {
		attempts, err := u.codes.RegisterFailure(ctx, email, u.ttl)
		if err != nil {
			return err
		}
		if attempts >= u.maxAttempts {
			if _, err := u.codes.Consume(ctx, email); err != nil {
				return err
			}
			logger.Warn(ctx, "Password reset code burned after repeated failures", zap.Int64("attempts", attempts))
		}
		return invalidResetCode()
	}

	consumed, err := u.codes.Consume(ctx, email)
	if err != nil {
		return err
	}
	if !consumed {
		return invalidResetCode()
	}

	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return invalidResetCode()
		}
		return err
	}
	if !user.Active {
		return invalidResetCode()
	}

	hash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return err
	}
	if err := u.userRepo.UpdatePassword(ctx, user.ID, hash); err != nil {
		return err
	}
	logger.Info(ctx, "Password reset completed", zap.String("user_id", user.ID.String()))
	return nil
}
