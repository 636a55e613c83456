package usecase

import (
	"context"
	"log/slog"
	"strings"

	"link-hub/internal/domain"
)

// SendOTP requests a one-time password email from the upstream service.
// The only unauthenticated upstream call in the gateway.
type SendOTP struct {
	sender domain.OTPSender
	logger *slog.Logger
}

// NewSendOTP creates the OTP usecase.
func NewSendOTP(s domain.OTPSender, l *slog.Logger) *SendOTP {
	return &SendOTP{sender: s, logger: l}
}

// Execute sends the OTP request for the given email address.
func (uc *SendOTP) Execute(ctx context.Context, email string) error {
	if !strings.Contains(email, "@") {
		return domain.ErrInvalidEmail
	}

	if err := uc.sender.SendOTP(ctx, email); err != nil {
		uc.logger.WarnContext(ctx, "otp request failed", "error", err)
		return err
	}
	return nil
}
