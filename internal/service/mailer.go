package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/primestaffing/recruiter-tracker/internal/mail"
)

const mailTimeout = 15 * time.Second

// Mailer delivers account emails.
type Mailer interface {
	SendWelcome(ctx context.Context, welcome mail.Welcome) error
	SendPasswordReset(ctx context.Context, reset mail.PasswordReset) error
}

// dispatcher runs email delivery off the request path.
type dispatcher func(fn func())

func goDispatch(fn func()) { go fn() }

// sendDetached runs send with a context that survives the request but is bounded by mailTimeout.
// Failures are only logged.
func sendDetached(ctx context.Context, dispatch dispatcher, logger zerolog.Logger, kind string, send func(context.Context) error) {
	detached := context.WithoutCancel(ctx)
	dispatch(func() {
		sendCtx, cancel := context.WithTimeout(detached, mailTimeout)
		defer cancel()
		if err := send(sendCtx); err != nil {
			logger.Error().Err(err).Str("email", kind).Msg("failed to send email")
		}
	})
}
