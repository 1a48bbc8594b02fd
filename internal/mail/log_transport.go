package mail

import (
	"context"

	"github.com/rs/zerolog"
)

// LogTransport records messages in the log instead of sending them. Used when no API key is configured.
type LogTransport struct {
	logger zerolog.Logger
}

// NewLogTransport constructs a logging transport.
func NewLogTransport(logger zerolog.Logger) *LogTransport {
	return &LogTransport{logger: logger.With().Str("component", "mail_log_transport").Logger()}
}

// Send logs the subject and recipient and reports success.
func (l *LogTransport) Send(ctx context.Context, msg Message) error {
	l.logger.Info().Str("to", msg.To).Str("subject", msg.Subject).Msg("email delivery skipped, no provider configured")
	return nil
}
