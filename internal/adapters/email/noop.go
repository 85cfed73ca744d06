package email

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// NoopSender logs sends but does not deliver anything.
// It is the default transport in development.
type NoopSender struct {
	logger *zap.Logger
}

// NewNoopSender creates a new NoopSender.
func NewNoopSender(logger *zap.Logger) *NoopSender {
	return &NoopSender{logger: logger}
}

// Send logs the email but does not deliver it.
// PRE: req is a valid SendRequest
// POST: Returns a noop result without actual delivery
func (s *NoopSender) Send(_ context.Context, req SendRequest) (SendResult, error) {
	s.logger.Info("noop_email_send", zap.Strings("to", req.To), zap.String("subject", req.Subject))
	return SendResult{
		MessageID: fmt.Sprintf("noop-%d", time.Now().UnixNano()),
		SentAt:    time.Now(),
	}, nil
}
