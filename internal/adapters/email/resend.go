package email

import (
	"context"
	"fmt"
	"time"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

// ResendSender sends emails via the Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
	logger *zap.Logger
}

// NewResendSender creates a new ResendSender with the given API key and default from address.
// PRE: apiKey is a valid Resend API key; from is a valid sender address
// POST: Returns a ready-to-use sender
func NewResendSender(apiKey, from string, logger *zap.Logger) *ResendSender {
	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   from,
		logger: logger,
	}
}

// Send sends a single email via Resend.
// PRE: req has at least one recipient and a subject
// POST: Email is queued for delivery; returns the Resend message ID
func (s *ResendSender) Send(ctx context.Context, req SendRequest) (SendResult, error) {
	sent, err := s.client.Emails.SendWithContext(ctx, resendParams(req, s.from))
	if err != nil {
		s.logger.Error("resend_send_failed", zap.Error(err), zap.Strings("to", req.To), zap.String("subject", req.Subject))
		return SendResult{}, fmt.Errorf("resend send failed: %w", err)
	}

	s.logger.Info("resend_sent", zap.String("message_id", sent.Id), zap.Strings("to", req.To))
	return SendResult{
		MessageID: sent.Id,
		SentAt:    time.Now(),
	}, nil
}

func resendParams(req SendRequest, defaultFrom string) *resend.SendEmailRequest {
	from := req.From
	if from == "" {
		from = defaultFrom
	}
	params := &resend.SendEmailRequest{
		From:    from,
		To:      req.To,
		Subject: req.Subject,
		Text:    req.Text,
		Html:    req.HTML,
	}
	if req.ReplyTo != "" {
		params.ReplyTo = req.ReplyTo
	}
	return params
}
