package email

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"go.uber.org/zap"
)

const charsetUTF8 = "UTF-8"

// sesAPI is the subset of the SES client the sender uses.
type sesAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SESSender sends emails through Amazon SES.
type SESSender struct {
	client sesAPI
	from   string
	logger *zap.Logger
}

// NewSESSender loads AWS credentials from the default chain for region.
// PRE: region is a valid AWS region with SES enabled
// POST: Returns a ready-to-use sender or the credential-loading error
func NewSESSender(ctx context.Context, region, from string, logger *zap.Logger) (*SESSender, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &SESSender{client: ses.NewFromConfig(cfg), from: from, logger: logger}, nil
}

// Send sends a single email via SES.
// PRE: req has at least one recipient and a subject
// POST: Email is accepted by SES; returns the SES message ID
func (s *SESSender) Send(ctx context.Context, req SendRequest) (SendResult, error) {
	from := req.From
	if from == "" {
		from = s.from
	}
	body := &types.Body{}
	if req.Text != "" {
		body.Text = &types.Content{Data: aws.String(req.Text), Charset: aws.String(charsetUTF8)}
	}
	if req.HTML != "" {
		body.Html = &types.Content{Data: aws.String(req.HTML), Charset: aws.String(charsetUTF8)}
	}
	input := &ses.SendEmailInput{
		Source:      aws.String(from),
		Destination: &types.Destination{ToAddresses: req.To},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(req.Subject), Charset: aws.String(charsetUTF8)},
			Body:    body,
		},
	}
	if req.ReplyTo != "" {
		input.ReplyToAddresses = []string{req.ReplyTo}
	}

	out, err := s.client.SendEmail(ctx, input)
	if err != nil {
		s.logger.Error("ses_send_failed", zap.Error(err), zap.Strings("to", req.To), zap.String("subject", req.Subject))
		return SendResult{}, fmt.Errorf("ses send failed: %w", err)
	}

	id := aws.ToString(out.MessageId)
	s.logger.Info("ses_sent", zap.String("message_id", id), zap.Strings("to", req.To))
	return SendResult{MessageID: id, SentAt: time.Now()}, nil
}
