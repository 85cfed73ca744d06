package site

import (
	"context"

	"go.uber.org/zap"

	"kingdomstudio/internal/domain/contact"
	"kingdomstudio/internal/metrics"
)

// ComposeContactMessage validates m and builds a draft addressed to the
// current contact email. Nothing is sent.
func (c *Controller) ComposeContactMessage(m contact.Message) (contact.Draft, error) {
	if err := m.Validate(); err != nil {
		return contact.Draft{}, err
	}
	return contact.Compose(c.Snapshot().ContactInfo.Email, m), nil
}

// SendContactMessage composes the draft and hands it to the mail
// transport without waiting. Delivery is not confirmed or retried.
// POST: the returned draft is also usable as a mailto: fallback
func (c *Controller) SendContactMessage(m contact.Message) (contact.Draft, error) {
	draft, err := c.ComposeContactMessage(m)
	if err != nil {
		return contact.Draft{}, err
	}
	if c.mailer == nil {
		return draft, nil
	}

	c.mailWG.Add(1)
	go func() {
		defer c.mailWG.Done()
		ctx, cancel := context.WithTimeout(c.mailCtx, c.mailTimeout)
		defer cancel()

		if err := c.mailer.SendDraft(ctx, draft); err != nil {
			metrics.ContactDispatches.WithLabelValues(metrics.ResultError).Inc()
			c.logger.Warn("contact_event", zap.String("event", "dispatch_failed"), zap.Error(err))
			return
		}
		metrics.ContactDispatches.WithLabelValues(metrics.ResultOK).Inc()
		c.logger.Info("contact_event", zap.String("event", "dispatched"), zap.String("to", draft.To))
	}()
	return draft, nil
}
