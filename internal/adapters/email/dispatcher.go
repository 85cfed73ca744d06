package email

import (
	"context"

	"kingdomstudio/internal/domain/contact"
)

// DraftDispatcher hands composed contact drafts to a Sender.
type DraftDispatcher struct {
	sender Sender
	from   string
}

// NewDraftDispatcher creates a dispatcher sending from the given address.
func NewDraftDispatcher(sender Sender, from string) *DraftDispatcher {
	return &DraftDispatcher{sender: sender, from: from}
}

// SendDraft delivers draft to its recipient with the visitor as reply-to.
// PRE: draft.To is non-empty
// POST: The transport accepted the message, or an error is returned
func (d *DraftDispatcher) SendDraft(ctx context.Context, draft contact.Draft) error {
	_, err := d.sender.Send(ctx, SendRequest{
		To:      []string{draft.To},
		From:    d.from,
		Subject: draft.Subject,
		Text:    draft.Body,
		ReplyTo: draft.ReplyTo,
	})
	return err
}
