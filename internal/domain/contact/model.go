package contact

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// SignatureLine closes every composed message.
const SignatureLine = "Sent from Kingdom Business Studio Contact Form"

// Domain errors
var (
	ErrEmptyName    = errors.New("name is required")
	ErrEmptyEmail   = errors.New("email is required")
	ErrInvalidEmail = errors.New("email must contain '@'")
	ErrEmptyMessage = errors.New("message is required")
)

// Message is what a visitor types into the contact form.
type Message struct {
	Name    string
	Email   string
	Message string
}

// Validate checks if the Message has valid data.
// PRE: Message struct is populated
// POST: Returns nil if valid, error otherwise
func (m *Message) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return ErrEmptyName
	}
	email := strings.TrimSpace(m.Email)
	if email == "" {
		return ErrEmptyEmail
	}
	if !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	if strings.TrimSpace(m.Message) == "" {
		return ErrEmptyMessage
	}
	return nil
}

// Draft is a composed outbound message addressed to the studio.
type Draft struct {
	To      string
	ReplyTo string
	Subject string
	Body    string
}

// Compose builds the draft sent to the studio inbox.
// PRE: m passed Validate
// POST: Subject names the sender; Body ends with SignatureLine
func Compose(to string, m Message) Draft {
	name := strings.TrimSpace(m.Name)
	email := strings.TrimSpace(m.Email)
	body := fmt.Sprintf("Name: %s\nEmail: %s\n\nMessage:\n%s\n\n---\n%s",
		name, email, strings.TrimSpace(m.Message), SignatureLine)
	return Draft{
		To:      to,
		ReplyTo: email,
		Subject: "Contact Form Message from " + name,
		Body:    body,
	}
}

// MailtoURL renders the draft as a mailto: link for the visitor's mail client.
func (d Draft) MailtoURL() string {
	return "mailto:" + d.To + "?subject=" + escape(d.Subject) + "&body=" + escape(d.Body)
}

// escape percent-encodes like a URI component: spaces become %20, not +.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
