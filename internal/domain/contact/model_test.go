package contact

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageValidate(t *testing.T) {
	m := Message{Name: "Joy", Email: "joy@example.com", Message: "Hello"}
	require.NoError(t, m.Validate())

	m.Email = "joy"
	assert.ErrorIs(t, m.Validate(), ErrInvalidEmail)

	m = Message{Name: " ", Email: "joy@example.com", Message: "Hello"}
	assert.ErrorIs(t, m.Validate(), ErrEmptyName)

	m = Message{Name: "Joy", Email: "joy@example.com"}
	assert.ErrorIs(t, m.Validate(), ErrEmptyMessage)
}

func TestCompose(t *testing.T) {
	d := Compose("info@kingdombusinessstudio.com", Message{
		Name:    "Joy Achieng",
		Email:   "joy@example.com",
		Message: "When does the next cohort start?",
	})

	assert.Equal(t, "info@kingdombusinessstudio.com", d.To)
	assert.Equal(t, "joy@example.com", d.ReplyTo)
	assert.Equal(t, "Contact Form Message from Joy Achieng", d.Subject)
	assert.Equal(t,
		"Name: Joy Achieng\nEmail: joy@example.com\n\nMessage:\nWhen does the next cohort start?\n\n---\n"+SignatureLine,
		d.Body)
}

func TestMailtoURL(t *testing.T) {
	d := Compose("info@example.com", Message{Name: "A B", Email: "a@b.co", Message: "1+1=2 & more"})
	link := d.MailtoURL()

	require.True(t, strings.HasPrefix(link, "mailto:info@example.com?subject="))
	assert.NotContains(t, link, "+")
	assert.Contains(t, link, "Contact%20Form%20Message%20from%20A%20B")

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, d.Body, u.Query().Get("body"))
}
