package blogpost

import (
	"encoding/base64"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// DateLayout is the calendar-date format used for publication dates.
const DateLayout = "2006-01-02"

// Max length constants for user-editable fields.
const (
	MaxTitleLength   = 200
	MaxExcerptLength = 500
	MaxAuthorLength  = 120
)

// MaxImageBytes bounds uploaded post images before encoding.
const MaxImageBytes = 1 << 20

// Domain errors
var (
	ErrEmptyTitle     = errors.New("post title cannot be empty")
	ErrTitleTooLong   = errors.New("post title is too long")
	ErrEmptyExcerpt   = errors.New("post excerpt cannot be empty")
	ErrExcerptTooLong = errors.New("post excerpt is too long")
	ErrEmptyContent   = errors.New("post content cannot be empty")
	ErrEmptyAuthor    = errors.New("post author cannot be empty")
	ErrEmptyCategory  = errors.New("post category cannot be empty")
	ErrMissingDate    = errors.New("post date is required")
	ErrInvalidDate    = errors.New("post date must be YYYY-MM-DD")
	ErrInvalidImage   = errors.New("post image must be an http(s) URL or an uploaded image")
	ErrImageNotImage  = errors.New("post image upload must be an image")
	ErrImageTooLarge  = errors.New("post image exceeds 1 MiB")
	ErrEmptyImage     = errors.New("post image upload is empty")
)

// BlogPost is an article on the public blog. Content is Markdown.
type BlogPost struct {
	ID       string
	Title    string
	Excerpt  string
	Content  string
	Author   string
	Date     time.Time
	Category string
	ImageURL string
}

// Validate checks if the BlogPost has valid data.
// PRE: BlogPost struct is populated
// POST: Returns nil if valid, error otherwise
func (p *BlogPost) Validate() error {
	if err := validateTitle(p.Title); err != nil {
		return err
	}
	if err := validateExcerpt(p.Excerpt); err != nil {
		return err
	}
	if strings.TrimSpace(p.Content) == "" {
		return ErrEmptyContent
	}
	if err := validateAuthor(p.Author); err != nil {
		return err
	}
	if p.Date.IsZero() {
		return ErrMissingDate
	}
	if strings.TrimSpace(p.Category) == "" {
		return ErrEmptyCategory
	}
	return validateImageURL(p.ImageURL)
}

// DateString renders the publication date as YYYY-MM-DD.
func (p BlogPost) DateString() string {
	if p.Date.IsZero() {
		return ""
	}
	return p.Date.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD publication date.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrMissingDate
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// SortByDateDesc orders posts newest first. Equal dates keep their order.
func SortByDateDesc(posts []BlogPost) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Date.After(posts[j].Date)
	})
}

// Patch is a partial update; nil fields are left unchanged.
type Patch struct {
	Title    *string
	Excerpt  *string
	Content  *string
	Author   *string
	Date     *time.Time
	Category *string
	ImageURL *string
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Excerpt == nil && p.Content == nil && p.Author == nil &&
		p.Date == nil && p.Category == nil && p.ImageURL == nil
}

// Validate checks the fields that are present.
func (p Patch) Validate() error {
	if p.Title != nil {
		if err := validateTitle(*p.Title); err != nil {
			return err
		}
	}
	if p.Excerpt != nil {
		if err := validateExcerpt(*p.Excerpt); err != nil {
			return err
		}
	}
	if p.Content != nil && strings.TrimSpace(*p.Content) == "" {
		return ErrEmptyContent
	}
	if p.Author != nil {
		if err := validateAuthor(*p.Author); err != nil {
			return err
		}
	}
	if p.Date != nil && p.Date.IsZero() {
		return ErrMissingDate
	}
	if p.Category != nil && strings.TrimSpace(*p.Category) == "" {
		return ErrEmptyCategory
	}
	if p.ImageURL != nil {
		return validateImageURL(*p.ImageURL)
	}
	return nil
}

func validateTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}
	if len(title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	return nil
}

func validateExcerpt(excerpt string) error {
	excerpt = strings.TrimSpace(excerpt)
	if excerpt == "" {
		return ErrEmptyExcerpt
	}
	if len(excerpt) > MaxExcerptLength {
		return ErrExcerptTooLong
	}
	return nil
}

func validateAuthor(author string) error {
	if strings.TrimSpace(author) == "" {
		return ErrEmptyAuthor
	}
	return nil
}

// ImageIsUpload reports whether ImageURL holds an uploaded image rather
// than a link.
func (p BlogPost) ImageIsUpload() bool {
	return strings.HasPrefix(p.ImageURL, "data:image/")
}

// EncodeImage turns an uploaded image into the data URI stored in ImageURL.
// PRE: contentType is the upload's declared MIME type
// POST: Returns "data:<type>;base64,<payload>" or a domain error
func EncodeImage(contentType string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyImage
	}
	if len(data) > MaxImageBytes {
		return "", ErrImageTooLarge
	}
	contentType = strings.TrimSpace(strings.ToLower(contentType))
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", ErrImageNotImage
	}
	return fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(data)), nil
}

// validateImageURL accepts an empty value; the page falls back to a placeholder.
func validateImageURL(raw string) error {
	switch {
	case raw == "":
		return nil
	case strings.HasPrefix(raw, "data:image/"):
		return nil
	case strings.HasPrefix(raw, "https://"), strings.HasPrefix(raw, "http://"):
		return nil
	}
	return ErrInvalidImage
}
