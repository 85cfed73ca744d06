package business

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength        = 120
	MaxCategoryLength    = 80
	MaxDescriptionLength = 2000
	MaxLogoTextLength    = 16
)

// MaxLogoImageBytes bounds uploaded logo images before encoding.
const MaxLogoImageBytes = 512 * 1024

// Domain errors
var (
	ErrEmptyName          = errors.New("business name cannot be empty")
	ErrNameTooLong        = errors.New("business name is too long")
	ErrEmptyCategory      = errors.New("business category cannot be empty")
	ErrCategoryTooLong    = errors.New("business category is too long")
	ErrEmptyDescription   = errors.New("business description cannot be empty")
	ErrDescriptionTooLong = errors.New("business description is too long")
	ErrLogoTooLong        = errors.New("business logo text must be a short symbol or an image")
	ErrLogoNotImage       = errors.New("business logo upload must be an image")
	ErrLogoImageTooLarge  = errors.New("business logo image exceeds 512 KiB")
	ErrEmptyLogoImage     = errors.New("business logo image is empty")
)

// Business is a community enterprise shown in the public directory.
type Business struct {
	ID          string
	Name        string
	Logo        string // a short glyph, or a data:image URI for uploaded logos
	Category    string
	Description string
	IsNew       bool
	CreatedAt   time.Time
}

// Validate checks if the Business has valid data.
// PRE: Business struct is populated
// POST: Returns nil if valid, error otherwise
func (b *Business) Validate() error {
	if err := validateName(b.Name); err != nil {
		return err
	}
	if err := validateCategory(b.Category); err != nil {
		return err
	}
	if err := validateDescription(b.Description); err != nil {
		return err
	}
	return validateLogo(b.Logo)
}

// LogoIsImage reports whether the logo holds an uploaded image.
func (b Business) LogoIsImage() bool {
	return strings.HasPrefix(b.Logo, "data:image/")
}

// Patch is a partial update; nil fields are left unchanged.
type Patch struct {
	Name        *string
	Logo        *string
	Category    *string
	Description *string
	IsNew       *bool
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Logo == nil && p.Category == nil && p.Description == nil && p.IsNew == nil
}

// Validate checks the fields that are present.
// PRE: none
// POST: Returns nil if every present field is valid
func (p Patch) Validate() error {
	if p.Name != nil {
		if err := validateName(*p.Name); err != nil {
			return err
		}
	}
	if p.Category != nil {
		if err := validateCategory(*p.Category); err != nil {
			return err
		}
	}
	if p.Description != nil {
		if err := validateDescription(*p.Description); err != nil {
			return err
		}
	}
	if p.Logo != nil {
		return validateLogo(*p.Logo)
	}
	return nil
}

// EncodeLogo turns an uploaded image into the data URI stored in Logo.
// PRE: contentType is the upload's declared MIME type
// POST: Returns "data:<type>;base64,<payload>" or a domain error
func EncodeLogo(contentType string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyLogoImage
	}
	if len(data) > MaxLogoImageBytes {
		return "", ErrLogoImageTooLarge
	}
	contentType = strings.TrimSpace(strings.ToLower(contentType))
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", ErrLogoNotImage
	}
	return fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(data)), nil
}

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if len(name) > MaxNameLength {
		return ErrNameTooLong
	}
	return nil
}

func validateCategory(category string) error {
	category = strings.TrimSpace(category)
	if category == "" {
		return ErrEmptyCategory
	}
	if len(category) > MaxCategoryLength {
		return ErrCategoryTooLong
	}
	return nil
}

func validateDescription(description string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return ErrEmptyDescription
	}
	if len(description) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	return nil
}

func validateLogo(logo string) error {
	if strings.HasPrefix(logo, "data:") {
		if !strings.HasPrefix(logo, "data:image/") {
			return ErrLogoNotImage
		}
		return nil
	}
	if len([]rune(logo)) > MaxLogoTextLength {
		return ErrLogoTooLong
	}
	return nil
}
