package settings

import (
	"encoding/json"
	"errors"
	"math"
	"net/url"
	"strconv"
	"strings"
	"unicode"
)

// Setting keys
const (
	KeyRegistrationPrice = "registration_price"
	KeyContactInfo       = "contact_info"
	KeySocialMediaLinks  = "social_media_links"
	KeyAdminPassword     = "admin_password"
)

// DefaultRegistrationPrice is the fee, in KSh, shown when none is stored.
const DefaultRegistrationPrice = 3000

// Domain errors
var (
	ErrInvalidPrice  = errors.New("registration price must be a positive whole number")
	ErrEmptyEmail    = errors.New("contact email cannot be empty")
	ErrInvalidEmail  = errors.New("contact email must contain '@'")
	ErrEmptyPhone    = errors.New("contact phone cannot be empty")
	ErrInvalidSocial = errors.New("social links must be http(s) URLs")
)

// ContactInfo is how visitors reach the studio.
type ContactInfo struct {
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	WhatsApp string `json:"whatsapp"`
	Location string `json:"location"`
}

// DefaultContactInfo is used when no contact_info row exists or it cannot be read.
func DefaultContactInfo() ContactInfo {
	return ContactInfo{
		Phone:    "+254 700 123 456",
		Email:    "info@kingdombusinessstudio.com",
		WhatsApp: "+254700123456",
		Location: "Nairobi, Kenya",
	}
}

// Validate checks if the ContactInfo has valid data.
// PRE: ContactInfo struct is populated
// POST: Returns nil if valid, error otherwise
func (c *ContactInfo) Validate() error {
	email := strings.TrimSpace(c.Email)
	if email == "" {
		return ErrEmptyEmail
	}
	if !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	if strings.TrimSpace(c.Phone) == "" {
		return ErrEmptyPhone
	}
	return nil
}

// WhatsAppLink returns the wa.me chat link, or "" when no number is set.
func (c ContactInfo) WhatsAppLink() string {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, c.WhatsApp)
	if digits == "" {
		return ""
	}
	return "https://wa.me/" + digits
}

// SocialMediaLinks are the studio's public profiles. Empty means hidden.
type SocialMediaLinks struct {
	Facebook  string `json:"facebook"`
	Instagram string `json:"instagram"`
	Twitter   string `json:"twitter"`
	LinkedIn  string `json:"linkedin"`
}

// DefaultSocialMediaLinks is used when no social_media_links row exists.
func DefaultSocialMediaLinks() SocialMediaLinks {
	return SocialMediaLinks{
		Facebook:  "https://facebook.com/kingdombusinessstudio",
		Instagram: "https://instagram.com/kingdombusinessstudio",
		Twitter:   "https://twitter.com/kingdombusiness",
		LinkedIn:  "https://linkedin.com/company/kingdom-business-studio",
	}
}

// Validate checks every non-empty link is an absolute http(s) URL.
func (s *SocialMediaLinks) Validate() error {
	for _, raw := range []string{s.Facebook, s.Instagram, s.Twitter, s.LinkedIn} {
		if raw == "" {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return ErrInvalidSocial
		}
	}
	return nil
}

// ValidatePrice rejects non-positive fees.
func ValidatePrice(price int) error {
	if price <= 0 {
		return ErrInvalidPrice
	}
	return nil
}

// KESPerUSD is the indicative rate quoted next to the fee.
const KESPerUSD = 130

// ApproxUSD converts a KSh fee to a rounded indicative dollar amount.
func ApproxUSD(kes int) int {
	return int(math.Round(float64(kes) / KESPerUSD))
}

// ParsePrice parses admin form input such as "3,500".
func ParsePrice(s string) (int, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, ErrInvalidPrice
	}
	if err := ValidatePrice(n); err != nil {
		return 0, err
	}
	return n, nil
}

// DecodeRegistrationPrice reads a stored price value. A JSON number is
// used as-is; a JSON string is parsed for its leading integer.
// POST: ok is false when the value cannot be interpreted
func DecodeRegistrationPrice(raw json.RawMessage) (price int, ok bool) {
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		if i, err := n.Int64(); err == nil {
			return int(i), true
		}
		if f, err := n.Float64(); err == nil {
			return int(f), true
		}
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, false
	}
	return leadingInt(Unquote(s))
}

// Unquote strips one pair of literal double quotes left by double-encoded values.
func Unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

// leadingInt mirrors lenient integer parsing: optional sign, then digits,
// ignoring whatever follows.
func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
