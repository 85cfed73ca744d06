package program

import (
	"errors"
	"slices"
	"strings"
)

// Canonical program identifiers. Only these three records exist.
const (
	IDWhatsInYourHand = "whats-in-your-hand"
	IDNetInTheDeep    = "net-in-the-deep"
	IDTheBoat         = "the-boat"
)

// Palette tokens
const (
	ColorRoyalBlue     = "royal-blue"
	ColorMustardYellow = "mustard-yellow"
	ColorIvory         = "ivory"
)

// CanonicalIDs lists program ids in display order.
var CanonicalIDs = []string{IDWhatsInYourHand, IDNetInTheDeep, IDTheBoat}

// ValidPrimaryColors contains the tokens allowed as a primary color.
var ValidPrimaryColors = []string{ColorRoyalBlue, ColorMustardYellow}

// ValidAccentColors contains the tokens allowed as accents.
var ValidAccentColors = []string{ColorRoyalBlue, ColorMustardYellow, ColorIvory}

// Domain errors
var (
	ErrUnknownProgram      = errors.New("program id must be one of: whats-in-your-hand, net-in-the-deep, the-boat")
	ErrEmptyName           = errors.New("program name cannot be empty")
	ErrEmptyDescription    = errors.New("program description cannot be empty")
	ErrInvalidPrimaryColor = errors.New("primary color must be 'royal-blue' or 'mustard-yellow'")
	ErrInvalidAccentColor  = errors.New("accent colors must be royal-blue, mustard-yellow or ivory")
	ErrNoFeatures          = errors.New("program needs at least one feature")
	ErrEmptyFeature        = errors.New("program features cannot be blank")
)

// Program is one of the studio's fixed offerings.
type Program struct {
	ID           string
	Name         string
	Description  string
	PrimaryColor string
	AccentColors []string
	Features     []string
}

// Validate checks if the Program has valid data.
// PRE: Program struct is populated
// POST: Returns nil if valid, error otherwise
func (p *Program) Validate() error {
	if !IsCanonicalID(p.ID) {
		return ErrUnknownProgram
	}
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(p.Description) == "" {
		return ErrEmptyDescription
	}
	if !slices.Contains(ValidPrimaryColors, p.PrimaryColor) {
		return ErrInvalidPrimaryColor
	}
	if err := validateAccents(p.AccentColors); err != nil {
		return err
	}
	return validateFeatures(p.Features)
}

// IsCanonicalID reports whether id names one of the three programs.
func IsCanonicalID(id string) bool {
	return slices.Contains(CanonicalIDs, id)
}

// Patch is a partial update. Nil pointers and nil slices are left unchanged.
type Patch struct {
	Name         *string
	Description  *string
	PrimaryColor *string
	AccentColors []string
	Features     []string
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.PrimaryColor == nil &&
		p.AccentColors == nil && p.Features == nil
}

// Validate checks the fields that are present.
func (p Patch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return ErrEmptyName
	}
	if p.Description != nil && strings.TrimSpace(*p.Description) == "" {
		return ErrEmptyDescription
	}
	if p.PrimaryColor != nil && !slices.Contains(ValidPrimaryColors, *p.PrimaryColor) {
		return ErrInvalidPrimaryColor
	}
	if p.AccentColors != nil {
		if err := validateAccents(p.AccentColors); err != nil {
			return err
		}
	}
	if p.Features != nil {
		return validateFeatures(p.Features)
	}
	return nil
}

// Defaults returns fresh copies of the three canonical programs.
// POST: callers may modify the result freely
func Defaults() []Program {
	return []Program{
		{
			ID:   IDWhatsInYourHand,
			Name: "What's in Your Hand",
			Description: "An 8-week business development studio for kingdom-minded individuals who want to build ventures rooted in God's vision. " +
				"Whether transitioning from a 9–5 or launching a business alongside your job, this program helps participants create, refine, " +
				"and launch a profitable venture, guided by biblical values, spiritual clarity, and strategic structure.",
			PrimaryColor: ColorRoyalBlue,
			AccentColors: []string{ColorMustardYellow, ColorIvory},
			Features: []string{
				"8-week intensive program",
				"Biblical business principles",
				"Spiritual clarity sessions",
				"Strategic structure development",
				"Peer collaboration",
				"Expert mentorship",
			},
		},
		{
			ID:   IDNetInTheDeep,
			Name: "Net in the Deep",
			Description: "A track for those ready to go deeper. It focuses on scaling, structure, spiritual discipline, and obedience-driven action. " +
				"Ideal for those with businesses in development who want to formalize and scale in alignment with their faith.",
			PrimaryColor: ColorMustardYellow,
			AccentColors: []string{ColorIvory, ColorRoyalBlue},
			Features: []string{
				"Business scaling strategies",
				"Spiritual discipline training",
				"Obedience-driven action plans",
				"Formalization processes",
				"Faith-aligned scaling",
				"Advanced mentorship",
			},
		},
		{
			ID:   IDTheBoat,
			Name: "The Boat",
			Description: "A content hub for teaching, storytelling, and prophetic business conversations via YouTube. " +
				"Join us for inspiring content that bridges faith and entrepreneurship.",
			PrimaryColor: ColorRoyalBlue,
			AccentColors: []string{ColorMustardYellow, ColorIvory},
			Features: []string{
				"Weekly YouTube content",
				"Prophetic business insights",
				"Success stories",
				"Teaching sessions",
				"Community discussions",
				"Live Q&A sessions",
			},
		},
	}
}

// Find returns the program with the given id.
func Find(programs []Program, id string) (Program, bool) {
	for _, p := range programs {
		if p.ID == id {
			return p, true
		}
	}
	return Program{}, false
}

// SplitFeatures turns one-feature-per-line admin input into a feature list.
func SplitFeatures(text string) []string {
	features := []string{}
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			features = append(features, line)
		}
	}
	return features
}

func validateAccents(colors []string) error {
	for _, c := range colors {
		if !slices.Contains(ValidAccentColors, c) {
			return ErrInvalidAccentColor
		}
	}
	return nil
}

func validateFeatures(features []string) error {
	if len(features) == 0 {
		return ErrNoFeatures
	}
	for _, f := range features {
		if strings.TrimSpace(f) == "" {
			return ErrEmptyFeature
		}
	}
	return nil
}
