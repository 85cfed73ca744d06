package registration

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"
)

// Answer constants
const (
	CollaborationYes = "yes"
	CollaborationNo  = "no"

	BornAgainYes     = "yes"
	BornAgainNotSure = "not-sure"

	AvailableYes   = "yes"
	AvailableHeavy = "heavy"

	TimeMorning = "morning"
	TimeEvening = "evening"
)

// Weekdays lists the selectable session days in calendar order.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid registration")

//go:embed schema.json
var schemaJSON string

var schema *gojsonschema.Schema

func init() {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaJSON))
	if err != nil {
		panic(fmt.Sprintf("registration schema: %v", err))
	}
	schema = s
}

// Registration is an application submitted through the public form.
type Registration struct {
	ID                  string
	FullName            string
	PhoneNumber         string
	Country             string
	Industry            string
	BusinessIdea        string
	OpenToCollaboration string // yes | no
	BornAgain           string // yes | not-sure
	Available8Weeks     string // yes | heavy
	TimePreference      string // morning | evening
	DaysPreference      []string
	PaymentMethod       string
	PaymentProof        string // transaction reference or receipt link
	CreatedAt           time.Time
}

// FieldError describes one rejected field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError carries every field the schema rejected.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return fmt.Sprintf("%s: %s", ErrInvalid, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalid }

// Has reports whether field was rejected.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// Normalize trims free-text answers.
// POST: string fields carry no surrounding whitespace
func (r *Registration) Normalize() {
	r.FullName = strings.TrimSpace(r.FullName)
	r.PhoneNumber = strings.TrimSpace(r.PhoneNumber)
	r.Country = strings.TrimSpace(r.Country)
	r.Industry = strings.TrimSpace(r.Industry)
	r.BusinessIdea = strings.TrimSpace(r.BusinessIdea)
	r.PaymentMethod = strings.TrimSpace(r.PaymentMethod)
	r.PaymentProof = strings.TrimSpace(r.PaymentProof)
}

// Validate checks the registration against the form schema.
// PRE: Normalize has been called
// POST: Returns nil if valid, *ValidationError otherwise
func (r *Registration) Validate() error {
	result, err := schema.Validate(gojsonschema.NewGoLoader(r.document()))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if result.Valid() {
		return nil
	}
	verr := &ValidationError{}
	for _, re := range result.Errors() {
		field := re.Field()
		if i := strings.IndexByte(field, '.'); i >= 0 {
			field = field[:i]
		}
		if field == "(root)" {
			if missing, ok := re.Details()["property"].(string); ok {
				field = missing
			}
		}
		verr.Fields = append(verr.Fields, FieldError{Field: field, Message: re.Description()})
	}
	return verr
}

// SortedDays returns the chosen days in calendar order.
func (r Registration) SortedDays() []string {
	var out []string
	for _, d := range Weekdays {
		for _, chosen := range r.DaysPreference {
			if chosen == d {
				out = append(out, d)
				break
			}
		}
	}
	return out
}

func (r *Registration) document() map[string]any {
	days := r.DaysPreference
	if days == nil {
		days = []string{}
	}
	return map[string]any{
		"fullName":            r.FullName,
		"phoneNumber":         r.PhoneNumber,
		"country":             r.Country,
		"industry":            r.Industry,
		"businessIdea":        r.BusinessIdea,
		"openToCollaboration": r.OpenToCollaboration,
		"bornAgain":           r.BornAgain,
		"available8Weeks":     r.Available8Weeks,
		"timePreference":      r.TimePreference,
		"daysPreference":      days,
		"paymentMethod":       r.PaymentMethod,
		"paymentProof":        r.PaymentProof,
	}
}
