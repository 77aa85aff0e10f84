package payment

import (
	"regexp"
	"strings"
)

// FieldError is a client-side validation failure naming the offending field.
// It is raised before any interaction step, so a rejected card has no partial
// side effects.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Reason
}

// Card carries the simulated card details.
type Card struct {
	Number     string
	Expiry     string // MM/YY
	CVV        string
	HolderName string
}

var (
	digitsRe = regexp.MustCompile(`^[0-9]+$`)
	expiryRe = regexp.MustCompile(`^[0-9]{2}/[0-9]{2}$`)
	cvvRe    = regexp.MustCompile(`^[0-9]{3,4}$`)
)

// Validate checks the card fields: the number must be 13-19 digits after
// stripping spaces and dashes, the expiry must match MM/YY and the CVV must
// be 3 or 4 digits.
func (c Card) Validate() error {
	number := strings.NewReplacer(" ", "", "-", "").Replace(c.Number)
	if len(number) < 13 || len(number) > 19 || !digitsRe.MatchString(number) {
		return &FieldError{Field: "card_number", Reason: "invalid card number"}
	}
	if !expiryRe.MatchString(c.Expiry) {
		return &FieldError{Field: "expiry_date", Reason: "invalid expiry date"}
	}
	if !cvvRe.MatchString(c.CVV) {
		return &FieldError{Field: "cvv", Reason: "invalid CVV"}
	}
	return nil
}
