package settings

import (
	"html"
	"slices"

	"golang.org/x/text/message"

	"agegate/internal/platform/i18n"
)

// OptionName is the fixed name the settings record is stored under.
const OptionName = "agegate_options"

// DefaultMinimumAge applies until an admin saves a different value.
const DefaultMinimumAge = 18

// Settings is the persisted age-gate configuration.
//
// After Validate, MinimumAge, AgeErrorMessage, MissingFieldErrorMessage and
// Memberships are non-empty, and DateFieldKey is either empty or names a
// date custom field shown at signup.
type Settings struct {
	Enabled                  bool     `json:"enabled"`
	DateFieldKey             string   `json:"date_field_key"`
	MinimumAge               int      `json:"minimum_age"`
	AgeErrorMessage          string   `json:"age_error_message"`
	MissingFieldErrorMessage string   `json:"missing_field_error_message"`
	Memberships              []string `json:"memberships"`
}

// Defaults returns the record used before anything is saved. Messages are
// HTML-escaped so they are stored in the same form as sanitised admin input.
// Memberships defaults to every currently known membership name.
func Defaults(membershipNames []string, p *message.Printer) Settings {
	return Settings{
		Enabled:                  false,
		DateFieldKey:             "",
		MinimumAge:               DefaultMinimumAge,
		AgeErrorMessage:          html.EscapeString(p.Sprintf(i18n.MsgDefaultAgeError)),
		MissingFieldErrorMessage: html.EscapeString(p.Sprintf(i18n.MsgDefaultMissingFieldError)),
		Memberships:              slices.Clone(membershipNames),
	}
}

// AppliesTo reports whether the rule covers the membership with this display name.
// INVARIANT: s is not mutated
func (s Settings) AppliesTo(membershipName string) bool {
	if membershipName == "" {
		return false
	}
	return slices.Contains(s.Memberships, membershipName)
}

// Clone returns a deep copy.
func (s Settings) Clone() Settings {
	s.Memberships = slices.Clone(s.Memberships)
	return s
}
