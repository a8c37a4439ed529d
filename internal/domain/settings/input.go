package settings

import (
	"net/url"
	"strings"
)

// Form keys of a settings submission.
const (
	KeyEnabled                  = "enabled"
	KeyDateFieldKey             = "date_field_key"
	KeyMinimumAge               = "minimum_age"
	KeyAgeErrorMessage          = "age_error_message"
	KeyMissingFieldErrorMessage = "missing_field_error_message"
	KeyMemberships              = "memberships"
)

// Input is a raw settings submission. A nil pointer means the key was not
// submitted at all, which is distinct from an empty value.
type Input struct {
	Enabled                  *string
	DateFieldKey             *string
	MinimumAge               *string
	AgeErrorMessage          *string
	MissingFieldErrorMessage *string
	Memberships              []string
}

// InputFromForm reads a form-encoded submission. Memberships may be sent
// as repeated "memberships" or "memberships[]" keys.
func InputFromForm(form url.Values) Input {
	in := Input{
		Enabled:                  formValue(form, KeyEnabled),
		DateFieldKey:             formValue(form, KeyDateFieldKey),
		MinimumAge:               formValue(form, KeyMinimumAge),
		AgeErrorMessage:          formValue(form, KeyAgeErrorMessage),
		MissingFieldErrorMessage: formValue(form, KeyMissingFieldErrorMessage),
	}
	in.Memberships = append(in.Memberships, form[KeyMemberships]...)
	in.Memberships = append(in.Memberships, form[KeyMemberships+"[]"]...)
	return in
}

func formValue(form url.Values, key string) *string {
	values, ok := form[key]
	if !ok || len(values) == 0 {
		return nil
	}
	v := values[0]
	return &v
}

// String returns a pointer to s, for building Input literals.
func String(s string) *string {
	return &s
}

// normalizeNames trims names, drops blanks and duplicates, keeps order.
func normalizeNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
