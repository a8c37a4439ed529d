package signup

import "strings"

// Attempt is one in-flight registration as seen by a signup validator.
type Attempt struct {
	// MembershipID identifies the membership being purchased. May be empty.
	MembershipID string
	// Fields holds the submitted form values keyed by field key.
	Fields map[string]string
	// Authenticated is true when the submitter is already logged in.
	Authenticated bool
}

// Membership returns the trimmed membership id and whether one was submitted.
func (a Attempt) Membership() (string, bool) {
	id := strings.TrimSpace(a.MembershipID)
	return id, id != ""
}

// Value returns the trimmed submitted value for key. Absent and
// whitespace-only values both report false.
func (a Attempt) Value(key string) (string, bool) {
	v, ok := a.Fields[key]
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}
