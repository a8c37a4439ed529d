package membership

import (
	"errors"
	"strings"
)

// Max length constants for mirrored fields.
const (
	MaxNameLength = 200
)

// Domain errors
var (
	ErrMissingID   = errors.New("membership id is required")
	ErrMissingName = errors.New("membership name is required")
	ErrNotFound    = errors.New("membership not found")
	ErrNameTooLong = errors.New("membership name cannot exceed 200 characters")
)

// Membership mirrors a purchasable plan in the host platform.
// The gate matches memberships by Name, not ID, because the settings record
// stores display names.
type Membership struct {
	ID   string
	Name string
}

// Validate checks required fields for a Membership.
// PRE: Membership struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (m *Membership) Validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return ErrMissingID
	}
	if strings.TrimSpace(m.Name) == "" {
		return ErrMissingName
	}
	if len(m.Name) > MaxNameLength {
		return ErrNameTooLong
	}
	return nil
}

// Names returns the display names of ms in order.
func Names(ms []Membership) []string {
	names := make([]string, 0, len(ms))
	for _, m := range ms {
		names = append(names, m.Name)
	}
	return names
}
