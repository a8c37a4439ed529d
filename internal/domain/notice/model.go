package notice

import (
	"errors"
	"strings"
	"time"
)

// Notice codes raised by the settings validator.
const (
	CodeMemberships              = "memberships"
	CodeMinimumAge               = "min_age"
	CodeMinimumAgeNegative       = "min_age_negative"
	CodeAgeErrorMessage          = "error_message"
	CodeMissingFieldErrorMessage = "verification_error_message"
	CodeDateFieldType            = "invalid_slug_type"
	CodeDateFieldHidden          = "invalid_slug_format"
	CodeDateFieldUnknown         = "invalid_slug"
)

// Domain errors
var (
	ErrEmptyCode    = errors.New("notice code cannot be empty")
	ErrEmptyMessage = errors.New("notice message cannot be empty")
	ErrEmptyOption  = errors.New("notice option name cannot be empty")
)

// Notice is an admin-facing message produced when a settings submission had
// a field rolled back. Notices from one save replace those of the previous save.
type Notice struct {
	ID         string
	OptionName string
	Code       string
	Message    string
	CreatedAt  time.Time
}

// Validate checks required fields for a Notice.
// PRE: Notice struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (n *Notice) Validate() error {
	if strings.TrimSpace(n.OptionName) == "" {
		return ErrEmptyOption
	}
	if strings.TrimSpace(n.Code) == "" {
		return ErrEmptyCode
	}
	if strings.TrimSpace(n.Message) == "" {
		return ErrEmptyMessage
	}
	return nil
}
