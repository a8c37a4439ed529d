package notice

import (
	"testing"
	"time"
)

// TestNotice_Validate verifies required fields.
func TestNotice_Validate(t *testing.T) {
	valid := Notice{
		ID:         "n1",
		OptionName: "agegate_options",
		Code:       CodeMinimumAge,
		Message:    "Minimum age cannot be empty.",
		CreatedAt:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name    string
		mutate  func(n *Notice)
		wantErr error
	}{
		{"valid", func(n *Notice) {}, nil},
		{"missing option", func(n *Notice) { n.OptionName = "" }, ErrEmptyOption},
		{"missing code", func(n *Notice) { n.Code = " " }, ErrEmptyCode},
		{"missing message", func(n *Notice) { n.Message = "" }, ErrEmptyMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := valid
			tt.mutate(&n)
			if err := n.Validate(); err != tt.wantErr {
				t.Fatalf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
