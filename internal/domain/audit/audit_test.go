package audit

import (
	"testing"
	"time"
)

func TestEvent_Validate(t *testing.T) {
	base := NewEvent("a1", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "admin", ActionUpdate).
		WithResource(ResourceSettings, "agegate_options")

	tests := []struct {
		name    string
		event   Event
		wantErr error
	}{
		{"valid", base, nil},
		{"missing actor", func() Event { e := base; e.Actor = " "; return e }(), ErrMissingActor},
		{"unknown action", func() Event { e := base; e.Action = "login"; return e }(), ErrInvalidAction},
		{"missing resource", base.WithResource("", ""), ErrMissingResource},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.event.Validate(); err != tt.wantErr {
				t.Fatalf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestEvent_BuildersDoNotMutate(t *testing.T) {
	e := NewEvent("a1", time.Time{}, "admin", ActionDelete)
	described := e.WithDescription("removed gold").WithIPAddress("10.0.0.1")
	if e.Description != "" || e.IPAddress != "" {
		t.Fatalf("builders changed the receiver: %+v", e)
	}
	if described.Description != "removed gold" || described.IPAddress != "10.0.0.1" {
		t.Fatalf("builders lost fields: %+v", described)
	}
}
