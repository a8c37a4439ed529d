package orchestrators

import (
	"context"
	"fmt"
	"time"

	"agegate/internal/domain/audit"
	"agegate/internal/platform/log"
)

// AuditStoreForOrchestrator persists admin change events.
type AuditStoreForOrchestrator interface {
	Save(ctx context.Context, event audit.Event) error
}

// RecordAdminChangeInput describes one change an admin made.
type RecordAdminChangeInput struct {
	Actor        string
	Action       audit.Action
	ResourceType string
	ResourceID   string
	Description  string
	IPAddress    string
}

// RecordAdminChangeDeps holds dependencies for RecordAdminChange.
type RecordAdminChangeDeps struct {
	AuditStore AuditStoreForOrchestrator
	GenerateID func() string
	Now        func() time.Time
}

// ExecuteRecordAdminChange appends an event to the admin change trail.
// PRE: the change it describes has already been committed
// POST: the event is stored, or an error explains why it was not
func ExecuteRecordAdminChange(ctx context.Context, input RecordAdminChangeInput, deps RecordAdminChangeDeps) (audit.Event, error) {
	event := audit.NewEvent(deps.GenerateID(), deps.Now(), input.Actor, input.Action).
		WithResource(input.ResourceType, input.ResourceID).
		WithDescription(input.Description).
		WithIPAddress(input.IPAddress)
	if err := event.Validate(); err != nil {
		return audit.Event{}, err
	}
	if err := deps.AuditStore.Save(ctx, event); err != nil {
		return audit.Event{}, fmt.Errorf("store audit event: %w", err)
	}

	logger := log.WithComponent("audit")
	logger.Info().
		Str("actor", event.Actor).
		Str("action", string(event.Action)).
		Str("resource_type", event.ResourceType).
		Str("resource_id", event.ResourceID).
		Msg("admin_change")
	return event, nil
}
