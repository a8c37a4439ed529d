package audit

import (
	"errors"
	"strings"
	"time"
)

// Action represents the change an admin made.
type Action string

const (
	ActionUpdate Action = "update"
	ActionCreate Action = "create"
	ActionDelete Action = "delete"
	ActionSeed   Action = "seed"
)

// Resource types that appear in the trail.
const (
	ResourceSettings    = "settings"
	ResourceMembership  = "membership"
	ResourceCustomField = "custom_field"
	ResourceRegistry    = "registry"
)

// Domain errors
var (
	ErrMissingActor    = errors.New("audit event requires an actor")
	ErrInvalidAction   = errors.New("audit event action is not recognised")
	ErrMissingResource = errors.New("audit event requires a resource type")
)

// Event is one entry in the admin change trail.
type Event struct {
	ID           string    `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	Action       Action    `json:"action"`
	Actor        string    `json:"actor"`
	ResourceType string    `json:"resource_type"`
	ResourceID   string    `json:"resource_id"`
	Description  string    `json:"description"`
	IPAddress    string    `json:"ip_address"`
}

// NewEvent creates an audit event.
// PRE: actor and action are non-empty
// POST: Returns an Event stamped with now
func NewEvent(id string, now time.Time, actor string, action Action) Event {
	return Event{
		ID:        id,
		Timestamp: now,
		Action:    action,
		Actor:     actor,
	}
}

// WithResource sets resource information.
func (e Event) WithResource(resourceType, resourceID string) Event {
	e.ResourceType = resourceType
	e.ResourceID = resourceID
	return e
}

// WithDescription sets the event description.
func (e Event) WithDescription(desc string) Event {
	e.Description = desc
	return e
}

// WithIPAddress records where the request came from.
func (e Event) WithIPAddress(ip string) Event {
	e.IPAddress = ip
	return e
}

// Validate checks required fields for an Event.
// PRE: Event struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (e Event) Validate() error {
	if strings.TrimSpace(e.Actor) == "" {
		return ErrMissingActor
	}
	switch e.Action {
	case ActionUpdate, ActionCreate, ActionDelete, ActionSeed:
	default:
		return ErrInvalidAction
	}
	if strings.TrimSpace(e.ResourceType) == "" {
		return ErrMissingResource
	}
	return nil
}
