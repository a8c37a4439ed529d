package orchestrators

import (
	"context"
	"fmt"
	"strings"

	"agegate/internal/domain/customfield"
	"agegate/internal/domain/membership"
	"agegate/internal/platform/log"
)

// MembershipStoreForRegistry defines the membership persistence needed by registry orchestrators.
type MembershipStoreForRegistry interface {
	Save(ctx context.Context, m membership.Membership) error
	Delete(ctx context.Context, id string) error
}

// CustomFieldStoreForRegistry defines the custom field persistence needed by registry orchestrators.
type CustomFieldStoreForRegistry interface {
	List(ctx context.Context) ([]customfield.Field, error)
	ReplaceAll(ctx context.Context, fields []customfield.Field) error
	Delete(ctx context.Context, key string) error
}

// RegistryDeps holds dependencies for the registry mirror orchestrators.
type RegistryDeps struct {
	MembershipStore  MembershipStoreForRegistry
	CustomFieldStore CustomFieldStoreForRegistry
}

// ExecuteSaveMembership upserts one mirrored membership.
// PRE: input.ID and input.Name are non-empty after trimming
// POST: membership is persisted with trimmed id and name
func ExecuteSaveMembership(ctx context.Context, input membership.Membership, deps RegistryDeps) (membership.Membership, error) {
	m := membership.Membership{
		ID:   strings.TrimSpace(input.ID),
		Name: strings.TrimSpace(input.Name),
	}
	if err := m.Validate(); err != nil {
		return membership.Membership{}, err
	}
	if err := deps.MembershipStore.Save(ctx, m); err != nil {
		return membership.Membership{}, fmt.Errorf("save membership %s: %w", m.ID, err)
	}

	logger := log.WithComponent("registry")
	logger.Info().Str("event", "membership_saved").Str("membership_id", m.ID).Msg("registry_event")
	return m, nil
}

// ExecuteDeleteMembership removes one mirrored membership.
// PRE: id is non-empty
// POST: no membership with id remains; settings naming it are left as they are
func ExecuteDeleteMembership(ctx context.Context, id string, deps RegistryDeps) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return membership.ErrMissingID
	}
	if err := deps.MembershipStore.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete membership %s: %w", id, err)
	}

	logger := log.WithComponent("registry")
	logger.Info().Str("event", "membership_deleted").Str("membership_id", id).Msg("registry_event")
	return nil
}

// ExecuteReplaceCustomFields swaps the whole custom field registry.
// PRE: fields is in host registry order
// POST: on success the stored registry equals fields (trimmed); on a
// validation error nothing is written
// INVARIANT: duplicate keys are kept in their submitted order
func ExecuteReplaceCustomFields(ctx context.Context, fields []customfield.Field, deps RegistryDeps) ([]customfield.Field, error) {
	cleaned := make([]customfield.Field, 0, len(fields))
	for i, f := range fields {
		f.Key = strings.TrimSpace(f.Key)
		f.Name = strings.TrimSpace(f.Name)
		f.Type = strings.ToLower(strings.TrimSpace(f.Type))
		if err := f.Validate(); err != nil {
			return nil, fmt.Errorf("custom field %d: %w", i, err)
		}
		cleaned = append(cleaned, f)
	}
	if err := deps.CustomFieldStore.ReplaceAll(ctx, cleaned); err != nil {
		return nil, fmt.Errorf("replace custom fields: %w", err)
	}

	logger := log.WithComponent("registry")
	logger.Info().Str("event", "custom_fields_replaced").Int("count", len(cleaned)).Msg("registry_event")
	return cleaned, nil
}

// ExecuteAddCustomField appends one field to the end of the registry.
// PRE: input has a key and a recognised type
// POST: the field is last in registry order; an existing field with the
// same key keeps its earlier position and still wins first-match lookups
func ExecuteAddCustomField(ctx context.Context, input customfield.Field, deps RegistryDeps) (customfield.Field, error) {
	existing, err := deps.CustomFieldStore.List(ctx)
	if err != nil {
		return customfield.Field{}, fmt.Errorf("list custom fields: %w", err)
	}
	saved, err := ExecuteReplaceCustomFields(ctx, append(existing, input), deps)
	if err != nil {
		return customfield.Field{}, err
	}
	return saved[len(saved)-1], nil
}

// ExecuteDeleteCustomField removes every field with key.
// PRE: key is non-empty
// POST: no field with key remains
func ExecuteDeleteCustomField(ctx context.Context, key string, deps RegistryDeps) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return customfield.ErrMissingKey
	}
	if err := deps.CustomFieldStore.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete custom field %s: %w", key, err)
	}

	logger := log.WithComponent("registry")
	logger.Info().Str("event", "custom_field_deleted").Str("field_key", key).Msg("registry_event")
	return nil
}
