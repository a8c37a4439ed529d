package customfield

import (
	"context"

	domain "agegate/internal/domain/customfield"
)

// Store persists the ordered custom field registry mirror.
type Store interface {
	// List returns fields in registry order.
	List(ctx context.Context) ([]domain.Field, error)
	// ReplaceAll swaps the whole registry for fields, keeping their order.
	ReplaceAll(ctx context.Context, fields []domain.Field) error
	// Delete removes every field with key.
	Delete(ctx context.Context, key string) error
}
