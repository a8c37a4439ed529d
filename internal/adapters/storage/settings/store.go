package settings

import (
	"context"

	domain "agegate/internal/domain/settings"
)

// Store persists named settings records.
type Store interface {
	// Get returns the record stored under name decoded over defaults, and
	// whether a record existed. Keys absent from the stored JSON keep their
	// value from defaults.
	Get(ctx context.Context, name string, defaults domain.Settings) (domain.Settings, bool, error)
	Set(ctx context.Context, name string, value domain.Settings) error
}
