package membership

import (
	"context"

	domain "agegate/internal/domain/membership"
)

// Store persists the membership mirror.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Membership, error)
	List(ctx context.Context) ([]domain.Membership, error)
	Save(ctx context.Context, value domain.Membership) error
	Delete(ctx context.Context, id string) error
}
