package notice

import (
	"context"

	domain "agegate/internal/domain/notice"
)

// Store persists settings notices.
type Store interface {
	// List returns the notices raised for optionName, oldest first.
	List(ctx context.Context, optionName string) ([]domain.Notice, error)
	// ReplaceAll drops optionName's notices and stores notices in their place.
	ReplaceAll(ctx context.Context, optionName string, notices []domain.Notice) error
}
