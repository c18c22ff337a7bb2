package repositories

import (
	"context"

	"github.com/codify-lk/receipts_backend/internal/core/domain"
)

// ReceiptRepository defines the persistence operations for receipts.
// Implementations sit on top of the KVStore boundary and treat each
// load/save as an atomic, all-or-nothing call.
type ReceiptRepository interface {
	// LoadAll returns the stored receipts in persisted order. A missing
	// or corrupt stored value yields an empty slice, never an error.
	LoadAll(ctx context.Context) ([]domain.Receipt, error)
	// FindByID returns the receipt with the given ID, or
	// apperrors.ErrNotFound.
	FindByID(ctx context.Context, receiptID string) (*domain.Receipt, error)
	// Upsert replaces the stored record with a matching ID, or appends
	// the receipt if absent.
	Upsert(ctx context.Context, receipt domain.Receipt) error
	// Delete removes a record by ID. The repository imposes no status
	// constraint; the Pending-only delete rule lives in the service
	// layer.
	Delete(ctx context.Context, receiptID string) error
}

// RepositoryProvider bundles all repositories for dependency injection
// into the service container.
type RepositoryProvider struct {
	ReceiptRepo ReceiptRepository
}
