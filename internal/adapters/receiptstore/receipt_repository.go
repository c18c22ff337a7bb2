package receiptstore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/codify-lk/receipts_backend/internal/apperrors"
	"github.com/codify-lk/receipts_backend/internal/core/domain"
	portsrepo "github.com/codify-lk/receipts_backend/internal/core/ports/repositories"
)

// Repository implements the receipt store adapter over the opaque
// KVStore boundary. The whole collection is serialized as one JSON
// array under a fixed key; every load/save is an all-or-nothing call.
type Repository struct {
	kv     portsrepo.KVStore
	key    string
	logger *slog.Logger
}

var _ portsrepo.ReceiptRepository = (*Repository)(nil)

// NewRepository stores the collection under storageKey in kv.
func NewRepository(kv portsrepo.KVStore, storageKey string, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{kv: kv, key: storageKey, logger: logger}
}

// LoadAll returns the stored receipts in persisted order. Read failures
// and corrupt payloads degrade to an empty collection: a broken store
// must never take the application down with it.
func (r *Repository) LoadAll(ctx context.Context) ([]domain.Receipt, error) {
	raw, found, err := r.kv.Get(ctx, r.key)
	if err != nil {
		r.logger.Warn("Failed to read receipt collection, treating as empty",
			slog.String("key", r.key), slog.String("error", err.Error()))
		return []domain.Receipt{}, nil
	}
	if !found || raw == "" {
		return []domain.Receipt{}, nil
	}

	var receipts []domain.Receipt
	if err := json.Unmarshal([]byte(raw), &receipts); err != nil {
		r.logger.Warn("Stored receipt collection is corrupt, treating as empty",
			slog.String("key", r.key), slog.String("error", err.Error()))
		return []domain.Receipt{}, nil
	}
	if receipts == nil {
		receipts = []domain.Receipt{}
	}
	return receipts, nil
}

func (r *Repository) FindByID(ctx context.Context, receiptID string) (*domain.Receipt, error) {
	receipts, err := r.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range receipts {
		if receipts[i].ReceiptID == receiptID {
			return &receipts[i], nil
		}
	}
	return nil, apperrors.ErrNotFound
}

// Upsert replaces the stored record with a matching ID or appends the
// receipt at the end, preserving the persisted order of the rest.
func (r *Repository) Upsert(ctx context.Context, receipt domain.Receipt) error {
	receipts, err := r.LoadAll(ctx)
	if err != nil {
		return err
	}
	replaced := false
	for i := range receipts {
		if receipts[i].ReceiptID == receipt.ReceiptID {
			receipts[i] = receipt
			replaced = true
			break
		}
	}
	if !replaced {
		receipts = append(receipts, receipt)
	}
	return r.saveAll(ctx, receipts)
}

// Delete removes the record with the given ID. Deleting an absent ID is
// a no-op. Status constraints are the service layer's concern.
func (r *Repository) Delete(ctx context.Context, receiptID string) error {
	receipts, err := r.LoadAll(ctx)
	if err != nil {
		return err
	}
	kept := receipts[:0]
	for _, rec := range receipts {
		if rec.ReceiptID != receiptID {
			kept = append(kept, rec)
		}
	}
	if len(kept) == len(receipts) {
		return nil
	}
	return r.saveAll(ctx, kept)
}

func (r *Repository) saveAll(ctx context.Context, receipts []domain.Receipt) error {
	raw, err := json.Marshal(receipts)
	if err != nil {
		return fmt.Errorf("%w: encoding receipt collection: %v", apperrors.ErrPersistence, err)
	}
	if err := r.kv.Set(ctx, r.key, string(raw)); err != nil {
		return fmt.Errorf("%w: writing receipt collection: %v", apperrors.ErrPersistence, err)
	}
	return nil
}
