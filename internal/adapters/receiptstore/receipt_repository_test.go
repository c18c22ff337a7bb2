package receiptstore_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codify-lk/receipts_backend/internal/adapters/kvstore"
	"github.com/codify-lk/receipts_backend/internal/adapters/receiptstore"
	"github.com/codify-lk/receipts_backend/internal/apperrors"
	"github.com/codify-lk/receipts_backend/internal/core/domain"
)

const testKey = "codify-receipts"

func newTestRepo(t *testing.T) (*receiptstore.Repository, *kvstore.MemoryStore) {
	t.Helper()
	kv := kvstore.NewMemoryStore()
	return receiptstore.NewRepository(kv, testKey, nil), kv
}

func sampleReceipt(id, number string) domain.Receipt {
	return domain.Receipt{
		ReceiptID:     id,
		ReceiptNumber: number,
		ClientName:    "Acme Holdings",
		ClientEmail:   "billing@acme.example",
		ProjectTitle:  "Website Redesign",
		IssueDate:     "2025-01-05",
		PaymentStatus: domain.StatusPending,
		Items:         []domain.ReceiptItem{{ItemID: "i1", Description: "Design phase"}},
		Subtotal:      decimal.NewFromInt(1000),
		Discount:      decimal.NewFromInt(100),
		Tax:           decimal.NewFromInt(50),
		GrandTotal:    decimal.NewFromInt(950),
		Payments:      []domain.PaymentTransaction{},
		PaidAmount:    decimal.Zero,
	}
}

func TestLoadAll_EmptyStore(t *testing.T) {
	repo, _ := newTestRepo(t)

	receipts, err := repo.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, receipts)
}

func TestLoadAll_CorruptPayloadDegradesToEmpty(t *testing.T) {
	repo, kv := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, testKey, "{not valid json"))

	receipts, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, receipts)
}

func TestUpsert_RoundTrip(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	r := sampleReceipt("id-1", "RCP-1")
	require.NoError(t, repo.Upsert(ctx, r))

	found, err := repo.FindByID(ctx, "id-1")
	require.NoError(t, err)
	assert.Equal(t, "RCP-1", found.ReceiptNumber)
	assert.Equal(t, domain.StatusPending, found.PaymentStatus)
	assert.True(t, found.GrandTotal.Equal(decimal.NewFromInt(950)))
	assert.True(t, found.PaidAmount.Equal(decimal.Zero))
}

func TestUpsert_ReplacePreservesOrder(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, sampleReceipt("id-1", "RCP-1")))
	require.NoError(t, repo.Upsert(ctx, sampleReceipt("id-2", "RCP-2")))
	require.NoError(t, repo.Upsert(ctx, sampleReceipt("id-3", "RCP-3")))

	// Replace the middle record
	updated := sampleReceipt("id-2", "RCP-2-renamed")
	require.NoError(t, repo.Upsert(ctx, updated))

	receipts, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, receipts, 3)
	assert.Equal(t, "id-1", receipts[0].ReceiptID)
	assert.Equal(t, "id-2", receipts[1].ReceiptID)
	assert.Equal(t, "RCP-2-renamed", receipts[1].ReceiptNumber)
	assert.Equal(t, "id-3", receipts[2].ReceiptID)
}

func TestFindByID_NotFound(t *testing.T) {
	repo, _ := newTestRepo(t)

	_, err := repo.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDelete(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, sampleReceipt("id-1", "RCP-1")))
	require.NoError(t, repo.Upsert(ctx, sampleReceipt("id-2", "RCP-2")))

	require.NoError(t, repo.Delete(ctx, "id-1"))

	receipts, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, receipts, 1)
	assert.Equal(t, "id-2", receipts[0].ReceiptID)

	// Deleting an absent ID is a no-op
	require.NoError(t, repo.Delete(ctx, "missing"))

	receipts, err = repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, receipts, 1)
}

func TestPaymentsSurviveRoundTrip(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	r := sampleReceipt("id-1", "RCP-1")
	r.Payments = []domain.PaymentTransaction{
		{PaymentID: "p1", Amount: decimal.NewFromInt(500), PaymentDate: "2025-01-10", Notes: "advance"},
		{PaymentID: "p2", Amount: decimal.NewFromInt(450), PaymentDate: "2025-02-01"},
	}
	r.PaidAmount = decimal.NewFromInt(950)
	r.PaymentStatus = domain.StatusPaid
	r.PaidDate = "2025-02-01"
	require.NoError(t, repo.Upsert(ctx, r))

	found, err := repo.FindByID(ctx, "id-1")
	require.NoError(t, err)
	require.Len(t, found.Payments, 2)
	assert.Equal(t, "p1", found.Payments[0].PaymentID)
	assert.Equal(t, "advance", found.Payments[0].Notes)
	assert.Equal(t, "2025-02-01", found.PaidDate)
	assert.True(t, found.PaidAmount.Equal(found.PaidTotal()))
}
