package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/codify-lk/receipts_backend/internal/apperrors"
	"github.com/codify-lk/receipts_backend/internal/core/domain"
	portsrepo "github.com/codify-lk/receipts_backend/internal/core/ports/repositories"
	portssvc "github.com/codify-lk/receipts_backend/internal/core/ports/services"
	"github.com/codify-lk/receipts_backend/internal/core/services"
	"github.com/codify-lk/receipts_backend/internal/dto"
)

// --- Mock ReceiptRepository ---
type MockReceiptRepository struct {
	mock.Mock
}

// Ensure MockReceiptRepository implements portsrepo.ReceiptRepository
var _ portsrepo.ReceiptRepository = (*MockReceiptRepository)(nil)

func (m *MockReceiptRepository) LoadAll(ctx context.Context) ([]domain.Receipt, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Receipt), args.Error(1)
}

func (m *MockReceiptRepository) FindByID(ctx context.Context, receiptID string) (*domain.Receipt, error) {
	args := m.Called(ctx, receiptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receipt), args.Error(1)
}

func (m *MockReceiptRepository) Upsert(ctx context.Context, receipt domain.Receipt) error {
	args := m.Called(ctx, receipt)
	return args.Error(0)
}

func (m *MockReceiptRepository) Delete(ctx context.Context, receiptID string) error {
	args := m.Called(ctx, receiptID)
	return args.Error(0)
}

// --- Test Suite Setup ---
type ReceiptServiceTestSuite struct {
	suite.Suite
	mockRepo *MockReceiptRepository
	service  portssvc.ReceiptSvcFacade
}

func (suite *ReceiptServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockReceiptRepository)
	suite.service = services.NewReceiptService(suite.mockRepo)
}

func validCreateRequest() dto.CreateReceiptRequest {
	return dto.CreateReceiptRequest{
		ClientName:   "Acme Holdings",
		ClientEmail:  "billing@acme.example",
		ProjectTitle: "Website Redesign",
		IssueDate:    "2025-01-05",
		Items: []dto.ReceiptItemRequest{
			{Description: "Design phase"},
			{Description: "Implementation"},
		},
		Subtotal: decimal.NewFromInt(1000),
		Discount: decimal.NewFromInt(100),
		Tax:      decimal.NewFromInt(50),
	}
}

// --- Test Cases ---

func (suite *ReceiptServiceTestSuite) TestCreateReceipt_Success() {
	ctx := context.Background()
	req := validCreateRequest()

	suite.mockRepo.On("Upsert", ctx, mock.AnythingOfType("domain.Receipt")).Return(nil).Once()

	created, err := suite.service.CreateReceipt(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.NotEmpty(created.ReceiptID)
	suite.True(strings.HasPrefix(created.ReceiptNumber, "RCP-"))
	suite.Equal(domain.StatusPending, created.PaymentStatus)
	suite.True(created.GrandTotal.Equal(decimal.NewFromInt(950)))
	suite.True(created.PaidAmount.Equal(decimal.Zero))
	suite.Empty(created.Payments)
	suite.Empty(created.PaidDate)
	suite.Len(created.Items, 2)
	suite.NotEmpty(created.Items[0].ItemID)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReceiptServiceTestSuite) TestCreateReceipt_KeepsProvidedNumber() {
	ctx := context.Background()
	req := validCreateRequest()
	req.ReceiptNumber = "RCP-custom-42"

	suite.mockRepo.On("Upsert", ctx, mock.AnythingOfType("domain.Receipt")).Return(nil).Once()

	created, err := suite.service.CreateReceipt(ctx, req)

	suite.Require().NoError(err)
	suite.Equal("RCP-custom-42", created.ReceiptNumber)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReceiptServiceTestSuite) TestCreateReceipt_StatusOverride() {
	ctx := context.Background()
	req := validCreateRequest()
	req.PaymentStatus = "Partial"

	suite.mockRepo.On("Upsert", ctx, mock.AnythingOfType("domain.Receipt")).Return(nil).Once()

	created, err := suite.service.CreateReceipt(ctx, req)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusPartial, created.PaymentStatus)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReceiptServiceTestSuite) TestCreateReceipt_SubtotalNotPositive() {
	ctx := context.Background()
	req := validCreateRequest()
	req.Subtotal = decimal.Zero

	_, err := suite.service.CreateReceipt(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrSubtotalNotPositive)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "Upsert", mock.Anything, mock.Anything)
}

func (suite *ReceiptServiceTestSuite) TestCreateReceipt_NegativeDiscount() {
	ctx := context.Background()
	req := validCreateRequest()
	req.Discount = decimal.NewFromInt(-5)

	_, err := suite.service.CreateReceipt(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNegativeAdjustment)
	suite.mockRepo.AssertNotCalled(suite.T(), "Upsert", mock.Anything, mock.Anything)
}

func (suite *ReceiptServiceTestSuite) TestCreateReceipt_BlankItems() {
	ctx := context.Background()
	req := validCreateRequest()
	req.Items = []dto.ReceiptItemRequest{{Description: "   "}}

	_, err := suite.service.CreateReceipt(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrItemsRequired)
	suite.mockRepo.AssertNotCalled(suite.T(), "Upsert", mock.Anything, mock.Anything)
}

func (suite *ReceiptServiceTestSuite) TestCreateReceipt_MissingClientName() {
	ctx := context.Background()
	req := validCreateRequest()
	req.ClientName = "  "

	_, err := suite.service.CreateReceipt(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrFieldRequired)
	suite.mockRepo.AssertNotCalled(suite.T(), "Upsert", mock.Anything, mock.Anything)
}

func (suite *ReceiptServiceTestSuite) TestUpdateReceipt_RecomputesTotalAndStatus() {
	ctx := context.Background()
	receiptID := uuid.NewString()

	// Fully paid at 950, then the total is raised to 1200.
	existing := &domain.Receipt{
		ReceiptID:     receiptID,
		ReceiptNumber: "RCP-1",
		ClientName:    "Acme Holdings",
		ClientEmail:   "billing@acme.example",
		ProjectTitle:  "Website Redesign",
		IssueDate:     "2025-01-05",
		PaymentStatus: domain.StatusPaid,
		Items:         []domain.ReceiptItem{{ItemID: "i1", Description: "Design phase"}},
		Subtotal:      decimal.NewFromInt(1000),
		Discount:      decimal.NewFromInt(100),
		Tax:           decimal.NewFromInt(50),
		GrandTotal:    decimal.NewFromInt(950),
		Payments: []domain.PaymentTransaction{
			{PaymentID: "p1", Amount: decimal.NewFromInt(950), PaymentDate: "2025-02-01"},
		},
		PaidAmount: decimal.NewFromInt(950),
		PaidDate:   "2025-02-01",
	}

	req := dto.UpdateReceiptRequest{
		ReceiptNumber: "RCP-1",
		ClientName:    "Acme Holdings",
		ClientEmail:   "billing@acme.example",
		ProjectTitle:  "Website Redesign v2",
		IssueDate:     "2025-01-05",
		Items:         []dto.ReceiptItemRequest{{ItemID: "i1", Description: "Design phase"}},
		Subtotal:      decimal.NewFromInt(1250),
		Discount:      decimal.NewFromInt(100),
		Tax:           decimal.NewFromInt(50),
		PaymentStatus: "Paid", // Must be ignored: payments exist
	}

	suite.mockRepo.On("FindByID", ctx, receiptID).Return(existing, nil).Once()
	suite.mockRepo.On("Upsert", ctx, mock.AnythingOfType("domain.Receipt")).Return(nil).Once()

	updated, err := suite.service.UpdateReceipt(ctx, receiptID, req)

	suite.Require().NoError(err)
	suite.True(updated.GrandTotal.Equal(decimal.NewFromInt(1200)))
	// Paid 950 of 1200 now: drops back to Partial, PaidDate stays.
	suite.Equal(domain.StatusPartial, updated.PaymentStatus)
	suite.Equal("2025-02-01", updated.PaidDate)
	suite.True(updated.PaidAmount.Equal(decimal.NewFromInt(950)))
	suite.Len(updated.Payments, 1)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReceiptServiceTestSuite) TestUpdateReceipt_StatusSettableWithoutPayments() {
	ctx := context.Background()
	receiptID := uuid.NewString()

	existing := &domain.Receipt{
		ReceiptID:     receiptID,
		ReceiptNumber: "RCP-2",
		ClientName:    "Acme Holdings",
		ClientEmail:   "billing@acme.example",
		ProjectTitle:  "Logo",
		IssueDate:     "2025-01-05",
		PaymentStatus: domain.StatusPending,
		Items:         []domain.ReceiptItem{{ItemID: "i1", Description: "Logo design"}},
		Subtotal:      decimal.NewFromInt(200),
		GrandTotal:    decimal.NewFromInt(200),
		PaidAmount:    decimal.Zero,
	}

	req := dto.UpdateReceiptRequest{
		ReceiptNumber: "RCP-2",
		ClientName:    "Acme Holdings",
		ClientEmail:   "billing@acme.example",
		ProjectTitle:  "Logo",
		IssueDate:     "2025-01-05",
		Items:         []dto.ReceiptItemRequest{{ItemID: "i1", Description: "Logo design"}},
		Subtotal:      decimal.NewFromInt(200),
		PaymentStatus: "Paid",
	}

	suite.mockRepo.On("FindByID", ctx, receiptID).Return(existing, nil).Once()
	suite.mockRepo.On("Upsert", ctx, mock.AnythingOfType("domain.Receipt")).Return(nil).Once()

	updated, err := suite.service.UpdateReceipt(ctx, receiptID, req)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusPaid, updated.PaymentStatus)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReceiptServiceTestSuite) TestUpdateReceipt_NotFound() {
	ctx := context.Background()
	receiptID := uuid.NewString()

	suite.mockRepo.On("FindByID", ctx, receiptID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.UpdateReceipt(ctx, receiptID, dto.UpdateReceiptRequest{})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "Upsert", mock.Anything, mock.Anything)
}

func (suite *ReceiptServiceTestSuite) TestDeleteReceipt_PendingOnly() {
	ctx := context.Background()
	receiptID := uuid.NewString()

	pending := &domain.Receipt{ReceiptID: receiptID, PaymentStatus: domain.StatusPending}
	suite.mockRepo.On("FindByID", ctx, receiptID).Return(pending, nil).Once()
	suite.mockRepo.On("Delete", ctx, receiptID).Return(nil).Once()

	err := suite.service.DeleteReceipt(ctx, receiptID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReceiptServiceTestSuite) TestDeleteReceipt_RefusedWithPayments() {
	ctx := context.Background()
	receiptID := uuid.NewString()

	partial := &domain.Receipt{
		ReceiptID:     receiptID,
		PaymentStatus: domain.StatusPartial,
		Payments: []domain.PaymentTransaction{
			{PaymentID: "p1", Amount: decimal.NewFromInt(100), PaymentDate: "2025-01-10"},
		},
		PaidAmount: decimal.NewFromInt(100),
	}
	suite.mockRepo.On("FindByID", ctx, receiptID).Return(partial, nil).Once()

	err := suite.service.DeleteReceipt(ctx, receiptID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrReceiptNotPending)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockRepo.AssertNotCalled(suite.T(), "Delete", mock.Anything, mock.Anything)
}

func (suite *ReceiptServiceTestSuite) TestListReceipts_Filters() {
	ctx := context.Background()

	all := []domain.Receipt{
		{ReceiptID: "1", ReceiptNumber: "RCP-1", ClientName: "Acme Holdings", ProjectTitle: "Website", PaymentStatus: domain.StatusPending},
		{ReceiptID: "2", ReceiptNumber: "RCP-2", ClientName: "Globex", ProjectTitle: "Branding", PaymentStatus: domain.StatusPaid},
		{ReceiptID: "3", ReceiptNumber: "RCP-3", ClientName: "Acme Holdings", ProjectTitle: "App", PaymentStatus: domain.StatusPartial},
	}

	suite.mockRepo.On("LoadAll", ctx).Return(all, nil).Times(4)

	everything, err := suite.service.ListReceipts(ctx, dto.ListReceiptsFilter{Status: "All"})
	suite.Require().NoError(err)
	suite.Len(everything, 3)

	paid, err := suite.service.ListReceipts(ctx, dto.ListReceiptsFilter{Status: "Paid"})
	suite.Require().NoError(err)
	suite.Require().Len(paid, 1)
	suite.Equal("2", paid[0].ReceiptID)

	acme, err := suite.service.ListReceipts(ctx, dto.ListReceiptsFilter{Query: "acme"})
	suite.Require().NoError(err)
	suite.Len(acme, 2)

	acmePartial, err := suite.service.ListReceipts(ctx, dto.ListReceiptsFilter{Status: "Partial", Query: "acme"})
	suite.Require().NoError(err)
	suite.Require().Len(acmePartial, 1)
	suite.Equal("3", acmePartial[0].ReceiptID)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReceiptServiceTestSuite) TestSummarize() {
	ctx := context.Background()

	all := []domain.Receipt{
		{PaymentStatus: domain.StatusPending, GrandTotal: decimal.NewFromInt(200), PaidAmount: decimal.Zero},
		{PaymentStatus: domain.StatusPartial, GrandTotal: decimal.NewFromInt(950), PaidAmount: decimal.NewFromInt(500)},
		{PaymentStatus: domain.StatusPaid, GrandTotal: decimal.NewFromInt(300), PaidAmount: decimal.NewFromInt(300)},
	}
	suite.mockRepo.On("LoadAll", ctx).Return(all, nil).Once()

	summary, err := suite.service.Summarize(ctx)

	suite.Require().NoError(err)
	suite.Equal(3, summary.TotalReceipts)
	suite.Equal(1, summary.PendingCount)
	suite.Equal(1, summary.PartialCount)
	suite.Equal(1, summary.PaidCount)
	suite.True(summary.TotalBilled.Equal(decimal.NewFromInt(1450)))
	suite.True(summary.TotalCollected.Equal(decimal.NewFromInt(800)))
	suite.True(summary.TotalOutstanding.Equal(decimal.NewFromInt(650)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestReceiptServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReceiptServiceTestSuite))
}
