package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/codify-lk/receipts_backend/internal/apperrors"
	"github.com/codify-lk/receipts_backend/internal/core/domain"
	portssvc "github.com/codify-lk/receipts_backend/internal/core/ports/services"
	"github.com/codify-lk/receipts_backend/internal/core/services"
	"github.com/codify-lk/receipts_backend/internal/dto"
	"github.com/codify-lk/receipts_backend/internal/handlers"
	"github.com/codify-lk/receipts_backend/internal/middleware"
)

// --- Mock ReceiptService ---
type MockReceiptService struct {
	mock.Mock
}

var _ portssvc.ReceiptSvcFacade = (*MockReceiptService)(nil)

func (m *MockReceiptService) CreateReceipt(ctx context.Context, req dto.CreateReceiptRequest) (*domain.Receipt, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receipt), args.Error(1)
}

func (m *MockReceiptService) GetReceiptByID(ctx context.Context, receiptID string) (*domain.Receipt, error) {
	args := m.Called(ctx, receiptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receipt), args.Error(1)
}

func (m *MockReceiptService) ListReceipts(ctx context.Context, filter dto.ListReceiptsFilter) ([]domain.Receipt, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Receipt), args.Error(1)
}

func (m *MockReceiptService) UpdateReceipt(ctx context.Context, receiptID string, req dto.UpdateReceiptRequest) (*domain.Receipt, error) {
	args := m.Called(ctx, receiptID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receipt), args.Error(1)
}

func (m *MockReceiptService) DeleteReceipt(ctx context.Context, receiptID string) error {
	args := m.Called(ctx, receiptID)
	return args.Error(0)
}

func (m *MockReceiptService) Summarize(ctx context.Context) (*dto.ReceiptSummaryResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ReceiptSummaryResponse), args.Error(1)
}

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

func (m *MockLedgerService) AddPayment(ctx context.Context, receiptID string, req dto.AddPaymentRequest) (*domain.Receipt, *domain.PaymentTransaction, error) {
	args := m.Called(ctx, receiptID, req)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Receipt), args.Get(1).(*domain.PaymentTransaction), args.Error(2)
}

// --- Mock ExportService ---
type MockExportService struct {
	mock.Mock
}

var _ portssvc.ExportSvcFacade = (*MockExportService)(nil)

func (m *MockExportService) ReceiptPDF(ctx context.Context, receiptID string) ([]byte, string, error) {
	args := m.Called(ctx, receiptID)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}

func (m *MockExportService) ReceiptsXLSX(ctx context.Context, filter dto.ListReceiptsFilter) ([]byte, string, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}

func (m *MockExportService) EmailReceipt(ctx context.Context, receiptID string) error {
	args := m.Called(ctx, receiptID)
	return args.Error(0)
}

// --- Test Suite ---
type ReceiptHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockReceiptService *MockReceiptService
	mockLedgerService  *MockLedgerService
	mockExportService  *MockExportService
	jwtSecret          string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *ReceiptHandlerTestSuite) generateTestToken(username string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "receipts-test",
		Subject:   username,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tsignedString, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return tsignedString
}

func (suite *ReceiptHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockReceiptService = new(MockReceiptService)
	suite.mockLedgerService = new(MockLedgerService)
	suite.mockExportService = new(MockExportService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterReceiptRoutes(v1, suite.mockReceiptService, suite.mockLedgerService, suite.mockExportService)
}

func (suite *ReceiptHandlerTestSuite) authedRequest(method, url string, body []byte) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req, _ = http.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, url, nil)
	}
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken("admin"))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *ReceiptHandlerTestSuite) TestListReceipts_Success() {
	receipts := []domain.Receipt{
		{
			ReceiptID:     uuid.NewString(),
			ReceiptNumber: "RCP-1",
			ClientName:    "Acme Holdings",
			PaymentStatus: domain.StatusPending,
			GrandTotal:    decimal.NewFromInt(950),
		},
	}
	suite.mockReceiptService.On("ListReceipts", mock.Anything, dto.ListReceiptsFilter{Status: "Pending"}).
		Return(receipts, nil).Once()

	w := suite.authedRequest(http.MethodGet, "/api/v1/receipts?status=Pending", nil)

	suite.Equal(http.StatusOK, w.Code)

	var body dto.ListReceiptsResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Require().Len(body.Receipts, 1)
	suite.Equal("RCP-1", body.Receipts[0].ReceiptNumber)
	suite.mockReceiptService.AssertExpectations(suite.T())
}

func (suite *ReceiptHandlerTestSuite) TestListReceipts_RejectsUnknownStatus() {
	w := suite.authedRequest(http.MethodGet, "/api/v1/receipts?status=Bogus", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockReceiptService.AssertNotCalled(suite.T(), "ListReceipts", mock.Anything, mock.Anything)
}

func (suite *ReceiptHandlerTestSuite) TestCreateReceipt_ValidationErrorMapsTo400() {
	reqBody, _ := json.Marshal(dto.CreateReceiptRequest{
		ClientName:   "Acme Holdings",
		ClientEmail:  "billing@acme.example",
		ProjectTitle: "Website Redesign",
		Items:        []dto.ReceiptItemRequest{{Description: "Design"}},
		Subtotal:     decimal.Zero,
	})
	suite.mockReceiptService.On("CreateReceipt", mock.Anything, mock.AnythingOfType("dto.CreateReceiptRequest")).
		Return(nil, services.ErrSubtotalNotPositive).Once()

	w := suite.authedRequest(http.MethodPost, "/api/v1/receipts", reqBody)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockReceiptService.AssertExpectations(suite.T())
}

func (suite *ReceiptHandlerTestSuite) TestGetReceipt_NotFoundMapsTo404() {
	receiptID := uuid.NewString()
	suite.mockReceiptService.On("GetReceiptByID", mock.Anything, receiptID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.authedRequest(http.MethodGet, "/api/v1/receipts/"+receiptID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockReceiptService.AssertExpectations(suite.T())
}

func (suite *ReceiptHandlerTestSuite) TestDeleteReceipt_ConflictMapsTo409() {
	receiptID := uuid.NewString()
	suite.mockReceiptService.On("DeleteReceipt", mock.Anything, receiptID).
		Return(services.ErrReceiptNotPending).Once()

	w := suite.authedRequest(http.MethodDelete, "/api/v1/receipts/"+receiptID, nil)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockReceiptService.AssertExpectations(suite.T())
}

func (suite *ReceiptHandlerTestSuite) TestDeleteReceipt_Success() {
	receiptID := uuid.NewString()
	suite.mockReceiptService.On("DeleteReceipt", mock.Anything, receiptID).Return(nil).Once()

	w := suite.authedRequest(http.MethodDelete, "/api/v1/receipts/"+receiptID, nil)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockReceiptService.AssertExpectations(suite.T())
}

func (suite *ReceiptHandlerTestSuite) TestAddPayment_Success() {
	receiptID := uuid.NewString()
	payment := &domain.PaymentTransaction{
		PaymentID:   uuid.NewString(),
		Amount:      decimal.NewFromInt(500),
		PaymentDate: "2025-01-10",
	}
	receipt := &domain.Receipt{
		ReceiptID:     receiptID,
		ReceiptNumber: "RCP-1",
		PaymentStatus: domain.StatusPartial,
		GrandTotal:    decimal.NewFromInt(950),
		PaidAmount:    decimal.NewFromInt(500),
		Payments:      []domain.PaymentTransaction{*payment},
	}
	suite.mockLedgerService.On("AddPayment", mock.Anything, receiptID, mock.AnythingOfType("dto.AddPaymentRequest")).
		Return(receipt, payment, nil).Once()

	reqBody, _ := json.Marshal(dto.AddPaymentRequest{
		Amount:      decimal.NewFromInt(500),
		PaymentDate: "2025-01-10",
	})
	w := suite.authedRequest(http.MethodPost, "/api/v1/receipts/"+receiptID+"/payments", reqBody)

	suite.Equal(http.StatusOK, w.Code)

	var body dto.AddPaymentResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(payment.PaymentID, body.Payment.PaymentID)
	suite.Equal("Partial", body.Receipt.PaymentStatus)
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *ReceiptHandlerTestSuite) TestAddPayment_MissingDateRejectedByBinding() {
	receiptID := uuid.NewString()

	reqBody, _ := json.Marshal(map[string]any{"amount": 500})
	w := suite.authedRequest(http.MethodPost, "/api/v1/receipts/"+receiptID+"/payments", reqBody)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLedgerService.AssertNotCalled(suite.T(), "AddPayment", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReceiptHandlerTestSuite) TestEmailReceipt_DeliveryFailureMapsTo502() {
	receiptID := uuid.NewString()
	suite.mockExportService.On("EmailReceipt", mock.Anything, receiptID).
		Return(apperrors.ErrDelivery).Once()

	w := suite.authedRequest(http.MethodPost, "/api/v1/receipts/"+receiptID+"/email", nil)

	suite.Equal(http.StatusBadGateway, w.Code)
	suite.mockExportService.AssertExpectations(suite.T())
}

func (suite *ReceiptHandlerTestSuite) TestMissingToken_Unauthorized() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/receipts", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockReceiptService.AssertNotCalled(suite.T(), "ListReceipts", mock.Anything, mock.Anything)
}

func TestReceiptHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ReceiptHandlerTestSuite))
}
