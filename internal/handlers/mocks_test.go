package handlers

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/loanlink/loanlink-api/internal/models"
	"github.com/loanlink/loanlink-api/internal/payments"
)

// MockUserStore implements UserStore.
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) List(ctx context.Context, searchText string, page, limit int64) ([]models.User, int64, error) {
	args := m.Called(ctx, searchText, page, limit)
	return args.Get(0).([]models.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.UserStatus) (int64, error) {
	args := m.Called(ctx, id, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserStore) Suspend(ctx context.Context, id primitive.ObjectID, status models.UserStatus, reason, feedback string) (int64, error) {
	args := m.Called(ctx, id, status, reason, feedback)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserStore) Insert(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockLoanStore implements LoanStore.
type MockLoanStore struct {
	mock.Mock
}

func (m *MockLoanStore) List(ctx context.Context, managerEmail, searchText string) ([]models.Loan, error) {
	args := m.Called(ctx, managerEmail, searchText)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Loan), args.Error(1)
}

func (m *MockLoanStore) Featured(ctx context.Context) ([]models.Loan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Loan), args.Error(1)
}

func (m *MockLoanStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Loan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Loan), args.Error(1)
}

func (m *MockLoanStore) SetShowHome(ctx context.Context, id primitive.ObjectID, showHome bool) (int64, error) {
	args := m.Called(ctx, id, showHome)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLoanStore) Insert(ctx context.Context, loan *models.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}

func (m *MockLoanStore) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

// MockApplicationStore implements ApplicationStore.
type MockApplicationStore struct {
	mock.Mock
}

func (m *MockApplicationStore) List(ctx context.Context, applicantEmail string, feeStatus models.FeeStatus, searchText string) ([]models.LoanApplication, error) {
	args := m.Called(ctx, applicantEmail, feeStatus, searchText)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LoanApplication), args.Error(1)
}

func (m *MockApplicationStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.LoanApplication, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LoanApplication), args.Error(1)
}

func (m *MockApplicationStore) FindByLoanAndEmail(ctx context.Context, loanID, applicantEmail string) (*models.LoanApplication, error) {
	args := m.Called(ctx, loanID, applicantEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LoanApplication), args.Error(1)
}

func (m *MockApplicationStore) CountByLoanID(ctx context.Context, loanID string) (int64, error) {
	args := m.Called(ctx, loanID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockApplicationStore) Insert(ctx context.Context, app *models.LoanApplication) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}

func (m *MockApplicationStore) Decide(ctx context.Context, id primitive.ObjectID, status models.FeeStatus, decidedAt time.Time) (int64, error) {
	args := m.Called(ctx, id, status, decidedAt)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockApplicationStore) MarkPaid(ctx context.Context, id primitive.ObjectID, transactionID string, paidAt time.Time) (int64, error) {
	args := m.Called(ctx, id, transactionID, paidAt)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockApplicationStore) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

// MockPaymentClient implements PaymentClient.
type MockPaymentClient struct {
	mock.Mock
}

func (m *MockPaymentClient) CreateCheckoutSession(ctx context.Context, params payments.CheckoutSessionParams) (*payments.CheckoutSession, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payments.CheckoutSession), args.Error(1)
}

func (m *MockPaymentClient) GetCheckoutSession(ctx context.Context, sessionID string) (*payments.CheckoutSession, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payments.CheckoutSession), args.Error(1)
}
