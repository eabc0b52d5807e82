package handlers

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/loanlink/loanlink-api/internal/config"
	"github.com/loanlink/loanlink-api/internal/models"
	"github.com/loanlink/loanlink-api/internal/payments"
)

// UserStore is the user-directory persistence the handlers depend on.
type UserStore interface {
	List(ctx context.Context, searchText string, page, limit int64) ([]models.User, int64, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.UserStatus) (int64, error)
	Suspend(ctx context.Context, id primitive.ObjectID, status models.UserStatus, reason, feedback string) (int64, error)
	Insert(ctx context.Context, user *models.User) error
}

// LoanStore is the loan-catalog persistence.
type LoanStore interface {
	List(ctx context.Context, managerEmail, searchText string) ([]models.Loan, error)
	Featured(ctx context.Context) ([]models.Loan, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Loan, error)
	SetShowHome(ctx context.Context, id primitive.ObjectID, showHome bool) (int64, error)
	Insert(ctx context.Context, loan *models.Loan) error
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
}

// ApplicationStore is the application-and-payment-ledger persistence.
type ApplicationStore interface {
	List(ctx context.Context, applicantEmail string, feeStatus models.FeeStatus, searchText string) ([]models.LoanApplication, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.LoanApplication, error)
	FindByLoanAndEmail(ctx context.Context, loanID, applicantEmail string) (*models.LoanApplication, error)
	CountByLoanID(ctx context.Context, loanID string) (int64, error)
	Insert(ctx context.Context, app *models.LoanApplication) error
	Decide(ctx context.Context, id primitive.ObjectID, status models.FeeStatus, decidedAt time.Time) (int64, error)
	MarkPaid(ctx context.Context, id primitive.ObjectID, transactionID string, paidAt time.Time) (int64, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
}

// PaymentClient is the external checkout processor.
type PaymentClient interface {
	CreateCheckoutSession(ctx context.Context, params payments.CheckoutSessionParams) (*payments.CheckoutSession, error)
	GetCheckoutSession(ctx context.Context, sessionID string) (*payments.CheckoutSession, error)
}

// Handler carries every dependency the routes need. The stores and the
// payment client are interfaces so tests can swap in doubles.
type Handler struct {
	Cfg          *config.Config
	Users        UserStore
	Loans        LoanStore
	Applications ApplicationStore
	Payments     PaymentClient
}

func NewHandler(cfg *config.Config, users UserStore, loans LoanStore, applications ApplicationStore, paymentClient PaymentClient) *Handler {
	return &Handler{
		Cfg:          cfg,
		Users:        users,
		Loans:        loans,
		Applications: applications,
		Payments:     paymentClient,
	}
}
