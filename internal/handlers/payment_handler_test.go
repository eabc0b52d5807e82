package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/loanlink/loanlink-api/internal/models"
	"github.com/loanlink/loanlink-api/internal/payments"
)

func TestCreateCheckoutSession(t *testing.T) {
	appID := primitive.NewObjectID()

	t.Run("returns the redirect url", func(t *testing.T) {
		apps := new(MockApplicationStore)
		apps.On("FindByLoanAndEmail", mock.Anything, "loan1", "a@x.com").
			Return(&models.LoanApplication{ID: appID, LoanID: "loan1", FeeStatus: models.FeeUnpaid}, nil)

		pay := new(MockPaymentClient)
		pay.On("CreateCheckoutSession", mock.Anything, mock.MatchedBy(func(p payments.CheckoutSessionParams) bool {
			return p.AmountCents == 2500 &&
				p.Currency == "usd" &&
				p.CustomerEmail == "a@x.com" &&
				p.ClientReferenceID != "" &&
				p.Metadata["applicationId"] == appID.Hex() &&
				strings.Contains(p.SuccessURL, "session_id={CHECKOUT_SESSION_ID}")
		})).Return(&payments.CheckoutSession{ID: "cs_1", URL: "https://checkout.stripe.com/pay/cs_1"}, nil)

		h := newTestHandler(nil, nil, apps, pay)
		r := gin.New()
		r.POST("/payment-checkout-session", h.CreateCheckoutSession)

		body := `{"loanId":"loan1","email":"a@x.com"}`
		req := httptest.NewRequest(http.MethodPost, "/payment-checkout-session", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "https://checkout.stripe.com/pay/cs_1")
		apps.AssertExpectations(t)
		pay.AssertExpectations(t)
	})

	t.Run("no matching application", func(t *testing.T) {
		apps := new(MockApplicationStore)
		apps.On("FindByLoanAndEmail", mock.Anything, "loan1", "a@x.com").
			Return(nil, mongo.ErrNoDocuments)

		pay := new(MockPaymentClient)
		h := newTestHandler(nil, nil, apps, pay)
		r := gin.New()
		r.POST("/payment-checkout-session", h.CreateCheckoutSession)

		req := httptest.NewRequest(http.MethodPost, "/payment-checkout-session", strings.NewReader(`{"loanId":"loan1","email":"a@x.com"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		pay.AssertNotCalled(t, "CreateCheckoutSession", mock.Anything, mock.Anything)
	})

	t.Run("provider outage is a bad gateway", func(t *testing.T) {
		apps := new(MockApplicationStore)
		apps.On("FindByLoanAndEmail", mock.Anything, "loan1", "a@x.com").
			Return(&models.LoanApplication{ID: appID, LoanID: "loan1"}, nil)

		pay := new(MockPaymentClient)
		pay.On("CreateCheckoutSession", mock.Anything, mock.Anything).
			Return(nil, assert.AnError)

		h := newTestHandler(nil, nil, apps, pay)
		r := gin.New()
		r.POST("/payment-checkout-session", h.CreateCheckoutSession)

		req := httptest.NewRequest(http.MethodPost, "/payment-checkout-session", strings.NewReader(`{"loanId":"loan1","email":"a@x.com"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadGateway, w.Code)
	})
}

func TestConfirmPayment(t *testing.T) {
	appID := primitive.NewObjectID()

	t.Run("paid session advances the fee exactly once", func(t *testing.T) {
		apps := new(MockApplicationStore)
		apps.On("FindByID", mock.Anything, appID).
			Return(&models.LoanApplication{ID: appID, FeeStatus: models.FeeUnpaid}, nil)
		apps.On("MarkPaid", mock.Anything, appID, "pi_123", mock.Anything).Return(int64(1), nil)

		pay := new(MockPaymentClient)
		pay.On("GetCheckoutSession", mock.Anything, "cs_1").Return(&payments.CheckoutSession{
			ID:            "cs_1",
			PaymentStatus: payments.PaymentStatusPaid,
			PaymentIntent: "pi_123",
			Metadata:      map[string]string{"applicationId": appID.Hex()},
		}, nil)

		h := newTestHandler(nil, nil, apps, pay)
		r := gin.New()
		r.PATCH("/payment-success", h.ConfirmPayment)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/payment-success?session_id=cs_1", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"feeStatus":"pending"`)
		assert.Contains(t, w.Body.String(), `"transactionId":"pi_123"`)
		apps.AssertNumberOfCalls(t, "MarkPaid", 1)
		apps.AssertExpectations(t)
		pay.AssertExpectations(t)
	})

	t.Run("unpaid session is one failure response and no write", func(t *testing.T) {
		apps := new(MockApplicationStore)
		pay := new(MockPaymentClient)
		pay.On("GetCheckoutSession", mock.Anything, "cs_2").Return(&payments.CheckoutSession{
			ID:            "cs_2",
			PaymentStatus: "unpaid",
			Metadata:      map[string]string{"applicationId": appID.Hex()},
		}, nil)

		h := newTestHandler(nil, nil, apps, pay)
		r := gin.New()
		r.PATCH("/payment-success", h.ConfirmPayment)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/payment-success?session_id=cs_2", nil))

		assert.Equal(t, http.StatusPaymentRequired, w.Code)
		// Exactly one JSON object in the body; never two responses per request.
		assert.Equal(t, 1, strings.Count(w.Body.String(), `"error"`))
		apps.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("second confirm of the same session conflicts", func(t *testing.T) {
		apps := new(MockApplicationStore)
		apps.On("FindByID", mock.Anything, appID).
			Return(&models.LoanApplication{ID: appID, FeeStatus: models.FeePending}, nil)

		pay := new(MockPaymentClient)
		pay.On("GetCheckoutSession", mock.Anything, "cs_1").Return(&payments.CheckoutSession{
			ID:            "cs_1",
			PaymentStatus: payments.PaymentStatusPaid,
			PaymentIntent: "pi_123",
			Metadata:      map[string]string{"applicationId": appID.Hex()},
		}, nil)

		h := newTestHandler(nil, nil, apps, pay)
		r := gin.New()
		r.PATCH("/payment-success", h.ConfirmPayment)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/payment-success?session_id=cs_1", nil))

		assert.Equal(t, http.StatusConflict, w.Code)
		apps.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing session id", func(t *testing.T) {
		h := newTestHandler(nil, nil, new(MockApplicationStore), new(MockPaymentClient))
		r := gin.New()
		r.PATCH("/payment-success", h.ConfirmPayment)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/payment-success", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("provider lookup failure", func(t *testing.T) {
		pay := new(MockPaymentClient)
		pay.On("GetCheckoutSession", mock.Anything, "cs_3").Return(nil, assert.AnError)

		h := newTestHandler(nil, nil, new(MockApplicationStore), pay)
		r := gin.New()
		r.PATCH("/payment-success", h.ConfirmPayment)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/payment-success?session_id=cs_3", nil))
		assert.Equal(t, http.StatusBadGateway, w.Code)
	})
}
