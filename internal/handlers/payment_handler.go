package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/loanlink/loanlink-api/internal/models"
	"github.com/loanlink/loanlink-api/internal/payments"
)

// --- START PAYMENT CHECKOUT ---
// Opens a fixed-price checkout session for the caller's application and
// returns the processor's redirect URL. Nothing is persisted here; the
// session lives only at the processor until it is confirmed.
func (h *Handler) CreateCheckoutSession(c *gin.Context) {
	var req struct {
		LoanID string `json:"loanId" binding:"required"`
		Email  string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	app, err := h.Applications.FindByLoanAndEmail(c.Request.Context(), req.LoanID, req.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No application found for this loan and email"})
			return
		}
		log.Printf("CreateCheckoutSession: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve loan application"})
		return
	}

	session, err := h.Payments.CreateCheckoutSession(c.Request.Context(), payments.CheckoutSessionParams{
		AmountCents:       h.Cfg.ProcessingFeeCents,
		Currency:          h.Cfg.ProcessingFeeCurrency,
		ProductName:       "Loan processing fee",
		CustomerEmail:     req.Email,
		ClientReferenceID: uuid.NewString(),
		SuccessURL:        h.Cfg.FrontendURL + "/payment-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:         h.Cfg.FrontendURL + "/payment-cancelled",
		Metadata: map[string]string{
			"loanId":        req.LoanID,
			"applicationId": app.ID.Hex(),
		},
	})
	if err != nil {
		log.Printf("CreateCheckoutSession: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Payment provider is unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": session.URL})
}

// --- CONFIRM PAYMENT ---
// The browser hands back a session id; it is treated as advisory only. The
// session is re-fetched from the processor, and the handler resolves to
// exactly one outcome: paid advances the fee to pending, anything else fails.
func (h *Handler) ConfirmPayment(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_id is required"})
		return
	}

	session, err := h.Payments.GetCheckoutSession(c.Request.Context(), sessionID)
	if err != nil {
		log.Printf("ConfirmPayment: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Could not verify the payment with the provider"})
		return
	}

	if session.PaymentStatus != payments.PaymentStatusPaid {
		c.JSON(http.StatusPaymentRequired, gin.H{"error": "Payment has not been completed"})
		return
	}

	appID, err := primitive.ObjectIDFromHex(session.Metadata["applicationId"])
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session does not reference a loan application"})
		return
	}

	app, err := h.Applications.FindByID(c.Request.Context(), appID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Loan application not found"})
			return
		}
		log.Printf("ConfirmPayment: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve loan application"})
		return
	}

	if !app.FeeStatus.CanTransitionTo(models.FeePending) {
		// Already paid (or resolved); a second confirm must not rewrite.
		c.JSON(http.StatusConflict, gin.H{"error": "Application fee is not awaiting payment"})
		return
	}

	if _, err := h.Applications.MarkPaid(c.Request.Context(), appID, session.PaymentIntent, time.Now().UTC()); err != nil {
		log.Printf("ConfirmPayment: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record the payment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Payment confirmed",
		"feeStatus":     models.FeePending,
		"transactionId": session.PaymentIntent,
	})
}
