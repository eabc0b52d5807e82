package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/loanlink/loanlink-api/internal/models"
)

// --- LIST LOAN APPLICATIONS (with Filtering & Sorting) ---
func (h *Handler) ListApplications(c *gin.Context) {
	feeStatus := models.FeeStatus(c.Query("feeStatus"))
	if feeStatus != "" && !feeStatus.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown fee status: " + string(feeStatus)})
		return
	}

	applications, err := h.Applications.List(c.Request.Context(), c.Query("email"), feeStatus, c.Query("searchText"))
	if err != nil {
		log.Printf("ListApplications: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve loan applications"})
		return
	}

	c.JSON(http.StatusOK, applications)
}

type CreateApplicationRequest struct {
	LoanID    string  `json:"loanId" binding:"required"`
	LoanTitle string  `json:"loanTitle"`
	Email     string  `json:"email" binding:"required,email"`
	Amount    float64 `json:"amount"`
}

// --- CREATE LOAN APPLICATION ---
func (h *Handler) CreateApplication(c *gin.Context) {
	var req CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	app := models.LoanApplication{
		ID:             primitive.NewObjectID(),
		LoanID:         req.LoanID,
		LoanTitle:      req.LoanTitle,
		ApplicantEmail: req.Email,
		Amount:         req.Amount,
		FeeStatus:      models.FeeUnpaid, // the fee always starts unpaid
		CreatedAt:      time.Now().UTC(),
	}

	if err := h.Applications.Insert(c.Request.Context(), &app); err != nil {
		log.Printf("CreateApplication: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create loan application"})
		return
	}

	c.JSON(http.StatusCreated, app)
}

// --- DECIDE LOAN APPLICATION (Manager) ---
// A decision may only resolve an application whose fee is pending, and only
// to approved or rejected. Both outcomes stamp approvedAt.
func (h *Handler) DecideApplication(c *gin.Context) {
	appID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application ID"})
		return
	}

	var req struct {
		FeeStatus string `json:"feeStatus" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	target := models.FeeStatus(req.FeeStatus)
	if target != models.FeeApproved && target != models.FeeRejected {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "A decision must be approved or rejected"})
		return
	}

	app, err := h.Applications.FindByID(c.Request.Context(), appID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Loan application not found"})
			return
		}
		log.Printf("DecideApplication: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve loan application"})
		return
	}

	if !app.FeeStatus.CanTransitionTo(target) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Cannot move fee status from " + string(app.FeeStatus) + " to " + string(target),
		})
		return
	}

	if _, err := h.Applications.Decide(c.Request.Context(), appID, target, time.Now().UTC()); err != nil {
		log.Printf("DecideApplication: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update loan application"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Loan application updated successfully", "feeStatus": target})
}

// --- DELETE LOAN APPLICATION ---
func (h *Handler) DeleteApplication(c *gin.Context) {
	appID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application ID"})
		return
	}

	deleted, err := h.Applications.Delete(c.Request.Context(), appID)
	if err != nil {
		log.Printf("DeleteApplication: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete loan application"})
		return
	}
	if deleted == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Loan application not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Loan application deleted successfully"})
}
