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

// --- LIST LOANS (with Filtering & Sorting) ---
func (h *Handler) ListLoans(c *gin.Context) {
	loans, err := h.Loans.List(c.Request.Context(), c.Query("email"), c.Query("searchText"))
	if err != nil {
		log.Printf("ListLoans: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve loans"})
		return
	}

	c.JSON(http.StatusOK, loans)
}

// --- FEATURED LOANS (home page, capped at 3) ---
func (h *Handler) FeaturedLoans(c *gin.Context) {
	loans, err := h.Loans.Featured(c.Request.Context())
	if err != nil {
		log.Printf("FeaturedLoans: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve featured loans"})
		return
	}

	c.JSON(http.StatusOK, loans)
}

// --- GET LOAN BY ID ---
func (h *Handler) GetLoan(c *gin.Context) {
	loanID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid loan ID"})
		return
	}

	loan, err := h.Loans.FindByID(c.Request.Context(), loanID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Loan not found"})
			return
		}
		log.Printf("GetLoan: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve loan"})
		return
	}

	c.JSON(http.StatusOK, loan)
}

// --- UPDATE LOAN VISIBILITY ---
func (h *Handler) UpdateLoanVisibility(c *gin.Context) {
	loanID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid loan ID"})
		return
	}

	var req struct {
		ShowHome *bool `json:"showHome" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body, expecting {\"showHome\": true|false}"})
		return
	}

	matched, err := h.Loans.SetShowHome(c.Request.Context(), loanID, *req.ShowHome)
	if err != nil {
		log.Printf("UpdateLoanVisibility: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update loan"})
		return
	}
	if matched == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Loan not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Loan updated successfully"})
}

type CreateLoanRequest struct {
	Title        string  `json:"title" binding:"required"`
	Category     string  `json:"category"`
	Description  string  `json:"description"`
	Image        string  `json:"image"`
	InterestRate float64 `json:"interestRate"`
	MaxLimit     float64 `json:"maxLimit"`
	ManagerEmail string  `json:"managerEmail" binding:"required,email"`
	ShowHome     bool    `json:"showHome"`
}

// --- CREATE LOAN ---
func (h *Handler) CreateLoan(c *gin.Context) {
	var req CreateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	loan := models.Loan{
		ID:           primitive.NewObjectID(),
		Title:        req.Title,
		Category:     req.Category,
		Description:  req.Description,
		Image:        req.Image,
		InterestRate: req.InterestRate,
		MaxLimit:     req.MaxLimit,
		ManagerEmail: req.ManagerEmail,
		ShowHome:     req.ShowHome,
		CreatedAt:    time.Now().UTC(),
	}

	if err := h.Loans.Insert(c.Request.Context(), &loan); err != nil {
		log.Printf("CreateLoan: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create loan"})
		return
	}

	c.JSON(http.StatusCreated, loan)
}

// --- DELETE LOAN ---
// Applications referencing the loan are not deleted with it. The response
// reports how many are left orphaned so the gap is visible to the caller.
func (h *Handler) DeleteLoan(c *gin.Context) {
	loanID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid loan ID"})
		return
	}

	orphaned, err := h.Applications.CountByLoanID(c.Request.Context(), loanID.Hex())
	if err != nil {
		log.Printf("DeleteLoan: counting applications: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete loan"})
		return
	}

	deleted, err := h.Loans.Delete(c.Request.Context(), loanID)
	if err != nil {
		log.Printf("DeleteLoan: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete loan"})
		return
	}
	if deleted == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Loan not found"})
		return
	}

	if orphaned > 0 {
		log.Printf("DeleteLoan: loan %s deleted with %d applications still referencing it", loanID.Hex(), orphaned)
	}

	c.JSON(http.StatusOK, gin.H{
		"message":              "Loan deleted successfully",
		"orphanedApplications": orphaned,
	})
}
