package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/loanlink/loanlink-api/internal/models"
)

// --- LIST USERS (paged search) ---
func (h *Handler) ListUsers(c *gin.Context) {
	page, err := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "5"), 10, 64)
	if err != nil || limit < 1 {
		limit = 5
	}

	users, total, err := h.Users.List(c.Request.Context(), c.Query("searchText"), page, limit)
	if err != nil {
		log.Printf("ListUsers: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users"})
		return
	}

	totalPages := (total + limit - 1) / limit
	c.JSON(http.StatusOK, gin.H{
		"users":      users,
		"totalCount": total,
		"totalPages": totalPages,
	})
}

// --- GET ROLE & STATUS BY EMAIL ---
// The front end probes this for unknown emails, so a miss is an empty 200,
// not a 404.
func (h *Handler) GetUserRole(c *gin.Context) {
	user, err := h.Users.FindByEmail(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusOK, gin.H{"role": "", "status": ""})
			return
		}
		log.Printf("GetUserRole: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"role": user.Role, "status": user.Status})
}

// --- GET USER BY ID ---
func (h *Handler) GetUser(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	user, err := h.Users.FindByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		log.Printf("GetUser: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// --- UPDATE USER STATUS ---
func (h *Handler) UpdateUserStatus(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	status := models.UserStatus(req.Status)
	if !status.Valid() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Unknown user status: " + req.Status})
		return
	}

	matched, err := h.Users.UpdateStatus(c.Request.Context(), userID, status)
	if err != nil {
		log.Printf("UpdateUserStatus: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user status"})
		return
	}
	if matched == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User status updated successfully"})
}

// --- SUSPEND USER (status + reason + feedback in one write) ---
func (h *Handler) SuspendUser(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var req struct {
		Status          string `json:"status" binding:"required"`
		SuspendReason   string `json:"suspendReason"`
		SuspendFeedback string `json:"suspendFeedback"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	status := models.UserStatus(req.Status)
	if !status.Valid() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Unknown user status: " + req.Status})
		return
	}

	matched, err := h.Users.Suspend(c.Request.Context(), userID, status, req.SuspendReason, req.SuspendFeedback)
	if err != nil {
		log.Printf("SuspendUser: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to suspend user"})
		return
	}
	if matched == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User suspended successfully"})
}

type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role"`
}

// --- CREATE USER (idempotent on email) ---
func (h *Handler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Check the email first so a duplicate signup never inserts a second
	// document for the same address.
	_, err := h.Users.FindByEmail(c.Request.Context(), req.Email)
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "An account with this email already exists"})
		return
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		log.Printf("CreateUser: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	role := models.UserRole(req.Role)
	if role == "" {
		role = models.RoleApplicant
	}

	user := models.User{
		ID:        primitive.NewObjectID(),
		Name:      req.Name,
		Email:     req.Email,
		Role:      role,
		Status:    models.UserPending, // every new account starts pending
		CreatedAt: time.Now().UTC(),
	}

	if err := h.Users.Insert(c.Request.Context(), &user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "An account with this email already exists"})
			return
		}
		log.Printf("CreateUser: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, user)
}
