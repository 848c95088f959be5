package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/pumppot-labs/pumppot-verifier/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// VerificationHandler handles verification-related HTTP requests
type VerificationHandler struct {
	verificationService services.VerificationService
}

// NewVerificationHandler creates a new VerificationHandler
func NewVerificationHandler(verificationService services.VerificationService) *VerificationHandler {
	return &VerificationHandler{
		verificationService: verificationService,
	}
}

// VerifyPackageRequest is the payload for POST /verifications
type VerifyPackageRequest struct {
	Package string `json:"package" binding:"required"`
}

// VerifyPackage handles POST /verifications
func (h *VerificationHandler) VerifyPackage(c *gin.Context) {
	var request VerifyPackageRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	run, err := h.verificationService.VerifyPackage(c.Request.Context(), request.Package)
	if err != nil {
		if run != nil {
			// The run record carries the failure detail for auditing.
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "run": run})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, run)
}

// GetRunByID handles GET /verifications/:id
func (h *VerificationHandler) GetRunByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}
	run, err := h.verificationService.GetRunByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Verification run not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve verification run: " + err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, run)
}

// GetRunsByCycleID handles GET /verifications/cycle/:cycleId
func (h *VerificationHandler) GetRunsByCycleID(c *gin.Context) {
	cycleID := c.Param("cycleId")
	if cycleID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cycle ID is required"})
		return
	}
	runs, err := h.verificationService.GetRunsByCycleID(c.Request.Context(), cycleID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve verification runs: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, runs)
}

// GetRecentRuns handles GET /verifications
func (h *VerificationHandler) GetRecentRuns(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	runs, err := h.verificationService.GetRecentRuns(c.Request.Context(), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve verification runs: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, runs)
}

// GetRunCount handles GET /verifications/count
func (h *VerificationHandler) GetRunCount(c *gin.Context) {
	count, err := h.verificationService.GetRunCount(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count verification runs: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}
