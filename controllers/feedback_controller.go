package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"rentdesk/billing"
	"rentdesk/database"
)

// FeedbackRequest contains data for submitting feedback. Identity fields
// are conditionally required: mandatory unless the submission is
// anonymous (email stays optional either way).
type FeedbackRequest struct {
	Name         string `json:"name"`
	Address      string `json:"address"`
	Mobile       string `json:"mobile"`
	Email        string `json:"email"`
	Rating       string `json:"rating" binding:"required"`
	FeedbackText string `json:"feedback_text" binding:"required"`
	Attachment   string `json:"attachment"`
	Anonymous    bool   `json:"anonymous"`
}

// UpdateFeedbackStatusRequest contains data for updating feedback status
type UpdateFeedbackStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// validateFeedbackIdentity applies the conditional requiredness rule.
// Returns the offending field name, or "" when the submission is valid.
func validateFeedbackIdentity(request *FeedbackRequest) string {
	if request.Anonymous {
		return ""
	}
	switch {
	case request.Name == "":
		return "name"
	case request.Address == "":
		return "address"
	case request.Mobile == "":
		return "mobile"
	}
	return ""
}

// CreateFeedback submits a feedback record. Authentication is optional;
// a logged-in submitter is recorded as the creator. When anonymous,
// identity fields are nulled at save time regardless of input.
func CreateFeedback(c *gin.Context) {
	var request FeedbackRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !billing.ValidRating(request.Rating) {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"rating": "Invalid rating value"}})
		return
	}

	if field := validateFeedbackIdentity(&request); field != "" {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{field: "This field is required."}})
		return
	}

	feedback := database.Feedback{
		SerialNumber: billing.NewSerialNumber(),
		Rating:       request.Rating,
		FeedbackText: request.FeedbackText,
		Attachment:   request.Attachment,
		Anonymous:    request.Anonymous,
		Status:       billing.FeedbackStatusPending,
	}

	// Redaction happens after validation: anonymous submissions keep
	// no identity fields, whatever was typed in.
	if !request.Anonymous {
		if request.Name != "" {
			feedback.Name = &request.Name
		}
		if request.Address != "" {
			feedback.Address = &request.Address
		}
		if request.Mobile != "" {
			feedback.Mobile = &request.Mobile
		}
		if request.Email != "" {
			feedback.Email = &request.Email
		}
	}

	// An anonymous record keeps no creator reference either, or the
	// submitter could be recovered from the created_by field.
	if principal, ok := CurrentPrincipal(c); ok && !request.Anonymous {
		id := principal.ID
		feedback.CreatedByID = &id
	}

	if err := database.DB.Create(&feedback).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "Serial number collision, please retry"})
			return
		}
		log.Printf("Feedback creation error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit feedback"})
		return
	}

	c.JSON(http.StatusCreated, feedback)
}

// ListFeedbacks returns feedback visible to the caller: admins see all,
// users see records matching their contact details or created by them.
// No listing is offered to unauthenticated visitors.
func ListFeedbacks(c *gin.Context) {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	query := database.DB.Model(&database.Feedback{})
	if !principal.IsAdmin() {
		query = query.Where("created_by_id = ? OR email = ? OR mobile = ?",
			principal.ID, principal.Email, principal.Mobile)
	}

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("serial_number LIKE ? OR name LIKE ? OR email LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	var feedbacks []database.Feedback
	if err := query.Scopes(Paginate(c)).Order("created_at DESC").Find(&feedbacks).Error; err != nil {
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(c, feedbacks, total))
}

// GetFeedbackByID returns one feedback record. An unauthenticated
// visitor may fetch by exact id; authenticated non-admins must pass the
// access policy, and a denied record is indistinguishable from a missing
// one.
func GetFeedbackByID(c *gin.Context) {
	feedbackID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid feedback ID"})
		return
	}

	var feedback database.Feedback
	if err := database.DB.Where("id = ?", feedbackID).First(&feedback).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Feedback not found"})
			return
		}
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	if principal, ok := CurrentPrincipal(c); ok {
		if !CanAccessFeedback(principal, &feedback) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Feedback not found"})
			return
		}
	}

	c.JSON(http.StatusOK, feedback)
}

// UpdateFeedbackStatus updates a feedback status. Allowed for admins,
// the creator, or a caller whose contact details match the record. An
// invalid target status is rejected with no state change.
func UpdateFeedbackStatus(c *gin.Context) {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	feedbackID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid feedback ID"})
		return
	}

	var request UpdateFeedbackStatusRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !billing.ValidFeedbackStatus(request.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"status": "Invalid status value"}})
		return
	}

	var feedback database.Feedback
	if err := database.DB.Where("id = ?", feedbackID).First(&feedback).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Feedback not found"})
			return
		}
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	if !CanAccessFeedback(principal, &feedback) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Feedback not found"})
		return
	}

	if err := database.DB.Model(&feedback).Update("status", request.Status).Error; err != nil {
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Status updated successfully", "status": request.Status})
}

// ClaimFeedback attaches the caller as creator of a creator-less
// feedback record, but only when their email or mobile matches the
// recorded contact fields.
func ClaimFeedback(c *gin.Context) {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	feedbackID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid feedback ID"})
		return
	}

	var feedback database.Feedback
	if err := database.DB.Where("id = ?", feedbackID).First(&feedback).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Feedback not found"})
			return
		}
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	if feedback.CreatedByID != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Feedback already has a creator"})
		return
	}

	if !feedbackContactMatch(principal, &feedback) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Contact details do not match this feedback"})
		return
	}

	// Guard against a concurrent claim on the same record
	result := database.DB.Model(&database.Feedback{}).
		Where("id = ? AND created_by_id IS NULL", feedback.ID).
		Update("created_by_id", principal.ID)
	if result.Error != nil {
		log.Printf("Database error: %v", result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to claim feedback"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Feedback already has a creator"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Feedback claimed successfully"})
}

// DeleteFeedback removes a feedback record permanently (Admin only)
func DeleteFeedback(c *gin.Context) {
	feedbackID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid feedback ID"})
		return
	}

	result := database.DB.Delete(&database.Feedback{}, "id = ?", feedbackID)
	if result.Error != nil {
		log.Printf("Database error: %v", result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete feedback"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Feedback not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Feedback deleted successfully"})
}
