package controllers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentdesk/billing"
	"rentdesk/database"
)

func feedbackRouter(user *database.User) *gin.Engine {
	router := gin.New()
	if user != nil {
		router.Use(authAs(*user))
	}
	router.POST("/feedbacks", CreateFeedback)
	router.GET("/feedbacks", ListFeedbacks)
	router.GET("/feedbacks/:id", GetFeedbackByID)
	router.PATCH("/feedbacks/:id/status", UpdateFeedbackStatus)
	router.POST("/feedbacks/:id/claim", ClaimFeedback)
	router.DELETE("/feedbacks/:id", DeleteFeedback)
	return router
}

func TestCreateFeedback(t *testing.T) {
	setupTest(t)
	router := feedbackRouter(nil)

	t.Run("Anonymous Submission Drops Identity Fields", func(t *testing.T) {
		w := performRequest(router, "POST", "/feedbacks", gin.H{
			"name":          "Ram Thapa",
			"address":       "Kathmandu",
			"mobile":        "9800000001",
			"email":         "ram@example.com",
			"rating":        "good",
			"feedback_text": "Water supply is irregular.",
			"anonymous":     true,
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var feedback database.Feedback
		require.NoError(t, database.DB.Order("created_at DESC").First(&feedback).Error)
		assert.True(t, feedback.Anonymous)
		assert.Nil(t, feedback.Name)
		assert.Nil(t, feedback.Address)
		assert.Nil(t, feedback.Mobile)
		assert.Nil(t, feedback.Email)
		assert.Equal(t, billing.FeedbackStatusPending, feedback.Status)
		assert.Len(t, feedback.SerialNumber, billing.SerialLength)
	})

	t.Run("Named Submission Requires Contact Fields", func(t *testing.T) {
		w := performRequest(router, "POST", "/feedbacks", gin.H{
			"name":          "Sita Rai",
			"address":       "Pokhara",
			"rating":        "poor",
			"feedback_text": "Generator noise at night.",
			"anonymous":     false,
		})
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "mobile")

		var count int64
		database.DB.Model(&database.Feedback{}).Where("name = ?", "Sita Rai").Count(&count)
		assert.Zero(t, count)
	})

	t.Run("Email Optional For Named Submission", func(t *testing.T) {
		w := performRequest(router, "POST", "/feedbacks", gin.H{
			"name":          "Hari KC",
			"address":       "Lalitpur",
			"mobile":        "9800000002",
			"rating":        "excellent",
			"feedback_text": "Quick repair turnaround.",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var feedback database.Feedback
		require.NoError(t, database.DB.Where("mobile = ?", "9800000002").First(&feedback).Error)
		require.NotNil(t, feedback.Name)
		assert.Equal(t, "Hari KC", *feedback.Name)
		assert.Nil(t, feedback.Email)
	})

	t.Run("Unknown Rating Rejected", func(t *testing.T) {
		w := performRequest(router, "POST", "/feedbacks", gin.H{
			"rating":        "amazing",
			"feedback_text": "text",
			"anonymous":     true,
		})
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "rating")
	})

	t.Run("Authenticated Submitter Recorded As Creator", func(t *testing.T) {
		user := createTestUser(t, "creator@example.com", database.RoleUser, "9811111111")
		authedRouter := feedbackRouter(&user)

		w := performRequest(authedRouter, "POST", "/feedbacks", gin.H{
			"name":          "Creator User",
			"address":       "Kirtipur",
			"mobile":        "9811111111",
			"rating":        "good",
			"feedback_text": "Lift maintenance pending.",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var feedback database.Feedback
		require.NoError(t, database.DB.Where("created_by_id = ?", user.ID).First(&feedback).Error)
		assert.False(t, feedback.Anonymous)
	})

	t.Run("Anonymous Submission Keeps No Creator Reference", func(t *testing.T) {
		user := createTestUser(t, "hidden@example.com", database.RoleUser, "9812222222")
		authedRouter := feedbackRouter(&user)

		w := performRequest(authedRouter, "POST", "/feedbacks", gin.H{
			"rating":        "poor",
			"feedback_text": "Security guard absent at night.",
			"anonymous":     true,
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var feedback database.Feedback
		require.NoError(t, database.DB.Where("feedback_text = ?", "Security guard absent at night.").
			First(&feedback).Error)
		assert.True(t, feedback.Anonymous)
		assert.Nil(t, feedback.CreatedByID)
	})
}

func TestFeedbackVisibility(t *testing.T) {
	setupTest(t)

	admin := createTestUser(t, "admin@example.com", database.RoleAdmin, "9800000000")
	owner := createTestUser(t, "owner@example.com", database.RoleUser, "9822222222")
	stranger := createTestUser(t, "stranger@example.com", database.RoleUser, "9833333333")

	email := owner.Email
	feedback := database.Feedback{
		SerialNumber: billing.NewSerialNumber(),
		Email:        &email,
		Rating:       billing.RatingPoor,
		FeedbackText: "Parking gate broken.",
		Status:       billing.FeedbackStatusPending,
	}
	require.NoError(t, database.DB.Create(&feedback).Error)

	t.Run("Contact Match Sees Record", func(t *testing.T) {
		w := performRequest(feedbackRouter(&owner), "GET", "/feedbacks/"+feedback.ID.String(), nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Unrelated User Gets Not Found", func(t *testing.T) {
		w := performRequest(feedbackRouter(&stranger), "GET", "/feedbacks/"+feedback.ID.String(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Admin Sees Record", func(t *testing.T) {
		w := performRequest(feedbackRouter(&admin), "GET", "/feedbacks/"+feedback.ID.String(), nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Visitor Fetch By Exact ID Allowed", func(t *testing.T) {
		w := performRequest(feedbackRouter(nil), "GET", "/feedbacks/"+feedback.ID.String(), nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("List Scoped To Caller", func(t *testing.T) {
		w := performRequest(feedbackRouter(&stranger), "GET", "/feedbacks", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), feedback.ID.String())

		w = performRequest(feedbackRouter(&admin), "GET", "/feedbacks", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), feedback.ID.String())
	})
}

func TestUpdateFeedbackStatus(t *testing.T) {
	setupTest(t)

	admin := createTestUser(t, "admin@example.com", database.RoleAdmin, "9800000000")
	router := feedbackRouter(&admin)

	feedback := database.Feedback{
		SerialNumber: billing.NewSerialNumber(),
		Rating:       billing.RatingGood,
		FeedbackText: "Noise complaint.",
		Anonymous:    true,
		Status:       billing.FeedbackStatusPending,
	}
	require.NoError(t, database.DB.Create(&feedback).Error)

	t.Run("Valid Transition", func(t *testing.T) {
		w := performRequest(router, "PATCH", "/feedbacks/"+feedback.ID.String()+"/status",
			gin.H{"status": "solved"})
		require.Equal(t, http.StatusOK, w.Code)

		var updated database.Feedback
		require.NoError(t, database.DB.First(&updated, "id = ?", feedback.ID).Error)
		assert.Equal(t, billing.FeedbackStatusSolved, updated.Status)
	})

	t.Run("Unknown Status Leaves Record Unchanged", func(t *testing.T) {
		w := performRequest(router, "PATCH", "/feedbacks/"+feedback.ID.String()+"/status",
			gin.H{"status": "escalated"})
		require.Equal(t, http.StatusBadRequest, w.Code)

		var updated database.Feedback
		require.NoError(t, database.DB.First(&updated, "id = ?", feedback.ID).Error)
		assert.Equal(t, billing.FeedbackStatusSolved, updated.Status)
	})
}

func TestClaimFeedback(t *testing.T) {
	setupTest(t)

	owner := createTestUser(t, "owner@example.com", database.RoleUser, "9822222222")
	stranger := createTestUser(t, "stranger@example.com", database.RoleUser, "9833333333")

	newUnclaimed := func(email string) database.Feedback {
		feedback := database.Feedback{
			SerialNumber: billing.NewSerialNumber(),
			Email:        &email,
			Rating:       billing.RatingGood,
			FeedbackText: "Claimable complaint.",
			Status:       billing.FeedbackStatusPending,
		}
		require.NoError(t, database.DB.Create(&feedback).Error)
		return feedback
	}

	t.Run("Matching Contact Claims Record", func(t *testing.T) {
		feedback := newUnclaimed(owner.Email)

		w := performRequest(feedbackRouter(&owner), "POST", "/feedbacks/"+feedback.ID.String()+"/claim", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var claimed database.Feedback
		require.NoError(t, database.DB.First(&claimed, "id = ?", feedback.ID).Error)
		require.NotNil(t, claimed.CreatedByID)
		assert.Equal(t, owner.ID, *claimed.CreatedByID)
	})

	t.Run("Mismatched Contact Forbidden", func(t *testing.T) {
		feedback := newUnclaimed(owner.Email)

		w := performRequest(feedbackRouter(&stranger), "POST", "/feedbacks/"+feedback.ID.String()+"/claim", nil)
		require.Equal(t, http.StatusForbidden, w.Code)

		var unclaimed database.Feedback
		require.NoError(t, database.DB.First(&unclaimed, "id = ?", feedback.ID).Error)
		assert.Nil(t, unclaimed.CreatedByID)
	})

	t.Run("Already Claimed Rejected", func(t *testing.T) {
		feedback := newUnclaimed(owner.Email)
		require.NoError(t, database.DB.Model(&feedback).Update("created_by_id", stranger.ID).Error)

		w := performRequest(feedbackRouter(&owner), "POST", "/feedbacks/"+feedback.ID.String()+"/claim", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDeleteFeedback(t *testing.T) {
	setupTest(t)

	admin := createTestUser(t, "admin@example.com", database.RoleAdmin, "9800000000")

	feedback := database.Feedback{
		SerialNumber: billing.NewSerialNumber(),
		Rating:       billing.RatingPoor,
		FeedbackText: "To be removed.",
		Anonymous:    true,
		Status:       billing.FeedbackStatusClosed,
	}
	require.NoError(t, database.DB.Create(&feedback).Error)

	w := performRequest(feedbackRouter(&admin), "DELETE", "/feedbacks/"+feedback.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	database.DB.Model(&database.Feedback{}).Where("id = ?", feedback.ID).Count(&count)
	assert.Zero(t, count)
}
