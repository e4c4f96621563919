package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rentdesk/database"
)

// Principal is the calling identity extracted from the auth middleware
// context, plus the mobile number from the user row (needed for
// contact-match checks on feedback).
type Principal struct {
	ID     uuid.UUID
	Email  string
	Mobile string
	Role   string
}

func (p Principal) IsAdmin() bool {
	return p.Role == database.RoleAdmin
}

// CurrentPrincipal reads the authenticated principal from the request
// context. Returns false when the request is unauthenticated.
func CurrentPrincipal(c *gin.Context) (Principal, bool) {
	idValue, exists := c.Get("userID")
	if !exists {
		return Principal{}, false
	}

	id, ok := idValue.(uuid.UUID)
	if !ok {
		return Principal{}, false
	}

	p := Principal{
		ID:    id,
		Email: c.GetString("email"),
		Role:  c.GetString("role"),
	}

	var user database.User
	if err := database.DB.Select("mobile").Where("id = ?", id).First(&user).Error; err == nil {
		p.Mobile = user.Mobile
	}

	return p, true
}

// CanAccessTenant reports whether the principal may view a tenant record.
func CanAccessTenant(p Principal, tenant *database.Tenant) bool {
	return p.IsAdmin() || tenant.UserID == p.ID
}

// CanAccessInvoice reports whether the principal may view or mutate an
// invoice. Requires the invoice's Tenant to be loaded.
func CanAccessInvoice(p Principal, invoice *database.Invoice) bool {
	return p.IsAdmin() || invoice.Tenant.UserID == p.ID
}

// CanAccessFeedback reports whether the principal may view or update a
// feedback record: admins always, creators always, and otherwise anyone
// whose email or mobile matches the recorded contact fields.
func CanAccessFeedback(p Principal, feedback *database.Feedback) bool {
	if p.IsAdmin() {
		return true
	}
	if feedback.CreatedByID != nil && *feedback.CreatedByID == p.ID {
		return true
	}
	return feedbackContactMatch(p, feedback)
}

func feedbackContactMatch(p Principal, feedback *database.Feedback) bool {
	if p.Email != "" && feedback.Email != nil && *feedback.Email == p.Email {
		return true
	}
	if p.Mobile != "" && feedback.Mobile != nil && *feedback.Mobile == p.Mobile {
		return true
	}
	return false
}
