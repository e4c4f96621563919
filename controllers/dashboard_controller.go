package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"rentdesk/billing"
	"rentdesk/database"
)

// Dashboard returns key statistics for the landing page. Admins get
// system-wide counts, users get counts over their own records.
func Dashboard(c *gin.Context) {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if principal.IsAdmin() {
		adminDashboard(c)
		return
	}

	var myTenants, myInvoices, myUnpaidInvoices int64

	if err := database.DB.Model(&database.Tenant{}).
		Where("user_id = ?", principal.ID).Count(&myTenants).Error; err != nil {
		log.Printf("Dashboard count error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	if err := database.DB.Model(&database.Invoice{}).
		Joins("JOIN tenants ON tenants.id = invoices.tenant_id").
		Where("tenants.user_id = ?", principal.ID).
		Count(&myInvoices).Error; err != nil {
		log.Printf("Dashboard count error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	if err := database.DB.Model(&database.Invoice{}).
		Joins("JOIN tenants ON tenants.id = invoices.tenant_id").
		Where("tenants.user_id = ? AND invoices.status = ?", principal.ID, billing.InvoiceStatusUnpaid).
		Count(&myUnpaidInvoices).Error; err != nil {
		log.Printf("Dashboard count error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats": gin.H{
			"total_tenants":   myTenants,
			"total_invoices":  myInvoices,
			"unpaid_invoices": myUnpaidInvoices,
		},
	})
}

func adminDashboard(c *gin.Context) {
	var totalUsers, totalTenants, totalInvoices int64
	var paidInvoices, unpaidInvoices, pendingFeedbacks int64

	if err := database.DB.Model(&database.User{}).Count(&totalUsers).Error; err != nil {
		log.Printf("Dashboard count error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count users"})
		return
	}
	if err := database.DB.Model(&database.Tenant{}).Count(&totalTenants).Error; err != nil {
		log.Printf("Dashboard count error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count tenants"})
		return
	}
	if err := database.DB.Model(&database.Invoice{}).Count(&totalInvoices).Error; err != nil {
		log.Printf("Dashboard count error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count invoices"})
		return
	}
	if err := database.DB.Model(&database.Invoice{}).
		Where("status = ?", billing.InvoiceStatusPaid).Count(&paidInvoices).Error; err != nil {
		log.Printf("Dashboard count error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count invoices"})
		return
	}
	if err := database.DB.Model(&database.Invoice{}).
		Where("status = ?", billing.InvoiceStatusUnpaid).Count(&unpaidInvoices).Error; err != nil {
		log.Printf("Dashboard count error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count invoices"})
		return
	}
	if err := database.DB.Model(&database.Feedback{}).
		Where("status = ?", billing.FeedbackStatusPending).Count(&pendingFeedbacks).Error; err != nil {
		log.Printf("Dashboard count error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count feedbacks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats": gin.H{
			"total_users":       totalUsers,
			"total_tenants":     totalTenants,
			"total_invoices":    totalInvoices,
			"paid_invoices":     paidInvoices,
			"unpaid_invoices":   unpaidInvoices,
			"pending_feedbacks": pendingFeedbacks,
		},
	})
}
