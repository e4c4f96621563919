package controllers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/razorpay/razorpay-go"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"rentdesk/billing"
	"rentdesk/config"
	"rentdesk/database"
)

// PaymentOrderRequest contains data for creating a Razorpay order
type PaymentOrderRequest struct {
	InvoiceID uuid.UUID `json:"invoice_id" binding:"required"`
}

// PaymentVerificationRequest contains data for verifying a payment
type PaymentVerificationRequest struct {
	PaymentID string    `json:"payment_id" binding:"required"`
	OrderID   string    `json:"order_id" binding:"required"`
	Signature string    `json:"signature" binding:"required"`
	InvoiceID uuid.UUID `json:"invoice_id" binding:"required"`
}

var paiseFactor = decimal.NewFromInt(100)

// GeneratePaymentOrder creates a Razorpay order for an unpaid invoice
func GeneratePaymentOrder(c *gin.Context) {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var request PaymentOrderRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	var invoice database.Invoice
	if err := database.DB.Preload("Tenant").Where("id = ?", request.InvoiceID).First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
			return
		}
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	if !CanAccessInvoice(principal, &invoice) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		return
	}

	if invoice.Status == billing.InvoiceStatusPaid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invoice is already paid"})
		return
	}

	client := razorpay.NewClient(config.AppConfig.RazorpayKey, config.AppConfig.RazorpaySecret)

	// Razorpay takes the amount in paise
	amountInPaise := invoice.GrandTotal.Mul(paiseFactor).IntPart()

	data := map[string]interface{}{
		"amount":   amountInPaise,
		"currency": "INR",
		"receipt":  fmt.Sprintf("invoice_%s", invoice.SerialNumber),
		"notes": map[string]interface{}{
			"invoice_id": invoice.ID.String(),
			"rent_month": invoice.RentMonth,
		},
	}

	razorpayOrder, err := client.Order.Create(data, nil)
	if err != nil {
		log.Printf("Razorpay order creation error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating payment order"})
		return
	}

	razorpayOrderID, _ := razorpayOrder["id"].(string)
	paymentDetails := fmt.Sprintf(`{"razorpay_order_id": "%s"}`, razorpayOrderID)

	payment := database.Payment{
		UserID:         principal.ID,
		InvoiceID:      invoice.ID,
		Amount:         invoice.GrandTotal,
		Status:         database.PaymentStatusPending,
		TransactionID:  razorpayOrderID,
		PaymentDetails: paymentDetails,
	}

	if err := database.DB.Create(&payment).Error; err != nil {
		log.Printf("Database error creating payment: %v", err)
		// Continue anyway, we'll reconcile during verification
	}

	c.JSON(http.StatusOK, gin.H{
		"razorpay_order_id": razorpayOrderID,
		"amount":            invoice.GrandTotal,
		"currency":          "INR",
		"key":               config.AppConfig.RazorpayKey,
		"invoice_id":        invoice.ID,
	})
}

// VerifyPayment verifies a completed Razorpay payment and marks the
// invoice as paid
func VerifyPayment(c *gin.Context) {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var request PaymentVerificationRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	signedData := request.OrderID + "|" + request.PaymentID
	if !verifyRazorpaySignature(signedData, request.Signature, config.AppConfig.RazorpaySecret) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment signature"})
		return
	}

	tx := database.DB.Begin()
	if tx.Error != nil {
		log.Printf("Transaction error: %v", tx.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	var invoice database.Invoice
	if err := tx.Preload("Tenant").Where("id = ?", request.InvoiceID).First(&invoice).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
			return
		}
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	if !CanAccessInvoice(principal, &invoice) {
		tx.Rollback()
		c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		return
	}

	if invoice.Status == billing.InvoiceStatusPaid {
		tx.Rollback()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invoice is already paid"})
		return
	}

	paymentDetails := fmt.Sprintf(`{"razorpay_order_id": "%s", "razorpay_payment_id": "%s"}`,
		request.OrderID, request.PaymentID)

	result := tx.Model(&database.Payment{}).
		Where("invoice_id = ? AND transaction_id = ? AND status = ?",
			invoice.ID, request.OrderID, database.PaymentStatusPending).
		Updates(map[string]interface{}{
			"status":          database.PaymentStatusSuccess,
			"transaction_id":  request.PaymentID,
			"payment_method":  "razorpay",
			"payment_details": paymentDetails,
		})
	if result.Error != nil {
		tx.Rollback()
		log.Printf("Database error: %v", result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating payment record"})
		return
	}

	if result.RowsAffected == 0 {
		// No pending record from order generation, record the payment now
		payment := database.Payment{
			UserID:         principal.ID,
			InvoiceID:      invoice.ID,
			Amount:         invoice.GrandTotal,
			Status:         database.PaymentStatusSuccess,
			PaymentMethod:  "razorpay",
			TransactionID:  request.PaymentID,
			PaymentDetails: paymentDetails,
		}
		if err := tx.Create(&payment).Error; err != nil {
			tx.Rollback()
			log.Printf("Database error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating payment record"})
			return
		}
	}

	if err := tx.Model(&database.Invoice{}).Where("id = ?", invoice.ID).
		Update("status", billing.InvoiceStatusPaid).Error; err != nil {
		tx.Rollback()
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating invoice status"})
		return
	}

	invoiceID := invoice.ID
	notification := database.Notification{
		UserID:    invoice.Tenant.UserID,
		Title:     "Payment Successful",
		Message:   fmt.Sprintf("Rent payment for %s has been processed successfully.", invoice.RentMonth),
		Type:      "payment",
		RelatedID: &invoiceID,
	}
	if err := tx.Create(&notification).Error; err != nil {
		tx.Rollback()
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating notification"})
		return
	}

	if err := tx.Commit().Error; err != nil {
		log.Printf("Transaction commit error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Payment verified successfully",
	})
}

// GetPaymentHistory gets payment history: admins see all payments,
// users see their own.
func GetPaymentHistory(c *gin.Context) {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	query := database.DB.Model(&database.Payment{}).Preload("Invoice")
	if !principal.IsAdmin() {
		query = query.Where("user_id = ?", principal.ID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	var payments []database.Payment
	if err := query.Scopes(Paginate(c)).Order("created_at DESC").Find(&payments).Error; err != nil {
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(c, payments, total))
}

func verifyRazorpaySignature(data, signature, secret string) bool {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(data))
	expectedSignature := hex.EncodeToString(h.Sum(nil))
	return hmac.Equal([]byte(expectedSignature), []byte(signature))
}
