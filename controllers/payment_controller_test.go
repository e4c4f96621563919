package controllers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentdesk/billing"
	"rentdesk/config"
	"rentdesk/database"
)

func paymentRouter(user database.User) *gin.Engine {
	router := gin.New()
	router.Use(authAs(user))
	router.POST("/payments/verify", VerifyPayment)
	router.GET("/payments", GetPaymentHistory)
	return router
}

func signPayment(orderID, paymentID string) string {
	h := hmac.New(sha256.New, []byte(config.AppConfig.RazorpaySecret))
	h.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(h.Sum(nil))
}

func TestVerifyPayment(t *testing.T) {
	setupTest(t)
	config.AppConfig.RazorpaySecret = "test_secret"

	owner := createTestUser(t, "owner@example.com", database.RoleUser, "9822222222")
	tenant := createTestTenant(t, owner, "tenant@example.com")
	invoice := createTestInvoice(t, tenant)
	router := paymentRouter(owner)

	payment := database.Payment{
		UserID:        owner.ID,
		InvoiceID:     invoice.ID,
		Amount:        invoice.GrandTotal,
		Status:        database.PaymentStatusPending,
		TransactionID: "order_test123",
	}
	require.NoError(t, database.DB.Create(&payment).Error)

	t.Run("Invalid Signature Rejected", func(t *testing.T) {
		w := performRequest(router, "POST", "/payments/verify", gin.H{
			"order_id":   "order_test123",
			"payment_id": "pay_test456",
			"signature":  "bogus",
			"invoice_id": invoice.ID,
		})
		require.Equal(t, http.StatusBadRequest, w.Code)

		var unchanged database.Invoice
		require.NoError(t, database.DB.First(&unchanged, "id = ?", invoice.ID).Error)
		assert.Equal(t, billing.InvoiceStatusUnpaid, unchanged.Status)
	})

	t.Run("Valid Signature Settles Invoice", func(t *testing.T) {
		w := performRequest(router, "POST", "/payments/verify", gin.H{
			"order_id":   "order_test123",
			"payment_id": "pay_test456",
			"signature":  signPayment("order_test123", "pay_test456"),
			"invoice_id": invoice.ID,
		})
		require.Equal(t, http.StatusOK, w.Code)

		var paid database.Invoice
		require.NoError(t, database.DB.First(&paid, "id = ?", invoice.ID).Error)
		assert.Equal(t, billing.InvoiceStatusPaid, paid.Status)

		var settled database.Payment
		require.NoError(t, database.DB.First(&settled, "id = ?", payment.ID).Error)
		assert.Equal(t, database.PaymentStatusSuccess, settled.Status)
		assert.Equal(t, "pay_test456", settled.TransactionID)

		var notifications int64
		database.DB.Model(&database.Notification{}).Where("user_id = ?", owner.ID).Count(&notifications)
		assert.EqualValues(t, 1, notifications)
	})

	t.Run("Already Paid Invoice Rejected", func(t *testing.T) {
		w := performRequest(router, "POST", "/payments/verify", gin.H{
			"order_id":   "order_test123",
			"payment_id": "pay_test789",
			"signature":  signPayment("order_test123", "pay_test789"),
			"invoice_id": invoice.ID,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetPaymentHistory(t *testing.T) {
	setupTest(t)

	admin := createTestUser(t, "admin@example.com", database.RoleAdmin, "9800000000")
	owner := createTestUser(t, "owner@example.com", database.RoleUser, "9822222222")
	stranger := createTestUser(t, "stranger@example.com", database.RoleUser, "9833333333")

	tenant := createTestTenant(t, owner, "tenant@example.com")
	invoice := createTestInvoice(t, tenant)

	payment := database.Payment{
		UserID:        owner.ID,
		InvoiceID:     invoice.ID,
		Amount:        invoice.GrandTotal,
		Status:        database.PaymentStatusSuccess,
		TransactionID: "pay_history1",
	}
	require.NoError(t, database.DB.Create(&payment).Error)

	t.Run("Owner Sees Own Payments", func(t *testing.T) {
		w := performRequest(paymentRouter(owner), "GET", "/payments", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "pay_history1")
	})

	t.Run("Stranger Sees Nothing", func(t *testing.T) {
		w := performRequest(paymentRouter(stranger), "GET", "/payments", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "pay_history1")
	})

	t.Run("Admin Sees All", func(t *testing.T) {
		w := performRequest(paymentRouter(admin), "GET", "/payments", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "pay_history1")
	})
}
