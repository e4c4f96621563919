package controllers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"rentdesk/billing"
	"rentdesk/database"
)

// InvoiceRequest contains data for creating or editing an invoice. The
// fee fields arrive as the billing FeeSchedule; totals are never taken
// from the client.
type InvoiceRequest struct {
	TenantID     uuid.UUID `json:"tenant_id" binding:"required"`
	RentMonth    string    `json:"rent_month" binding:"required"`
	Date         string    `json:"date"` // YYYY-MM-DD, defaults to today
	HouseNumber  string    `json:"house_number"`
	FlatNumber   string    `json:"flat_number"`
	RoomNo       string    `json:"room_no"`
	BuildingName string    `json:"building_name"`
	Signature    string    `json:"signature"`
	BankDetails  string    `json:"bank_details"`

	billing.FeeSchedule
}

// UpdateInvoiceStatusRequest contains data for updating an invoice status
type UpdateInvoiceStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// invoiceScope returns the invoice queryset visible to the principal,
// joined with tenants: admins see every invoice, users only invoices of
// their own tenants.
func invoiceScope(p Principal) *gorm.DB {
	query := database.DB.Model(&database.Invoice{}).
		Joins("JOIN tenants ON tenants.id = invoices.tenant_id")
	if !p.IsAdmin() {
		query = query.Where("tenants.user_id = ?", p.ID)
	}
	return query
}

// writeBillingError maps calculator failures onto the API error shapes:
// field errors carry the offending field name, invariant violations are
// top-level.
func writeBillingError(c *gin.Context, err error) {
	var fieldErr *billing.FieldValidationError
	if errors.As(err, &fieldErr) {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{fieldErr.Field: fieldErr.Message}})
		return
	}
	var invariantErr *billing.InvariantViolation
	if errors.As(err, &invariantErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": invariantErr.Message})
		return
	}
	log.Printf("Billing error: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
}

// CreateInvoice creates an invoice for a tenant visible to the caller.
// The serial number is assigned here and never changes afterwards.
func CreateInvoice(c *gin.Context) {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var request InvoiceRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var tenant database.Tenant
	if err := database.DB.Where("id = ?", request.TenantID).First(&tenant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tenant not found"})
			return
		}
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	if !CanAccessTenant(principal, &tenant) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tenant not found"})
		return
	}

	totals, err := billing.Calculate(request.FeeSchedule)
	if err != nil {
		writeBillingError(c, err)
		return
	}

	issueDate := time.Now()
	if request.Date != "" {
		parsed, err := time.Parse("2006-01-02", request.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"date": "Enter a valid date (YYYY-MM-DD)."}})
			return
		}
		issueDate = parsed
	}

	invoice := database.Invoice{
		SerialNumber: billing.NewSerialNumber(),
		TenantID:     tenant.ID,
		RentMonth:    request.RentMonth,
		IssueDate:    issueDate,
		HouseNumber:  request.HouseNumber,
		FlatNumber:   request.FlatNumber,
		RoomNo:       request.RoomNo,
		BuildingName: request.BuildingName,
		Signature:    request.Signature,
		BankDetails:  request.BankDetails,

		RentAmount:              request.RentAmount,
		ParkingFee:              request.ParkingFee,
		ElectricityFee:          request.ElectricityFee,
		SecurityFee:             request.SecurityFee,
		DrinkingWaterFee:        request.DrinkingWaterFee,
		GeneratorPowerBackupFee: request.GeneratorPowerBackupFee,
		NormalWaterFee:          request.NormalWaterFee,
		InternetTelephoneTVFee:  request.InternetTelephoneTVFee,
		WasteFee:                request.WasteFee,
		OtherFee:                request.OtherFee,
		Discount:                request.Discount,
		Tax:                     request.Tax,
		PreviousDue:             request.PreviousDue,
		TotalAmount:             totals.TotalAmount,
		GrandTotal:              totals.GrandTotal,

		Status: billing.InvoiceStatusUnpaid,
	}

	if err := database.DB.Create(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "Serial number collision, please retry"})
			return
		}
		log.Printf("Invoice creation error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create invoice"})
		return
	}

	invoice.Tenant = tenant
	c.JSON(http.StatusCreated, invoice)
}

// ListInvoices returns invoices visible to the caller with search,
// date-range and status filters, and pagination
func ListInvoices(c *gin.Context) {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	query := invoiceScope(principal)

	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where(
			"tenants.name LIKE ? OR tenants.email LIKE ? OR tenants.mobile LIKE ? OR "+
				"invoices.house_number LIKE ? OR invoices.flat_number LIKE ? OR "+
				"invoices.room_no LIKE ? OR invoices.building_name LIKE ? OR "+
				"invoices.serial_number LIKE ?",
			like, like, like, like, like, like, like, like)
	}

	if startDate := c.Query("start_date"); startDate != "" {
		if parsed, err := time.Parse("2006-01-02", startDate); err == nil {
			query = query.Where("invoices.issue_date >= ?", parsed)
		}
	}
	if endDate := c.Query("end_date"); endDate != "" {
		if parsed, err := time.Parse("2006-01-02", endDate); err == nil {
			// Inclusive end of day
			query = query.Where("invoices.issue_date < ?", parsed.AddDate(0, 0, 1))
		}
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("invoices.status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	var invoices []database.Invoice
	if err := query.Scopes(Paginate(c)).Preload("Tenant").
		Order("invoices.created_at DESC").Find(&invoices).Error; err != nil {
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(c, invoices, total))
}

// GetInvoiceByID returns one invoice under the caller's visibility scope
func GetInvoiceByID(c *gin.Context) {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid invoice ID"})
		return
	}

	var invoice database.Invoice
	if err := invoiceScope(principal).Where("invoices.id = ?", invoiceID).
		Preload("Tenant").First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
			return
		}
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, invoice)
}

// UpdateInvoice edits an invoice's fees and details (Admin only). Totals
// are recomputed; the serial number is immutable.
func UpdateInvoice(c *gin.Context) {
	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid invoice ID"})
		return
	}

	var request InvoiceRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var invoice database.Invoice
	if err := database.DB.Where("id = ?", invoiceID).First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
			return
		}
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	var tenant database.Tenant
	if err := database.DB.Where("id = ?", request.TenantID).First(&tenant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tenant not found"})
			return
		}
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	totals, err := billing.Calculate(request.FeeSchedule)
	if err != nil {
		writeBillingError(c, err)
		return
	}

	if request.Date != "" {
		parsed, err := time.Parse("2006-01-02", request.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"date": "Enter a valid date (YYYY-MM-DD)."}})
			return
		}
		invoice.IssueDate = parsed
	}

	invoice.TenantID = tenant.ID
	invoice.RentMonth = request.RentMonth
	invoice.HouseNumber = request.HouseNumber
	invoice.FlatNumber = request.FlatNumber
	invoice.RoomNo = request.RoomNo
	invoice.BuildingName = request.BuildingName
	invoice.Signature = request.Signature
	invoice.BankDetails = request.BankDetails

	invoice.RentAmount = request.RentAmount
	invoice.ParkingFee = request.ParkingFee
	invoice.ElectricityFee = request.ElectricityFee
	invoice.SecurityFee = request.SecurityFee
	invoice.DrinkingWaterFee = request.DrinkingWaterFee
	invoice.GeneratorPowerBackupFee = request.GeneratorPowerBackupFee
	invoice.NormalWaterFee = request.NormalWaterFee
	invoice.InternetTelephoneTVFee = request.InternetTelephoneTVFee
	invoice.WasteFee = request.WasteFee
	invoice.OtherFee = request.OtherFee
	invoice.Discount = request.Discount
	invoice.Tax = request.Tax
	invoice.PreviousDue = request.PreviousDue
	invoice.TotalAmount = totals.TotalAmount
	invoice.GrandTotal = totals.GrandTotal

	if err := database.DB.Save(&invoice).Error; err != nil {
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update invoice"})
		return
	}

	c.JSON(http.StatusOK, invoice)
}

// UpdateInvoiceStatus updates an invoice status. Allowed for admins and
// for the user owning the invoice's tenant. An invalid target status is
// rejected with no state change.
func UpdateInvoiceStatus(c *gin.Context) {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid invoice ID"})
		return
	}

	var request UpdateInvoiceStatusRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !billing.ValidInvoiceStatus(request.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"status": "Invalid status value"}})
		return
	}

	var invoice database.Invoice
	if err := database.DB.Preload("Tenant").Where("id = ?", invoiceID).
		First(&invoice).Error; err != nil {
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

	if err := database.DB.Model(&invoice).Update("status", request.Status).Error; err != nil {
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Status updated successfully", "status": request.Status})
}

// DeleteInvoice removes an invoice. Allowed for admins and for the user
// owning the invoice's tenant.
func DeleteInvoice(c *gin.Context) {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid invoice ID"})
		return
	}

	var invoice database.Invoice
	if err := database.DB.Preload("Tenant").Where("id = ?", invoiceID).
		First(&invoice).Error; err != nil {
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

	if err := database.DB.Delete(&invoice).Error; err != nil {
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete invoice"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Invoice deleted successfully"})
}
