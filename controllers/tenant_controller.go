package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"rentdesk/database"
)

// TenantRequest contains data for creating or updating a tenant
type TenantRequest struct {
	Name           string          `json:"name" binding:"required"`
	Address        string          `json:"address" binding:"required"`
	Mobile         string          `json:"mobile" binding:"required"`
	Email          string          `json:"email" binding:"required,email"`
	Profession     string          `json:"profession"`
	HouseName      string          `json:"house_name"`
	FlatNumber     string          `json:"flat_number" binding:"required"`
	RoomNumber     string          `json:"room_number" binding:"required"`
	RentAmount     decimal.Decimal `json:"rent_amount"`
	RentStartDate  string          `json:"rent_start_date"`
	PANOrVATNumber string          `json:"pan_or_vat_number"`
}

// tenantScope returns the tenant queryset visible to the principal:
// admins see every tenant, users only their own.
func tenantScope(p Principal) *gorm.DB {
	query := database.DB.Model(&database.Tenant{})
	if !p.IsAdmin() {
		query = query.Where("user_id = ?", p.ID)
	}
	return query
}

// ListTenants returns tenants visible to the caller with search and
// pagination
func ListTenants(c *gin.Context) {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	query := tenantScope(principal)

	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR email LIKE ? OR mobile LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	var tenants []database.Tenant
	if err := query.Scopes(Paginate(c)).Order("created_at DESC").Find(&tenants).Error; err != nil {
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(c, tenants, total))
}

// GetTenantByID returns one tenant under the caller's visibility scope
func GetTenantByID(c *gin.Context) {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	tenantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tenant ID"})
		return
	}

	var tenant database.Tenant
	if err := tenantScope(principal).Where("id = ?", tenantID).First(&tenant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tenant not found"})
			return
		}
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, tenant)
}

// CreateTenant adds a tenant owned by the caller
func CreateTenant(c *gin.Context) {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var request TenantRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !request.RentAmount.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"rent_amount": "rent amount must be greater than zero"}})
		return
	}

	tenant := database.Tenant{
		UserID:         principal.ID,
		Name:           request.Name,
		Address:        request.Address,
		Mobile:         request.Mobile,
		Email:          request.Email,
		Profession:     request.Profession,
		HouseName:      request.HouseName,
		FlatNumber:     request.FlatNumber,
		RoomNumber:     request.RoomNumber,
		RentAmount:     request.RentAmount,
		RentStartDate:  request.RentStartDate,
		PANOrVATNumber: request.PANOrVATNumber,
	}

	if err := database.DB.Create(&tenant).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "A tenant with this email already exists"})
			return
		}
		log.Printf("Tenant creation error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create tenant"})
		return
	}

	c.JSON(http.StatusCreated, tenant)
}

// UpdateTenant edits a tenant record (Admin only)
func UpdateTenant(c *gin.Context) {
	tenantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tenant ID"})
		return
	}

	var request TenantRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !request.RentAmount.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"rent_amount": "rent amount must be greater than zero"}})
		return
	}

	var tenant database.Tenant
	if err := database.DB.Where("id = ?", tenantID).First(&tenant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tenant not found"})
			return
		}
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	tenant.Name = request.Name
	tenant.Address = request.Address
	tenant.Mobile = request.Mobile
	tenant.Email = request.Email
	tenant.Profession = request.Profession
	tenant.HouseName = request.HouseName
	tenant.FlatNumber = request.FlatNumber
	tenant.RoomNumber = request.RoomNumber
	tenant.RentAmount = request.RentAmount
	tenant.RentStartDate = request.RentStartDate
	tenant.PANOrVATNumber = request.PANOrVATNumber

	if err := database.DB.Save(&tenant).Error; err != nil {
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update tenant"})
		return
	}

	c.JSON(http.StatusOK, tenant)
}

// DeleteTenant removes a tenant record (Admin only)
func DeleteTenant(c *gin.Context) {
	tenantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tenant ID"})
		return
	}

	result := database.DB.Delete(&database.Tenant{}, "id = ?", tenantID)
	if result.Error != nil {
		log.Printf("Database error: %v", result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete tenant"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tenant not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Tenant deleted successfully"})
}
