package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentdesk/database"
)

func tenantRouter(user database.User) *gin.Engine {
	router := gin.New()
	router.Use(authAs(user))
	router.POST("/tenants", CreateTenant)
	router.GET("/tenants", ListTenants)
	router.GET("/tenants/:id", GetTenantByID)
	router.PUT("/tenants/:id", UpdateTenant)
	router.DELETE("/tenants/:id", DeleteTenant)
	return router
}

func tenantPayload(email string) gin.H {
	return gin.H{
		"name":        "Gopal Shrestha",
		"address":     "Baluwatar",
		"mobile":      "9800000020",
		"email":       email,
		"flat_number": "2B",
		"room_number": "5",
		"rent_amount": 15000,
	}
}

func TestCreateTenant(t *testing.T) {
	setupTest(t)
	owner := createTestUser(t, "owner@example.com", database.RoleUser, "9822222222")
	router := tenantRouter(owner)

	t.Run("Caller Becomes Owner", func(t *testing.T) {
		w := performRequest(router, "POST", "/tenants", tenantPayload("gopal@example.com"))
		require.Equal(t, http.StatusCreated, w.Code)

		var tenant database.Tenant
		require.NoError(t, database.DB.Where("email = ?", "gopal@example.com").First(&tenant).Error)
		assert.Equal(t, owner.ID, tenant.UserID)
		assert.True(t, tenant.RentAmount.Equal(decimal.NewFromInt(15000)))
	})

	t.Run("Duplicate Email Conflicts", func(t *testing.T) {
		w := performRequest(router, "POST", "/tenants", tenantPayload("gopal@example.com"))
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Non Positive Rent Rejected", func(t *testing.T) {
		payload := tenantPayload("zero@example.com")
		payload["rent_amount"] = 0

		w := performRequest(router, "POST", "/tenants", payload)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "rent_amount")
	})
}

func TestTenantVisibility(t *testing.T) {
	setupTest(t)

	admin := createTestUser(t, "admin@example.com", database.RoleAdmin, "9800000000")
	owner := createTestUser(t, "owner@example.com", database.RoleUser, "9822222222")
	stranger := createTestUser(t, "stranger@example.com", database.RoleUser, "9833333333")
	tenant := createTestTenant(t, owner, "tenant@example.com")

	t.Run("Owner Sees Own Tenant", func(t *testing.T) {
		w := performRequest(tenantRouter(owner), "GET", "/tenants/"+tenant.ID.String(), nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Foreign Tenant Reads As Not Found", func(t *testing.T) {
		w := performRequest(tenantRouter(stranger), "GET", "/tenants/"+tenant.ID.String(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Admin Sees All", func(t *testing.T) {
		w := performRequest(tenantRouter(admin), "GET", "/tenants/"+tenant.ID.String(), nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestListTenantsPagination(t *testing.T) {
	setupTest(t)
	owner := createTestUser(t, "owner@example.com", database.RoleUser, "9822222222")
	router := tenantRouter(owner)

	for i := 0; i < 7; i++ {
		createTestTenant(t, owner, fmt.Sprintf("tenant%d@example.com", i))
	}

	w := performRequest(router, "GET", "/tenants", nil)
	require.Equal(t, http.StatusOK, w.Code)
	// Default page size is 5, so 7 rows span 2 pages
	assert.Contains(t, w.Body.String(), `"total_rows":7`)
	assert.Contains(t, w.Body.String(), `"total_pages":2`)

	w = performRequest(router, "GET", "/tenants?page=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"current_page":2`)
}
