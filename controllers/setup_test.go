package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"rentdesk/config"
	"rentdesk/database"
	"rentdesk/utils"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&database.User{},
		&database.Tenant{},
		&database.Invoice{},
		&database.Feedback{},
		&database.Payment{},
		&database.Notification{},
		&database.PasswordResetOTP{},
	)
	require.NoError(t, err)

	return db
}

func setupTest(t *testing.T) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	config.InitConfig()
	database.DB = setupTestDB(t)
}

func createTestUser(t *testing.T, email, role, mobile string) database.User {
	t.Helper()

	hash, err := utils.HashPassword("password123")
	require.NoError(t, err)

	user := database.User{
		Email:        email,
		PasswordHash: hash,
		FullName:     "Test User",
		FullAddress:  "Test Address",
		Mobile:       mobile,
		Role:         role,
		IsActive:     true,
	}
	require.NoError(t, database.DB.Create(&user).Error)
	return user
}

// authAs injects the context keys the auth middleware would set for user
func authAs(user database.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", user.ID)
		c.Set("email", user.Email)
		c.Set("role", user.Role)
		c.Next()
	}
}

func performRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}
