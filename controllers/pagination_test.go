package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"rentdesk/config"
)

func paramsFor(t *testing.T, url string) (page, pageSize int) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request, _ = http.NewRequest("GET", url, nil)
	return pageParams(c)
}

func TestPageParams(t *testing.T) {
	config.InitConfig()

	t.Run("Defaults", func(t *testing.T) {
		page, pageSize := paramsFor(t, "/tenants")
		assert.Equal(t, 1, page)
		assert.Equal(t, config.AppConfig.PageSize, pageSize)
	})

	t.Run("Explicit Values", func(t *testing.T) {
		page, pageSize := paramsFor(t, "/tenants?page=3&page_size=20")
		assert.Equal(t, 3, page)
		assert.Equal(t, 20, pageSize)
	})

	t.Run("Oversized Page Size Clamped", func(t *testing.T) {
		_, pageSize := paramsFor(t, "/tenants?page_size=9999")
		assert.Equal(t, maxPageSize, pageSize)
	})

	t.Run("Zero Configured Page Size Clamped", func(t *testing.T) {
		old := config.AppConfig.PageSize
		config.AppConfig.PageSize = 0
		defer func() { config.AppConfig.PageSize = old }()

		_, pageSize := paramsFor(t, "/tenants")
		assert.Equal(t, 1, pageSize)
	})
}
