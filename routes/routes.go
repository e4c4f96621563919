package routes

import (
	"github.com/gin-gonic/gin"

	"rentdesk/controllers"
	"rentdesk/middleware"
)

// SetupRoutes configures all application routes
func SetupRoutes(r *gin.Engine) {
	// Public routes (no authentication required)
	public := r.Group("/api")
	{
		auth := public.Group("/auth")
		{
			auth.POST("/register", controllers.Register)
			auth.POST("/login", controllers.Login)
			auth.POST("/forgot-password", controllers.ForgotPassword)
			auth.POST("/verify-otp", controllers.VerifyOTP)
			auth.POST("/reset-password", controllers.ResetPassword)
		}

		// Feedback submission and lookup work for visitors too; a
		// token, when present, attaches the caller as creator.
		public.POST("/feedbacks", middleware.OptionalAuthMiddleware(), controllers.CreateFeedback)
		public.GET("/feedbacks/:id", middleware.OptionalAuthMiddleware(), controllers.GetFeedbackByID)
	}

	// Protected routes (authentication required)
	protected := r.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("/auth/refresh", controllers.RefreshToken)

		protected.GET("/profile", controllers.GetProfile)
		protected.PUT("/profile", controllers.UpdateProfile)
		protected.POST("/profile/change-password", controllers.ChangePassword)

		protected.GET("/dashboard", controllers.Dashboard)

		// Tenants
		tenants := protected.Group("/tenants")
		{
			tenants.POST("", controllers.CreateTenant)
			tenants.GET("", controllers.ListTenants)
			tenants.GET("/:id", controllers.GetTenantByID)
			tenants.PUT("/:id", middleware.AdminAuthMiddleware(), controllers.UpdateTenant)
			tenants.DELETE("/:id", middleware.AdminAuthMiddleware(), controllers.DeleteTenant)
		}

		// Invoices
		invoices := protected.Group("/invoices")
		{
			invoices.POST("", controllers.CreateInvoice)
			invoices.GET("", controllers.ListInvoices)
			invoices.GET("/:id", controllers.GetInvoiceByID)
			invoices.PUT("/:id", middleware.AdminAuthMiddleware(), controllers.UpdateInvoice)
			invoices.PATCH("/:id/status", controllers.UpdateInvoiceStatus)
			invoices.DELETE("/:id", controllers.DeleteInvoice)
		}

		// Feedbacks
		feedbacks := protected.Group("/feedbacks")
		{
			feedbacks.GET("", controllers.ListFeedbacks)
			feedbacks.PATCH("/:id/status", controllers.UpdateFeedbackStatus)
			feedbacks.POST("/:id/claim", controllers.ClaimFeedback)
			feedbacks.DELETE("/:id", middleware.AdminAuthMiddleware(), controllers.DeleteFeedback)
		}

		// Payments
		payments := protected.Group("/payments")
		{
			payments.POST("/generate-order", controllers.GeneratePaymentOrder)
			payments.POST("/verify", controllers.VerifyPayment)
			payments.GET("", controllers.GetPaymentHistory)
		}

		// Notifications
		notifications := protected.Group("/notifications")
		{
			notifications.GET("", controllers.GetNotifications)
			notifications.PATCH("/:id/read", controllers.MarkNotificationRead)
			notifications.PATCH("/read-all", controllers.MarkAllNotificationsRead)
		}

		// Admin routes
		admin := protected.Group("/admin")
		admin.Use(middleware.AdminAuthMiddleware())
		{
			admin.GET("/users", controllers.ListUsers)
			admin.POST("/users", controllers.AddUser)
			admin.PUT("/users/:id", controllers.UpdateUser)
			admin.DELETE("/users/:id", controllers.DeleteUser)
		}
	}
}
