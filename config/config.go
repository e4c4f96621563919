package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Database config
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPath     string // SQLite database file path

	// Auth config
	JWTSecret        string
	JWTExpiryHours   int
	OTPExpiryMinutes int

	// Seed admin account
	AdminEmail    string
	AdminPassword string

	// App config
	Environment string
	PageSize    int

	// Payment config
	RazorpayKey    string
	RazorpaySecret string
}

var AppConfig Config

// InitConfig initializes the application configuration
func InitConfig() {
	AppConfig = Config{
		DBDriver:         getEnv("DB_DRIVER", "postgres"),
		DBHost:           getEnv("DB_HOST", "localhost"),
		DBPort:           getEnv("DB_PORT", "5432"),
		DBUser:           getEnv("DB_USER", "postgres"),
		DBPassword:       getEnv("DB_PASSWORD", "postgres"),
		DBName:           getEnv("DB_NAME", "rentdesk"),
		DBPath:           getEnv("DB_PATH", "./rentdesk.db"),
		JWTSecret:        getEnv("JWT_SECRET", "rentdesk_default_secret_key"),
		JWTExpiryHours:   getEnvAsInt("JWT_EXPIRY_HOURS", 24),
		OTPExpiryMinutes: getEnvAsInt("OTP_EXPIRY_MINUTES", 60),
		AdminEmail:       getEnv("ADMIN_EMAIL", "admin@rentdesk.local"),
		AdminPassword:    getEnv("ADMIN_PASSWORD", "admin12345"),
		Environment:      getEnv("ENVIRONMENT", "development"),
		PageSize:         getEnvAsInt("PAGE_SIZE", 5),
		RazorpayKey:      getEnv("RAZORPAY_KEY", ""),
		RazorpaySecret:   getEnv("RAZORPAY_SECRET", ""),
	}
}

// Helper function to get environment variable with fallback
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// Helper function to get integer environment variable with fallback
func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

// GetJWTExpiration returns JWT expiration time
func GetJWTExpiration() time.Duration {
	return time.Duration(AppConfig.JWTExpiryHours) * time.Hour
}

// GetOTPExpiration returns the validity window of password reset OTPs
func GetOTPExpiration() time.Duration {
	return time.Duration(AppConfig.OTPExpiryMinutes) * time.Minute
}

// IsDevelopment returns true if the application is running in development mode
func IsDevelopment() bool {
	return AppConfig.Environment == "development"
}
