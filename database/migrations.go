package database

import (
	"log"

	"rentdesk/config"
	"rentdesk/utils"
)

// RunMigrations runs all database migrations
func RunMigrations() error {
	log.Println("Running database migrations...")

	// AutoMigrate will create tables if they don't exist
	if err := DB.AutoMigrate(
		&User{},
		&Tenant{},
		&Invoice{},
		&Feedback{},
		&Payment{},
		&Notification{},
		&PasswordResetOTP{},
	); err != nil {
		log.Printf("Migration failed: %v", err)
		return err
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultAdmin creates a default admin if none exists
func SeedDefaultAdmin() {
	var count int64
	if err := DB.Model(&User{}).Where("role = ?", RoleAdmin).Count(&count).Error; err != nil {
		log.Printf("Failed to check existing admin: %v", err)
		return
	}

	if count > 0 {
		log.Println("Admin user already exists.")
		return
	}

	passwordHash, err := utils.HashPassword(config.AppConfig.AdminPassword)
	if err != nil {
		log.Printf("Failed to hash default admin password: %v", err)
		return
	}

	admin := User{
		Email:        config.AppConfig.AdminEmail,
		PasswordHash: passwordHash,
		FullName:     "System Admin",
		FullAddress:  "Head Office",
		Mobile:       "9999999999",
		Role:         RoleAdmin,
		IsActive:     true,
	}

	if err := DB.Create(&admin).Error; err != nil {
		log.Printf("Failed to create admin: %v", err)
	} else {
		log.Println("Default admin user created successfully.")
	}
}
