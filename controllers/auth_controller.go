package controllers

import (
	"errors"
	"log"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"rentdesk/config"
	"rentdesk/database"
	"rentdesk/utils"
)

// LoginRequest contains login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest contains data for user registration
type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	FullName    string `json:"full_name" binding:"required"`
	FullAddress string `json:"full_address" binding:"required"`
	Mobile      string `json:"mobile" binding:"required"`
	Password    string `json:"password" binding:"required,min=8"`
}

// LoginResponse is returned after successful authentication
type LoginResponse struct {
	Token  string        `json:"token"`
	User   database.User `json:"user"`
	Expiry int64         `json:"expiry"`
}

var mobilePattern = regexp.MustCompile(`^\d{10}$`)

// Register handles user registration
func Register(c *gin.Context) {
	var registerRequest RegisterRequest
	if err := c.ShouldBindJSON(&registerRequest); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !mobilePattern.MatchString(registerRequest.Mobile) {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"mobile": "Enter a valid 10-digit mobile number."}})
		return
	}

	// Check if email already exists
	var existingUser database.User
	err := database.DB.Where("email = ?", registerRequest.Email).First(&existingUser).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "This email is already registered."})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	passwordHash, err := utils.HashPassword(registerRequest.Password)
	if err != nil {
		log.Printf("Password hashing error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process password"})
		return
	}

	user := database.User{
		Email:        registerRequest.Email,
		FullName:     registerRequest.FullName,
		FullAddress:  registerRequest.FullAddress,
		Mobile:       registerRequest.Mobile,
		PasswordHash: passwordHash,
		Role:         database.RoleUser,
		IsActive:     true,
	}

	tx := database.DB.Begin()
	if tx.Error != nil {
		log.Printf("Transaction error: %v", tx.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	if err := tx.Create(&user).Error; err != nil {
		tx.Rollback()
		log.Printf("User creation error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	notification := database.Notification{
		UserID:  user.ID,
		Title:   "Welcome to RentDesk",
		Message: "Thank you for registering with RentDesk!",
		Type:    "welcome",
	}

	if err := tx.Create(&notification).Error; err != nil {
		tx.Rollback()
		log.Printf("Notification creation error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create welcome notification"})
		return
	}

	if err := tx.Commit().Error; err != nil {
		log.Printf("Transaction commit error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	expiryTime := time.Now().Add(config.GetJWTExpiration())
	token, err := utils.GenerateJWT(user.ID, user.Email, user.Role, expiryTime)
	if err != nil {
		log.Printf("JWT error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User created but failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, LoginResponse{
		Token:  token,
		User:   user,
		Expiry: expiryTime.Unix(),
	})
}

// Login handles user authentication and returns a JWT token
func Login(c *gin.Context) {
	var loginRequest LoginRequest
	if err := c.ShouldBindJSON(&loginRequest); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user database.User
	err := database.DB.Where("email = ?", loginRequest.Email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		} else {
			log.Printf("Database error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		}
		return
	}

	if !user.IsActive {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account is disabled"})
		return
	}

	if !utils.CheckPasswordHash(loginRequest.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	expiryTime := time.Now().Add(config.GetJWTExpiration())
	token, err := utils.GenerateJWT(user.ID, user.Email, user.Role, expiryTime)
	if err != nil {
		log.Printf("JWT error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token:  token,
		User:   user,
		Expiry: expiryTime.Unix(),
	})
}

// RefreshToken generates a new token for a logged in user
func RefreshToken(c *gin.Context) {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	expiryTime := time.Now().Add(config.GetJWTExpiration())
	token, err := utils.GenerateJWT(principal.ID, principal.Email, principal.Role, expiryTime)
	if err != nil {
		log.Printf("JWT error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":  token,
		"expiry": expiryTime.Unix(),
	})
}

// ForgotPassword issues a password reset OTP and hands it to the OTP
// sender. One OTP row is kept per user and refreshed on re-request.
func ForgotPassword(c *gin.Context) {
	var request struct {
		Email string `json:"email" binding:"required,email"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user database.User
	err := database.DB.Where("email = ?", request.Email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Don't reveal if the email exists or not
			c.JSON(http.StatusOK, gin.H{"message": "If your email is registered, you will receive an OTP"})
		} else {
			log.Printf("Database error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		}
		return
	}

	otp := utils.GenerateOTP()
	expiresAt := time.Now().Add(config.GetOTPExpiration())

	var otpRecord database.PasswordResetOTP
	err = database.DB.Where("user_id = ?", user.ID).First(&otpRecord).Error
	switch {
	case err == nil:
		otpRecord.OTP = otp
		otpRecord.ResetToken = ""
		otpRecord.ExpiresAt = expiresAt
		err = database.DB.Save(&otpRecord).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		otpRecord = database.PasswordResetOTP{
			UserID:    user.ID,
			OTP:       otp,
			ExpiresAt: expiresAt,
		}
		err = database.DB.Create(&otpRecord).Error
	}

	if err != nil {
		log.Printf("OTP record error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate OTP"})
		return
	}

	if err := utils.Sender.SendOTP(user.Email, otp); err != nil {
		log.Printf("OTP delivery error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send OTP"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "If your email is registered, you will receive an OTP"})
}

// VerifyOTP checks a submitted OTP and, when valid and unexpired, returns
// a reset token for the password reset call.
func VerifyOTP(c *gin.Context) {
	var request struct {
		Email string `json:"email" binding:"required,email"`
		OTP   string `json:"otp" binding:"required"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user database.User
	if err := database.DB.Where("email = ?", request.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired OTP"})
		return
	}

	var otpRecord database.PasswordResetOTP
	err := database.DB.Where("user_id = ?", user.ID).First(&otpRecord).Error
	if err != nil || otpRecord.OTP != request.OTP || time.Now().After(otpRecord.ExpiresAt) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired OTP"})
		return
	}

	resetToken := utils.GenerateResetToken()
	otpRecord.ResetToken = resetToken
	if err := database.DB.Save(&otpRecord).Error; err != nil {
		log.Printf("Reset token save error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reset_token": resetToken})
}

// ResetPassword consumes a reset token and sets the new password
func ResetPassword(c *gin.Context) {
	var request struct {
		ResetToken  string `json:"reset_token" binding:"required"`
		NewPassword string `json:"new_password" binding:"required,min=8"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var otpRecord database.PasswordResetOTP
	err := database.DB.Where("reset_token = ? AND reset_token <> '' AND expires_at > ?",
		request.ResetToken, time.Now()).First(&otpRecord).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired token"})
		} else {
			log.Printf("Database error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		}
		return
	}

	hashedPassword, err := utils.HashPassword(request.NewPassword)
	if err != nil {
		log.Printf("Password hashing error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process password"})
		return
	}

	tx := database.DB.Begin()
	if tx.Error != nil {
		log.Printf("Transaction error: %v", tx.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	if err := tx.Model(&database.User{}).Where("id = ?", otpRecord.UserID).
		Update("password_hash", hashedPassword).Error; err != nil {
		tx.Rollback()
		log.Printf("Password update error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
		return
	}

	if err := tx.Delete(&otpRecord).Error; err != nil {
		tx.Rollback()
		log.Printf("OTP deletion error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete password reset"})
		return
	}

	if err := tx.Commit().Error; err != nil {
		log.Printf("Transaction commit error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password has been reset successfully"})
}
