package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"rentdesk/database"
	"rentdesk/utils"
)

// UpdateProfileRequest contains profile fields a user may change
type UpdateProfileRequest struct {
	FullName    string `json:"full_name"`
	FullAddress string `json:"full_address"`
	Mobile      string `json:"mobile"`
}

// ChangePasswordRequest contains data for a password change
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// GetProfile returns the authenticated user's profile
func GetProfile(c *gin.Context) {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var user database.User
	if err := database.DB.First(&user, "id = ?", principal.ID).Error; err != nil {
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateProfile updates the authenticated user's profile
func UpdateProfile(c *gin.Context) {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var request UpdateProfileRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if request.Mobile != "" && !mobilePattern.MatchString(request.Mobile) {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"mobile": "Enter a valid 10-digit mobile number."}})
		return
	}

	updates := map[string]interface{}{}
	if request.FullName != "" {
		updates["full_name"] = request.FullName
	}
	if request.FullAddress != "" {
		updates["full_address"] = request.FullAddress
	}
	if request.Mobile != "" {
		updates["mobile"] = request.Mobile
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&database.User{}).Where("id = ?", principal.ID).
			Updates(updates).Error; err != nil {
			log.Printf("Database error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
			return
		}
	}

	var user database.User
	if err := database.DB.First(&user, "id = ?", principal.ID).Error; err != nil {
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// ChangePassword changes the authenticated user's password
func ChangePassword(c *gin.Context) {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var request ChangePasswordRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user database.User
	if err := database.DB.First(&user, "id = ?", principal.ID).Error; err != nil {
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	if !utils.CheckPasswordHash(request.CurrentPassword, user.PasswordHash) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Current password is incorrect"})
		return
	}

	newPasswordHash, err := utils.HashPassword(request.NewPassword)
	if err != nil {
		log.Printf("Password hashing error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process password"})
		return
	}

	if err := database.DB.Model(&user).Update("password_hash", newPasswordHash).Error; err != nil {
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}

// ListUsers returns all users except the caller, with search and
// pagination (Admin only)
func ListUsers(c *gin.Context) {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	query := database.DB.Model(&database.User{}).Where("id <> ?", principal.ID)

	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("email LIKE ? OR full_name LIKE ? OR mobile LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	var users []database.User
	if err := query.Scopes(Paginate(c)).Order("created_at DESC").Find(&users).Error; err != nil {
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(c, users, total))
}

// AddUser creates a user account (Admin only)
func AddUser(c *gin.Context) {
	var request RegisterRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !mobilePattern.MatchString(request.Mobile) {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"mobile": "Enter a valid 10-digit mobile number."}})
		return
	}

	var existing database.User
	err := database.DB.Where("email = ?", request.Email).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "This email is already registered."})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	passwordHash, err := utils.HashPassword(request.Password)
	if err != nil {
		log.Printf("Password hashing error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process password"})
		return
	}

	user := database.User{
		Email:        request.Email,
		FullName:     request.FullName,
		FullAddress:  request.FullAddress,
		Mobile:       request.Mobile,
		PasswordHash: passwordHash,
		Role:         database.RoleUser,
		IsActive:     true,
	}

	if err := database.DB.Create(&user).Error; err != nil {
		log.Printf("User creation error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, user)
}

// UpdateUser updates a user account (Admin only)
func UpdateUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var request struct {
		FullName    string `json:"full_name"`
		FullAddress string `json:"full_address"`
		Mobile      string `json:"mobile"`
		Password    string `json:"password"`
		IsActive    *bool  `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user database.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	if request.FullName != "" {
		user.FullName = request.FullName
	}
	if request.FullAddress != "" {
		user.FullAddress = request.FullAddress
	}
	if request.Mobile != "" {
		if !mobilePattern.MatchString(request.Mobile) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"mobile": "Enter a valid 10-digit mobile number."}})
			return
		}
		user.Mobile = request.Mobile
	}
	if request.IsActive != nil {
		user.IsActive = *request.IsActive
	}
	if request.Password != "" {
		if len(request.Password) < 8 {
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"password": "Password must be at least 8 characters long."}})
			return
		}
		hash, err := utils.HashPassword(request.Password)
		if err != nil {
			log.Printf("Password hashing error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process password"})
			return
		}
		user.PasswordHash = hash
	}

	if err := database.DB.Save(&user).Error; err != nil {
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// DeleteUser removes a user account (Admin only). Admins cannot delete
// their own account.
func DeleteUser(c *gin.Context) {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	if userID == principal.ID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot delete your own account"})
		return
	}

	result := database.DB.Delete(&database.User{}, "id = ?", userID)
	if result.Error != nil {
		log.Printf("Database error: %v", result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
