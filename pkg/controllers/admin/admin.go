package admin

import (
	"io"
	"net/http"
	"strconv"

	"github.com/TharakaGamage830/OmniDash/pkg/database"
	"github.com/TharakaGamage830/OmniDash/pkg/metrics"
	"github.com/TharakaGamage830/OmniDash/pkg/middleware"
	"github.com/TharakaGamage830/OmniDash/pkg/models"
	"github.com/TharakaGamage830/OmniDash/pkg/services"
	"github.com/TharakaGamage830/OmniDash/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Login authenticates an admin by email and issues a bearer token.
func Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Username and password are required")
		return
	}

	metrics.AuthAttemptsCounter.Inc()

	var admin models.Admin
	if err := database.DB.Where(`"email" = ?`, req.Username).First(&admin).Error; err != nil {
		metrics.AuthErrorsCounter.Inc()
		utils.UnauthorizedResponse(c, "Invalid email or password")
		return
	}

	if err := utils.ComparePassword(admin.Password, req.Password); err != nil {
		metrics.AuthErrorsCounter.Inc()
		utils.UnauthorizedResponse(c, "Invalid email or password")
		return
	}

	token, err := utils.GenerateToken(admin.ID, admin.Email)
	if err != nil {
		utils.InternalServerErrorResponse(c, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"admin": gin.H{
			"fullName":     admin.FullName,
			"email":        admin.Email,
			"profilePic":   admin.ProfilePic,
			"isSuperAdmin": admin.IsSuperAdmin,
		},
	})
}

// GetProfile returns the authenticated admin.
func GetProfile(c *gin.Context) {
	admin, _ := middleware.AdminFromContext(c)
	c.JSON(http.StatusOK, admin)
}

// UpdateProfile updates the authenticated admin's own record. Multipart form
// with an optional profilePic attachment.
func UpdateProfile(c *gin.Context) {
	current, _ := middleware.AdminFromContext(c)

	var admin models.Admin
	if err := database.DB.First(&admin, current.ID).Error; err != nil {
		utils.NotFoundResponse(c, "Admin not found")
		return
	}

	if fullName := c.PostForm("fullName"); fullName != "" {
		admin.FullName = fullName
	}
	if email := c.PostForm("email"); email != "" {
		admin.Email = email
	}
	if whatsappNumber := c.PostForm("whatsappNumber"); whatsappNumber != "" {
		admin.WhatsappNumber = whatsappNumber
	}
	if password := c.PostForm("password"); password != "" {
		if err := utils.CheckPasswordStrength(password); err != nil {
			utils.BadRequestResponse(c, err.Error())
			return
		}
		hashed, err := utils.HashPassword(password)
		if err != nil {
			utils.InternalServerErrorResponse(c, "Internal server error")
			return
		}
		admin.Password = hashed
	}

	previousPic := admin.ProfilePic
	if url, err := saveProfilePic(c); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	} else if url != "" {
		admin.ProfilePic = url
	}

	if err := database.DB.Save(&admin).Error; err != nil {
		utils.BadRequestResponse(c, "Failed to update profile")
		return
	}

	if previousPic != "" && admin.ProfilePic != previousPic {
		services.DeleteImage(previousPic)
	}

	c.JSON(http.StatusOK, gin.H{
		"id":             admin.ID,
		"fullName":       admin.FullName,
		"email":          admin.Email,
		"profilePic":     admin.ProfilePic,
		"whatsappNumber": admin.WhatsappNumber,
	})
}

// ListAdmins returns the admin directory. Passwords are never serialized.
func ListAdmins(c *gin.Context) {
	var admins []models.Admin
	if err := database.DB.Find(&admins).Error; err != nil {
		utils.InternalServerErrorResponse(c, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, admins)
}

// AddAdmin creates a back-office account. Super admin only.
func AddAdmin(c *gin.Context) {
	fullName := c.PostForm("fullName")
	email := c.PostForm("email")
	password := c.PostForm("password")
	whatsappNumber := c.PostForm("whatsappNumber")

	if fullName == "" || email == "" || password == "" {
		utils.BadRequestResponse(c, "Full name, email and password are required")
		return
	}
	if err := utils.CheckPasswordStrength(password); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	var existing models.Admin
	if err := database.DB.Where(`"email" = ?`, email).First(&existing).Error; err == nil {
		utils.BadRequestResponse(c, "Admin already exists")
		return
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		utils.InternalServerErrorResponse(c, "Internal server error")
		return
	}

	profilePic, err := saveProfilePic(c)
	if err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	admin := models.Admin{
		FullName:       fullName,
		Email:          email,
		Password:       hashed,
		WhatsappNumber: whatsappNumber,
		ProfilePic:     profilePic,
	}
	if err := database.DB.Create(&admin).Error; err != nil {
		utils.BadRequestResponse(c, "Failed to create admin")
		return
	}

	c.JSON(http.StatusCreated, admin)
}

// DeleteAdmin removes an account. Super admin only; self-deletion is rejected.
func DeleteAdmin(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid admin ID")
		return
	}

	current, _ := middleware.AdminFromContext(c)
	if current.ID == uint(id) {
		utils.BadRequestResponse(c, "Cannot delete yourself")
		return
	}

	result := database.DB.Delete(&models.Admin{}, id)
	if result.Error != nil {
		utils.BadRequestResponse(c, "Failed to delete admin")
		return
	}
	if result.RowsAffected == 0 {
		utils.NotFoundResponse(c, "Admin not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Admin deleted"})
}

// saveProfilePic uploads an optional "profilePic" attachment and returns its URL.
func saveProfilePic(c *gin.Context) (string, error) {
	file, header, err := c.Request.FormFile("profilePic")
	if err != nil {
		return "", nil
	}
	defer file.Close()

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}

	return services.SaveImage(fileBytes, header.Filename)
}
