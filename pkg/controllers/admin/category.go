package admin

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/TharakaGamage830/OmniDash/pkg/database"
	"github.com/TharakaGamage830/OmniDash/pkg/models"
	"github.com/TharakaGamage830/OmniDash/pkg/utils"

	"github.com/gin-gonic/gin"
)

var categoryPrefixPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// GetCategories lists the category registry. Public read.
func GetCategories(c *gin.Context) {
	var categories []models.Category
	if err := database.DB.Find(&categories).Error; err != nil {
		utils.InternalServerErrorResponse(c, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, categories)
}

// CreateCategory registers a category. The prefix is uppercased and must be
// exactly three letters since it seeds product codes.
func CreateCategory(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required"`
		Prefix      string `json:"prefix" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Name and prefix are required")
		return
	}

	prefix := strings.ToUpper(req.Prefix)
	if !categoryPrefixPattern.MatchString(prefix) {
		utils.BadRequestResponse(c, "Prefix must be exactly 3 letters")
		return
	}

	var existing models.Category
	if err := database.DB.Where(`"name" = ?`, req.Name).First(&existing).Error; err == nil {
		utils.BadRequestResponse(c, "Category already exists")
		return
	}

	category := models.Category{
		Name:        req.Name,
		Prefix:      prefix,
		Description: req.Description,
	}
	if err := database.DB.Create(&category).Error; err != nil {
		utils.BadRequestResponse(c, "Failed to create category")
		return
	}

	c.JSON(http.StatusCreated, category)
}

// DeleteCategory removes a category. Codes already generated from its prefix
// are unaffected.
func DeleteCategory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid category ID")
		return
	}

	result := database.DB.Delete(&models.Category{}, id)
	if result.Error != nil {
		utils.BadRequestResponse(c, "Failed to delete category")
		return
	}
	if result.RowsAffected == 0 {
		utils.NotFoundResponse(c, "Category not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}
