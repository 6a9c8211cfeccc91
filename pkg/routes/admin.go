package routes

import (
	"github.com/TharakaGamage830/OmniDash/pkg/controllers/admin"
	"github.com/TharakaGamage830/OmniDash/pkg/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterAdminRoutes registers login, profile, the admin directory and the
// category registry. Directory writes are gated behind the super-admin flag.
func RegisterAdminRoutes(router *gin.RouterGroup) {
	adminGroup := router.Group("/admin")
	{
		adminGroup.POST("/login", admin.Login)

		// Category registry - read is public, writes protected
		adminGroup.GET("/categories", admin.GetCategories)
		adminGroup.POST("/categories", middleware.Protect(), admin.CreateCategory)
		adminGroup.DELETE("/categories/:id", middleware.Protect(), admin.DeleteCategory)

		adminGroup.GET("/profile", middleware.Protect(), admin.GetProfile)
		adminGroup.PUT("/profile", middleware.Protect(), admin.UpdateProfile)
		adminGroup.GET("/list", middleware.Protect(), admin.ListAdmins)

		adminGroup.POST("/add", middleware.Protect(), middleware.RequireSuperAdmin(), admin.AddAdmin)
		adminGroup.DELETE("/:id", middleware.Protect(), middleware.RequireSuperAdmin(), admin.DeleteAdmin)
	}
}
