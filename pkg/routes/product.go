package routes

import (
	"github.com/TharakaGamage830/OmniDash/pkg/controllers/product"
	"github.com/TharakaGamage830/OmniDash/pkg/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterProductRoutes registers the public catalog and the protected
// product-management endpoints.
func RegisterProductRoutes(router *gin.RouterGroup) {
	products := router.Group("/products")
	{
		// Public routes
		products.GET("", middleware.OptionalAuth(), product.GetProducts)
		products.POST("/:id/click", product.TrackClick)

		// Admin protected routes
		adminGroup := products.Group("/admin", middleware.Protect())
		{
			adminGroup.POST("/add", product.CreateProduct)
			adminGroup.PUT("/update/:id", product.UpdateProduct)
			adminGroup.DELETE("/delete/:id", product.DeleteProduct)
			adminGroup.PATCH("/toggle-visibility/:id", product.ToggleVisibility)
			adminGroup.GET("/stock-history", product.GetStockHistory)
			adminGroup.POST("/grn", product.HandleGRN)
			adminGroup.POST("/return", product.HandleReturn)
		}
	}
}
