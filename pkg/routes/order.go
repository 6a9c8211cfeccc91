package routes

import (
	"github.com/TharakaGamage830/OmniDash/pkg/controllers/order"
	"github.com/TharakaGamage830/OmniDash/pkg/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterOrderRoutes registers the public quotation log and its admin history.
func RegisterOrderRoutes(router *gin.RouterGroup) {
	orders := router.Group("/orders")
	{
		orders.POST("", order.CreateOrder)
		orders.GET("/admin/history", middleware.Protect(), order.GetOrders)
	}
}
