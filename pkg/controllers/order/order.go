package order

import (
	"net/http"

	"github.com/TharakaGamage830/OmniDash/pkg/database"
	"github.com/TharakaGamage830/OmniDash/pkg/metrics"
	"github.com/TharakaGamage830/OmniDash/pkg/models"
	"github.com/TharakaGamage830/OmniDash/pkg/utils"

	"github.com/gin-gonic/gin"
)

// CreateOrder logs a quotation submitted by a shopper. Item details are
// snapshotted from the catalog at write time; the total and WhatsApp message
// are computed server-side when not supplied.
func CreateOrder(c *gin.Context) {
	var req struct {
		Items []struct {
			ProductID uint `json:"productId" binding:"required"`
			Quantity  int  `json:"quantity"`
		} `json:"items" binding:"required"`
		WhatsappMessage string `json:"whatsappMessage"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Items) == 0 {
		utils.BadRequestResponse(c, "Provide at least one item")
		return
	}

	var items []models.OrderItem
	var total float64
	for _, reqItem := range req.Items {
		quantity := reqItem.Quantity
		if quantity <= 0 {
			quantity = 1
		}

		var product models.Product
		if err := database.DB.First(&product, reqItem.ProductID).Error; err != nil {
			utils.NotFoundResponse(c, "Product not found")
			return
		}

		items = append(items, models.OrderItem{
			ProductID:   product.ID,
			ProductCode: product.ProductCode,
			Name:        product.Name,
			Price:       product.Price,
			Quantity:    quantity,
		})
		total += product.Price * float64(quantity)
	}

	message := req.WhatsappMessage
	if message == "" {
		message = utils.FormatQuotationMessage(items, total)
	}

	order := models.Order{
		TotalAmount:     total,
		WhatsappMessage: message,
		Status:          models.OrderStatusQuotation,
		Items:           items,
	}
	if err := database.DB.Create(&order).Error; err != nil {
		utils.BadRequestResponse(c, "Failed to log quotation")
		return
	}

	metrics.QuotationsCounter.Inc()

	c.JSON(http.StatusCreated, order)
}

// GetOrders returns the quotation history, newest first. Admin only.
func GetOrders(c *gin.Context) {
	var orders []models.Order
	if err := database.DB.
		Preload("Items").
		Order(`"createdAt" DESC`).
		Find(&orders).Error; err != nil {
		utils.InternalServerErrorResponse(c, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, orders)
}
