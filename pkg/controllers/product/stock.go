package product

import (
	"net/http"
	"time"

	"github.com/TharakaGamage830/OmniDash/pkg/database"
	"github.com/TharakaGamage830/OmniDash/pkg/metrics"
	"github.com/TharakaGamage830/OmniDash/pkg/middleware"
	"github.com/TharakaGamage830/OmniDash/pkg/models"
	"github.com/TharakaGamage830/OmniDash/pkg/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// stockMutationRequest is the body for GRN and return operations.
type stockMutationRequest struct {
	ProductID uint   `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
	Reason    string `json:"reason"`
}

// HandleGRN records a goods-received note: quantity is added to stock and one
// ledger entry captures the before/after state. Product save and ledger append
// happen in a single transaction.
func HandleGRN(c *gin.Context) {
	applyStockMutation(c, models.MovementTypeGRN)
}

// HandleReturn records a customer return: quantity is subtracted from stock,
// clamped at zero. The ledger entry logs the clamped result.
func HandleReturn(c *gin.Context) {
	applyStockMutation(c, models.MovementTypeReturn)
}

func applyStockMutation(c *gin.Context, movementType models.MovementType) {
	var req stockMutationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Provide productId and quantity")
		return
	}
	if req.Quantity <= 0 {
		utils.BadRequestResponse(c, "Quantity must be greater than 0")
		return
	}

	var product models.Product
	if err := database.DB.First(&product, req.ProductID).Error; err != nil {
		utils.NotFoundResponse(c, "Product not found")
		return
	}

	previousQty := product.Stock.TotalQty

	reason := req.Reason
	switch movementType {
	case models.MovementTypeGRN:
		product.Stock.TotalQty = previousQty + req.Quantity
		if reason == "" {
			reason = "Restock"
		}
	case models.MovementTypeReturn:
		product.Stock.TotalQty = previousQty - req.Quantity
		if product.Stock.TotalQty < 0 {
			product.Stock.TotalQty = 0
		}
		if reason == "" {
			reason = "Customer Return"
		}
	}

	var adminID *uint
	if admin, ok := middleware.AdminFromContext(c); ok {
		adminID = &admin.ID
	}

	defer metrics.TrackDBOperation("stock_mutation")(time.Now())

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&product).Error; err != nil {
			return err
		}

		movement := models.StockMovement{
			ProductID:   product.ID,
			ProductCode: product.ProductCode,
			ProductName: product.Name,
			Type:        movementType,
			Quantity:    req.Quantity,
			PreviousQty: previousQty,
			NewQty:      product.Stock.TotalQty,
			Reason:      reason,
			AdminID:     adminID,
		}
		return tx.Create(&movement).Error
	})
	if err != nil {
		utils.BadRequestResponse(c, "Failed to update stock")
		return
	}

	metrics.RecordStockMovement(string(movementType))

	c.JSON(http.StatusOK, product)
}

// GetStockHistory returns the latest 100 ledger entries, newest first.
func GetStockHistory(c *gin.Context) {
	var movements []models.StockMovement
	if err := database.DB.
		Order(`"createdAt" DESC`).
		Limit(100).
		Find(&movements).Error; err != nil {
		utils.InternalServerErrorResponse(c, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, movements)
}
