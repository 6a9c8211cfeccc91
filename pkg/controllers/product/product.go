package product

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/TharakaGamage830/OmniDash/pkg/database"
	"github.com/TharakaGamage830/OmniDash/pkg/metrics"
	"github.com/TharakaGamage830/OmniDash/pkg/middleware"
	"github.com/TharakaGamage830/OmniDash/pkg/models"
	"github.com/TharakaGamage830/OmniDash/pkg/services"
	"github.com/TharakaGamage830/OmniDash/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
)

// maxProductImages caps file attachments on add/update.
const maxProductImages = 5

// GetProducts returns the catalog with public filters and sorting. Hidden
// products are excluded unless an authenticated caller asks for them.
func GetProducts(c *gin.Context) {
	category := c.Query("category")
	search := c.Query("search")
	sortOrder := c.Query("sort")
	stockStatus := c.Query("stockStatus")
	includeHidden := c.Query("includeHidden") == "true"

	_, authenticated := middleware.AdminFromContext(c)

	query := database.DB.Model(&models.Product{})

	if !includeHidden || !authenticated {
		query = query.Where(`"showProduct" = ?`, true)
	}
	if category != "" {
		query = query.Where(`"category" = ?`, category)
	}
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where(`("name" ILIKE ? OR "description" ILIKE ?)`, pattern, pattern)
	}
	if stockStatus != "" {
		query = query.Where(`"stockStatus" = ?`, stockStatus)
	}

	switch sortOrder {
	case "price_low":
		query = query.Order(`"price" ASC`)
	case "price_high":
		query = query.Order(`"price" DESC`)
	case "popular":
		query = query.Order(`"clicksTotal" DESC`)
	default:
		query = query.Order(`"createdAt" DESC`)
	}

	defer metrics.TrackDBOperation("product_list")(time.Now())

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		utils.InternalServerErrorResponse(c, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, products)
}

// CreateProduct creates a catalog entry from a multipart form with optional
// image attachments. The product code and stock status are assigned on save.
func CreateProduct(c *gin.Context) {
	name := c.PostForm("name")
	description := c.PostForm("description")
	priceStr := c.PostForm("price")
	category := c.PostForm("category")

	if name == "" || description == "" || priceStr == "" || category == "" {
		utils.BadRequestResponse(c, "Provide all the fields")
		return
	}

	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil || price < 0 {
		utils.BadRequestResponse(c, "Price must be a non-negative number")
		return
	}

	totalQty, _ := strconv.Atoi(c.PostForm("totalQty"))
	if totalQty < 0 {
		totalQty = 0
	}
	threshold, _ := strconv.Atoi(c.PostForm("lowStockThreshold"))
	if threshold <= 0 {
		threshold = models.DefaultLowStockThreshold
	}

	images, err := collectImages(c)
	if err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	product := models.Product{
		Name:        name,
		Description: description,
		Price:       price,
		Category:    category,
		Images:      images,
		Stock: models.ProductStock{
			TotalQty:          totalQty,
			LowStockThreshold: threshold,
		},
		Visibility: models.ProductVisibility{
			ShowProduct:     parseBoolDefault(c.PostForm("showProduct"), true),
			ShowPrice:       parseBoolDefault(c.PostForm("showPrice"), true),
			ShowStockStatus: parseBoolDefault(c.PostForm("showStockStatus"), true),
		},
	}

	// Resolve the category to a stable identifier; code generation falls back
	// to the name match (then "GEN") when the registry has no entry.
	var cat models.Category
	if err := database.DB.Where(`"name" = ?`, category).First(&cat).Error; err == nil {
		product.CategoryID = &cat.ID
	}

	if err := database.DB.Create(&product).Error; err != nil {
		utils.BadRequestResponse(c, "Failed to create product")
		return
	}

	c.JSON(http.StatusCreated, product)
}

// UpdateProduct updates a product's mutable fields. The product code is never
// reassigned; uploaded files replace the managed image list.
func UpdateProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID")
		return
	}

	var product models.Product
	if err := database.DB.First(&product, id).Error; err != nil {
		utils.NotFoundResponse(c, "Product not found")
		return
	}

	if name := c.PostForm("name"); name != "" {
		product.Name = name
	}
	if description := c.PostForm("description"); description != "" {
		product.Description = description
	}
	if priceStr := c.PostForm("price"); priceStr != "" {
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || price < 0 {
			utils.BadRequestResponse(c, "Price must be a non-negative number")
			return
		}
		product.Price = price
	}
	if category := c.PostForm("category"); category != "" {
		product.Category = category
		product.CategoryID = nil
		var cat models.Category
		if err := database.DB.Where(`"name" = ?`, category).First(&cat).Error; err == nil {
			product.CategoryID = &cat.ID
		}
	}
	if thresholdStr := c.PostForm("lowStockThreshold"); thresholdStr != "" {
		if threshold, err := strconv.Atoi(thresholdStr); err == nil && threshold > 0 {
			product.Stock.LowStockThreshold = threshold
		}
	}
	if v := c.PostForm("showProduct"); v != "" {
		product.Visibility.ShowProduct = parseBoolDefault(v, product.Visibility.ShowProduct)
	}
	if v := c.PostForm("showPrice"); v != "" {
		product.Visibility.ShowPrice = parseBoolDefault(v, product.Visibility.ShowPrice)
	}
	if v := c.PostForm("showStockStatus"); v != "" {
		product.Visibility.ShowStockStatus = parseBoolDefault(v, product.Visibility.ShowStockStatus)
	}

	images, err := collectImages(c)
	if err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}
	var replaced []string
	if len(images) > 0 {
		replaced = product.Images
		product.Images = images
	}

	if err := database.DB.Save(&product).Error; err != nil {
		utils.BadRequestResponse(c, "Failed to update product")
		return
	}

	for _, url := range replaced {
		services.DeleteImage(url)
	}

	c.JSON(http.StatusOK, product)
}

// DeleteProduct deletes a product
func DeleteProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID")
		return
	}

	var product models.Product
	if err := database.DB.First(&product, id).Error; err != nil {
		utils.NotFoundResponse(c, "Product not found")
		return
	}

	if err := database.DB.Delete(&product).Error; err != nil {
		utils.BadRequestResponse(c, "Failed to delete product")
		return
	}

	for _, url := range product.Images {
		services.DeleteImage(url)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

// ToggleVisibility flips the storefront visibility flag. Every call flips; it
// does not set to a value.
func ToggleVisibility(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID")
		return
	}

	var product models.Product
	if err := database.DB.First(&product, id).Error; err != nil {
		utils.NotFoundResponse(c, "Product not found")
		return
	}

	product.Visibility.ShowProduct = !product.Visibility.ShowProduct
	if err := database.DB.Save(&product).Error; err != nil {
		utils.BadRequestResponse(c, "Failed to update product")
		return
	}

	c.JSON(http.StatusOK, product)
}

// TrackClick records a storefront "add to quotation" interaction.
func TrackClick(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID")
		return
	}

	var product models.Product
	if err := database.DB.First(&product, id).Error; err != nil {
		utils.NotFoundResponse(c, "Product not found")
		return
	}

	product.RecordClick(time.Now())
	if err := database.DB.Save(&product).Error; err != nil {
		utils.InternalServerErrorResponse(c, "Internal server error")
		return
	}

	metrics.ProductClicksCounter.Inc()

	c.JSON(http.StatusOK, gin.H{"message": "Click tracked"})
}

// collectImages uploads multipart "images" attachments through the storage
// service and returns their URLs.
func collectImages(c *gin.Context) (pq.StringArray, error) {
	form, err := c.MultipartForm()
	if err != nil {
		// Not a multipart request or no attachments
		return nil, nil
	}

	files := form.File["images"]
	if len(files) > maxProductImages {
		files = files[:maxProductImages]
	}

	var urls pq.StringArray
	for _, fileHeader := range files {
		file, err := fileHeader.Open()
		if err != nil {
			return nil, err
		}
		fileBytes, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return nil, err
		}

		url, err := services.SaveImage(fileBytes, fileHeader.Filename)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}

	return urls, nil
}

func parseBoolDefault(value string, fallback bool) bool {
	if parsed, err := strconv.ParseBool(value); err == nil {
		return parsed
	}
	return fallback
}
