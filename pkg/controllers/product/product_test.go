package product

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/TharakaGamage830/OmniDash/pkg/config"
	"github.com/TharakaGamage830/OmniDash/pkg/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGetProductsFiltersHiddenWithoutAuth(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	// includeHidden is requested but the caller carries no token, so the
	// visibility filter must still apply.
	mock.ExpectQuery(`SELECT (.+) FROM "Product" WHERE "showProduct" = \$1 ORDER BY "createdAt" DESC`).
		WillReturnRows(productRows(1, "Pearl Drop", 50, 10, true))

	req := httptest.NewRequest(http.MethodGet, "/api/products?includeHidden=true", nil)
	w := httptest.NewRecorder()
	newTestRouter().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var products []models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	require.Len(t, products, 1)
	assert.Equal(t, "Pearl Drop", products[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetProductsCategoryAndPriceSort(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "Product" WHERE "showProduct" = \$1 AND "category" = \$2 ORDER BY "price" ASC`).
		WillReturnRows(productRows(1, "Pearl Drop", 50, 10, true))

	req := httptest.NewRequest(http.MethodGet, "/api/products?category=Earrings&sort=price_low", nil)
	w := httptest.NewRecorder()
	newTestRouter().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestToggleVisibilityRoundTrips(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	router := newTestRouter()

	toggle := func(rows *sqlmock.Rows) models.Product {
		mock.ExpectQuery(`SELECT (.+) FROM "Product" WHERE "Product"."id" = \$1`).
			WillReturnRows(rows)
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "Product" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		req := httptest.NewRequest(http.MethodPatch, "/api/products/admin/toggle-visibility/1", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var product models.Product
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &product))
		return product
	}

	hidden := toggle(productRows(1, "Pearl Drop", 50, 10, true))
	assert.False(t, hidden.Visibility.ShowProduct)

	// A second toggle from the now-hidden state restores the original value.
	restored := toggle(productRows(1, "Pearl Drop", 50, 10, false))
	assert.True(t, restored.Visibility.ShowProduct)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateProductKeepsCode(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "Product" WHERE "Product"."id" = \$1`).
		WillReturnRows(productRows(1, "Pearl Drop", 50, 10, true))
	mock.ExpectQuery(`SELECT (.+) FROM "Category" WHERE "name" = \$1`).
		WillReturnError(gorm.ErrRecordNotFound)
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "Product" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)
	form.WriteField("name", "Silver Pendant")
	form.WriteField("category", "Necklaces")
	form.Close()

	req := httptest.NewRequest(http.MethodPut, "/api/products/admin/update/1", body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	w := httptest.NewRecorder()
	newTestRouter().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var product models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &product))
	assert.Equal(t, "Silver Pendant", product.Name)
	assert.Equal(t, "EAR-PEA-0001", product.ProductCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func productRowsWithImage(imageURL string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "description", "price", "category", "productCode", "images",
		"stockTotalQty", "stockLowStockThreshold", "stockStatus",
		"showProduct", "showPrice", "showStockStatus", "clicksTotal",
	}).AddRow(
		1, "Pearl Drop", "test description", 1500.0, "Earrings", "EAR-PEA-0001",
		"{"+imageURL+"}", 50, 10, "IN_STOCK", true, true, true, 0,
	)
}

func useLocalUploads(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	previousDir := config.AppConfig.UploadDir
	previousBase := config.AppConfig.BaseURL
	config.AppConfig.UploadDir = dir
	config.AppConfig.BaseURL = "http://localhost:5000"
	t.Cleanup(func() {
		config.AppConfig.UploadDir = previousDir
		config.AppConfig.BaseURL = previousBase
	})
	return dir
}

func TestUpdateProductReplacingImagesDeletesOld(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	dir := useLocalUploads(t)
	oldPath := filepath.Join(dir, "old.jpg")
	require.NoError(t, os.WriteFile(oldPath, []byte("old"), 0o644))

	mock.ExpectQuery(`SELECT (.+) FROM "Product" WHERE "Product"."id" = \$1`).
		WillReturnRows(productRowsWithImage("http://localhost:5000/uploads/old.jpg"))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "Product" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)
	part, err := form.CreateFormFile("images", "new.jpg")
	require.NoError(t, err)
	part.Write([]byte("new"))
	form.Close()

	req := httptest.NewRequest(http.MethodPut, "/api/products/admin/update/1", body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	w := httptest.NewRecorder()
	newTestRouter().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var product models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &product))
	require.Len(t, product.Images, 1)
	assert.Contains(t, product.Images[0], "/uploads/")
	assert.NotContains(t, product.Images[0], "old.jpg")

	_, statErr := os.Stat(oldPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestDeleteProductRemovesStoredImages(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	dir := useLocalUploads(t)
	imgPath := filepath.Join(dir, "old.jpg")
	require.NoError(t, os.WriteFile(imgPath, []byte("old"), 0o644))

	mock.ExpectQuery(`SELECT (.+) FROM "Product" WHERE "Product"."id" = \$1`).
		WillReturnRows(productRowsWithImage("http://localhost:5000/uploads/old.jpg"))
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "Product"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	req := httptest.NewRequest(http.MethodDelete, "/api/products/admin/delete/1", nil)
	w := httptest.NewRecorder()
	newTestRouter().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())

	_, statErr := os.Stat(imgPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestDeleteProductNotFound(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "Product" WHERE "Product"."id" = \$1`).
		WillReturnError(gorm.ErrRecordNotFound)

	req := httptest.NewRequest(http.MethodDelete, "/api/products/admin/delete/99", nil)
	w := httptest.NewRecorder()
	newTestRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateProductAssignsCode(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	categoryRow := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{"id", "name", "prefix"}).
			AddRow(1, "Earrings", "EAR")
	}

	// Category resolved by name before the insert, then again by id inside the
	// create hook.
	mock.ExpectQuery(`SELECT (.+) FROM "Category" WHERE "name" = \$1`).
		WillReturnRows(categoryRow())

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "Category" WHERE "Category"."id" = \$1`).
		WillReturnRows(categoryRow())
	mock.ExpectQuery(`SELECT (.+) FROM "Counter" (.+)FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"name", "value"}).AddRow("productCode", 0))
	mock.ExpectExec(`UPDATE "Counter" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "Product"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)
	form.WriteField("name", "Pearl Drop")
	form.WriteField("description", "Freshwater pearl drop earrings")
	form.WriteField("price", "2500")
	form.WriteField("category", "Earrings")
	form.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/products/admin/add", body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	w := httptest.NewRecorder()
	newTestRouter().ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var product models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &product))
	assert.Equal(t, "EAR-PEA-0001", product.ProductCode)
	assert.Equal(t, models.StockStatusOut, product.Stock.Status)
	assert.Equal(t, models.DefaultLowStockThreshold, product.Stock.LowStockThreshold)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateProductRejectsNegativePrice(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)
	form.WriteField("name", "Pearl Drop")
	form.WriteField("description", "Freshwater pearl drop earrings")
	form.WriteField("price", "-100")
	form.WriteField("category", "Earrings")
	form.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/products/admin/add", body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	w := httptest.NewRecorder()
	newTestRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTrackClick(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "Product" WHERE "Product"."id" = \$1`).
		WillReturnRows(productRows(1, "Pearl Drop", 50, 10, true))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "Product" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	w := postJSON(newTestRouter(), "/api/products/1/click", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
