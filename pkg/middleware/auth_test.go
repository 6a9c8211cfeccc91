package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/TharakaGamage830/OmniDash/pkg/config"
	"github.com/TharakaGamage830/OmniDash/pkg/database"
	"github.com/TharakaGamage830/OmniDash/pkg/metrics"
	"github.com/TharakaGamage830/OmniDash/pkg/utils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	config.AppConfig = &config.Config{
		JWTSecret:     "test-secret",
		JWTExpiresIn:  "30d",
		MetricsPrefix: "test_middleware",
	}
	metrics.InitMetrics()
	os.Exit(m.Run())
}

func setupMockDB(t *testing.T) (sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		NamingStrategy: database.QuotedNamingStrategy{NamingStrategy: schema.NamingStrategy{}},
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	previous := database.DB
	database.DB = gormDB

	return mock, func() {
		database.DB = previous
		db.Close()
	}
}

func adminRow(id int, email string, isSuperAdmin bool) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "fullName", "email", "password", "isSuperAdmin"}).
		AddRow(id, "Test Admin", email, "hash", isSuperAdmin)
}

func protectedRouter(extra ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	handlers := append([]gin.HandlerFunc{Protect()}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		admin, _ := AdminFromContext(c)
		c.JSON(http.StatusOK, gin.H{"email": admin.Email})
	})
	router.GET("/protected", handlers...)
	return router
}

func TestProtectRejectsMissingToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	protectedRouter().ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "no token")
}

func TestProtectRejectsMalformedToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w := httptest.NewRecorder()
	protectedRouter().ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "token failed")
}

func TestProtectLoadsAdmin(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	token, err := utils.GenerateToken(1, "admin@anutouch.com")
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT (.+) FROM "Admin" WHERE "Admin"."id" = \$1`).
		WillReturnRows(adminRow(1, "admin@anutouch.com", false))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	protectedRouter().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "admin@anutouch.com")
}

func TestProtectRejectsDeletedAdmin(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	token, err := utils.GenerateToken(7, "gone@anutouch.com")
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT (.+) FROM "Admin" WHERE "Admin"."id" = \$1`).
		WillReturnError(gorm.ErrRecordNotFound)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	protectedRouter().ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "admin not found")
}

func TestRequireSuperAdminForbidsRegularAdmin(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	token, err := utils.GenerateToken(1, "admin@anutouch.com")
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT (.+) FROM "Admin" WHERE "Admin"."id" = \$1`).
		WillReturnRows(adminRow(1, "admin@anutouch.com", false))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	protectedRouter(RequireSuperAdmin()).ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Super admin access required")
}

func TestRequireSuperAdminAllowsSuperAdmin(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	token, err := utils.GenerateToken(1, "root@anutouch.com")
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT (.+) FROM "Admin" WHERE "Admin"."id" = \$1`).
		WillReturnRows(adminRow(1, "root@anutouch.com", true))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	protectedRouter(RequireSuperAdmin()).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOptionalAuthPassesWithoutToken(t *testing.T) {
	router := gin.New()
	router.GET("/public", OptionalAuth(), func(c *gin.Context) {
		_, authenticated := AdminFromContext(c)
		c.JSON(http.StatusOK, gin.H{"authenticated": authenticated})
	})

	req := httptest.NewRequest(http.MethodGet, "/public", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":false`)
}

func TestOptionalAuthIgnoresBadToken(t *testing.T) {
	router := gin.New()
	router.GET("/public", OptionalAuth(), func(c *gin.Context) {
		_, authenticated := AdminFromContext(c)
		c.JSON(http.StatusOK, gin.H{"authenticated": authenticated})
	})

	req := httptest.NewRequest(http.MethodGet, "/public", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":false`)
}

