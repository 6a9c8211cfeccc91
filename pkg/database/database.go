package database

import (
	"fmt"

	"github.com/TharakaGamage830/OmniDash/pkg/config"
	"github.com/TharakaGamage830/OmniDash/pkg/logger"
	"github.com/TharakaGamage830/OmniDash/pkg/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

var DB *gorm.DB

// QuotedNamingStrategy wraps the default naming strategy and quotes all identifiers.
// This keeps PostgreSQL case-sensitive for the camelCase column names used in the schema.
type QuotedNamingStrategy struct {
	schema.NamingStrategy
}

// ColumnName quotes column names for PostgreSQL case-sensitivity
func (q QuotedNamingStrategy) ColumnName(table, column string) string {
	return fmt.Sprintf("\"%s\"", q.NamingStrategy.ColumnName(table, column))
}

// TableName quotes table names
func (q QuotedNamingStrategy) TableName(table string) string {
	return fmt.Sprintf("\"%s\"", q.NamingStrategy.TableName(table))
}

// JoinTableName quotes join table names
func (q QuotedNamingStrategy) JoinTableName(joinTable string) string {
	return fmt.Sprintf("\"%s\"", q.NamingStrategy.JoinTableName(joinTable))
}

// InitDatabase initializes the database connection
func InitDatabase() error {
	var err error

	gormConfig := &gorm.Config{
		PrepareStmt: false,
		NamingStrategy: QuotedNamingStrategy{
			schema.NamingStrategy{
				SingularTable: false,
			},
		},
	}

	if config.IsDevelopment() {
		gormConfig.Logger = gormlogger.Default.LogMode(gormlogger.Info)
	} else {
		gormConfig.Logger = gormlogger.Default.LogMode(gormlogger.Error)
	}

	// Disable implicit prepared statements to avoid "prepared statement already exists"
	// errors behind connection poolers
	DB, err = gorm.Open(postgres.New(postgres.Config{
		DSN:                  config.AppConfig.DatabaseURL,
		PreferSimpleProtocol: true,
	}), gormConfig)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	logger.GetLogger().Info("database connection established")

	return nil
}

// AutoMigrate runs auto-migration for all models
func AutoMigrate() error {
	err := DB.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.StockMovement{},
		&models.Admin{},
		&models.Order{},
		&models.OrderItem{},
		&models.Counter{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	createIndexes()

	return nil
}

// createIndexes creates additional indexes not expressed by model tags
func createIndexes() {
	DB.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS "Product_productCode_key" ON "Product"("productCode")`)
	DB.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS "Category_name_key" ON "Category"("name")`)
	DB.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS "Admin_email_key" ON "Admin"("email")`)
	DB.Exec(`CREATE INDEX IF NOT EXISTS "StockMovement_createdAt_idx" ON "StockMovement"("createdAt")`)
	DB.Exec(`CREATE INDEX IF NOT EXISTS "Product_category_idx" ON "Product"("category")`)
	DB.Exec(`CREATE INDEX IF NOT EXISTS "Product_stockStatus_idx" ON "Product"("stockStatus")`)
}

// CloseDatabase closes the database connection
func CloseDatabase() {
	sqlDB, err := DB.DB()
	if err != nil {
		logger.GetLogger().Error("error getting database instance", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.GetLogger().Error("error closing database", zap.Error(err))
	}
}
