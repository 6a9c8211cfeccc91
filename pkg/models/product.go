package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	// DefaultLowStockThreshold applies when a product is created without one.
	DefaultLowStockThreshold = 10

	// FallbackCategoryPrefix is used when the product's category has no registry entry.
	FallbackCategoryPrefix = "GEN"

	// CounterProductCode names the sequence row backing product-code generation.
	CounterProductCode = "productCode"

	// MaxDailyClickDays bounds the per-day click buckets kept on a product.
	MaxDailyClickDays = 7

	clickDateLayout = "2006-01-02"
)

// DailyClickStat is one calendar-day click bucket.
type DailyClickStat struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int    `json:"count"`
}

// DailyClickStats is stored as a JSONB array, oldest entry first.
type DailyClickStats []DailyClickStat

// Value implements driver.Valuer for JSONB storage
func (s DailyClickStats) Value() (driver.Value, error) {
	if s == nil {
		s = DailyClickStats{}
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner for JSONB storage
func (s *DailyClickStats) Scan(value interface{}) error {
	if value == nil {
		*s = DailyClickStats{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("unsupported type for DailyClickStats")
	}
	return json.Unmarshal(data, s)
}

// ProductStock carries the quantity bookkeeping and its derived status.
type ProductStock struct {
	TotalQty          int         `gorm:"default:0;column:stockTotalQty" json:"totalQty"`
	LowStockThreshold int         `gorm:"default:10;column:stockLowStockThreshold" json:"lowStockThreshold"`
	Status            StockStatus `gorm:"type:text;default:'OUT_OF_STOCK';column:stockStatus" json:"status"`
}

// ProductVisibility controls what the storefront shows.
type ProductVisibility struct {
	ShowProduct     bool `gorm:"default:true;column:showProduct" json:"showProduct"`
	ShowPrice       bool `gorm:"default:true;column:showPrice" json:"showPrice"`
	ShowStockStatus bool `gorm:"default:true;column:showStockStatus" json:"showStockStatus"`
}

// ProductClicks tracks storefront interest. DailyStats holds at most the last
// seven distinct days.
type ProductClicks struct {
	Total      int             `gorm:"default:0;column:clicksTotal" json:"total"`
	DailyStats DailyClickStats `gorm:"type:jsonb;column:clicksDailyStats" json:"dailyStats"`
}

// Product model - catalog entry owning its derived stock status and product code
type Product struct {
	ID          uint           `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Name        string         `gorm:"not null;column:name" json:"name"`
	Description string         `gorm:"not null;column:description" json:"description"`
	Price       float64        `gorm:"not null;column:price" json:"price"`
	Category    string         `gorm:"not null;column:category" json:"category"`
	CategoryID  *uint          `gorm:"column:categoryId" json:"categoryId"`
	Images      pq.StringArray `gorm:"type:text[];column:images" json:"images"`
	ProductCode string         `gorm:"unique;column:productCode" json:"productCode"`

	Stock      ProductStock      `gorm:"embedded" json:"stock"`
	Visibility ProductVisibility `gorm:"embedded" json:"visibility"`
	Clicks     ProductClicks     `gorm:"embedded" json:"clicks"`

	CreatedAt time.Time `gorm:"autoCreateTime;column:createdAt" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;column:updatedAt" json:"updatedAt"`
}

// TableName specifies the table name for Product model
func (Product) TableName() string {
	return "Product"
}

// DeriveStockStatus maps a quantity and threshold to a stock status. Total over
// its inputs; recomputed on every save.
func DeriveStockStatus(totalQty, threshold int) StockStatus {
	switch {
	case totalQty == 0:
		return StockStatusOut
	case totalQty <= threshold:
		return StockStatusLow
	default:
		return StockStatusIn
	}
}

// NamePrefix returns the leading letters of a product name for its code:
// up to three characters, uppercased. Empty names fall back to "PRO".
func NamePrefix(name string) string {
	if name == "" {
		name = "PRO"
	}
	runes := []rune(name)
	if len(runes) > 3 {
		runes = runes[:3]
	}
	return strings.ToUpper(string(runes))
}

// FormatProductCode builds "{categoryPrefix}-{namePrefix}-{zero-padded seq}".
func FormatProductCode(categoryPrefix, name string, seq int64) string {
	return fmt.Sprintf("%s-%s-%04d", categoryPrefix, NamePrefix(name), seq)
}

// ApplyDailyClick increments today's bucket, creating it if needed, and evicts
// the oldest bucket once more than MaxDailyClickDays are held.
func ApplyDailyClick(stats DailyClickStats, day string) DailyClickStats {
	for i := range stats {
		if stats[i].Date == day {
			stats[i].Count++
			return stats
		}
	}
	stats = append(stats, DailyClickStat{Date: day, Count: 1})
	if len(stats) > MaxDailyClickDays {
		stats = stats[len(stats)-MaxDailyClickDays:]
	}
	return stats
}

// RecordClick bumps the lifetime counter and today's bucket on the struct.
// The caller persists the product afterwards.
func (p *Product) RecordClick(now time.Time) {
	p.Clicks.Total++
	p.Clicks.DailyStats = ApplyDailyClick(p.Clicks.DailyStats, now.Format(clickDateLayout))
}

// BeforeSave recomputes the derived stock status on every persist.
func (p *Product) BeforeSave(tx *gorm.DB) error {
	if p.Stock.LowStockThreshold <= 0 {
		p.Stock.LowStockThreshold = DefaultLowStockThreshold
	}
	p.Stock.Status = DeriveStockStatus(p.Stock.TotalQty, p.Stock.LowStockThreshold)
	return nil
}

// BeforeCreate assigns the product code exactly once. The sequence comes from a
// dedicated counter row locked inside the insert transaction, so concurrent
// creates cannot observe the same value.
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ProductCode != "" {
		return nil
	}

	prefix := FallbackCategoryPrefix
	var cat Category
	var err error
	if p.CategoryID != nil {
		err = tx.First(&cat, *p.CategoryID).Error
	} else {
		err = tx.Where(`"name" = ?`, p.Category).First(&cat).Error
	}
	if err == nil {
		prefix = cat.Prefix
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	seq, err := NextCounterValue(tx, CounterProductCode)
	if err != nil {
		return err
	}

	p.ProductCode = FormatProductCode(prefix, p.Name, seq)
	return nil
}

// NextCounterValue increments and returns the named sequence under a row lock.
func NextCounterValue(tx *gorm.DB, name string) (int64, error) {
	ctr := Counter{Name: name}
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).FirstOrCreate(&ctr).Error; err != nil {
		return 0, err
	}
	ctr.Value++
	if err := tx.Model(&Counter{}).Where(`"name" = ?`, name).Update("value", ctr.Value).Error; err != nil {
		return 0, err
	}
	return ctr.Value, nil
}
