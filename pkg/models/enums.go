package models

// StockStatus enum
type StockStatus string

const (
	StockStatusIn  StockStatus = "IN_STOCK"
	StockStatusLow StockStatus = "LOW_STOCK"
	StockStatusOut StockStatus = "OUT_OF_STOCK"
)

// MovementType enum
type MovementType string

const (
	MovementTypeGRN    MovementType = "GRN"
	MovementTypeReturn MovementType = "RETURN"
)

// OrderStatus enum
type OrderStatus string

const (
	// Quotations never transition; the status exists so the admin panel can
	// distinguish them if real order processing is ever added.
	OrderStatusQuotation OrderStatus = "QUOTATION"
)
