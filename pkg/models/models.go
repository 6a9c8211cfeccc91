package models

import (
	"time"
)

// Category model - named categories whose prefix seeds product-code generation
type Category struct {
	ID          uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Name        string    `gorm:"unique;not null;column:name" json:"name"`
	Prefix      string    `gorm:"not null;column:prefix" json:"prefix"`
	Description string    `gorm:"column:description" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime;column:createdAt" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime;column:updatedAt" json:"updatedAt"`
}

// TableName specifies the table name for Category model
func (Category) TableName() string {
	return "Category"
}

// Admin model - back-office users; all mutation endpoints require one
type Admin struct {
	ID             uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	FullName       string    `gorm:"not null;column:fullName" json:"fullName"`
	Email          string    `gorm:"unique;not null;column:email" json:"email"`
	Password       string    `gorm:"not null;column:password" json:"-"`
	WhatsappNumber string    `gorm:"column:whatsappNumber" json:"whatsappNumber"`
	ProfilePic     string    `gorm:"column:profilePic" json:"profilePic"`
	IsSuperAdmin   bool      `gorm:"default:false;column:isSuperAdmin" json:"isSuperAdmin"`
	CreatedAt      time.Time `gorm:"autoCreateTime;column:createdAt" json:"createdAt"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime;column:updatedAt" json:"updatedAt"`
}

// TableName specifies the table name for Admin model
func (Admin) TableName() string {
	return "Admin"
}

// StockMovement model - append-only ledger entry, never updated or deleted.
// Product code and name are denormalized at write time so the ledger stays
// readable after a product is removed.
type StockMovement struct {
	ID          uint         `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	ProductID   uint         `gorm:"not null;column:productId" json:"productId"`
	ProductCode string       `gorm:"not null;column:productCode" json:"productCode"`
	ProductName string       `gorm:"not null;column:productName" json:"productName"`
	Type        MovementType `gorm:"type:text;not null;column:type" json:"type"`
	Quantity    int          `gorm:"not null;column:quantity" json:"quantity"`
	PreviousQty int          `gorm:"not null;column:previousQty" json:"previousQty"`
	NewQty      int          `gorm:"not null;column:newQty" json:"newQty"`
	Reason      string       `gorm:"column:reason" json:"reason"`
	AdminID     *uint        `gorm:"column:adminId" json:"adminId"`
	CreatedAt   time.Time    `gorm:"autoCreateTime;column:createdAt" json:"createdAt"`
}

// TableName specifies the table name for StockMovement model
func (StockMovement) TableName() string {
	return "StockMovement"
}

// Order model - a passive quotation log, not a transactional order
type Order struct {
	ID              uint        `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	TotalAmount     float64     `gorm:"not null;column:totalAmount" json:"totalAmount"`
	WhatsappMessage string      `gorm:"column:whatsappMessage" json:"whatsappMessage"`
	Status          OrderStatus `gorm:"type:text;default:'QUOTATION';column:status" json:"status"`
	CreatedAt       time.Time   `gorm:"autoCreateTime;column:createdAt" json:"createdAt"`

	// Relationships
	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
}

// TableName specifies the table name for Order model
func (Order) TableName() string {
	return "Order"
}

// OrderItem model - denormalized snapshot of a quoted product
type OrderItem struct {
	ID          uint    `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	OrderID     uint    `gorm:"not null;column:orderId" json:"-"`
	ProductID   uint    `gorm:"not null;column:productId" json:"productId"`
	ProductCode string  `gorm:"column:productCode" json:"productCode"`
	Name        string  `gorm:"column:name" json:"name"`
	Price       float64 `gorm:"column:price" json:"price"`
	Quantity    int     `gorm:"default:1;column:quantity" json:"quantity"`
}

// TableName specifies the table name for OrderItem model
func (OrderItem) TableName() string {
	return "OrderItem"
}

// Counter model - dedicated sequence rows, incremented under a row lock inside
// the transaction that consumes the value
type Counter struct {
	Name  string `gorm:"primaryKey;column:name" json:"name"`
	Value int64  `gorm:"not null;default:0;column:value" json:"value"`
}

// TableName specifies the table name for Counter model
func (Counter) TableName() string {
	return "Counter"
}
