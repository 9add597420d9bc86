package models

import (
	"time"
)

// All money fields are integer minor-currency units (cents).

type Region struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"unique;not null"          json:"name"`
	DeliveryFee int64  `gorm:"not null"                 json:"delivery_fee"`
	MinOrder    int64  `gorm:"not null"                 json:"min_order"`
	IsActive    bool   `gorm:"not null;default:true"    json:"is_active"`
}

type ZipEntry struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Zip      string `gorm:"unique;not null"          json:"zip"`
	RegionID uint   `gorm:"index;not null"           json:"region_id"`
	IsActive bool   `gorm:"not null;default:true"    json:"is_active"`
}

type Category struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string `gorm:"unique;not null"          json:"name"`
	IsActive bool   `gorm:"not null;default:true"    json:"is_active"`
}

type Product struct {
	ID             uint    `gorm:"primaryKey;autoIncrement"            json:"id"`
	Name           string  `gorm:"not null"                            json:"name"`
	Description    string  `json:"description"`
	Price          int64   `gorm:"not null"                            json:"price"`
	CategoryID     uint    `gorm:"index;not null"                      json:"category_id"`
	InventoryCount int64   `gorm:"not null;check:inventory_count >= 0" json:"inventory_count"`
	IsActive       bool    `gorm:"not null;default:true"               json:"is_active"`
	Brand          string  `json:"brand"`
	StrainType     string  `json:"strain_type"`
	ThcPercent     float64 `json:"thc_percent"`
	CbdPercent     float64 `json:"cbd_percent"`
	WeightGrams    float64 `json:"weight_grams"`
	Effects        string  `json:"effects"`
	ImageURL       string  `json:"image_url"`
}

type Customer struct {
	ID            uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string `gorm:"not null"                 json:"name"`
	Phone         string `gorm:"unique;not null"          json:"phone"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	City          string `json:"city"`
	Zip           string `json:"zip"`
	TotalOrders   int64  `gorm:"not null;default:0"       json:"total_orders"`
	LifetimeValue int64  `gorm:"not null;default:0"       json:"lifetime_value"`
}

type Driver struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string `gorm:"not null"                 json:"name"`
	Phone    string `gorm:"not null"                 json:"phone"`
	IsActive bool   `gorm:"not null;default:true"    json:"is_active"`
}

type Order struct {
	ID            uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderNumber   string      `gorm:"unique;not null"          json:"order_number"`
	Status        OrderStatus `gorm:"not null"                 json:"status"`
	RegionID      uint        `gorm:"index;not null"           json:"region_id"`
	Subtotal      int64       `gorm:"not null"                 json:"subtotal"`
	DeliveryFee   int64       `gorm:"not null"                 json:"delivery_fee"`
	Total         int64       `gorm:"not null"                 json:"total"`
	PaymentMethod string      `gorm:"not null"                 json:"payment_method"`

	// Contact fields are a snapshot taken at order time, not a live
	// reference to the customer row.
	CustomerName  string `gorm:"not null"       json:"customer_name"`
	CustomerPhone string `gorm:"index;not null" json:"customer_phone"`
	CustomerEmail string `json:"customer_email"`
	Address       string `gorm:"not null"       json:"address"`
	City          string `json:"city"`
	Zip           string `gorm:"not null"       json:"zip"`
	Notes         string `json:"notes"`

	IsApproved bool       `gorm:"not null;default:false" json:"is_approved"`
	ApprovedBy string     `json:"approved_by"`
	ApprovedAt *time.Time `json:"approved_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type OrderItem struct {
	ID              uint   `gorm:"primaryKey;autoIncrement"    json:"id"`
	OrderID         uint   `gorm:"index;not null"              json:"order_id"`
	ProductID       uint   `gorm:"not null"                    json:"product_id"`
	ProductName     string `gorm:"not null"                    json:"product_name"`
	Quantity        int64  `gorm:"not null;check:quantity > 0" json:"quantity"`
	PriceAtPurchase int64  `gorm:"not null"                    json:"price_at_purchase"`
	LineTotal       int64  `gorm:"not null"                    json:"line_total"`
}

type OrderAssignment struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID    uint      `gorm:"unique;not null"          json:"order_id"`
	DriverID   uint      `gorm:"index;not null"           json:"driver_id"`
	AssignedBy string    `json:"assigned_by"`
	AssignedAt time.Time `json:"assigned_at"`
}

type Reward struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"unique;not null"          json:"name"`
	Description string `json:"description"`
	PointsCost  int64  `gorm:"not null"                 json:"points_cost"`
	IsActive    bool   `gorm:"not null;default:true"    json:"is_active"`
}
