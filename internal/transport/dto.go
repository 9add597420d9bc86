package transport

type CartLine struct {
	ProductID uint  `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

type PlaceOrderRequest struct {
	Name          string     `json:"name"`
	Phone         string     `json:"phone"`
	Email         string     `json:"email"`
	Address       string     `json:"address"`
	City          string     `json:"city"`
	Zip           string     `json:"zip"`
	Notes         string     `json:"notes"`
	PaymentMethod string     `json:"payment_method"`
	Items         []CartLine `json:"items"`
}

type PlaceOrderResponse struct {
	OrderNumber string `json:"order_number"`
	OrderID     uint   `json:"order_id"`
	Total       int64  `json:"total"`
	Message     string `json:"message"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type AssignDriverRequest struct {
	DriverID uint `json:"driver_id"`
}

type CreateProductRequest struct {
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	Price          int64   `json:"price"`
	CategoryID     uint    `json:"category_id"`
	InventoryCount int64   `json:"inventory_count"`
	Brand          string  `json:"brand"`
	StrainType     string  `json:"strain_type"`
	ThcPercent     float64 `json:"thc_percent"`
	CbdPercent     float64 `json:"cbd_percent"`
	WeightGrams    float64 `json:"weight_grams"`
	Effects        string  `json:"effects"`
}

type PatchProductRequest struct {
	Name           *string  `json:"name"`
	Description    *string  `json:"description"`
	Price          *int64   `json:"price"`
	CategoryID     *uint    `json:"category_id"`
	InventoryCount *int64   `json:"inventory_count"`
	IsActive       *bool    `json:"is_active"`
	Brand          *string  `json:"brand"`
	StrainType     *string  `json:"strain_type"`
	ThcPercent     *float64 `json:"thc_percent"`
	CbdPercent     *float64 `json:"cbd_percent"`
	WeightGrams    *float64 `json:"weight_grams"`
	Effects        *string  `json:"effects"`
}

type CreateRegionRequest struct {
	Name        string `json:"name"`
	DeliveryFee int64  `json:"delivery_fee"`
	MinOrder    int64  `json:"min_order"`
}

type PatchRegionRequest struct {
	Name        *string `json:"name"`
	DeliveryFee *int64  `json:"delivery_fee"`
	MinOrder    *int64  `json:"min_order"`
	IsActive    *bool   `json:"is_active"`
}

type CreateZipEntryRequest struct {
	Zip      string `json:"zip"`
	RegionID uint   `json:"region_id"`
}

type CreateCategoryRequest struct {
	Name string `json:"name"`
}

type PatchCustomerRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Address *string `json:"address"`
	City    *string `json:"city"`
	Zip     *string `json:"zip"`
}

type CreateDriverRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type PatchDriverRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	IsActive *bool   `json:"is_active"`
}

type CreateRewardRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	PointsCost  int64  `json:"points_cost"`
}

type PatchRewardRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	PointsCost  *int64  `json:"points_cost"`
	IsActive    *bool   `json:"is_active"`
}
