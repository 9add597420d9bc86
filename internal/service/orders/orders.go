package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/greenmile/leafdrop/internal/models"
	"github.com/greenmile/leafdrop/internal/repo"
	"github.com/greenmile/leafdrop/internal/service/zones"
)

var (
	ErrValidation            = errors.New("validation")
	ErrNotFound              = errors.New("not found")
	ErrDeliveryUnavailable   = errors.New("delivery unavailable")
	ErrBelowMinimum          = errors.New("below minimum order")
	ErrInsufficientInventory = errors.New("insufficient inventory")
	ErrInvalidTransition     = errors.New("invalid status transition")
)

const maxNumberAttempts = 5

type Service struct {
	Repo *repo.GormRepo

	// FreeDeliveryThreshold is the subtotal, in minor units, at which
	// the delivery fee is waived.
	FreeDeliveryThreshold int64
}

type CartLine struct {
	ProductID uint
	Quantity  int64
}

type PlaceOrderInput struct {
	CustomerName  string
	Phone         string
	Email         string
	Address       string
	City          string
	Zip           string
	Notes         string
	PaymentMethod string
	Items         []CartLine
}

type PlaceOrderResult struct {
	OrderID     uint
	OrderNumber string
	Total       int64
}

func (in *PlaceOrderInput) validate() error {
	if strings.TrimSpace(in.CustomerName) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if len(in.Phone) < 10 {
		return fmt.Errorf("%w: phone must be at least 10 characters", ErrValidation)
	}
	if strings.TrimSpace(in.Address) == "" {
		return fmt.Errorf("%w: address is required", ErrValidation)
	}
	if len(in.Zip) < 5 {
		return fmt.Errorf("%w: zip must be at least 5 characters", ErrValidation)
	}
	if in.PaymentMethod != "cash" && in.PaymentMethod != "debit" {
		return fmt.Errorf("%w: payment_method must be cash or debit", ErrValidation)
	}
	if len(in.Items) == 0 {
		return fmt.Errorf("%w: items required", ErrValidation)
	}
	for _, line := range in.Items {
		if line.ProductID == 0 {
			return fmt.Errorf("%w: product_id required", ErrValidation)
		}
		if line.Quantity <= 0 {
			return fmt.Errorf("%w: quantity must be > 0", ErrValidation)
		}
	}
	return nil
}

// PlaceOrder validates the cart against region and inventory policy,
// prices it, and persists order, items, inventory decrements and the
// customer aggregate in one transaction. Any rule violation rolls the
// whole attempt back.
func (s *Service) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*PlaceOrderResult, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var order models.Order

	txErr := s.Repo.Transaction(ctx, func(tx *gorm.DB) error {
		// The storefront check is advisory only. Resolve again here so
		// zone changes between check and submit cannot slip through.
		avail, err := zones.ResolveTx(tx, in.Zip)
		if err != nil {
			return err
		}
		if !avail.Available {
			return fmt.Errorf("%w: zip %s is outside our delivery area", ErrDeliveryUnavailable, in.Zip)
		}

		var subtotal int64
		items := make([]models.OrderItem, 0, len(in.Items))
		for _, line := range in.Items {
			var p models.Product
			if err := tx.First(&p, line.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: product %d", ErrNotFound, line.ProductID)
				}
				return err
			}
			if !p.IsActive || p.InventoryCount < line.Quantity {
				return fmt.Errorf("%w: insufficient inventory for %s", ErrInsufficientInventory, p.Name)
			}

			// Prices always come from the catalog row, never the client.
			lineTotal := p.Price * line.Quantity
			subtotal += lineTotal
			items = append(items, models.OrderItem{
				ProductID:       p.ID,
				ProductName:     p.Name,
				Quantity:        line.Quantity,
				PriceAtPurchase: p.Price,
				LineTotal:       lineTotal,
			})
		}

		if subtotal < avail.MinOrder {
			return fmt.Errorf("%w: minimum order for %s is %d", ErrBelowMinimum, avail.RegionName, avail.MinOrder)
		}

		deliveryFee := avail.DeliveryFee
		if subtotal >= s.FreeDeliveryThreshold {
			deliveryFee = 0
		}

		order = models.Order{
			Status:        models.StatusNew,
			RegionID:      avail.RegionID,
			Subtotal:      subtotal,
			DeliveryFee:   deliveryFee,
			Total:         subtotal + deliveryFee,
			PaymentMethod: in.PaymentMethod,
			CustomerName:  in.CustomerName,
			CustomerPhone: in.Phone,
			CustomerEmail: in.Email,
			Address:       in.Address,
			City:          in.City,
			Zip:           in.Zip,
			Notes:         in.Notes,
		}
		if err := createWithFreshNumber(tx, &order); err != nil {
			return err
		}

		for i := range items {
			items[i].OrderID = order.ID
			if err := tx.Create(&items[i]).Error; err != nil {
				return err
			}

			// The decrement is a single conditional update. Zero rows
			// affected means a concurrent order got there first, so the
			// earlier inventory check no longer holds and we roll back.
			res := tx.Model(&models.Product{}).
				Where("id = ? AND inventory_count >= ?", items[i].ProductID, items[i].Quantity).
				Update("inventory_count", gorm.Expr("inventory_count - ?", items[i].Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w: insufficient inventory for %s", ErrInsufficientInventory, items[i].ProductName)
			}

			// Sold out means unavailable for new orders.
			if err := tx.Model(&models.Product{}).
				Where("id = ? AND inventory_count = 0", items[i].ProductID).
				Update("is_active", false).Error; err != nil {
				return err
			}
		}

		return upsertCustomer(tx, in, order.Total)
	})

	if txErr != nil {
		return nil, txErr
	}

	return &PlaceOrderResult{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		Total:       order.Total,
	}, nil
}

// createWithFreshNumber inserts the order, regenerating the order
// number on a unique-constraint collision. Each attempt runs in a
// savepoint so a failed insert does not poison the outer transaction.
func createWithFreshNumber(tx *gorm.DB, order *models.Order) error {
	var err error
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		order.ID = 0
		order.OrderNumber = NewOrderNumber()
		err = tx.Transaction(func(sp *gorm.DB) error {
			return sp.Create(order).Error
		})
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
	}
	return fmt.Errorf("order number collision persisted after %d attempts: %w", maxNumberAttempts, err)
}

// upsertCustomer keeps the informational aggregates consistent with the
// orders actually written, inside the same transaction.
func upsertCustomer(tx *gorm.DB, in PlaceOrderInput, total int64) error {
	customer := models.Customer{
		Name:          in.CustomerName,
		Phone:         in.Phone,
		Email:         in.Email,
		Address:       in.Address,
		City:          in.City,
		Zip:           in.Zip,
		TotalOrders:   1,
		LifetimeValue: total,
	}
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "phone"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"name":           in.CustomerName,
			"email":          in.Email,
			"address":        in.Address,
			"city":           in.City,
			"zip":            in.Zip,
			"total_orders":   gorm.Expr("total_orders + 1"),
			"lifetime_value": gorm.Expr("lifetime_value + ?", total),
		}),
	}).Create(&customer).Error
}

// OrderDetail bundles an order with its immutable line items and, for
// admin reads, the live driver assignment if one exists.
type OrderDetail struct {
	Order      models.Order            `json:"order"`
	Items      []models.OrderItem      `json:"items"`
	Assignment *models.OrderAssignment `json:"assignment,omitempty"`
}

// Track returns an order looked up by its number plus the phone it was
// placed with. Phone mismatch is indistinguishable from absence.
func (s *Service) Track(ctx context.Context, number, phone string) (*OrderDetail, error) {
	if number == "" || phone == "" {
		return nil, fmt.Errorf("%w: order number and phone are required", ErrValidation)
	}

	order, err := s.Repo.GetOrderByNumberAndPhone(ctx, number, phone)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order", ErrNotFound)
		}
		return nil, err
	}

	items, err := s.Repo.ListOrderItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	return &OrderDetail{Order: *order, Items: items}, nil
}

func (s *Service) GetOrder(ctx context.Context, id uint) (*OrderDetail, error) {
	order, err := s.Repo.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, id)
		}
		return nil, err
	}

	items, err := s.Repo.ListOrderItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	detail := &OrderDetail{Order: *order, Items: items}
	assignment, err := s.Repo.GetAssignment(ctx, order.ID)
	if err == nil {
		detail.Assignment = assignment
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return detail, nil
}

func (s *Service) ListOrders(ctx context.Context, status models.OrderStatus, offset, limit int) (int64, []models.Order, error) {
	if status != "" && !status.Valid() {
		return 0, nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	return s.Repo.ListOrders(ctx, status, offset, limit)
}
