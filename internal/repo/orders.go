package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/greenmile/leafdrop/internal/models"
)

func (r *GormRepo) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	order := models.Order{}
	if err := r.DB.WithContext(ctx).First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrderByNumberAndPhone serves customer-facing tracking. The phone
// acts as the correlation secret, so a mismatch reads as not-found.
func (r *GormRepo) GetOrderByNumberAndPhone(ctx context.Context, number, phone string) (*models.Order, error) {
	order := models.Order{}
	if err := r.DB.WithContext(ctx).
		Where("order_number = ? AND customer_phone = ?", number, phone).
		First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) ListOrders(ctx context.Context, status models.OrderStatus, offset, limit int) (int64, []models.Order, error) {
	q := r.DB.WithContext(ctx).Model(&models.Order{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var orders []models.Order
	if err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&orders).Error; err != nil {
		return 0, nil, err
	}
	return total, orders, nil
}

func (r *GormRepo) ListOrderItems(ctx context.Context, orderID uint) ([]models.OrderItem, error) {
	var items []models.OrderItem
	if err := r.DB.WithContext(ctx).Where("order_id = ?", orderID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetAssignment(ctx context.Context, orderID uint) (*models.OrderAssignment, error) {
	assignment := models.OrderAssignment{}
	if err := r.DB.WithContext(ctx).Where("order_id = ?", orderID).First(&assignment).Error; err != nil {
		return nil, err
	}
	return &assignment, nil
}

// Transaction runs fn inside one database transaction.
func (r *GormRepo) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.DB.WithContext(ctx).Transaction(fn)
}
