package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/greenmile/leafdrop/internal/models"
)

// UpdateStatus moves an order along the fulfillment workflow. The
// transition table in models is authoritative; anything else is a
// validation error. actor is the admin identity for the audit trail.
func (s *Service) UpdateStatus(ctx context.Context, orderID uint, next models.OrderStatus, actor string) (*models.Order, error) {
	if !next.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, next)
	}

	var order models.Order
	txErr := s.Repo.Transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: order %d", ErrNotFound, orderID)
			}
			return err
		}

		if !order.Status.CanTransitionTo(next) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, next)
		}

		// Guard on the status we read so a concurrent admin edit loses
		// cleanly instead of silently double-applying.
		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", order.ID, order.Status).
			Update("status", next)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: order %d changed concurrently", ErrInvalidTransition, order.ID)
		}

		order.Status = next
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return &order, nil
}

// AssignDriver upserts the single live assignment for an order. A new
// order is pulled forward to accepted; already-progressed orders keep
// their status.
func (s *Service) AssignDriver(ctx context.Context, orderID, driverID uint, actor string) (*models.OrderAssignment, error) {
	var assignment models.OrderAssignment

	txErr := s.Repo.Transaction(ctx, func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: order %d", ErrNotFound, orderID)
			}
			return err
		}
		if order.Status.Terminal() {
			return fmt.Errorf("%w: order %d is %s", ErrInvalidTransition, orderID, order.Status)
		}

		var driver models.Driver
		if err := tx.First(&driver, driverID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: driver %d", ErrNotFound, driverID)
			}
			return err
		}
		if !driver.IsActive {
			return fmt.Errorf("%w: driver %s is inactive", ErrValidation, driver.Name)
		}

		assignment = models.OrderAssignment{
			OrderID:    orderID,
			DriverID:   driverID,
			AssignedBy: actor,
			AssignedAt: time.Now().UTC(),
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "order_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"driver_id":   driverID,
				"assigned_by": actor,
				"assigned_at": assignment.AssignedAt,
			}),
		}).Create(&assignment).Error; err != nil {
			return err
		}

		if order.Status == models.StatusNew {
			if err := tx.Model(&models.Order{}).
				Where("id = ? AND status = ?", orderID, models.StatusNew).
				Update("status", models.StatusAccepted).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return &assignment, nil
}

// Approve flips the approval gate. Approval is independent of status
// except that a still-new order moves to accepted.
func (s *Service) Approve(ctx context.Context, orderID uint, actor string) (*models.Order, error) {
	var order models.Order

	txErr := s.Repo.Transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: order %d", ErrNotFound, orderID)
			}
			return err
		}
		if order.Status.Terminal() {
			return fmt.Errorf("%w: order %d is %s", ErrInvalidTransition, orderID, order.Status)
		}

		now := time.Now().UTC()
		updates := map[string]interface{}{
			"is_approved": true,
			"approved_by": actor,
			"approved_at": now,
		}
		if order.Status == models.StatusNew {
			updates["status"] = models.StatusAccepted
		}
		if err := tx.Model(&models.Order{}).Where("id = ?", orderID).Updates(updates).Error; err != nil {
			return err
		}

		order.IsApproved = true
		order.ApprovedBy = actor
		order.ApprovedAt = &now
		if order.Status == models.StatusNew {
			order.Status = models.StatusAccepted
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return &order, nil
}
