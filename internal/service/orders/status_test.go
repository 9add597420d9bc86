package orders

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenmile/leafdrop/internal/models"
)

func placeTestOrder(t *testing.T, f *fixture) *PlaceOrderResult {
	t.Helper()
	result, err := f.svc.PlaceOrder(context.Background(), validInput(f))
	require.NoError(t, err)
	return result
}

func TestUpdateStatus_HappyPath(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	result := placeTestOrder(t, f)

	steps := []models.OrderStatus{
		models.StatusAccepted,
		models.StatusPreparing,
		models.StatusOutForDelivery,
		models.StatusDelivered,
	}
	for _, next := range steps {
		order, err := f.svc.UpdateStatus(ctx, result.OrderID, next, "admin-1")
		require.NoError(t, err)
		assert.Equal(t, next, order.Status)
	}
}

func TestUpdateStatus_RejectsSkippedStep(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	result := placeTestOrder(t, f)

	_, err := f.svc.UpdateStatus(ctx, result.OrderID, models.StatusDelivered, "admin-1")
	require.ErrorIs(t, err, ErrInvalidTransition)

	var order models.Order
	require.NoError(t, f.gdb.First(&order, result.OrderID).Error)
	assert.Equal(t, models.StatusNew, order.Status)
}

func TestUpdateStatus_CancelFromAnyNonTerminal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, from := range []models.OrderStatus{models.StatusNew, models.StatusAccepted, models.StatusPreparing, models.StatusOutForDelivery} {
		result := placeTestOrder(t, f)
		require.NoError(t, f.gdb.Model(&models.Order{}).Where("id = ?", result.OrderID).Update("status", from).Error)

		order, err := f.svc.UpdateStatus(ctx, result.OrderID, models.StatusCanceled, "admin-1")
		require.NoError(t, err, "cancel from %s", from)
		assert.Equal(t, models.StatusCanceled, order.Status)
	}
}

func TestUpdateStatus_TerminalIsFinal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	result := placeTestOrder(t, f)

	require.NoError(t, f.gdb.Model(&models.Order{}).Where("id = ?", result.OrderID).Update("status", models.StatusDelivered).Error)

	_, err := f.svc.UpdateStatus(ctx, result.OrderID, models.StatusCanceled, "admin-1")
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateStatus_UnknownStatusAndOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	result := placeTestOrder(t, f)

	_, err := f.svc.UpdateStatus(ctx, result.OrderID, "lost_in_transit", "admin-1")
	require.ErrorIs(t, err, ErrValidation)

	_, err = f.svc.UpdateStatus(ctx, 9999, models.StatusAccepted, "admin-1")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAssignDriver(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	result := placeTestOrder(t, f)

	driver := models.Driver{Name: "Rey", Phone: "8185550177", IsActive: true}
	require.NoError(t, f.gdb.Create(&driver).Error)

	assignment, err := f.svc.AssignDriver(ctx, result.OrderID, driver.ID, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, driver.ID, assignment.DriverID)
	assert.Equal(t, "admin-1", assignment.AssignedBy)

	// Assigning a driver pulls a new order forward to accepted.
	var order models.Order
	require.NoError(t, f.gdb.First(&order, result.OrderID).Error)
	assert.Equal(t, models.StatusAccepted, order.Status)
}

func TestAssignDriver_ReplacesExisting(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	result := placeTestOrder(t, f)

	first := models.Driver{Name: "Rey", Phone: "8185550177", IsActive: true}
	second := models.Driver{Name: "Sam", Phone: "8185550188", IsActive: true}
	require.NoError(t, f.gdb.Create(&first).Error)
	require.NoError(t, f.gdb.Create(&second).Error)

	_, err := f.svc.AssignDriver(ctx, result.OrderID, first.ID, "admin-1")
	require.NoError(t, err)
	_, err = f.svc.AssignDriver(ctx, result.OrderID, second.ID, "admin-2")
	require.NoError(t, err)

	var count int64
	require.NoError(t, f.gdb.Model(&models.OrderAssignment{}).Where("order_id = ?", result.OrderID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var assignment models.OrderAssignment
	require.NoError(t, f.gdb.Where("order_id = ?", result.OrderID).First(&assignment).Error)
	assert.Equal(t, second.ID, assignment.DriverID)
	assert.Equal(t, "admin-2", assignment.AssignedBy)
}

func TestAssignDriver_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	result := placeTestOrder(t, f)

	inactive := models.Driver{Name: "Benched", Phone: "8185550199", IsActive: false}
	require.NoError(t, f.gdb.Create(&inactive).Error)

	_, err := f.svc.AssignDriver(ctx, result.OrderID, inactive.ID, "admin-1")
	require.ErrorIs(t, err, ErrValidation)

	_, err = f.svc.AssignDriver(ctx, result.OrderID, 9999, "admin-1")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, f.gdb.Model(&models.Order{}).Where("id = ?", result.OrderID).Update("status", models.StatusCanceled).Error)
	driver := models.Driver{Name: "Rey", Phone: "8185550177", IsActive: true}
	require.NoError(t, f.gdb.Create(&driver).Error)
	_, err = f.svc.AssignDriver(ctx, result.OrderID, driver.ID, "admin-1")
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestApprove(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	result := placeTestOrder(t, f)

	order, err := f.svc.Approve(ctx, result.OrderID, "admin-7")
	require.NoError(t, err)
	assert.True(t, order.IsApproved)
	assert.Equal(t, "admin-7", order.ApprovedBy)
	require.NotNil(t, order.ApprovedAt)
	assert.Equal(t, models.StatusAccepted, order.Status)

	var stored models.Order
	require.NoError(t, f.gdb.First(&stored, result.OrderID).Error)
	assert.True(t, stored.IsApproved)
	assert.Equal(t, models.StatusAccepted, stored.Status)
}

func TestApprove_KeepsProgressedStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	result := placeTestOrder(t, f)

	require.NoError(t, f.gdb.Model(&models.Order{}).Where("id = ?", result.OrderID).Update("status", models.StatusPreparing).Error)

	order, err := f.svc.Approve(ctx, result.OrderID, "admin-7")
	require.NoError(t, err)
	assert.True(t, order.IsApproved)
	assert.Equal(t, models.StatusPreparing, order.Status)
}
