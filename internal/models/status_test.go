package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusTransitions(t *testing.T) {
	assert.True(t, StatusNew.CanTransitionTo(StatusAccepted))
	assert.True(t, StatusAccepted.CanTransitionTo(StatusPreparing))
	assert.True(t, StatusPreparing.CanTransitionTo(StatusOutForDelivery))
	assert.True(t, StatusOutForDelivery.CanTransitionTo(StatusDelivered))

	assert.False(t, StatusNew.CanTransitionTo(StatusDelivered))
	assert.False(t, StatusNew.CanTransitionTo(StatusPreparing))
	assert.False(t, StatusDelivered.CanTransitionTo(StatusCanceled))
	assert.False(t, StatusCanceled.CanTransitionTo(StatusNew))

	for _, s := range []OrderStatus{StatusNew, StatusAccepted, StatusPreparing, StatusOutForDelivery} {
		assert.True(t, s.CanTransitionTo(StatusCanceled), "cancel from %s", s)
		assert.False(t, s.Terminal())
	}
	assert.True(t, StatusDelivered.Terminal())
	assert.True(t, StatusCanceled.Terminal())
}

func TestStatusValid(t *testing.T) {
	assert.True(t, StatusNew.Valid())
	assert.True(t, StatusCanceled.Valid())
	assert.False(t, OrderStatus("lost_in_transit").Valid())
	assert.False(t, OrderStatus("").Valid())
}
