package models

// OrderStatus is the fulfillment state of an order.
type OrderStatus string

const (
	StatusNew            OrderStatus = "new"
	StatusAccepted       OrderStatus = "accepted"
	StatusPreparing      OrderStatus = "preparing"
	StatusOutForDelivery OrderStatus = "out_for_delivery"
	StatusDelivered      OrderStatus = "delivered"
	StatusCanceled       OrderStatus = "canceled"
)

var statusTransitions = map[OrderStatus][]OrderStatus{
	StatusNew:            {StatusAccepted, StatusCanceled},
	StatusAccepted:       {StatusPreparing, StatusCanceled},
	StatusPreparing:      {StatusOutForDelivery, StatusCanceled},
	StatusOutForDelivery: {StatusDelivered, StatusCanceled},
	StatusDelivered:      {},
	StatusCanceled:       {},
}

func (s OrderStatus) Valid() bool {
	_, ok := statusTransitions[s]
	return ok
}

func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCanceled
}

// CanTransitionTo reports whether moving from s to next is a legal step
// of the fulfillment workflow.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
