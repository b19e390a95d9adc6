package orders

import "github.com/eonite/portal-backend/pkg/enums"

var forwardRank = map[enums.OrderStatus]int{
	enums.OrderStatusConfirmed:       0,
	enums.OrderStatusProduction:      1,
	enums.OrderStatusDeliveredEonite: 2,
	enums.OrderStatusAvailable:       3,
}

// CanTransition reports whether an order may move from one status to another.
// Lifecycle statuses advance one step at a time; cancellation is allowed from
// any status except available.
func CanTransition(from, to enums.OrderStatus) bool {
	if from == to || !from.IsValid() || !to.IsValid() {
		return false
	}
	if from == enums.OrderStatusCancelled {
		return false
	}
	if to == enums.OrderStatusCancelled {
		return from != enums.OrderStatusAvailable
	}
	return forwardRank[to] == forwardRank[from]+1
}
