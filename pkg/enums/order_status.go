package enums

import "fmt"

// OrderStatus tracks an order through production and delivery.
type OrderStatus string

const (
	OrderStatusConfirmed       OrderStatus = "confirmed"
	OrderStatusProduction      OrderStatus = "production"
	OrderStatusDeliveredEonite OrderStatus = "delivered_eonite"
	OrderStatusAvailable       OrderStatus = "available"
	OrderStatusCancelled       OrderStatus = "cancelled"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusConfirmed,
	OrderStatusProduction,
	OrderStatusDeliveredEonite,
	OrderStatusAvailable,
	OrderStatusCancelled,
}

// String implements fmt.Stringer.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known OrderStatus.
func (s OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are possible.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusAvailable || s == OrderStatusCancelled
}

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
