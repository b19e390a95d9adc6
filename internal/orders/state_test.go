package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eonite/portal-backend/pkg/enums"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to enums.OrderStatus
		want     bool
	}{
		{enums.OrderStatusConfirmed, enums.OrderStatusProduction, true},
		{enums.OrderStatusProduction, enums.OrderStatusDeliveredEonite, true},
		{enums.OrderStatusDeliveredEonite, enums.OrderStatusAvailable, true},
		{enums.OrderStatusConfirmed, enums.OrderStatusAvailable, false},
		{enums.OrderStatusConfirmed, enums.OrderStatusDeliveredEonite, false},
		{enums.OrderStatusProduction, enums.OrderStatusAvailable, false},
		{enums.OrderStatusProduction, enums.OrderStatusConfirmed, false},
		{enums.OrderStatusAvailable, enums.OrderStatusDeliveredEonite, false},
		{enums.OrderStatusConfirmed, enums.OrderStatusCancelled, true},
		{enums.OrderStatusDeliveredEonite, enums.OrderStatusCancelled, true},
		{enums.OrderStatusAvailable, enums.OrderStatusCancelled, false},
		{enums.OrderStatusCancelled, enums.OrderStatusConfirmed, false},
		{enums.OrderStatusProduction, enums.OrderStatusProduction, false},
		{enums.OrderStatus("shipped"), enums.OrderStatusProduction, false},
	}
	for _, tc := range cases {
		assert.Equalf(t, tc.want, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}
