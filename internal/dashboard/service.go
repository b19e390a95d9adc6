// Package dashboard aggregates the operator overview.
package dashboard

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/eonite/portal-backend/internal/inventory"
	"github.com/eonite/portal-backend/internal/orders"
	"github.com/eonite/portal-backend/pkg/enums"
	pkgerrors "github.com/eonite/portal-backend/pkg/errors"
	"github.com/eonite/portal-backend/pkg/pagination"
)

const (
	recentOrdersLimit  = 10
	lowStockItemsLimit = 5
)

type orderLister interface {
	List(ctx context.Context, filters orders.ListFilters, params pagination.Params) (*orders.OrderList, error)
}

type inventoryLister interface {
	List(ctx context.Context, filter inventory.Filter) (*inventory.Summary, error)
}

// Overview is the operator dashboard payload.
type Overview struct {
	TotalClients   int64                 `json:"total_clients"`
	TotalOrders    int64                 `json:"total_orders"`
	ActiveOrders   int64                 `json:"active_orders"`
	Revenue        decimal.Decimal       `json:"revenue"`
	LowStockAlerts int                   `json:"low_stock_alerts"`
	LowStockItems  []inventory.Record    `json:"low_stock_items"`
	RecentOrders   []orders.OrderSummary `json:"recent_orders"`
}

type Service interface {
	Overview(ctx context.Context) (*Overview, error)
}

type service struct {
	repo      Repository
	orders    orderLister
	inventory inventoryLister
}

func NewService(repo Repository, orders orderLister, inventory inventoryLister) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("dashboard repository required")
	}
	if orders == nil {
		return nil, fmt.Errorf("orders service required")
	}
	if inventory == nil {
		return nil, fmt.Errorf("inventory service required")
	}
	return &service{repo: repo, orders: orders, inventory: inventory}, nil
}

func (s *service) Overview(ctx context.Context) (*Overview, error) {
	var (
		out Overview
		err error
	)
	if out.TotalClients, err = s.repo.CountClients(ctx); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count clients")
	}
	if out.TotalOrders, err = s.repo.CountOrders(ctx); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count orders")
	}
	if out.ActiveOrders, err = s.repo.CountOrders(ctx, enums.OrderStatusConfirmed, enums.OrderStatusProduction); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count active orders")
	}
	if out.Revenue, err = s.repo.PaidRevenue(ctx); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum revenue")
	}

	recent, err := s.orders.List(ctx, orders.ListFilters{}, pagination.Params{Limit: recentOrdersLimit})
	if err != nil {
		return nil, err
	}
	out.RecentOrders = recent.Orders

	stock, err := s.inventory.List(ctx, inventory.Filter{})
	if err != nil {
		return nil, err
	}
	out.LowStockAlerts = stock.LowStock
	out.LowStockItems = make([]inventory.Record, 0, lowStockItemsLimit)
	for _, record := range stock.Records {
		if record.Quantity > record.AlertThreshold {
			continue
		}
		out.LowStockItems = append(out.LowStockItems, record)
		if len(out.LowStockItems) == lowStockItemsLimit {
			break
		}
	}
	return &out, nil
}
