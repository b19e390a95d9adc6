// Package checkout turns a client's cart session into a submitted order.
package checkout

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/eonite/portal-backend/internal/cart"
	"github.com/eonite/portal-backend/internal/orders"
	"github.com/eonite/portal-backend/pkg/db/models"
	"github.com/eonite/portal-backend/pkg/logger"
)

type sessionSource interface {
	Session(ctx context.Context, clientID uuid.UUID) (*cart.Session, error)
	Clear(ctx context.Context, clientID uuid.UUID) error
}

type orderSubmitter interface {
	Submit(ctx context.Context, draft *orders.Draft) (*models.Order, error)
}

type orderReader interface {
	Get(ctx context.Context, orderID uuid.UUID) (*orders.OrderDetail, error)
}

// Input carries the client's free-text order notes.
type Input struct {
	Notes string `json:"notes" validate:"max=2000"`
}

// Service executes checkout orchestration.
type Service interface {
	Preview(ctx context.Context, clientID uuid.UUID, input Input) (*orders.Draft, error)
	Execute(ctx context.Context, clientID uuid.UUID, input Input) (*orders.OrderDetail, error)
}

type service struct {
	carts     sessionSource
	submitter orderSubmitter
	orders    orderReader
	logg      *logger.Logger
}

// NewService builds the checkout service.
func NewService(carts sessionSource, submitter orderSubmitter, reader orderReader, logg *logger.Logger) (Service, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart service required")
	}
	if submitter == nil {
		return nil, fmt.Errorf("order submitter required")
	}
	if reader == nil {
		return nil, fmt.Errorf("order reader required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{carts: carts, submitter: submitter, orders: reader, logg: logg}, nil
}

// Preview composes the order the cart would produce without submitting it.
func (s *service) Preview(ctx context.Context, clientID uuid.UUID, input Input) (*orders.Draft, error) {
	session, err := s.carts.Session(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return orders.Compose(clientID, session.Ledger, session.Discount, input.Notes)
}

// Execute composes and submits the cart, then clears it. A cart that cannot
// be cleared after a successful submission is logged and left in place.
func (s *service) Execute(ctx context.Context, clientID uuid.UUID, input Input) (*orders.OrderDetail, error) {
	draft, err := s.Preview(ctx, clientID, input)
	if err != nil {
		return nil, err
	}

	order, err := s.submitter.Submit(ctx, draft)
	if err != nil {
		return nil, err
	}

	ctx = s.logg.WithFields(ctx, map[string]any{
		"client_id":    clientID.String(),
		"order_number": order.OrderNumber,
	})
	if err := s.carts.Clear(ctx, clientID); err != nil {
		s.logg.Warn(ctx, "cart not cleared after checkout")
	}

	detail, err := s.orders.Get(ctx, order.ID)
	if err != nil {
		s.logg.Error(ctx, "reload submitted order", err)
		return nil, err
	}
	return detail, nil
}
