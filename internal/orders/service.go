package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eonite/portal-backend/pkg/enums"
	pkgerrors "github.com/eonite/portal-backend/pkg/errors"
	"github.com/eonite/portal-backend/pkg/pagination"
)

// Service exposes order reads and the operator mutations of status,
// production progress and payment status.
type Service interface {
	List(ctx context.Context, filters ListFilters, params pagination.Params) (*OrderList, error)
	ListForClient(ctx context.Context, clientID uuid.UUID, params pagination.Params) (*OrderList, error)
	Get(ctx context.Context, orderID uuid.UUID) (*OrderDetail, error)
	GetForClient(ctx context.Context, clientID, orderID uuid.UUID) (*OrderDetail, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) (*OrderDetail, error)
	UpdateProgress(ctx context.Context, orderID uuid.UUID, progress int) (*OrderDetail, error)
	UpdatePayment(ctx context.Context, orderID uuid.UUID, status enums.PaymentStatus) (*OrderDetail, error)
}

type service struct {
	repo Repository
	tx   txRunner
	now  func() time.Time
}

func NewService(repo Repository, tx txRunner, now func() time.Time) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if now == nil {
		now = time.Now
	}
	return &service{repo: repo, tx: tx, now: now}, nil
}

func (s *service) List(ctx context.Context, filters ListFilters, params pagination.Params) (*OrderList, error) {
	list, err := s.repo.List(ctx, filters, params)
	if err != nil {
		return nil, listError(err)
	}
	return list, nil
}

func (s *service) ListForClient(ctx context.Context, clientID uuid.UUID, params pagination.Params) (*OrderList, error) {
	return s.List(ctx, ListFilters{ClientID: &clientID}, params)
}

func (s *service) Get(ctx context.Context, orderID uuid.UUID) (*OrderDetail, error) {
	detail, err := s.repo.FindDetail(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	if detail == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return detail, nil
}

// GetForClient hides orders owned by other clients behind NOT_FOUND.
func (s *service) GetForClient(ctx context.Context, clientID, orderID uuid.UUID) (*OrderDetail, error) {
	detail, err := s.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if detail.ClientID != clientID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return detail, nil
}

func (s *service) UpdateStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) (*OrderDetail, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}
	return s.mutate(ctx, orderID, func(current enums.OrderStatus, now time.Time) (map[string]any, error) {
		if !CanTransition(current, status) {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "order status transition not allowed").
				WithDetails(map[string]any{"from": current, "to": status})
		}
		updates := map[string]any{"status": status, "updated_at": now}
		if status == enums.OrderStatusAvailable {
			updates["actual_completion"] = now
		}
		return updates, nil
	})
}

func (s *service) UpdateProgress(ctx context.Context, orderID uuid.UUID, progress int) (*OrderDetail, error) {
	if progress < 0 || progress > 100 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "production progress must be between 0 and 100")
	}
	return s.mutate(ctx, orderID, func(current enums.OrderStatus, now time.Time) (map[string]any, error) {
		if current != enums.OrderStatusProduction {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "production progress can only change during production").
				WithDetails(map[string]any{"status": current})
		}
		return map[string]any{"production_progress": progress, "updated_at": now}, nil
	})
}

func (s *service) UpdatePayment(ctx context.Context, orderID uuid.UUID, status enums.PaymentStatus) (*OrderDetail, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment status")
	}
	return s.mutate(ctx, orderID, func(_ enums.OrderStatus, now time.Time) (map[string]any, error) {
		return map[string]any{"payment_status": status, "updated_at": now}, nil
	})
}

type mutation func(current enums.OrderStatus, now time.Time) (map[string]any, error)

// mutate loads the order, derives updates from its current status and applies
// them only if the status is unchanged in the meantime.
func (s *service) mutate(ctx context.Context, orderID uuid.UUID, fn mutation) (*OrderDetail, error) {
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := repo.FindOrder(ctx, orderID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}
		if order == nil {
			return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}

		updates, err := fn(order.Status, s.now().UTC())
		if err != nil {
			return err
		}
		changed, err := repo.UpdateOrder(ctx, orderID, order.Status, updates)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order")
		}
		if !changed {
			return pkgerrors.New(pkgerrors.CodeConflict, "order changed concurrently")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, orderID)
}

func listError(err error) error {
	if typed := pkgerrors.As(err); typed != nil {
		return typed
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
}
