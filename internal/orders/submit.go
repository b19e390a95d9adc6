package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/eonite/portal-backend/internal/cart"
	"github.com/eonite/portal-backend/pkg/db/models"
	"github.com/eonite/portal-backend/pkg/enums"
	pkgerrors "github.com/eonite/portal-backend/pkg/errors"
	"github.com/eonite/portal-backend/pkg/logger"
	"github.com/eonite/portal-backend/pkg/metrics"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type numberAllocator interface {
	Next(ctx context.Context) (string, error)
	Source() string
}

type submissionRecorder interface {
	ObserveSubmission(outcome string, duration time.Duration)
}

// SubmitterParams wires a Submitter. Transactional selects a single database
// transaction for header and items; without it a failed item insert is
// compensated by deleting the header.
type SubmitterParams struct {
	Repo          Repository
	Tx            txRunner
	Numbers       numberAllocator
	Transactional bool
	Logger        *logger.Logger
	Metrics       submissionRecorder
	Now           func() time.Time
}

// Submitter persists composed drafts.
type Submitter struct {
	repo          Repository
	tx            txRunner
	numbers       numberAllocator
	transactional bool
	logg          *logger.Logger
	metrics       submissionRecorder
	now           func() time.Time
}

func NewSubmitter(params SubmitterParams) (*Submitter, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if params.Numbers == nil {
		return nil, fmt.Errorf("order number allocator required")
	}
	if params.Transactional && params.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &Submitter{
		repo:          params.Repo,
		tx:            params.Tx,
		numbers:       params.Numbers,
		transactional: params.Transactional,
		logg:          logg,
		metrics:       params.Metrics,
		now:           now,
	}, nil
}

// Submit allocates an order number and persists the draft's header and items
// as one unit. Allocation failures abort before anything is written.
func (s *Submitter) Submit(ctx context.Context, draft *Draft) (*models.Order, error) {
	if draft == nil || len(draft.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order has no items")
	}
	started := s.now()
	ctx = s.logg.WithClientID(ctx, draft.ClientID.String())

	number, err := s.numbers.Next(ctx)
	if err != nil {
		s.observe(metrics.OutcomeAllocationFailed, started)
		s.logg.Error(s.logg.WithField(ctx, "source", s.numbers.Source()), "order number allocation failed", err)
		return nil, pkgerrors.Wrap(pkgerrors.CodeOrderNumberUnavailable, err, "order number unavailable")
	}
	ctx = s.logg.WithField(ctx, "order_number", number)

	order, items := buildRecords(draft, number, started.UTC())
	if s.transactional {
		err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
			repo := s.repo.WithTx(tx)
			if err := repo.CreateOrder(ctx, order); err != nil {
				return err
			}
			return repo.CreateItems(ctx, items)
		})
	} else {
		err = s.submitCompensating(ctx, order, items)
		if pkgerrors.HasCode(err, pkgerrors.CodeOrderPartiallySubmitted) {
			s.observe(metrics.OutcomePartiallySubmitted, started)
			return nil, err
		}
	}
	if err != nil {
		s.observe(metrics.OutcomeFailed, started)
		s.logg.Error(ctx, "order submission failed", err)
		return nil, pkgerrors.Wrap(pkgerrors.CodeOrderSubmissionFailed, err, "order submission failed")
	}

	order.Items = items
	s.observe(metrics.OutcomeSubmitted, started)
	s.logg.Info(s.logg.WithField(ctx, "order_id", order.ID.String()), "order submitted")
	return order, nil
}

// submitCompensating writes header then items outside a transaction. When the
// items fail the header is deleted; if that delete also fails the order is
// reported as partially submitted.
func (s *Submitter) submitCompensating(ctx context.Context, order *models.Order, items []models.OrderItem) error {
	if err := s.repo.CreateOrder(ctx, order); err != nil {
		return err
	}
	itemsErr := s.repo.CreateItems(ctx, items)
	if itemsErr == nil {
		return nil
	}

	deleteErr := s.repo.DeleteOrder(ctx, order.ID)
	if deleteErr == nil {
		s.logg.Warn(ctx, "order items failed, header removed")
		return itemsErr
	}

	combined := multierr.Combine(itemsErr, deleteErr)
	s.logg.Error(s.logg.WithField(ctx, "order_id", order.ID.String()), "order partially submitted: header persisted without items", combined)
	return pkgerrors.Wrap(pkgerrors.CodeOrderPartiallySubmitted, combined, "order header persisted without items").
		WithDetails(map[string]any{
			"order_id":     order.ID.String(),
			"order_number": order.OrderNumber,
		})
}

func (s *Submitter) observe(outcome string, started time.Time) {
	if s.metrics == nil {
		return
	}
	s.metrics.ObserveSubmission(outcome, s.now().Sub(started))
}

func buildRecords(draft *Draft, number string, at time.Time) (*models.Order, []models.OrderItem) {
	order := &models.Order{
		ID:             uuid.New(),
		OrderNumber:    number,
		ClientID:       draft.ClientID,
		Quantity:       draft.Totals.Quantity,
		Subtotal:       draft.Totals.TotalExclTax,
		Total:          draft.Totals.TotalInclTax,
		TaxRate:        cart.VATRate.Shift(2),
		DiscountCode:   draft.DiscountCode,
		DiscountAmount: draft.Totals.DiscountAmount,
		Status:         enums.OrderStatusConfirmed,
		PaymentStatus:  enums.PaymentStatusPending,
		Notes:          draft.Notes,
		CreatedAt:      at,
		UpdatedAt:      at,
	}
	items := make([]models.OrderItem, 0, len(draft.Items))
	for _, item := range draft.Items {
		items = append(items, models.OrderItem{
			ID:              uuid.New(),
			OrderID:         order.ID,
			ClientProductID: item.ClientProductID,
			Quantity:        item.Quantity,
			UnitPrice:       item.UnitPrice,
			LineTotal:       item.LineTotal,
			CreatedAt:       at,
		})
	}
	return order, items
}
