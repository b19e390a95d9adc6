package orders

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/eonite/portal-backend/pkg/db"
	"github.com/eonite/portal-backend/pkg/db/dbtest"
	"github.com/eonite/portal-backend/pkg/db/models"
	"github.com/eonite/portal-backend/pkg/enums"
	pkgerrors "github.com/eonite/portal-backend/pkg/errors"
	"github.com/eonite/portal-backend/pkg/metrics"
)

type stubNumbers struct {
	n   int
	err error
}

func (s *stubNumbers) Next(context.Context) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.n++
	return fmt.Sprintf("EON-%06d", s.n), nil
}

func (s *stubNumbers) Source() string { return "stub" }

type outcomes map[string]int

func (o outcomes) ObserveSubmission(outcome string, _ time.Duration) {
	o[outcome]++
}

// faultyRepo fails item inserts and, optionally, header deletes.
type faultyRepo struct {
	Repository
	failDelete bool
}

func (f *faultyRepo) WithTx(tx *gorm.DB) Repository {
	return &faultyRepo{Repository: f.Repository.WithTx(tx), failDelete: f.failDelete}
}

func (f *faultyRepo) CreateItems(context.Context, []models.OrderItem) error {
	return errors.New("insert order_items: connection reset")
}

func (f *faultyRepo) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	if f.failDelete {
		return errors.New("delete orders: connection reset")
	}
	return f.Repository.DeleteOrder(ctx, id)
}

func sampleDraft(t *testing.T) *Draft {
	t.Helper()
	ledger := ledgerOf(t, bagLine(uuid.New(), 100, "1.00"), bagLine(uuid.New(), 50, "2.00"))
	draft, err := Compose(uuid.New(), ledger, nil, "")
	require.NoError(t, err)
	return draft
}

func countRows(t *testing.T, conn *gorm.DB) (orders, items int64) {
	t.Helper()
	require.NoError(t, conn.Model(&models.Order{}).Count(&orders).Error)
	require.NoError(t, conn.Model(&models.OrderItem{}).Count(&items).Error)
	return orders, items
}

func TestSubmitTransactionalPersistsHeaderAndItems(t *testing.T) {
	conn := dbtest.Open(t)
	rec := outcomes{}
	submitter, err := NewSubmitter(SubmitterParams{
		Repo:          NewRepository(conn),
		Tx:            db.Wrap(conn),
		Numbers:       &stubNumbers{},
		Transactional: true,
		Metrics:       rec,
	})
	require.NoError(t, err)

	draft := sampleDraft(t)
	order, err := submitter.Submit(context.Background(), draft)
	require.NoError(t, err)
	assert.Equal(t, "EON-000001", order.OrderNumber)
	assert.Equal(t, enums.OrderStatusConfirmed, order.Status)
	assert.Equal(t, enums.PaymentStatusPending, order.PaymentStatus)
	assert.Len(t, order.Items, 2)

	stored, err := NewRepository(conn).FindOrder(context.Background(), order.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, 150, stored.Quantity)
	assert.True(t, dec("200").Equal(stored.Subtotal))
	assert.True(t, dec("240").Equal(stored.Total))
	assert.True(t, dec("20").Equal(stored.TaxRate))
	require.NotNil(t, stored.Notes)
	assert.Equal(t, "\n[2 products in order]", *stored.Notes)
	assert.Len(t, stored.Items, 2)
	assert.Equal(t, 1, rec[metrics.OutcomeSubmitted])
}

func TestSubmitAllocationFailureWritesNothing(t *testing.T) {
	conn := dbtest.Open(t)
	rec := outcomes{}
	submitter, err := NewSubmitter(SubmitterParams{
		Repo:          NewRepository(conn),
		Tx:            db.Wrap(conn),
		Numbers:       &stubNumbers{err: errors.New("sequence unavailable")},
		Transactional: true,
		Metrics:       rec,
	})
	require.NoError(t, err)

	_, err = submitter.Submit(context.Background(), sampleDraft(t))
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeOrderNumberUnavailable))

	orders, items := countRows(t, conn)
	assert.Zero(t, orders)
	assert.Zero(t, items)
	assert.Equal(t, 1, rec[metrics.OutcomeAllocationFailed])
}

func TestSubmitTransactionalRollsBackOnItemFailure(t *testing.T) {
	conn := dbtest.Open(t)
	submitter, err := NewSubmitter(SubmitterParams{
		Repo:          &faultyRepo{Repository: NewRepository(conn)},
		Tx:            db.Wrap(conn),
		Numbers:       &stubNumbers{},
		Transactional: true,
	})
	require.NoError(t, err)

	_, err = submitter.Submit(context.Background(), sampleDraft(t))
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeOrderSubmissionFailed))

	orders, _ := countRows(t, conn)
	assert.Zero(t, orders)
}

func TestSubmitCompensatesHeaderWhenItemsFail(t *testing.T) {
	conn := dbtest.Open(t)
	rec := outcomes{}
	submitter, err := NewSubmitter(SubmitterParams{
		Repo:    &faultyRepo{Repository: NewRepository(conn)},
		Numbers: &stubNumbers{},
		Metrics: rec,
	})
	require.NoError(t, err)

	_, err = submitter.Submit(context.Background(), sampleDraft(t))
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeOrderSubmissionFailed))

	orders, _ := countRows(t, conn)
	assert.Zero(t, orders)
	assert.Equal(t, 1, rec[metrics.OutcomeFailed])
}

func TestSubmitReportsPartialSubmission(t *testing.T) {
	conn := dbtest.Open(t)
	rec := outcomes{}
	submitter, err := NewSubmitter(SubmitterParams{
		Repo:    &faultyRepo{Repository: NewRepository(conn), failDelete: true},
		Numbers: &stubNumbers{},
		Metrics: rec,
	})
	require.NoError(t, err)

	_, err = submitter.Submit(context.Background(), sampleDraft(t))
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeOrderPartiallySubmitted, typed.Code())
	assert.Contains(t, err.Error(), "connection reset")

	details, ok := typed.Details().(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "EON-000001", details["order_number"])

	orders, items := countRows(t, conn)
	assert.EqualValues(t, 1, orders)
	assert.Zero(t, items)
	assert.Equal(t, 1, rec[metrics.OutcomePartiallySubmitted])
}

func TestNewSubmitterRequiresTxWhenTransactional(t *testing.T) {
	_, err := NewSubmitter(SubmitterParams{Repo: NewRepository(nil), Numbers: &stubNumbers{}, Transactional: true})
	require.Error(t, err)
}
