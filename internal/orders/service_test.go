package orders

import (
	"context"
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
	"github.com/eonite/portal-backend/pkg/pagination"
)

var fixedNow = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

func seedOrder(t *testing.T, conn *gorm.DB, clientID uuid.UUID, number string, status enums.OrderStatus, createdAt time.Time) models.Order {
	t.Helper()
	cp := models.ClientProduct{ID: uuid.New(), ClientID: clientID, ProductID: uuid.New(), DisplayName: "Kraft bag (M)", IsActive: true}
	require.NoError(t, conn.Create(&cp).Error)

	order := models.Order{
		ID:             uuid.New(),
		OrderNumber:    number,
		ClientID:       clientID,
		Quantity:       100,
		Subtotal:       dec("100"),
		Total:          dec("120"),
		TaxRate:        dec("20"),
		DiscountAmount: dec("0"),
		Status:         status,
		PaymentStatus:  enums.PaymentStatusPending,
		CreatedAt:      createdAt,
		UpdatedAt:      createdAt,
	}
	require.NoError(t, conn.Omit("Items").Create(&order).Error)
	item := models.OrderItem{
		ID:              uuid.New(),
		OrderID:         order.ID,
		ClientProductID: cp.ID,
		Quantity:        100,
		UnitPrice:       dec("1"),
		LineTotal:       dec("100"),
		CreatedAt:       createdAt,
	}
	require.NoError(t, conn.Create(&item).Error)
	return order
}

func newOrdersService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	conn := dbtest.Open(t)
	svc, err := NewService(NewRepository(conn), db.Wrap(conn), func() time.Time { return fixedNow })
	require.NoError(t, err)
	return svc, conn
}

func TestUpdateStatusFollowsStateMachine(t *testing.T) {
	svc, conn := newOrdersService(t)
	ctx := context.Background()
	order := seedOrder(t, conn, uuid.New(), "EON-000001", enums.OrderStatusConfirmed, fixedNow.Add(-time.Hour))

	detail, err := svc.UpdateStatus(ctx, order.ID, enums.OrderStatusProduction)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusProduction, detail.Status)
	assert.Nil(t, detail.ActualCompletion)

	_, err = svc.UpdateStatus(ctx, order.ID, enums.OrderStatusConfirmed)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeStateConflict))

	_, err = svc.UpdateStatus(ctx, order.ID, enums.OrderStatusAvailable)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeStateConflict))

	detail, err = svc.UpdateStatus(ctx, order.ID, enums.OrderStatusDeliveredEonite)
	require.NoError(t, err)
	assert.Nil(t, detail.ActualCompletion)

	detail, err = svc.UpdateStatus(ctx, order.ID, enums.OrderStatusAvailable)
	require.NoError(t, err)
	require.NotNil(t, detail.ActualCompletion)
	assert.True(t, fixedNow.Equal(*detail.ActualCompletion))

	_, err = svc.UpdateStatus(ctx, order.ID, enums.OrderStatusCancelled)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeStateConflict))
}

func TestUpdateProgressOnlyDuringProduction(t *testing.T) {
	svc, conn := newOrdersService(t)
	ctx := context.Background()
	order := seedOrder(t, conn, uuid.New(), "EON-000001", enums.OrderStatusConfirmed, fixedNow)

	_, err := svc.UpdateProgress(ctx, order.ID, 40)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeStateConflict))

	_, err = svc.UpdateStatus(ctx, order.ID, enums.OrderStatusProduction)
	require.NoError(t, err)

	_, err = svc.UpdateProgress(ctx, order.ID, 101)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))

	detail, err := svc.UpdateProgress(ctx, order.ID, 40)
	require.NoError(t, err)
	assert.Equal(t, 40, detail.ProductionProgress)
}

func TestUpdatePaymentIsIndependentOfStatus(t *testing.T) {
	svc, conn := newOrdersService(t)
	ctx := context.Background()
	order := seedOrder(t, conn, uuid.New(), "EON-000001", enums.OrderStatusCancelled, fixedNow)

	detail, err := svc.UpdatePayment(ctx, order.ID, enums.PaymentStatusRefunded)
	require.NoError(t, err)
	assert.Equal(t, enums.PaymentStatusRefunded, detail.PaymentStatus)

	detail, err = svc.UpdatePayment(ctx, order.ID, enums.PaymentStatusPending)
	require.NoError(t, err)
	assert.Equal(t, enums.PaymentStatusPending, detail.PaymentStatus)
	assert.Equal(t, enums.OrderStatusCancelled, detail.Status)

	_, err = svc.UpdatePayment(ctx, order.ID, enums.PaymentStatus("void"))
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))

	_, err = svc.UpdatePayment(ctx, uuid.New(), enums.PaymentStatusPaid)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
}

func TestGetForClientHidesOtherClientsOrders(t *testing.T) {
	svc, conn := newOrdersService(t)
	ctx := context.Background()
	owner := uuid.New()
	order := seedOrder(t, conn, owner, "EON-000001", enums.OrderStatusConfirmed, fixedNow)

	detail, err := svc.GetForClient(ctx, owner, order.ID)
	require.NoError(t, err)
	require.Len(t, detail.Items, 1)
	assert.Equal(t, "Kraft bag (M)", detail.Items[0].DisplayName)

	_, err = svc.GetForClient(ctx, uuid.New(), order.ID)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
}

func TestListPaginatesNewestFirst(t *testing.T) {
	svc, conn := newOrdersService(t)
	ctx := context.Background()
	clientID := uuid.New()
	for i := 0; i < 3; i++ {
		seedOrder(t, conn, clientID, fmt.Sprintf("EON-%06d", i+1), enums.OrderStatusConfirmed, fixedNow.Add(time.Duration(i)*time.Minute))
	}
	seedOrder(t, conn, uuid.New(), "EON-000009", enums.OrderStatusProduction, fixedNow)

	page, err := svc.ListForClient(ctx, clientID, pagination.Params{Limit: 2})
	require.NoError(t, err)
	require.Len(t, page.Orders, 2)
	assert.Equal(t, "EON-000003", page.Orders[0].OrderNumber)
	assert.Equal(t, "EON-000002", page.Orders[1].OrderNumber)
	require.NotEmpty(t, page.NextCursor)

	page, err = svc.ListForClient(ctx, clientID, pagination.Params{Limit: 2, Cursor: page.NextCursor})
	require.NoError(t, err)
	require.Len(t, page.Orders, 1)
	assert.Equal(t, "EON-000001", page.Orders[0].OrderNumber)
	assert.Empty(t, page.NextCursor)

	production := enums.OrderStatusProduction
	page, err = svc.List(ctx, ListFilters{Status: &production}, pagination.Params{})
	require.NoError(t, err)
	require.Len(t, page.Orders, 1)
	assert.Equal(t, "EON-000009", page.Orders[0].OrderNumber)

	_, err = svc.List(ctx, ListFilters{}, pagination.Params{Cursor: "%%%"})
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
}
