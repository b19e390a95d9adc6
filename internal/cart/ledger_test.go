package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/eonite/portal-backend/pkg/errors"
)

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func newLine(productID uuid.UUID, qty, moq int, price string) Line {
	return Line{
		ClientProductID:  uuid.New(),
		ProductID:        productID,
		DisplayName:      "Kraft bag (M)",
		Quantity:         qty,
		MinOrderQuantity: moq,
		UnitPrice:        dec(price),
	}
}

func TestLedgerAddRejectsBelowMinimum(t *testing.T) {
	var ledger Ledger
	err := ledger.Add(newLine(uuid.New(), 99, 100, "1.00"))
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
	assert.True(t, ledger.IsEmpty())
}

func TestLedgerAddMergesSameClientProduct(t *testing.T) {
	var ledger Ledger
	first := newLine(uuid.New(), 100, 100, "1.00")
	require.NoError(t, ledger.Add(first))

	again := first
	again.Quantity = 150
	again.UnitPrice = dec("0.50")
	require.NoError(t, ledger.Add(again))

	require.Equal(t, 1, ledger.Len())
	assert.Equal(t, 250, ledger.Lines[0].Quantity)
	assert.True(t, dec("1.00").Equal(ledger.Lines[0].UnitPrice))
	assert.True(t, dec("250").Equal(ledger.Subtotal()))
}

func TestLedgerSetQuantityBelowMinimumIsNoop(t *testing.T) {
	var ledger Ledger
	require.NoError(t, ledger.Add(newLine(uuid.New(), 100, 100, "1.00")))

	changed, err := ledger.SetQuantity(0, 50)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, 100, ledger.Lines[0].Quantity)

	changed, err = ledger.SetQuantity(0, 300)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 300, ledger.ItemCount())
}

func TestLedgerIndexOutOfRange(t *testing.T) {
	var ledger Ledger
	require.Error(t, ledger.Remove(0))
	_, err := ledger.SetQuantity(-1, 10)
	require.Error(t, err)
}

func TestLedgerDiscountLines(t *testing.T) {
	var ledger Ledger
	productA := uuid.New()
	productB := uuid.New()
	require.NoError(t, ledger.Add(newLine(productA, 100, 100, "10.00")))
	require.NoError(t, ledger.Add(newLine(productB, 50, 50, "4.00")))
	require.NoError(t, ledger.Remove(0))

	lines := ledger.DiscountLines()
	require.Len(t, lines, 1)
	assert.Equal(t, productB, lines[0].ProductID)
	assert.True(t, dec("200").Equal(lines[0].Subtotal))
}
