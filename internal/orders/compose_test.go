package orders

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eonite/portal-backend/internal/cart"
	"github.com/eonite/portal-backend/internal/discounts"
	pkgerrors "github.com/eonite/portal-backend/pkg/errors"
)

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func ledgerOf(t *testing.T, lines ...cart.Line) cart.Ledger {
	t.Helper()
	var ledger cart.Ledger
	for _, line := range lines {
		require.NoError(t, ledger.Add(line))
	}
	return ledger
}

func bagLine(productID uuid.UUID, qty int, price string) cart.Line {
	return cart.Line{
		ClientProductID:  uuid.New(),
		ProductID:        productID,
		DisplayName:      "Kraft bag (24x32)",
		Quantity:         qty,
		MinOrderQuantity: 1,
		UnitPrice:        dec(price),
	}
}

func TestComposeGlobalDiscountExample(t *testing.T) {
	productID := uuid.New()
	ledger := ledgerOf(t, bagLine(productID, 6000, "0.10"))

	applied, err := discounts.Recompute(discounts.Applied{Code: "SAVE10", Percent: dec("10")}, ledger)
	require.NoError(t, err)

	draft, err := Compose(uuid.New(), ledger, applied, "")
	require.NoError(t, err)

	assert.True(t, dec("600").Equal(draft.Totals.Subtotal))
	assert.True(t, dec("60").Equal(draft.Totals.DiscountAmount))
	assert.True(t, dec("540").Equal(draft.Totals.TotalExclTax))
	assert.True(t, dec("648").Equal(draft.Totals.TotalInclTax))
	assert.Equal(t, 6000, draft.Totals.Quantity)
	require.NotNil(t, draft.DiscountCode)
	assert.Equal(t, "SAVE10", *draft.DiscountCode)
	assert.Nil(t, draft.Notes)

	require.Len(t, draft.Items, 1)
	assert.True(t, dec("600").Equal(draft.Items[0].LineTotal))
	assert.True(t, dec("0.10").Equal(draft.Items[0].UnitPrice))
}

func TestComposeIsIdempotent(t *testing.T) {
	ledger := ledgerOf(t, bagLine(uuid.New(), 1000, "1.00"), bagLine(uuid.New(), 250, "0.3333"))
	applied := &discounts.Applied{Code: "SAVE10", Percent: dec("10"), Amount: dec("108.33")}
	clientID := uuid.New()

	first, err := Compose(clientID, ledger, applied, "rush")
	require.NoError(t, err)
	second, err := Compose(clientID, ledger, applied, "rush")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 2, ledger.Len())
}

func TestComposeAppendsLineCountToNotes(t *testing.T) {
	ledger := ledgerOf(t, bagLine(uuid.New(), 10, "1"), bagLine(uuid.New(), 10, "1"), bagLine(uuid.New(), 10, "1"))

	draft, err := Compose(uuid.New(), ledger, nil, "Deliver to dock B")
	require.NoError(t, err)
	require.NotNil(t, draft.Notes)
	assert.Equal(t, "Deliver to dock B\n[3 products in order]", *draft.Notes)
	assert.Nil(t, draft.DiscountCode)
	assert.True(t, draft.Totals.DiscountAmount.IsZero())
}

func TestComposeRejectsEmptyCart(t *testing.T) {
	_, err := Compose(uuid.New(), cart.Ledger{}, nil, "")
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
}
