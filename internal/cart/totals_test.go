package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eonite/portal-backend/internal/discounts"
)

func TestComputeTotalsWithDiscount(t *testing.T) {
	var ledger Ledger
	require.NoError(t, ledger.Add(newLine(uuid.New(), 100, 100, "3.00")))
	require.NoError(t, ledger.Add(newLine(uuid.New(), 200, 100, "1.50")))

	applied := &discounts.Applied{Code: "SAVE10", Percent: dec("10"), Amount: dec("60")}
	totals := ComputeTotals(ledger, applied)

	assert.Equal(t, 300, totals.Quantity)
	assert.True(t, dec("600").Equal(totals.Subtotal))
	assert.True(t, dec("60").Equal(totals.DiscountAmount))
	assert.True(t, dec("540").Equal(totals.TotalExclTax))
	assert.True(t, dec("648").Equal(totals.TotalInclTax))
}

func TestComputeTotalsRoundsToCents(t *testing.T) {
	var ledger Ledger
	require.NoError(t, ledger.Add(newLine(uuid.New(), 3, 1, "0.3333")))

	totals := ComputeTotals(ledger, nil)
	assert.Equal(t, "1", totals.Subtotal.String())
	assert.True(t, totals.DiscountAmount.IsZero())
	assert.Equal(t, "1.2", totals.TotalInclTax.String())
}
