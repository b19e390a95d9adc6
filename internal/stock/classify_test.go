package stock

import (
	"testing"

	"github.com/eonite/portal-backend/pkg/enums"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		alert    int
		critical int
		want     enums.StockLevel
	}{
		{name: "at critical", quantity: 100, alert: 500, critical: 100, want: enums.StockLevelCritical},
		{name: "below critical", quantity: 0, alert: 500, critical: 100, want: enums.StockLevelCritical},
		{name: "just above critical", quantity: 101, alert: 500, critical: 100, want: enums.StockLevelLow},
		{name: "at alert", quantity: 500, alert: 500, critical: 100, want: enums.StockLevelLow},
		{name: "above alert", quantity: 501, alert: 500, critical: 100, want: enums.StockLevelHigh},
		{name: "critical above alert masks low", quantity: 300, alert: 200, critical: 400, want: enums.StockLevelCritical},
		{name: "critical above alert still high", quantity: 401, alert: 200, critical: 400, want: enums.StockLevelHigh},
		{name: "zero thresholds", quantity: 0, alert: 0, critical: 0, want: enums.StockLevelCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.quantity, tt.alert, tt.critical))
		})
	}
}

func TestClassifyBandsForOrderedThresholds(t *testing.T) {
	for critical := 0; critical <= 6; critical++ {
		for alert := critical; alert <= 8; alert++ {
			for q := -1; q <= 10; q++ {
				got := Classify(q, alert, critical)
				switch {
				case q <= critical:
					assert.Equal(t, enums.StockLevelCritical, got, "q=%d a=%d c=%d", q, alert, critical)
				case q <= alert:
					assert.Equal(t, enums.StockLevelLow, got, "q=%d a=%d c=%d", q, alert, critical)
				default:
					assert.Equal(t, enums.StockLevelHigh, got, "q=%d a=%d c=%d", q, alert, critical)
				}
			}
		}
	}
}

func TestCounts(t *testing.T) {
	var counts Counts
	for _, level := range []enums.StockLevel{enums.StockLevelCritical, enums.StockLevelLow, enums.StockLevelLow, enums.StockLevelHigh} {
		counts.Add(level)
	}
	assert.Equal(t, Counts{Critical: 1, Low: 2, High: 1}, counts)
	assert.Equal(t, 3, counts.NeedsAttention())
}
