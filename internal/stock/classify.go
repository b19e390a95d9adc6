// Package stock classifies inventory quantities against alert and critical thresholds.
package stock

import "github.com/eonite/portal-backend/pkg/enums"

// Classify maps a quantity to a stock level. The critical check runs first, so
// when criticalThreshold exceeds alertThreshold the low band is unreachable.
func Classify(quantity, alertThreshold, criticalThreshold int) enums.StockLevel {
	switch {
	case quantity <= criticalThreshold:
		return enums.StockLevelCritical
	case quantity <= alertThreshold:
		return enums.StockLevelLow
	default:
		return enums.StockLevelHigh
	}
}

// Counts tallies classified records per level.
type Counts struct {
	Critical int `json:"critical"`
	Low      int `json:"low"`
	High     int `json:"high"`
}

// Add records one classified level.
func (c *Counts) Add(level enums.StockLevel) {
	switch level {
	case enums.StockLevelCritical:
		c.Critical++
	case enums.StockLevelLow:
		c.Low++
	case enums.StockLevelHigh:
		c.High++
	}
}

// NeedsAttention is the number of records at low or critical level.
func (c Counts) NeedsAttention() int {
	return c.Critical + c.Low
}
