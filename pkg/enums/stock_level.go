package enums

import "fmt"

// StockLevel is the tri-state classification of an inventory quantity.
type StockLevel string

const (
	StockLevelCritical StockLevel = "critical"
	StockLevelLow      StockLevel = "low"
	StockLevelHigh     StockLevel = "high"
)

var validStockLevels = []StockLevel{
	StockLevelCritical,
	StockLevelLow,
	StockLevelHigh,
}

// String implements fmt.Stringer.
func (l StockLevel) String() string {
	return string(l)
}

// IsValid reports whether the value is a known StockLevel.
func (l StockLevel) IsValid() bool {
	for _, candidate := range validStockLevels {
		if candidate == l {
			return true
		}
	}
	return false
}

// ParseStockLevel converts raw input into a StockLevel.
func ParseStockLevel(value string) (StockLevel, error) {
	for _, candidate := range validStockLevels {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid stock level %q", value)
}
