package enums

import "fmt"

// ProductCategory groups catalog products by packaging family.
type ProductCategory string

const (
	ProductCategoryStandard ProductCategory = "standard"
	ProductCategoryWindow   ProductCategory = "window"
	ProductCategorySpecial  ProductCategory = "special"
	ProductCategorySeasonal ProductCategory = "seasonal"
)

var validProductCategories = []ProductCategory{
	ProductCategoryStandard,
	ProductCategoryWindow,
	ProductCategorySpecial,
	ProductCategorySeasonal,
}

// String implements fmt.Stringer.
func (c ProductCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ProductCategory.
func (c ProductCategory) IsValid() bool {
	for _, candidate := range validProductCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseProductCategory converts raw input into a ProductCategory.
func ParseProductCategory(value string) (ProductCategory, error) {
	for _, candidate := range validProductCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product category %q", value)
}
