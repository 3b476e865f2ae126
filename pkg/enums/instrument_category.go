package enums

import "fmt"

// InstrumentCategory represents the catalog categories carried over from the
// legacy store schema; wire values stay in Portuguese for compatibility.
type InstrumentCategory string

const (
	InstrumentCategoryStrings     InstrumentCategory = "cordas"
	InstrumentCategoryWind        InstrumentCategory = "sopro"
	InstrumentCategoryPercussion  InstrumentCategory = "percussao"
	InstrumentCategoryKeyboards   InstrumentCategory = "teclados"
	InstrumentCategoryAccessories InstrumentCategory = "acessorios"
)

var validInstrumentCategories = []InstrumentCategory{
	InstrumentCategoryStrings,
	InstrumentCategoryWind,
	InstrumentCategoryPercussion,
	InstrumentCategoryKeyboards,
	InstrumentCategoryAccessories,
}

// String implements fmt.Stringer.
func (c InstrumentCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known InstrumentCategory.
func (c InstrumentCategory) IsValid() bool {
	for _, candidate := range validInstrumentCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseInstrumentCategory converts raw input into an InstrumentCategory.
func ParseInstrumentCategory(value string) (InstrumentCategory, error) {
	for _, candidate := range validInstrumentCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid instrument category %q", value)
}
