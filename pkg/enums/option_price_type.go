package enums

import "fmt"

// OptionPriceType describes how an option value adjusts the line price.
type OptionPriceType string

const (
	OptionPriceTypeFixed   OptionPriceType = "fixed"
	OptionPriceTypePercent OptionPriceType = "percent"
)

var validOptionPriceTypes = []OptionPriceType{
	OptionPriceTypeFixed,
	OptionPriceTypePercent,
}

// String implements fmt.Stringer.
func (p OptionPriceType) String() string {
	return string(p)
}

// IsValid reports whether the value is a known OptionPriceType.
func (p OptionPriceType) IsValid() bool {
	for _, candidate := range validOptionPriceTypes {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseOptionPriceType converts raw input into an OptionPriceType.
func ParseOptionPriceType(value string) (OptionPriceType, error) {
	for _, candidate := range validOptionPriceTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid option price type %q", value)
}
