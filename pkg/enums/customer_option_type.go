package enums

import (
	"fmt"
	"strings"
)

// CustomerOptionType determines how a submitted option value is resolved.
type CustomerOptionType string

const (
	CustomerOptionTypeSelect      CustomerOptionType = "select"
	CustomerOptionTypeMultiSelect CustomerOptionType = "multi_select"
	CustomerOptionTypeText        CustomerOptionType = "text"
	CustomerOptionTypeNumber      CustomerOptionType = "number"
	CustomerOptionTypeBoolean     CustomerOptionType = "boolean"
	CustomerOptionTypeDate        CustomerOptionType = "date"
	CustomerOptionTypeDateTime    CustomerOptionType = "datetime"
	CustomerOptionTypeFile        CustomerOptionType = "file"
)

var validCustomerOptionTypes = []CustomerOptionType{
	CustomerOptionTypeSelect,
	CustomerOptionTypeMultiSelect,
	CustomerOptionTypeText,
	CustomerOptionTypeNumber,
	CustomerOptionTypeBoolean,
	CustomerOptionTypeDate,
	CustomerOptionTypeDateTime,
	CustomerOptionTypeFile,
}

// String implements fmt.Stringer.
func (t CustomerOptionType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known CustomerOptionType.
func (t CustomerOptionType) IsValid() bool {
	for _, candidate := range validCustomerOptionTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// IsClosedVocabulary reports whether submitted values must match a defined option value.
func (t CustomerOptionType) IsClosedVocabulary() bool {
	return t == CustomerOptionTypeSelect || t == CustomerOptionTypeMultiSelect
}

// ParseCustomerOptionType converts raw input into a CustomerOptionType.
func ParseCustomerOptionType(value string) (CustomerOptionType, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validCustomerOptionTypes {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid customer option type %q", value)
}
