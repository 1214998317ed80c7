package customeroptions

import "github.com/angelmondragon/cartoptions-backend/pkg/types"

// Flatten turns a submitted value into a flat ordered list of scalars. A scalar
// becomes a one-element list. Nested sequences are replaced in place by their
// elements, one level at a time, until no element is a sequence.
func Flatten(value types.OptionValue) []types.OptionValue {
	if !value.IsSequence() {
		return []types.OptionValue{value}
	}

	values := append([]types.OptionValue(nil), value.Items()...)
	for i := 0; i < len(values); {
		if !values[i].IsSequence() {
			i++
			continue
		}
		nested := values[i].Items()
		expanded := make([]types.OptionValue, 0, len(values)-1+len(nested))
		expanded = append(expanded, values[:i]...)
		expanded = append(expanded, nested...)
		expanded = append(expanded, values[i+1:]...)
		values = expanded
	}
	return values
}
