package customeroptions

import (
	"errors"
	"fmt"

	pkgerrors "github.com/angelmondragon/cartoptions-backend/pkg/errors"
)

var (
	// ErrUnknownOption matches submissions naming an option the product does not define.
	ErrUnknownOption = errors.New("unknown customer option")
	// ErrInvalidOptionValue matches closed-vocabulary submissions that resolve to no defined value.
	ErrInvalidOptionValue = errors.New("invalid customer option value")
)

const (
	reasonUnknownOption = "unknown_option"
	reasonInvalidValue  = "invalid_value"
	reasonFactory       = "factory_error"
	reasonProcessor     = "processor_error"
)

// OptionError names the option code that failed validation. Its message is
// stable so clients can match on it.
type OptionError struct {
	Code string
	kind error
}

func (e *OptionError) Error() string {
	switch e.kind {
	case ErrUnknownOption:
		return fmt.Sprintf(`Customer option "%s" is not available for this product.`, e.Code)
	case ErrInvalidOptionValue:
		return fmt.Sprintf(`Invalid value for customer option "%s". Please provide a valid option value code.`, e.Code)
	default:
		return fmt.Sprintf("customer option %q rejected", e.Code)
	}
}

func (e *OptionError) Is(target error) bool {
	return target == e.kind
}

func (e *OptionError) reason() string {
	if e.kind == ErrUnknownOption {
		return reasonUnknownOption
	}
	return reasonInvalidValue
}

// validationError exposes an OptionError as a client input error carrying the
// canonical message.
func validationError(code string, kind error) error {
	optErr := &OptionError{Code: code, kind: kind}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, optErr, optErr.Error()).
		WithDetails(map[string]any{"option_code": code})
}
