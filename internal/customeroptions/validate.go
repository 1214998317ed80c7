package customeroptions

import (
	"github.com/angelmondragon/cartoptions-backend/pkg/db/models"
	"github.com/angelmondragon/cartoptions-backend/pkg/types"
)

// ValidateCodes checks every submitted code against the product's option set
// and reports the first unknown code in submission order.
func ValidateCodes(submitted types.CustomerOptions, product *models.Product) error {
	defined := make(map[string]struct{})
	for _, code := range product.CustomerOptionCodes() {
		defined[code] = struct{}{}
	}
	for _, code := range submitted.Codes() {
		if _, ok := defined[code]; !ok {
			return validationError(code, ErrUnknownOption)
		}
	}
	return nil
}
