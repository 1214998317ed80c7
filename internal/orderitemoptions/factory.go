package orderitemoptions

import (
	"context"

	"github.com/angelmondragon/cartoptions-backend/pkg/db/models"
	"github.com/angelmondragon/cartoptions-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/cartoptions-backend/pkg/errors"
)

// Factory builds option selections for a cart line from raw submitted strings.
type Factory struct{}

// NewFactory returns a selection factory.
func NewFactory() *Factory {
	return &Factory{}
}

// CreateNewFromStrings resolves code against the line's product and snapshots
// the option onto a new selection holding value verbatim. For select and
// multi_select options the matching defined value is resolved by code; when
// none matches the selection is returned without a resolved value.
func (f *Factory) CreateNewFromStrings(ctx context.Context, item *models.CartItem, code, value string) (models.CartItemOption, error) {
	if item == nil {
		return models.CartItemOption{}, pkgerrors.New(pkgerrors.CodeInternal, "cart item is required")
	}
	if item.Product == nil {
		return models.CartItemOption{}, pkgerrors.New(pkgerrors.CodeInternal, "cart item has no product loaded")
	}

	option, ok := item.Product.FindCustomerOption(code)
	if !ok {
		return models.CartItemOption{}, pkgerrors.Newf(pkgerrors.CodeValidation, "customer option %q is not configured for product %q", code, item.Product.Code)
	}

	selection := models.CartItemOption{
		CartItemID:         item.ID,
		CustomerOptionID:   option.ID,
		CustomerOptionCode: option.Code,
		CustomerOptionType: option.Type,
		CustomerOptionName: option.Name,
		OptionValue:        value,
		PriceType:          enums.OptionPriceTypeFixed,
	}

	if !option.Type.IsClosedVocabulary() {
		return selection, nil
	}

	defined, ok := option.FindValue(value)
	if !ok {
		return selection, nil
	}

	valueID := defined.ID
	valueCode := defined.Code
	valueName := defined.Name
	selection.CustomerOptionValueID = &valueID
	selection.CustomerOptionValueCode = &valueCode
	selection.CustomerOptionValueName = &valueName
	selection.PriceType = defined.PriceType
	selection.FixedPriceCents = defined.PriceCents
	selection.PercentPrice = defined.PricePercent
	return selection, nil
}
