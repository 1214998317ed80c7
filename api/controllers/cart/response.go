package cart

import (
	cartdto "github.com/angelmondragon/cartoptions-backend/api/controllers/cart/dto"
	"github.com/angelmondragon/cartoptions-backend/pkg/db/models"
)

func newCart(record *models.CartRecord) cartdto.Cart {
	items := make([]cartdto.CartItem, 0, len(record.Items))
	for _, item := range record.Items {
		items = append(items, newCartItem(item))
	}

	return cartdto.Cart{
		ID:                    record.ID,
		Token:                 record.Token,
		Status:                record.Status,
		Currency:              string(record.Currency),
		ItemsTotalCents:       record.ItemsTotalCents,
		AdjustmentsTotalCents: record.AdjustmentsTotalCents,
		TotalCents:            record.TotalCents,
		Items:                 items,
		CreatedAt:             record.CreatedAt,
		UpdatedAt:             record.UpdatedAt,
	}
}

func newCartItem(item models.CartItem) cartdto.CartItem {
	options := make([]cartdto.CartItemOption, 0, len(item.Options))
	for _, opt := range item.Options {
		options = append(options, cartdto.CartItemOption{
			Code:            opt.CustomerOptionCode,
			Name:            opt.CustomerOptionName,
			Type:            opt.CustomerOptionType.String(),
			Value:           opt.OptionValue,
			ValueCode:       opt.CustomerOptionValueCode,
			ValueName:       opt.CustomerOptionValueName,
			PriceType:       opt.PriceType.String(),
			FixedPriceCents: opt.FixedPriceCents,
			PercentPrice:    opt.PercentPrice.String(),
		})
	}

	return cartdto.CartItem{
		ID:                    item.ID,
		ProductID:             item.ProductID,
		VariantCode:           item.VariantCode,
		ProductName:           item.ProductName,
		Quantity:              item.Quantity,
		UnitPriceCents:        item.UnitPriceCents,
		OptionAdjustmentCents: item.OptionAdjustmentCents,
		TotalCents:            item.TotalCents,
		CustomerOptions:       options,
	}
}
