package cart

import (
	cartdto "github.com/angelmondragon/cartoptions-backend/api/controllers/cart/dto"
	"github.com/angelmondragon/cartoptions-backend/internal/cart"
)

func toAddItemCommand(token string, payload cartdto.AddItemRequest) cart.AddItemCommand {
	return cart.AddItemCommand{
		CartToken:          token,
		ProductVariantCode: payload.ProductVariantCode,
		Quantity:           payload.Quantity,
		CustomerOptions:    payload.CustomerOptions,
	}
}
