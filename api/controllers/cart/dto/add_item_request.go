package cartdto

import "github.com/angelmondragon/cartoptions-backend/pkg/types"

// AddItemFields are the fields the default body decoder understands.
type AddItemFields struct {
	ProductVariantCode string `json:"productVariantCode" validate:"required"`
	Quantity           int    `json:"quantity" validate:"min=1"`
}

// AddItemRequest is the add-to-cart payload. CustomerOptions is nil when the
// body carried no usable customerOptions collection.
type AddItemRequest struct {
	AddItemFields
	CustomerOptions types.CustomerOptions `json:"customerOptions"`
}
