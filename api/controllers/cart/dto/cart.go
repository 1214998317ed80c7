package cartdto

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/cartoptions-backend/pkg/enums"
)

// Cart is the cart snapshot exposed through the API.
type Cart struct {
	ID                    uuid.UUID        `json:"id"`
	Token                 string           `json:"token"`
	Status                enums.CartStatus `json:"status"`
	Currency              string           `json:"currency"`
	ItemsTotalCents       int64            `json:"items_total_cents"`
	AdjustmentsTotalCents int64            `json:"adjustments_total_cents"`
	TotalCents            int64            `json:"total_cents"`
	Items                 []CartItem       `json:"items"`
	CreatedAt             time.Time        `json:"created_at"`
	UpdatedAt             time.Time        `json:"updated_at"`
}

// CartItem is one line of the cart with its option selections.
type CartItem struct {
	ID                    uuid.UUID        `json:"id"`
	ProductID             uuid.UUID        `json:"product_id"`
	VariantCode           string           `json:"variant_code"`
	ProductName           string           `json:"product_name"`
	Quantity              int              `json:"quantity"`
	UnitPriceCents        int64            `json:"unit_price_cents"`
	OptionAdjustmentCents int64            `json:"option_adjustment_cents"`
	TotalCents            int64            `json:"total_cents"`
	CustomerOptions       []CartItemOption `json:"customer_options"`
}

// CartItemOption is a single customer option selection on a line.
type CartItemOption struct {
	Code            string  `json:"code"`
	Name            string  `json:"name"`
	Type            string  `json:"type"`
	Value           string  `json:"value"`
	ValueCode       *string `json:"value_code,omitempty"`
	ValueName       *string `json:"value_name,omitempty"`
	PriceType       string  `json:"price_type"`
	FixedPriceCents int64   `json:"fixed_price_cents"`
	PercentPrice    string  `json:"percent_price"`
}
