package cart

import (
	"context"

	"github.com/angelmondragon/cartoptions-backend/pkg/db/models"
	"github.com/angelmondragon/cartoptions-backend/pkg/types"
)

// AddItemCommand asks for one variant to be added to the cart identified by CartToken.
// CustomerOptions is nil when the request carried none.
type AddItemCommand struct {
	CartToken          string
	ProductVariantCode string
	Quantity           int
	CustomerOptions    types.CustomerOptions
}

// ItemAdder adds a line item to a cart and returns the mutated, unsaved cart.
type ItemAdder interface {
	AddItem(ctx context.Context, cmd AddItemCommand) (*models.CartRecord, error)
}

// ItemAdderFunc adapts a function to ItemAdder.
type ItemAdderFunc func(ctx context.Context, cmd AddItemCommand) (*models.CartRecord, error)

func (f ItemAdderFunc) AddItem(ctx context.Context, cmd AddItemCommand) (*models.CartRecord, error) {
	return f(ctx, cmd)
}

// OrderProcessor recomputes line and cart totals.
type OrderProcessor interface {
	Process(ctx context.Context, cart *models.CartRecord) error
}
