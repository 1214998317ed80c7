package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/angelmondragon/cartoptions-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/cartoptions-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseAdder appends a new line item for the requested variant and recalculates
// the cart. It never persists; the service saves the returned cart.
type BaseAdder struct {
	carts     CartReader
	variants  variantResolver
	processor OrderProcessor
	maxItems  int
}

// NewBaseAdder wires the default add-item behaviour. maxItems <= 0 disables the limit.
func NewBaseAdder(carts CartReader, variants variantResolver, processor OrderProcessor, maxItems int) (*BaseAdder, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart reader required")
	}
	if variants == nil {
		return nil, fmt.Errorf("variant resolver required")
	}
	if processor == nil {
		return nil, fmt.Errorf("order processor required")
	}
	return &BaseAdder{
		carts:     carts,
		variants:  variants,
		processor: processor,
		maxItems:  maxItems,
	}, nil
}

// AddItem always creates a new line at the end of the cart, so the last item of
// the returned cart is the one produced by this call.
func (a *BaseAdder) AddItem(ctx context.Context, cmd AddItemCommand) (*models.CartRecord, error) {
	token := strings.TrimSpace(cmd.CartToken)
	if token == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart token is required")
	}
	if cmd.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	record, err := a.carts.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	if !record.Status.AcceptsItems() {
		return nil, pkgerrors.Newf(pkgerrors.CodeConflict, "cart is %s", record.Status)
	}
	if a.maxItems > 0 && len(record.Items) >= a.maxItems {
		return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "cart cannot hold more than %d items", a.maxItems)
	}

	variant, err := a.variants.ResolveVariant(ctx, cmd.ProductVariantCode)
	if err != nil {
		return nil, err
	}

	item := models.CartItem{
		ID:             uuid.New(),
		CartID:         record.ID,
		ProductID:      variant.ProductID,
		VariantID:      variant.ID,
		VariantCode:    variant.Code,
		ProductName:    variant.Product.Name,
		Position:       record.NextPosition(),
		Quantity:       cmd.Quantity,
		UnitPriceCents: variant.PriceCents,
		Product:        variant.Product,
	}
	record.Items = append(record.Items, item)

	if err := a.processor.Process(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}
