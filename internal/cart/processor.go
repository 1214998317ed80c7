package cart

import (
	"context"

	"github.com/angelmondragon/cartoptions-backend/pkg/db/models"
	"github.com/angelmondragon/cartoptions-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/cartoptions-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

// Processor recomputes option adjustments, line totals and cart totals.
type Processor struct{}

// NewProcessor returns the default order processor.
func NewProcessor() *Processor {
	return &Processor{}
}

// Process applies each selection's price to its line:
// fixed selections add their amount per unit, percent selections add a share of
// the unit price per unit, rounded half away from zero to whole cents.
func (p *Processor) Process(ctx context.Context, cart *models.CartRecord) error {
	if cart == nil {
		return pkgerrors.New(pkgerrors.CodeInternal, "cart is required")
	}

	var itemsTotal, adjustmentsTotal int64
	for i := range cart.Items {
		item := &cart.Items[i]
		if item.Quantity < 1 {
			return pkgerrors.Newf(pkgerrors.CodeValidation, "item %s has invalid quantity %d", item.VariantCode, item.Quantity)
		}

		perUnit := optionAdjustmentPerUnit(item)
		quantity := int64(item.Quantity)
		base := item.UnitPriceCents * quantity

		item.OptionAdjustmentCents = perUnit * quantity
		item.TotalCents = base + item.OptionAdjustmentCents

		itemsTotal += base
		adjustmentsTotal += item.OptionAdjustmentCents
	}

	cart.ItemsTotalCents = itemsTotal
	cart.AdjustmentsTotalCents = adjustmentsTotal
	cart.TotalCents = itemsTotal + adjustmentsTotal
	return nil
}

func optionAdjustmentPerUnit(item *models.CartItem) int64 {
	unit := decimal.NewFromInt(item.UnitPriceCents)
	var total int64
	for _, option := range item.Options {
		switch option.PriceType {
		case enums.OptionPriceTypePercent:
			total += unit.Mul(option.PercentPrice).Round(0).IntPart()
		default:
			total += option.FixedPriceCents
		}
	}
	return total
}
