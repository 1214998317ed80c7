package cart

import (
	"context"
	"testing"

	"github.com/angelmondragon/cartoptions-backend/pkg/db/models"
	"github.com/angelmondragon/cartoptions-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

func TestProcessorAppliesFixedAndPercentAdjustments(t *testing.T) {
	cart := &models.CartRecord{
		Items: []models.CartItem{
			{
				VariantCode:    "MUG-RED",
				Quantity:       2,
				UnitPriceCents: 1000,
				Options: []models.CartItemOption{
					{PriceType: enums.OptionPriceTypeFixed, FixedPriceCents: 100},
					{PriceType: enums.OptionPriceTypePercent, PercentPrice: decimal.RequireFromString("0.05")},
				},
			},
			{
				VariantCode:    "PLAIN-1",
				Quantity:       1,
				UnitPriceCents: 333,
				Options: []models.CartItemOption{
					{PriceType: enums.OptionPriceTypePercent, PercentPrice: decimal.RequireFromString("0.015")},
				},
			},
		},
	}

	if err := NewProcessor().Process(context.Background(), cart); err != nil {
		t.Fatalf("Process: %v", err)
	}

	mug := cart.Items[0]
	if mug.OptionAdjustmentCents != 300 {
		t.Fatalf("expected (100 + 50) * 2 = 300 adjustment, got %d", mug.OptionAdjustmentCents)
	}
	if mug.TotalCents != 2300 {
		t.Fatalf("expected mug total 2300, got %d", mug.TotalCents)
	}

	plain := cart.Items[1]
	// 333 * 0.015 = 4.995 rounds to 5
	if plain.OptionAdjustmentCents != 5 || plain.TotalCents != 338 {
		t.Fatalf("unexpected plain line adjustment=%d total=%d", plain.OptionAdjustmentCents, plain.TotalCents)
	}

	if cart.ItemsTotalCents != 2333 || cart.AdjustmentsTotalCents != 305 || cart.TotalCents != 2638 {
		t.Fatalf("unexpected cart totals items=%d adjustments=%d total=%d",
			cart.ItemsTotalCents, cart.AdjustmentsTotalCents, cart.TotalCents)
	}
}

func TestProcessorResetsAdjustmentWhenOptionsCleared(t *testing.T) {
	cart := &models.CartRecord{
		Items: []models.CartItem{{Quantity: 1, UnitPriceCents: 500, OptionAdjustmentCents: 90, TotalCents: 590}},
	}
	if err := NewProcessor().Process(context.Background(), cart); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if cart.Items[0].OptionAdjustmentCents != 0 || cart.TotalCents != 500 {
		t.Fatalf("expected stale adjustment to be cleared, got %+v", cart.Items[0])
	}
}

func TestProcessorRejectsInvalidInput(t *testing.T) {
	if err := NewProcessor().Process(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil cart")
	}
	cart := &models.CartRecord{Items: []models.CartItem{{Quantity: 0}}}
	if err := NewProcessor().Process(context.Background(), cart); err == nil {
		t.Fatalf("expected error for zero quantity")
	}
}
