// Package catalogtest seeds an in-memory catalog for repository and handler tests.
package catalogtest

import (
	"fmt"
	"testing"

	"github.com/angelmondragon/cartoptions-backend/pkg/db/models"
	"github.com/angelmondragon/cartoptions-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	MugVariantCode   = "MUG-RED"
	PlainVariantCode = "PLAIN-1"
	MugPriceCents    = 1000
	PlainPriceCents  = 500
)

// Fixture exposes the seeded catalog rows.
type Fixture struct {
	Mug        models.Product
	MugVariant models.ProductVariant
	Plain      models.Product
	Color      models.CustomerOption
	Toppings   models.CustomerOption
	Engraving  models.CustomerOption
}

// OpenDB returns an isolated in-memory sqlite database with the schema applied.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("failed to migrate sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return conn
}

// Seed inserts a mug with color, toppings and engraving options plus a plain
// product without options.
func Seed(t *testing.T, db *gorm.DB) Fixture {
	t.Helper()

	fx := Fixture{
		Color: models.CustomerOption{
			Code: "color",
			Name: "Color",
			Type: enums.CustomerOptionTypeSelect,
			Values: []models.CustomerOptionValue{
				{Code: "red", Name: "Red", Position: 0, PriceType: enums.OptionPriceTypeFixed, PriceCents: 200},
				{Code: "blue", Name: "Blue", Position: 1, PriceType: enums.OptionPriceTypeFixed},
			},
		},
		Toppings: models.CustomerOption{
			Code: "toppings",
			Name: "Toppings",
			Type: enums.CustomerOptionTypeMultiSelect,
			Values: []models.CustomerOptionValue{
				{Code: "cheese", Name: "Cheese", Position: 0, PriceType: enums.OptionPriceTypeFixed, PriceCents: 100},
				{Code: "bacon", Name: "Bacon", Position: 1, PriceType: enums.OptionPriceTypeFixed, PriceCents: 150},
				{Code: "onions", Name: "Onions", Position: 2, PriceType: enums.OptionPriceTypePercent, PricePercent: decimal.RequireFromString("0.05")},
			},
		},
		Engraving: models.CustomerOption{
			Code: "engraving",
			Name: "Engraving",
			Type: enums.CustomerOptionTypeText,
		},
		Mug: models.Product{
			Code:    "MUG",
			Name:    "Mug",
			Enabled: true,
			Variants: []models.ProductVariant{
				{Code: MugVariantCode, Name: "Red mug", PriceCents: MugPriceCents, Enabled: true},
			},
		},
		Plain: models.Product{
			Code:    "PLAIN",
			Name:    "Plain tee",
			Enabled: true,
			Variants: []models.ProductVariant{
				{Code: PlainVariantCode, Name: "Plain tee", PriceCents: PlainPriceCents, Enabled: true},
			},
		},
	}

	for _, option := range []*models.CustomerOption{&fx.Color, &fx.Toppings, &fx.Engraving} {
		if err := db.Create(option).Error; err != nil {
			t.Fatalf("create option %s: %v", option.Code, err)
		}
	}
	for _, product := range []*models.Product{&fx.Mug, &fx.Plain} {
		if err := db.Create(product).Error; err != nil {
			t.Fatalf("create product %s: %v", product.Code, err)
		}
	}
	for position, option := range []models.CustomerOption{fx.Color, fx.Toppings, fx.Engraving} {
		assignment := models.ProductCustomerOption{
			ProductID:        fx.Mug.ID,
			CustomerOptionID: option.ID,
			Position:         position,
		}
		if err := db.Create(&assignment).Error; err != nil {
			t.Fatalf("assign option %s: %v", option.Code, err)
		}
	}
	fx.MugVariant = fx.Mug.Variants[0]
	return fx
}
