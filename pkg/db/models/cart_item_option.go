package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/cartoptions-backend/pkg/enums"
)

// CartItemOption records one submitted value of one customer option on a line item.
// Names and prices are snapshots taken when the selection was made.
type CartItemOption struct {
	ID                      uuid.UUID                `gorm:"column:id;type:uuid;primaryKey"`
	CartItemID              uuid.UUID                `gorm:"column:cart_item_id;type:uuid;not null;index"`
	Position                int                      `gorm:"column:position;not null"`
	CustomerOptionID        uuid.UUID                `gorm:"column:customer_option_id;type:uuid;not null"`
	CustomerOptionCode      string                   `gorm:"column:customer_option_code;not null"`
	CustomerOptionType      enums.CustomerOptionType `gorm:"column:customer_option_type;type:text;not null"`
	CustomerOptionName      string                   `gorm:"column:customer_option_name;not null"`
	CustomerOptionValueID   *uuid.UUID               `gorm:"column:customer_option_value_id;type:uuid"`
	CustomerOptionValueCode *string                  `gorm:"column:customer_option_value_code"`
	CustomerOptionValueName *string                  `gorm:"column:customer_option_value_name"`
	OptionValue             string                   `gorm:"column:option_value;not null"`
	PriceType               enums.OptionPriceType    `gorm:"column:price_type;type:text;not null;default:'fixed'"`
	FixedPriceCents         int64                    `gorm:"column:fixed_price_cents;not null;default:0"`
	PercentPrice            decimal.Decimal          `gorm:"column:percent_price;type:numeric(7,4);not null;default:0"`
	CreatedAt               time.Time                `gorm:"column:created_at;autoCreateTime"`
}

func (o *CartItemOption) BeforeCreate(*gorm.DB) error {
	ensureID(&o.ID)
	return nil
}

// HasResolvedValue reports whether a defined option value was matched.
func (o CartItemOption) HasResolvedValue() bool {
	return o.CustomerOptionValueID != nil
}
