package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/cartoptions-backend/pkg/enums"
)

// CustomerOption defines a configurable attribute buyers fill in per line item.
type CustomerOption struct {
	ID        uuid.UUID                `gorm:"column:id;type:uuid;primaryKey"`
	Code      string                   `gorm:"column:code;not null;uniqueIndex"`
	Name      string                   `gorm:"column:name;not null"`
	Type      enums.CustomerOptionType `gorm:"column:type;type:text;not null"`
	Values    []CustomerOptionValue    `gorm:"foreignKey:CustomerOptionID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time                `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time                `gorm:"column:updated_at;autoUpdateTime"`
}

func (o *CustomerOption) BeforeCreate(*gorm.DB) error {
	ensureID(&o.ID)
	return nil
}

// FindValue returns the defined value with the given code.
func (o *CustomerOption) FindValue(code string) (*CustomerOptionValue, bool) {
	for i := range o.Values {
		if o.Values[i].Code == code {
			return &o.Values[i], true
		}
	}
	return nil, false
}

// CustomerOptionValue is one entry of a select or multi_select vocabulary.
type CustomerOptionValue struct {
	ID               uuid.UUID             `gorm:"column:id;type:uuid;primaryKey"`
	CustomerOptionID uuid.UUID             `gorm:"column:customer_option_id;type:uuid;not null;uniqueIndex:ux_customer_option_values_code,priority:1"`
	Code             string                `gorm:"column:code;not null;uniqueIndex:ux_customer_option_values_code,priority:2"`
	Name             string                `gorm:"column:name;not null"`
	Position         int                   `gorm:"column:position;not null;default:0"`
	PriceType        enums.OptionPriceType `gorm:"column:price_type;type:text;not null;default:'fixed'"`
	PriceCents       int64                 `gorm:"column:price_cents;not null;default:0"`
	PricePercent     decimal.Decimal       `gorm:"column:price_percent;type:numeric(7,4);not null;default:0"`
	CreatedAt        time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

func (v *CustomerOptionValue) BeforeCreate(*gorm.DB) error {
	ensureID(&v.ID)
	return nil
}

// ProductCustomerOption assigns an option to a product at a position.
type ProductCustomerOption struct {
	ProductID        uuid.UUID      `gorm:"column:product_id;type:uuid;primaryKey"`
	CustomerOptionID uuid.UUID      `gorm:"column:customer_option_id;type:uuid;primaryKey"`
	Position         int            `gorm:"column:position;not null;default:0"`
	CustomerOption   CustomerOption `gorm:"foreignKey:CustomerOptionID"`
}
