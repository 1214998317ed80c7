package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CartItem is one variant-and-quantity line inside a CartRecord.
type CartItem struct {
	ID                    uuid.UUID        `gorm:"column:id;type:uuid;primaryKey"`
	CartID                uuid.UUID        `gorm:"column:cart_id;type:uuid;not null;index"`
	ProductID             uuid.UUID        `gorm:"column:product_id;type:uuid;not null"`
	VariantID             uuid.UUID        `gorm:"column:variant_id;type:uuid;not null"`
	VariantCode           string           `gorm:"column:variant_code;not null"`
	ProductName           string           `gorm:"column:product_name;not null"`
	Position              int              `gorm:"column:position;not null"`
	Quantity              int              `gorm:"column:quantity;not null"`
	UnitPriceCents        int64            `gorm:"column:unit_price_cents;not null"`
	OptionAdjustmentCents int64            `gorm:"column:option_adjustment_cents;not null;default:0"`
	TotalCents            int64            `gorm:"column:total_cents;not null;default:0"`
	Product               *Product         `gorm:"foreignKey:ProductID"`
	Options               []CartItemOption `gorm:"foreignKey:CartItemID;constraint:OnDelete:CASCADE"`
	CreatedAt             time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt             time.Time        `gorm:"column:updated_at;autoUpdateTime"`

	optionsChanged bool
}

func (i *CartItem) BeforeCreate(*gorm.DB) error {
	ensureID(&i.ID)
	return nil
}

// SetOptions replaces the full option selection list of the item.
func (i *CartItem) SetOptions(options []CartItemOption) {
	bound := make([]CartItemOption, len(options))
	copy(bound, options)
	for idx := range bound {
		bound[idx].CartItemID = i.ID
		bound[idx].Position = idx
	}
	i.Options = bound
	i.optionsChanged = true
}

// OptionsChanged reports whether SetOptions ran since the item was loaded or saved.
func (i *CartItem) OptionsChanged() bool {
	return i.optionsChanged
}

// MarkOptionsPersisted clears the pending option replacement flag.
func (i *CartItem) MarkOptionsPersisted() {
	i.optionsChanged = false
}

// IsNew reports whether the item has not been written yet.
func (i *CartItem) IsNew() bool {
	return i.CreatedAt.IsZero()
}
