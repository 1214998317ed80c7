package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/cartoptions-backend/pkg/enums"
)

// CartRecord is a token-addressed cart. Version guards concurrent writers.
type CartRecord struct {
	ID                    uuid.UUID        `gorm:"column:id;type:uuid;primaryKey"`
	Token                 string           `gorm:"column:token;not null;uniqueIndex"`
	Status                enums.CartStatus `gorm:"column:status;type:text;not null;default:'open'"`
	Currency              enums.Currency   `gorm:"column:currency;type:text;not null;default:'USD'"`
	Version               int              `gorm:"column:version;not null;default:0"`
	ItemsTotalCents       int64            `gorm:"column:items_total_cents;not null;default:0"`
	AdjustmentsTotalCents int64            `gorm:"column:adjustments_total_cents;not null;default:0"`
	TotalCents            int64            `gorm:"column:total_cents;not null;default:0"`
	Items                 []CartItem       `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt             time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt             time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

func (c *CartRecord) BeforeCreate(*gorm.DB) error {
	ensureID(&c.ID)
	return nil
}

// LastItem returns the most recently added line item, or nil for an empty cart.
func (c *CartRecord) LastItem() *CartItem {
	if c == nil || len(c.Items) == 0 {
		return nil
	}
	return &c.Items[len(c.Items)-1]
}

// NextPosition returns the position a newly appended item should take.
func (c *CartRecord) NextPosition() int {
	next := 0
	for _, item := range c.Items {
		if item.Position >= next {
			next = item.Position + 1
		}
	}
	return next
}
