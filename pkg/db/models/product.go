package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product is a catalog entry that variants and customer options hang off.
type Product struct {
	ID              uuid.UUID               `gorm:"column:id;type:uuid;primaryKey"`
	Code            string                  `gorm:"column:code;not null;uniqueIndex"`
	Name            string                  `gorm:"column:name;not null"`
	Enabled         bool                    `gorm:"column:enabled;not null;default:true"`
	Variants        []ProductVariant        `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CustomerOptions []ProductCustomerOption `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}

func (p *Product) BeforeCreate(*gorm.DB) error {
	ensureID(&p.ID)
	return nil
}

// CustomerOptionCodes lists the option codes configured on the product in position order.
func (p *Product) CustomerOptionCodes() []string {
	if p == nil {
		return nil
	}
	codes := make([]string, 0, len(p.CustomerOptions))
	for _, assignment := range p.CustomerOptions {
		codes = append(codes, assignment.CustomerOption.Code)
	}
	return codes
}

// FindCustomerOption returns the option configured under code.
func (p *Product) FindCustomerOption(code string) (*CustomerOption, bool) {
	if p == nil {
		return nil, false
	}
	for i := range p.CustomerOptions {
		if p.CustomerOptions[i].CustomerOption.Code == code {
			return &p.CustomerOptions[i].CustomerOption, true
		}
	}
	return nil, false
}

// ProductVariant is the purchasable unit referenced by add-to-cart requests.
type ProductVariant struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	ProductID  uuid.UUID `gorm:"column:product_id;type:uuid;not null;index"`
	Code       string    `gorm:"column:code;not null;uniqueIndex"`
	Name       string    `gorm:"column:name;not null"`
	PriceCents int64     `gorm:"column:price_cents;not null"`
	Enabled    bool      `gorm:"column:enabled;not null;default:true"`
	Product    *Product  `gorm:"foreignKey:ProductID"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (v *ProductVariant) BeforeCreate(*gorm.DB) error {
	ensureID(&v.ID)
	return nil
}
