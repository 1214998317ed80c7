package catalog

import (
	"context"

	"github.com/angelmondragon/cartoptions-backend/internal/repo"
	"github.com/angelmondragon/cartoptions-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository reads products, variants and customer option definitions.
type Repository struct {
	repo.Base
}

// NewRepository builds a catalog repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{Base: r.Base.WithTx(tx)}
}

// FindVariantByCode loads a variant with its product and the product's
// customer options, values included, in position order.
func (r *Repository) FindVariantByCode(ctx context.Context, code string) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	err := r.DB(ctx).
		Preload("Product").
		Preload("Product.CustomerOptions", byPosition).
		Preload("Product.CustomerOptions.CustomerOption").
		Preload("Product.CustomerOptions.CustomerOption.Values", byPosition).
		Where("code = ?", code).
		First(&variant).Error
	if err != nil {
		return nil, err
	}
	return &variant, nil
}

func byPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}
