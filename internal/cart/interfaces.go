package cart

import (
	"context"

	"github.com/angelmondragon/cartoptions-backend/pkg/db/models"
	"gorm.io/gorm"
)

// CartReader loads carts by their public token.
type CartReader interface {
	FindByToken(ctx context.Context, token string) (*models.CartRecord, error)
}

// CartRepository defines the persistence surface required by the cart service.
type CartRepository interface {
	CartReader
	WithTx(tx *gorm.DB) CartRepository
	Create(ctx context.Context, record *models.CartRecord) error
	SaveCart(ctx context.Context, record *models.CartRecord) error
}

type variantResolver interface {
	ResolveVariant(ctx context.Context, code string) (*models.ProductVariant, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}
