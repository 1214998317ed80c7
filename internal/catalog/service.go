package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/angelmondragon/cartoptions-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/cartoptions-backend/pkg/errors"
	"gorm.io/gorm"
)

type variantFinder interface {
	FindVariantByCode(ctx context.Context, code string) (*models.ProductVariant, error)
}

// Service resolves purchasable variants for the cart.
type Service interface {
	ResolveVariant(ctx context.Context, code string) (*models.ProductVariant, error)
}

type service struct {
	finder variantFinder
}

// NewService builds a catalog service over the provided finder.
func NewService(finder variantFinder) (Service, error) {
	if finder == nil {
		return nil, fmt.Errorf("variant finder required")
	}
	return &service{finder: finder}, nil
}

// ResolveVariant returns the enabled variant with its product and option definitions.
func (s *service) ResolveVariant(ctx context.Context, code string) (*models.ProductVariant, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product variant code is required")
	}

	variant, err := s.finder.FindVariantByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product variant not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product variant")
	}
	if !variant.Enabled || variant.Product == nil || !variant.Product.Enabled {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product variant is not available")
	}
	return variant, nil
}
