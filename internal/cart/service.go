package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/angelmondragon/cartoptions-backend/pkg/db"
	"github.com/angelmondragon/cartoptions-backend/pkg/db/models"
	"github.com/angelmondragon/cartoptions-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/cartoptions-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const tokenAttempts = 3

// Service exposes cart operations to the HTTP layer.
type Service interface {
	CreateCart(ctx context.Context) (*models.CartRecord, error)
	GetCart(ctx context.Context, token string) (*models.CartRecord, error)
	AddItem(ctx context.Context, cmd AddItemCommand) (*models.CartRecord, error)
}

type service struct {
	repo     CartRepository
	tx       txRunner
	adder    ItemAdder
	currency enums.Currency
	newToken func() string
}

// NewService builds a cart service. adder is the full add-item chain, usually the
// base adder wrapped by decorators; its result is saved in a single transaction.
func NewService(repo CartRepository, tx txRunner, adder ItemAdder, currency enums.Currency) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if adder == nil {
		return nil, fmt.Errorf("item adder required")
	}
	if !currency.IsValid() {
		return nil, fmt.Errorf("unsupported currency %q", currency)
	}
	return &service{
		repo:     repo,
		tx:       tx,
		adder:    adder,
		currency: currency,
		newToken: newCartToken,
	}, nil
}

func newCartToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// CreateCart opens an empty cart under a fresh token.
func (s *service) CreateCart(ctx context.Context) (*models.CartRecord, error) {
	var lastErr error
	for attempt := 0; attempt < tokenAttempts; attempt++ {
		record := &models.CartRecord{
			Token:    s.newToken(),
			Status:   enums.CartStatusOpen,
			Currency: s.currency,
		}
		err := s.repo.Create(ctx, record)
		if err == nil {
			return record, nil
		}
		if !db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create cart")
		}
		lastErr = err
	}
	return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, lastErr, "could not allocate a cart token")
}

// GetCart loads a cart with its items and option selections.
func (s *service) GetCart(ctx context.Context, token string) (*models.CartRecord, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart token is required")
	}
	record, err := s.repo.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	return record, nil
}

// AddItem runs the add-item chain and persists the resulting cart atomically.
// Nothing is written when any stage of the chain fails.
func (s *service) AddItem(ctx context.Context, cmd AddItemCommand) (*models.CartRecord, error) {
	record, err := s.adder.AddItem(ctx, cmd)
	if err != nil {
		return nil, err
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).SaveCart(ctx, record)
	})
	if err != nil {
		if errors.Is(err, ErrStaleCart) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "cart was updated by another request, retry")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}
	return record, nil
}
