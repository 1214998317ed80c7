package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/angelmondragon/cartoptions-backend/internal/catalog"
	"github.com/angelmondragon/cartoptions-backend/internal/catalog/catalogtest"
	"github.com/angelmondragon/cartoptions-backend/pkg/db/models"
	"github.com/angelmondragon/cartoptions-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/cartoptions-backend/pkg/errors"
	"gorm.io/gorm"
)

type gormTxRunner struct {
	db *gorm.DB
}

func (r gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func newTestService(t *testing.T, db *gorm.DB, wrap func(ItemAdder) ItemAdder) Service {
	t.Helper()
	repo := NewRepository(db)
	catalogSvc, err := catalog.NewService(catalog.NewRepository(db))
	if err != nil {
		t.Fatalf("catalog service: %v", err)
	}
	base, err := NewBaseAdder(repo, catalogSvc, NewProcessor(), 10)
	if err != nil {
		t.Fatalf("base adder: %v", err)
	}
	var adder ItemAdder = base
	if wrap != nil {
		adder = wrap(base)
	}
	svc, err := NewService(repo, gormTxRunner{db: db}, adder, enums.CurrencyUSD)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestServiceCreateAddAndGet(t *testing.T) {
	db := catalogtest.OpenDB(t)
	catalogtest.Seed(t, db)
	svc := newTestService(t, db, nil)
	ctx := context.Background()

	created, err := svc.CreateCart(ctx)
	if err != nil {
		t.Fatalf("CreateCart: %v", err)
	}
	if created.Token == "" || created.Status != enums.CartStatusOpen || created.Currency != enums.CurrencyUSD {
		t.Fatalf("unexpected cart %+v", created)
	}

	for i := 0; i < 2; i++ {
		if _, err := svc.AddItem(ctx, AddItemCommand{CartToken: created.Token, ProductVariantCode: catalogtest.PlainVariantCode, Quantity: 2}); err != nil {
			t.Fatalf("AddItem %d: %v", i, err)
		}
	}

	loaded, err := svc.GetCart(ctx, created.Token)
	if err != nil {
		t.Fatalf("GetCart: %v", err)
	}
	if len(loaded.Items) != 2 {
		t.Fatalf("expected two lines, got %d", len(loaded.Items))
	}
	if loaded.Items[0].Position != 0 || loaded.Items[1].Position != 1 {
		t.Fatalf("expected ordered positions, got %d,%d", loaded.Items[0].Position, loaded.Items[1].Position)
	}
	if loaded.TotalCents != 4*catalogtest.PlainPriceCents {
		t.Fatalf("expected total %d got %d", 4*catalogtest.PlainPriceCents, loaded.TotalCents)
	}
	if loaded.Version != 2 {
		t.Fatalf("expected version 2 after two saves, got %d", loaded.Version)
	}
}

func TestServiceAddItemFailureWritesNothing(t *testing.T) {
	db := catalogtest.OpenDB(t)
	catalogtest.Seed(t, db)
	rejection := pkgerrors.New(pkgerrors.CodeValidation, "rejected")
	svc := newTestService(t, db, func(next ItemAdder) ItemAdder {
		return ItemAdderFunc(func(ctx context.Context, cmd AddItemCommand) (*models.CartRecord, error) {
			if _, err := next.AddItem(ctx, cmd); err != nil {
				return nil, err
			}
			return nil, rejection
		})
	})
	ctx := context.Background()

	created, err := svc.CreateCart(ctx)
	if err != nil {
		t.Fatalf("CreateCart: %v", err)
	}
	_, err = svc.AddItem(ctx, AddItemCommand{CartToken: created.Token, ProductVariantCode: catalogtest.MugVariantCode, Quantity: 1})
	if !errors.Is(err, rejection) {
		t.Fatalf("expected decorator error to propagate unchanged, got %v", err)
	}

	var count int64
	if err := db.Model(&models.CartItem{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no persisted items, got %d", count)
	}
}

func TestServiceGetCartErrors(t *testing.T) {
	db := catalogtest.OpenDB(t)
	svc := newTestService(t, db, nil)

	if _, err := svc.GetCart(context.Background(), " "); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := svc.GetCart(context.Background(), "missing"); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

type conflictingRepo struct {
	CartRepository
	creates int
}

func (r *conflictingRepo) Create(ctx context.Context, record *models.CartRecord) error {
	r.creates++
	if r.creates == 1 {
		return errors.New(`ERROR: duplicate key value violates unique constraint "idx_cart_records_token"`)
	}
	return nil
}

func TestServiceCreateCartRetriesTokenCollision(t *testing.T) {
	repo := &conflictingRepo{}
	svc, err := NewService(repo, gormTxRunner{}, ItemAdderFunc(nil), enums.CurrencyEUR)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	record, err := svc.CreateCart(context.Background())
	if err != nil {
		t.Fatalf("CreateCart: %v", err)
	}
	if repo.creates != 2 {
		t.Fatalf("expected a retry after collision, got %d attempts", repo.creates)
	}
	if record.Currency != enums.CurrencyEUR {
		t.Fatalf("expected configured currency, got %s", record.Currency)
	}
}

func TestNewServiceValidatesDependencies(t *testing.T) {
	repo := &conflictingRepo{}
	adder := ItemAdderFunc(nil)
	if _, err := NewService(nil, gormTxRunner{}, adder, enums.CurrencyUSD); err == nil {
		t.Fatalf("expected error for nil repo")
	}
	if _, err := NewService(repo, nil, adder, enums.CurrencyUSD); err == nil {
		t.Fatalf("expected error for nil tx")
	}
	if _, err := NewService(repo, gormTxRunner{}, nil, enums.CurrencyUSD); err == nil {
		t.Fatalf("expected error for nil adder")
	}
	if _, err := NewService(repo, gormTxRunner{}, adder, "BTC"); err == nil {
		t.Fatalf("expected error for unsupported currency")
	}
}
