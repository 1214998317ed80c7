package cart

import (
	"context"
	"errors"
	"time"

	"github.com/angelmondragon/cartoptions-backend/internal/repo"
	"github.com/angelmondragon/cartoptions-backend/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrStaleCart is returned when the cart changed since it was loaded.
var ErrStaleCart = errors.New("cart was modified concurrently")

// Repository persists carts, their line items and option selections.
type Repository struct {
	repo.Base
}

// NewRepository constructs a cart repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithTx binds the repository to a transaction.
func (r *Repository) WithTx(tx *gorm.DB) CartRepository {
	if tx == nil {
		return r
	}
	return &Repository{Base: r.Base.WithTx(tx)}
}

// Create inserts an empty cart record.
func (r *Repository) Create(ctx context.Context, record *models.CartRecord) error {
	return r.DB(ctx).Omit(clause.Associations).Create(record).Error
}

// FindByToken loads the cart with items and option selections in position order.
func (r *Repository) FindByToken(ctx context.Context, token string) (*models.CartRecord, error) {
	var record models.CartRecord
	err := r.DB(ctx).
		Preload("Items", byPosition).
		Preload("Items.Options", byPosition).
		Where("token = ?", token).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// SaveCart writes totals, inserts new items and replaces the option selections of
// items whose options were rebound. The version column must still match the
// loaded record, otherwise ErrStaleCart is returned and nothing is written.
func (r *Repository) SaveCart(ctx context.Context, record *models.CartRecord) error {
	db := r.DB(ctx)

	res := db.Model(&models.CartRecord{}).
		Where("id = ? AND version = ?", record.ID, record.Version).
		Updates(map[string]any{
			"items_total_cents":       record.ItemsTotalCents,
			"adjustments_total_cents": record.AdjustmentsTotalCents,
			"total_cents":             record.TotalCents,
			"version":                 record.Version + 1,
			"updated_at":              time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleCart
	}
	record.Version++

	for i := range record.Items {
		item := &record.Items[i]
		if item.IsNew() {
			item.CartID = record.ID
			if err := db.Omit(clause.Associations).Create(item).Error; err != nil {
				return err
			}
		} else {
			err := db.Model(&models.CartItem{}).
				Where("id = ?", item.ID).
				Updates(map[string]any{
					"quantity":                item.Quantity,
					"option_adjustment_cents": item.OptionAdjustmentCents,
					"total_cents":             item.TotalCents,
				}).Error
			if err != nil {
				return err
			}
		}

		if !item.OptionsChanged() {
			continue
		}
		if err := replaceOptions(db, item); err != nil {
			return err
		}
		item.MarkOptionsPersisted()
	}
	return nil
}

func replaceOptions(db *gorm.DB, item *models.CartItem) error {
	if err := db.Where("cart_item_id = ?", item.ID).Delete(&models.CartItemOption{}).Error; err != nil {
		return err
	}
	if len(item.Options) == 0 {
		return nil
	}
	for i := range item.Options {
		item.Options[i].CartItemID = item.ID
	}
	return db.Create(&item.Options).Error
}

func byPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}
