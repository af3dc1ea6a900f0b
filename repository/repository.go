package repository

import (
	"context"
	"errors"

	"github.com/yeremiapane/table-order/models"
	"gorm.io/gorm"
)

// OrderRepository is the order store. Update loads the current record,
// hands it to apply and persists the result in one transaction, so no
// partial update is ever visible.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	List(ctx context.Context, filter models.OrderFilter) ([]models.Order, error)
	GetByID(ctx context.Context, id string) (*models.Order, error)
	Update(ctx context.Context, id string, apply func(*models.Order) error) (*models.Order, error)
}

type MenuRepository interface {
	Create(ctx context.Context, item *models.MenuItem) error
	List(ctx context.Context, category string) ([]models.MenuItem, error)
	Categories(ctx context.Context) ([]models.MenuCategory, error)
	GetByID(ctx context.Context, id uint) (*models.MenuItem, error)
	Update(ctx context.Context, id uint, apply func(*models.MenuItem) error) (*models.MenuItem, error)
	Delete(ctx context.Context, id uint) (*models.MenuItem, error)
}

type TableRepository interface {
	Create(ctx context.Context, table *models.Table) error
	List(ctx context.Context, status models.TableStatus) ([]models.Table, error)
	GetByID(ctx context.Context, id string) (*models.Table, error)
	Update(ctx context.Context, id string, apply func(*models.Table) error) (*models.Table, error)
	Delete(ctx context.Context, id string) (*models.Table, error)
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ErrNotFound
	}
	return err
}

// nextSeq returns MAX(seq)+1 for the model's table.
func nextSeq(tx *gorm.DB, model interface{}) (int, error) {
	var max int
	if err := tx.Model(model).Select("COALESCE(MAX(seq), 0)").Scan(&max).Error; err != nil {
		return 0, err
	}
	return max + 1, nil
}
