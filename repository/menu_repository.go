package repository

import (
	"context"
	"sync"

	"github.com/yeremiapane/table-order/models"
	"gorm.io/gorm"
)

type GormMenuRepository struct {
	db *gorm.DB
	mu sync.Mutex
}

func NewMenuRepository(db *gorm.DB) *GormMenuRepository {
	return &GormMenuRepository{db: db}
}

// Create assigns id = max(id)+1.
func (r *GormMenuRepository) Create(ctx context.Context, item *models.MenuItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var max uint
		if err := tx.Model(&models.MenuItem{}).Select("COALESCE(MAX(id), 0)").Scan(&max).Error; err != nil {
			return err
		}
		item.ID = max + 1
		if item.Image == "" {
			item.Image = models.DefaultMenuImage
		}
		return tx.Create(item).Error
	})
}

func (r *GormMenuRepository) List(ctx context.Context, category string) ([]models.MenuItem, error) {
	q := r.db.WithContext(ctx).Order("id ASC")
	if category != "" {
		q = q.Where("category = ?", category)
	}
	items := []models.MenuItem{}
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormMenuRepository) Categories(ctx context.Context) ([]models.MenuCategory, error) {
	cats := []models.MenuCategory{}
	err := r.db.WithContext(ctx).Model(&models.MenuItem{}).
		Select("category AS name, COUNT(*) AS items").
		Group("category").
		Order("MIN(id) ASC").
		Scan(&cats).Error
	if err != nil {
		return nil, err
	}
	return cats, nil
}

func (r *GormMenuRepository) GetByID(ctx context.Context, id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

func (r *GormMenuRepository) Update(ctx context.Context, id uint, apply func(*models.MenuItem) error) (*models.MenuItem, error) {
	var item models.MenuItem
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&item, "id = ?", id).Error; err != nil {
			return translate(err)
		}
		if err := apply(&item); err != nil {
			return err
		}
		item.ID = id
		return tx.Save(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormMenuRepository) Delete(ctx context.Context, id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&item, "id = ?", id).Error; err != nil {
			return translate(err)
		}
		return tx.Delete(&models.MenuItem{}, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}
