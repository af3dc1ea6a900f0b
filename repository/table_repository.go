package repository

import (
	"context"
	"sync"

	"github.com/yeremiapane/table-order/models"
	"gorm.io/gorm"
)

type GormTableRepository struct {
	db *gorm.DB
	mu sync.Mutex
}

func NewTableRepository(db *gorm.DB) *GormTableRepository {
	return &GormTableRepository{db: db}
}

func (r *GormTableRepository) Create(ctx context.Context, table *models.Table) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seq, err := nextSeq(tx, &models.Table{})
		if err != nil {
			return err
		}
		table.Seq = seq
		table.ID = models.TableID(seq)
		if table.Status == "" {
			table.Status = models.TableAvailable
		}
		return tx.Create(table).Error
	})
}

func (r *GormTableRepository) List(ctx context.Context, status models.TableStatus) ([]models.Table, error) {
	q := r.db.WithContext(ctx).Order("seq ASC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	tables := []models.Table{}
	if err := q.Find(&tables).Error; err != nil {
		return nil, err
	}
	return tables, nil
}

func (r *GormTableRepository) GetByID(ctx context.Context, id string) (*models.Table, error) {
	var table models.Table
	if err := r.db.WithContext(ctx).First(&table, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &table, nil
}

func (r *GormTableRepository) Update(ctx context.Context, id string, apply func(*models.Table) error) (*models.Table, error) {
	var table models.Table
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&table, "id = ?", id).Error; err != nil {
			return translate(err)
		}
		seq := table.Seq
		if err := apply(&table); err != nil {
			return err
		}
		table.ID, table.Seq = id, seq
		return tx.Save(&table).Error
	})
	if err != nil {
		return nil, err
	}
	return &table, nil
}

func (r *GormTableRepository) Delete(ctx context.Context, id string) (*models.Table, error) {
	var table models.Table
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&table, "id = ?", id).Error; err != nil {
			return translate(err)
		}
		return tx.Delete(&models.Table{}, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &table, nil
}
