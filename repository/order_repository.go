package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/yeremiapane/table-order/models"
	"gorm.io/gorm"
)

type GormOrderRepository struct {
	db *gorm.DB
	// serializes id assignment
	mu sync.Mutex
}

func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func preloadLines(db *gorm.DB) *gorm.DB {
	return db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})
}

// Create assigns the next sequential id and stores the order with its lines.
func (r *GormOrderRepository) Create(ctx context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seq, err := nextSeq(tx, &models.Order{})
		if err != nil {
			return fmt.Errorf("next order id: %w", err)
		}
		order.Seq = seq
		order.ID = models.OrderID(seq)
		order.Items = models.CloneLines(order.Items)
		return tx.Create(order).Error
	})
}

// List returns orders matching filter, newest first.
func (r *GormOrderRepository) List(ctx context.Context, filter models.OrderFilter) ([]models.Order, error) {
	q := preloadLines(r.db.WithContext(ctx)).Model(&models.Order{})
	if filter.Status != "" && filter.Status != models.StatusAll {
		q = q.Where("status = ?", filter.Status)
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(table_number) LIKE ? OR LOWER(id) LIKE ?", like, like)
	}

	orders := []models.Order{}
	if err := q.Order("created_at DESC").Order("seq DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := preloadLines(r.db.WithContext(ctx)).First(&order, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (r *GormOrderRepository) Update(ctx context.Context, id string, apply func(*models.Order) error) (*models.Order, error) {
	var updated models.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.Order
		if err := preloadLines(tx).First(&current, "id = ?", id).Error; err != nil {
			return translate(err)
		}

		next := current
		next.Items = append([]models.OrderLine(nil), current.Items...)
		if err := apply(&next); err != nil {
			return err
		}
		// identity and creation time are fixed
		next.ID, next.Seq, next.CreatedAt = current.ID, current.Seq, current.CreatedAt

		if !sameLines(current.Items, next.Items) {
			if err := tx.Where("order_id = ?", id).Delete(&models.OrderLine{}).Error; err != nil {
				return err
			}
			lines := models.CloneLines(next.Items)
			for i := range lines {
				lines[i].OrderID = id
			}
			if len(lines) > 0 {
				if err := tx.Create(&lines).Error; err != nil {
					return err
				}
			}
		}

		err := tx.Model(&models.Order{}).Where("id = ?", id).Updates(map[string]interface{}{
			"table_number": next.TableNumber,
			"total_price":  next.TotalPrice,
			"status":       next.Status,
		}).Error
		if err != nil {
			return err
		}
		return preloadLines(tx).First(&updated, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func sameLines(a, b []models.OrderLine) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].MenuItemID != b[i].MenuItemID || a[i].Name != b[i].Name ||
			a[i].Price != b[i].Price || a[i].Quantity != b[i].Quantity {
			return false
		}
	}
	return true
}
