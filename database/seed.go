package database

import (
	"fmt"
	"time"

	"github.com/yeremiapane/table-order/models"
	"github.com/yeremiapane/table-order/utils"
	"gorm.io/gorm"
)

func SeedMenu() []models.MenuItem {
	img := models.DefaultMenuImage
	return []models.MenuItem{
		{ID: 1, Name: "Gỏi cuốn tôm thịt", Price: 65000, Category: "appetizers", Image: img},
		{ID: 2, Name: "Chả giò hải sản", Price: 75000, Category: "appetizers", Image: img},
		{ID: 3, Name: "Súp cua", Price: 85000, Category: "appetizers", Image: img},
		{ID: 4, Name: "Bò lúc lắc", Price: 185000, Category: "main-dishes", Image: img},
		{ID: 5, Name: "Cá hồi nướng", Price: 220000, Category: "main-dishes", Image: img},
		{ID: 6, Name: "Gà nướng sả", Price: 165000, Category: "main-dishes", Image: img},
		{ID: 7, Name: "Chè khúc bạch", Price: 45000, Category: "desserts", Image: img},
		{ID: 8, Name: "Bánh flan", Price: 35000, Category: "desserts", Image: img},
		{ID: 9, Name: "Nước ép cam", Price: 45000, Category: "drinks", Image: img},
		{ID: 10, Name: "Sinh tố bơ", Price: 55000, Category: "drinks", Image: img},
	}
}

func SeedTables() []models.Table {
	raw := []struct {
		capacity int
		status   models.TableStatus
	}{
		{2, models.TableAvailable},
		{4, models.TableOccupied},
		{4, models.TableAvailable},
		{6, models.TableReserved},
		{2, models.TableOccupied},
		{8, models.TableAvailable},
	}
	tables := make([]models.Table, len(raw))
	for i, r := range raw {
		seq := i + 1
		tables[i] = models.Table{
			ID:       models.TableID(seq),
			Seq:      seq,
			Number:   fmt.Sprint(seq),
			Capacity: r.capacity,
			Status:   r.status,
		}
	}
	return tables
}

// SeedOrders returns the three sample orders, created 60, 30 and 10 minutes
// before now.
func SeedOrders(now time.Time) []models.Order {
	menu := SeedMenu()
	line := func(id, qty int) models.OrderLine {
		return menu[id-1].ToLine(qty)
	}

	orders := []models.Order{
		{
			TableNumber: "5",
			Items:       []models.OrderLine{line(1, 2), line(4, 1)},
			Status:      models.StatusCompleted,
			CreatedAt:   now.Add(-time.Hour),
		},
		{
			TableNumber: "8",
			Items:       []models.OrderLine{line(6, 1), line(9, 2)},
			Status:      models.StatusPreparing,
			CreatedAt:   now.Add(-30 * time.Minute),
		},
		{
			TableNumber: "3",
			Items:       []models.OrderLine{line(2, 1), line(5, 1), line(10, 1)},
			Status:      models.StatusPending,
			CreatedAt:   now.Add(-10 * time.Minute),
		},
	}
	for i := range orders {
		seq := i + 1
		orders[i].Seq = seq
		orders[i].ID = models.OrderID(seq)
		orders[i].Items = models.CloneLines(orders[i].Items)
		orders[i].TotalPrice = models.TotalOf(orders[i].Items)
	}
	return orders
}

// Seed fills empty stores with the fixed sample data. Stores that already
// hold rows are left alone.
func Seed(db *gorm.DB, now time.Time) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := seedIfEmpty(tx, &models.MenuItem{}, SeedMenu()); err != nil {
			return err
		}
		if err := seedIfEmpty(tx, &models.Table{}, SeedTables()); err != nil {
			return err
		}
		return seedIfEmpty(tx, &models.Order{}, SeedOrders(now))
	})
}

func seedIfEmpty[T any](tx *gorm.DB, model interface{}, rows []T) error {
	var count int64
	if err := tx.Model(model).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if err := tx.Create(&rows).Error; err != nil {
		return fmt.Errorf("seed %T: %w", model, err)
	}
	utils.InfoLogger.Printf("Seeded %d rows into %T", len(rows), model)
	return nil
}
