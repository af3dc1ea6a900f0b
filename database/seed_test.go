package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/table-order/config"
	"github.com/yeremiapane/table-order/models"
)

func TestSeedOrders(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	orders := SeedOrders(now)
	require.Len(t, orders, 3)

	assert.Equal(t, "ORD001", orders[0].ID)
	assert.Equal(t, 315000.0, orders[0].TotalPrice)
	assert.Equal(t, models.StatusCompleted, orders[0].Status)
	assert.Equal(t, now.Add(-time.Hour), orders[0].CreatedAt)

	assert.Equal(t, models.StatusPreparing, orders[1].Status)
	assert.Equal(t, 255000.0, orders[1].TotalPrice)
	assert.Equal(t, models.StatusPending, orders[2].Status)
	assert.Equal(t, 350000.0, orders[2].TotalPrice)
}

func TestSeedIsIdempotent(t *testing.T) {
	db, err := config.OpenDB("sqlite", ":memory:")
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	require.NoError(t, Seed(db, time.Now()))
	require.NoError(t, Seed(db, time.Now()))

	var menu, tables, orders, lines int64
	db.Model(&models.MenuItem{}).Count(&menu)
	db.Model(&models.Table{}).Count(&tables)
	db.Model(&models.Order{}).Count(&orders)
	db.Model(&models.OrderLine{}).Count(&lines)
	assert.Equal(t, int64(10), menu)
	assert.Equal(t, int64(6), tables)
	assert.Equal(t, int64(3), orders)
	assert.Equal(t, int64(7), lines)
}
