package services

import (
	"testing"

	"bluewave-backend/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// single connection keeps the in-memory database alive and serializes
	// writes the way the production store does per row
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Room{},
		&models.Reservation{},
		&models.ContactMessage{},
		&models.ContactReply{},
	))
	return db
}

func seedRoom(t *testing.T, db *gorm.DB, name string, price, capacity, stock int) *models.Room {
	t.Helper()
	room := &models.Room{
		Name:       name,
		Price:      price,
		Capacity:   capacity,
		Stock:      stock,
		TotalStock: stock,
		Status:     models.StatusForStock(stock),
	}
	require.NoError(t, db.Create(room).Error)
	return room
}

func currentStock(t *testing.T, db *gorm.DB, roomID uint) (int, string) {
	t.Helper()
	var room models.Room
	require.NoError(t, db.First(&room, roomID).Error)
	return room.Stock, room.Status
}
