package services

import (
	"testing"

	"bluewave-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomCreateDerivesStatusAndTotalStock(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomService(db)

	room, err := svc.Create(models.Room{Name: "Cottage", Price: 2500, Capacity: 10, Stock: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, room.TotalStock)
	assert.Equal(t, models.RoomStatusAvailable, room.Status)

	empty, err := svc.Create(models.Room{Name: "Annex", Price: 1000, Capacity: 4, Stock: 0, TotalStock: 2})
	require.NoError(t, err)
	assert.Equal(t, models.RoomStatusUnavailable, empty.Status)
}

func TestRoomCreateValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomService(db)

	_, err := svc.Create(models.Room{Name: "", Price: 100, Capacity: 2, Stock: 1})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(models.Room{Name: "X", Price: 0, Capacity: 2, Stock: 1})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(models.Room{Name: "X", Price: 100, Capacity: 0, Stock: 1})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(models.Room{Name: "Dup", Price: 100, Capacity: 2, Stock: 1})
	require.NoError(t, err)
	_, err = svc.Create(models.Room{Name: "Dup", Price: 100, Capacity: 2, Stock: 1})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRoomUpdateNeverTouchesStock(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomService(db)
	room := seedRoom(t, db, "Cottage", 2500, 10, 5)

	updated, err := svc.Update(room.ID, map[string]interface{}{
		"price":       3000,
		"description": "Renovated cottage",
		"stock":       0,
		"status":      models.RoomStatusUnavailable,
		"total_stock": 99,
	})
	require.NoError(t, err)

	assert.Equal(t, 3000, updated.Price)
	assert.Equal(t, "Renovated cottage", updated.Description)
	// inventory fields are stripped; only the inventory service writes them
	assert.Equal(t, 5, updated.Stock)
	assert.Equal(t, 5, updated.TotalStock)
	assert.Equal(t, models.RoomStatusAvailable, updated.Status)
}

func TestRoomUpdateRejectsFieldNameSpellings(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomService(db)
	room := seedRoom(t, db, "Cottage", 2500, 10, 5)

	// Go-struct-field casings must not slip past the allow-list either;
	// gorm resolves map keys against field names as well as columns.
	updated, err := svc.Update(room.ID, map[string]interface{}{
		"Name":       "Garden Cottage",
		"Stock":      0,
		"TotalStock": 99,
		"Status":     models.RoomStatusUnavailable,
	})
	require.NoError(t, err)

	assert.Equal(t, "Garden Cottage", updated.Name)
	assert.Equal(t, 5, updated.Stock)
	assert.Equal(t, 5, updated.TotalStock)
	assert.Equal(t, models.RoomStatusAvailable, updated.Status)
}

func TestRoomUpdateUnknownID(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomService(db)

	_, err := svc.Update(404, map[string]interface{}{"price": 1})
	assert.ErrorIs(t, err, ErrRoomNotFound)

	assert.ErrorIs(t, svc.Delete(404), ErrRoomNotFound)
}
