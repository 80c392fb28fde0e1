package services

import (
	"errors"
	"fmt"

	"bluewave-backend/models"

	"gorm.io/gorm"
)

// InventoryService is the sole mutator of Room.Stock / Room.Status. Every
// other layer routes stock changes through ReserveUnit / ReleaseUnit /
// SetCapacity so the 0 <= stock <= totalStock invariant holds and status
// stays a pure function of stock.
//
// Atomicity comes from conditional updates: each mutation re-reads the row,
// then writes with `WHERE id = ? AND stock = ?` and checks RowsAffected.
// Losing the race re-reads and retries, so two concurrent ReserveUnit calls
// on a room with stock = 1 end as one success and one ErrOutOfStock, never
// two successes.
type InventoryService struct {
	DB *gorm.DB
}

func NewInventoryService(db *gorm.DB) *InventoryService {
	return &InventoryService{DB: db}
}

// Availability is the read-model returned by the query paths.
type Availability struct {
	Available bool   `json:"available"`
	Stock     int    `json:"stock"`
	Status    string `json:"status"`
	RoomName  string `json:"roomName"`
}

// casMaxAttempts bounds the re-read/retry loop. Exhausting it means the row
// is under pathological contention; the caller gets ErrPersistenceFailed
// rather than an unbounded spin.
const casMaxAttempts = 25

func (s *InventoryService) loadRoom(roomID uint) (*models.Room, error) {
	var room models.Room
	if err := s.DB.First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to load room %d: %w", roomID, err)
	}
	return &room, nil
}

// applyStock writes newStock (and the derived status) only if the row still
// carries observedStock. Returns true when the write won the race.
func (s *InventoryService) applyStock(roomID uint, observedStock, newStock int) (bool, error) {
	res := s.DB.Model(&models.Room{}).
		Where("id = ? AND stock = ?", roomID, observedStock).
		Updates(map[string]interface{}{
			"stock":  newStock,
			"status": models.StatusForStock(newStock),
		})
	if res.Error != nil {
		return false, fmt.Errorf("failed to update stock for room %d: %w", roomID, res.Error)
	}
	return res.RowsAffected == 1, nil
}

// ReserveUnit decrements stock by one. Fails with ErrOutOfStock when the
// authoritative stock is zero at the time of the attempt, ErrRoomNotFound
// for an unknown id.
func (s *InventoryService) ReserveUnit(roomID uint) (*models.Room, error) {
	for attempt := 0; attempt < casMaxAttempts; attempt++ {
		room, err := s.loadRoom(roomID)
		if err != nil {
			return nil, err
		}
		if room.Stock <= 0 {
			return nil, ErrOutOfStock
		}

		newStock := room.Stock - 1
		ok, err := s.applyStock(roomID, room.Stock, newStock)
		if err != nil {
			return nil, err
		}
		if ok {
			room.Stock = newStock
			room.Status = models.StatusForStock(newStock)
			return room, nil
		}
		// lost the race, re-read and try again
	}
	return nil, fmt.Errorf("reserve room %d: too much contention: %w", roomID, ErrPersistenceFailed)
}

// ReleaseUnit restores count units, clamped at totalStock. Over-release (a
// double-release bug upstream) saturates silently instead of corrupting the
// ledger.
func (s *InventoryService) ReleaseUnit(roomID uint, count int) (*models.Room, error) {
	if count < 1 {
		count = 1
	}
	for attempt := 0; attempt < casMaxAttempts; attempt++ {
		room, err := s.loadRoom(roomID)
		if err != nil {
			return nil, err
		}

		newStock := room.Stock + count
		if newStock > room.TotalStock {
			newStock = room.TotalStock
		}

		ok, err := s.applyStock(roomID, room.Stock, newStock)
		if err != nil {
			return nil, err
		}
		if ok {
			room.Stock = newStock
			room.Status = models.StatusForStock(newStock)
			return room, nil
		}
	}
	return nil, fmt.Errorf("release room %d: too much contention: %w", roomID, ErrPersistenceFailed)
}

// SetCapacity replaces both inventory fields directly (admin edit path).
// newStock is clamped into [0, newTotalStock]; status is recomputed.
func (s *InventoryService) SetCapacity(roomID uint, newTotalStock, newStock int) (*models.Room, error) {
	if newTotalStock < 0 {
		newTotalStock = 0
	}
	if newStock < 0 {
		newStock = 0
	}
	if newStock > newTotalStock {
		newStock = newTotalStock
	}

	room, err := s.loadRoom(roomID)
	if err != nil {
		return nil, err
	}

	if err := s.DB.Model(&models.Room{}).
		Where("id = ?", roomID).
		Updates(map[string]interface{}{
			"stock":       newStock,
			"total_stock": newTotalStock,
			"status":      models.StatusForStock(newStock),
		}).Error; err != nil {
		return nil, fmt.Errorf("failed to set capacity for room %d: %w", roomID, err)
	}

	room.Stock = newStock
	room.TotalStock = newTotalStock
	room.Status = models.StatusForStock(newStock)
	return room, nil
}

// QueryAvailability is the read-only path used before presenting a room as
// bookable. Stale reads are tolerated; ReserveUnit re-validates at write
// time.
func (s *InventoryService) QueryAvailability(roomID uint) (*Availability, error) {
	room, err := s.loadRoom(roomID)
	if err != nil {
		return nil, err
	}
	return availabilityOf(room), nil
}

// QueryAvailabilityByName resolves a room by display name (names are unique
// within the catalog) and reports the same read-model.
func (s *InventoryService) QueryAvailabilityByName(name string) (*Availability, error) {
	var room models.Room
	if err := s.DB.Where("name = ?", name).First(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to load room %q: %w", name, err)
	}
	return availabilityOf(&room), nil
}

func availabilityOf(room *models.Room) *Availability {
	return &Availability{
		Available: room.Stock > 0 && room.Status == models.RoomStatusAvailable,
		Stock:     room.Stock,
		Status:    room.Status,
		RoomName:  room.Name,
	}
}
