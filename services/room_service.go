package services

import (
	"errors"
	"fmt"
	"strings"

	"bluewave-backend/models"

	"gorm.io/gorm"
)

// RoomService covers the catalog side of rooms: create, read, edit, delete.
// It never touches stock/status — inventory edits go through
// InventoryService.SetCapacity.
type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

// Create adds a room with stock = totalStock = initial capacity units and a
// derived status.
func (s *RoomService) Create(room models.Room) (*models.Room, error) {
	room.Name = strings.TrimSpace(room.Name)
	if room.Name == "" {
		return nil, fmt.Errorf("%w: room name is required", ErrValidation)
	}
	if room.Price <= 0 {
		return nil, fmt.Errorf("%w: price must be positive", ErrValidation)
	}
	if room.Capacity <= 0 {
		return nil, fmt.Errorf("%w: capacity must be positive", ErrValidation)
	}
	if room.TotalStock <= 0 {
		room.TotalStock = room.Stock
	}
	if room.Stock < 0 || room.Stock > room.TotalStock {
		return nil, fmt.Errorf("%w: stock must be between 0 and totalStock", ErrValidation)
	}
	room.Status = models.StatusForStock(room.Stock)

	if err := s.DB.Create(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: room name %q already exists", ErrValidation, room.Name)
		}
		return nil, fmt.Errorf("failed to create room: %w", err)
	}
	return &room, nil
}

func (s *RoomService) List() ([]models.Room, error) {
	var rooms []models.Room
	if err := s.DB.Order("name").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return rooms, nil
}

func (s *RoomService) GetByID(id uint) (*models.Room, error) {
	var room models.Room
	if err := s.DB.First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to load room %d: %w", id, err)
	}
	return &room, nil
}

// Columns an admin edit may touch. Everything else — stock, status,
// timestamps — is dropped: only the inventory service writes those.
var roomEditableColumns = map[string]bool{
	"name":        true,
	"price":       true,
	"capacity":    true,
	"description": true,
	"image":       true,
	"amenities":   true,
}

// Update edits catalog fields. The payload is filtered through an
// allow-list keyed by column name (any key casing), so inventory fields
// cannot be smuggled in under an alternate spelling.
func (s *RoomService) Update(id uint, fields map[string]interface{}) (*models.Room, error) {
	updates := make(map[string]interface{}, len(fields))
	for key, value := range fields {
		column := strings.ToLower(strings.TrimSpace(key))
		if roomEditableColumns[column] {
			updates[column] = value
		}
	}

	if len(updates) == 0 {
		return s.GetByID(id)
	}

	res := s.DB.Model(&models.Room{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update room %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrRoomNotFound
	}
	return s.GetByID(id)
}

// Delete soft-deletes a room. Existing reservations keep their denormalized
// name/price snapshot, so nothing cascades.
func (s *RoomService) Delete(id uint) error {
	res := s.DB.Delete(&models.Room{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete room %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrRoomNotFound
	}
	return nil
}
