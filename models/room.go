package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Room status values. Status is always derived from Stock — the inventory
// service recomputes it inside every mutation; callers never write it
// directly.
const (
	RoomStatusAvailable   = "available"
	RoomStatusUnavailable = "unavailable"
)

type Room struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string `gorm:"uniqueIndex;size:255" json:"name"`
	Price       int    `json:"price"`
	Capacity    int    `json:"capacity"`
	Stock       int    `gorm:"column:stock" json:"stock"`
	TotalStock  int    `gorm:"column:total_stock" json:"totalStock"`
	Status      string `gorm:"size:32" json:"status"`
	Description string `gorm:"type:text" json:"description"`
	Image       string `gorm:"size:255" json:"image"`

	Amenities datatypes.JSON `gorm:"column:amenities" json:"amenities,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// StatusForStock maps a stock level to the persisted room status.
func StatusForStock(stock int) string {
	if stock > 0 {
		return RoomStatusAvailable
	}
	return RoomStatusUnavailable
}
