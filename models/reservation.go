package models

import (
	"time"

	"gorm.io/gorm"
)

// Reservation statuses. pending and confirmed hold one unit of room stock;
// completed and cancelled are terminal and have released it.
const (
	ReservationPending   = "pending"
	ReservationConfirmed = "confirmed"
	ReservationCompleted = "completed"
	ReservationCancelled = "cancelled"
)

type Reservation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ReferenceCode string `gorm:"column:reference_code;size:64;index" json:"reference_code"`

	// RoomID is nullable so the record survives room deletion; RoomName and
	// RoomPrice are captured at booking time and used for display even if the
	// room is later renamed or removed.
	RoomID    *uint  `gorm:"column:room_id;index" json:"roomId,omitempty"`
	RoomName  string `gorm:"column:room_name;size:255" json:"roomName"`
	RoomPrice int    `gorm:"column:room_price" json:"roomPrice"`

	UserID     string `gorm:"column:user_id;size:128;index" json:"userId"`
	UserEmail  string `gorm:"column:user_email;size:255" json:"userEmail"`
	GuestName  string `gorm:"column:guest_name;size:255" json:"guestName"`
	GuestEmail string `gorm:"column:guest_email;size:255" json:"guestEmail"`

	CheckIn  time.Time `gorm:"column:check_in" json:"checkIn"`
	CheckOut time.Time `gorm:"column:check_out" json:"checkOut"`
	Guests   int       `gorm:"column:guests" json:"guests"`
	Nights   int       `gorm:"column:nights" json:"nights"`

	TotalPrice      int    `gorm:"column:total_price" json:"totalPrice"`
	SpecialRequests string `gorm:"column:special_requests;type:text" json:"specialRequests,omitempty"`

	Status string `gorm:"column:status;size:32;index" json:"status"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// HoldsStock reports whether the reservation currently holds a reserved unit.
func (r *Reservation) HoldsStock() bool {
	return r.Status == ReservationPending || r.Status == ReservationConfirmed
}
