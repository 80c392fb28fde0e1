package models

import (
	"time"

	"gorm.io/gorm"
)

// ContactMessage lifecycle: new -> read -> replied.
const (
	ContactStatusNew     = "new"
	ContactStatusRead    = "read"
	ContactStatusReplied = "replied"
)

type ContactMessage struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name    string `gorm:"size:255" json:"name"`
	Email   string `gorm:"size:255" json:"email"`
	Message string `gorm:"type:text" json:"message"`

	Status string `gorm:"size:32;index" json:"status"`

	// Guests may submit without signing in; identity fields are optional.
	UserID    *string `gorm:"column:user_id;size:128" json:"userId,omitempty"`
	UserEmail string  `gorm:"column:user_email;size:255" json:"userEmail,omitempty"`

	LastReplyAt *time.Time `gorm:"column:last_reply_at" json:"lastReplyAt,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
