package models

import (
	"time"

	"gorm.io/gorm"
)

// ContactReply is the audit record appended every time an admin answers a
// contact message. Replies are never edited or removed once written.
type ContactReply struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ContactID uint `gorm:"column:contact_id;index" json:"contact_id"`

	Subject string `gorm:"size:255" json:"subject"`
	Message string `gorm:"type:text" json:"message"`

	AdminName  string `gorm:"column:admin_name;size:255" json:"adminName"`
	AdminEmail string `gorm:"column:admin_email;size:255" json:"adminEmail"`

	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Contact ContactMessage `gorm:"foreignKey:ContactID;references:ID" json:"-"`
}
