package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"bluewave-backend/models"

	"gorm.io/gorm"
)

// ContactService handles inbound guest inquiries and the admin reply flow.
// Replies append to a separate audit collection; the parent message only
// carries the lifecycle status (new -> read -> replied).
type ContactService struct {
	DB *gorm.DB
}

func NewContactService(db *gorm.DB) *ContactService {
	return &ContactService{DB: db}
}

type ReplyInput struct {
	Subject    string
	Message    string
	AdminName  string
	AdminEmail string
}

func (s *ContactService) Create(msg models.ContactMessage) (*models.ContactMessage, error) {
	msg.Name = strings.TrimSpace(msg.Name)
	msg.Email = strings.TrimSpace(msg.Email)
	msg.Message = strings.TrimSpace(msg.Message)
	if msg.Name == "" || msg.Email == "" || msg.Message == "" {
		return nil, fmt.Errorf("%w: name, email and message are required", ErrValidation)
	}
	msg.Status = models.ContactStatusNew

	if err := s.DB.Create(&msg).Error; err != nil {
		return nil, fmt.Errorf("failed to create contact message: %w", err)
	}
	return &msg, nil
}

func (s *ContactService) List() ([]models.ContactMessage, error) {
	var list []models.ContactMessage
	if err := s.DB.Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list contact messages: %w", err)
	}
	return list, nil
}

func (s *ContactService) MarkRead(contactID uint) (*models.ContactMessage, error) {
	var msg models.ContactMessage
	if err := s.DB.First(&msg, contactID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, fmt.Errorf("failed to load contact %d: %w", contactID, err)
	}

	if err := s.DB.Model(&msg).Update("status", models.ContactStatusRead).Error; err != nil {
		return nil, fmt.Errorf("failed to mark contact %d read: %w", contactID, err)
	}
	msg.Status = models.ContactStatusRead
	return &msg, nil
}

// MarkAllRead flips every message still in the new status to read and
// reports how many changed. Replied messages are left alone.
func (s *ContactService) MarkAllRead() (int64, error) {
	res := s.DB.Model(&models.ContactMessage{}).
		Where("status = ?", models.ContactStatusNew).
		Update("status", models.ContactStatusRead)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to mark all contacts read: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// Reply appends the audit record and flips the message to replied in one
// transaction, stamping LastReplyAt.
func (s *ContactService) Reply(contactID uint, in ReplyInput) (*models.ContactReply, error) {
	in.Subject = strings.TrimSpace(in.Subject)
	in.Message = strings.TrimSpace(in.Message)
	if in.Subject == "" || in.Message == "" {
		return nil, fmt.Errorf("%w: subject and message are required", ErrValidation)
	}

	var reply models.ContactReply
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var msg models.ContactMessage
		if err := tx.First(&msg, contactID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrContactNotFound
			}
			return err
		}

		reply = models.ContactReply{
			ContactID:  contactID,
			Subject:    in.Subject,
			Message:    in.Message,
			AdminName:  in.AdminName,
			AdminEmail: in.AdminEmail,
		}
		if err := tx.Create(&reply).Error; err != nil {
			return err
		}

		now := time.Now().UTC()
		return tx.Model(&msg).Updates(map[string]interface{}{
			"status":        models.ContactStatusReplied,
			"last_reply_at": now,
		}).Error
	})
	if err != nil {
		if errors.Is(err, ErrContactNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to reply to contact %d: %w", contactID, err)
	}
	return &reply, nil
}

func (s *ContactService) ListReplies(contactID uint) ([]models.ContactReply, error) {
	var list []models.ContactReply
	if err := s.DB.Where("contact_id = ?", contactID).Order("created_at").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list replies for contact %d: %w", contactID, err)
	}
	return list, nil
}

func (s *ContactService) Delete(contactID uint) error {
	res := s.DB.Delete(&models.ContactMessage{}, contactID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete contact %d: %w", contactID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrContactNotFound
	}
	return nil
}
