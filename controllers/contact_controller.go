package controllers

import (
	"errors"
	"log"
	"net/http"

	"bluewave-backend/models"
	"bluewave-backend/services"
	"bluewave-backend/utils"

	"github.com/gin-gonic/gin"
)

type ContactController struct {
	Contacts *services.ContactService
}

func NewContactController(svc *services.ContactService) *ContactController {
	return &ContactController{Contacts: svc}
}

type contactPayload struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required"`
}

type replyPayload struct {
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// CreateContact (POST /api/contacts) — guests may submit without signing in;
// when identity headers are present the message is stamped with them.
func (cc *ContactController) CreateContact(c *gin.Context) {
	var payload contactPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request payload",
			"details": err.Error(),
		})
		return
	}

	msg := models.ContactMessage{
		Name:      payload.Name,
		Email:     payload.Email,
		Message:   payload.Message,
		UserEmail: payload.Email,
	}
	ident := identityFrom(c)
	if ident.UID != "" {
		uid := ident.UID
		msg.UserID = &uid
	}
	if ident.Email != "" {
		msg.UserEmail = ident.Email
	}

	created, err := cc.Contacts.Create(msg)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			utils.JSONError(c, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("❌ create contact error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to send message")
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetContacts (GET /api/admin/contacts)
func (cc *ContactController) GetContacts(c *gin.Context) {
	list, err := cc.Contacts.List()
	if err != nil {
		log.Printf("❌ list contacts error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to load contact messages")
		return
	}
	c.JSON(http.StatusOK, list)
}

// MarkRead (PATCH /api/admin/contacts/:id/read)
func (cc *ContactController) MarkRead(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	msg, err := cc.Contacts.MarkRead(id)
	if err != nil {
		if errors.Is(err, services.ErrContactNotFound) {
			utils.JSONError(c, http.StatusNotFound, "contact not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to mark contact as read")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, msg)
}

// MarkAllRead (PATCH /api/admin/contacts/read-all) — bulk version of
// MarkRead for messages still marked new.
func (cc *ContactController) MarkAllRead(c *gin.Context) {
	updated, err := cc.Contacts.MarkAllRead()
	if err != nil {
		log.Printf("❌ mark all read error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to mark contacts as read")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "updated": updated})
}

// Reply (POST /api/admin/contacts/:id/reply) — appends the audit record and
// flips the message to replied.
func (cc *ContactController) Reply(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var payload replyPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "subject and message are required")
		return
	}

	ident := identityFrom(c)
	adminName := ident.DisplayName
	if adminName == "" {
		adminName = "Admin"
	}

	reply, err := cc.Contacts.Reply(id, services.ReplyInput{
		Subject:    payload.Subject,
		Message:    payload.Message,
		AdminName:  adminName,
		AdminEmail: ident.Email,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrContactNotFound):
			utils.JSONError(c, http.StatusNotFound, "contact not found")
		case errors.Is(err, services.ErrValidation):
			utils.JSONError(c, http.StatusBadRequest, err.Error())
		default:
			log.Printf("❌ reply error for contact %d: %v", id, err)
			utils.JSONError(c, http.StatusInternalServerError, "failed to send reply")
		}
		return
	}
	c.JSON(http.StatusCreated, reply)
}

// GetReplies (GET /api/admin/contacts/:id/replies)
func (cc *ContactController) GetReplies(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	list, err := cc.Contacts.ListReplies(id)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load replies")
		return
	}
	c.JSON(http.StatusOK, list)
}

// DeleteContact (DELETE /api/admin/contacts/:id)
func (cc *ContactController) DeleteContact(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := cc.Contacts.Delete(id); err != nil {
		if errors.Is(err, services.ErrContactNotFound) {
			utils.JSONError(c, http.StatusNotFound, "contact not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete contact message")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Contact message deleted"})
}
