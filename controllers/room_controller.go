package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"bluewave-backend/models"
	"bluewave-backend/services"
	"bluewave-backend/utils"

	"github.com/gin-gonic/gin"
)

type RoomController struct {
	Rooms     *services.RoomService
	Inventory *services.InventoryService
}

func NewRoomController(rooms *services.RoomService, inv *services.InventoryService) *RoomController {
	return &RoomController{Rooms: rooms, Inventory: inv}
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

// GetRooms (GET /api/rooms) — public catalog listing.
func (rc *RoomController) GetRooms(c *gin.Context) {
	rooms, err := rc.Rooms.List()
	if err != nil {
		log.Printf("❌ failed to list rooms: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to load rooms")
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// GetRoom (GET /api/rooms/:id)
func (rc *RoomController) GetRoom(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	room, err := rc.Rooms.GetByID(id)
	if err != nil {
		if errors.Is(err, services.ErrRoomNotFound) {
			utils.JSONError(c, http.StatusNotFound, fmt.Sprintf("room %d not found", id))
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to load room")
		return
	}
	c.JSON(http.StatusOK, room)
}

// GetAvailability (GET /api/rooms/:id/availability) — thin read path used to
// disable booking affordances when stock hits zero. Tolerant of stale reads.
func (rc *RoomController) GetAvailability(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	avail, err := rc.Inventory.QueryAvailability(id)
	if err != nil {
		if errors.Is(err, services.ErrRoomNotFound) {
			utils.JSONError(c, http.StatusNotFound, fmt.Sprintf("room %d not found", id))
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to check availability")
		return
	}
	c.JSON(http.StatusOK, avail)
}

// GetAvailabilityByName (GET /api/availability?name=...)
func (rc *RoomController) GetAvailabilityByName(c *gin.Context) {
	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		utils.JSONError(c, http.StatusBadRequest, "name query parameter is required")
		return
	}
	avail, err := rc.Inventory.QueryAvailabilityByName(name)
	if err != nil {
		if errors.Is(err, services.ErrRoomNotFound) {
			utils.JSONError(c, http.StatusNotFound, fmt.Sprintf("room %q not found", name))
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to check availability")
		return
	}
	c.JSON(http.StatusOK, avail)
}

// CreateRoom (POST /api/admin/rooms)
func (rc *RoomController) CreateRoom(c *gin.Context) {
	var room models.Room
	if err := c.ShouldBindJSON(&room); err != nil {
		log.Printf("❌ JSON BINDING ERROR (400): %v", err)
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request payload",
			"details": err.Error(),
		})
		return
	}

	// admin console uploads images as base64 data URIs
	if utils.IsDataURI(room.Image) {
		path, err := utils.SaveBase64Image(room.Image, "./uploads")
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid image data")
			return
		}
		room.Image = path
	}

	created, err := rc.Rooms.Create(room)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			utils.JSONError(c, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("❌ DB ERROR: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to create room")
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateRoom (PATCH/PUT /api/admin/rooms/:id) — catalog fields only;
// stock/status edits are rejected by the service and must use the capacity
// endpoint.
func (rc *RoomController) UpdateRoom(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request payload",
			"details": err.Error(),
		})
		return
	}

	if raw, ok := fields["image"].(string); ok && utils.IsDataURI(raw) {
		path, err := utils.SaveBase64Image(raw, "./uploads")
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid image data")
			return
		}
		fields["image"] = path
	}

	room, err := rc.Rooms.Update(id, fields)
	if err != nil {
		if errors.Is(err, services.ErrRoomNotFound) {
			utils.JSONError(c, http.StatusNotFound, fmt.Sprintf("room %d not found", id))
			return
		}
		log.Printf("❌ update error for room %d: %v", id, err)
		utils.JSONError(c, http.StatusInternalServerError, "update failed")
		return
	}
	c.JSON(http.StatusOK, room)
}

type setCapacityPayload struct {
	TotalStock int `json:"totalStock" binding:"required"`
	Stock      int `json:"stock"`
}

// SetCapacity (PUT /api/admin/rooms/:id/capacity) — replaces both inventory
// numbers at once; stock is clamped into [0, totalStock].
func (rc *RoomController) SetCapacity(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var payload setCapacityPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "totalStock is required")
		return
	}

	room, err := rc.Inventory.SetCapacity(id, payload.TotalStock, payload.Stock)
	if err != nil {
		if errors.Is(err, services.ErrRoomNotFound) {
			utils.JSONError(c, http.StatusNotFound, fmt.Sprintf("room %d not found", id))
			return
		}
		log.Printf("❌ set capacity error for room %d: %v", id, err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to set capacity")
		return
	}
	c.JSON(http.StatusOK, room)
}

// DeleteRoom (DELETE /api/admin/rooms/:id)
func (rc *RoomController) DeleteRoom(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := rc.Rooms.Delete(id); err != nil {
		if errors.Is(err, services.ErrRoomNotFound) {
			utils.JSONError(c, http.StatusNotFound, fmt.Sprintf("room %d not found", id))
			return
		}
		log.Printf("❌ DB error during room deletion (id=%d): %v", id, err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete room")
		return
	}
	log.Printf("✅ room %d deleted", id)
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Room deleted successfully"})
}
