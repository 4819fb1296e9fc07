package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lottopantera/draw-engine/internal/middleware"
	"github.com/lottopantera/draw-engine/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PauseHandler handles draw pause HTTP requests. Pause dates are interpreted
// in the draw calendar's timezone, matching the generator's date handling.
type PauseHandler struct {
	pauseService services.PauseService
	location     *time.Location
}

// NewPauseHandler creates a new PauseHandler
func NewPauseHandler(pauseService services.PauseService, location *time.Location) *PauseHandler {
	return &PauseHandler{pauseService: pauseService, location: location}
}

// CreatePauseRequest is the payload for POST /pauses. An empty templateId
// creates a global pause covering every game on the date.
type CreatePauseRequest struct {
	TemplateID string `json:"templateId"`
	Date       string `json:"date" binding:"required"` // YYYY-MM-DD
	Reason     string `json:"reason" binding:"required"`
}

// CreatePause handles POST /pauses
func (h *PauseHandler) CreatePause(c *gin.Context) {
	var request CreatePauseRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := time.ParseInLocation("2006-01-02", request.Date, h.location)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format, expected YYYY-MM-DD"})
		return
	}

	var templateID primitive.ObjectID
	if request.TemplateID != "" {
		templateID, err = primitive.ObjectIDFromHex(request.TemplateID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid template ID format"})
			return
		}
	}

	pause, err := h.pauseService.Create(c.Request.Context(), templateID, date, request.Reason, middleware.Actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pause)
}

// DeletePause handles DELETE /pauses/:id
func (h *PauseHandler) DeletePause(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	if err := h.pauseService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Pause deleted"})
}

// GetAllPauses handles GET /pauses
func (h *PauseHandler) GetAllPauses(c *gin.Context) {
	pauses, err := h.pauseService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pauses)
}
