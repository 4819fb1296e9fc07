package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lottopantera/draw-engine/internal/middleware"
	"github.com/lottopantera/draw-engine/internal/models"
	"github.com/lottopantera/draw-engine/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DrawHandler handles draw lifecycle HTTP requests. Request dates are
// interpreted in the draw calendar's timezone so API calls and the timer
// drivers address the same (template, date, time) slots.
type DrawHandler struct {
	drawService      services.DrawService
	generatorService services.GeneratorService
	location         *time.Location
}

// NewDrawHandler creates a new DrawHandler
func NewDrawHandler(drawService services.DrawService, generatorService services.GeneratorService, location *time.Location) *DrawHandler {
	return &DrawHandler{drawService: drawService, generatorService: generatorService, location: location}
}

// GenerateDrawsRequest is the payload for POST /draws/generate
type GenerateDrawsRequest struct {
	Date string `json:"date" binding:"required"` // YYYY-MM-DD
}

// WinnerRequest carries a winning number for preselect and change operations
type WinnerRequest struct {
	Number string `json:"number" binding:"required"`
}

// GenerateDraws handles POST /draws/generate
func (h *DrawHandler) GenerateDraws(c *gin.Context) {
	var request GenerateDrawsRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := time.ParseInLocation("2006-01-02", request.Date, h.location)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format, expected YYYY-MM-DD"})
		return
	}

	draws, err := h.generatorService.GenerateForDate(c.Request.Context(), date, middleware.Actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"created": len(draws), "draws": draws})
}

// GetDrawByID handles GET /draws/:id
func (h *DrawHandler) GetDrawByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	draw, err := h.drawService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, draw)
}

// GetDraws handles GET /draws with optional date or status filters
func (h *DrawHandler) GetDraws(c *gin.Context) {
	if dateStr := c.Query("date"); dateStr != "" {
		date, err := time.ParseInLocation("2006-01-02", dateStr, h.location)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format, expected YYYY-MM-DD"})
			return
		}
		draws, err := h.drawService.GetByDate(c.Request.Context(), date)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, draws)
		return
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status := models.DrawStatus(statusStr)
		switch status {
		case models.DrawStatusScheduled, models.DrawStatusClosed, models.DrawStatusPublished:
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
		draws, err := h.drawService.GetByStatus(c.Request.Context(), status)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, draws)
		return
	}

	c.JSON(http.StatusBadRequest, gin.H{"error": "Either date or status query parameter is required"})
}

// PreselectWinner handles POST /draws/:id/preselect
func (h *DrawHandler) PreselectWinner(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var request WinnerRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	draw, err := h.drawService.Preselect(c.Request.Context(), id, request.Number, middleware.Actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, draw)
}

// ChangeWinner handles PUT /draws/:id/winner
func (h *DrawHandler) ChangeWinner(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var request WinnerRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	draw, err := h.drawService.ChangeWinner(c.Request.Context(), id, request.Number, middleware.Actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, draw)
}

// CloseDraw handles POST /draws/:id/close
func (h *DrawHandler) CloseDraw(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	draw, err := h.drawService.Close(c.Request.Context(), id, middleware.Actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, draw)
}

// PublishDraw handles POST /draws/:id/publish
func (h *DrawHandler) PublishDraw(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	draw, err := h.drawService.Publish(c.Request.Context(), id, middleware.Actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, draw)
}
