package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lottopantera/draw-engine/internal/middleware"
	"github.com/lottopantera/draw-engine/internal/services"
)

// SystemHandler handles runtime system switch HTTP requests
type SystemHandler struct {
	configService services.SystemConfigService
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(configService services.SystemConfigService) *SystemHandler {
	return &SystemHandler{configService: configService}
}

// EmergencyStopRequest is the payload for PUT /system/emergency-stop
type EmergencyStopRequest struct {
	Stopped *bool `json:"stopped" binding:"required"`
}

// GetEmergencyStop handles GET /system/emergency-stop
func (h *SystemHandler) GetEmergencyStop(c *gin.Context) {
	stopped, err := h.configService.IsEmergencyStop(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stopped": stopped})
}

// SetEmergencyStop handles PUT /system/emergency-stop
func (h *SystemHandler) SetEmergencyStop(c *gin.Context) {
	var request EmergencyStopRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.configService.SetEmergencyStop(c.Request.Context(), *request.Stopped, middleware.Actor(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stopped": *request.Stopped})
}
