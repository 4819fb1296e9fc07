package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lottopantera/draw-engine/internal/middleware"
	"github.com/lottopantera/draw-engine/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TemplateHandler handles game template HTTP requests
type TemplateHandler struct {
	templateService services.TemplateService
}

// NewTemplateHandler creates a new TemplateHandler
func NewTemplateHandler(templateService services.TemplateService) *TemplateHandler {
	return &TemplateHandler{templateService: templateService}
}

// CreateTemplateRequest is the payload for POST /templates
type CreateTemplateRequest struct {
	Name        string   `json:"name" binding:"required"`
	Slug        string   `json:"slug" binding:"required"`
	RangeSize   int      `json:"rangeSize" binding:"required"`
	Active      bool     `json:"active"`
	Description string   `json:"description"`
	DrawTimes   []string `json:"drawTimes"`
}

// UpdateTemplateRequest is the payload for PUT /templates/:id
type UpdateTemplateRequest struct {
	Name        *string  `json:"name"`
	Slug        *string  `json:"slug"`
	RangeSize   *int     `json:"rangeSize"`
	Active      *bool    `json:"active"`
	Description *string  `json:"description"`
	DrawTimes   []string `json:"drawTimes"`
}

// CreateTemplate handles POST /templates
func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	var request CreateTemplateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	template, err := h.templateService.Create(c.Request.Context(), services.TemplateCreateInput{
		Name:        request.Name,
		Slug:        request.Slug,
		RangeSize:   request.RangeSize,
		Active:      request.Active,
		Description: request.Description,
		DrawTimes:   request.DrawTimes,
	}, middleware.Actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, template)
}

// UpdateTemplate handles PUT /templates/:id
func (h *TemplateHandler) UpdateTemplate(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var request UpdateTemplateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	template, err := h.templateService.Update(c.Request.Context(), id, services.TemplateUpdateInput{
		Name:        request.Name,
		Slug:        request.Slug,
		RangeSize:   request.RangeSize,
		Active:      request.Active,
		Description: request.Description,
		DrawTimes:   request.DrawTimes,
	}, middleware.Actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, template)
}

// DeactivateTemplate handles POST /templates/:id/deactivate
func (h *TemplateHandler) DeactivateTemplate(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	template, err := h.templateService.Deactivate(c.Request.Context(), id, middleware.Actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, template)
}

// GetTemplateByID handles GET /templates/:id
func (h *TemplateHandler) GetTemplateByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	template, err := h.templateService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, template)
}

// GetAllTemplates handles GET /templates
func (h *TemplateHandler) GetAllTemplates(c *gin.Context) {
	templates, err := h.templateService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, templates)
}
