package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lottopantera/draw-engine/internal/models"
	"github.com/lottopantera/draw-engine/internal/services"
)

// AuditHandler handles audit log HTTP requests
type AuditHandler struct {
	auditService services.AuditService
}

// NewAuditHandler creates a new AuditHandler
func NewAuditHandler(auditService services.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// GetAuditEntries handles GET /audit with optional subject or action filters
func (h *AuditHandler) GetAuditEntries(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 500 {
		limit = 50
	}

	ctx := c.Request.Context()

	if subjectID := c.Query("subject"); subjectID != "" {
		entries, err := h.auditService.GetBySubject(ctx, subjectID, page, limit)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"page": page, "limit": limit, "entries": entries})
		return
	}

	if action := c.Query("action"); action != "" {
		entries, err := h.auditService.GetByAction(ctx, models.AuditAction(action), page, limit)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"page": page, "limit": limit, "entries": entries})
		return
	}

	entries, err := h.auditService.List(ctx, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": page, "limit": limit, "entries": entries})
}
