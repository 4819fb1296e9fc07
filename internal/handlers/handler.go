package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lottopantera/draw-engine/internal/apperrors"
)

// respondError maps the engine's error taxonomy to HTTP status codes so the
// admin UI can render the appropriate message.
func respondError(c *gin.Context, err error) {
	var ve *apperrors.ValidationError
	var ge *apperrors.GenerationError

	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error(), "kind": "validation"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "kind": "not-found"})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "kind": "conflict"})
	case errors.Is(err, apperrors.ErrCutoff):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "kind": "cutoff"})
	case errors.Is(err, apperrors.ErrState):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "kind": "state"})
	case errors.As(err, &ge):
		c.JSON(http.StatusBadGateway, gin.H{"error": ge.Error(), "kind": "generation", "retryable": true})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
