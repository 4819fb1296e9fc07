package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lottopantera/draw-engine/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestRespondError_StatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", apperrors.NewValidation("number", "out of range"), http.StatusBadRequest},
		{"not found", fmt.Errorf("draw x: %w", apperrors.ErrNotFound), http.StatusNotFound},
		{"conflict", fmt.Errorf("slug taken: %w", apperrors.ErrConflict), http.StatusConflict},
		{"cutoff", fmt.Errorf("rejected: %w", apperrors.ErrCutoff), http.StatusUnprocessableEntity},
		{"state", fmt.Errorf("published: %w", apperrors.ErrState), http.StatusConflict},
		{"generation", &apperrors.GenerationError{Date: time.Now(), Err: errors.New("db down")}, http.StatusBadGateway},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(recorder)
			respondError(c, tc.err)
			assert.Equal(t, tc.status, recorder.Code)
		})
	}
}
