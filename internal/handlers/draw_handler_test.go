package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lottopantera/draw-engine/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type stubGenerator struct {
	lastDate time.Time
}

func (s *stubGenerator) GenerateForDate(_ context.Context, date time.Time, _ string) ([]*models.Draw, error) {
	s.lastDate = date
	return []*models.Draw{}, nil
}

type stubDrawService struct {
	lastDate time.Time
}

func (s *stubDrawService) GetByID(context.Context, primitive.ObjectID) (*models.Draw, error) {
	return nil, nil
}

func (s *stubDrawService) GetByDate(_ context.Context, date time.Time) ([]*models.Draw, error) {
	s.lastDate = date
	return []*models.Draw{}, nil
}

func (s *stubDrawService) GetByStatus(context.Context, models.DrawStatus) ([]*models.Draw, error) {
	return []*models.Draw{}, nil
}

func (s *stubDrawService) Preselect(context.Context, primitive.ObjectID, string, string) (*models.Draw, error) {
	return nil, nil
}

func (s *stubDrawService) ChangeWinner(context.Context, primitive.ObjectID, string, string) (*models.Draw, error) {
	return nil, nil
}

func (s *stubDrawService) Close(context.Context, primitive.ObjectID, string) (*models.Draw, error) {
	return nil, nil
}

func (s *stubDrawService) Publish(context.Context, primitive.ObjectID, string) (*models.Draw, error) {
	return nil, nil
}

func (s *stubDrawService) ScanAndClose(context.Context, time.Time) (int, error) {
	return 0, nil
}

// Request dates must land in the draw calendar's timezone, not UTC, so API
// calls and the timer drivers address the same slots.
func TestGenerateDraws_ParsesDateInCalendarTimezone(t *testing.T) {
	gin.SetMode(gin.TestMode)
	loc, err := time.LoadLocation("America/Caracas")
	require.NoError(t, err)

	generator := &stubGenerator{}
	handler := NewDrawHandler(&stubDrawService{}, generator, loc)

	router := gin.New()
	router.POST("/draws/generate", handler.GenerateDraws)

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/draws/generate", strings.NewReader(`{"date":"2026-03-14"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)
	want := time.Date(2026, 3, 14, 0, 0, 0, 0, loc)
	assert.True(t, generator.lastDate.Equal(want), "got %v, want %v", generator.lastDate, want)
	assert.Equal(t, loc.String(), generator.lastDate.Location().String())
}

func TestGetDraws_ParsesDateInCalendarTimezone(t *testing.T) {
	gin.SetMode(gin.TestMode)
	loc, err := time.LoadLocation("America/Caracas")
	require.NoError(t, err)

	drawService := &stubDrawService{}
	handler := NewDrawHandler(drawService, &stubGenerator{}, loc)

	router := gin.New()
	router.GET("/draws", handler.GetDraws)

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/draws?date=2026-03-14", nil)
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)
	want := time.Date(2026, 3, 14, 0, 0, 0, 0, loc)
	assert.True(t, drawService.lastDate.Equal(want), "got %v, want %v", drawService.lastDate, want)
}
