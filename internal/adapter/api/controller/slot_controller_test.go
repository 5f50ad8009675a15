package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parrillasur/reservabot/internal/adapter/api/dto"
	"github.com/parrillasur/reservabot/internal/domain/availability"
	"github.com/parrillasur/reservabot/pkg/rules"
)

type fakeSlotRepository struct {
	slots     []availability.Slot
	listErr   error
	created   *availability.Slot
	createErr error
}

func (r *fakeSlotRepository) ListOpenSlots(context.Context, string) ([]availability.Slot, error) {
	var open []availability.Slot
	for _, s := range r.slots {
		if s.Free() {
			open = append(open, s)
		}
	}
	return open, r.listErr
}

func (r *fakeSlotRepository) ListByDate(context.Context, string) ([]availability.Slot, error) {
	return r.slots, r.listErr
}

func (r *fakeSlotRepository) Create(_ context.Context, slot *availability.Slot) error {
	if r.createErr != nil {
		return r.createErr
	}
	slot.ID = "nuevo-id"
	r.created = slot
	return nil
}

func (r *fakeSlotRepository) Commit(context.Context, string, string, string, string, string) (*availability.Confirmation, error) {
	return nil, availability.ErrSlotNotFound
}

func newSlotTestRouter(repo *fakeSlotRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)

	c := NewSlotController(repo, rules.Default())
	router := gin.New()
	router.POST("/slots", c.Create)
	router.GET("/slots", c.List)
	router.GET("/slots/summary", c.Summary)
	return router
}

func TestSlotCreate(t *testing.T) {
	repo := &fakeSlotRepository{}
	router := newSlotTestRouter(repo)

	body := `{"date": "2025-07-02", "time": "21", "sector": "Terraza", "capacity": 4}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/slots", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, repo.created)
	assert.Equal(t, "2025-07-02", repo.created.Date)

	var resp dto.SlotResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "nuevo-id", resp.ID)
	assert.True(t, resp.Free)
}

func TestSlotCreateRejectsUnknownSector(t *testing.T) {
	router := newSlotTestRouter(&fakeSlotRepository{})

	body := `{"date": "2025-07-02", "time": "21", "sector": "Sótano", "capacity": 4}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/slots", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSlotCreateRejectsMissingFields(t *testing.T) {
	router := newSlotTestRouter(&fakeSlotRepository{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/slots", bytes.NewBufferString(`{"date": "2025-07-02"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSlotListRequiresDate(t *testing.T) {
	router := newSlotTestRouter(&fakeSlotRepository{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/slots", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSlotSummaryCountsOccupation(t *testing.T) {
	repo := &fakeSlotRepository{
		slots: []availability.Slot{
			{ID: "1", Date: "2025-07-02", Time: "20", Sector: "Interior"},
			{ID: "2", Date: "2025-07-02", Time: "21", Sector: "Interior", ReservedName: "Ana"},
			{ID: "3", Date: "2025-07-02", Time: "21", Sector: "Terraza"},
		},
	}
	router := newSlotTestRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/slots/summary?date=2025-07-02", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.DaySummaryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, 2, resp.Free)
	assert.Equal(t, 1, resp.Reserved)
}
