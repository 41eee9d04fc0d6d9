package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Lee196444/Text2toss-app/internal/adapter/http/handlers/mocks"
	"github.com/Lee196444/Text2toss-app/internal/domain/entities"
	"github.com/Lee196444/Text2toss-app/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestAvailabilityHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(h *AvailabilityHandler) *gin.Engine {
		r := gin.New()
		r.GET("/v1/availability/:date", h.GetAvailability)
		r.GET("/v1/availability-range", h.GetAvailabilityRange)
		return r
	}

	t.Run("invalid date", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		r := newRouter(NewAvailabilityHandler(mocks.NewMockISchedulerUseCase(ctrl)))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/availability/tomorrow", nil))

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("restricted day", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		scheduler := mocks.NewMockISchedulerUseCase(ctrl)
		r := newRouter(NewAvailabilityHandler(scheduler))

		friday := time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC)
		scheduler.EXPECT().Availability(gomock.Any(), friday).
			Return(entities.AvailabilityDay{Date: friday, IsRestricted: true, Status: entities.AvailabilityRestricted}, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/availability/2025-03-07", nil))

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["is_restricted"] != true || body["available_count"] != 0.0 {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("range too long", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		scheduler := mocks.NewMockISchedulerUseCase(ctrl)
		r := newRouter(NewAvailabilityHandler(scheduler))

		scheduler.EXPECT().AvailabilityRange(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, fmt.Errorf("%w: range spans 365 days", usecase.ErrInvalidDateRange))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/availability-range?start_date=2025-01-01&end_date=2025-12-31", nil))

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("range keyed by date", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		scheduler := mocks.NewMockISchedulerUseCase(ctrl)
		r := newRouter(NewAvailabilityHandler(scheduler))

		mon := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
		tue := mon.AddDate(0, 0, 1)
		scheduler.EXPECT().AvailabilityRange(gomock.Any(), mon, tue).Return([]entities.AvailabilityDay{
			{Date: mon, TotalSlots: 5, AvailableCount: 4, BookedSlots: []string{"08:00-10:00"}, Status: entities.AvailabilityAvailable},
			{Date: tue, TotalSlots: 5, Status: entities.AvailabilityFullyBooked},
		}, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/availability-range?start_date=2025-03-03&end_date=2025-03-04", nil))

		var body map[string]map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
		if body["2025-03-04"]["status"] != "fully_booked" || body["2025-03-03"]["available_count"] != 4.0 {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}
