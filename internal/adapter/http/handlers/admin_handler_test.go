package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Lee196444/Text2toss-app/internal/adapter/http/handlers/mocks"
	"github.com/Lee196444/Text2toss-app/internal/domain/entities"
	"github.com/Lee196444/Text2toss-app/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func newAdminRouter(h *AdminHandler) *gin.Engine {
	r := gin.New()
	r.GET("/v1/admin/pending-quotes", h.ListPendingQuotes)
	r.GET("/v1/admin/quote-approval-stats", h.ApprovalStats)
	r.POST("/v1/admin/quotes/:quote_id/approve", h.DecideQuote)
	return r
}

func TestAdminHandler_DecideQuote(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("approve with price uses header actor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		quotes := mocks.NewMockIQuoteUseCase(ctrl)
		approval := mocks.NewMockIApprovalUseCase(ctrl)
		r := newAdminRouter(NewAdminHandler(quotes, approval))

		approval.EXPECT().Decide(gomock.Any(), "q-1", gomock.Any()).
			DoAndReturn(func(_ any, _ string, cmd usecase.DecideCommand) (usecase.DecisionResult, error) {
				if cmd.Action != usecase.ActionApprove || cmd.Actor != "maria" || cmd.ApprovedPrice.String() != "250" {
					t.Fatalf("unexpected command: %+v", cmd)
				}
				return usecase.DecisionResult{
					Quote:           entities.Quote{ID: "q-1", ApprovalStatus: entities.ApprovalStatusApproved},
					PendingCustomer: []entities.Booking{{ID: "b-1"}},
				}, nil
			})

		req := httptest.NewRequest(http.MethodPost, "/v1/admin/quotes/q-1/approve", bytes.NewBufferString(`{"action":"approve","approved_price":250,"admin_notes":"extra stairs"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(AdminUserHeader, "maria")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var body struct {
			CustomerApprovalPending []string `json:"customer_approval_pending"`
		}
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if len(body.CustomerApprovalPending) != 1 || body.CustomerApprovalPending[0] != "b-1" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("recorded decision surfaces cascade warning", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		approval := mocks.NewMockIApprovalUseCase(ctrl)
		r := newAdminRouter(NewAdminHandler(mocks.NewMockIQuoteUseCase(ctrl), approval))

		approval.EXPECT().Decide(gomock.Any(), "q-1", gomock.Any()).Return(usecase.DecisionResult{
			Quote:      entities.Quote{ID: "q-1", ApprovalStatus: entities.ApprovalStatusApproved},
			CascadeErr: fmt.Errorf("%w: listing bookings: timeout", usecase.ErrCascadeIncomplete),
		}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/admin/quotes/q-1/approve", bytes.NewBufferString(`{"action":"approve","approved_price":250}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var body struct {
			Warnings []string `json:"warnings"`
		}
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if len(body.Warnings) != 1 || !strings.Contains(body.Warnings[0], "not propagated") {
			t.Fatalf("expected cascade warning, got %s", w.Body.String())
		}
	})

	t.Run("bad price never reaches usecase", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		r := newAdminRouter(NewAdminHandler(mocks.NewMockIQuoteUseCase(ctrl), mocks.NewMockIApprovalUseCase(ctrl)))

		req := httptest.NewRequest(http.MethodPost, "/v1/admin/quotes/q-1/approve", bytes.NewBufferString(`{"action":"approve","approved_price":"lots"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("second decision is invalid state", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		approval := mocks.NewMockIApprovalUseCase(ctrl)
		r := newAdminRouter(NewAdminHandler(mocks.NewMockIQuoteUseCase(ctrl), approval))

		approval.EXPECT().Decide(gomock.Any(), "q-1", gomock.Any()).Return(usecase.DecisionResult{}, usecase.ErrQuoteNotPending)

		req := httptest.NewRequest(http.MethodPost, "/v1/admin/quotes/q-1/approve", bytes.NewBufferString(`{"action":"reject"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["code"] != "INVALID_STATE" {
			t.Fatalf("expected INVALID_STATE, got %v", body["code"])
		}
	})
}

func TestAdminHandler_Queue(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	quotes := mocks.NewMockIQuoteUseCase(ctrl)
	r := newAdminRouter(NewAdminHandler(quotes, mocks.NewMockIApprovalUseCase(ctrl)))

	quotes.EXPECT().ListPending(gomock.Any()).Return(nil, nil)
	quotes.EXPECT().ApprovalStats(gomock.Any()).Return(entities.ApprovalStats{PendingApproval: 2, TotalRequiringApproval: 5}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/admin/pending-quotes", nil))
	if w.Code != http.StatusOK || w.Body.String() != "[]" {
		t.Fatalf("expected empty list, got %d %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/admin/quote-approval-stats", nil))
	var stats map[string]int
	_ = json.Unmarshal(w.Body.Bytes(), &stats)
	if stats["pending_approval"] != 2 || stats["total_requiring_approval"] != 5 {
		t.Fatalf("unexpected stats: %s", w.Body.String())
	}
}
