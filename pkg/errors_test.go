package pkg

import (
	"errors"
	"net/http"
	"testing"
)

func TestAppError(t *testing.T) {
	t.Run("simple", func(t *testing.T) {
		e := NewDomainErrorSimple("NOT_FOUND", "Quote not found", http.StatusNotFound)
		if e.HTTPStatus != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", e.HTTPStatus)
		}
		body := e.ToHTTPError()
		if body.Code != "NOT_FOUND" || body.Message != "Quote not found" || body.Details != nil {
			t.Fatalf("unexpected body: %+v", body)
		}
	})

	t.Run("wraps cause", func(t *testing.T) {
		cause := errors.New("db down")
		e := NewDomainError("INTERNAL_ERROR", "An internal error occurred", cause, http.StatusInternalServerError)
		if !errors.Is(e, cause) {
			t.Fatalf("expected wrapped cause")
		}
		if e.ToHTTPError().Message != "An internal error occurred" {
			t.Fatalf("cause must not leak into the body")
		}
	})

	t.Run("details copy", func(t *testing.T) {
		base := NewDomainErrorSimple("CONFLICT", "Slot taken", http.StatusConflict)
		withDetails := base.WithDetails(map[string]any{"slot": "08:00-10:00"})
		if base.Details != nil {
			t.Fatalf("base must stay untouched")
		}
		if withDetails.ToHTTPError().Details["slot"] != "08:00-10:00" {
			t.Fatalf("missing details")
		}
	})
}
