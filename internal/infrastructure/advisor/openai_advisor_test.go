package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Lee196444/Text2toss-app/internal/domain/entities"
)

func completionServer(t *testing.T, status int, body string, inspect func(chatRequest)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer sk-test" {
			t.Errorf("unexpected auth header %q", r.Header.Get("Authorization"))
		}
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if inspect != nil {
			inspect(req)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func completion(content string) string {
	b, _ := json.Marshal(map[string]any{
		"choices": []any{map[string]any{"message": map[string]any{"content": content}}},
	})
	return string(b)
}

func TestOpenAIAdvisor_SuggestPrice(t *testing.T) {
	t.Run("parses the json suggestion", func(t *testing.T) {
		content := "```json\n" + `{"items":[{"name":"Sofa","quantity":1,"size":"Large"}],"scale_level":5,"price":82.5,"description":"one sofa","explanation":"bulky"}` + "\n```"
		srv := completionServer(t, http.StatusOK, completion(content), func(req chatRequest) {
			if req.Model != "gpt-4o" || req.ResponseFormat["type"] != "json_object" {
				t.Errorf("unexpected request %+v", req)
			}
			user, _ := req.Messages[1].Content.(string)
			if !strings.Contains(user, "1 x Sofa (large)") {
				t.Errorf("expected item line in prompt, got %q", user)
			}
		})
		defer srv.Close()

		a, err := NewOpenAIAdvisor(srv.URL, "sk-test", "gpt-4o", time.Second)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		sugg, err := a.SuggestPrice(context.Background(), []entities.Item{{Name: "Sofa", Quantity: 1, Size: entities.ItemSizeLarge}}, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if sugg.ScaleLevel != 5 || sugg.Price.String() != "82.5" {
			t.Fatalf("unexpected suggestion: %+v", sugg)
		}
		if len(sugg.Items) != 1 || sugg.Items[0].Size != entities.ItemSizeLarge {
			t.Fatalf("unexpected items: %+v", sugg.Items)
		}
	})

	t.Run("api error", func(t *testing.T) {
		srv := completionServer(t, http.StatusTooManyRequests, `{"error":{"message":"slow down","type":"rate_limit"}}`, nil)
		defer srv.Close()

		a, _ := NewOpenAIAdvisor(srv.URL, "sk-test", "gpt-4o", time.Second)
		_, err := a.SuggestPrice(context.Background(), []entities.Item{{Name: "Chair", Quantity: 1, Size: entities.ItemSizeSmall}}, "")
		if err == nil || !strings.Contains(err.Error(), "429") {
			t.Fatalf("expected status error, got %v", err)
		}
	})

	t.Run("empty completion", func(t *testing.T) {
		srv := completionServer(t, http.StatusOK, `{"choices":[]}`, nil)
		defer srv.Close()

		a, _ := NewOpenAIAdvisor(srv.URL, "sk-test", "gpt-4o", time.Second)
		if _, err := a.SuggestPrice(context.Background(), nil, ""); !errors.Is(err, ErrEmptyCompletion) {
			t.Fatalf("expected ErrEmptyCompletion, got %v", err)
		}
	})

	t.Run("prose instead of json", func(t *testing.T) {
		srv := completionServer(t, http.StatusOK, completion("about fifty dollars"), nil)
		defer srv.Close()

		a, _ := NewOpenAIAdvisor(srv.URL, "sk-test", "gpt-4o", time.Second)
		if _, err := a.SuggestPrice(context.Background(), nil, ""); !errors.Is(err, ErrInvalidAdvice) {
			t.Fatalf("expected ErrInvalidAdvice, got %v", err)
		}
	})
}

func TestOpenAIAdvisor_SuggestPriceFromImage(t *testing.T) {
	srv := completionServer(t, http.StatusOK, completion(`{"items":[],"scale_level":3,"price":45}`), func(req chatRequest) {
		parts, ok := req.Messages[1].Content.([]any)
		if !ok || len(parts) != 2 {
			t.Errorf("expected two content parts, got %#v", req.Messages[1].Content)
			return
		}
		img, _ := parts[1].(map[string]any)
		url, _ := img["image_url"].(map[string]any)["url"].(string)
		if !strings.HasPrefix(url, "data:image/png;base64,") {
			t.Errorf("unexpected image url %q", url)
		}
	})
	defer srv.Close()

	a, _ := NewOpenAIAdvisor(srv.URL, "sk-test", "gpt-4o", time.Second)
	sugg, err := a.SuggestPriceFromImage(context.Background(), []byte{0x89, 'P', 'N', 'G'}, "image/png", "garage")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sugg.ScaleLevel != 3 || len(sugg.Items) != 0 {
		t.Fatalf("unexpected suggestion: %+v", sugg)
	}
}

func TestNewOpenAIAdvisor_MissingKey(t *testing.T) {
	if _, err := NewOpenAIAdvisor("https://api.openai.com/v1", "", "gpt-4o", 0); !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
}
