package advisor

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/Lee196444/Text2toss-app/internal/domain/entities"
	"github.com/Lee196444/Text2toss-app/internal/usecase/interfaces"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

var (
	ErrMissingAPIKey   = errors.New("missing OPENAI_API_KEY")
	ErrEmptyCompletion = errors.New("advisor returned no content")
	ErrInvalidAdvice   = errors.New("advisor returned an unusable suggestion")
)

const systemPrompt = `You price junk-removal pickups on a 12 level volume scale.
Item sizes are small, medium or large. Answer only with a JSON object:
{"items":[{"name":string,"quantity":int,"size":"small|medium|large","description":string}],
"scale_level":int,"price":number,"description":string,"explanation":string}
Prices are in US dollars.`

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatRequest struct {
	Model          string            `json:"model"`
	Messages       []chatMessage     `json:"messages"`
	ResponseFormat map[string]string `json:"response_format"`
	Temperature    float64           `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

type advice struct {
	Items []struct {
		Name        string `json:"name"`
		Quantity    int    `json:"quantity"`
		Size        string `json:"size"`
		Description string `json:"description"`
	} `json:"items"`
	ScaleLevel  int     `json:"scale_level"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Explanation string  `json:"explanation"`
}

// OpenAIAdvisor asks a chat-completions model for a price. It implements both the
// text and the vision advisor.
type OpenAIAdvisor struct {
	client *resty.Client
	model  string
}

var (
	_ interfaces.IPriceAdvisor  = (*OpenAIAdvisor)(nil)
	_ interfaces.IVisionAdvisor = (*OpenAIAdvisor)(nil)
)

func NewOpenAIAdvisor(baseURL, apiKey, model string, timeout time.Duration) (*OpenAIAdvisor, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetAuthToken(apiKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)
	log.Printf("[quote][advisor] openai client initialized model=%s", model)
	return &OpenAIAdvisor{client: client, model: model}, nil
}

func (a *OpenAIAdvisor) SuggestPrice(ctx context.Context, items []entities.Item, description string) (interfaces.PriceSuggestion, error) {
	var b strings.Builder
	b.WriteString("Items:\n")
	for _, it := range items {
		fmt.Fprintf(&b, "- %d x %s (%s)", it.Quantity, it.Name, it.Size)
		if it.Description != "" {
			fmt.Fprintf(&b, ": %s", it.Description)
		}
		b.WriteString("\n")
	}
	if description != "" {
		fmt.Fprintf(&b, "Customer notes: %s\n", description)
	}
	return a.complete(ctx, b.String())
}

func (a *OpenAIAdvisor) SuggestPriceFromImage(ctx context.Context, image []byte, mimeType string, description string) (interfaces.PriceSuggestion, error) {
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	text := "List every item you can see in the photo and price the pickup."
	if description != "" {
		text += " Customer notes: " + description
	}
	parts := []contentPart{
		{Type: "text", Text: text},
		{Type: "image_url", ImageURL: &imageURL{URL: "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(image)}},
	}
	return a.complete(ctx, parts)
}

func (a *OpenAIAdvisor) complete(ctx context.Context, userContent any) (interfaces.PriceSuggestion, error) {
	req := chatRequest{
		Model: a.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userContent},
		},
		ResponseFormat: map[string]string{"type": "json_object"},
		Temperature:    0.2,
	}

	var out chatResponse
	var apiErr apiError
	resp, err := a.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		SetError(&apiErr).
		Post("/chat/completions")
	if err != nil {
		return interfaces.PriceSuggestion{}, err
	}
	if resp.IsError() {
		log.Printf("[quote][advisor] openai rejected status=%d type=%s", resp.StatusCode(), apiErr.Error.Type)
		return interfaces.PriceSuggestion{}, fmt.Errorf("openai: status %d: %s", resp.StatusCode(), apiErr.Error.Message)
	}
	if len(out.Choices) == 0 || strings.TrimSpace(out.Choices[0].Message.Content) == "" {
		return interfaces.PriceSuggestion{}, ErrEmptyCompletion
	}
	return parseAdvice(out.Choices[0].Message.Content)
}

func parseAdvice(content string) (interfaces.PriceSuggestion, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var adv advice
	if err := json.Unmarshal([]byte(content), &adv); err != nil {
		return interfaces.PriceSuggestion{}, fmt.Errorf("%w: %w", ErrInvalidAdvice, err)
	}
	if math.IsNaN(adv.Price) || math.IsInf(adv.Price, 0) {
		return interfaces.PriceSuggestion{}, fmt.Errorf("%w: price is not a number", ErrInvalidAdvice)
	}

	items := make([]entities.Item, 0, len(adv.Items))
	for _, it := range adv.Items {
		size, _ := entities.ParseItemSize(it.Size)
		items = append(items, entities.Item{
			Name:        it.Name,
			Quantity:    it.Quantity,
			Size:        size,
			Description: it.Description,
		})
	}
	return interfaces.PriceSuggestion{
		Items:       items,
		ScaleLevel:  adv.ScaleLevel,
		Price:       decimal.NewFromFloat(adv.Price),
		Description: adv.Description,
		Explanation: adv.Explanation,
	}, nil
}
