// Package ai turns free-form text into schedule suggestions using a chat
// model. The response is untyped JSON from an external service, so it is
// validated field by field at this boundary before anything becomes a Task.
package ai

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/tidwall/gjson"

	"gantt/internal/dateutil"
	"gantt/internal/models"
)

// ErrUnavailable means no API key is configured. Callers should hide the
// feature entirely rather than retry.
var ErrUnavailable = errors.New("ai: no API key configured")

const systemPrompt = `You convert project descriptions into a JSON array of work items.
Respond with ONLY a JSON array, no prose. Each element:
{"name": string, "durationDays": number, "offsetFromBase": number (days from the base date, may be negative), "color": string (hex, modern palette), "progress": number (0-100)}.
If a task has no explicit date, schedule it sequentially after the previous one.`

// Client calls the suggestion service. The zero value is an unavailable
// client.
type Client struct {
	api       openai.Client
	model     string
	available bool
}

// New builds a client. An empty API key yields a permanently unavailable
// client; Available lets the UI disable the feature up front instead of
// failing on every call.
func New(apiKey, model string) *Client {
	if apiKey == "" {
		return &Client{}
	}
	return &Client{
		api:       openai.NewClient(option.WithAPIKey(apiKey)),
		model:     model,
		available: true,
	}
}

// Available reports whether the service can be called at all.
func (c *Client) Available() bool {
	return c.available
}

// Suggest asks the model to break the input text into scheduled work items
// relative to baseDate. The whole batch fails if any item is invalid; no
// partial results are returned.
func (c *Client) Suggest(ctx context.Context, input string, baseDate time.Time) ([]models.Suggestion, error) {
	if !c.available {
		return nil, ErrUnavailable
	}

	user := fmt.Sprintf("The current date (base date) is %s.\nText: %q", dateutil.Format(baseDate), input)
	completion, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(user),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("ai: suggestion call: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, errors.New("ai: empty completion")
	}

	return ParseSuggestions(completion.Choices[0].Message.Content)
}

// ParseSuggestions validates the model's raw response against the suggestion
// schema. name, durationDays and offsetFromBase are required; color and
// progress default when absent but are validated when present. Any invalid
// item rejects the whole batch.
func ParseSuggestions(raw string) ([]models.Suggestion, error) {
	raw = stripFences(raw)
	if !gjson.Valid(raw) {
		return nil, errors.New("ai: response is not valid JSON")
	}

	parsed := gjson.Parse(raw)
	if !parsed.IsArray() {
		return nil, errors.New("ai: response is not a JSON array")
	}

	var out []models.Suggestion
	for i, item := range parsed.Array() {
		s, err := parseItem(item)
		if err != nil {
			return nil, fmt.Errorf("ai: item %d: %w", i, err)
		}
		out = append(out, s)
	}
	return out, nil
}

func parseItem(item gjson.Result) (models.Suggestion, error) {
	var s models.Suggestion
	if !item.IsObject() {
		return s, errors.New("not an object")
	}

	name := item.Get("name")
	if name.Type != gjson.String || name.Str == "" {
		return s, errors.New("missing name")
	}
	s.Name = name.Str

	duration, err := intField(item, "durationDays", true)
	if err != nil {
		return s, err
	}
	if duration < 0 {
		return s, errors.New("negative durationDays")
	}
	s.DurationDays = duration

	s.OffsetFromBase, err = intField(item, "offsetFromBase", true)
	if err != nil {
		return s, err
	}

	if color := item.Get("color"); color.Exists() {
		if color.Type != gjson.String {
			return s, errors.New("color is not a string")
		}
		s.Color = color.Str
	}

	progress, err := intField(item, "progress", false)
	if err != nil {
		return s, err
	}
	if progress < 0 || progress > 100 {
		return s, errors.New("progress out of range")
	}
	s.Progress = progress

	return s, nil
}

func intField(item gjson.Result, key string, required bool) (int, error) {
	v := item.Get(key)
	if !v.Exists() {
		if required {
			return 0, fmt.Errorf("missing %s", key)
		}
		return 0, nil
	}
	if v.Type != gjson.Number {
		return 0, fmt.Errorf("%s is not a number", key)
	}
	return int(math.Round(v.Num)), nil
}

// stripFences removes a markdown code fence if the model wrapped its answer
// in one.
func stripFences(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "```") {
		return raw
	}
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(strings.TrimSpace(raw), "```")
	return strings.TrimSpace(raw)
}
