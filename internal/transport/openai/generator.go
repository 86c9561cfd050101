package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/kailas-cloud/folio/internal/domain"
	domli "github.com/kailas-cloud/folio/internal/domain/linkedin"
	"github.com/kailas-cloud/folio/internal/metrics"
)

// DefaultModel is used when no model is configured.
const DefaultModel = openai.GPT4oMini

var tracer = otel.Tracer("github.com/kailas-cloud/folio/internal/transport/openai")

// Generator drafts LinkedIn content through the OpenAI-compatible chat API
// in JSON mode.
type Generator struct {
	client *openai.Client
	model  string
	user   string
	logger *zap.Logger
}

// Config holds the LLM provider settings.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	User    string
	Logger  *zap.Logger
}

// NewGenerator creates an OpenAI-compatible content generator.
func NewGenerator(cfg *Config) *Generator {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	l := cfg.Logger
	if l == nil {
		l = zap.NewNop()
	}

	return &Generator{
		client: openai.NewClientWithConfig(clientCfg),
		model:  model,
		user:   cfg.User,
		logger: l,
	}
}

// answer is the JSON object the model is told to return.
type answer struct {
	Title       string `json:"title"`
	PostContent string `json:"postContent"`
	Slides      []struct {
		Heading string `json:"heading"`
		Body    string `json:"body"`
	} `json:"slides"`
	Hashtags []string `json:"hashtags"`
}

// Generate implements usecase/linkedin.Generator.
func (g *Generator) Generate(ctx context.Context, req domli.GenerateRequest) (domli.Generated, error) {
	ctx, span := tracer.Start(ctx, "openai.generate")
	defer span.End()
	span.SetAttributes(
		attribute.String("llm.model", g.model),
		attribute.String("linkedin.content_type", string(req.ContentType)),
	)

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt(req)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0.7,
		User:        g.user,
	})
	if err != nil {
		metrics.GenerationRequestsTotal.WithLabelValues(g.model, "error").Inc()
		span.SetStatus(codes.Error, "api error")
		return domli.Generated{}, parseAPIError(err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		metrics.GenerationRequestsTotal.WithLabelValues(g.model, "empty").Inc()
		span.SetStatus(codes.Error, "empty response")
		return domli.Generated{}, fmt.Errorf("empty completion: %w", domain.ErrGenerationFailed)
	}

	metrics.GenerationRequestsTotal.WithLabelValues(g.model, "success").Inc()
	if resp.Usage.TotalTokens > 0 {
		metrics.GenerationTokensTotal.WithLabelValues(g.model, "prompt").Add(float64(resp.Usage.PromptTokens))
		metrics.GenerationTokensTotal.WithLabelValues(g.model, "completion").Add(float64(resp.Usage.CompletionTokens))
	}

	var a answer
	if err := json.Unmarshal([]byte(stripFence(resp.Choices[0].Message.Content)), &a); err != nil {
		span.SetStatus(codes.Error, "malformed json")
		return domli.Generated{}, fmt.Errorf("decode completion: %w: %w", err, domain.ErrGenerationFailed)
	}

	out := domli.Generated{
		Title:       a.Title,
		PostContent: a.PostContent,
		Hashtags:    a.Hashtags,
	}
	for i, s := range a.Slides {
		out.Slides = append(out.Slides, domli.Slide{Number: i + 1, Heading: s.Heading, Body: s.Body})
	}
	return out, nil
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (g *Generator) HealthCheck(ctx context.Context) error {
	if _, err := g.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

const systemPrompt = `You write LinkedIn content for a software engineer's personal brand.
Answer with a single JSON object and nothing else, using these keys:
"title" (short internal title), "postContent" (string, posts only, at most 3000 characters),
"slides" (array of {"heading","body"}, carousels only), "hashtags" (array of strings without '#').`

func userPrompt(req domli.GenerateRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Topic: %s\n", req.Topic)
	if req.Tone != "" {
		fmt.Fprintf(&b, "Tone: %s\n", req.Tone)
	}
	if req.Audience != "" {
		fmt.Fprintf(&b, "Audience: %s\n", req.Audience)
	}
	if req.ContentType == domli.TypeCarousel {
		fmt.Fprintf(&b, "Format: a carousel of exactly %d slides. Leave postContent empty.\n", req.SlideCount)
	} else {
		b.WriteString("Format: a single post. Leave slides empty.\n")
	}
	return b.String()
}

// stripFence removes a ```json fence some models add despite JSON mode.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// parseAPIError extracts a human-readable error from the API response.
// All errors wrap domain.ErrGenerationFailed for the 502 mapping.
func parseAPIError(err error) error {
	wrap := domain.ErrGenerationFailed

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		if detail := extractDetail(reqErr.Body); detail != "" {
			return fmt.Errorf("LLM API error %d: %s: %w", reqErr.HTTPStatusCode, detail, wrap)
		}
		return fmt.Errorf("LLM API error %d: %s: %w", reqErr.HTTPStatusCode, string(reqErr.Body), wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("LLM API error %d: %s: %w", apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	return fmt.Errorf("LLM request failed: %w: %w", err, wrap)
}

// extractDetail extracts the "detail" field from a JSON error body (Nebius error format).
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return ""
}
