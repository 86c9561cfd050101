// Package mail holds the outbound email providers: the Brevo transactional
// API and a log-only mailer for local runs.
package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/kailas-cloud/folio/internal/domain"
	"github.com/kailas-cloud/folio/internal/metrics"
)

// DefaultBrevoURL is the transactional send endpoint.
const DefaultBrevoURL = "https://api.brevo.com/v3/smtp/email"

const providerBrevo = "brevo"

var tracer = otel.Tracer("github.com/kailas-cloud/folio/internal/transport/mail")

// BrevoConfig holds the provider settings.
type BrevoConfig struct {
	APIKey     string
	URL        string
	SenderName string
	SenderMail string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Brevo sends transactional email through the Brevo HTTP API.
type Brevo struct {
	http   *http.Client
	url    string
	apiKey string
	sender contact
	logger *zap.Logger
}

// NewBrevo creates a Brevo mailer.
func NewBrevo(cfg BrevoConfig) (*Brevo, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("brevo: api key is required")
	}
	if cfg.SenderMail == "" {
		return nil, fmt.Errorf("brevo: sender email is required")
	}
	u := cfg.URL
	if u == "" {
		u = DefaultBrevoURL
	}
	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 15 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}
	l := cfg.Logger
	if l == nil {
		l = zap.NewNop()
	}
	return &Brevo{
		http:   hc,
		url:    u,
		apiKey: cfg.APIKey,
		sender: contact{Name: cfg.SenderName, Email: cfg.SenderMail},
		logger: l,
	}, nil
}

type contact struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sendRequest struct {
	Sender      contact   `json:"sender"`
	To          []contact `json:"to"`
	Subject     string    `json:"subject"`
	HTMLContent string    `json:"htmlContent,omitempty"`
	TextContent string    `json:"textContent,omitempty"`
	ReplyTo     *contact  `json:"replyTo,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
}

type sendResponse struct {
	MessageID string `json:"messageId"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Send implements domain.Mailer.
func (b *Brevo) Send(ctx context.Context, email domain.Email) (domain.SendResult, error) {
	if err := email.Validate(); err != nil {
		return domain.SendResult{}, err
	}

	ctx, span := tracer.Start(ctx, "brevo.send")
	defer span.End()
	span.SetAttributes(attribute.String("mail.kind", email.Kind))

	req := sendRequest{
		Sender:      b.sender,
		To:          []contact{{Email: email.To, Name: email.ToName}},
		Subject:     email.Subject,
		HTMLContent: email.HTMLContent,
		TextContent: email.TextContent,
	}
	if email.ReplyTo != "" {
		req.ReplyTo = &contact{Email: email.ReplyTo}
	}
	if email.Kind != "" {
		req.Tags = []string{email.Kind}
	}

	res, err := b.post(ctx, req)
	if err != nil {
		metrics.MailSentTotal.WithLabelValues(providerBrevo, kindLabel(email.Kind), "error").Inc()
		span.SetStatus(codes.Error, err.Error())
		return domain.SendResult{}, err
	}
	metrics.MailSentTotal.WithLabelValues(providerBrevo, kindLabel(email.Kind), "success").Inc()
	return res, nil
}

func (b *Brevo) post(ctx context.Context, payload sendRequest) (domain.SendResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return domain.SendResult{}, fmt.Errorf("brevo: encode request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, b.url, bytes.NewReader(body))
	if err != nil {
		return domain.SendResult{}, fmt.Errorf("brevo: build request: %w", err)
	}
	httpReq.Header.Set("api-key", b.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := b.http.Do(httpReq)
	if err != nil {
		return domain.SendResult{}, fmt.Errorf("brevo: send: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.SendResult{}, fmt.Errorf("brevo: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e errorResponse
		if json.Unmarshal(data, &e) == nil && e.Message != "" {
			return domain.SendResult{}, fmt.Errorf("brevo: status %d: %s", resp.StatusCode, e.Message)
		}
		return domain.SendResult{}, fmt.Errorf("brevo: send failed with status %d", resp.StatusCode)
	}

	var out sendResponse
	if len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, &out); err != nil {
			b.logger.Warn("brevo: undecodable success body", zap.Error(err))
		}
	}
	return domain.SendResult{MessageID: out.MessageID}, nil
}

func kindLabel(kind string) string {
	if strings.TrimSpace(kind) == "" {
		return "other"
	}
	return kind
}
