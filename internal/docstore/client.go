// Package docstore is a REST client for a Firestore-compatible document store:
// the tagged value codec, the document mapper, CRUD operations and
// structured queries.
package docstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/kailas-cloud/folio/internal/metrics"
)

// DefaultBaseURL is the public Firestore REST endpoint.
const DefaultBaseURL = "https://firestore.googleapis.com"

// DefaultDatabase is the database id used when none is configured.
const DefaultDatabase = "(default)"

const pingCollection = "health"

var tracer = otel.Tracer("github.com/kailas-cloud/folio/internal/docstore")

// Config holds connection settings.
type Config struct {
	ProjectID   string
	Database    string
	APIKey      string
	AccessToken string // optional OAuth2 bearer token
	BaseURL     string
	Timeout     time.Duration // 0 keeps the HTTP client default (no timeout)
	HTTPClient  *http.Client
	Logger      *zap.Logger
}

// Client talks to the store over HTTP. It performs no retries.
type Client struct {
	http    *http.Client
	docsURL string
	apiKey  string
	logger  *zap.Logger
}

// New creates a store client.
func New(cfg Config) (*Client, error) {
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("docstore: project id is required")
	}
	database := cfg.Database
	if database == "" {
		database = DefaultDatabase
	}
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if cfg.AccessToken != "" {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
		authed := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: cfg.AccessToken,
			TokenType:   "Bearer",
		}))
		authed.Timeout = httpClient.Timeout
		httpClient = authed
	}

	return &Client{
		http: httpClient,
		docsURL: fmt.Sprintf("%s/v1/projects/%s/databases/%s/documents",
			strings.TrimRight(base, "/"), url.PathEscape(cfg.ProjectID), url.PathEscape(database)),
		apiKey: cfg.APIKey,
		logger: logger,
	}, nil
}

// Get returns the document or nil when it does not exist.
func (c *Client) Get(ctx context.Context, collection, id string) (Record, error) {
	status, body, err := c.do(ctx, OpGet, http.MethodGet, docPath(collection, id), nil, nil)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, nil
	}
	if !isSuccess(status) {
		return nil, newError(OpGet, status, body)
	}

	var doc Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("docstore get: decode response: %w", err)
	}
	return ToRecord(&doc), nil
}

// ListOptions controls an unfiltered collection scan.
type ListOptions struct {
	PageSize  int
	PageToken string
	OrderBy   string // e.g. "createdAt desc"
}

// ListResult is one page of a scan.
type ListResult struct {
	Documents     []Record
	NextPageToken string
}

type listResponse struct {
	Documents     []Document `json:"documents"`
	NextPageToken string     `json:"nextPageToken"`
}

// List scans a collection page by page. There is no filtering here; use RunQuery.
func (c *Client) List(ctx context.Context, collection string, opts ListOptions) (ListResult, error) {
	q := url.Values{}
	if opts.PageSize > 0 {
		q.Set("pageSize", strconv.Itoa(opts.PageSize))
	}
	if opts.PageToken != "" {
		q.Set("pageToken", opts.PageToken)
	}
	if opts.OrderBy != "" {
		q.Set("orderBy", opts.OrderBy)
	}

	status, body, err := c.do(ctx, OpList, http.MethodGet, "/"+collection, q, nil)
	if err != nil {
		return ListResult{}, err
	}
	if !isSuccess(status) {
		return ListResult{}, newError(OpList, status, body)
	}

	var resp listResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return ListResult{}, fmt.Errorf("docstore list: decode response: %w", err)
	}

	docs := make([]Record, 0, len(resp.Documents))
	for i := range resp.Documents {
		if rec := ToRecord(&resp.Documents[i]); rec != nil {
			docs = append(docs, rec)
		}
	}
	return ListResult{Documents: docs, NextPageToken: resp.NextPageToken}, nil
}

// ListAll follows page tokens until the collection is exhausted.
func (c *Client) ListAll(ctx context.Context, collection string, pageSize int) ([]Record, error) {
	var (
		all   []Record
		token string
	)
	for {
		page, err := c.List(ctx, collection, ListOptions{PageSize: pageSize, PageToken: token})
		if err != nil {
			return nil, err
		}
		all = append(all, page.Documents...)
		if page.NextPageToken == "" {
			return all, nil
		}
		token = page.NextPageToken
	}
}

// Create writes a new document. An empty id lets the store mint one; an
// explicit id fails with ErrAlreadyExists when the document is present.
func (c *Client) Create(ctx context.Context, collection, id string, fields Record) (Record, error) {
	encoded, err := EncodeFields(fields)
	if err != nil {
		return nil, fmt.Errorf("docstore create: %w", err)
	}

	q := url.Values{}
	if id != "" {
		q.Set("documentId", id)
	}

	status, body, err := c.do(ctx, OpCreate, http.MethodPost, "/"+collection, q, Document{Fields: encoded})
	if err != nil {
		return nil, err
	}
	if !isSuccess(status) {
		return nil, newError(OpCreate, status, body)
	}
	return decodeDocument(OpCreate, body)
}

// Update overwrites exactly the given fields. Each key is listed in the
// update mask; fields outside the mask are left untouched by the store.
// The document must exist.
func (c *Client) Update(ctx context.Context, collection, id string, fields Record) (Record, error) {
	encoded, err := EncodeFields(fields)
	if err != nil {
		return nil, fmt.Errorf("docstore update: %w", err)
	}
	if len(encoded) == 0 {
		return nil, fmt.Errorf("docstore update: no fields to update")
	}

	q := url.Values{}
	for _, path := range FieldMask(encoded) {
		q.Add("updateMask.fieldPaths", path)
	}
	q.Set("currentDocument.exists", "true")

	status, body, err := c.do(ctx, OpUpdate, http.MethodPatch, docPath(collection, id), q, Document{Fields: encoded})
	if err != nil {
		return nil, err
	}
	if !isSuccess(status) {
		return nil, newError(OpUpdate, status, body)
	}
	return decodeDocument(OpUpdate, body)
}

// Delete removes a document. It reports true on success.
func (c *Client) Delete(ctx context.Context, collection, id string) (bool, error) {
	status, body, err := c.do(ctx, OpDelete, http.MethodDelete, docPath(collection, id), nil, nil)
	if err != nil {
		return false, err
	}
	if !isSuccess(status) {
		return false, newError(OpDelete, status, body)
	}
	return true, nil
}

// Exists reports whether a GET answers 200. The body is never decoded, so a
// malformed payload still counts as present. Only transport failures error.
func (c *Client) Exists(ctx context.Context, collection, id string) (bool, error) {
	status, _, err := c.do(ctx, OpExists, http.MethodGet, docPath(collection, id), nil, nil)
	if err != nil {
		return false, err
	}
	return status == http.StatusOK, nil
}

// Ping lists one document of a probe collection to check the store answers.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.List(ctx, pingCollection, ListOptions{PageSize: 1})
	return err
}

var simpleFieldPath = regexp.MustCompile(`^[A-Za-z_][A-Za-z_0-9]*$`)

// FieldMask returns the sorted, quoted field paths for an update mask.
func FieldMask(fields map[string]Value) []string {
	paths := make([]string, 0, len(fields))
	for k := range fields {
		paths = append(paths, quoteFieldPath(k))
	}
	sort.Strings(paths)
	return paths
}

// quoteFieldPath backtick-quotes names that are not plain identifiers.
func quoteFieldPath(name string) string {
	if simpleFieldPath.MatchString(name) {
		return name
	}
	escaped := strings.ReplaceAll(name, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, "`", "\\`")
	return "`" + escaped + "`"
}

func docPath(collection, id string) string {
	return "/" + collection + "/" + url.PathEscape(id)
}

func isSuccess(status int) bool { return status >= 200 && status < 300 }

func decodeDocument(op string, body []byte) (Record, error) {
	var doc Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("docstore %s: decode response: %w", op, err)
	}
	return ToRecord(&doc), nil
}

// do sends one request and returns the status and the full body.
func (c *Client) do(
	ctx context.Context, op, method, path string, query url.Values, payload any,
) (status int, body []byte, err error) {
	ctx, span := tracer.Start(ctx, "docstore."+op)
	defer span.End()
	span.SetAttributes(attribute.String("docstore.path", path))

	start := time.Now()
	defer func() {
		metrics.ObserveDocstoreRequest(op, status, err, time.Since(start))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		c.logger.Debug("docstore request",
			zap.String("op", op),
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
		)
	}()

	if query == nil {
		query = url.Values{}
	}
	if c.apiKey != "" {
		query.Set("key", c.apiKey)
	}
	target := c.docsURL + path
	if encoded := query.Encode(); encoded != "" {
		target += "?" + encoded
	}

	var reader io.Reader = http.NoBody
	if payload != nil {
		data, marshalErr := json.Marshal(payload)
		if marshalErr != nil {
			return 0, nil, fmt.Errorf("docstore %s: marshal request: %w", op, marshalErr)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("docstore %s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("docstore %s: %w", op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("docstore %s: read response: %w", op, err)
	}
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	return resp.StatusCode, body, nil
}
