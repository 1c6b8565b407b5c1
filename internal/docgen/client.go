package docgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Service defines the Generation Service operations the controllers use.
// It is implemented by *Client and can be faked in tests.
type Service interface {
	GenerateDocument(ctx context.Context, req DocumentRequest) (Document, error)
	DraftText(ctx context.Context, req DraftRequest) (DraftResponse, error)
	Ping(ctx context.Context) (Health, error)
}

// Ensure Client implements Service at compile time.
var _ Service = (*Client)(nil)

// Client talks to the Generation Service HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	log       logrus.FieldLogger
}

const (
	// DefaultAPIURL is used when no base address override is configured.
	DefaultAPIURL    = "http://127.0.0.1:8000"
	defaultUserAgent = "pitchdeck/0.1"
	maxErrorBody     = 64 << 10

	generatePath = "generate"
	draftPath    = "ai/generate-text"
)

// Option customises a Client.
type Option func(*Client)

// WithTimeout bounds every request. Zero, the default, means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// NewClient builds a Client for the given base address.
func NewClient(apiURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(apiURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   base,
		http:      &http.Client{},
		userAgent: defaultUserAgent,
		log:       logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the resolved service address.
func (c *Client) BaseURL() string {
	if c == nil || c.baseURL == nil {
		return ""
	}
	return c.baseURL.String()
}

// GenerateDocument posts the logo, text and style as a multipart form and
// returns the binary document.
func (c *Client) GenerateDocument(ctx context.Context, req DocumentRequest) (Document, error) {
	if c == nil {
		return Document{}, fmt.Errorf("client is nil")
	}
	body, contentType, err := encodeDocumentForm(req)
	if err != nil {
		return Document{}, err
	}

	httpReq, requestID, err := c.newRequest(ctx, http.MethodPost, generatePath, body)
	if err != nil {
		return Document{}, err
	}
	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set("Accept", "application/pdf, application/octet-stream")

	resp, err := c.send(httpReq, requestID, generatePath)
	if err != nil {
		return Document{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Document{}, fmt.Errorf("read document: %w", err)
	}
	return Document{
		Data:        data,
		ContentType: resp.Header.Get("Content-Type"),
		RequestID:   requestID,
	}, nil
}

// DraftText asks the drafting endpoint for generated text.
func (c *Client) DraftText(ctx context.Context, req DraftRequest) (DraftResponse, error) {
	if c == nil {
		return DraftResponse{}, fmt.Errorf("client is nil")
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return DraftResponse{}, fmt.Errorf("encode draft request: %w", err)
	}

	httpReq, requestID, err := c.newRequest(ctx, http.MethodPost, draftPath, bytes.NewReader(payload))
	if err != nil {
		return DraftResponse{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	var out DraftResponse
	if err := c.doJSON(httpReq, requestID, draftPath, &out); err != nil {
		return DraftResponse{}, err
	}
	return out, nil
}

// Ping fetches the service banner from GET /.
func (c *Client) Ping(ctx context.Context) (Health, error) {
	if c == nil {
		return Health{}, fmt.Errorf("client is nil")
	}
	httpReq, requestID, err := c.newRequest(ctx, http.MethodGet, "", nil)
	if err != nil {
		return Health{}, err
	}
	httpReq.Header.Set("Accept", "application/json")

	var out Health
	if err := c.doJSON(httpReq, requestID, "/", &out); err != nil {
		return Health{}, err
	}
	return out, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, string, error) {
	reqURL := c.baseURL.JoinPath(path)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), body)
	if err != nil {
		return nil, "", fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	return req, requestID, nil
}

// send executes req and converts error statuses into *ServiceError. On
// success the caller owns the response body.
func (c *Client) send(req *http.Request, requestID, endpoint string) (*http.Response, error) {
	entry := c.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"endpoint":   endpoint,
	})
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		entry.WithError(err).Warn("request failed")
		return nil, fmt.Errorf("execute request: %w", err)
	}

	entry = entry.WithFields(logrus.Fields{
		"status":   resp.StatusCode,
		"duration": time.Since(start),
	})
	if resp.StatusCode >= 400 {
		defer func() { _ = resp.Body.Close() }()
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		svcErr := &ServiceError{
			Endpoint: endpoint,
			Status:   resp.StatusCode,
			Detail:   decodeDetail(raw),
		}
		entry.WithField("detail", svcErr.Detail).Warn("service returned error")
		return nil, svcErr
	}
	entry.Debug("request completed")
	return resp, nil
}

func (c *Client) doJSON(req *http.Request, requestID, endpoint string, dest any) error {
	resp, err := c.send(req, requestID, endpoint)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func encodeDocumentForm(req DocumentRequest) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	name := strings.TrimSpace(req.LogoName)
	if name == "" {
		name = "logo"
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="logo"; filename="%s"`, quoteEscaper.Replace(name)))
	header.Set("Content-Type", http.DetectContentType(req.Logo))
	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("create logo part: %w", err)
	}
	if _, err := part.Write(req.Logo); err != nil {
		return nil, "", fmt.Errorf("write logo part: %w", err)
	}
	if err := w.WriteField("text", req.Text); err != nil {
		return nil, "", fmt.Errorf("write text part: %w", err)
	}
	if err := w.WriteField("style", string(req.Style)); err != nil {
		return nil, "", fmt.Errorf("write style part: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func parseBaseURL(apiURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiURL)
	if trimmed == "" {
		trimmed = DefaultAPIURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", apiURL, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api url %q: missing host", apiURL)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
