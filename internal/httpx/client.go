// Package httpx is the uniform outbound HTTP helper behind every provider
// send and resource call. It never fails on HTTP-level errors; instead it
// extracts a human-readable error list from the response body along the
// provider's declared error path.
package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/jmespath/go-jmespath"
	"go.uber.org/zap"
)

// Settings carries the ambient client configuration read from the process
// environment.
type Settings struct {
	Timeout   time.Duration `env:"HERALD_HTTP_TIMEOUT" envDefault:"30s"`
	UserAgent string        `env:"HERALD_HTTP_USER_AGENT" envDefault:"herald"`
}

// BasicAuth is a username/password pair for HTTP basic authentication.
type BasicAuth struct {
	Username string
	Password string
}

// FilePart names a file to attach as a multipart form part.
type FilePart struct {
	Field string
	Path  string
}

// Request describes one outbound call. Exactly one of JSON, Form or Files
// should drive the body; Files implies a multipart body with Form values as
// regular parts.
type Request struct {
	Method    string
	URL       string
	Headers   map[string]string
	Query     url.Values
	JSON      any
	Form      url.Values
	Files     []FilePart
	BasicAuth *BasicAuth

	// ErrorPath is the ordered key path walked through a JSON error body to
	// extract the provider's own failure message.
	ErrorPath []string

	// Timeout overrides the client timeout for this request when positive.
	Timeout time.Duration
}

// Result is the uniform outcome of a call. Errors is nil exactly when the
// provider answered with a 2xx status.
type Result struct {
	Response *http.Response
	Body     []byte
	Errors   []string
}

// OK reports whether the call succeeded.
func (r *Result) OK() bool { return len(r.Errors) == 0 }

// JSONBody parses the response body as JSON.
func (r *Result) JSONBody() (any, error) {
	var parsed any
	if err := json.Unmarshal(r.Body, &parsed); err != nil {
		return nil, fmt.Errorf("parsing response body: %w", err)
	}
	return parsed, nil
}

// Client wraps an http.Client with the herald conventions.
type Client struct {
	http      *http.Client
	userAgent string
	logger    *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTimeout sets the client-wide timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithLogger attaches a logger used for debug-level request logging.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New builds a Client from the environment settings and the given options.
func New(opts ...Option) (*Client, error) {
	settings := Settings{}
	if err := env.Parse(&settings); err != nil {
		return nil, fmt.Errorf("parsing http client settings: %w", err)
	}
	c := &Client{
		http:      &http.Client{Timeout: settings.Timeout},
		userAgent: settings.UserAgent,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Get performs req as a GET.
func (c *Client) Get(ctx context.Context, req Request) (*Result, error) {
	req.Method = http.MethodGet
	return c.Do(ctx, req)
}

// Post performs req as a POST.
func (c *Client) Post(ctx context.Context, req Request) (*Result, error) {
	req.Method = http.MethodPost
	return c.Do(ctx, req)
}

// Do performs the request. The returned error is reserved for programmer
// mistakes (malformed URL, unserializable body) and canceled contexts;
// transport and HTTP-level failures surface in Result.Errors.
func (c *Client) Do(ctx context.Context, req Request) (*Result, error) {
	body, contentType, err := buildBody(&req)
	if err != nil {
		return nil, err
	}

	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	if req.BasicAuth != nil {
		httpReq.SetBasicAuth(req.BasicAuth.Username, req.BasicAuth.Password)
	}
	if len(req.Query) > 0 {
		query := httpReq.URL.Query()
		for k, values := range req.Query {
			for _, v := range values {
				query.Add(k, v)
			}
		}
		httpReq.URL.RawQuery = query.Encode()
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		c.logger.Debug("transport failure",
			zap.String("method", req.Method),
			zap.String("url", req.URL),
			zap.Error(err))
		return &Result{Errors: []string{err.Error()}}, nil
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Result{Response: resp, Errors: []string{err.Error()}}, nil
	}

	c.logger.Debug("request complete",
		zap.String("method", req.Method),
		zap.String("url", req.URL),
		zap.Int("status", resp.StatusCode))

	result := &Result{Response: resp, Body: respBody}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		result.Errors = extractErrors(resp, respBody, req.ErrorPath)
	}
	return result, nil
}

func buildBody(req *Request) (io.Reader, string, error) {
	switch {
	case len(req.Files) > 0:
		return buildMultipartBody(req)
	case req.JSON != nil:
		encoded, err := json.Marshal(req.JSON)
		if err != nil {
			return nil, "", fmt.Errorf("encoding JSON body: %w", err)
		}
		return bytes.NewReader(encoded), "application/json", nil
	case req.Form != nil:
		return strings.NewReader(req.Form.Encode()), "application/x-www-form-urlencoded", nil
	default:
		return nil, "", nil
	}
}

// buildMultipartBody assembles the multipart payload up front so that every
// attachment handle is closed before the request goes out, on success and
// on failure alike.
func buildMultipartBody(req *Request) (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	for key, values := range req.Form {
		for _, v := range values {
			if err := writer.WriteField(key, v); err != nil {
				return nil, "", fmt.Errorf("writing form field %q: %w", key, err)
			}
		}
	}
	for _, file := range req.Files {
		if err := appendFilePart(writer, file); err != nil {
			return nil, "", err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("finalizing multipart body: %w", err)
	}
	return buf, writer.FormDataContentType(), nil
}

func appendFilePart(writer *multipart.Writer, file FilePart) error {
	f, err := os.Open(file.Path)
	if err != nil {
		return fmt.Errorf("opening attachment %q: %w", file.Path, err)
	}
	defer f.Close()

	part, err := writer.CreateFormFile(file.Field, filepath.Base(file.Path))
	if err != nil {
		return fmt.Errorf("creating form file %q: %w", file.Field, err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("reading attachment %q: %w", file.Path, err)
	}
	return nil
}

// extractErrors walks the declared error path through the JSON error body.
// A string value becomes a single-element list, a list is kept, and any
// other shape falls back to the raw response text.
func extractErrors(resp *http.Response, body []byte, path []string) []string {
	fallback := strings.TrimSpace(string(body))
	if fallback == "" {
		fallback = resp.Status
	}

	var parsed any
	if err := json.Unmarshal(body, &parsed); err != nil {
		return []string{fallback}
	}
	if len(path) == 0 {
		return []string{fallback}
	}

	found, err := jmespath.Search(strings.Join(path, "."), parsed)
	if err != nil || found == nil {
		return []string{fallback}
	}

	switch v := found.(type) {
	case string:
		return []string{v}
	case []any:
		messages := make([]string, 0, len(v))
		for _, item := range v {
			messages = append(messages, fmt.Sprintf("%v", item))
		}
		if len(messages) == 0 {
			return []string{fallback}
		}
		return messages
	default:
		return []string{fmt.Sprintf("%v", v)}
	}
}
