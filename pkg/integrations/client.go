package integrations

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/matzehuels/mindmap/pkg/cache"
	"github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/httputil"
	"github.com/matzehuels/mindmap/pkg/observability"
)

// maxErrorBody caps how much of an error response is read for its detail.
const maxErrorBody = 4 << 10

// Client provides caching, retry and default headers for API clients.
type Client struct {
	http    *http.Client
	cache   cache.Cache
	keyer   cache.Keyer
	prefix  string
	ttl     time.Duration
	headers map[string]string
}

// NewClient creates a Client whose cache entries live under prefix with the
// given TTL. A nil backend disables caching.
func NewClient(backend cache.Cache, prefix string, ttl time.Duration, headers map[string]string) *Client {
	if backend == nil {
		backend = cache.NewNullCache()
	}
	return &Client{
		http:    NewHTTPClient(),
		cache:   backend,
		keyer:   cache.NewDefaultKeyer(),
		prefix:  prefix,
		ttl:     ttl,
		headers: headers,
	}
}

// SetHTTPClient replaces the underlying HTTP client.
func (c *Client) SetHTTPClient(h *http.Client) { c.http = h }

// Cached returns the cached value for key in v, or runs fetch with retries
// and caches what it stored in v. refresh skips the lookup.
func (c *Client) Cached(ctx context.Context, key string, refresh bool, v any, fetch func() error) error {
	ck := c.keyer.HTTPKey(c.prefix, key)
	if !refresh {
		if data, ok, _ := c.cache.Get(ctx, ck); ok && json.Unmarshal(data, v) == nil {
			return nil
		}
	}
	if err := httputil.RetryWithBackoff(ctx, fetch); err != nil {
		return err
	}
	if data, err := json.Marshal(v); err == nil {
		_ = c.cache.Set(ctx, ck, data, c.ttl)
	}
	return nil
}

// Get performs a GET and decodes the JSON response into v.
func (c *Client) Get(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	return c.doJSON(req, v)
}

// FormFile is a file part of a multipart request.
type FormFile struct {
	Field    string
	Name     string
	Contents io.Reader
}

// PostForm sends fields (and optional file) as multipart/form-data and
// decodes the JSON response into v.
func (c *Client) PostForm(ctx context.Context, url string, fields map[string]string, file *FormFile, v any) error {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, val := range fields {
		if err := mw.WriteField(k, val); err != nil {
			return err
		}
	}
	if file != nil {
		part, err := mw.CreateFormFile(file.Field, file.Name)
		if err != nil {
			return err
		}
		if _, err := io.Copy(part, file.Contents); err != nil {
			return err
		}
	}
	if err := mw.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.doJSON(req, v)
}

func (c *Client) doJSON(req *http.Request, v any) error {
	for k, val := range c.headers {
		req.Header.Set(k, val)
	}
	req.Header.Set("Accept", "application/json")

	ctx, host, path := req.Context(), req.URL.Host, req.URL.Path
	hooks := observability.HTTP()
	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		return httputil.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "%s %s", req.Method, path))
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode response")
	}
	return nil
}

// checkStatus maps a non-2xx response to a coded error. Server errors and
// rate limiting are retryable.
func checkStatus(resp *http.Response) error {
	code := resp.StatusCode
	if code >= 200 && code < 300 {
		return nil
	}
	detail := errorDetail(resp.Body)
	switch {
	case code == http.StatusNotFound:
		return errors.New(errors.ErrCodeNotFound, "not found%s", detail)
	case code == http.StatusTooManyRequests:
		retryAfter, _ := strconv.Atoi(resp.Header.Get("Retry-After"))
		return httputil.Retryable(&errors.RateLimitedError{RetryAfter: retryAfter})
	case code >= 500:
		return httputil.Retryable(errors.New(errors.ErrCodeNetwork, "status %d%s", code, detail))
	case code == http.StatusBadRequest || code == http.StatusUnprocessableEntity:
		return errors.New(errors.ErrCodeInvalidInput, "rejected%s", detail)
	default:
		return errors.New(errors.ErrCodeNetwork, "status %d%s", code, detail)
	}
}

// errorDetail extracts the "detail" field of a JSON error body.
func errorDetail(r io.Reader) string {
	var body struct {
		Detail any `json:"detail"`
	}
	data, _ := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if json.Unmarshal(data, &body) != nil || body.Detail == nil {
		return ""
	}
	return fmt.Sprintf(": %v", body.Detail)
}
