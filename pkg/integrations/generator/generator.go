// Package generator is a client for the mind map generation service, which
// turns free text or an uploaded document into a mind map document.
package generator

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/matzehuels/mindmap/pkg/cache"
	"github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/integrations"
	"github.com/matzehuels/mindmap/pkg/mindmap"
)

const (
	// DefaultBaseURL is where a locally running service listens.
	DefaultBaseURL = "http://localhost:8000"

	generatePath = "/api/generate-mindmap"
	cachePrefix  = "generator"
)

// Client calls POST /api/generate-mindmap. Results for identical text are
// cached.
//
// All methods are safe for concurrent use.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a client for the service at baseURL
// ([DefaultBaseURL] when empty), caching responses in backend for ttl.
func NewClient(baseURL string, backend cache.Cache, ttl time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		Client:  integrations.NewClient(backend, cachePrefix, ttl, nil),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Generate sends text and returns the generated mind map. With refresh the
// cache is bypassed.
func (c *Client) Generate(ctx context.Context, text string, refresh bool) (mindmap.MindMap, error) {
	if strings.TrimSpace(text) == "" {
		return mindmap.MindMap{}, errors.New(errors.ErrCodeInvalidInput, "text is empty")
	}

	var m mindmap.MindMap
	err := c.Cached(ctx, cache.Hash([]byte(text)), refresh, &m, func() error {
		return c.PostForm(ctx, c.baseURL+generatePath, map[string]string{"text": text}, nil, &m)
	})
	if err != nil {
		return mindmap.MindMap{}, err
	}
	return m, nil
}

// GenerateFile uploads the document at path. Uploads are not cached.
func (c *Client) GenerateFile(ctx context.Context, path string) (mindmap.MindMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return mindmap.MindMap{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return c.GenerateReader(ctx, filepath.Base(path), f)
}

// GenerateReader uploads r as a document called name.
func (c *Client) GenerateReader(ctx context.Context, name string, r io.Reader) (mindmap.MindMap, error) {
	var m mindmap.MindMap
	file := &integrations.FormFile{Field: "file", Name: name, Contents: r}
	// The body is consumed on the first attempt, so uploads are not retried.
	if err := c.PostForm(ctx, c.baseURL+generatePath, nil, file, &m); err != nil {
		return mindmap.MindMap{}, err
	}
	return m, nil
}
