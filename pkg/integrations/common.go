package integrations

import (
	"net/http"
	"time"
)

// httpTimeout bounds a single request. Content generation runs a language
// model server-side, so it is far slower than a registry lookup.
const httpTimeout = 90 * time.Second

// NewHTTPClient creates an HTTP client with the default request timeout.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}
