// Package httputil holds retry plumbing shared by outbound HTTP clients such
// as the content-generation client.
//
// [Retry] re-runs an operation with exponential backoff, but only for errors
// marked [Retryable] (network failures, 5xx and 429 responses):
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    return fetch(ctx, &out)
//	})
//
// Response caching lives in package cache so HTTP bodies share a backend
// (files or Redis) with layouts and artifacts.
package httputil
