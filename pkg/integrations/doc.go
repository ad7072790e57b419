// Package integrations provides the shared HTTP client used by clients of
// external APIs.
//
// [Client] combines:
//   - response caching through a [cache.Cache] (file or Redis), keyed with
//     [cache.Keyer.HTTPKey] under a per-API prefix
//   - retries with backoff for network failures, 5xx and 429 responses
//   - coded errors ([errors.ErrCodeNotFound], [errors.ErrCodeInvalidInput],
//     [errors.ErrCodeNetwork], [errors.ErrCodeRateLimited])
//
// API-specific clients embed it; see the generator subpackage for the
// mind map generation service.
package integrations
