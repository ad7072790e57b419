// Package cache provides the byte cache behind layout and render results.
//
// Three implementations share the [Cache] interface:
//
//   - [FileCache]: JSON files under a directory, used by the CLI
//   - [RedisCache]: a Redis server, used by replicated servers
//   - [NullCache]: stores nothing, for --no-cache and tests
//
// Keys come from a [Keyer]. [DefaultKeyer] hashes the inputs that affect a
// result, so changing the canvas size or the theme never returns a stale
// entry; [ScopedKeyer] adds a namespace prefix.
package cache
