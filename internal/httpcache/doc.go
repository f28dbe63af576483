// Package httpcache implements a persistent, revalidating HTTP cache on the
// local filesystem. Each URL maps to CacheDir/http/<md5(url)>/ holding a
// "data" file (the raw response body) and a "metadata" file (JSON record of
// the source URL, capture time and raw response headers). Fetches load the
// stored metadata, forward ETag/Last-Modified validators according to the
// cache-control policy, and either reuse the cached body on 304 or replace
// data+metadata wholesale on a fresh 2xx. Writes go through temp file +
// rename so a concurrent reader never observes a half-written entry.
package httpcache
