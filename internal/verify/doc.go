// Package verify streams local files through incremental digests and compares
// the result to catalog-provided checksums. Verification never buffers whole
// files in memory: bytes flow through the digest in fixed-size chunks with a
// progress callback after each chunk, so multi-gigabyte artifacts stay cheap.
// Per-file problems (missing file, digest mismatch, unknown algorithm) are
// reported as outcomes rather than errors, letting batch runs finish a full
// pass and report every bad file.
package verify
