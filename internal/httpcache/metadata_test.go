package httpcache

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestMetadataRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entry", "metadata")

	header := http.Header{}
	header.Set("ETag", `"v1"`)
	header.Set("Last-Modified", "Wed, 21 Oct 2015 07:28:00 GMT")
	header.Add("Cache-Control", "max-age=60")

	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	meta := NewMetadata("https://example.test/a.bin", header, now)

	if err := SaveMetadata(path, meta); err != nil {
		t.Fatalf("save error: %v", err)
	}
	loaded, err := LoadMetadata(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if loaded.Source != meta.Source {
		t.Fatalf("source mismatch: %s", loaded.Source)
	}
	if !loaded.Timestamp.Equal(meta.Timestamp) {
		t.Fatalf("timestamp mismatch: %v vs %v", loaded.Timestamp, meta.Timestamp)
	}
	if !reflect.DeepEqual(meta.ResponseHeaders, loaded.ResponseHeaders) {
		t.Fatalf("headers mismatch:\n%+v\n%+v", meta.ResponseHeaders, loaded.ResponseHeaders)
	}
}

func TestMetadataAccessorsLowercase(t *testing.T) {
	header := http.Header{}
	header.Set("ETag", `"v1"`)
	header.Set("Last-Modified", "Wed, 21 Oct 2015 07:28:00 GMT")
	header.Set("Content-Type", "text/plain; charset=utf-8")

	meta := NewMetadata("https://example.test/a", header, time.Now())
	if _, ok := meta.ResponseHeaders["etag"]; !ok {
		t.Fatalf("header names should be stored lowercase: %v", meta.ResponseHeaders)
	}
	if meta.ETag() != `"v1"` {
		t.Fatalf("unexpected etag: %s", meta.ETag())
	}
	if meta.LastModified() != "Wed, 21 Oct 2015 07:28:00 GMT" {
		t.Fatalf("unexpected last-modified: %s", meta.LastModified())
	}
	if meta.ContentType() != "text/plain; charset=utf-8" {
		t.Fatalf("unexpected content-type: %s", meta.ContentType())
	}
}

func TestLoadMetadataMissing(t *testing.T) {
	_, err := LoadMetadata(filepath.Join(t.TempDir(), "nope", "metadata"))
	if !errors.Is(err, ErrNotCached) {
		t.Fatalf("expected ErrNotCached, got %v", err)
	}
}

func TestLoadMetadataCorruptIsHardError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metadata")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	_, err := LoadMetadata(path)
	if err == nil {
		t.Fatalf("corrupt metadata must surface an error")
	}
	if errors.Is(err, ErrNotCached) {
		t.Fatalf("corrupt metadata must not be treated as missing")
	}
}

func TestSaveMetadataOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metadata")

	first := NewMetadata("https://example.test/a", http.Header{"Etag": {`"v1"`}}, time.Now())
	second := NewMetadata("https://example.test/a", http.Header{"Etag": {`"v2"`}}, time.Now())

	if err := SaveMetadata(path, first); err != nil {
		t.Fatalf("save first: %v", err)
	}
	if err := SaveMetadata(path, second); err != nil {
		t.Fatalf("save second: %v", err)
	}

	loaded, err := LoadMetadata(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if loaded.ETag() != `"v2"` {
		t.Fatalf("expected replaced record, got etag %s", loaded.ETag())
	}
}
