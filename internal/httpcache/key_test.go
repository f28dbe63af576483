package httpcache

import (
	"fmt"
	"path/filepath"
	"testing"
)

func TestDeriveKeyDeterministic(t *testing.T) {
	url := "https://example.test/repo/main.json?v=2"
	first := DeriveKey(url)
	second := DeriveKey(url)
	if first != second {
		t.Fatalf("same url should derive same key: %s vs %s", first, second)
	}
	if len(first) != 32 {
		t.Fatalf("unexpected key length: %d", len(first))
	}
}

func TestDeriveKeyDistinct(t *testing.T) {
	seen := make(map[Key]string)
	for i := 0; i < 10000; i++ {
		url := fmt.Sprintf("https://example.test/pkg/%d/file.tar.gz", i)
		key := DeriveKey(url)
		if prev, ok := seen[key]; ok {
			t.Fatalf("key collision between %s and %s", prev, url)
		}
		seen[key] = url
	}
}

func TestPathsLayout(t *testing.T) {
	paths := NewPaths("/srv/cache")
	key := DeriveKey("https://example.test/a.bin")

	entry := paths.EntryDir(key)
	if entry != filepath.Join("/srv/cache", "http", string(key)) {
		t.Fatalf("unexpected entry dir: %s", entry)
	}
	if paths.DataPath(key) != filepath.Join(entry, "data") {
		t.Fatalf("unexpected data path: %s", paths.DataPath(key))
	}
	if paths.MetadataPath(key) != filepath.Join(entry, "metadata") {
		t.Fatalf("unexpected metadata path: %s", paths.MetadataPath(key))
	}
}
