package httpcache

import (
	"testing"
	"time"
)

func TestParsePolicy(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name         string
		cacheControl string
		wantKind     PolicyKind
		wantExpires  time.Time
	}{
		{name: "empty", cacheControl: "", wantKind: PolicyMustRevalidate},
		{name: "no-store", cacheControl: "no-store", wantKind: PolicyNoStore},
		{name: "no-cache", cacheControl: "No-Cache", wantKind: PolicyNoCache},
		{
			name:         "max-age",
			cacheControl: "max-age=300",
			wantKind:     PolicyExpires,
			wantExpires:  base.Add(300 * time.Second),
		},
		{
			name:         "max-age with extras",
			cacheControl: "public, max-age=60",
			wantKind:     PolicyExpires,
			wantExpires:  base.Add(time.Minute),
		},
		{name: "garbage", cacheControl: "immutable, stale-while-revalidate=30", wantKind: PolicyMustRevalidate},
		{name: "broken max-age", cacheControl: "max-age=soon", wantKind: PolicyMustRevalidate},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			policy := ParsePolicy(tc.cacheControl, base, nil)
			if policy.Kind != tc.wantKind {
				t.Fatalf("kind mismatch: got %s want %s", policy.Kind, tc.wantKind)
			}
			if tc.wantKind == PolicyExpires && !policy.Expires.Equal(tc.wantExpires) {
				t.Fatalf("expires mismatch: got %v want %v", policy.Expires, tc.wantExpires)
			}
		})
	}
}

func metadataWith(headers map[string]string) Metadata {
	response := make(map[string][]string, len(headers))
	for name, value := range headers {
		response[name] = []string{value}
	}
	return Metadata{
		Source:          "https://example.test/a.bin",
		Timestamp:       time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		ResponseHeaders: response,
	}
}

func TestEvaluateValidatorsForwardsByDefault(t *testing.T) {
	meta := metadataWith(map[string]string{
		"etag":          `"v1"`,
		"last-modified": "Wed, 21 Oct 2015 07:28:00 GMT",
	})

	validators := EvaluateValidators(meta, time.Now(), nil)
	if validators.ETag != `"v1"` {
		t.Fatalf("etag should be forwarded, got %q", validators.ETag)
	}
	if validators.LastModified == "" {
		t.Fatalf("last-modified should be forwarded")
	}
}

func TestEvaluateValidatorsNoStoreStripsAll(t *testing.T) {
	meta := metadataWith(map[string]string{
		"etag":          `"v1"`,
		"cache-control": "no-store",
	})

	if validators := EvaluateValidators(meta, time.Now(), nil); !validators.Empty() {
		t.Fatalf("no-store must strip validators, got %+v", validators)
	}
}

func TestEvaluateValidatorsUnexpiredMaxAgeStripsAll(t *testing.T) {
	meta := metadataWith(map[string]string{
		"etag":          `"v1"`,
		"cache-control": "max-age=3600",
	})

	// 距抓取时刻 10 分钟，仍在新鲜期内：保守策略选择强制重拉。
	now := meta.Timestamp.Add(10 * time.Minute)
	if validators := EvaluateValidators(meta, now, nil); !validators.Empty() {
		t.Fatalf("unexpired max-age must strip validators, got %+v", validators)
	}
}

func TestEvaluateValidatorsExpiredMaxAgeForwards(t *testing.T) {
	meta := metadataWith(map[string]string{
		"etag":          `"v1"`,
		"cache-control": "max-age=60",
	})

	now := meta.Timestamp.Add(time.Hour)
	validators := EvaluateValidators(meta, now, nil)
	if validators.ETag != `"v1"` {
		t.Fatalf("expired max-age should forward validators, got %+v", validators)
	}
}

func TestEvaluateValidatorsAbsentStayAbsent(t *testing.T) {
	meta := metadataWith(map[string]string{"content-type": "application/octet-stream"})

	if validators := EvaluateValidators(meta, time.Now(), nil); !validators.Empty() {
		t.Fatalf("absent validators must stay absent, got %+v", validators)
	}
}
