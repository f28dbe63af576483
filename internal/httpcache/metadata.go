package httpcache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrNotCached 表示条目尚无元数据记录，调用方应退化为首次抓取。
var ErrNotCached = errors.New("cache metadata not found")

// Metadata 持久化一次成功响应的来源、抓取时间与原始响应头。
// 每次 2xx 响应都会整体替换旧记录；304 不会改写。
type Metadata struct {
	Source          string              `json:"source"`
	Timestamp       time.Time           `json:"timestamp"`
	ResponseHeaders map[string][]string `json:"response_headers"`
}

// NewMetadata 从响应头构建元数据。头名统一转为小写，保证序列化后
// 与历史缓存格式兼容。
func NewMetadata(sourceURL string, header http.Header, now time.Time) Metadata {
	headers := make(map[string][]string, len(header))
	for name, values := range header {
		headers[strings.ToLower(name)] = append([]string(nil), values...)
	}
	return Metadata{
		Source:          sourceURL,
		Timestamp:       now.UTC(),
		ResponseHeaders: headers,
	}
}

// headerValue 返回指定响应头的首个值，不存在时为空串。
func (m Metadata) headerValue(name string) string {
	values := m.ResponseHeaders[strings.ToLower(name)]
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// ETag 返回缓存响应携带的实体标签，可能为空。
func (m Metadata) ETag() string {
	return m.headerValue("etag")
}

// LastModified 返回缓存响应的 Last-Modified 原始字符串，可能为空。
func (m Metadata) LastModified() string {
	return m.headerValue("last-modified")
}

// CacheControl 返回缓存响应的 Cache-Control 原始字符串，可能为空。
func (m Metadata) CacheControl() string {
	return m.headerValue("cache-control")
}

// ContentType 返回缓存响应声明的 Content-Type，可能为空。
func (m Metadata) ContentType() string {
	return m.headerValue("content-type")
}

// LoadMetadata 读取并反序列化元数据。文件缺失返回 ErrNotCached；
// 结构损坏是硬错误，损坏的缓存不能被当作"没有缓存"。
func LoadMetadata(path string) (Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Metadata{}, ErrNotCached
		}
		return Metadata{}, fmt.Errorf("open cache metadata: %w", err)
	}
	defer f.Close()

	var meta Metadata
	if err := json.NewDecoder(f).Decode(&meta); err != nil {
		return Metadata{}, fmt.Errorf("decode cache metadata %s: %w", path, err)
	}
	return meta, nil
}

// SaveMetadata 序列化并原子写入元数据，整体覆盖同 Key 的旧记录。
// 首次写入时负责创建条目目录。
func SaveMetadata(path string, meta Metadata) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create cache entry dir: %w", err)
	}

	tempFile, err := os.CreateTemp(dir, ".metadata-*")
	if err != nil {
		return err
	}
	tempName := tempFile.Name()

	enc := json.NewEncoder(tempFile)
	enc.SetIndent("", "  ")
	err = enc.Encode(meta)
	closeErr := tempFile.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tempName)
		return err
	}

	if err := os.Rename(tempName, path); err != nil {
		os.Remove(tempName)
		return err
	}
	return nil
}
