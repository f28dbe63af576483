package httpcache

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// Artifact 指向缓存条目的 data 文件，并携带其权威元数据。
// 句柄本身不持有文件描述符，Open/Text/JSON 各自独立管理读取资源。
type Artifact struct {
	path string
	meta Metadata
}

// Path 返回 data 文件在磁盘上的绝对路径。
func (a *Artifact) Path() string {
	return a.path
}

// Metadata 返回条目当前权威的元数据记录。
func (a *Artifact) Metadata() Metadata {
	return a.meta
}

// Open 返回正文的流式 Reader，调用方负责 Close。
func (a *Artifact) Open() (io.ReadCloser, error) {
	f, err := os.Open(a.path)
	if err != nil {
		return nil, fmt.Errorf("open cached data: %w", err)
	}
	return f, nil
}

// Text 按响应声明的字符集解码正文。Content-Type 缺失或未携带 charset
// 参数时退回 UTF-8。解码始终是受检的：非法字节序列返回错误，而不是
// 断言其有效。
func (a *Artifact) Text() (string, error) {
	f, err := a.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	label := charsetLabel(a.meta.ContentType())
	if label == "" || strings.EqualFold(label, "utf-8") {
		raw, err := io.ReadAll(f)
		if err != nil {
			return "", err
		}
		if !utf8.Valid(raw) {
			return "", fmt.Errorf("cached data for %s is not valid utf-8", a.meta.Source)
		}
		return string(raw), nil
	}

	enc, err := htmlindex.Get(label)
	if err != nil {
		return "", fmt.Errorf("unknown charset %q: %w", label, err)
	}
	decoded, err := io.ReadAll(transform.NewReader(f, enc.NewDecoder()))
	if err != nil {
		return "", fmt.Errorf("decode %s body as %s: %w", a.meta.Source, label, err)
	}
	return string(decoded), nil
}

// JSON 将正文按 JSON 反序列化到 v。
func (a *Artifact) JSON(v interface{}) error {
	f, err := a.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(v); err != nil {
		return fmt.Errorf("decode %s body as json: %w", a.meta.Source, err)
	}
	return nil
}

// charsetLabel 从 Content-Type 中提取 charset 参数，解析失败时视为缺失。
func charsetLabel(contentType string) string {
	if contentType == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return params["charset"]
}
