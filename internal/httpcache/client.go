package httpcache

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sdkget/sdkget/internal/logging"
)

// StatusError 携带非 2xx/非 304 的响应状态码，供调用方按状态分流。
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected http status %d for %s", e.Code, e.URL)
}

// Client 把条件请求、磁盘缓存与再验证策略组合成单一入口。
// 同一进程内整站复用一份实例，HTTP 连接池随之共享。
type Client struct {
	http   *http.Client
	paths  Paths
	logger *logrus.Logger
	now    func() time.Time

	mu    sync.Mutex
	locks map[Key]*entryLock
}

type entryLock struct {
	mu   sync.Mutex
	refs int
}

// NewClient 以 cacheRoot 为根目录构建缓存客户端。httpClient 由进程入口
// 构建一次后注入，不在此处隐式创建全局实例。
func NewClient(httpClient *http.Client, cacheRoot string, logger *logrus.Logger) (*Client, error) {
	if httpClient == nil {
		return nil, errors.New("http client required")
	}
	if cacheRoot == "" {
		return nil, errors.New("cache root required")
	}

	abs, err := filepath.Abs(cacheRoot)
	if err != nil {
		return nil, fmt.Errorf("resolve cache root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create cache root: %w", err)
	}
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}

	return &Client{
		http:   httpClient,
		paths:  NewPaths(abs),
		logger: logger,
		now:    time.Now,
		locks:  make(map[Key]*entryLock),
	}, nil
}

// Paths 暴露路径解析器，供校验流程直接定位已缓存的 data 文件。
func (c *Client) Paths() Paths {
	return c.paths
}

// Get 以条件请求的方式获取 URL 内容并返回缓存工件句柄。
//
// 流程：加载既有元数据 → 依策略挑选验证器 → 携带 If-None-Match /
// If-Modified-Since 发起 GET → 2xx 时整体替换 data 与 metadata，304 时
// 原样复用缓存，其余状态返回 *StatusError 且不触碰缓存条目。
// 整个"读元数据 → 请求 → 写回"的窗口持有条目级互斥锁；跨进程并发
// 访问同一条目时不提供保护，原子 rename 保证最坏情况只是丢失一次更新。
func (c *Client) Get(ctx context.Context, rawURL string) (*Artifact, error) {
	key := DeriveKey(rawURL)
	unlock := c.lockEntry(key)
	defer unlock()

	validators := Validators{}
	meta, err := LoadMetadata(c.paths.MetadataPath(key))
	switch {
	case err == nil:
		validators = EvaluateValidators(meta, c.now().UTC(), c.logger)
	case errors.Is(err, ErrNotCached):
		// 首次抓取，无验证器可转发。
	default:
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", rawURL, err)
	}
	if validators.ETag != "" {
		req.Header.Set("If-None-Match", validators.ETag)
	}
	if validators.LastModified != "" {
		req.Header.Set("If-Modified-Since", validators.LastModified)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if err := c.storeResponse(key, rawURL, resp); err != nil {
			return nil, err
		}
		fields := logging.FetchFields(rawURL, resp.StatusCode, false)
		fields["action"] = "cache_store"
		c.logger.WithFields(fields).Info("已下载并写入缓存")
	case resp.StatusCode == http.StatusNotModified:
		// 缓存数据仍然有效；旧元数据保持权威，不做改写。
		fields := logging.FetchFields(rawURL, resp.StatusCode, true)
		fields["action"] = "cache_revalidated"
		c.logger.WithFields(fields).Info("使用本地缓存副本")
	default:
		return nil, &StatusError{Code: resp.StatusCode, URL: rawURL}
	}

	// 两条成功路径都保证元数据已落盘，以它为权威构建句柄。
	finalMeta, err := LoadMetadata(c.paths.MetadataPath(key))
	if err != nil {
		return nil, err
	}
	return &Artifact{path: c.paths.DataPath(key), meta: finalMeta}, nil
}

// storeResponse 将响应体流式写入 data 文件并整体替换元数据。
// 正文与元数据均通过临时文件 + rename 落盘，失败时清理临时产物。
func (c *Client) storeResponse(key Key, sourceURL string, resp *http.Response) error {
	entryDir := c.paths.EntryDir(key)
	if err := os.MkdirAll(entryDir, 0o755); err != nil {
		return fmt.Errorf("create cache entry dir: %w", err)
	}

	tempFile, err := os.CreateTemp(entryDir, ".data-*")
	if err != nil {
		return err
	}
	tempName := tempFile.Name()

	_, err = io.Copy(tempFile, resp.Body)
	closeErr := tempFile.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tempName)
		return fmt.Errorf("write cache data: %w", err)
	}

	if err := os.Rename(tempName, c.paths.DataPath(key)); err != nil {
		os.Remove(tempName)
		return err
	}

	meta := NewMetadata(sourceURL, resp.Header, c.now())
	return SaveMetadata(c.paths.MetadataPath(key), meta)
}

// lockEntry 获取条目级互斥锁，返回的函数在所有退出路径上释放锁。
func (c *Client) lockEntry(key Key) func() {
	c.mu.Lock()
	lock := c.locks[key]
	if lock == nil {
		lock = &entryLock{}
		c.locks[key] = lock
	}
	lock.refs++
	c.mu.Unlock()

	lock.mu.Lock()
	return func() {
		lock.mu.Unlock()
		c.mu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(c.locks, key)
		}
		c.mu.Unlock()
	}
}
