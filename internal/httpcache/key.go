package httpcache

import (
	"crypto/md5"
	"encoding/hex"
	"path/filepath"
)

// Key 是请求 URL 的稳定摘要，直接作为缓存目录名使用。
type Key string

// DeriveKey 将 URL 原文映射为确定性的十六进制摘要。相同 URL 永远得到
// 相同 Key，跨进程稳定，用于定位既有缓存条目。
func DeriveKey(rawURL string) Key {
	sum := md5.Sum([]byte(rawURL))
	return Key(hex.EncodeToString(sum[:]))
}

// 条目目录下的两个固定文件名。
const (
	dataFileName     = "data"
	metadataFileName = "metadata"
)

// Paths 负责把缓存根目录与 Key 组合为条目内各文件的绝对路径。
type Paths struct {
	root string
}

// NewPaths 以 root 为缓存根目录构建路径解析器，条目统一挂在 root/http 下。
func NewPaths(root string) Paths {
	return Paths{root: root}
}

// EntryDir 返回条目目录：<root>/http/<key>。
func (p Paths) EntryDir(key Key) string {
	return filepath.Join(p.root, "http", string(key))
}

// DataPath 返回条目的正文文件路径。
func (p Paths) DataPath(key Key) string {
	return filepath.Join(p.EntryDir(key), dataFileName)
}

// MetadataPath 返回条目的元数据文件路径。
func (p Paths) MetadataPath(key Key) string {
	return filepath.Join(p.EntryDir(key), metadataFileName)
}
