package verify

import (
	"crypto/md5"
	"hash"
	"strings"

	"github.com/opencontainers/go-digest"
)

// Algorithm 描述一种受支持的校验算法及其增量 hash 构造器。
type Algorithm struct {
	Name string
	New  func() hash.Hash
}

// algorithms 是显式注册的封闭集合。目录文件目前只会出现 md5，
// sha256/sha512 直接复用 go-digest 内建实现以备后续目录格式扩展。
var algorithms = map[string]Algorithm{
	"md5":    {Name: "md5", New: md5.New},
	"sha256": {Name: "sha256", New: digest.SHA256.Hash},
	"sha512": {Name: "sha512", New: digest.SHA512.Hash},
}

// lookupAlgorithm 按目录中的算法名查找实现，名称匹配不区分大小写。
func lookupAlgorithm(name string) (Algorithm, bool) {
	alg, ok := algorithms[strings.ToLower(strings.TrimSpace(name))]
	return alg, ok
}

// SupportedAlgorithms 返回已注册的算法名列表，供 CLI 提示使用。
func SupportedAlgorithms() []string {
	names := make([]string, 0, len(algorithms))
	for name := range algorithms {
		names = append(names, name)
	}
	return names
}
