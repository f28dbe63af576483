package verify

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// OutcomeKind 区分单个文件的校验结论。
type OutcomeKind string

const (
	// OutcomeValid 表示摘要与期望值一致。
	OutcomeValid OutcomeKind = "valid"
	// OutcomeMismatch 表示摘要计算成功但与期望值不同。
	OutcomeMismatch OutcomeKind = "mismatch"
	// OutcomeMissing 表示文件不存在，未尝试打开。
	OutcomeMissing OutcomeKind = "missing"
	// OutcomeUnsupportedAlgorithm 表示请求的算法未注册，未读取文件。
	OutcomeUnsupportedAlgorithm OutcomeKind = "unsupported-algorithm"
)

// Outcome 汇总一次校验的结论与相关摘要值。
// Expected/Actual 在完成摘要计算的路径（Valid/Mismatch）上有值。
type Outcome struct {
	Kind      OutcomeKind
	Algorithm string
	Expected  string
	Actual    string
}

// Progress 在每个分块处理完成后收到已处理/总字节数。回调只做上报，
// 不参与控制流，也不允许阻塞校验主循环。
type Progress func(done, total int64)

// defaultChunkSize 为流式读取的分块大小。
const defaultChunkSize = 1024 * 1024

// Verifier 以固定分块流式校验本地文件。
type Verifier struct {
	chunkSize int64
	progress  Progress
}

// NewVerifier 构建校验器；chunkSize 不合法时退回默认 1MiB，
// progress 为 nil 时不上报进度。
func NewVerifier(chunkSize int64, progress Progress) *Verifier {
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	return &Verifier{chunkSize: chunkSize, progress: progress}
}

// Verify 将 path 指向的文件流过 algorithm 对应的增量摘要，并与
// expected 比较（大小写不敏感，比较前统一转小写）。
//
// Missing / Mismatch / UnsupportedAlgorithm 作为 Outcome 返回而非 error，
// 以便批量校验继续处理剩余文件；其余 I/O 失败才是 error。
func (v *Verifier) Verify(path, expected, algorithm string) (Outcome, error) {
	alg, ok := lookupAlgorithm(algorithm)
	if !ok {
		return Outcome{Kind: OutcomeUnsupportedAlgorithm, Algorithm: algorithm}, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Outcome{Kind: OutcomeMissing, Algorithm: alg.Name}, nil
		}
		return Outcome{}, fmt.Errorf("stat %s: %w", path, err)
	}
	total := info.Size()

	f, err := os.Open(path)
	if err != nil {
		return Outcome{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	digest := alg.New()
	buf := make([]byte, v.chunkSize)
	var done int64
	for {
		n, readErr := f.Read(buf)
		if n > 0 {
			// hash.Hash 的 Write 永不返回错误。
			digest.Write(buf[:n])
			done += int64(n)
			if v.progress != nil {
				v.progress(done, total)
			}
		}
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				break
			}
			return Outcome{}, fmt.Errorf("read %s: %w", path, readErr)
		}
	}

	actual := hex.EncodeToString(digest.Sum(nil))
	want := strings.ToLower(strings.TrimSpace(expected))
	if actual == want {
		return Outcome{Kind: OutcomeValid, Algorithm: alg.Name, Expected: want, Actual: actual}, nil
	}
	return Outcome{Kind: OutcomeMismatch, Algorithm: alg.Name, Expected: want, Actual: actual}, nil
}
