package actions

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/sdkget/sdkget/internal/catalog"
	"github.com/sdkget/sdkget/internal/httpcache"
	"github.com/sdkget/sdkget/internal/verify"
)

// Verify 对选中组件已缓存的下载文件做完整性校验，每个文件输出一行
// 结论。摘要不符、文件缺失、算法未知都只算单文件问题，批次继续；
// 其余错误（I/O、目录损坏）立即中止剩余校验。
func Verify(w io.Writer, repo *catalog.L3Repo, sel Selection, verifier *verify.Verifier, paths httpcache.Paths, logger logrus.FieldLogger) error {
	for _, componentID := range ComponentIDs(repo, sel) {
		files, err := repo.DownloadFilesForComponent(componentID)
		if err != nil {
			return err
		}

		for _, file := range files {
			url, err := repo.FileURL(file)
			if err != nil {
				return err
			}
			dataPath := paths.DataPath(httpcache.DeriveKey(url))

			outcome, err := verifier.Verify(dataPath, file.Checksum, file.ChecksumType)
			if err != nil {
				return fmt.Errorf("verify %s: %w", file.FileName, err)
			}
			reportOutcome(w, logger, file.FileName, outcome)
		}
	}
	return nil
}

// reportOutcome 将单文件结论同时写给用户与结构化日志。
func reportOutcome(w io.Writer, logger logrus.FieldLogger, fileName string, outcome verify.Outcome) {
	switch outcome.Kind {
	case verify.OutcomeValid:
		fmt.Fprintf(w, "valid    %s\n", fileName)
	case verify.OutcomeMismatch:
		fmt.Fprintf(w, "invalid  %s: expected %s, actual %s\n", fileName, outcome.Expected, outcome.Actual)
		logger.WithFields(logrus.Fields{
			"action":   "verify_mismatch",
			"file":     fileName,
			"expected": outcome.Expected,
			"actual":   outcome.Actual,
		}).Warn("摘要不匹配")
	case verify.OutcomeMissing:
		fmt.Fprintf(w, "missing  %s\n", fileName)
		logger.WithFields(logrus.Fields{
			"action": "verify_missing",
			"file":   fileName,
		}).Warn("缓存文件缺失")
	case verify.OutcomeUnsupportedAlgorithm:
		fmt.Fprintf(w, "skipped  %s: unsupported checksum algorithm %q\n", fileName, outcome.Algorithm)
		logger.WithFields(logrus.Fields{
			"action":    "verify_unsupported",
			"file":      fileName,
			"algorithm": outcome.Algorithm,
		}).Warn("未注册的校验算法")
	}
}
