package config

import (
	"errors"

	"github.com/sirupsen/logrus"
)

// Validate 针对语义级别做进一步校验，防止非法配置进入下载流程。
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("配置为空")
	}

	if c.CacheDir == "" {
		return newFieldError("CacheDir", "不能为空")
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return newFieldError("LogLevel", "无法识别的日志级别: "+c.LogLevel)
	}
	if c.LogMaxSize <= 0 {
		return newFieldError("LogMaxSize", "必须大于 0")
	}
	if c.LogMaxBackups < 0 {
		return newFieldError("LogMaxBackups", "不能为负数")
	}
	if c.UpstreamTimeout.DurationValue() <= 0 {
		return newFieldError("UpstreamTimeout", "必须大于 0")
	}
	if c.VerifyChunkSize <= 0 {
		return newFieldError("VerifyChunkSize", "必须大于 0")
	}

	return nil
}
