package logging

import "github.com/sirupsen/logrus"

// BaseFields 构建 action + run_id 等基础字段，便于不同入口复用。
func BaseFields(action, runID string) logrus.Fields {
	return logrus.Fields{
		"action": action,
		"run_id": runID,
	}
}

// FetchFields 提供 URL/缓存命中状态字段，供缓存客户端日志复用。
func FetchFields(url string, status int, cacheHit bool) logrus.Fields {
	return logrus.Fields{
		"url":       url,
		"status":    status,
		"cache_hit": cacheHit,
	}
}
