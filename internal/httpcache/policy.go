package httpcache

import (
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// PolicyKind 是 Cache-Control 解析结果的闭集变体。
type PolicyKind string

const (
	// PolicyNoStore 表示永不信任缓存，请求前剥离全部验证器强制重拉。
	PolicyNoStore PolicyKind = "no-store"
	// PolicyNoCache 表示可以缓存，但每次使用前必须再验证。
	PolicyNoCache PolicyKind = "no-cache"
	// PolicyExpires 表示在到期时刻之前有效，之后必须再验证。
	PolicyExpires PolicyKind = "expires"
	// PolicyMustRevalidate 是服务端指令无法解析时的兜底变体。
	PolicyMustRevalidate PolicyKind = "must-revalidate"
)

// Policy 描述一条缓存条目的生效策略；Expires 仅对 PolicyExpires 有意义。
type Policy struct {
	Kind    PolicyKind
	Expires time.Time
}

// ParsePolicy 解析 Cache-Control 响应头。识别的指令集刻意保持很小：
// no-store、no-cache 与 max-age=<seconds>（以 base 为基准折算为绝对到期
// 时刻）。无法识别的输入一律退化为 PolicyMustRevalidate 并记录原文，
// 绝不会退化为无条件信任缓存。
func ParsePolicy(cacheControl string, base time.Time, logger logrus.FieldLogger) Policy {
	fallback := Policy{Kind: PolicyMustRevalidate}
	if strings.TrimSpace(cacheControl) == "" {
		return fallback
	}

	for _, token := range strings.Split(cacheControl, ",") {
		directive := strings.ToLower(strings.TrimSpace(token))
		switch {
		case directive == "no-store":
			return Policy{Kind: PolicyNoStore}
		case directive == "no-cache":
			return Policy{Kind: PolicyNoCache}
		case strings.HasPrefix(directive, "max-age="):
			seconds, err := strconv.ParseInt(strings.TrimPrefix(directive, "max-age="), 10, 64)
			if err != nil {
				break
			}
			return Policy{
				Kind:    PolicyExpires,
				Expires: base.Add(time.Duration(seconds) * time.Second).UTC(),
			}
		}
	}

	if logger != nil {
		logger.WithFields(logrus.Fields{
			"action":        "cache_control_unparsed",
			"cache_control": cacheControl,
		}).Debug("未识别的 Cache-Control 指令，按 must-revalidate 处理")
	}
	return fallback
}

// Validators 描述下一次条件请求应当携带的验证器，空值表示不转发。
type Validators struct {
	ETag         string
	LastModified string
}

// Empty 表示两种验证器都不转发，请求必然产生全新响应。
func (v Validators) Empty() bool {
	return v.ETag == "" && v.LastModified == ""
}

// EvaluateValidators 根据已存元数据决定转发哪些验证器。策略偏保守：
//
//   - no-store：剥离验证器，使请求无法以 304 命中；
//   - 未到期的 max-age：同样不转发，宁可提前再验证也不信任服务端声明的
//     新鲜期（这里缓存的是大体积静态文件，几乎不会原地变更）；
//   - no-cache、must-revalidate 或已过期的 max-age：原样转发存量验证器，
//     由服务端通过 304/200 裁决。
//
// 每次调用都会基于元数据重新解析，结果不做任何跨调用缓存。
func EvaluateValidators(meta Metadata, now time.Time, logger logrus.FieldLogger) Validators {
	policy := ParsePolicy(meta.CacheControl(), meta.Timestamp, logger)

	switch policy.Kind {
	case PolicyNoStore:
		return Validators{}
	case PolicyExpires:
		if now.Before(policy.Expires) {
			return Validators{}
		}
	}

	return Validators{
		ETag:         meta.ETag(),
		LastModified: meta.LastModified(),
	}
}
