package catalog

import (
	"fmt"
	"net/url"
)

// resolveURL 将 ref 解析为相对 base 的绝对地址，语义与浏览器一致。
func resolveURL(base, ref string) (string, error) {
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse base url %q: %w", base, err)
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("parse url %q: %w", ref, err)
	}
	return baseURL.ResolveReference(refURL).String(), nil
}
