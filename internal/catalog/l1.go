package catalog

import (
	"context"
	"fmt"

	"github.com/sdkget/sdkget/internal/httpcache"
)

// Source 抽象"按 URL 取回缓存工件"的能力，目录层不关心缓存细节。
type Source interface {
	Get(ctx context.Context, url string) (*httpcache.Artifact, error)
}

// L1Repo 是目录的顶层：产品类别 → 产品线 → 发布索引地址。
type L1Repo struct {
	Source            string              `json:"-"`
	Information       L1Information       `json:"information"`
	ProductCategories []L1ProductCategory `json:"productCategories"`
}

// L1Information 记录目录文件自身的版本信息。
type L1Information struct {
	Title                    string `json:"title"`
	Version                  string `json:"version"`
	Revision                 int    `json:"revision"`
	ServerConfigurationBuild string `json:"serverConfigurationBuild"`
}

// L1ProductCategory 汇总一个产品类别下的全部产品线。
type L1ProductCategory struct {
	CategoryName string          `json:"categoryName"`
	ProductLines []L1ProductLine `json:"productLines"`
}

// L1ProductLine 描述单个目标 OS 对应的发布索引入口。
type L1ProductLine struct {
	TargetOS         string   `json:"targetOS"`
	TargetType       string   `json:"targetType"`
	ServerType       []string `json:"serverType"`
	ReleasesIndexURL string   `json:"releasesIndexURL"`
}

// LoadL1 经由缓存客户端抓取并解析 L1 目录。
func LoadL1(ctx context.Context, src Source, url string) (*L1Repo, error) {
	artifact, err := src.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch l1 catalog: %w", err)
	}

	var repo L1Repo
	if err := artifact.JSON(&repo); err != nil {
		return nil, err
	}
	repo.Source = url
	return &repo, nil
}

// CategoryNames 返回全部产品类别名，供 CLI 提示候选。
func (r *L1Repo) CategoryNames() []string {
	names := make([]string, 0, len(r.ProductCategories))
	for _, category := range r.ProductCategories {
		names = append(names, category.CategoryName)
	}
	return names
}

// Category 按名称查找产品类别。
func (r *L1Repo) Category(name string) (*L1ProductCategory, bool) {
	for i := range r.ProductCategories {
		if r.ProductCategories[i].CategoryName == name {
			return &r.ProductCategories[i], true
		}
	}
	return nil, false
}

// ReleasesIndexURL 解析 (类别, 目标 OS) 对应的 L2 索引绝对地址。
// 取值缺失或非法时返回携带候选列表的 *SelectionError。
func (r *L1Repo) ReleasesIndexURL(categoryName, targetOS string) (string, error) {
	category, ok := r.Category(categoryName)
	if !ok {
		return "", newSelectionError("product category", categoryName, r.CategoryNames())
	}
	line, ok := category.ProductLine(targetOS)
	if !ok {
		return "", newSelectionError("target os", targetOS, category.ProductLineNames())
	}
	return resolveURL(r.Source, line.ReleasesIndexURL)
}

// ProductLineNames 返回该类别下全部目标 OS 名称。
func (c *L1ProductCategory) ProductLineNames() []string {
	names := make([]string, 0, len(c.ProductLines))
	for _, line := range c.ProductLines {
		names = append(names, line.TargetOS)
	}
	return names
}

// ProductLine 按目标 OS 查找产品线。
func (c *L1ProductCategory) ProductLine(targetOS string) (*L1ProductLine, bool) {
	for i := range c.ProductLines {
		if c.ProductLines[i].TargetOS == targetOS {
			return &c.ProductLines[i], true
		}
	}
	return nil, false
}
