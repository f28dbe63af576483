package catalog

import (
	"context"
	"encoding/json"
	"fmt"
)

// L2Repo 列出某条产品线的全部发布，每个发布指向各自的 L3 组件目录。
type L2Repo struct {
	Source      string        `json:"-"`
	Information L2Information `json:"information"`
	Releases    []L2Release   `json:"releases"`
}

// L2Information 记录 L2 索引文件自身的版本信息。
type L2Information struct {
	Title                    string `json:"title"`
	FileVersion              string `json:"fileVersion"`
	FileRevision             int    `json:"fileRevision"`
	ServerConfigurationBuild string `json:"serverConfigurationBuild"`
}

// L2Release 描述一个发布条目。字段与目录 JSON 一一对应；CLI 只消费
// 其中一小部分，其余原样保留以免破坏 round-trip。
type L2Release struct {
	ProductCategory            string          `json:"productCategory"`
	TargetOS                   string          `json:"targetOS"`
	ServerType                 []string        `json:"serverType"`
	ID                         string          `json:"id"`
	Title                      string          `json:"title"`
	ReleaseVersion             string          `json:"releaseVersion"`
	ReleaseEdition             string          `json:"releaseEdition"`
	ReleaseEditionMessage      string          `json:"releaseEditionMessage"`
	ReleaseBuild               string          `json:"releaseBuild"`
	ReleaseRevision            int             `json:"releaseRevision"`
	MinSDKMVer                 string          `json:"minSDKMVer"`
	ReleaseMessage             string          `json:"releaseMessage"`
	ShowInMainList             *bool           `json:"showInMainList"`
	ReleaseNotes               ReleaseNote     `json:"releaseNotes"`
	PIDGroupID                 string          `json:"pidGroupId"`
	DevzoneProgramID           json.RawMessage `json:"devzoneProgramId"`
	TargetHW                   []string        `json:"targetHW"`
	OperatingSystemsSupport    []string        `json:"operatingSystemsSupport"`
	OperatingSystemsSupportWrn []string        `json:"operatingSystemsSupportWarning"`
	EstimateTargetDiskSizeInGB string          `json:"estimateTargetDiskSizeInGB"`
	IsInstallOnTargetEnabled   *bool           `json:"isInstallOnTargetEnabled"`
	IntHWSupport               *bool           `json:"IntHWSupport"`
	CompRepoURL                string          `json:"compRepoURL"`
}

// ReleaseNote 描述发布说明的外链信息。
type ReleaseNote struct {
	ReleaseNotesTitle    string `json:"releaseNotesTitle"`
	ReleaseNotesURL      string `json:"releaseNotesURL"`
	ReleaseNotesTooltip  string `json:"releaseNotesTooltip"`
	ReleaseNotesDownload bool   `json:"releaseNotesDownload"`
}

// LoadL2 经由缓存客户端抓取并解析 L2 索引。
func LoadL2(ctx context.Context, src Source, url string) (*L2Repo, error) {
	artifact, err := src.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch l2 catalog: %w", err)
	}

	var repo L2Repo
	if err := artifact.JSON(&repo); err != nil {
		return nil, err
	}
	repo.Source = url
	return &repo, nil
}

// ReleaseTitles 返回全部发布标题，供 CLI 提示候选。
func (r *L2Repo) ReleaseTitles() []string {
	titles := make([]string, 0, len(r.Releases))
	for _, release := range r.Releases {
		titles = append(titles, release.Title)
	}
	return titles
}

// Release 按标题查找发布条目。
func (r *L2Repo) Release(title string) (*L2Release, bool) {
	for i := range r.Releases {
		if r.Releases[i].Title == title {
			return &r.Releases[i], true
		}
	}
	return nil, false
}

// ReleaseURL 解析指定发布的 L3 组件目录绝对地址。发布缺失 compRepoURL
// 时视为目录数据损坏。
func (r *L2Repo) ReleaseURL(title string) (string, error) {
	release, ok := r.Release(title)
	if !ok {
		return "", newSelectionError("release", title, r.ReleaseTitles())
	}
	if release.CompRepoURL == "" {
		return "", fmt.Errorf("release %q has no component repo url", title)
	}
	return resolveURL(r.Source, release.CompRepoURL)
}
