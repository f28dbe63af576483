package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
)

// L3Repo 是叶级目录：sections → groups → components，组件版本挂着
// 真正可下载的文件清单。
type L3Repo struct {
	Source        string                 `json:"-"`
	Information   L3Information          `json:"information"`
	CompDirectory string                 `json:"compDirectory"`
	Sections      []L3Section            `json:"sections"`
	Groups        map[string]L3Group     `json:"groups"`
	Components    map[string]L3Component `json:"components"`

	logger logrus.FieldLogger
}

// L3Information 记录 L3 目录文件的架构与来源发布信息。
type L3Information struct {
	SchemaURL        string          `json:"schemaUrl"`
	SchemaVersion    string          `json:"schemaVersion"`
	FileVersion      string          `json:"fileVersion"`
	Release          json.RawMessage `json:"release"`
	TargetAccessInfo json.RawMessage `json:"targetAccessInfo"`
}

// L3Section 将若干 group 聚合为一个展示分区。
type L3Section struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Title      string   `json:"title"`
	Selectable *bool    `json:"selectable"`
	Selected   *bool    `json:"selected"`
	Displayed  *bool    `json:"displayed"`
	Groups     []string `json:"groups"`
}

// L3Group 描述一组按版本组织的组件集合。
type L3Group struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	GroupType    string           `json:"groupType"`
	InstalledOn  string           `json:"installedOn"`
	Description  string           `json:"description"`
	FlashMessage string           `json:"flashMessage"`
	Versions     []L3GroupVersion `json:"versions"`
}

// L3GroupVersion 列出一个 group 版本包含的组件引用。
type L3GroupVersion struct {
	Version    string                    `json:"version"`
	Components []L3GroupComponentVersion `json:"components"`
}

// L3GroupComponentVersion 是 group 对组件某个版本的引用。
type L3GroupComponentVersion struct {
	ID      string `json:"id"`
	Version string `json:"version"`
}

// L3Component 描述单个组件及其全部版本。
type L3Component struct {
	ID                        string               `json:"id"`
	Name                      string               `json:"name"`
	Description               string               `json:"description"`
	CompType                  string               `json:"compType"`
	IsVisible                 bool                 `json:"isVisible"`
	LicenseID                 string               `json:"licenseId"`
	IsDetectableInstall       bool                 `json:"isDetectableInstall"`
	IsInstallPathCustomizable bool                 `json:"isInstallPathCustomizable"`
	Versions                  []L3ComponentVersion `json:"versions"`
}

// L3ComponentVersion 描述组件某个版本的平台支持与下载清单。
type L3ComponentVersion struct {
	Version              string          `json:"version"`
	OperatingSystems     []string        `json:"operatingSystems"`
	InstallSizeMB        float64         `json:"installSizeMB"`
	DownloadFiles        []DownloadFile  `json:"downloadFiles"`
	TargetIDs            []string        `json:"targetIds"`
	Dependencies         json.RawMessage `json:"dependencies"`
	ExternalDependencies json.RawMessage `json:"external_dependencies"`
}

// DownloadFile 是一个可下载文件的目录条目：相对地址、落盘文件名、
// 期望大小与校验信息。
type DownloadFile struct {
	URL               string          `json:"url"`
	FileName          string          `json:"fileName"`
	Size              int64           `json:"size"`
	Checksum          string          `json:"checksum"`
	ChecksumType      string          `json:"checksumType"`
	InstallParameters json.RawMessage `json:"installParameters"`
}

// LoadL3 经由缓存客户端抓取并解析 L3 组件目录。
func LoadL3(ctx context.Context, src Source, url string, logger logrus.FieldLogger) (*L3Repo, error) {
	artifact, err := src.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch l3 catalog: %w", err)
	}

	var repo L3Repo
	if err := artifact.JSON(&repo); err != nil {
		return nil, err
	}
	repo.Source = url
	repo.logger = logger
	return &repo, nil
}

// SectionIDs 返回全部分区 ID。
func (r *L3Repo) SectionIDs() []string {
	ids := make([]string, 0, len(r.Sections))
	for _, section := range r.Sections {
		ids = append(ids, section.ID)
	}
	return ids
}

// Section 按 ID 查找分区。
func (r *L3Repo) Section(id string) (*L3Section, bool) {
	for i := range r.Sections {
		if r.Sections[i].ID == id {
			return &r.Sections[i], true
		}
	}
	return nil, false
}

// GroupIDs 返回全部 group ID，排序后保证输出稳定。
func (r *L3Repo) GroupIDs() []string {
	ids := make([]string, 0, len(r.Groups))
	for id := range r.Groups {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Group 按 ID 查找 group。
func (r *L3Repo) Group(id string) (L3Group, bool) {
	group, ok := r.Groups[id]
	return group, ok
}

// ComponentIDs 返回全部组件 ID，排序后保证输出稳定。
func (r *L3Repo) ComponentIDs() []string {
	ids := make([]string, 0, len(r.Components))
	for id := range r.Components {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Component 按 ID 查找组件。
func (r *L3Repo) Component(id string) (L3Component, bool) {
	component, ok := r.Components[id]
	return component, ok
}

// ComponentsForSection 展开分区下全部 group 引用的组件 ID 集合。
// 分区不存在时记录告警并返回空集，与目录数据缺陷解耦。
func (r *L3Repo) ComponentsForSection(id string) []string {
	section, ok := r.Section(id)
	if !ok {
		r.warn("section", id)
		return nil
	}

	set := make(map[string]struct{})
	for _, groupID := range section.Groups {
		for _, componentID := range r.ComponentsForGroup(groupID) {
			set[componentID] = struct{}{}
		}
	}
	return sortedKeys(set)
}

// ComponentsForGroup 返回 group 首个版本引用的组件 ID 集合。
// 同一 group 存在多个版本时选择第一个并记录告警。
func (r *L3Repo) ComponentsForGroup(id string) []string {
	group, ok := r.Group(id)
	if !ok {
		r.warn("group", id)
		return nil
	}
	if len(group.Versions) == 0 {
		return nil
	}
	if len(group.Versions) > 1 && r.logger != nil {
		r.logger.WithFields(logrus.Fields{
			"action": "catalog_multiple_versions",
			"group":  id,
		}).Warn("group 存在多个版本，选用第一个")
	}

	set := make(map[string]struct{})
	for _, component := range group.Versions[0].Components {
		set[component.ID] = struct{}{}
	}
	return sortedKeys(set)
}

// DownloadFilesForComponent 返回组件首个版本的下载清单。
// 组件不存在时返回携带候选列表的 *SelectionError。
func (r *L3Repo) DownloadFilesForComponent(id string) ([]DownloadFile, error) {
	component, ok := r.Component(id)
	if !ok {
		return nil, newSelectionError("component", id, r.ComponentIDs())
	}
	if len(component.Versions) == 0 {
		return nil, nil
	}
	if len(component.Versions) > 1 && r.logger != nil {
		r.logger.WithFields(logrus.Fields{
			"action":    "catalog_multiple_versions",
			"component": id,
		}).Warn("component 存在多个版本，选用第一个")
	}
	return component.Versions[0].DownloadFiles, nil
}

// FileURL 将下载文件的相对地址解析为绝对地址，基准是 compDirectory。
func (r *L3Repo) FileURL(file DownloadFile) (string, error) {
	base := r.CompDirectory
	if base == "" {
		base = r.Source
	}
	return resolveURL(base, file.URL)
}

// warn 统一记录"目录引用了不存在的节点"这类数据缺陷。
func (r *L3Repo) warn(kind, id string) {
	if r.logger == nil {
		return
	}
	r.logger.WithFields(logrus.Fields{
		"action": "catalog_missing_node",
		"kind":   kind,
		"id":     id,
	}).Warn("目录引用了不存在的节点")
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
