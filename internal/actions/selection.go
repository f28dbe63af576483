package actions

import (
	"sort"

	"github.com/sdkget/sdkget/internal/catalog"
)

// Selection 汇总 CLI 上可重复指定的 section/group/component 选择器。
type Selection struct {
	Sections   []string
	Groups     []string
	Components []string
}

// IsEmpty 表示调用方没有给出任何选择器。
func (s Selection) IsEmpty() bool {
	return len(s.Sections) == 0 && len(s.Groups) == 0 && len(s.Components) == 0
}

// ComponentIDs 将选择器展开为去重且有序的组件 ID 集合：显式指定的
// 组件直接纳入，section/group 按目录结构展开。
func ComponentIDs(repo *catalog.L3Repo, sel Selection) []string {
	set := make(map[string]struct{})
	for _, id := range sel.Components {
		set[id] = struct{}{}
	}
	for _, sectionID := range sel.Sections {
		for _, id := range repo.ComponentsForSection(sectionID) {
			set[id] = struct{}{}
		}
	}
	for _, groupID := range sel.Groups {
		for _, id := range repo.ComponentsForGroup(groupID) {
			set[id] = struct{}{}
		}
	}

	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
