package actions

import (
	"fmt"
	"io"

	"github.com/sdkget/sdkget/internal/catalog"
)

// Show 打印目录元数据。选择器为空时列出全部 section/group/component ID，
// 否则逐项展开被点名的节点；点名不存在的节点返回 *SelectionError。
func Show(w io.Writer, repo *catalog.L3Repo, sel Selection) error {
	if sel.IsEmpty() {
		fmt.Fprintln(w, "Package sections:")
		for _, id := range repo.SectionIDs() {
			fmt.Fprintf(w, "\t%s\n", id)
		}

		fmt.Fprintln(w, "Package groups:")
		for _, id := range repo.GroupIDs() {
			fmt.Fprintf(w, "\t%s\n", id)
		}

		fmt.Fprintln(w, "Package components:")
		for _, id := range repo.ComponentIDs() {
			fmt.Fprintf(w, "\t%s\n", id)
		}
	}

	for _, sectionID := range sel.Sections {
		section, ok := repo.Section(sectionID)
		if !ok {
			return &catalog.SelectionError{Kind: "section", Value: sectionID, Options: repo.SectionIDs()}
		}
		fmt.Fprintf(w, "Section %s: %s[%s]\n", section.ID, section.Title, section.Name)
		for _, groupID := range section.Groups {
			fmt.Fprintf(w, "\tChild group: %s\n", groupID)
		}
	}

	for _, groupID := range sel.Groups {
		group, ok := repo.Group(groupID)
		if !ok {
			return &catalog.SelectionError{Kind: "group", Value: groupID, Options: repo.GroupIDs()}
		}
		fmt.Fprintf(w, "Group %s: %s[%s]\n", group.ID, group.Name, group.InstalledOn)
		fmt.Fprintf(w, "\tDescription: %s\n", group.Description)
		for _, version := range group.Versions {
			fmt.Fprintf(w, "\tVersion %s components:\n", version.Version)
			for _, component := range version.Components {
				fmt.Fprintf(w, "\t\t%s\n", component.ID)
			}
		}
	}

	for _, componentID := range sel.Components {
		component, ok := repo.Component(componentID)
		if !ok {
			return &catalog.SelectionError{Kind: "component", Value: componentID, Options: repo.ComponentIDs()}
		}
		fmt.Fprintf(w, "Component %s: %s[%s]\n", component.ID, component.Name, component.CompType)
		fmt.Fprintf(w, "\tDescription: %s\n", component.Description)
		for _, version := range component.Versions {
			fmt.Fprintf(w, "\tVersion %s:\n", version.Version)
			fmt.Fprintf(w, "\t\tInstall size: %v MB\n", version.InstallSizeMB)
			for _, os := range version.OperatingSystems {
				fmt.Fprintf(w, "\t\tSupported OS: %s\n", os)
			}
			for _, targetID := range version.TargetIDs {
				fmt.Fprintf(w, "\t\tSupported HW: %s\n", targetID)
			}
			for _, file := range version.DownloadFiles {
				fmt.Fprintf(w, "\t\tPackage %s\n", file.FileName)
			}
		}
	}

	return nil
}
