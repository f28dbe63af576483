package actions

import (
	"context"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/sdkget/sdkget/internal/catalog"
	"github.com/sdkget/sdkget/internal/httpcache"
)

// Fetch 将选中组件的全部下载文件逐个拉入缓存。成功路径保持安静，
// 只输出结构化日志；任何一个文件失败都会中止剩余抓取。
func Fetch(ctx context.Context, repo *catalog.L3Repo, sel Selection, client *httpcache.Client, logger logrus.FieldLogger) error {
	urls, err := downloadURLs(repo, sel)
	if err != nil {
		return err
	}

	if len(urls) == 0 {
		logger.WithField("action", "fetch_empty").Warn("Fetch: 没有匹配的下载文件")
		return nil
	}

	for _, url := range urls {
		artifact, err := client.Get(ctx, url)
		if err != nil {
			return err
		}
		logger.WithFields(logrus.Fields{
			"action": "fetch_done",
			"url":    url,
			"path":   artifact.Path(),
		}).Info("文件已就绪")
	}
	return nil
}

// downloadURLs 把选择器展开为去重且有序的下载地址集合。
func downloadURLs(repo *catalog.L3Repo, sel Selection) ([]string, error) {
	set := make(map[string]struct{})
	for _, componentID := range ComponentIDs(repo, sel) {
		files, err := repo.DownloadFilesForComponent(componentID)
		if err != nil {
			return nil, err
		}
		for _, file := range files {
			url, err := repo.FileURL(file)
			if err != nil {
				return nil, err
			}
			set[url] = struct{}{}
		}
	}

	urls := make([]string, 0, len(set))
	for url := range set {
		urls = append(urls, url)
	}
	sort.Strings(urls)
	return urls, nil
}
