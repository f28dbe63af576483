package catalog

import (
	"encoding/json"
	"fmt"
	"os"
)

// SdkmConfig 对应 SDKManager 自带的 sdkm_config.json，提供目录入口地址。
type SdkmConfig struct {
	MainRepoURL   string `json:"mainRepoURL"`
	PIDServer     string `json:"PIDServer"`
	DevZoneServer string `json:"DevZoneServer"`
}

// LoadSdkmConfig 从本地磁盘读取并解析 sdkm_config.json。
func LoadSdkmConfig(path string) (*SdkmConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sdkm config: %w", err)
	}
	defer f.Close()

	var cfg SdkmConfig
	if err := json.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode sdkm config %s: %w", path, err)
	}
	if cfg.MainRepoURL == "" {
		return nil, fmt.Errorf("sdkm config %s: mainRepoURL 不能为空", path)
	}
	return &cfg, nil
}
