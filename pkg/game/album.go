package game

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gonewx/coverflow/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// Album 专辑记录
// 列表在启动时加载一次，之后只读；列表长度决定卡片数量
type Album struct {
	Title    string `json:"title" yaml:"title"`
	Artist   string `json:"artist,omitempty" yaml:"artist,omitempty"`
	ImageURL string `json:"image_url" yaml:"image_url"`
}

// LoadAlbums 加载专辑列表
//
// 支持 JSON（.json）和 YAML（.yaml/.yml）两种格式，字段名相同。
// 嵌入资源中存在时从 embed.FS 读取，否则从磁盘读取。
//
// 参数：
//   - path: 专辑列表路径，如 "data/albums.json"
//
// 返回：
//   - []Album: 专辑列表（可能为空）
//   - error: 读取或解析失败时返回错误
func LoadAlbums(path string) ([]Album, error) {
	var (
		data []byte
		err  error
	)
	if embedded.IsInitialized() && embedded.Exists(path) {
		data, err = embedded.ReadFile(path)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read album list %s: %w", path, err)
	}

	albums, err := ParseAlbums(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("failed to parse album list %s: %w", path, err)
	}
	return albums, nil
}

// ParseAlbums 按扩展名解析专辑列表数据
func ParseAlbums(data []byte, ext string) ([]Album, error) {
	var albums []Album
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &albums); err != nil {
			return nil, err
		}
	case ".json", "":
		if err := json.Unmarshal(data, &albums); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported album list format %q", ext)
	}

	if albums == nil {
		albums = []Album{}
	}
	return albums, nil
}
