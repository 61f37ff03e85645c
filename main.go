// 封面流主程序
//
// 用法：
//
//	go run . [-config data/coverflow.yaml] [-albums data/albums.json] [-verbose]
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gonewx/coverflow/pkg/app"
	"github.com/gonewx/coverflow/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	configPath = flag.String("config", app.DefaultConfigPath, "配置文件路径")
	albumsPath = flag.String("albums", "", "专辑列表路径（JSON 或 YAML），覆盖配置文件中的 albums")
	verbose    = flag.Bool("verbose", false, "详细日志")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源
	// assetsFS 和 dataFS 在 embed.go 中声明
	embedded.Init(assetsFS, dataFS)

	coverFlow, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		ConfigPath: *configPath,
		AlbumsPath: *albumsPath,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化失败: %v\n", err)
		os.Exit(1)
	}

	cfg := coverFlow.Config()
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(coverFlow); err != nil {
		fmt.Fprintf(os.Stderr, "运行失败: %v\n", err)
		os.Exit(1)
	}
}
