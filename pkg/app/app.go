// Package app 提供封面流应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"time"

	"github.com/gonewx/coverflow/pkg/config"
	"github.com/gonewx/coverflow/pkg/game"
	"github.com/gonewx/coverflow/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// DefaultConfigPath 默认配置文件路径
const DefaultConfigPath = "data/coverflow.yaml"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 配置文件路径，为空时使用 DefaultConfigPath
	ConfigPath string
	// AlbumsPath 专辑列表路径，非空时覆盖配置文件中的 albums
	AlbumsPath string
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	config                   *config.CoverFlowConfig
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
// 配置或专辑列表加载失败时返回错误；单个封面加载失败不影响启动。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	configPath := cfg.ConfigPath
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	cfConfig, err := config.LoadCoverFlowConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("配置加载失败: %w", err)
	}
	log.Printf("[Config] 加载配置: %s", configPath)

	if cfg.AlbumsPath != "" {
		cfConfig.AlbumsPath = cfg.AlbumsPath
	}
	albums, err := game.LoadAlbums(cfConfig.AlbumsPath)
	if err != nil {
		return nil, fmt.Errorf("专辑列表加载失败: %w", err)
	}
	log.Printf("[App] Loaded %d albums from %s", len(albums), cfConfig.AlbumsPath)

	timeout := time.Duration(cfConfig.Loading.TimeoutSeconds * float64(time.Second))
	resourceManager := game.NewResourceManager(timeout)

	sceneManager := game.NewSceneManager()
	sceneManager.SwitchTo(scenes.NewLoadingScene(resourceManager, sceneManager, cfConfig, albums))

	return &App{
		sceneManager: sceneManager,
		config:       cfConfig,
		verbose:      cfg.Verbose,
	}, nil
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.config.Window.Width, a.config.Window.Height)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", a.config.Window.Width, a.config.Window.Height)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.config.Window.Width, a.config.Window.Height
}

// Config 返回已加载的配置
func (a *App) Config() *config.CoverFlowConfig {
	return a.config
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
