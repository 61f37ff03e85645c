package config

import (
	"fmt"
	"os"

	"github.com/gonewx/coverflow/pkg/embedded"
	"github.com/gonewx/coverflow/pkg/utils"
	"gopkg.in/yaml.v3"
)

// 窗口默认尺寸
const (
	GameWindowWidth  = 1280
	GameWindowHeight = 720
)

// CoverFlowConfig 封面流完整配置
//
// 配置文件位置: data/coverflow.yaml
type CoverFlowConfig struct {
	Window    WindowConfig    `yaml:"window"`
	Camera    CameraConfig    `yaml:"camera"`
	Layout    CoverFlowLayout `yaml:"layout"`
	Animation AnimationConfig `yaml:"animation"`
	Input     InputConfig     `yaml:"input"`
	Render    RenderConfig    `yaml:"render"`
	Slider    SliderConfig    `yaml:"slider"`
	Loading   LoadingConfig   `yaml:"loading"`

	// AlbumsPath 专辑列表文件路径（JSON 或 YAML）
	AlbumsPath string `yaml:"albums"`
}

// WindowConfig 窗口配置
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// CameraConfig 透视摄像机配置
// 摄像机位于 (0, 0, PositionZ) 看向原点
type CameraConfig struct {
	FOVDegrees float64 `yaml:"fovDegrees"` // 垂直视场角
	PositionZ  float64 `yaml:"positionZ"`
}

// AnimationConfig 过渡动画配置
// 位置通道和旋转通道使用独立的时长与缓动
type AnimationConfig struct {
	PositionDuration float64 `yaml:"positionDuration"` // 秒
	RotationDuration float64 `yaml:"rotationDuration"` // 秒
	PositionEasing   string  `yaml:"positionEasing"`
	RotationEasing   string  `yaml:"rotationEasing"`
}

// InputConfig 输入灵敏度配置
type InputConfig struct {
	// WheelSensitivity 每单位滚轮增量对应的选择值变化
	WheelSensitivity float64 `yaml:"wheelSensitivity"`
	// DragSensitivityFactor 拖拽灵敏度系数，拖过 factor*屏幕宽度 即走完整个范围
	DragSensitivityFactor float64 `yaml:"dragSensitivityFactor"`
	// KeyboardEnabled 是否启用方向键切换
	KeyboardEnabled bool `yaml:"keyboardEnabled"`
}

// RenderConfig 渲染配置
type RenderConfig struct {
	Segments          int     `yaml:"segments"` // 每张卡片的纵向切分条数
	ReflectionOpacity float64 `yaml:"reflectionOpacity"`
	ReflectionGap     float64 `yaml:"reflectionGap"`
	BackgroundImage   string  `yaml:"backgroundImage"`
	BackgroundWidth   float64 `yaml:"backgroundWidth"`
	BackgroundHeight  float64 `yaml:"backgroundHeight"`
	BackgroundZ       float64 `yaml:"backgroundZ"`
	ShowLabel         bool    `yaml:"showLabel"`
}

// SliderConfig 底部滑动条配置
type SliderConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	KnobWidth    float64 `yaml:"knobWidth"`
	MarginBottom float64 `yaml:"marginBottom"`
}

// LoadingConfig 封面加载配置
type LoadingConfig struct {
	MaxConcurrent  int     `yaml:"maxConcurrent"`
	TimeoutSeconds float64 `yaml:"timeoutSeconds"`
}

// DefaultCoverFlowConfig 返回默认配置
func DefaultCoverFlowConfig() *CoverFlowConfig {
	return &CoverFlowConfig{
		Window: WindowConfig{
			Width:  GameWindowWidth,
			Height: GameWindowHeight,
			Title:  "Cover Flow",
		},
		Camera: CameraConfig{
			FOVDegrees: 30,
			PositionZ:  900,
		},
		Layout: DefaultCoverFlowLayout(),
		Animation: AnimationConfig{
			PositionDuration: 1.8,
			RotationDuration: 0.9,
			PositionEasing:   utils.EasingExpoOut,
			RotationEasing:   utils.EasingExpoOut,
		},
		Input: InputConfig{
			WheelSensitivity:      0.05,
			DragSensitivityFactor: 2.0,
			KeyboardEnabled:       true,
		},
		Render: RenderConfig{
			Segments:          8,
			ReflectionOpacity: 0.2,
			ReflectionGap:     1,
			BackgroundWidth:   3000,
			BackgroundHeight:  1000,
			BackgroundZ:       -500,
			ShowLabel:         true,
		},
		Slider: SliderConfig{
			Width:        400,
			Height:       8,
			KnobWidth:    24,
			MarginBottom: 40,
		},
		Loading: LoadingConfig{
			MaxConcurrent:  4,
			TimeoutSeconds: 15,
		},
		AlbumsPath: "data/albums.json",
	}
}

// LoadCoverFlowConfig 加载封面流配置
//
// 先用默认值填充，再用 YAML 文件中的字段覆盖，未出现的字段保留默认值。
// 优先从嵌入资源读取，找不到时回退到磁盘。
//
// 参数：
//   - path: 配置文件路径，如 "data/coverflow.yaml"
//
// 返回：
//   - *CoverFlowConfig: 配置实例
//   - error: 读取、解析或校验失败时返回错误
func LoadCoverFlowConfig(path string) (*CoverFlowConfig, error) {
	data, err := readConfigData(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read coverflow config %s: %w", path, err)
	}

	cfg, err := ParseCoverFlowConfig(data)
	if err != nil {
		return nil, fmt.Errorf("invalid coverflow config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseCoverFlowConfig 从 YAML 数据解析配置并校验
func ParseCoverFlowConfig(data []byte) (*CoverFlowConfig, error) {
	cfg := DefaultCoverFlowConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 校验配置合法性
func (c *CoverFlowConfig) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Camera.FOVDegrees <= 0 || c.Camera.FOVDegrees >= 180 {
		return fmt.Errorf("camera fovDegrees must be in (0, 180), got %v", c.Camera.FOVDegrees)
	}
	if c.Camera.PositionZ <= 0 {
		return fmt.Errorf("camera positionZ must be positive, got %v", c.Camera.PositionZ)
	}
	if c.Layout.PlaneWidth <= 0 || c.Layout.PlaneHeight <= 0 {
		return fmt.Errorf("layout plane size must be positive, got %vx%v", c.Layout.PlaneWidth, c.Layout.PlaneHeight)
	}
	if c.Layout.SpacingX < 0 || c.Layout.LateralOffsetRatio < 0 || c.Layout.DepthOffsetRatio < 0 {
		return fmt.Errorf("layout spacing and offsets must not be negative")
	}
	if c.Animation.PositionDuration < 0 || c.Animation.RotationDuration < 0 {
		return fmt.Errorf("animation durations must not be negative")
	}
	if _, err := utils.EasingByName(c.Animation.PositionEasing); err != nil {
		return fmt.Errorf("positionEasing: %w", err)
	}
	if _, err := utils.EasingByName(c.Animation.RotationEasing); err != nil {
		return fmt.Errorf("rotationEasing: %w", err)
	}
	if c.Input.WheelSensitivity < 0 {
		return fmt.Errorf("input wheelSensitivity must not be negative, got %v", c.Input.WheelSensitivity)
	}
	if c.Input.DragSensitivityFactor <= 0 {
		return fmt.Errorf("input dragSensitivityFactor must be positive, got %v", c.Input.DragSensitivityFactor)
	}
	if c.Render.Segments < 1 {
		return fmt.Errorf("render segments must be at least 1, got %d", c.Render.Segments)
	}
	if c.Render.ReflectionOpacity < 0 || c.Render.ReflectionOpacity > 1 {
		return fmt.Errorf("render reflectionOpacity must be in [0, 1], got %v", c.Render.ReflectionOpacity)
	}
	if c.Loading.MaxConcurrent < 1 {
		return fmt.Errorf("loading maxConcurrent must be at least 1, got %d", c.Loading.MaxConcurrent)
	}
	if c.AlbumsPath == "" {
		return fmt.Errorf("albums path must not be empty")
	}
	return nil
}

// readConfigData 读取配置数据
// 嵌入资源中存在时从 embed.FS 读取，否则从磁盘读取
func readConfigData(path string) ([]byte, error) {
	if embedded.IsInitialized() && embedded.Exists(path) {
		return embedded.ReadFile(path)
	}
	return os.ReadFile(path)
}
