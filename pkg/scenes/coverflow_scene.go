package scenes

import (
	"image/color"
	"log"

	"github.com/gonewx/coverflow/pkg/components"
	"github.com/gonewx/coverflow/pkg/config"
	"github.com/gonewx/coverflow/pkg/ecs"
	"github.com/gonewx/coverflow/pkg/game"
	"github.com/gonewx/coverflow/pkg/systems"
	"github.com/gonewx/coverflow/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// 场景背景色
var coverFlowClearColor = color.RGBA{R: 0, G: 0, B: 0, A: 255}

// emptyMessage 没有专辑时的提示
const emptyMessage = "No albums to show"

// CoverFlowScene 封面流主场景
//
// 系统更新顺序：SliderSystem → SelectionInputSystem → TweenSystem，
// Draw 只读取变换，保证渲染看到的是本帧完整更新后的状态。
type CoverFlowScene struct {
	entityManager *ecs.EntityManager
	config        *config.CoverFlowConfig

	tweenSystem          *systems.TweenSystem
	coverFlowSystem      *systems.CoverFlowSystem
	cameraSystem         *systems.CameraSystem
	sliderSystem         *systems.SliderSystem
	selectionInputSystem *systems.SelectionInputSystem
	cardRenderSystem     *systems.CardRenderSystem
	sliderRenderSystem   *systems.SliderRenderSystem

	sliderEntity ecs.EntityID
}

// NewCoverFlowScene 创建封面流场景
//
// 参数：
//   - cfg: 已校验的配置
//   - albums: 专辑列表，长度决定卡片数量
//   - covers: 与 albums 一一对应的封面，元素可为 nil（使用占位平面）
//   - background: 背景图片，可为 nil
func NewCoverFlowScene(cfg *config.CoverFlowConfig, albums []game.Album, covers []*ebiten.Image, background *ebiten.Image) *CoverFlowScene {
	em := ecs.NewEntityManager()
	width := float64(cfg.Window.Width)
	height := float64(cfg.Window.Height)

	scene := &CoverFlowScene{
		entityManager: em,
		config:        cfg,
	}

	scene.tweenSystem = systems.NewTweenSystem(em, cfg.Animation)
	scene.coverFlowSystem = systems.NewCoverFlowSystem(em, scene.tweenSystem, cfg.Layout, albums)
	scene.cameraSystem = systems.NewCameraSystem(em, cfg.Camera, width, height)
	scene.attachCovers(covers)

	scene.sliderEntity = scene.createSlider(width, height)

	scene.sliderSystem = systems.NewSliderSystem(em)
	inputConfig := cfg.Input
	if utils.IsMobile() {
		// 移动端没有键盘
		inputConfig.KeyboardEnabled = false
	}
	scene.selectionInputSystem = systems.NewSelectionInputSystem(em, scene.coverFlowSystem, inputConfig, width)
	scene.cardRenderSystem = systems.NewCardRenderSystem(em, scene.cameraSystem, scene.coverFlowSystem, cfg, background)
	scene.sliderRenderSystem = systems.NewSliderRenderSystem(em)

	// 移动到初始居中卡片，并同步滑动条
	scene.coverFlowSystem.Start()
	if slider := scene.Slider(); slider != nil {
		slider.Value = scene.coverFlowSystem.SelectionValue()
	}

	log.Printf("[CoverFlowScene] Ready: %d cards, current %d", scene.coverFlowSystem.CardCount(), scene.coverFlowSystem.CurrentIndex())
	return scene
}

// attachCovers 将封面绑定到卡片组件
func (s *CoverFlowScene) attachCovers(covers []*ebiten.Image) {
	missing := 0
	for i, entityID := range s.coverFlowSystem.Cards() {
		card, ok := ecs.GetComponent[*components.CardComponent](s.entityManager, entityID)
		if !ok {
			continue
		}
		if i < len(covers) && covers[i] != nil {
			card.Image = covers[i]
		} else {
			missing++
		}
	}
	if missing > 0 {
		log.Printf("[CoverFlowScene] %d cards without cover, using placeholders", missing)
	}
}

// createSlider 在屏幕底部居中创建选择滑动条
func (s *CoverFlowScene) createSlider(screenWidth, screenHeight float64) ecs.EntityID {
	sc := s.config.Slider
	id := s.entityManager.CreateEntity()
	ecs.AddComponent(s.entityManager, id, &components.PositionComponent{
		X: (screenWidth - sc.Width) / 2,
		Y: screenHeight - sc.MarginBottom - sc.Height,
	})
	ecs.AddComponent(s.entityManager, id, &components.SliderComponent{
		SlotWidth:  sc.Width,
		SlotHeight: sc.Height,
		KnobWidth:  sc.KnobWidth,
		OnValueChange: func(value float64) {
			s.coverFlowSystem.SelectValue(value)
		},
	})
	return id
}

// Slider 返回选择滑动条组件
func (s *CoverFlowScene) Slider() *components.SliderComponent {
	slider, ok := ecs.GetComponent[*components.SliderComponent](s.entityManager, s.sliderEntity)
	if !ok {
		return nil
	}
	return slider
}

// CoverFlow 返回封面流选择系统
func (s *CoverFlowScene) CoverFlow() *systems.CoverFlowSystem {
	return s.coverFlowSystem
}

// Update 更新输入和动画
func (s *CoverFlowScene) Update(deltaTime float64) {
	s.sliderSystem.Update(deltaTime)
	s.selectionInputSystem.Update(deltaTime)
	s.tweenSystem.Update(deltaTime)

	s.updateCursor()
}

// updateCursor 悬停在滑动条上时显示手型光标，拖拽卡片时显示移动光标
func (s *CoverFlowScene) updateCursor() {
	cursorShape := ebiten.CursorShapeDefault
	if slider := s.Slider(); slider != nil && (slider.IsHovered || slider.IsDragging) {
		cursorShape = ebiten.CursorShapePointer
	} else if s.selectionInputSystem.IsDragging() {
		cursorShape = ebiten.CursorShapeMove
	}
	if ebiten.CursorShape() != cursorShape {
		ebiten.SetCursorShape(cursorShape)
	}
}

// Draw 绘制场景
func (s *CoverFlowScene) Draw(screen *ebiten.Image) {
	screen.Fill(coverFlowClearColor)

	if s.coverFlowSystem.CardCount() == 0 {
		x := s.config.Window.Width/2 - len(emptyMessage)*3
		ebitenutil.DebugPrintAt(screen, emptyMessage, x, s.config.Window.Height/2)
		return
	}

	s.cardRenderSystem.Draw(screen)
	s.sliderRenderSystem.Draw(screen)
}
