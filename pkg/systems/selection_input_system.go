package systems

import (
	"log"

	"github.com/gonewx/coverflow/pkg/components"
	"github.com/gonewx/coverflow/pkg/config"
	"github.com/gonewx/coverflow/pkg/ecs"
	"github.com/gonewx/coverflow/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// SelectionInput 选择输入接口（滚轮、指针拖拽、键盘）
// 用于依赖注入，支持测试时 mock
type SelectionInput interface {
	Wheel() (xoff, yoff float64)
	CursorPosition() (int, int)
	IsPointerPressed() bool
	IsKeyJustPressed(key ebiten.Key) bool
}

// ebitenSelectionInput Ebitengine 默认实现
type ebitenSelectionInput struct{}

func (e *ebitenSelectionInput) Wheel() (float64, float64) {
	return ebiten.Wheel()
}

func (e *ebitenSelectionInput) CursorPosition() (int, int) {
	return utils.GetPointerPosition()
}

func (e *ebitenSelectionInput) IsPointerPressed() bool {
	return utils.IsPointerPressed()
}

func (e *ebitenSelectionInput) IsKeyJustPressed(key ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(key)
}

// SelectionInputSystem 滚轮、拖拽和键盘选择系统
//
// 所有输入源都汇总到滑动条组件的 Value 上（唯一的归一化选择值），
// 再通过 SliderComponent.OnValueChange 交给 CoverFlowSystem.SelectValue：
//   - 滚轮：value += deltaY * WheelSensitivity（向下滚动为正）
//   - 拖拽：value = startValue - dx / (DragSensitivityFactor * screenWidth)
//   - 键盘：左右方向键移动一张，Home/End 跳到两端，然后同步滑动条
//
// 在滑动条上按下的拖拽归 SliderSystem 处理，必须在 SliderSystem 之后更新。
type SelectionInputSystem struct {
	entityManager *ecs.EntityManager
	coverFlow     *CoverFlowSystem
	input         SelectionInput
	config        config.InputConfig
	screenWidth   float64

	wasPressed     bool
	dragState      utils.DragState
	dragStartX     int
	dragStartValue float64
}

// NewSelectionInputSystem 创建选择输入系统
func NewSelectionInputSystem(em *ecs.EntityManager, cf *CoverFlowSystem, cfg config.InputConfig, screenWidth float64) *SelectionInputSystem {
	return NewSelectionInputSystemWithInput(em, cf, cfg, screenWidth, &ebitenSelectionInput{})
}

// NewSelectionInputSystemWithInput 创建带自定义输入的选择输入系统（用于测试）
func NewSelectionInputSystemWithInput(em *ecs.EntityManager, cf *CoverFlowSystem, cfg config.InputConfig, screenWidth float64, input SelectionInput) *SelectionInputSystem {
	return &SelectionInputSystem{
		entityManager: em,
		coverFlow:     cf,
		input:         input,
		config:        cfg,
		screenWidth:   screenWidth,
	}
}

// IsDragging 返回是否正在进行拖拽选择
func (s *SelectionInputSystem) IsDragging() bool {
	return s.dragState == utils.DragStateDragging
}

// Update 处理本帧的选择输入
// 每个输入源在本帧内按顺序同步地产生最多一次布局切换
func (s *SelectionInputSystem) Update(deltaTime float64) {
	pressed := s.input.IsPointerPressed()
	justPressed := pressed && !s.wasPressed
	s.wasPressed = pressed

	slider := s.slider()
	if slider == nil || s.coverFlow.CardCount() == 0 {
		s.dragState = utils.DragStateNone
		return
	}

	s.handleWheel(slider)
	s.handleDrag(slider, pressed, justPressed)
	if s.config.KeyboardEnabled {
		s.handleKeyboard(slider)
	}
}

// handleWheel 滚轮累加
func (s *SelectionInputSystem) handleWheel(slider *components.SliderComponent) {
	_, yoff := s.input.Wheel()
	if yoff == 0 {
		return
	}
	// Ebitengine 中向上滚动为正，取反后向下滚动（deltaY > 0）增大选择值
	deltaY := -yoff
	SetSliderValue(slider, slider.Value+deltaY*s.config.WheelSensitivity)
}

// handleDrag 拖拽/滑动手势
func (s *SelectionInputSystem) handleDrag(slider *components.SliderComponent, pressed, justPressed bool) {
	x, _ := s.input.CursorPosition()

	if !pressed {
		if s.dragState == utils.DragStateDragging {
			log.Printf("[SelectionInputSystem] Drag ended at value %.3f", slider.Value)
		}
		s.dragState = utils.DragStateNone
		return
	}

	if justPressed && !slider.IsHovered && !slider.IsDragging {
		s.dragState = utils.DragStateDragging
		s.dragStartX = x
		s.dragStartValue = slider.Value
	}
	if s.dragState != utils.DragStateDragging {
		return
	}

	span := s.config.DragSensitivityFactor * s.screenWidth
	if span <= 0 {
		return
	}
	dx := float64(x - s.dragStartX)
	SetSliderValue(slider, s.dragStartValue-dx/span)
}

// handleKeyboard 方向键切换
func (s *SelectionInputSystem) handleKeyboard(slider *components.SliderComponent) {
	moved := false
	switch {
	case s.input.IsKeyJustPressed(ebiten.KeyArrowLeft):
		moved = s.coverFlow.Step(-1)
	case s.input.IsKeyJustPressed(ebiten.KeyArrowRight):
		moved = s.coverFlow.Step(1)
	case s.input.IsKeyJustPressed(ebiten.KeyHome):
		moved = s.coverFlow.MoveTo(0)
	case s.input.IsKeyJustPressed(ebiten.KeyEnd):
		moved = s.coverFlow.MoveTo(s.coverFlow.CardCount() - 1)
	}
	if moved {
		// 映射回的索引与当前索引相同，回调不会再次触发切换
		SetSliderValue(slider, s.coverFlow.SelectionValue())
	}
}

// slider 返回第一个滑动条组件
func (s *SelectionInputSystem) slider() *components.SliderComponent {
	entities := ecs.GetEntitiesWith1[*components.SliderComponent](s.entityManager)
	if len(entities) == 0 {
		return nil
	}
	slider, _ := ecs.GetComponent[*components.SliderComponent](s.entityManager, entities[0])
	return slider
}
