package systems

import (
	"github.com/gonewx/coverflow/pkg/components"
	"github.com/gonewx/coverflow/pkg/config"
	"github.com/gonewx/coverflow/pkg/ecs"
	"github.com/gonewx/coverflow/pkg/utils"
)

// SliderMouseInput 滑块系统指针输入接口
// 用于依赖注入，支持测试时 mock
type SliderMouseInput interface {
	CursorPosition() (int, int)
	IsPointerPressed() bool
}

// ebitenSliderMouseInput Ebitengine 默认实现（同时支持鼠标和触摸）
type ebitenSliderMouseInput struct{}

func (e *ebitenSliderMouseInput) CursorPosition() (int, int) {
	return utils.GetPointerPosition()
}

func (e *ebitenSliderMouseInput) IsPointerPressed() bool {
	return utils.IsPointerPressed()
}

// defaultSliderMouseInput 默认指针输入实例
var defaultSliderMouseInput SliderMouseInput = &ebitenSliderMouseInput{}

// SliderSystem 滑块交互系统
// 负责处理滑块的指针拖拽交互
//
// 职责：
//   - 只有在滑槽内按下时才开始拖拽（从外部拖入滑槽不会抢占）
//   - 拖拽期间将指针 X 坐标转换为 0.0~1.0 的 Value
//   - 更新 SliderComponent.Value 并调用 OnValueChange 回调
type SliderSystem struct {
	entityManager *ecs.EntityManager
	mouseInput    SliderMouseInput
	wasPressed    bool
}

// NewSliderSystem 创建滑块交互系统
func NewSliderSystem(em *ecs.EntityManager) *SliderSystem {
	return NewSliderSystemWithInput(em, defaultSliderMouseInput)
}

// NewSliderSystemWithInput 创建带自定义指针输入的滑块交互系统（用于测试）
func NewSliderSystemWithInput(em *ecs.EntityManager, input SliderMouseInput) *SliderSystem {
	return &SliderSystem{
		entityManager: em,
		mouseInput:    input,
	}
}

// Update 更新滑块交互状态
func (s *SliderSystem) Update(deltaTime float64) {
	mouseX, mouseY := s.mouseInput.CursorPosition()
	pressed := s.mouseInput.IsPointerPressed()
	justPressed := pressed && !s.wasPressed
	s.wasPressed = pressed

	entities := ecs.GetEntitiesWith2[*components.SliderComponent, *components.PositionComponent](s.entityManager)
	for _, entityID := range entities {
		slider, _ := ecs.GetComponent[*components.SliderComponent](s.entityManager, entityID)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, entityID)
		if slider == nil || pos == nil {
			continue
		}

		isInSlot := s.isMouseInSlot(float64(mouseX), float64(mouseY), pos.X, pos.Y, slider.SlotWidth, slider.SlotHeight)
		slider.IsHovered = isInSlot

		if !pressed {
			slider.IsDragging = false
			continue
		}
		if justPressed && isInSlot {
			slider.IsDragging = true
		}
		if !slider.IsDragging {
			continue
		}

		newValue := config.ClampUnit(s.calculateValue(float64(mouseX), pos.X, slider.SlotWidth))
		SetSliderValue(slider, newValue)
	}
}

// SetSliderValue 设置滑块值（限制到 0~1），值变化时触发回调
// 返回值是否发生了变化
func SetSliderValue(slider *components.SliderComponent, value float64) bool {
	value = config.ClampUnit(value)
	if value == slider.Value {
		return false
	}
	slider.Value = value
	if slider.OnValueChange != nil {
		slider.OnValueChange(value)
	}
	return true
}

// isMouseInSlot 检测指针是否在滑槽区域内
// 滑槽较细，上下各放宽一个滑槽高度便于点中
func (s *SliderSystem) isMouseInSlot(mouseX, mouseY, slotX, slotY, slotWidth, slotHeight float64) bool {
	return mouseX >= slotX &&
		mouseX <= slotX+slotWidth &&
		mouseY >= slotY-slotHeight &&
		mouseY <= slotY+2*slotHeight
}

// calculateValue 根据指针X坐标计算滑块值
func (s *SliderSystem) calculateValue(mouseX, slotX, slotWidth float64) float64 {
	if slotWidth <= 0 {
		return 0.0
	}
	return (mouseX - slotX) / slotWidth
}
