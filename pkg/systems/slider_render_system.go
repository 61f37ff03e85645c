package systems

import (
	"image/color"

	"github.com/gonewx/coverflow/pkg/components"
	"github.com/gonewx/coverflow/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 滑动条颜色
var (
	sliderSlotColor        = color.RGBA{R: 60, G: 60, B: 66, A: 255}
	sliderSlotBorderColor  = color.RGBA{R: 110, G: 110, B: 120, A: 255}
	sliderKnobColor        = color.RGBA{R: 200, G: 200, B: 205, A: 255}
	sliderKnobHoveredColor = color.RGBA{R: 240, G: 240, B: 245, A: 255}
)

// SliderRenderSystem 滑动条渲染系统
// 使用 vector 绘制滑槽和滑块，不依赖贴图
type SliderRenderSystem struct {
	entityManager *ecs.EntityManager
}

// NewSliderRenderSystem 创建滑动条渲染系统
func NewSliderRenderSystem(em *ecs.EntityManager) *SliderRenderSystem {
	return &SliderRenderSystem{entityManager: em}
}

// Draw 绘制所有滑动条
func (s *SliderRenderSystem) Draw(screen *ebiten.Image) {
	entities := ecs.GetEntitiesWith2[*components.SliderComponent, *components.PositionComponent](s.entityManager)
	for _, entityID := range entities {
		slider, _ := ecs.GetComponent[*components.SliderComponent](s.entityManager, entityID)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, entityID)
		if slider == nil || pos == nil {
			continue
		}
		s.drawSlider(screen, slider, pos.X, pos.Y)
	}
}

// drawSlider 渲染单个滑动条
func (s *SliderRenderSystem) drawSlider(screen *ebiten.Image, slider *components.SliderComponent, x, y float64) {
	w, h := float32(slider.SlotWidth), float32(slider.SlotHeight)

	vector.DrawFilledRect(screen, float32(x), float32(y), w, h, sliderSlotColor, true)
	vector.StrokeRect(screen, float32(x), float32(y), w, h, 1, sliderSlotBorderColor, true)

	knobX, knobY, knobW, knobH := KnobRect(slider, x, y)
	knobColor := sliderKnobColor
	if slider.IsHovered || slider.IsDragging {
		knobColor = sliderKnobHoveredColor
	}
	vector.DrawFilledRect(screen, float32(knobX), float32(knobY), float32(knobW), float32(knobH), knobColor, true)
}

// KnobRect 返回滑块矩形（以滑块中心对齐 Value 位置，高度为滑槽的 2.5 倍）
func KnobRect(slider *components.SliderComponent, x, y float64) (kx, ky, kw, kh float64) {
	kw = slider.KnobWidth
	kh = slider.SlotHeight * 2.5
	kx = x + slider.SlotWidth*slider.Value - kw/2
	ky = y + slider.SlotHeight/2 - kh/2
	return kx, ky, kw, kh
}
