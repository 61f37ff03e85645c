package components

import "github.com/hajimehoshi/ebiten/v2"

// CardComponent 封面流中的一张卡片
// Index 在会话内固定，决定卡片在轮播中的位置
type CardComponent struct {
	// Index 卡片在专辑列表中的索引 [0, N)
	Index int

	// 展示信息
	Title  string
	Artist string

	// ImageRef 封面图片引用（本地路径、嵌入路径或 http(s) URL）
	ImageRef string

	// Image 已加载的封面，加载失败或尚未加载时为 nil
	// 无封面的卡片仍正常参与布局和动画，渲染时使用占位平面
	Image *ebiten.Image
}

// Label 返回卡片的显示文字
func (c *CardComponent) Label() string {
	switch {
	case c.Artist != "" && c.Title != "":
		return c.Artist + " - " + c.Title
	case c.Title != "":
		return c.Title
	default:
		return c.Artist
	}
}
