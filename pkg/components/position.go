package components

// PositionComponent 屏幕坐标位置（用于滑动条等二维 UI 元素）
type PositionComponent struct {
	X, Y float64
}
