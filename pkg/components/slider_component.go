package components

// SliderComponent 滑动条组件
// 封面流底部的选择滑动条，Value 是所有输入源共享的归一化选择值
type SliderComponent struct {
	// 滑动条尺寸
	SlotWidth  float64 // 滑槽宽度
	SlotHeight float64 // 滑槽高度
	KnobWidth  float64 // 滑块宽度

	// 当前值（0.0 - 1.0）
	Value float64

	// 状态
	IsDragging bool // 是否正在拖动
	IsHovered  bool // 是否鼠标悬停

	// 回调函数
	OnValueChange func(value float64) // 值改变时的回调
}
