package components

// TransformComponent 卡片的当前三维变换
//
// 坐标系：摄像机位于 +Z 方向看向原点，Z 越小越远离观察者。
// 由 TweenSystem 每帧写入，渲染系统只读。
type TransformComponent struct {
	X, Y, Z float64

	// RotationY 绕 Y 轴旋转（弧度）
	RotationY float64
}
