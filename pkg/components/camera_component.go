package components

import "math"

// CameraComponent 透视摄像机
// 摄像机位于 (0, 0, PositionZ)，沿 -Z 方向看向原点，Y 轴向上
type CameraComponent struct {
	// PositionZ 摄像机 Z 坐标
	PositionZ float64

	// FOVDegrees 垂直视场角（度）
	FOVDegrees float64

	// 视口尺寸（像素）
	ViewportWidth  float64
	ViewportHeight float64

	// Near 近裁剪距离，距离小于该值的点不投影
	Near float64
}

// FocalLength 返回以像素为单位的焦距
func (c *CameraComponent) FocalLength() float64 {
	half := c.FOVDegrees * math.Pi / 360
	if half <= 0 {
		return 0
	}
	return (c.ViewportHeight / 2) / math.Tan(half)
}

// Project 将世界坐标投影到屏幕坐标
// 返回 ok=false 表示点在近裁剪面之后
func (c *CameraComponent) Project(x, y, z float64) (sx, sy float64, ok bool) {
	d := c.PositionZ - z
	if d <= c.Near {
		return 0, 0, false
	}
	f := c.FocalLength()
	sx = c.ViewportWidth/2 + f*x/d
	sy = c.ViewportHeight/2 - f*y/d
	return sx, sy, true
}

// ScaleAt 返回深度 z 处一个世界单位对应的屏幕像素数
func (c *CameraComponent) ScaleAt(z float64) float64 {
	d := c.PositionZ - z
	if d <= c.Near {
		return 0
	}
	return c.FocalLength() / d
}
