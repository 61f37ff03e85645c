package components

import "github.com/gonewx/coverflow/pkg/utils"

// TweenChannel 可独立动画的变换通道
type TweenChannel int

const (
	// ChannelPositionX 位置 X
	ChannelPositionX TweenChannel = iota
	// ChannelPositionZ 位置 Z
	ChannelPositionZ
	// ChannelRotationY 绕 Y 轴旋转
	ChannelRotationY

	// TweenChannelCount 通道数量
	TweenChannelCount
)

// String 返回通道名称
func (c TweenChannel) String() string {
	switch c {
	case ChannelPositionX:
		return "position.x"
	case ChannelPositionZ:
		return "position.z"
	case ChannelRotationY:
		return "rotation.y"
	default:
		return "unknown"
	}
}

// ChannelTween 单个通道的补间记录
// 新动画直接替换整条记录，From 取替换瞬间的实时值
type ChannelTween struct {
	From     float64
	To       float64
	Elapsed  float64 // 已经过时间（秒）
	Duration float64 // 总时长（秒）
	Easing   utils.EasingFunc
	Active   bool
}

// Progress 返回归一化进度 [0, 1]
func (ct *ChannelTween) Progress() float64 {
	if ct.Duration <= 0 || ct.Elapsed >= ct.Duration {
		return 1
	}
	if ct.Elapsed <= 0 {
		return 0
	}
	return ct.Elapsed / ct.Duration
}

// Value 返回当前插值结果，完成时精确等于 To
func (ct *ChannelTween) Value() float64 {
	p := ct.Progress()
	if p >= 1 {
		return ct.To
	}
	ease := ct.Easing
	if ease == nil {
		ease = utils.EaseOutExpo
	}
	return utils.Lerp(ct.From, ct.To, ease(p))
}

// TweenComponent 卡片的三通道补间状态
type TweenComponent struct {
	Channels [TweenChannelCount]ChannelTween
}

// IsAnimating 是否有任意通道仍在动画中
func (tc *TweenComponent) IsAnimating() bool {
	for i := range tc.Channels {
		if tc.Channels[i].Active {
			return true
		}
	}
	return false
}
