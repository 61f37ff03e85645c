package utils

import (
	"fmt"
	"math"
)

// Easing Functions (缓动函数)
//
// 卡片过渡只使用"缓出"类曲线：开始变化快，随后平滑减速到目标，
// 全程单调且不超过目标值（不回弹）。
// 所有函数接受一个进度值 t ∈ [0, 1]，返回缓动后的值 ∈ [0, 1]。
//
// 参考：https://easings.net/

// EasingFunc 缓动函数类型
type EasingFunc func(t float64) float64

// 缓动函数名称（用于配置文件）
const (
	EasingExpoOut  = "expoOut"
	EasingCubicOut = "cubicOut"
	EasingQuadOut  = "quadOut"
)

var easingRegistry = map[string]EasingFunc{
	EasingExpoOut:  EaseOutExpo,
	EasingCubicOut: EaseOutCubic,
	EasingQuadOut:  EaseOutQuad,
}

// EasingByName 根据名称查找缓动函数
// 未注册的名称（包括 linear 和回弹类曲线）返回错误
func EasingByName(name string) (EasingFunc, error) {
	if fn, ok := easingRegistry[name]; ok {
		return fn, nil
	}
	return nil, fmt.Errorf("unsupported easing %q (want one of %s, %s, %s)",
		name, EasingExpoOut, EasingCubicOut, EasingQuadOut)
}

// EaseOutExpo 指数缓出
// 特点：开始非常快，结束非常慢
// 公式：f(t) = 1 - 2^(-10t)，t >= 1 时精确返回 1
func EaseOutExpo(t float64) float64 {
	if t >= 1.0 {
		return 1.0
	}
	if t <= 0 {
		return 0
	}
	return 1 - math.Pow(2, -10*t)
}

// EaseOutCubic 三次方缓出
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	t = clamp01(t)
	return 1 - math.Pow(1-t, 3)
}

// EaseOutQuad 二次方缓出
// 公式：f(t) = 1 - (1-t)²
func EaseOutQuad(t float64) float64 {
	t = clamp01(t)
	return 1 - (1-t)*(1-t)
}

// Lerp 线性插值
// 在 a 和 b 之间根据 t 插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
