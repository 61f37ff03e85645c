package config

import "math"

// 封面流布局配置
// 本文件定义卡片平面尺寸、间距、侧向偏移和旋转角度，
// 以及根据选中索引计算每张卡片目标变换的纯函数。

// 默认布局常量（与原版封面流效果保持一致）
const (
	// DefaultPlaneWidth 卡片平面宽度
	DefaultPlaneWidth = 256.0

	// DefaultPlaneHeight 卡片平面高度
	DefaultPlaneHeight = 256.0

	// DefaultSpacingX 相邻卡片在 X 轴上的基础间距
	DefaultSpacingX = 80.0

	// DefaultLateralOffsetRatio 非中心卡片的侧向偏移（相对平面宽度的比例）
	// 256 * 0.6 = 153.6
	DefaultLateralOffsetRatio = 0.6

	// DefaultDepthOffsetRatio 非中心卡片的纵深偏移（相对平面宽度的比例）
	// 256 * 1.0 = 256
	DefaultDepthOffsetRatio = 1.0

	// DefaultRotationDegrees 非中心卡片绕 Y 轴的旋转角度（度）
	DefaultRotationDegrees = 45.0
)

// CardGroup 卡片相对于选中卡片的分组
type CardGroup int

const (
	// CardGroupLeft 位于选中卡片左侧（i < idx）
	CardGroupLeft CardGroup = iota
	// CardGroupCenter 选中卡片本身（i == idx）
	CardGroupCenter
	// CardGroupRight 位于选中卡片右侧（i > idx）
	CardGroupRight
)

// String 返回分组名称（用于日志和调试输出）
func (g CardGroup) String() string {
	switch g {
	case CardGroupLeft:
		return "left"
	case CardGroupCenter:
		return "center"
	case CardGroupRight:
		return "right"
	default:
		return "unknown"
	}
}

// CoverFlowLayout 封面流布局参数
type CoverFlowLayout struct {
	PlaneWidth         float64 `yaml:"planeWidth"`
	PlaneHeight        float64 `yaml:"planeHeight"`
	SpacingX           float64 `yaml:"spacingX"`
	LateralOffsetRatio float64 `yaml:"lateralOffsetRatio"`
	DepthOffsetRatio   float64 `yaml:"depthOffsetRatio"`
	RotationDegrees    float64 `yaml:"rotationDegrees"`
}

// DefaultCoverFlowLayout 返回默认布局参数
func DefaultCoverFlowLayout() CoverFlowLayout {
	return CoverFlowLayout{
		PlaneWidth:         DefaultPlaneWidth,
		PlaneHeight:        DefaultPlaneHeight,
		SpacingX:           DefaultSpacingX,
		LateralOffsetRatio: DefaultLateralOffsetRatio,
		DepthOffsetRatio:   DefaultDepthOffsetRatio,
		RotationDegrees:    DefaultRotationDegrees,
	}
}

// LateralOffset 返回非中心卡片的侧向偏移量（像素）
func (l CoverFlowLayout) LateralOffset() float64 {
	return l.PlaneWidth * l.LateralOffsetRatio
}

// DepthOffset 返回非中心卡片的纵深偏移量（正值，表示远离观察者的距离）
func (l CoverFlowLayout) DepthOffset() float64 {
	return l.PlaneWidth * l.DepthOffsetRatio
}

// RotationRadians 返回非中心卡片旋转角度（弧度）
func (l CoverFlowLayout) RotationRadians() float64 {
	return l.RotationDegrees * math.Pi / 180
}

// CardPlacement 单张卡片的目标布局
type CardPlacement struct {
	X         float64   // 水平位置
	Depth     float64   // 纵深距离（正值 = 远离观察者），转换为世界坐标见 DepthToWorldZ
	RotationY float64   // 绕 Y 轴旋转（弧度），左侧为正，右侧为负
	Group     CardGroup // 所属分组
}

// ClassifyCard 判断卡片 i 相对于选中索引 idx 的分组
// 严格比较，每个索引只属于一个分组
func ClassifyCard(i, idx int) CardGroup {
	switch {
	case i < idx:
		return CardGroupLeft
	case i > idx:
		return CardGroupRight
	default:
		return CardGroupCenter
	}
}

// ClampIndex 将索引限制在 [0, count) 范围内
// count <= 0 时返回 0
func ClampIndex(idx, count int) int {
	if count <= 0 || idx < 0 {
		return 0
	}
	if idx >= count {
		return count - 1
	}
	return idx
}

// DepthToWorldZ 将布局纵深转换为世界坐标 Z
// 摄像机位于 +Z 方向看向原点，远离观察者即 Z 减小
func DepthToWorldZ(depth float64) float64 {
	return -depth
}

// CalculateCardPlacements 计算选中 targetIndex 时所有卡片的目标布局
//
// 参数：
//   - count: 卡片数量
//   - targetIndex: 选中卡片索引（超出范围时会被限制到 [0, count)）
//   - layout: 布局参数
//
// 返回：
//   - []CardPlacement: 长度为 count 的目标布局，count <= 0 时返回空切片
func CalculateCardPlacements(count, targetIndex int, layout CoverFlowLayout) []CardPlacement {
	if count <= 0 {
		return []CardPlacement{}
	}

	idx := ClampIndex(targetIndex, count)
	lateral := layout.LateralOffset()
	depth := layout.DepthOffset()
	rotation := layout.RotationRadians()

	placements := make([]CardPlacement, count)
	for i := 0; i < count; i++ {
		group := ClassifyCard(i, idx)
		p := CardPlacement{
			X:     layout.SpacingX * float64(i-idx),
			Group: group,
		}

		switch group {
		case CardGroupLeft:
			p.X -= lateral
			p.Depth = depth
			p.RotationY = rotation
		case CardGroupRight:
			p.X += lateral
			p.Depth = depth
			p.RotationY = -rotation
		default:
			// 中心卡片始终精确居中，不使用基础间距公式
			p.X = 0
			p.Depth = 0
			p.RotationY = 0
		}

		placements[i] = p
	}

	return placements
}

// SelectionValueToIndex 将归一化选择值映射为卡片索引
// 先将 value 限制到 [0, 1]，再按 round(value * (count-1)) 取整
func SelectionValueToIndex(value float64, count int) int {
	if count <= 0 {
		return 0
	}
	if math.IsNaN(value) {
		value = 0
	}
	value = ClampUnit(value)
	return ClampIndex(int(math.Round(value*float64(count-1))), count)
}

// IndexToSelectionValue 返回索引对应的归一化选择值（用于同步滑动条）
func IndexToSelectionValue(idx, count int) float64 {
	if count <= 1 {
		return 0
	}
	return float64(ClampIndex(idx, count)) / float64(count-1)
}

// ClampUnit 将值限制在 [0, 1] 范围内
func ClampUnit(v float64) float64 {
	if v < 0.0 {
		return 0.0
	}
	if v > 1.0 {
		return 1.0
	}
	return v
}
