package components

import "github.com/gonewx/coverflow/pkg/ecs"

// CarouselComponent 轮播会话状态（挂在 CoverFlowSystem 持有的单例实体上）
type CarouselComponent struct {
	// CurrentIndex 当前居中的卡片索引
	CurrentIndex int

	// Cards 按索引排列的卡片实体，创建后数量不再变化
	Cards []ecs.EntityID

	// Transitions 已触发的布局切换次数（被去重的重复选择不计入）
	Transitions int
}
