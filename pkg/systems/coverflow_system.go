package systems

import (
	"log"

	"github.com/gonewx/coverflow/pkg/components"
	"github.com/gonewx/coverflow/pkg/config"
	"github.com/gonewx/coverflow/pkg/ecs"
	"github.com/gonewx/coverflow/pkg/game"
)

// CoverFlowSystem 封面流选择系统
//
// 持有轮播会话实体（CarouselComponent），负责：
//   - 按专辑列表创建卡片实体（数量在会话内固定）
//   - 将归一化选择值映射为卡片索引（先限制到 [0,1] 再取整）
//   - 重复选择当前索引时直接返回（不重启动画）
//   - 索引变化时计算所有卡片的目标布局并交给 TweenSystem
type CoverFlowSystem struct {
	entityManager  *ecs.EntityManager
	tweenSystem    *TweenSystem
	layout         config.CoverFlowLayout
	carouselEntity ecs.EntityID
}

// NewCoverFlowSystem 创建封面流选择系统并生成卡片实体
//
// 卡片初始变换为原点（与原版一致），当前索引为 0，
// 调用 Start() 后才会移动到初始居中位置。
func NewCoverFlowSystem(em *ecs.EntityManager, ts *TweenSystem, layout config.CoverFlowLayout, albums []game.Album) *CoverFlowSystem {
	s := &CoverFlowSystem{
		entityManager: em,
		tweenSystem:   ts,
		layout:        layout,
	}

	cards := make([]ecs.EntityID, 0, len(albums))
	for i, album := range albums {
		id := em.CreateEntity()
		ecs.AddComponent(em, id, &components.CardComponent{
			Index:    i,
			Title:    album.Title,
			Artist:   album.Artist,
			ImageRef: album.ImageURL,
		})
		ecs.AddComponent(em, id, &components.TransformComponent{})
		ecs.AddComponent(em, id, &components.TweenComponent{})
		cards = append(cards, id)
	}

	s.carouselEntity = em.CreateEntity()
	ecs.AddComponent(em, s.carouselEntity, &components.CarouselComponent{
		CurrentIndex: 0,
		Cards:        cards,
	})

	log.Printf("[CoverFlowSystem] Created %d cards", len(cards))
	return s
}

// Start 移动到初始居中卡片（索引 N/2 向下取整）
func (s *CoverFlowSystem) Start() {
	s.MoveTo(s.CardCount() / 2)
}

// carousel 返回会话组件
func (s *CoverFlowSystem) carousel() *components.CarouselComponent {
	carousel, ok := ecs.GetComponent[*components.CarouselComponent](s.entityManager, s.carouselEntity)
	if !ok {
		return nil
	}
	return carousel
}

// CardCount 返回卡片数量
func (s *CoverFlowSystem) CardCount() int {
	if c := s.carousel(); c != nil {
		return len(c.Cards)
	}
	return 0
}

// CurrentIndex 返回当前居中的卡片索引
func (s *CoverFlowSystem) CurrentIndex() int {
	if c := s.carousel(); c != nil {
		return c.CurrentIndex
	}
	return 0
}

// Transitions 返回已触发的布局切换次数
func (s *CoverFlowSystem) Transitions() int {
	if c := s.carousel(); c != nil {
		return c.Transitions
	}
	return 0
}

// Cards 返回按索引排列的卡片实体
func (s *CoverFlowSystem) Cards() []ecs.EntityID {
	if c := s.carousel(); c != nil {
		return c.Cards
	}
	return nil
}

// CardAt 返回指定索引的卡片实体
func (s *CoverFlowSystem) CardAt(index int) (ecs.EntityID, bool) {
	cards := s.Cards()
	if index < 0 || index >= len(cards) {
		return 0, false
	}
	return cards[index], true
}

// Layout 返回布局参数
func (s *CoverFlowSystem) Layout() config.CoverFlowLayout {
	return s.layout
}

// SelectValue 按归一化选择值切换卡片
// value 超出 [0,1] 时会先被限制，返回是否触发了新的过渡
func (s *CoverFlowSystem) SelectValue(value float64) bool {
	count := s.CardCount()
	if count == 0 {
		return false
	}
	return s.MoveTo(config.SelectionValueToIndex(value, count))
}

// MoveTo 将 targetIndex 对应的卡片移动到中心
//
// 返回：
//   - true: 索引发生变化，已为所有卡片启动过渡
//   - false: 没有卡片，或目标与当前索引相同（不做任何事）
func (s *CoverFlowSystem) MoveTo(targetIndex int) bool {
	carousel := s.carousel()
	if carousel == nil || len(carousel.Cards) == 0 {
		return false
	}

	targetIndex = config.ClampIndex(targetIndex, len(carousel.Cards))
	if targetIndex == carousel.CurrentIndex {
		return false
	}

	placements := config.CalculateCardPlacements(len(carousel.Cards), targetIndex, s.layout)
	for i, entityID := range carousel.Cards {
		p := placements[i]
		s.tweenSystem.AnimateTo(entityID, CardTarget{
			X:         p.X,
			Z:         config.DepthToWorldZ(p.Depth),
			RotationY: p.RotationY,
		})
	}

	log.Printf("[CoverFlowSystem] Move %d -> %d", carousel.CurrentIndex, targetIndex)
	carousel.CurrentIndex = targetIndex
	carousel.Transitions++
	return true
}

// Step 相对当前索引移动 delta 张卡片
func (s *CoverFlowSystem) Step(delta int) bool {
	return s.MoveTo(s.CurrentIndex() + delta)
}

// SelectionValue 返回当前索引对应的归一化选择值
func (s *CoverFlowSystem) SelectionValue() float64 {
	return config.IndexToSelectionValue(s.CurrentIndex(), s.CardCount())
}
