package systems

import (
	"log"

	"github.com/gonewx/coverflow/pkg/components"
	"github.com/gonewx/coverflow/pkg/config"
	"github.com/gonewx/coverflow/pkg/ecs"
	"github.com/gonewx/coverflow/pkg/utils"
)

// CardTarget 卡片的目标变换（世界坐标）
type CardTarget struct {
	X         float64
	Z         float64
	RotationY float64
}

// ChannelTiming 单个通道的时长与缓动
type ChannelTiming struct {
	Duration float64
	Easing   utils.EasingFunc
}

// TweenSystem 过渡动画系统
//
// 职责：
//   - AnimateTo 为卡片的三个通道（位置X、位置Z、旋转Y）启动补间
//   - 同一通道上的新补间直接覆盖旧补间，起点取覆盖瞬间的实时值
//   - Update 每帧推进所有补间并写回 TransformComponent
//
// 位置通道和旋转通道使用独立的时长，旋转大约比平移快一倍收敛。
type TweenSystem struct {
	entityManager *ecs.EntityManager
	timings       [components.TweenChannelCount]ChannelTiming
}

// NewTweenSystem 创建过渡动画系统
//
// 参数：
//   - em: 实体管理器
//   - cfg: 动画配置（时长和缓动名称，需已通过校验）
func NewTweenSystem(em *ecs.EntityManager, cfg config.AnimationConfig) *TweenSystem {
	positionEase, err := utils.EasingByName(cfg.PositionEasing)
	if err != nil {
		log.Printf("[TweenSystem] Warning: %v, falling back to %s", err, utils.EasingExpoOut)
		positionEase = utils.EaseOutExpo
	}
	rotationEase, err := utils.EasingByName(cfg.RotationEasing)
	if err != nil {
		log.Printf("[TweenSystem] Warning: %v, falling back to %s", err, utils.EasingExpoOut)
		rotationEase = utils.EaseOutExpo
	}

	ts := &TweenSystem{entityManager: em}
	ts.timings[components.ChannelPositionX] = ChannelTiming{Duration: cfg.PositionDuration, Easing: positionEase}
	ts.timings[components.ChannelPositionZ] = ChannelTiming{Duration: cfg.PositionDuration, Easing: positionEase}
	ts.timings[components.ChannelRotationY] = ChannelTiming{Duration: cfg.RotationDuration, Easing: rotationEase}
	return ts
}

// Timing 返回指定通道的时长与缓动
func (ts *TweenSystem) Timing(channel components.TweenChannel) ChannelTiming {
	return ts.timings[channel]
}

// AnimateTo 启动卡片向目标变换的过渡
// 不阻塞调用方，实际插值在后续 Update 中推进
func (ts *TweenSystem) AnimateTo(entityID ecs.EntityID, target CardTarget) {
	transform, ok := ecs.GetComponent[*components.TransformComponent](ts.entityManager, entityID)
	if !ok {
		return
	}
	tween, ok := ecs.GetComponent[*components.TweenComponent](ts.entityManager, entityID)
	if !ok {
		tween = &components.TweenComponent{}
		ecs.AddComponent(ts.entityManager, entityID, tween)
	}

	ts.startChannel(tween, transform, components.ChannelPositionX, target.X)
	ts.startChannel(tween, transform, components.ChannelPositionZ, target.Z)
	ts.startChannel(tween, transform, components.ChannelRotationY, target.RotationY)
}

// startChannel 覆盖通道补间记录
func (ts *TweenSystem) startChannel(tween *components.TweenComponent, transform *components.TransformComponent, channel components.TweenChannel, to float64) {
	timing := ts.timings[channel]
	from := channelValue(transform, channel)

	tween.Channels[channel] = components.ChannelTween{
		From:     from,
		To:       to,
		Duration: timing.Duration,
		Easing:   timing.Easing,
		Active:   true,
	}

	// 零时长直接到位
	if timing.Duration <= 0 {
		setChannelValue(transform, channel, to)
		tween.Channels[channel].Active = false
	}
}

// Update 推进所有补间
// 一帧内所有通道先全部计算完毕再返回，渲染系统只会看到完整更新后的变换
func (ts *TweenSystem) Update(deltaTime float64) {
	if deltaTime < 0 {
		return
	}

	entities := ecs.GetEntitiesWith2[*components.TweenComponent, *components.TransformComponent](ts.entityManager)
	for _, entityID := range entities {
		tween, _ := ecs.GetComponent[*components.TweenComponent](ts.entityManager, entityID)
		transform, _ := ecs.GetComponent[*components.TransformComponent](ts.entityManager, entityID)
		if tween == nil || transform == nil {
			continue
		}

		for ch := components.TweenChannel(0); ch < components.TweenChannelCount; ch++ {
			ct := &tween.Channels[ch]
			if !ct.Active {
				continue
			}

			ct.Elapsed += deltaTime
			if ct.Elapsed >= ct.Duration {
				// 完成：精确落在目标值，无残余速度
				ct.Elapsed = ct.Duration
				ct.Active = false
				setChannelValue(transform, ch, ct.To)
				continue
			}
			setChannelValue(transform, ch, ct.Value())
		}
	}
}

// IsAnimating 返回卡片是否有通道仍在动画中
func (ts *TweenSystem) IsAnimating(entityID ecs.EntityID) bool {
	tween, ok := ecs.GetComponent[*components.TweenComponent](ts.entityManager, entityID)
	if !ok {
		return false
	}
	return tween.IsAnimating()
}

// AnyAnimating 返回是否存在仍在动画中的卡片
func (ts *TweenSystem) AnyAnimating() bool {
	for _, entityID := range ecs.GetEntitiesWith1[*components.TweenComponent](ts.entityManager) {
		if ts.IsAnimating(entityID) {
			return true
		}
	}
	return false
}

func channelValue(t *components.TransformComponent, channel components.TweenChannel) float64 {
	switch channel {
	case components.ChannelPositionX:
		return t.X
	case components.ChannelPositionZ:
		return t.Z
	case components.ChannelRotationY:
		return t.RotationY
	}
	return 0
}

func setChannelValue(t *components.TransformComponent, channel components.TweenChannel, v float64) {
	switch channel {
	case components.ChannelPositionX:
		t.X = v
	case components.ChannelPositionZ:
		t.Z = v
	case components.ChannelRotationY:
		t.RotationY = v
	}
}
