package systems

import (
	"fmt"
	"math"
	"testing"

	"github.com/gonewx/coverflow/pkg/components"
	"github.com/gonewx/coverflow/pkg/config"
	"github.com/gonewx/coverflow/pkg/ecs"
	"github.com/gonewx/coverflow/pkg/game"
)

const layoutEpsilon = 1e-9

// testAlbums 生成 n 个测试专辑
func testAlbums(n int) []game.Album {
	albums := make([]game.Album, n)
	for i := range albums {
		albums[i] = game.Album{
			Title:    fmt.Sprintf("Album %d", i),
			Artist:   "Artist",
			ImageURL: fmt.Sprintf("assets/covers/%d.png", i),
		}
	}
	return albums
}

// newTestCoverFlow 创建 n 张卡片的封面流
func newTestCoverFlow(n int) (*ecs.EntityManager, *TweenSystem, *CoverFlowSystem) {
	em := ecs.NewEntityManager()
	ts := NewTweenSystem(em, defaultAnimationConfig())
	cf := NewCoverFlowSystem(em, ts, config.DefaultCoverFlowLayout(), testAlbums(n))
	return em, ts, cf
}

// settle 推进足够长的时间让所有动画结束
func settle(ts *TweenSystem) {
	for i := 0; i < 200; i++ {
		ts.Update(1.0 / 60.0)
	}
}

func cardTransform(t *testing.T, em *ecs.EntityManager, cf *CoverFlowSystem, index int) *components.TransformComponent {
	t.Helper()
	id, ok := cf.CardAt(index)
	if !ok {
		t.Fatalf("card %d not found", index)
	}
	transform, ok := ecs.GetComponent[*components.TransformComponent](em, id)
	if !ok {
		t.Fatalf("card %d has no transform", index)
	}
	return transform
}

func TestNewCoverFlowSystem_CreatesCards(t *testing.T) {
	em, _, cf := newTestCoverFlow(5)

	if cf.CardCount() != 5 {
		t.Fatalf("CardCount() = %d, want 5", cf.CardCount())
	}
	if cf.CurrentIndex() != 0 {
		t.Errorf("CurrentIndex() = %d, want 0 before Start", cf.CurrentIndex())
	}

	for i := 0; i < 5; i++ {
		id, _ := cf.CardAt(i)
		card, ok := ecs.GetComponent[*components.CardComponent](em, id)
		if !ok {
			t.Fatalf("card %d missing CardComponent", i)
		}
		if card.Index != i || card.Title != fmt.Sprintf("Album %d", i) {
			t.Errorf("card %d = %+v", i, card)
		}
		transform := cardTransform(t, em, cf, i)
		if *transform != (components.TransformComponent{}) {
			t.Errorf("card %d initial transform = %+v, want origin", i, *transform)
		}
	}

	if _, ok := cf.CardAt(5); ok {
		t.Error("CardAt(5) should be out of range")
	}
}

// TestCoverFlowSystem_FiveCardScenario 测试 5 张卡片启动后的最终布局
func TestCoverFlowSystem_FiveCardScenario(t *testing.T) {
	em, ts, cf := newTestCoverFlow(5)

	cf.Start()
	if cf.CurrentIndex() != 2 {
		t.Fatalf("CurrentIndex() = %d, want 2", cf.CurrentIndex())
	}
	settle(ts)

	quarter := math.Pi / 4
	expected := []components.TransformComponent{
		{X: -313.6, Z: -256, RotationY: quarter},
		{X: -233.6, Z: -256, RotationY: quarter},
		{X: 0, Z: 0, RotationY: 0},
		{X: 233.6, Z: -256, RotationY: -quarter},
		{X: 313.6, Z: -256, RotationY: -quarter},
	}

	for i, want := range expected {
		got := cardTransform(t, em, cf, i)
		if math.Abs(got.X-want.X) > layoutEpsilon ||
			math.Abs(got.Z-want.Z) > layoutEpsilon ||
			math.Abs(got.RotationY-want.RotationY) > layoutEpsilon {
			t.Errorf("card %d = %+v, want %+v", i, *got, want)
		}
	}
}

// TestCoverFlowSystem_SelectValue 测试选择值映射和限制
func TestCoverFlowSystem_SelectValue(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		expected int
	}{
		{"最左", 0.0, 0},
		{"最右", 1.0, 4},
		{"四舍五入向下", 0.37, 1},
		{"四舍五入向上", 0.63, 3},
		{"中点", 0.5, 2},
		{"负值限制", -0.3, 0},
		{"超出限制", 1.7, 4},
		{"NaN", math.NaN(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, cf := newTestCoverFlow(5)
			cf.Start()
			cf.SelectValue(tt.value)
			if cf.CurrentIndex() != tt.expected {
				t.Errorf("CurrentIndex() = %d, want %d", cf.CurrentIndex(), tt.expected)
			}
		})
	}
}

// TestCoverFlowSystem_RepeatedSelectionIsNoop 测试重复选择同一索引不会重启动画
func TestCoverFlowSystem_RepeatedSelectionIsNoop(t *testing.T) {
	em, ts, cf := newTestCoverFlow(5)
	cf.Start()
	ts.Update(0.5)

	id, _ := cf.CardAt(0)
	tween, _ := ecs.GetComponent[*components.TweenComponent](em, id)
	before := tween.Channels

	// 0.55 * 4 = 2.2 -> 2，与当前索引相同
	if cf.SelectValue(0.55) {
		t.Error("SelectValue should report no transition for the current index")
	}
	if cf.MoveTo(2) {
		t.Error("MoveTo(current) should report no transition")
	}
	if cf.Transitions() != 1 {
		t.Errorf("Transitions() = %d, want 1", cf.Transitions())
	}
	for ch := range tween.Channels {
		got, want := tween.Channels[ch], before[ch]
		if got.From != want.From || got.To != want.To || got.Elapsed != want.Elapsed || got.Active != want.Active {
			t.Errorf("channel %d changed by a repeated selection: %+v -> %+v", ch, want, got)
		}
	}
}

// TestCoverFlowSystem_CenterInvariant 测试任意动画结束后选中卡片精确居中
func TestCoverFlowSystem_CenterInvariant(t *testing.T) {
	em, ts, cf := newTestCoverFlow(7)
	cf.Start()

	for _, value := range []float64{0.9, 0.1, 0.45, 1.0} {
		cf.SelectValue(value)
		ts.Update(0.2)
	}
	settle(ts)

	center := cardTransform(t, em, cf, cf.CurrentIndex())
	if center.X != 0 || center.Z != 0 || center.RotationY != 0 {
		t.Errorf("centered card transform = %+v, want origin", *center)
	}
	for i := 0; i < cf.CardCount(); i++ {
		if i == cf.CurrentIndex() {
			continue
		}
		if got := cardTransform(t, em, cf, i); got.Z != -256 {
			t.Errorf("card %d Z = %v, want -256", i, got.Z)
		}
	}
	if cf.CurrentIndex() != 6 {
		t.Errorf("CurrentIndex() = %d, want 6", cf.CurrentIndex())
	}
	if ts.AnyAnimating() {
		t.Error("animations should have settled")
	}
}

func TestCoverFlowSystem_Step(t *testing.T) {
	_, _, cf := newTestCoverFlow(3)
	cf.Start()

	if !cf.Step(1) || cf.CurrentIndex() != 2 {
		t.Fatalf("Step(1) -> %d, want 2", cf.CurrentIndex())
	}
	if cf.Step(1) {
		t.Error("Step past the last card should be a no-op")
	}
	if cf.SelectionValue() != 1.0 {
		t.Errorf("SelectionValue() = %v, want 1.0", cf.SelectionValue())
	}
	cf.Step(-5)
	if cf.CurrentIndex() != 0 || cf.SelectionValue() != 0 {
		t.Errorf("Step(-5) -> index %d value %v, want 0/0", cf.CurrentIndex(), cf.SelectionValue())
	}
}

// TestCoverFlowSystem_EmptyList 测试没有卡片时所有操作都是空操作
func TestCoverFlowSystem_EmptyList(t *testing.T) {
	_, ts, cf := newTestCoverFlow(0)
	cf.Start()

	if cf.SelectValue(0.5) || cf.MoveTo(3) || cf.Step(1) {
		t.Error("operations on an empty carousel must not trigger transitions")
	}
	if cf.CurrentIndex() != 0 || cf.CardCount() != 0 || cf.Transitions() != 0 {
		t.Errorf("state = index %d count %d transitions %d", cf.CurrentIndex(), cf.CardCount(), cf.Transitions())
	}
	ts.Update(1.0)
}

// TestCoverFlowSystem_SingleCard 测试只有一张卡片时始终居中
func TestCoverFlowSystem_SingleCard(t *testing.T) {
	em, ts, cf := newTestCoverFlow(1)
	cf.Start()

	for _, v := range []float64{0, 0.5, 1, -2, 3} {
		if cf.SelectValue(v) {
			t.Errorf("SelectValue(%v) should be a no-op with a single card", v)
		}
	}
	settle(ts)

	got := cardTransform(t, em, cf, 0)
	if *got != (components.TransformComponent{}) {
		t.Errorf("single card transform = %+v, want origin", *got)
	}
	if cf.SelectionValue() != 0 {
		t.Errorf("SelectionValue() = %v, want 0", cf.SelectionValue())
	}
}
