package systems

import (
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/gonewx/coverflow/pkg/components"
	"github.com/gonewx/coverflow/pkg/config"
	"github.com/gonewx/coverflow/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// 调试字体字符尺寸（ebitenutil.DebugPrint）
const (
	debugCharWidth  = 6
	debugCharHeight = 16
)

// placeholderColor 无封面卡片的占位颜色
var placeholderColor = [4]float32{0.32, 0.34, 0.40, 1}

// planeSpec 世界空间中绕 Y 轴旋转的矩形平面
type planeSpec struct {
	CenterX, CenterY, CenterZ float64
	RotationY                 float64
	Width, Height             float64
	Segments                  int
	Src                       image.Rectangle // 贴图采样区域
	FlipY                     bool            // 垂直翻转（倒影）
	Color                     [4]float32      // 顶点颜色（直通 alpha）
}

// cardDrawEntry 待绘制的卡片
type cardDrawEntry struct {
	index     int
	card      *components.CardComponent
	transform *components.TransformComponent
}

// CardRenderSystem 封面卡片渲染系统
//
// 职责：
//   - 通过透视摄像机投影卡片平面，使用 DrawTriangles 按纵向条带绘制
//   - 绘制倒影（垂直翻转、位于卡片下方、半透明）
//   - 由远及近排序绘制（Z 升序，Z 相同时离当前卡片远的先画）
//   - 绘制背景平面和当前卡片标签
//
// 只读取 TransformComponent，不修改任何状态。
type CardRenderSystem struct {
	entityManager *ecs.EntityManager
	cameraSystem  *CameraSystem
	coverFlow     *CoverFlowSystem
	layout        config.CoverFlowLayout
	render        config.RenderConfig

	background  *ebiten.Image
	placeholder *ebiten.Image // 占位平面使用的纯白贴图

	vertices []ebiten.Vertex // 顶点数组（复用，避免每帧分配）
	indices  []uint16        // 索引数组（复用，避免每帧分配）
	entries  []cardDrawEntry
}

// NewCardRenderSystem 创建卡片渲染系统
//
// 参数：
//   - background: 背景图片，可为 nil
func NewCardRenderSystem(em *ecs.EntityManager, cs *CameraSystem, cf *CoverFlowSystem, cfg *config.CoverFlowConfig, background *ebiten.Image) *CardRenderSystem {
	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)

	segments := cfg.Render.Segments
	if segments < 1 {
		segments = 1
	}
	return &CardRenderSystem{
		entityManager: em,
		cameraSystem:  cs,
		coverFlow:     cf,
		layout:        cfg.Layout,
		render:        cfg.Render,
		background:    background,
		placeholder:   white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
		vertices:      make([]ebiten.Vertex, 0, 4*(segments+1)),
		indices:       make([]uint16, 0, 12*segments),
	}
}

// Draw 绘制背景、所有卡片及其倒影、当前卡片标签
func (s *CardRenderSystem) Draw(screen *ebiten.Image) {
	camera := s.cameraSystem.Camera()
	if camera == nil {
		return
	}

	if s.background != nil {
		s.drawBackground(screen, camera)
	}

	s.collectEntries()
	sortForPainting(s.entries, s.coverFlow.CurrentIndex())

	for _, entry := range s.entries {
		s.drawCard(screen, camera, entry)
	}

	if s.render.ShowLabel {
		s.drawLabel(screen, camera)
	}
}

// drawBackground 绘制背景平面
func (s *CardRenderSystem) drawBackground(screen *ebiten.Image, camera *components.CameraComponent) {
	s.vertices, s.indices = s.vertices[:0], s.indices[:0]
	var ok bool
	s.vertices, s.indices, ok = appendPlaneVertices(s.vertices, s.indices, camera, planeSpec{
		CenterZ:  s.render.BackgroundZ,
		Width:    s.render.BackgroundWidth,
		Height:   s.render.BackgroundHeight,
		Segments: 1,
		Src:      s.background.Bounds(),
		Color:    [4]float32{1, 1, 1, 1},
	})
	if !ok {
		return
	}
	op := &ebiten.DrawTrianglesOptions{}
	op.Filter = ebiten.FilterLinear
	screen.DrawTriangles(s.vertices, s.indices, s.background, op)
}

// collectEntries 收集所有卡片
func (s *CardRenderSystem) collectEntries() {
	s.entries = s.entries[:0]
	for _, entityID := range s.coverFlow.Cards() {
		card, ok := ecs.GetComponent[*components.CardComponent](s.entityManager, entityID)
		if !ok {
			continue
		}
		transform, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, entityID)
		if !ok {
			continue
		}
		s.entries = append(s.entries, cardDrawEntry{index: card.Index, card: card, transform: transform})
	}
}

// drawCard 绘制单张卡片及其倒影
func (s *CardRenderSystem) drawCard(screen *ebiten.Image, camera *components.CameraComponent, entry cardDrawEntry) {
	src := s.placeholder
	tint := placeholderColor
	if entry.card.Image != nil {
		src = entry.card.Image
		tint = [4]float32{1, 1, 1, 1}
	}

	t := entry.transform
	base := planeSpec{
		CenterX:   t.X,
		CenterY:   t.Y,
		CenterZ:   t.Z,
		RotationY: t.RotationY,
		Width:     s.layout.PlaneWidth,
		Height:    s.layout.PlaneHeight,
		Segments:  s.render.Segments,
		Src:       src.Bounds(),
	}

	s.vertices, s.indices = s.vertices[:0], s.indices[:0]

	// 倒影：位于卡片下方 PlaneHeight + gap 处，垂直翻转
	if s.render.ReflectionOpacity > 0 {
		reflection := base
		reflection.CenterY = t.Y - (s.layout.PlaneHeight + s.render.ReflectionGap)
		reflection.FlipY = true
		reflection.Color = tint
		reflection.Color[3] *= float32(s.render.ReflectionOpacity)
		s.vertices, s.indices, _ = appendPlaneVertices(s.vertices, s.indices, camera, reflection)
	}

	front := base
	front.Color = tint
	s.vertices, s.indices, _ = appendPlaneVertices(s.vertices, s.indices, camera, front)

	if len(s.indices) == 0 {
		return
	}
	op := &ebiten.DrawTrianglesOptions{}
	op.Filter = ebiten.FilterLinear
	op.AntiAlias = true
	screen.DrawTriangles(s.vertices, s.indices, src, op)
}

// drawLabel 在当前卡片上方绘制标签
func (s *CardRenderSystem) drawLabel(screen *ebiten.Image, camera *components.CameraComponent) {
	entityID, ok := s.coverFlow.CardAt(s.coverFlow.CurrentIndex())
	if !ok {
		return
	}
	card, ok := ecs.GetComponent[*components.CardComponent](s.entityManager, entityID)
	if !ok {
		return
	}
	label := card.Label()
	if label == "" {
		return
	}

	_, top, ok := camera.Project(0, s.layout.PlaneHeight/2, 0)
	if !ok {
		return
	}
	x := int(camera.ViewportWidth/2) - len(label)*debugCharWidth/2
	y := int(top) - 2*debugCharHeight
	ebitenutil.DebugPrintAt(screen, label, x, y)
}

// sortForPainting 按画家算法排序：Z 升序（远处先画），
// Z 相同时离当前卡片远的先画，最后按索引保证稳定
func sortForPainting(entries []cardDrawEntry, current int) {
	sort.SliceStable(entries, func(a, b int) bool {
		za, zb := entries[a].transform.Z, entries[b].transform.Z
		if za != zb {
			return za < zb
		}
		da := absInt(entries[a].index - current)
		db := absInt(entries[b].index - current)
		if da != db {
			return da > db
		}
		return entries[a].index < entries[b].index
	})
}

// appendPlaneVertices 将平面投影为 Segments 条纵向条带并追加顶点和索引
//
// 纵向切分让每个三角形覆盖的深度范围更小，减轻仿射贴图的透视失真。
// 任一顶点位于近裁剪面之后时整个平面被丢弃，返回 ok=false 且切片保持不变。
func appendPlaneVertices(vs []ebiten.Vertex, is []uint16, camera *components.CameraComponent, p planeSpec) ([]ebiten.Vertex, []uint16, bool) {
	segments := p.Segments
	if segments < 1 {
		segments = 1
	}

	origVs, origIs := len(vs), len(is)
	base := uint16(len(vs))

	cos, sin := math.Cos(p.RotationY), math.Sin(p.RotationY)
	top := p.CenterY + p.Height/2
	bottom := p.CenterY - p.Height/2

	srcTop, srcBottom := float32(p.Src.Min.Y), float32(p.Src.Max.Y)
	if p.FlipY {
		srcTop, srcBottom = srcBottom, srcTop
	}

	for k := 0; k <= segments; k++ {
		u := float64(k) / float64(segments)
		lx := -p.Width/2 + u*p.Width

		// 绕 Y 轴旋转：x' = x*cos, z' = -x*sin
		wx := p.CenterX + lx*cos
		wz := p.CenterZ - lx*sin

		tx, ty, ok1 := camera.Project(wx, top, wz)
		bx, by, ok2 := camera.Project(wx, bottom, wz)
		if !ok1 || !ok2 {
			return vs[:origVs], is[:origIs], false
		}

		srcX := float32(float64(p.Src.Min.X) + u*float64(p.Src.Dx()))
		vs = append(vs,
			ebiten.Vertex{DstX: float32(tx), DstY: float32(ty), SrcX: srcX, SrcY: srcTop,
				ColorR: p.Color[0], ColorG: p.Color[1], ColorB: p.Color[2], ColorA: p.Color[3]},
			ebiten.Vertex{DstX: float32(bx), DstY: float32(by), SrcX: srcX, SrcY: srcBottom,
				ColorR: p.Color[0], ColorG: p.Color[1], ColorB: p.Color[2], ColorA: p.Color[3]},
		)
	}

	for k := 0; k < segments; k++ {
		t0 := base + uint16(2*k)
		b0 := t0 + 1
		t1 := t0 + 2
		b1 := t0 + 3
		is = append(is, t0, t1, b0, t1, b1, b0)
	}
	return vs, is, true
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
