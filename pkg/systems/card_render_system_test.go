package systems

import (
	"image"
	"math"
	"testing"

	"github.com/gonewx/coverflow/pkg/components"
	"github.com/hajimehoshi/ebiten/v2"
)

func testRenderCamera() *components.CameraComponent {
	return &components.CameraComponent{
		PositionZ:      900,
		FOVDegrees:     30,
		ViewportWidth:  1280,
		ViewportHeight: 720,
		Near:           DefaultCameraNear,
	}
}

// TestAppendPlaneVertices_Counts 测试条带的顶点和索引数量
func TestAppendPlaneVertices_Counts(t *testing.T) {
	camera := testRenderCamera()

	for _, segments := range []int{1, 4, 8} {
		vs, is, ok := appendPlaneVertices(nil, nil, camera, planeSpec{
			Width: 256, Height: 256, Segments: segments,
			Src: image.Rect(0, 0, 256, 256), Color: [4]float32{1, 1, 1, 1},
		})
		if !ok {
			t.Fatalf("segments %d: plane should be visible", segments)
		}
		if len(vs) != 2*(segments+1) {
			t.Errorf("segments %d: %d vertices, want %d", segments, len(vs), 2*(segments+1))
		}
		if len(is) != 6*segments {
			t.Errorf("segments %d: %d indices, want %d", segments, len(is), 6*segments)
		}
		for _, idx := range is {
			if int(idx) >= len(vs) {
				t.Fatalf("segments %d: index %d out of range", segments, idx)
			}
		}
	}
}

// TestAppendPlaneVertices_CenteredPlane 测试正对摄像机的平面在屏幕上对称
func TestAppendPlaneVertices_CenteredPlane(t *testing.T) {
	camera := testRenderCamera()
	vs, _, _ := appendPlaneVertices(nil, nil, camera, planeSpec{
		Width: 256, Height: 256, Segments: 1,
		Src: image.Rect(0, 0, 100, 50),
	})

	// 顶点顺序：左上、左下、右上、右下
	leftTop, leftBottom, rightTop, rightBottom := vs[0], vs[1], vs[2], vs[3]

	if math.Abs(float64(leftTop.DstX+rightTop.DstX)/2-640) > 1e-3 {
		t.Errorf("plane not horizontally centered: %v %v", leftTop.DstX, rightTop.DstX)
	}
	if math.Abs(float64(leftTop.DstY+leftBottom.DstY)/2-360) > 1e-3 {
		t.Errorf("plane not vertically centered: %v %v", leftTop.DstY, leftBottom.DstY)
	}
	if leftTop.DstY >= leftBottom.DstY {
		t.Error("top edge should be above bottom edge on screen")
	}
	if leftTop.SrcX != 0 || rightBottom.SrcX != 100 || leftTop.SrcY != 0 || rightBottom.SrcY != 50 {
		t.Errorf("unexpected source coordinates: %+v %+v", leftTop, rightBottom)
	}
}

// TestAppendPlaneVertices_Reflection 测试倒影翻转贴图并保留透明度
func TestAppendPlaneVertices_Reflection(t *testing.T) {
	camera := testRenderCamera()
	vs, _, _ := appendPlaneVertices(nil, nil, camera, planeSpec{
		CenterY: -257, Width: 256, Height: 256, Segments: 2,
		Src: image.Rect(0, 0, 64, 64), FlipY: true,
		Color: [4]float32{1, 1, 1, 0.2},
	})

	top, bottom := vs[0], vs[1]
	if top.SrcY != 64 || bottom.SrcY != 0 {
		t.Errorf("reflection source Y = %v/%v, want 64/0", top.SrcY, bottom.SrcY)
	}
	if top.ColorA != 0.2 {
		t.Errorf("ColorA = %v, want 0.2", top.ColorA)
	}
	if top.DstY <= 360 {
		t.Errorf("reflection top edge at %v should be below screen center", top.DstY)
	}
}

// TestAppendPlaneVertices_RotatedPlane 测试旋转后左侧卡片的内侧边远离摄像机
func TestAppendPlaneVertices_RotatedPlane(t *testing.T) {
	camera := testRenderCamera()
	vs, _, _ := appendPlaneVertices(nil, nil, camera, planeSpec{
		CenterX: -233.6, CenterZ: -256, RotationY: math.Pi / 4,
		Width: 256, Height: 256, Segments: 1,
		Src: image.Rect(0, 0, 256, 256),
	})

	leftHeight := vs[1].DstY - vs[0].DstY
	rightHeight := vs[3].DstY - vs[2].DstY
	// rotation.y > 0 时 +X 边的 z 减小，投影高度更小
	if rightHeight >= leftHeight {
		t.Errorf("right edge height %v should be smaller than left edge %v", rightHeight, leftHeight)
	}
}

// TestAppendPlaneVertices_BehindCamera 测试位于摄像机后方的平面被丢弃
func TestAppendPlaneVertices_BehindCamera(t *testing.T) {
	camera := testRenderCamera()
	existing := []ebiten.Vertex{{DstX: 1}}
	existingIdx := []uint16{0}

	vs, is, ok := appendPlaneVertices(existing, existingIdx, camera, planeSpec{
		CenterZ: 950, Width: 256, Height: 256, Segments: 4,
	})
	if ok {
		t.Error("plane behind the camera should not be visible")
	}
	if len(vs) != 1 || len(is) != 1 {
		t.Errorf("slices modified: %d vertices, %d indices", len(vs), len(is))
	}
}

// TestSortForPainting 测试由远及近的绘制顺序
func TestSortForPainting(t *testing.T) {
	entry := func(index int, z float64) cardDrawEntry {
		return cardDrawEntry{index: index, transform: &components.TransformComponent{Z: z}}
	}

	// 当前索引 2，两侧卡片 Z 相同
	entries := []cardDrawEntry{
		entry(2, 0),
		entry(1, -256),
		entry(3, -256),
		entry(0, -256),
		entry(4, -256),
	}
	sortForPainting(entries, 2)

	want := []int{0, 4, 1, 3, 2}
	for i, idx := range want {
		if entries[i].index != idx {
			got := make([]int, len(entries))
			for j, e := range entries {
				got[j] = e.index
			}
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

// TestSortForPainting_MidTransition 测试动画过程中按实时 Z 排序
func TestSortForPainting_MidTransition(t *testing.T) {
	entries := []cardDrawEntry{
		{index: 0, transform: &components.TransformComponent{Z: -40}},
		{index: 1, transform: &components.TransformComponent{Z: -200}},
	}
	sortForPainting(entries, 0)
	if entries[0].index != 1 {
		t.Errorf("farther card should be painted first, got %d", entries[0].index)
	}
}
