package game

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
)

// writeTestPNG 在临时目录写入一张纯色 PNG
func writeTestPNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, encodeTestPNG(t, w, h), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func encodeTestPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 80, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

// TestScaleToFit 测试封面缩放（保持宽高比，只缩小不放大）
func TestScaleToFit(t *testing.T) {
	tests := []struct {
		name       string
		w, h       int
		maxW, maxH int
		wantW      int
		wantH      int
	}{
		{"已在范围内", 200, 100, 256, 256, 200, 100},
		{"正方形缩小", 1024, 1024, 256, 256, 256, 256},
		{"宽图受宽度限制", 1000, 500, 256, 256, 256, 128},
		{"高图受高度限制", 500, 1000, 256, 256, 128, 256},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := image.NewRGBA(image.Rect(0, 0, tt.w, tt.h))
			got := ScaleToFit(src, tt.maxW, tt.maxH)
			b := got.Bounds()
			if b.Dx() != tt.wantW || b.Dy() != tt.wantH {
				t.Errorf("ScaleToFit(%dx%d) = %dx%d, want %dx%d", tt.w, tt.h, b.Dx(), b.Dy(), tt.wantW, tt.wantH)
			}
		})
	}
}

// TestDecodeCovers_PartialFailure 测试单个封面失败不影响其他封面
func TestDecodeCovers_PartialFailure(t *testing.T) {
	dir := t.TempDir()
	okPath := writeTestPNG(t, dir, "ok.png", 512, 512)
	badPath := filepath.Join(dir, "bad.png")
	if err := os.WriteFile(badPath, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}

	albums := []Album{
		{Title: "ok", ImageURL: okPath},
		{Title: "missing", ImageURL: filepath.Join(dir, "missing.png")},
		{Title: "corrupt", ImageURL: badPath},
		{Title: "no ref"},
	}

	rm := NewResourceManager(0)
	var progressCalls int32
	results := rm.DecodeCovers(context.Background(), albums, 256, 256, 2, func(done, total int) {
		atomic.AddInt32(&progressCalls, 1)
		if total != len(albums) {
			t.Errorf("progress total = %d, want %d", total, len(albums))
		}
	})

	if len(results) != len(albums) {
		t.Fatalf("got %d results, want %d", len(results), len(albums))
	}
	if got := atomic.LoadInt32(&progressCalls); got != int32(len(albums)) {
		t.Errorf("progress called %d times, want %d", got, len(albums))
	}

	if results[0].Err != nil || results[0].Image == nil {
		t.Fatalf("cover 0 should decode, got err %v", results[0].Err)
	}
	if b := results[0].Image.Bounds(); b.Dx() != 256 || b.Dy() != 256 {
		t.Errorf("cover 0 should be scaled to 256x256, got %dx%d", b.Dx(), b.Dy())
	}
	for i := 1; i < len(results); i++ {
		if results[i].Err == nil {
			t.Errorf("cover %d should fail", i)
		}
		if results[i].Index != i {
			t.Errorf("result %d has index %d", i, results[i].Index)
		}
	}
}

// TestDecodeCovers_HTTP 测试远程封面下载
func TestDecodeCovers_HTTP(t *testing.T) {
	payload := encodeTestPNG(t, 64, 32)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cover.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(payload)
	}))
	defer server.Close()

	albums := []Album{
		{Title: "remote", ImageURL: server.URL + "/cover.png"},
		{Title: "404", ImageURL: server.URL + "/nope.png"},
	}

	rm := NewResourceManager(0)
	results := rm.DecodeCovers(context.Background(), albums, 256, 256, 4, nil)

	if results[0].Err != nil {
		t.Fatalf("remote cover should load: %v", results[0].Err)
	}
	if b := results[0].Image.Bounds(); b.Dx() != 64 || b.Dy() != 32 {
		t.Errorf("small cover should not be rescaled, got %dx%d", b.Dx(), b.Dy())
	}
	if results[1].Err == nil {
		t.Error("404 cover should report an error")
	}
}

// TestDecodeCovers_Empty 测试空列表
func TestDecodeCovers_Empty(t *testing.T) {
	rm := NewResourceManager(0)
	results := rm.DecodeCovers(context.Background(), nil, 256, 256, 4, nil)
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

// TestGetImage_NotLoaded 测试未加载的图片返回 nil
func TestGetImage_NotLoaded(t *testing.T) {
	rm := NewResourceManager(0)
	if rm.GetImage("assets/covers/none.png") != nil {
		t.Error("GetImage should return nil before loading")
	}
}
