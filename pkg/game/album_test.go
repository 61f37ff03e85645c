package game

import (
	"os"
	"path/filepath"
	"testing"
)

// TestParseAlbums 测试 JSON / YAML 专辑列表解析
func TestParseAlbums(t *testing.T) {
	tests := []struct {
		name      string
		ext       string
		data      string
		wantCount int
		wantErr   bool
	}{
		{
			name:      "JSON",
			ext:       ".json",
			data:      `[{"title":"Blue Train","artist":"John Coltrane","image_url":"assets/covers/a.png"},{"title":"Kind of Blue","image_url":"https://example.com/b.jpg"}]`,
			wantCount: 2,
		},
		{
			name:      "YAML",
			ext:       ".yaml",
			data:      "- title: Blue Train\n  artist: John Coltrane\n  image_url: assets/covers/a.png\n",
			wantCount: 1,
		},
		{
			name:      "空 JSON 数组",
			ext:       ".json",
			data:      `[]`,
			wantCount: 0,
		},
		{
			name:    "非法 JSON",
			ext:     ".json",
			data:    `{"title":`,
			wantErr: true,
		},
		{
			name:    "不支持的格式",
			ext:     ".csv",
			data:    "title,image_url",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			albums, err := ParseAlbums([]byte(tt.data), tt.ext)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAlbums() error = %v", err)
			}
			if albums == nil {
				t.Fatal("ParseAlbums() should never return a nil slice")
			}
			if len(albums) != tt.wantCount {
				t.Errorf("got %d albums, want %d", len(albums), tt.wantCount)
			}
		})
	}
}

// TestParseAlbums_Fields 测试字段映射（image_url 与原版 albums.json 一致）
func TestParseAlbums_Fields(t *testing.T) {
	albums, err := ParseAlbums([]byte(`[{"title":"T","artist":"A","image_url":"u.png"}]`), ".json")
	if err != nil {
		t.Fatal(err)
	}
	got := albums[0]
	if got.Title != "T" || got.Artist != "A" || got.ImageURL != "u.png" {
		t.Errorf("unexpected album %+v", got)
	}
}

// TestLoadAlbums_FromDisk 测试从磁盘加载
func TestLoadAlbums_FromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "albums.yml")
	if err := os.WriteFile(path, []byte("- title: One\n  image_url: one.png\n- title: Two\n  image_url: two.png\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	albums, err := LoadAlbums(path)
	if err != nil {
		t.Fatalf("LoadAlbums() error = %v", err)
	}
	if len(albums) != 2 || albums[1].Title != "Two" {
		t.Errorf("unexpected albums %+v", albums)
	}
}

// TestLoadAlbums_Missing 测试文件不存在时返回错误
func TestLoadAlbums_Missing(t *testing.T) {
	if _, err := LoadAlbums(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing album list")
	}
}

// TestLoadAlbums_Shipped 测试随程序发布的专辑列表
func TestLoadAlbums_Shipped(t *testing.T) {
	albums, err := LoadAlbums(filepath.Join("..", "..", "data", "albums.json"))
	if err != nil {
		t.Fatalf("LoadAlbums() error = %v", err)
	}
	if len(albums) == 0 {
		t.Fatal("shipped album list is empty")
	}
	for i, a := range albums {
		if a.Title == "" || a.ImageURL == "" {
			t.Errorf("album %d incomplete: %+v", i, a)
		}
		if _, err := os.Stat(filepath.Join("..", "..", a.ImageURL)); err != nil {
			t.Errorf("album %d cover missing: %v", i, err)
		}
	}
}
