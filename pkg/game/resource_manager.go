package game

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gonewx/coverflow/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP decoder
	"golang.org/x/sync/errgroup"
)

// ResourceManager is responsible for centralized management of cover images.
// It provides loading and caching mechanisms so that each image reference is
// decoded only once and reused by every card that points at it.
//
// Image references may be:
//   - embedded paths ("assets/covers/a.png"), served from pkg/embedded
//   - local file paths
//   - http(s) URLs
//
// Thread Safety Note:
// The image cache is a plain map and is only touched from the game goroutine.
// DecodeCovers runs decoding on worker goroutines but never writes the cache;
// the caller converts the results with AdoptCovers on the game goroutine.
type ResourceManager struct {
	imageCache map[string]*ebiten.Image // Cache for loaded images: reference -> Image
	httpClient *http.Client
	userAgent  string
}

// CoverResult is the decoded (not yet uploaded) cover of one card.
type CoverResult struct {
	Index int
	Ref   string
	Image image.Image // nil when Err is set or Ref is empty
	Err   error
}

// NewResourceManager creates and initializes a new ResourceManager instance.
//
// Parameters:
//   - timeout: HTTP timeout for remote covers (0 means 30 seconds).
func NewResourceManager(timeout time.Duration) *ResourceManager {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ResourceManager{
		imageCache: make(map[string]*ebiten.Image),
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  "CoverFlow",
	}
}

// LoadImage loads an image by reference and caches it for future use.
// If the image has already been loaded, it returns the cached version.
//
// Returns an error if the source cannot be opened or decoded.
// Does not panic - all errors are returned to the caller for handling.
func (rm *ResourceManager) LoadImage(ref string) (*ebiten.Image, error) {
	if cachedImage, exists := rm.imageCache[ref]; exists {
		return cachedImage, nil
	}

	img, err := rm.decodeImage(context.Background(), ref, 0, 0)
	if err != nil {
		return nil, err
	}

	ebitenImg := ebiten.NewImageFromImage(img)
	rm.imageCache[ref] = ebitenImg
	return ebitenImg, nil
}

// GetImage retrieves a previously loaded image from the cache.
// If the image has not been loaded yet, it returns nil.
func (rm *ResourceManager) GetImage(ref string) *ebiten.Image {
	return rm.imageCache[ref]
}

// DecodeCovers decodes the cover of every album concurrently.
//
// At most maxConcurrent covers are fetched at the same time. A failing cover
// does not stop the others: its error is stored in the matching CoverResult
// and logged. Results are indexed like albums. onProgress, if set, is called
// from worker goroutines with the number of finished covers.
//
// Covers larger than maxWidth x maxHeight are scaled down (aspect preserved).
func (rm *ResourceManager) DecodeCovers(ctx context.Context, albums []Album, maxWidth, maxHeight, maxConcurrent int, onProgress func(done, total int)) []CoverResult {
	results := make([]CoverResult, len(albums))
	if len(albums) == 0 {
		return results
	}
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}

	var done int32
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrent)

	for i, album := range albums {
		i, ref := i, album.ImageURL
		g.Go(func() error {
			res := CoverResult{Index: i, Ref: ref}
			if ref == "" {
				res.Err = fmt.Errorf("album %d (%s) has no image reference", i, album.Title)
			} else {
				res.Image, res.Err = rm.decodeImage(ctx, ref, maxWidth, maxHeight)
			}
			if res.Err != nil {
				log.Printf("[ResourceManager] Cover %d unavailable: %v", i, res.Err)
			}
			results[i] = res

			if onProgress != nil {
				onProgress(int(atomic.AddInt32(&done, 1)), len(albums))
			}
			// 单个封面失败不影响其余封面
			return nil
		})
	}

	_ = g.Wait()
	return results
}

// AdoptCovers uploads decoded covers to GPU images and caches them.
// Must be called on the game goroutine. The returned slice is indexed like
// results; failed covers are nil.
func (rm *ResourceManager) AdoptCovers(results []CoverResult) []*ebiten.Image {
	images := make([]*ebiten.Image, len(results))
	for i, res := range results {
		if res.Err != nil || res.Image == nil {
			continue
		}
		if cached, ok := rm.imageCache[res.Ref]; ok {
			images[i] = cached
			continue
		}
		img := ebiten.NewImageFromImage(res.Image)
		rm.imageCache[res.Ref] = img
		images[i] = img
	}
	return images
}

// decodeImage opens, decodes and (optionally) scales one image reference.
func (rm *ResourceManager) decodeImage(ctx context.Context, ref string, maxWidth, maxHeight int) (image.Image, error) {
	data, err := rm.readSource(ctx, ref)
	if err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", ref, err)
	}

	if maxWidth > 0 && maxHeight > 0 {
		img = ScaleToFit(img, maxWidth, maxHeight)
	}
	return img, nil
}

// readSource reads raw bytes for an image reference.
func (rm *ResourceManager) readSource(ctx context.Context, ref string) ([]byte, error) {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return rm.fetch(ctx, ref)
	}

	if embedded.IsInitialized() && embedded.Exists(ref) {
		data, err := embedded.ReadFile(ref)
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded image %s: %w", ref, err)
		}
		return data, nil
	}

	data, err := os.ReadFile(ref)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file %s: %w", ref, err)
	}
	return data, nil
}

// fetch performs a GET request and returns the response body.
func (rm *ResourceManager) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", rm.userAgent)

	resp, err := rm.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s: HTTP %d", url, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// ScaleToFit scales img down to fit within maxWidth x maxHeight, keeping the
// aspect ratio. Images already inside the bounds are returned unchanged.
// Catmull-Rom is used for high-quality resampling.
func ScaleToFit(img image.Image, maxWidth, maxHeight int) image.Image {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= maxWidth && height <= maxHeight || width == 0 || height == 0 {
		return img
	}

	ratio := float64(width) / float64(height)
	if float64(maxWidth)/float64(maxHeight) > ratio {
		// 高度受限
		width = int(float64(maxHeight) * ratio)
		height = maxHeight
	} else {
		// 宽度受限
		height = int(float64(maxWidth) / ratio)
		width = maxWidth
	}
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
