package scenes

import (
	"context"
	"fmt"
	"image/color"
	"log"
	"sync/atomic"

	"github.com/gonewx/coverflow/pkg/config"
	"github.com/gonewx/coverflow/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// coverResolutionScale 封面解码分辨率相对卡片平面尺寸的倍数
// 居中卡片的投影放大约 1.5 倍，留出余量保证清晰
const coverResolutionScale = 2.0

// 进度条外观
const (
	loadingBarWidth  = 400.0
	loadingBarHeight = 6.0
)

var (
	loadingBackgroundColor = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	loadingBarBackColor    = color.RGBA{R: 50, G: 50, B: 56, A: 255}
	loadingBarFillColor    = color.RGBA{R: 210, G: 210, B: 215, A: 255}
)

// LoadingScene represents the loading screen shown at start-up.
// Covers are decoded on worker goroutines; the decoded results are handed back
// through a channel and uploaded to GPU images on the game goroutine.
type LoadingScene struct {
	resourceManager *game.ResourceManager
	sceneManager    *game.SceneManager
	config          *config.CoverFlowConfig
	albums          []game.Album

	// Progress tracking (written by worker goroutines)
	done  atomic.Int32
	total int

	started         bool
	loadingComplete bool
	elapsedTime     float64

	results chan []game.CoverResult
	cancel  context.CancelFunc
}

// NewLoadingScene creates a new loading scene.
func NewLoadingScene(rm *game.ResourceManager, sm *game.SceneManager, cfg *config.CoverFlowConfig, albums []game.Album) *LoadingScene {
	return &LoadingScene{
		resourceManager: rm,
		sceneManager:    sm,
		config:          cfg,
		albums:          albums,
		total:           len(albums),
		results:         make(chan []game.CoverResult, 1),
	}
}

// Progress returns the loading progress (0.0 - 1.0).
func (s *LoadingScene) Progress() float64 {
	if s.total == 0 {
		return 1
	}
	return float64(s.done.Load()) / float64(s.total)
}

// IsComplete reports whether the covers have been loaded and the scene switched.
func (s *LoadingScene) IsComplete() bool {
	return s.loadingComplete
}

// Update starts the background load on the first tick and switches to the
// cover flow scene once all covers are decoded.
func (s *LoadingScene) Update(deltaTime float64) {
	s.elapsedTime += deltaTime

	if !s.started {
		s.start()
	}
	if s.loadingComplete {
		return
	}

	select {
	case results := <-s.results:
		s.finish(results)
	default:
	}
}

// start launches cover decoding in the background.
func (s *LoadingScene) start() {
	s.started = true

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	maxW := int(s.config.Layout.PlaneWidth * coverResolutionScale)
	maxH := int(s.config.Layout.PlaneHeight * coverResolutionScale)
	maxConcurrent := s.config.Loading.MaxConcurrent

	log.Printf("[LoadingScene] Loading %d covers (max %d concurrent)", s.total, maxConcurrent)
	go func() {
		results := s.resourceManager.DecodeCovers(ctx, s.albums, maxW, maxH, maxConcurrent, func(done, total int) {
			s.done.Store(int32(done))
		})
		s.results <- results
	}()
}

// finish uploads the covers and switches to the cover flow scene.
// Must run on the game goroutine.
func (s *LoadingScene) finish(results []game.CoverResult) {
	s.loadingComplete = true
	if s.cancel != nil {
		s.cancel()
	}

	covers := s.resourceManager.AdoptCovers(results)
	loaded := 0
	for _, c := range covers {
		if c != nil {
			loaded++
		}
	}
	log.Printf("[LoadingScene] Loaded %d/%d covers in %.2fs", loaded, len(covers), s.elapsedTime)

	var background *ebiten.Image
	if path := s.config.Render.BackgroundImage; path != "" {
		img, err := s.resourceManager.LoadImage(path)
		if err != nil {
			log.Printf("[LoadingScene] Failed to load background image: %v", err)
		} else {
			background = img
		}
	}

	s.sceneManager.SwitchTo(NewCoverFlowScene(s.config, s.albums, covers, background))
}

// Draw renders the progress bar and status message.
func (s *LoadingScene) Draw(screen *ebiten.Image) {
	screen.Fill(loadingBackgroundColor)

	w := float32(s.config.Window.Width)
	h := float32(s.config.Window.Height)
	x := (w - loadingBarWidth) / 2
	y := h/2 - loadingBarHeight/2

	vector.DrawFilledRect(screen, x, y, loadingBarWidth, loadingBarHeight, loadingBarBackColor, true)
	vector.DrawFilledRect(screen, x, y, loadingBarWidth*float32(s.Progress()), loadingBarHeight, loadingBarFillColor, true)

	msg := fmt.Sprintf("Loading covers %d/%d", s.done.Load(), s.total)
	ebitenutil.DebugPrintAt(screen, msg, int(x), int(y)-24)
}
