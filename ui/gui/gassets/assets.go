package gassets

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	"github.com/hajimehoshi/ebiten/v2"

	"secondbest/src/logx"
	"secondbest/src/render"
	"secondbest/ui/gui/gassets/gart"
	"secondbest/ui/gui/gassets/gfont"
)

type loaded struct {
	imgs  [render.ImageCount]image.Image
	fonts *gfont.Fonts
	err   error
}

// GUIAssetsWorker loads the board images off the game loop. Ebiten images
// are created on the game goroutine once loading finished (see Poll).
type GUIAssetsWorker struct {
	doneCh chan loaded
	imgs   [render.ImageCount]*ebiten.Image
	sizes  render.Sizes
	fonts  *gfont.Fonts
	ready  bool
	err    error
	logx   logx.Logger
}

// NewGUIAssetsWorker starts loading PNGs from dir (board.png, piece_black.png,
// ...) and an optional font.ttf. An empty dir paints the built-in images instead.
func NewGUIAssetsWorker(dir string, p render.Params, l logx.Logger) *GUIAssetsWorker {
	aw := &GUIAssetsWorker{doneCh: make(chan loaded, 1), fonts: gfont.Default(), logx: l}
	go func() {
		aw.doneCh <- load(dir, p)
	}()
	return aw
}

func load(dir string, p render.Params) loaded {
	var out loaded
	for i := render.Image(0); i < render.ImageCount; i++ {
		if dir == "" {
			out.imgs[i] = gart.Paint(i, p)
			continue
		}
		path := filepath.Join(dir, i.String()+".png")
		img, err := gg.LoadPNG(path)
		if err != nil {
			out.err = fmt.Errorf("load image %s: %w", path, err)
			return out
		}
		out.imgs[i] = img
	}

	if dir != "" {
		path := filepath.Join(dir, gfont.FileName)
		if _, err := os.Stat(path); err == nil {
			fonts, err := gfont.LoadFonts(path)
			if err != nil {
				out.err = fmt.Errorf("load font %s: %w", path, err)
				return out
			}
			out.fonts = fonts
		}
	}
	return out
}

// Poll must be called from Update; it reports whether every image is ready.
func (aw *GUIAssetsWorker) Poll() bool {
	if aw.ready || aw.err != nil {
		return aw.ready
	}
	select {
	case res := <-aw.doneCh:
		if res.err != nil {
			aw.err = res.err
			aw.logx.Errorf("assets: %v", res.err)
			return false
		}
		for i, img := range res.imgs {
			b := img.Bounds()
			aw.imgs[i] = ebiten.NewImageFromImage(img)
			aw.sizes[i] = render.Size{W: float64(b.Dx()), H: float64(b.Dy())}
		}
		if res.fonts != nil {
			aw.fonts = res.fonts
		}
		aw.ready = true
		aw.logx.Info("assets ready")
	default:
	}
	return aw.ready
}

func (aw *GUIAssetsWorker) Ready() bool {
	return aw.ready
}

// Err is the loading failure, if any; rendering stays gated after one.
func (aw *GUIAssetsWorker) Err() error {
	return aw.err
}

func (aw *GUIAssetsWorker) Image(i render.Image) *ebiten.Image {
	if i >= render.ImageCount {
		return nil
	}
	return aw.imgs[i]
}

// Fonts never returns nil; the bitmap face stands in until loading finished.
func (aw *GUIAssetsWorker) Fonts() *gfont.Fonts {
	return aw.fonts
}

func (aw *GUIAssetsWorker) Sizes() render.Sizes {
	return aw.sizes
}
