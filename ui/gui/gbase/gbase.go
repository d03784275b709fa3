package gbase

import (
	"errors"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
)

var ErrExit = errors.New("exit request")

// --- layout ---

const (
	BoardX  int = 20 // canvas origin inside the window
	BoardY  int = 36
	PanelW  int = 160
	ButtonH int = 44
	Gap     int = 14
	StatusH int = 44
)

// WindowSize fits the canvas, the button panel and the status line.
func WindowSize(canvas int) (w, h int) {
	return BoardX + canvas + Gap + PanelW + BoardX, BoardY + canvas + StatusH
}

func PanelX(canvas int) int {
	return BoardX + canvas + Gap
}

// ---- palettes ----

type Palette struct {
	Bg           color.RGBA
	CanvasBg     color.RGBA
	ButtonFill   color.RGBA
	ButtonStroke color.RGBA
	ButtonText   color.RGBA
	MenuText     color.RGBA
	Accent       color.RGBA
	Error        color.RGBA
	Disabled     color.RGBA
}

func (p Palette) String() string {
	switch p {
	case LightPalette:
		return "light"
	case DarkPalette:
		return "dark"
	default:
	}
	return ""
}

func PaletteFromString(p string) Palette {
	switch p {
	case "dark":
		return DarkPalette
	default:
	}
	return LightPalette
}

var LightPalette = Palette{
	Bg:           color.RGBA{0xf7, 0xf7, 0xf7, 0xff},
	CanvasBg:     color.RGBA{0xee, 0xe8, 0xdc, 0xff},
	ButtonFill:   color.RGBA{0xff, 0xff, 0xff, 0xff},
	ButtonStroke: color.RGBA{0x88, 0x88, 0x88, 0xff},
	ButtonText:   color.RGBA{0x22, 0x22, 0x22, 0xff},
	MenuText:     color.RGBA{0x22, 0x22, 0x22, 0xff},
	Accent:       color.RGBA{0x22, 0x88, 0xcc, 0xff},
	Error:        color.RGBA{0xc0, 0x22, 0x22, 0xff},
	Disabled:     color.RGBA{0xaa, 0xaa, 0xaa, 0xff},
}

var DarkPalette = Palette{
	Bg:           color.RGBA{0x12, 0x12, 0x12, 0xff},
	CanvasBg:     color.RGBA{0x26, 0x22, 0x1c, 0xff},
	ButtonFill:   color.RGBA{0x20, 0x20, 0x20, 0xff},
	ButtonStroke: color.RGBA{0xdd, 0xdd, 0xdd, 0xff},
	ButtonText:   color.RGBA{0xee, 0xee, 0xee, 0xff},
	MenuText:     color.RGBA{0xee, 0xee, 0xee, 0xff},
	Accent:       color.RGBA{0x2a, 0xa1, 0xd1, 0xff},
	Error:        color.RGBA{0xff, 0x66, 0x66, 0xff},
	Disabled:     color.RGBA{0x55, 0x55, 0x55, 0xff},
}

// ---- Button ----

type Button struct {
	Label      string
	X, Y, W, H int
	Image      *ebiten.Image // pre-rendered rounded rect
	Disabled   bool

	Hover   bool
	Pressed bool

	Scale         float64
	TargetScale   float64
	OffsetY       float64
	TargetOffsetY float64
	AnimSpeed     float64 // per second
}

func NewButton(label string, x, y, w, h int, img *ebiten.Image) *Button {
	return &Button{
		Label: label,
		X:     x, Y: y, W: w, H: h,
		Image: img,
		Scale: 1.0, TargetScale: 1.0, AnimSpeed: 10.0,
	}
}

func (b *Button) Contains(px, py int) bool {
	return px >= b.X && px < b.X+b.W && py >= b.Y && py < b.Y+b.H
}

// HandleInput runs every Update and reports a completed click (press and
// release both inside). A disabled button never clicks.
func (b *Button) HandleInput(px, py int, justPressed, justReleased bool) bool {
	inside := b.Contains(px, py) && !b.Disabled
	b.Hover = inside

	if justPressed && inside {
		b.Pressed = true
		b.TargetScale, b.TargetOffsetY = 0.96, 3.0
		return false
	}
	if justReleased {
		clicked := b.Pressed && inside
		b.Pressed = false
		b.TargetOffsetY = 0
		if clicked {
			b.TargetScale = 1.03
			return true
		}
		b.TargetScale = 1.0
		return false
	}
	if !b.Pressed {
		b.TargetOffsetY = 0
		if inside {
			b.TargetScale = 1.02
		} else {
			b.TargetScale = 1.0
		}
	}
	return false
}

// UpdateAnim eases scale and offset toward their targets.
func (b *Button) UpdateAnim(dt float64) {
	if b.AnimSpeed <= 0 {
		b.AnimSpeed = 8.0
	}
	t := 1.0 - math.Exp(-b.AnimSpeed*dt)
	b.Scale += (b.TargetScale - b.Scale) * t
	b.OffsetY += (b.TargetOffsetY - b.OffsetY) * t

	// settle the click bounce
	if !b.Pressed && math.Abs(b.Scale-1.03) < 0.005 {
		b.TargetScale = 1.0
	}
}

func (b *Button) Draw(screen *ebiten.Image, face font.Face, theme Palette) {
	if b.Image == nil {
		return
	}
	cx := float64(b.X + b.W/2)
	cy := float64(b.Y+b.H/2) + b.OffsetY

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(b.Image.Bounds().Dx())/2, -float64(b.Image.Bounds().Dy())/2)
	op.GeoM.Scale(b.Scale, b.Scale)
	op.GeoM.Translate(cx, cy)
	op.Filter = ebiten.FilterLinear
	if b.Disabled {
		op.ColorScale.ScaleAlpha(0.45)
	}
	screen.DrawImage(b.Image, op)

	fg := theme.ButtonText
	if b.Disabled {
		fg = theme.Disabled
	}
	bounds := text.BoundString(face, b.Label)
	text.Draw(screen, b.Label, face, int(cx)-bounds.Dx()/2, int(cy)+bounds.Dy()/2, fg)
}
