package render

import (
	"image"
	"image/color"
	"image/draw"
	"sync"

	xdraw "golang.org/x/image/draw"
)

// Canvas is a software preview surface of fixed pixel dimensions. The
// playback scheduler clears and draws into it each tick; the GUI shell
// reads frames out for display. No other component draws to it.
type Canvas struct {
	mu    sync.Mutex
	frame *image.RGBA
}

// NewCanvas allocates a surface of the given pixel dimensions
func NewCanvas(width, height int) *Canvas {
	if width <= 0 {
		width = 1280
	}
	if height <= 0 {
		height = 720
	}
	return &Canvas{
		frame: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// Clear fills the surface with black
func (c *Canvas) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	draw.Draw(c.frame, c.frame.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
}

// Draw renders the image scaled to fit the surface, preserving aspect
// ratio, centered with letterbox or pillarbox bars as needed
func (c *Canvas) Draw(img image.Image) {
	if img == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	src := img.Bounds()
	if src.Dx() == 0 || src.Dy() == 0 {
		return
	}

	dst := c.frame.Bounds()
	scale := min(float64(dst.Dx())/float64(src.Dx()), float64(dst.Dy())/float64(src.Dy()))

	w := int(float64(src.Dx()) * scale)
	h := int(float64(src.Dy()) * scale)
	x := (dst.Dx() - w) / 2
	y := (dst.Dy() - h) / 2

	target := image.Rect(x, y, x+w, y+h)
	xdraw.ApproxBiLinear.Scale(c.frame, target, img, src, xdraw.Src, nil)
}

// Frame returns a copy of the current surface contents
func (c *Canvas) Frame() *image.RGBA {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := image.NewRGBA(c.frame.Bounds())
	copy(out.Pix, c.frame.Pix)
	return out
}

// Size returns the surface dimensions in pixels
func (c *Canvas) Size() (int, int) {
	b := c.frame.Bounds()
	return b.Dx(), b.Dy()
}
