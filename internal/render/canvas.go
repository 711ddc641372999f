// Package render draws the alert popup into an offscreen image and presents
// it in a GLFW window.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"os"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/cptspacemanspiff/battery-alert/internal/popup"
)

// Font is a face rasterized at the canvas scale.
type Font struct {
	face   font.Face
	size   float64
	ascent int
}

// Size is the requested size in points.
func (f *Font) Size() float64 { return f.size }

// Canvas is an RGBA framebuffer addressed in logical window coordinates.
// Coordinates and font sizes are multiplied by scale on the way in.
type Canvas struct {
	img   *image.RGBA
	scale float64
}

// NewCanvas allocates a width x height logical canvas.
func NewCanvas(width, height int, scale float64) *Canvas {
	if scale <= 0 {
		scale = 1
	}
	w := int(math.Ceil(float64(width) * scale))
	h := int(math.Ceil(float64(height) * scale))
	return &Canvas{img: image.NewRGBA(image.Rect(0, 0, w, h)), scale: scale}
}

// Image returns the backing framebuffer.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

func (c *Canvas) LoadFont(path string, size float64) (popup.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	return c.parseFont(data, size)
}

func (c *Canvas) parseFont(data []byte, size float64) (*Font, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size * c.scale,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create face: %w", err)
	}
	return &Font{face: face, size: size, ascent: face.Metrics().Ascent.Ceil()}, nil
}

// UnloadFont releases the face. Unloading twice is a no-op.
func (c *Canvas) UnloadFont(f popup.Font) {
	ff, ok := f.(*Font)
	if !ok || ff.face == nil {
		return
	}
	_ = ff.face.Close()
	ff.face = nil
}

func (c *Canvas) MeasureText(f popup.Font, text string) popup.Point {
	ff := f.(*Font)
	width := font.MeasureString(ff.face, text)
	height := ff.face.Metrics().Height
	return popup.Point{
		X: fixedToFloat(width) / c.scale,
		Y: fixedToFloat(height) / c.scale,
	}
}

func (c *Canvas) Clear(col color.NRGBA) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
}

// DrawText draws text with its top-left corner at at.
func (c *Canvas) DrawText(f popup.Font, text string, at popup.Point, col color.NRGBA) {
	ff := f.(*Font)
	d := font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: ff.face,
		Dot: fixed.Point26_6{
			X: floatToFixed(at.X * c.scale),
			Y: floatToFixed(at.Y*c.scale) + fixed.I(ff.ascent),
		},
	}
	d.DrawString(text)
}

// DrawRoundedRect fills r with corners of the given radius, clamped to half
// the shorter side.
func (c *Canvas) DrawRoundedRect(r popup.Rect, radius float64, col color.NRGBA) {
	b := c.img.Bounds()
	scanner := rasterx.NewScannerGV(b.Dx(), b.Dy(), c.img, b)
	filler := rasterx.NewFiller(b.Dx(), b.Dy(), scanner)
	filler.SetColor(col)

	radius = math.Min(radius, math.Min(r.Width, r.Height)/2)
	s := c.scale
	rasterx.AddRoundRect(r.X*s, r.Y*s, (r.X+r.Width)*s, (r.Y+r.Height)*s, radius*s, radius*s, 0, rasterx.RoundGap, filler)
	filler.Draw()
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}
