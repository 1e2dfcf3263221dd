// Package preview rasterizes compiled icons to PNG images. It exists for
// eyeballing compiler output; the generated table itself stays purely
// geometric.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"golang.org/x/image/vector"

	"iconc"
)

// Magic constant for circle approximation with cubic Beziers:
// 4/3 * (sqrt(2) - 1).
const bezierCircleK = 0.5522847498307936

// Render draws an icon into a square NRGBA image of the given pixel size.
// Coordinates scale uniformly by size/icon.Size. Shapes render in
// painter's order; each shape's opacity multiplies the base color's
// alpha.
func Render(icon iconc.Icon, size int, base color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	scale := float64(size) / icon.Size

	for _, shape := range icon.Shapes {
		var r vector.Rasterizer
		r.Reset(size, size)
		if shape.Circle != nil {
			rasterizeCircle(&r, *shape.Circle, scale)
		} else {
			rasterizePath(&r, shape.Elements, scale)
		}

		alpha := float64(base.A) / 255 * shape.Opacity
		src := image.NewUniform(color.NRGBA{
			R: base.R,
			G: base.G,
			B: base.B,
			A: uint8(alpha*255 + 0.5),
		})
		r.Draw(img, img.Bounds(), src, image.Point{})
	}
	return img
}

// WritePNG renders the icon and writes it to path.
func WritePNG(path string, icon iconc.Icon, size int, base color.NRGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	if err := png.Encode(f, Render(icon, size, base)); err != nil {
		f.Close()
		return fmt.Errorf("preview %s: %w", path, err)
	}
	return f.Close()
}

func rasterizePath(r *vector.Rasterizer, els []iconc.PathElement, scale float64) {
	at := func(p iconc.Point) (float32, float32) {
		return float32(p.X * scale), float32(p.Y * scale)
	}
	for _, el := range els {
		switch e := el.(type) {
		case iconc.MoveTo:
			x, y := at(e.Point)
			r.MoveTo(x, y)
		case iconc.LineTo:
			x, y := at(e.Point)
			r.LineTo(x, y)
		case iconc.QuadTo:
			cx, cy := at(e.Control)
			x, y := at(e.Point)
			r.QuadTo(cx, cy, x, y)
		case iconc.CubicTo:
			c1x, c1y := at(e.Control1)
			c2x, c2y := at(e.Control2)
			x, y := at(e.Point)
			r.CubeTo(c1x, c1y, c2x, c2y, x, y)
		case iconc.Close:
			r.ClosePath()
		}
	}
}

// rasterizeCircle flattens a circle into four cubic Bezier quadrants.
func rasterizeCircle(r *vector.Rasterizer, c iconc.Circle, scale float64) {
	cx := c.Center.X * scale
	cy := c.Center.Y * scale
	rad := c.Radius * scale
	offset := rad * bezierCircleK

	f := func(x, y float64) (float32, float32) { return float32(x), float32(y) }

	x0, y0 := f(cx+rad, cy)
	r.MoveTo(x0, y0)
	c1x, c1y := f(cx+rad, cy+offset)
	c2x, c2y := f(cx+offset, cy+rad)
	ex, ey := f(cx, cy+rad)
	r.CubeTo(c1x, c1y, c2x, c2y, ex, ey)
	c1x, c1y = f(cx-offset, cy+rad)
	c2x, c2y = f(cx-rad, cy+offset)
	ex, ey = f(cx-rad, cy)
	r.CubeTo(c1x, c1y, c2x, c2y, ex, ey)
	c1x, c1y = f(cx-rad, cy-offset)
	c2x, c2y = f(cx-offset, cy-rad)
	ex, ey = f(cx, cy-rad)
	r.CubeTo(c1x, c1y, c2x, c2y, ex, ey)
	c1x, c1y = f(cx+offset, cy-rad)
	c2x, c2y = f(cx+rad, cy-offset)
	ex, ey = f(cx+rad, cy)
	r.CubeTo(c1x, c1y, c2x, c2y, ex, ey)
	r.ClosePath()
}
