package raster

import (
	"image"
	"image/draw"

	xdraw "golang.org/x/image/draw"

	"codraw/pkg/colorutil"
	"codraw/pkg/geometry"
)

// NewCanvas returns a white canvas of the given size.
func NewCanvas(width, height int) *image.RGBA {
	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(colorutil.White), image.Point{}, draw.Src)
	return canvas
}

// Clone returns a deep copy of src.
func Clone(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}

// ToRGBA converts an image to RGBA anchored at the origin, copying pixels
// when necessary.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// DrawOver scales src into the given canvas-space rectangle and composites
// it over dst, respecting the source's alpha channel.
func DrawOver(dst *image.RGBA, src image.Image, rect geometry.Rect) {
	target := image.Rect(
		int(rect.X+0.5),
		int(rect.Y+0.5),
		int(rect.X+rect.Width+0.5),
		int(rect.Y+rect.Height+0.5),
	)
	xdraw.ApproxBiLinear.Scale(dst, target, src, src.Bounds(), xdraw.Over, nil)
}

// Replace scales src to cover dst entirely, discarding previous content.
func Replace(dst *image.RGBA, src image.Image) {
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
}
