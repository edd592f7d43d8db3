package annotate

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"IntelliguardGolang/pkg/facematch"
	"IntelliguardGolang/pkg/ppe"
)

var (
	violationColor  = color.RGBA{R: 255, A: 255}
	complianceColor = color.RGBA{G: 255, A: 255}
	labelTextColor  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

const (
	lineThickness = 2
	labelPad      = 4
)

// DetectionBoxes draws every detection box with a class+confidence label onto
// a copy of src. Violation classes are drawn red, everything else green. The
// caller's image is never touched.
func DetectionBoxes(src image.Image, detections []ppe.Detection) *image.RGBA {
	out := cloneRGBA(src)

	for _, d := range detections {
		useClr := complianceColor
		if ppe.IsViolationClass(d.ClassName) {
			useClr = violationColor
		}

		rect := image.Rect(int(d.BBox[0]), int(d.BBox[1]), int(d.BBox[2]), int(d.BBox[3]))
		drawRect(out, rect, useClr, lineThickness)

		label := fmt.Sprintf("%s: %.2f", d.ClassName, d.Confidence)
		drawLabel(out, label, rect.Min.X, rect.Min.Y, useClr)
	}

	return out
}

// FaceBox draws a rectangle with a name+confidence label around a recognized
// face onto a copy of src.
func FaceBox(src image.Image, match facematch.Match) *image.RGBA {
	out := cloneRGBA(src)

	rect := image.Rect(match.Location.Left, match.Location.Top, match.Location.Right, match.Location.Bottom)
	drawRect(out, rect, complianceColor, lineThickness)

	label := fmt.Sprintf("%s (%.2f)", match.IdentityKey, match.Confidence)
	drawLabel(out, label, rect.Min.X, rect.Max.Y+labelHeight(), complianceColor)

	return out
}

func cloneRGBA(src image.Image) *image.RGBA {
	bounds := src.Bounds()
	out := image.NewRGBA(bounds)
	draw.Draw(out, bounds, src, bounds.Min, draw.Src)
	return out
}

func drawRect(img *image.RGBA, rect image.Rectangle, clr color.RGBA, thickness int) {
	rect = rect.Intersect(img.Bounds())
	if rect.Empty() {
		return
	}

	for t := 0; t < thickness; t++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			img.Set(x, rect.Min.Y+t, clr)
			img.Set(x, rect.Max.Y-1-t, clr)
		}
		for y := rect.Min.Y; y < rect.Max.Y; y++ {
			img.Set(rect.Min.X+t, y, clr)
			img.Set(rect.Max.X-1-t, y, clr)
		}
	}
}

func labelHeight() int {
	return basicfont.Face7x13.Metrics().Height.Ceil() + labelPad
}

// drawLabel paints a filled banner above (x, y) and writes the label text on
// it, clamped to the image bounds.
func drawLabel(img *image.RGBA, label string, x, y int, clr color.RGBA) {
	face := basicfont.Face7x13
	width := font.MeasureString(face, label).Ceil()
	height := labelHeight()

	banner := image.Rect(x, y-height, x+width+2*labelPad, y)
	banner = banner.Intersect(img.Bounds())
	if banner.Empty() {
		return
	}
	draw.Draw(img, banner, &image.Uniform{C: clr}, image.Point{}, draw.Src)

	drawer := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{C: labelTextColor},
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(banner.Min.X + labelPad),
			Y: fixed.I(banner.Max.Y - labelPad),
		},
	}
	drawer.DrawString(label)
}
