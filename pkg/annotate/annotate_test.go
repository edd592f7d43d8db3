package annotate

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"IntelliguardGolang/pkg/facematch"
	"IntelliguardGolang/pkg/ppe"
)

func blankFrame(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 10, G: 10, B: 10, A: 255})
		}
	}
	return img
}

func TestDetectionBoxes_DoesNotMutateSource(t *testing.T) {
	src := blankFrame(200, 200)
	before := make([]byte, len(src.Pix))
	copy(before, src.Pix)

	out := DetectionBoxes(src, []ppe.Detection{{
		ClassName:  "no_helmet",
		Confidence: 0.9,
		BBox:       [4]float64{20, 40, 120, 140},
	}})

	require.NotNil(t, out)
	assert.Equal(t, before, src.Pix, "source image must stay untouched")
}

func TestDetectionBoxes_ViolationDrawnRed(t *testing.T) {
	src := blankFrame(200, 200)

	out := DetectionBoxes(src, []ppe.Detection{{
		ClassName:  "no_mask",
		Confidence: 0.8,
		BBox:       [4]float64{20, 40, 120, 140},
	}})

	r, g, b, _ := out.At(20, 90).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Zero(t, g)
	assert.Zero(t, b)
}

func TestDetectionBoxes_ComplianceDrawnGreen(t *testing.T) {
	src := blankFrame(200, 200)

	out := DetectionBoxes(src, []ppe.Detection{{
		ClassName:  "helmet",
		Confidence: 0.8,
		BBox:       [4]float64{20, 40, 120, 140},
	}})

	r, g, b, _ := out.At(20, 90).RGBA()
	assert.Zero(t, r)
	assert.Equal(t, uint32(0xffff), g)
	assert.Zero(t, b)
}

func TestDetectionBoxes_BoxOutsideBoundsIsClamped(t *testing.T) {
	src := blankFrame(50, 50)

	assert.NotPanics(t, func() {
		DetectionBoxes(src, []ppe.Detection{{
			ClassName:  "no_glove",
			Confidence: 0.7,
			BBox:       [4]float64{-20, -20, 500, 500},
		}})
	})
}

func TestFaceBox_DoesNotMutateSource(t *testing.T) {
	src := blankFrame(100, 100)
	before := make([]byte, len(src.Pix))
	copy(before, src.Pix)

	out := FaceBox(src, facematch.Match{
		IdentityKey: "alice",
		Confidence:  0.93,
		Location:    facematch.Rect{Top: 10, Right: 80, Bottom: 80, Left: 10},
	})

	require.NotNil(t, out)
	assert.Equal(t, before, src.Pix)

	r, g, _, _ := out.At(10, 45).RGBA()
	assert.Zero(t, r)
	assert.Equal(t, uint32(0xffff), g)
}
