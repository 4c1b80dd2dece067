package video

import (
	"math"

	"neetstudio/internal/overlay"
)

const (
	defaultSourceWidth  = 1280
	defaultSourceHeight = 720
)

// SourceSize is the probed pixel size of the screen recording.
type SourceSize struct {
	Width  int
	Height int
}

func (s SourceSize) valid() bool {
	return s.Width > 0 && s.Height > 0
}

// PreviewSize is the size of the editing canvas the overlays were authored
// against, as reported by the client.
type PreviewSize struct {
	Width  float64
	Height float64
}

// SourceRect is an overlay box on the source video's native pixel grid.
type SourceRect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// ScaleFactors map preview-space measurements onto the source pixel grid.
// Overlays are placed by dragging boxes on a scaled-down preview image, so
// every linear measurement has to be scaled back up by the same ratio the
// preview was scaled down by.
type ScaleFactors struct {
	X float64
	Y float64
}

// NewScaleFactors derives the preview-to-source ratios. Missing or garbage
// dimensions on either side fall back to 1280x720 rather than failing: a
// malformed request must never block compositing, even if the overlays end
// up mispositioned.
func NewScaleFactors(src SourceSize, preview PreviewSize) ScaleFactors {
	if !src.valid() {
		src = SourceSize{Width: defaultSourceWidth, Height: defaultSourceHeight}
	}
	if preview.Width <= 0 || preview.Height <= 0 {
		preview = PreviewSize{Width: defaultSourceWidth, Height: defaultSourceHeight}
	}

	return ScaleFactors{
		X: float64(src.Width) / preview.Width,
		Y: float64(src.Height) / preview.Height,
	}
}

// Rect converts a preview-space box to source space. Results are floored so
// scaled boxes sit at or inside their nominal boundary, never past it.
func (f ScaleFactors) Rect(r overlay.Rect) SourceRect {
	return SourceRect{
		X:      scaleDown(r.X, f.X),
		Y:      scaleDown(r.Y, f.Y),
		Width:  scaleDown(r.Width, f.X),
		Height: scaleDown(r.Height, f.Y),
	}
}

// FontSize scales a preview-space font size into source space. Fonts size
// along the vertical axis, so the vertical factor applies.
func (f ScaleFactors) FontSize(preview float64) int {
	return scaleDown(preview, f.Y)
}

func scaleDown(v, factor float64) int {
	return int(math.Floor(v * factor))
}
