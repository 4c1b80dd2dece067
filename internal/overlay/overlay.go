// Package overlay models the timed captions and image stickers composited
// onto a tutorial video. Descriptors arrive as loose JSON authored against a
// scaled-down preview canvas; Normalize resolves defaults and drops
// incomplete entries once, at the boundary, so the video pipeline only ever
// sees well-formed overlays.
package overlay

import "fmt"

type Kind string

const (
	KindText  Kind = "text"
	KindImage Kind = "image"
)

const (
	defaultWidth    = 200.0
	defaultHeight   = 150.0
	defaultFontSize = 24.0
)

// Rect is an overlay box in preview-canvas pixel space. Source-space
// coordinates only exist after scaling in the video package.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Overlay is a validated descriptor. Text overlays carry Text and FontSize;
// image overlays carry FileName relative to the tutorial's overlay directory.
type Overlay struct {
	Kind     Kind
	Rect     Rect
	Time     float64
	Text     string
	FontSize float64
	FileName string
}

// Raw is the wire form of a descriptor: every field optional, defaults
// implicit.
type Raw struct {
	Type     string   `json:"type"`
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Width    *float64 `json:"width"`
	Height   *float64 `json:"height"`
	Time     float64  `json:"time"`
	Text     string   `json:"text"`
	FileName string   `json:"fileName"`
	Style    Style    `json:"style"`
}

type Style struct {
	FontSize *float64 `json:"fontSize"`
}

// Normalize converts raw descriptors into validated overlays, preserving
// input order. Incomplete descriptors (text without text, image without a
// file name, unknown type) are dropped, not errored; the returned skip list
// says which and why.
func Normalize(raws []Raw) ([]Overlay, []string) {
	overlays := make([]Overlay, 0, len(raws))
	var skipped []string

	for i, raw := range raws {
		ov := Overlay{
			Kind: Kind(raw.Type),
			Rect: Rect{
				X:      raw.X,
				Y:      raw.Y,
				Width:  valueOr(raw.Width, defaultWidth),
				Height: valueOr(raw.Height, defaultHeight),
			},
			Time: raw.Time,
		}

		switch ov.Kind {
		case KindText:
			if raw.Text == "" {
				skipped = append(skipped, fmt.Sprintf("overlay %d: text overlay without text", i))
				continue
			}
			ov.Text = raw.Text
			ov.FontSize = valueOr(raw.Style.FontSize, defaultFontSize)

		case KindImage:
			if raw.FileName == "" {
				skipped = append(skipped, fmt.Sprintf("overlay %d: image overlay without fileName", i))
				continue
			}
			ov.FileName = raw.FileName

		default:
			skipped = append(skipped, fmt.Sprintf("overlay %d: unknown type %q", i, raw.Type))
			continue
		}

		overlays = append(overlays, ov)
	}

	return overlays, skipped
}

func valueOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}
