package video

import (
	"testing"

	"neetstudio/internal/overlay"
)

func TestNewScaleFactors(t *testing.T) {
	tests := []struct {
		name    string
		src     SourceSize
		preview PreviewSize
		wantX   float64
		wantY   float64
	}{
		{
			name:    "fullHDSourceHalfPreview",
			src:     SourceSize{Width: 1920, Height: 1080},
			preview: PreviewSize{Width: 960, Height: 540},
			wantX:   2.0,
			wantY:   2.0,
		},
		{
			name:    "matchingSizes",
			src:     SourceSize{Width: 1280, Height: 720},
			preview: PreviewSize{Width: 1280, Height: 720},
			wantX:   1.0,
			wantY:   1.0,
		},
		{
			name:    "nonUniformRatios",
			src:     SourceSize{Width: 1920, Height: 1080},
			preview: PreviewSize{Width: 1280, Height: 540},
			wantX:   1.5,
			wantY:   2.0,
		},
		{
			name:    "zeroSourceFallsBackToDefault",
			src:     SourceSize{},
			preview: PreviewSize{Width: 640, Height: 360},
			wantX:   2.0,
			wantY:   2.0,
		},
		{
			name:    "zeroPreviewFallsBackToDefault",
			src:     SourceSize{Width: 1920, Height: 1080},
			preview: PreviewSize{},
			wantX:   1.5,
			wantY:   1.5,
		},
		{
			name:    "bothInvalidYieldsIdentity",
			src:     SourceSize{Width: -1, Height: 0},
			preview: PreviewSize{Width: 0, Height: -5},
			wantX:   1.0,
			wantY:   1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewScaleFactors(tt.src, tt.preview)
			if f.X != tt.wantX || f.Y != tt.wantY {
				t.Errorf("NewScaleFactors() = {%v, %v}, want {%v, %v}", f.X, f.Y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestScaleFactorsRect(t *testing.T) {
	f := NewScaleFactors(SourceSize{Width: 1920, Height: 1080}, PreviewSize{Width: 1280, Height: 720})

	got := f.Rect(overlay.Rect{X: 101, Y: 50, Width: 200, Height: 150})
	want := SourceRect{X: 151, Y: 75, Width: 300, Height: 225}
	if got != want {
		t.Errorf("Rect() = %+v, want %+v", got, want)
	}
}

func TestScaleFactorsRectFloors(t *testing.T) {
	// 1.5x factor on odd coordinates must truncate, never round up.
	f := ScaleFactors{X: 1.5, Y: 1.5}

	got := f.Rect(overlay.Rect{X: 33, Y: 33, Width: 33, Height: 33})
	want := SourceRect{X: 49, Y: 49, Width: 49, Height: 49}
	if got != want {
		t.Errorf("Rect() = %+v, want %+v", got, want)
	}
}

func TestScaleFactorsFontSize(t *testing.T) {
	f := ScaleFactors{X: 3.0, Y: 1.5}

	// Font size follows the vertical factor only.
	if got := f.FontSize(24); got != 36 {
		t.Errorf("FontSize(24) = %d, want 36", got)
	}
	if got := f.FontSize(25); got != 37 {
		t.Errorf("FontSize(25) = %d, want 37", got)
	}
}

func TestIdentityScaleLeavesCoordinatesUntouched(t *testing.T) {
	f := NewScaleFactors(SourceSize{Width: 1280, Height: 720}, PreviewSize{Width: 1280, Height: 720})

	got := f.Rect(overlay.Rect{X: 100, Y: 200, Width: 300, Height: 400})
	want := SourceRect{X: 100, Y: 200, Width: 300, Height: 400}
	if got != want {
		t.Errorf("Rect() = %+v, want %+v", got, want)
	}
}
