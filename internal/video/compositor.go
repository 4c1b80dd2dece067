package video

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"neetstudio/internal/overlay"
)

// overlayDuration is how long each overlay stays visible once it first
// appears on the timeline, in seconds.
const overlayDuration = 5.0

// baseStream is the screen recording's video stream.
const baseStream = Stream("0:v")

// Stream is an ffmpeg stream handle, either an input selector ("0:v") or a
// filter output label ("ov2").
type Stream string

func (s Stream) label() string {
	return "[" + string(s) + "]"
}

// Plan is a composed filter graph ready to hand to ffmpeg. Inputs holds
// image file paths beyond the two base inputs, in the order their stream
// indexes were assigned.
type Plan struct {
	Inputs  []string
	Skipped []string

	filters []string
	out     Stream
}

// HasSteps reports whether any overlay survived into the graph. A plan with
// no steps means the base video maps straight through.
func (p *Plan) HasSteps() bool {
	return len(p.filters) > 0
}

// FilterComplex renders the graph as a -filter_complex argument.
func (p *Plan) FilterComplex() string {
	return strings.Join(p.filters, ";")
}

// Output is the stream handle carrying the final composited video.
func (p *Plan) Output() Stream {
	return p.out
}

// BuildPlan threads each overlay onto the screen recording in input order.
// Overlays referencing image files that do not exist in overlayDir are
// skipped rather than failing the whole graph; exists reports whether a path
// is usable. Coordinates arrive in preview space and are converted through
// scale before being baked into the graph.
func BuildPlan(overlays []overlay.Overlay, scale ScaleFactors, trimStart float64, overlayDir string, exists func(string) bool) *Plan {
	plan := &Plan{out: baseStream}

	// Two base inputs are always present: screen recording and voice track.
	inputIndex := 2

	for i, ov := range overlays {
		rect := scale.Rect(ov.Rect)
		from := math.Max(0, ov.Time-trimStart)
		to := from + overlayDuration

		switch ov.Kind {
		case overlay.KindImage:
			path := filepath.Join(overlayDir, ov.FileName)
			if !exists(path) {
				plan.Skipped = append(plan.Skipped, ov.FileName)
				continue
			}
			plan.Inputs = append(plan.Inputs, path)

			scaled := Stream(fmt.Sprintf("scaled%d", i))
			next := Stream(fmt.Sprintf("ov%d", i))
			plan.filters = append(plan.filters,
				fmt.Sprintf("[%d:v]scale=%d:%d%s", inputIndex, rect.Width, rect.Height, scaled.label()),
				fmt.Sprintf("%s%soverlay=%d:%d:enable='between(t,%.2f,%.2f)'%s",
					plan.out.label(), scaled.label(), rect.X, rect.Y, from, to, next.label()),
			)
			plan.out = next
			inputIndex++

		case overlay.KindText:
			next := Stream(fmt.Sprintf("ov%d", i))
			plan.filters = append(plan.filters,
				fmt.Sprintf("%sdrawtext=text='%s':x=%d:y=%d:fontsize=%d:fontcolor=white:box=1:boxcolor=black@0.5:enable='between(t,%.2f,%.2f)'%s",
					plan.out.label(), escapeDrawText(ov.Text), rect.X, rect.Y,
					scale.FontSize(ov.FontSize), from, to, next.label()),
			)
			plan.out = next
		}
	}

	return plan
}

// escapeDrawText sanitizes text for embedding in a drawtext filter value.
// Single quotes would terminate the value early so they are stripped;
// colons separate filter options so they are escaped.
func escapeDrawText(s string) string {
	s = strings.ReplaceAll(s, "'", "")
	s = strings.ReplaceAll(s, ":", `\:`)
	return s
}
