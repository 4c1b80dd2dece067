package video

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Prober wraps ffprobe lookups against local media files.
type Prober struct {
	ffprobePath string
}

func NewProber(ffprobePath string) *Prober {
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &Prober{ffprobePath: ffprobePath}
}

// VideoSize returns the pixel dimensions of the first video stream. A file
// with no video stream (an audio-only recording, say) yields a zero size and
// no error; callers default from there.
func (p *Prober) VideoSize(ctx context.Context, path string) (SourceSize, error) {
	args := []string{
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height",
		"-of", "csv=s=x:p=0",
		path,
	}

	cmd := exec.CommandContext(ctx, p.ffprobePath, args...)
	output, err := cmd.Output()
	if err != nil {
		return SourceSize{}, fmt.Errorf("ffprobe failed: %w", err)
	}

	line := strings.TrimSpace(string(output))
	if line == "" {
		return SourceSize{}, nil
	}

	parts := strings.Split(line, "x")
	if len(parts) != 2 {
		return SourceSize{}, nil
	}

	w, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	h, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil {
		return SourceSize{}, nil
	}

	return SourceSize{Width: w, Height: h}, nil
}

// Duration returns the container duration in seconds.
func (p *Prober) Duration(ctx context.Context, path string) (float64, error) {
	args := []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	}

	cmd := exec.CommandContext(ctx, p.ffprobePath, args...)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe failed: %w", err)
	}

	var dur float64
	if _, err := fmt.Sscanf(string(output), "%f", &dur); err != nil {
		return 0, fmt.Errorf("failed to parse duration: %w", err)
	}

	return dur, nil
}
