package video

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path"
	"sync"
	"time"

	"neetstudio/internal/overlay"
	"neetstudio/internal/tutorial"
)

var (
	// ErrMissingInput means the screen recording or voice track has not been
	// uploaded yet.
	ErrMissingInput = errors.New("screen recording or voice track missing")

	// ErrSyncInProgress means an encode for the same tutorial is already
	// running.
	ErrSyncInProgress = errors.New("sync already in progress")
)

// Syncer composites overlays onto a tutorial's screen recording, muxes in
// the voice track and writes final.mp4. One encode per tutorial at a time.
type Syncer struct {
	ffmpegPath string
	preset     string
	timeout    time.Duration
	urlPrefix  string

	prober *Prober
	store  *tutorial.Store

	inFlight sync.Map
}

func NewSyncer(ffmpegPath, preset string, timeout time.Duration, prober *Prober, store *tutorial.Store) *Syncer {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if preset == "" {
		preset = "fast"
	}
	return &Syncer{
		ffmpegPath: ffmpegPath,
		preset:     preset,
		timeout:    timeout,
		urlPrefix:  "/data/tutorials",
		prober:     prober,
		store:      store,
	}
}

// SyncRequest carries the client's editing session: validated overlays plus
// the trim window, with Preview describing the canvas the overlay
// coordinates were authored against.
type SyncRequest struct {
	ID        string
	Overlays  []overlay.Overlay
	TrimStart float64
	TrimEnd   float64
	Preview   PreviewSize
}

// SyncResult reports where the finished video landed and which overlays were
// left out of it.
type SyncResult struct {
	URL             string
	Duration        time.Duration
	SkippedOverlays []string
}

// Sync runs the full encode. Metadata is only touched on success; a failed
// encode leaves the tutorial in its prior status so the client can retry.
func (s *Syncer) Sync(ctx context.Context, req SyncRequest) (*SyncResult, error) {
	if _, loaded := s.inFlight.LoadOrStore(req.ID, struct{}{}); loaded {
		return nil, ErrSyncInProgress
	}
	defer s.inFlight.Delete(req.ID)

	if _, err := s.store.Read(req.ID); err != nil {
		return nil, err
	}

	paths := s.store.Paths(req.ID)
	for _, required := range []string{paths.Screen, paths.Voice} {
		if _, err := os.Stat(required); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrMissingInput, required)
		}
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	src, err := s.prober.VideoSize(ctx, paths.Screen)
	if err != nil {
		slog.Warn("probe failed, assuming default source size", "tutorialId", req.ID, "error", err)
		src = SourceSize{}
	}

	scale := NewScaleFactors(src, req.Preview)
	plan := BuildPlan(req.Overlays, scale, req.TrimStart, paths.Overlays, fileExists)
	for _, skipped := range plan.Skipped {
		slog.Warn("skipping overlay with missing asset", "tutorialId", req.ID, "file", skipped)
	}

	args := buildSyncArgs(s.preset, paths, plan, req.TrimStart, req.TrimEnd)

	slog.Info("encoding tutorial", "tutorialId", req.ID, "overlays", len(req.Overlays), "skipped", len(plan.Skipped))
	start := time.Now()

	cmd := exec.CommandContext(ctx, s.ffmpegPath, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("video encoding failed: %w: %s", err, string(output))
	}

	if _, err := s.store.Update(req.ID, func(meta *tutorial.Metadata) {
		meta.Status = tutorial.StatusSynced
		meta.FinalURL = path.Join(s.urlPrefix, req.ID, tutorial.FinalFile)
	}); err != nil {
		return nil, err
	}

	return &SyncResult{
		URL:             path.Join(s.urlPrefix, req.ID, tutorial.FinalFile),
		Duration:        time.Since(start),
		SkippedOverlays: plan.Skipped,
	}, nil
}

// buildSyncArgs assembles the full ffmpeg invocation. The trim window is
// applied as an input seek on the screen recording plus an output duration
// cap; without an explicit end the encode stops with the shorter input.
func buildSyncArgs(preset string, paths tutorial.Paths, plan *Plan, trimStart, trimEnd float64) []string {
	args := []string{"-y"}

	if trimStart > 0 {
		args = append(args, "-ss", fmt.Sprintf("%.2f", trimStart))
	}
	args = append(args, "-i", paths.Screen, "-i", paths.Voice)

	for _, input := range plan.Inputs {
		args = append(args, "-i", input)
	}

	if plan.HasSteps() {
		args = append(args,
			"-filter_complex", plan.FilterComplex(),
			"-map", plan.Output().label(),
			"-map", "1:a",
		)
	} else {
		args = append(args, "-map", "0:v", "-map", "1:a")
	}

	if trimEnd > trimStart {
		args = append(args, "-t", fmt.Sprintf("%.2f", trimEnd-trimStart))
	} else {
		args = append(args, "-shortest")
	}

	args = append(args,
		"-c:v", "libx264",
		"-preset", preset,
		"-c:a", "aac",
		paths.Final,
	)
	return args
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
