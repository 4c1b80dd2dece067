// Package app wires the tutorial pipeline together and exposes the
// operations the HTTP server and CLI both drive.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"neetstudio/internal/overlay"
	"neetstudio/internal/publish"
	"neetstudio/internal/script"
	"neetstudio/internal/tutorial"
	"neetstudio/internal/video"
	"neetstudio/internal/voice"
)

var (
	ErrNotSynced          = errors.New("tutorial has no final video yet")
	ErrUnknownPlatform    = errors.New("unknown publish platform")
	ErrPublishUnavailable = errors.New("publishing is not configured")
)

// Service owns one tutorial pipeline: ingest, script, voice, sync, publish.
type Service struct {
	store      *tutorial.Store
	syncer     *video.Syncer
	scripts    *script.Generator
	voice      voice.Provider
	voiceMock  bool
	mockVoice  voice.Provider
	publishers map[string]publish.Publisher
	tempDir    string

	privacy     string
	defaultTags []string
}

func (s *Service) Store() *tutorial.Store {
	return s.store
}

// Get returns a tutorial's metadata record.
func (s *Service) Get(id string) (*tutorial.Metadata, error) {
	return s.store.Read(id)
}

// CreateTutorial registers a new tutorial and streams the screen recording
// to disk.
func (s *Service) CreateTutorial(title string, screen io.Reader) (*tutorial.Metadata, error) {
	meta, err := s.store.Create(title)
	if err != nil {
		return nil, err
	}

	if err := s.stageFile(s.store.Paths(meta.ID).Screen, screen); err != nil {
		return nil, fmt.Errorf("save screen recording: %w", err)
	}

	slog.Info("screen recording uploaded", "tutorialId", meta.ID, "title", meta.Title)
	return meta, nil
}

// GenerateScript produces the narration script for a tutorial and persists
// it. The returned flag reports whether the canned fallback was used.
func (s *Service) GenerateScript(ctx context.Context, id string) (*script.Script, bool, error) {
	meta, err := s.store.Read(id)
	if err != nil {
		return nil, false, err
	}

	scr, mock, err := s.scripts.Generate(ctx, meta.Title)
	if err != nil {
		return nil, false, err
	}

	if err := scr.Save(s.store.Paths(id).Script); err != nil {
		return nil, false, err
	}

	if _, err := s.store.Update(id, func(m *tutorial.Metadata) {
		m.Status = tutorial.StatusScriptReady
	}); err != nil {
		return nil, false, err
	}

	return scr, mock, nil
}

// GenerateVoice synthesizes the voice track from the given script lines, or
// from the stored script when none are passed. A rejected API key downgrades
// to the mock tone instead of failing the pipeline.
func (s *Service) GenerateVoice(ctx context.Context, id string, lines []script.Segment) (tutorial.VoiceMode, error) {
	if _, err := s.store.Read(id); err != nil {
		return "", err
	}

	scr := &script.Script{Segments: lines}
	if len(lines) == 0 {
		stored, err := script.Load(s.store.Paths(id).Script)
		if err != nil {
			return "", fmt.Errorf("no script lines given and none stored: %w", err)
		}
		scr = stored
	}

	mode := tutorial.VoiceModeAI
	if s.voiceMock {
		mode = tutorial.VoiceModeMock
	}
	audio, err := s.voice.Synthesize(ctx, scr.JoinText())
	if errors.Is(err, voice.ErrUnauthorized) {
		slog.Warn("voice provider rejected key, generating test tone", "tutorialId", id)
		mode = tutorial.VoiceModeMock
		audio, err = s.mockVoice.Synthesize(ctx, scr.JoinText())
	}
	if err != nil {
		return "", fmt.Errorf("synthesize voice: %w", err)
	}

	if err := os.WriteFile(s.store.Paths(id).Voice, audio, 0644); err != nil {
		return "", fmt.Errorf("save voice track: %w", err)
	}

	if _, err := s.store.Update(id, func(m *tutorial.Metadata) {
		m.Status = tutorial.StatusVoiceReady
		m.VoiceMode = mode
	}); err != nil {
		return "", err
	}

	return mode, nil
}

// UploadVoice stores a human-recorded voice track.
func (s *Service) UploadVoice(id string, r io.Reader) error {
	if _, err := s.store.Read(id); err != nil {
		return err
	}

	if err := s.stageFile(s.store.Paths(id).Voice, r); err != nil {
		return fmt.Errorf("save voice track: %w", err)
	}

	_, err := s.store.Update(id, func(m *tutorial.Metadata) {
		m.Status = tutorial.StatusVoiceReady
		m.VoiceMode = tutorial.VoiceModeManual
	})
	return err
}

// UploadOverlay stores an overlay image asset and returns the generated
// filename the client must reference in sync requests.
func (s *Service) UploadOverlay(id, originalName string, r io.Reader) (string, error) {
	if _, err := s.store.Read(id); err != nil {
		return "", err
	}

	dir, err := s.store.EnsureOverlayDir(id)
	if err != nil {
		return "", err
	}

	name := tutorial.NewOverlayAssetName(originalName)
	if err := s.stageFile(filepath.Join(dir, name), r); err != nil {
		return "", fmt.Errorf("save overlay asset: %w", err)
	}
	return name, nil
}

// SyncParams is a sync request as it arrives from the client, with overlays
// still in their raw wire form.
type SyncParams struct {
	ID            string
	Overlays      []overlay.Raw
	TrimStart     float64
	TrimEnd       float64
	PreviewWidth  float64
	PreviewHeight float64
}

// Sync composites overlays onto the screen recording and muxes the voice
// track. The result's skip list covers both malformed overlays and overlays
// whose image assets were missing.
func (s *Service) Sync(ctx context.Context, params SyncParams) (*video.SyncResult, error) {
	overlays, skipped := overlay.Normalize(params.Overlays)

	result, err := s.syncer.Sync(ctx, video.SyncRequest{
		ID:        params.ID,
		Overlays:  overlays,
		TrimStart: params.TrimStart,
		TrimEnd:   params.TrimEnd,
		Preview:   video.PreviewSize{Width: params.PreviewWidth, Height: params.PreviewHeight},
	})
	if err != nil {
		return nil, err
	}

	result.SkippedOverlays = append(skipped, result.SkippedOverlays...)
	return result, nil
}

// Publish pushes the final video to the named platform.
func (s *Service) Publish(ctx context.Context, id, platform string) (*publish.Response, error) {
	if len(s.publishers) == 0 {
		return nil, ErrPublishUnavailable
	}

	pub, ok := s.publishers[platform]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlatform, platform)
	}

	meta, err := s.store.Read(id)
	if err != nil {
		return nil, err
	}
	if meta.Status != tutorial.StatusSynced {
		return nil, ErrNotSynced
	}

	resp, err := pub.Publish(ctx, publish.Request{
		FilePath:    s.store.Paths(id).Final,
		TutorialID:  id,
		Title:       meta.Title,
		Description: "Tutorial: " + meta.Title,
		Tags:        s.defaultTags,
		Privacy:     s.privacy,
	})
	if err != nil {
		return nil, fmt.Errorf("publish to %s: %w", platform, err)
	}

	slog.Info("tutorial published", "tutorialId", id, "platform", platform, "url", resp.URL)
	return resp, nil
}

// Platforms lists the configured publish destinations.
func (s *Service) Platforms() []string {
	names := make([]string, 0, len(s.publishers))
	for name := range s.publishers {
		names = append(names, name)
	}
	return names
}

// stageFile spools an upload into the temp directory first, then moves it to
// its final path, so a dropped connection never leaves a truncated media file
// where the pipeline would read it. Without a temp dir it writes directly.
func (s *Service) stageFile(dest string, r io.Reader) error {
	if s.tempDir == "" {
		return writeFile(dest, r)
	}

	tmp, err := os.CreateTemp(s.tempDir, "upload-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), dest)
}

func writeFile(path string, r io.Reader) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if _, err := io.Copy(f, r); err != nil {
		return err
	}
	return nil
}
