package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"neetstudio/internal/publish"
	"neetstudio/internal/script"
	"neetstudio/internal/tutorial"
	"neetstudio/internal/video"
	"neetstudio/internal/voice"
	"neetstudio/pkg/config"
	"neetstudio/pkg/prompts"
)

// Build assembles the service from configuration. Missing API keys degrade
// to mock providers; missing publish credentials just leave that platform
// off the publisher list.
func Build(ctx context.Context, cfg *config.Config) (*Service, error) {
	if err := os.MkdirAll(cfg.Server.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	if cfg.Server.TempDir != "" {
		if err := os.MkdirAll(cfg.Server.TempDir, 0755); err != nil {
			return nil, fmt.Errorf("create temp dir: %w", err)
		}
	}

	p, err := prompts.Load()
	if err != nil {
		return nil, fmt.Errorf("load prompts: %w", err)
	}

	generator, err := script.NewGenerator(cfg.GroqAPIKey, cfg.Script.Model, p, cfg.Script.SegmentCount, cfg.Script.DurationSeconds)
	if err != nil {
		return nil, fmt.Errorf("create script generator: %w", err)
	}
	if generator.Mock() {
		slog.Warn("GROQ_API_KEY not set, script generation uses canned scripts")
	}

	var voiceProvider voice.Provider = voice.NewMockProvider()
	voiceMock := true
	if cfg.OpenAIAPIKey != "" {
		voiceProvider = voice.NewOpenAIClient(cfg.OpenAIAPIKey, voice.OpenAIOptions{
			Model: cfg.Voice.Model,
			Voice: cfg.Voice.Name,
			Speed: cfg.Voice.Speed,
		})
		voiceMock = false
	} else {
		slog.Warn("OPENAI_API_KEY not set, voice generation uses a test tone")
	}

	store := tutorial.NewStore(cfg.Server.DataDir)
	prober := video.NewProber(cfg.Video.FFprobePath)
	syncer := video.NewSyncer(
		cfg.Video.FFmpegPath,
		cfg.Video.Preset,
		time.Duration(cfg.Video.SyncTimeoutMinutes)*time.Minute,
		prober,
		store,
	)

	publishers := map[string]publish.Publisher{}
	if cfg.Publish.GCS.Enabled && cfg.GCSBucket != "" {
		gcs, err := publish.NewGCSPublisher(ctx, cfg.GCSBucket, cfg.Publish.GCS.Prefix)
		if err != nil {
			return nil, fmt.Errorf("create gcs publisher: %w", err)
		}
		publishers[gcs.Platform()] = gcs
	}
	if cfg.YouTubeClientID != "" && cfg.YouTubeClientSecret != "" {
		auth := publish.NewYouTubeAuth(
			cfg.YouTubeClientID,
			cfg.YouTubeClientSecret,
			cfg.Publish.YouTube.TokenPath,
			"http://localhost:8085/callback",
		)
		yt := publish.NewYouTubePublisher(auth)
		publishers[yt.Platform()] = yt
	}

	return &Service{
		store:       store,
		syncer:      syncer,
		scripts:     generator,
		voice:       voiceProvider,
		voiceMock:   voiceMock,
		mockVoice:   voice.NewMockProvider(),
		publishers:  publishers,
		privacy:     cfg.Publish.YouTube.PrivacyStatus,
		defaultTags: cfg.Publish.YouTube.DefaultTags,
		tempDir:     cfg.Server.TempDir,
	}, nil
}
