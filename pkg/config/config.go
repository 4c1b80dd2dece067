package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultConfigPath      = "config.yaml"
	defaultListenAddr      = ":5000"
	defaultDataDir         = "./data/tutorials"
	defaultTempDir         = "./data/temp_uploads"
	defaultMaxUploadMB     = 200
	defaultFFmpegPath      = "ffmpeg"
	defaultFFprobePath     = "ffprobe"
	defaultPreset          = "fast"
	defaultSyncTimeoutMin  = 15
	defaultScriptModel     = "llama-3.3-70b-versatile"
	defaultSegmentCount    = 4
	defaultScriptDuration  = 30
	defaultVoiceModel      = "tts-1"
	defaultVoiceName       = "alloy"
	defaultVoiceSpeed      = 1.0
	defaultTokenPath       = "./youtube_token.json"
	defaultPrivacyStatus   = "unlisted"
	defaultGCSPrefix       = "tutorials"
	secretPrefix           = "sm://"
)

type Config struct {
	GroqAPIKey          string
	OpenAIAPIKey        string
	YouTubeClientID     string
	YouTubeClientSecret string
	GCSBucket           string

	Server  ServerConfig  `yaml:"server"`
	Script  ScriptConfig  `yaml:"script"`
	Voice   VoiceConfig   `yaml:"voice"`
	Video   VideoConfig   `yaml:"video"`
	Publish PublishConfig `yaml:"publish"`
}

type ServerConfig struct {
	Addr        string `yaml:"addr"`
	DataDir     string `yaml:"data_dir"`
	TempDir     string `yaml:"temp_dir"`
	MaxUploadMB int64  `yaml:"max_upload_mb"`
}

type ScriptConfig struct {
	Model           string `yaml:"model"`
	SegmentCount    int    `yaml:"segment_count"`
	DurationSeconds int    `yaml:"duration_seconds"`
}

type VoiceConfig struct {
	Model string  `yaml:"model"`
	Name  string  `yaml:"name"`
	Speed float64 `yaml:"speed"`
}

type VideoConfig struct {
	FFmpegPath         string `yaml:"ffmpeg_path"`
	FFprobePath        string `yaml:"ffprobe_path"`
	Preset             string `yaml:"preset"`
	SyncTimeoutMinutes int    `yaml:"sync_timeout_minutes"`
}

type PublishConfig struct {
	GCS     GCSConfig     `yaml:"gcs"`
	YouTube YouTubeConfig `yaml:"youtube"`
}

type GCSConfig struct {
	Enabled bool   `yaml:"enabled"`
	Prefix  string `yaml:"prefix"`
}

type YouTubeConfig struct {
	TokenPath     string   `yaml:"token_path"`
	PrivacyStatus string   `yaml:"privacy_status"`
	DefaultTags   []string `yaml:"default_tags"`
}

func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Warn("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		GroqAPIKey:          os.Getenv("GROQ_API_KEY"),
		OpenAIAPIKey:        os.Getenv("OPENAI_API_KEY"),
		YouTubeClientID:     os.Getenv("YOUTUBE_CLIENT_ID"),
		YouTubeClientSecret: os.Getenv("YOUTUBE_CLIENT_SECRET"),
		GCSBucket:           os.Getenv("GCS_BUCKET"),
	}

	loadYAMLConfig(cfg)
	applyDefaults(cfg)

	if err := resolveSecrets(ctx, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadYAMLConfig(cfg *Config) {
	data, err := os.ReadFile(defaultConfigPath)
	if err != nil {
		slog.Warn("No config.yaml found, using defaults")
		return
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		slog.Error("Failed to parse config.yaml", "error", err)
	}
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(cfg)
	applyScriptDefaults(cfg)
	applyVoiceDefaults(cfg)
	applyVideoDefaults(cfg)
	applyPublishDefaults(cfg)
}

func applyServerDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = defaultListenAddr
	}
	if cfg.Server.DataDir == "" {
		cfg.Server.DataDir = defaultDataDir
	}
	if cfg.Server.TempDir == "" {
		cfg.Server.TempDir = defaultTempDir
	}
	if cfg.Server.MaxUploadMB == 0 {
		cfg.Server.MaxUploadMB = defaultMaxUploadMB
	}
}

func applyScriptDefaults(cfg *Config) {
	if cfg.Script.Model == "" {
		cfg.Script.Model = defaultScriptModel
	}
	if cfg.Script.SegmentCount == 0 {
		cfg.Script.SegmentCount = defaultSegmentCount
	}
	if cfg.Script.DurationSeconds == 0 {
		cfg.Script.DurationSeconds = defaultScriptDuration
	}
}

func applyVoiceDefaults(cfg *Config) {
	if cfg.Voice.Model == "" {
		cfg.Voice.Model = defaultVoiceModel
	}
	if cfg.Voice.Name == "" {
		cfg.Voice.Name = defaultVoiceName
	}
	if cfg.Voice.Speed == 0 {
		cfg.Voice.Speed = defaultVoiceSpeed
	}
}

func applyVideoDefaults(cfg *Config) {
	if cfg.Video.FFmpegPath == "" {
		cfg.Video.FFmpegPath = defaultFFmpegPath
	}
	if cfg.Video.FFprobePath == "" {
		cfg.Video.FFprobePath = defaultFFprobePath
	}
	if cfg.Video.Preset == "" {
		cfg.Video.Preset = defaultPreset
	}
	if cfg.Video.SyncTimeoutMinutes == 0 {
		cfg.Video.SyncTimeoutMinutes = defaultSyncTimeoutMin
	}
}

func applyPublishDefaults(cfg *Config) {
	if cfg.Publish.GCS.Prefix == "" {
		cfg.Publish.GCS.Prefix = defaultGCSPrefix
	}
	if cfg.Publish.YouTube.TokenPath == "" {
		cfg.Publish.YouTube.TokenPath = defaultTokenPath
	}
	if cfg.Publish.YouTube.PrivacyStatus == "" {
		cfg.Publish.YouTube.PrivacyStatus = defaultPrivacyStatus
	}
	if len(cfg.Publish.YouTube.DefaultTags) == 0 {
		cfg.Publish.YouTube.DefaultTags = []string{"neet", "tutorial", "college predictor"}
	}
}

// resolveSecrets replaces sm://<resource> values with the secret payload from
// GCP Secret Manager. The resource is the full version name, e.g.
// projects/p/secrets/groq-api-key/versions/latest.
func resolveSecrets(ctx context.Context, cfg *Config) error {
	refs := []*string{
		&cfg.GroqAPIKey,
		&cfg.OpenAIAPIKey,
		&cfg.YouTubeClientID,
		&cfg.YouTubeClientSecret,
	}

	var client *secretmanager.Client
	for _, ref := range refs {
		if !strings.HasPrefix(*ref, secretPrefix) {
			continue
		}

		if client == nil {
			var err error
			client, err = secretmanager.NewClient(ctx)
			if err != nil {
				return fmt.Errorf("create secret manager client: %w", err)
			}
			defer func() { _ = client.Close() }()
		}

		name := strings.TrimPrefix(*ref, secretPrefix)
		resp, err := client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
		if err != nil {
			return fmt.Errorf("access secret %s: %w", name, err)
		}
		*ref = string(resp.GetPayload().GetData())
	}

	return nil
}
