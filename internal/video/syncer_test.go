package video

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"neetstudio/internal/tutorial"
)

func TestNewSyncerDefaults(t *testing.T) {
	s := NewSyncer("", "", 0, NewProber(""), tutorial.NewStore(t.TempDir()))

	if s.ffmpegPath != "ffmpeg" {
		t.Errorf("ffmpegPath = %q, want %q", s.ffmpegPath, "ffmpeg")
	}
	if s.preset != "fast" {
		t.Errorf("preset = %q, want %q", s.preset, "fast")
	}
	if s.urlPrefix != "/data/tutorials" {
		t.Errorf("urlPrefix = %q, want %q", s.urlPrefix, "/data/tutorials")
	}
}

func TestBuildSyncArgs(t *testing.T) {
	paths := tutorial.PathsFor("/data/tutorials", "abc")

	tests := []struct {
		name            string
		plan            *Plan
		trimStart       float64
		trimEnd         float64
		wantContains    []string
		wantNotContains []string
	}{
		{
			name: "noOverlaysNoTrim",
			plan: &Plan{out: baseStream},
			wantContains: []string{
				"-y",
				"-i /data/tutorials/abc/screen.webm",
				"-i /data/tutorials/abc/voice.mp3",
				"-map 0:v -map 1:a",
				"-shortest",
				"-c:v libx264 -preset fast -c:a aac",
				"/data/tutorials/abc/final.mp4",
			},
			wantNotContains: []string{
				"-filter_complex", "-ss", "-t ",
			},
		},
		{
			name: "overlaysMapFilterOutput",
			plan: &Plan{
				Inputs:  []string{"/data/tutorials/abc/overlays/pic.png"},
				filters: []string{"[2:v]scale=100:100[scaled0]", "[0:v][scaled0]overlay=0:0:enable='between(t,0.00,5.00)'[ov0]"},
				out:     "ov0",
			},
			wantContains: []string{
				"-i /data/tutorials/abc/overlays/pic.png",
				"-filter_complex",
				"-map [ov0] -map 1:a",
			},
			wantNotContains: []string{
				"-map 0:v",
			},
		},
		{
			name:      "trimWindowBecomesSeekAndDuration",
			plan:      &Plan{out: baseStream},
			trimStart: 2.5,
			trimEnd:   30,
			wantContains: []string{
				"-ss 2.50 -i /data/tutorials/abc/screen.webm",
				"-t 27.50",
			},
			wantNotContains: []string{
				"-shortest",
			},
		},
		{
			name:      "trimEndBeforeStartFallsBackToShortest",
			plan:      &Plan{out: baseStream},
			trimStart: 10,
			trimEnd:   5,
			wantContains: []string{
				"-ss 10.00",
				"-shortest",
			},
			wantNotContains: []string{
				"-t ",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := buildSyncArgs("fast", paths, tt.plan, tt.trimStart, tt.trimEnd)
			joined := strings.Join(args, " ")

			for _, want := range tt.wantContains {
				if !strings.Contains(joined, want) {
					t.Errorf("args missing %q\ngot: %s", want, joined)
				}
			}
			for _, notWant := range tt.wantNotContains {
				if strings.Contains(joined, notWant) {
					t.Errorf("args should not contain %q\ngot: %s", notWant, joined)
				}
			}
		})
	}
}

func TestSyncUnknownTutorial(t *testing.T) {
	store := tutorial.NewStore(t.TempDir())
	s := NewSyncer("ffmpeg", "fast", time.Minute, NewProber(""), store)

	_, err := s.Sync(context.Background(), SyncRequest{ID: "nope"})
	if !errors.Is(err, tutorial.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestSyncMissingInputs(t *testing.T) {
	store := tutorial.NewStore(t.TempDir())
	meta, err := store.Create("Physics basics")
	if err != nil {
		t.Fatal(err)
	}

	s := NewSyncer("ffmpeg", "fast", time.Minute, NewProber(""), store)

	_, err = s.Sync(context.Background(), SyncRequest{ID: meta.ID})
	if !errors.Is(err, ErrMissingInput) {
		t.Errorf("err = %v, want ErrMissingInput", err)
	}
}

func TestSyncRejectsConcurrentRun(t *testing.T) {
	store := tutorial.NewStore(t.TempDir())
	meta, err := store.Create("Chemistry basics")
	if err != nil {
		t.Fatal(err)
	}

	s := NewSyncer("ffmpeg", "fast", time.Minute, NewProber(""), store)
	s.inFlight.Store(meta.ID, struct{}{})

	_, err = s.Sync(context.Background(), SyncRequest{ID: meta.ID})
	if !errors.Is(err, ErrSyncInProgress) {
		t.Errorf("err = %v, want ErrSyncInProgress", err)
	}
}
