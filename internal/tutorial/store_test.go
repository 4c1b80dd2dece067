package tutorial

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestPathsFor(t *testing.T) {
	p := PathsFor("/data/tutorials", "abc123")

	want := map[string]string{
		"Dir":      "/data/tutorials/abc123",
		"Screen":   "/data/tutorials/abc123/screen.webm",
		"Voice":    "/data/tutorials/abc123/voice.mp3",
		"Final":    "/data/tutorials/abc123/final.mp4",
		"Script":   "/data/tutorials/abc123/script.json",
		"Meta":     "/data/tutorials/abc123/meta.json",
		"Overlays": "/data/tutorials/abc123/overlays",
	}
	got := map[string]string{
		"Dir":      p.Dir,
		"Screen":   p.Screen,
		"Voice":    p.Voice,
		"Final":    p.Final,
		"Script":   p.Script,
		"Meta":     p.Meta,
		"Overlays": p.Overlays,
	}

	for name, w := range want {
		if got[name] != filepath.FromSlash(w) {
			t.Errorf("%s = %q, want %q", name, got[name], w)
		}
	}
}

func TestStoreCreateAndRead(t *testing.T) {
	store := NewStore(t.TempDir())

	meta, err := store.Create("Rank Predictor Walkthrough")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if meta.ID == "" {
		t.Error("Create() returned empty id")
	}
	if meta.Status != StatusScreenUploaded {
		t.Errorf("Status = %q, want %q", meta.Status, StatusScreenUploaded)
	}
	if meta.VoiceMode != VoiceModeAI {
		t.Errorf("VoiceMode = %q, want %q", meta.VoiceMode, VoiceModeAI)
	}

	got, err := store.Read(meta.ID)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if got.Title != "Rank Predictor Walkthrough" {
		t.Errorf("Title = %q", got.Title)
	}
}

func TestStoreCreateDefaultsTitle(t *testing.T) {
	store := NewStore(t.TempDir())

	meta, err := store.Create("")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if meta.Title != "Untitled Tutorial" {
		t.Errorf("Title = %q, want Untitled Tutorial", meta.Title)
	}
}

func TestStoreReadNotFound(t *testing.T) {
	store := NewStore(t.TempDir())

	if _, err := store.Read("missing-id"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Read() error = %v, want ErrNotFound", err)
	}
}

func TestStoreUpdatePreservesUnrelatedFields(t *testing.T) {
	store := NewStore(t.TempDir())

	meta, err := store.Create("Counseling Guide")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if _, err := store.Update(meta.ID, func(m *Metadata) {
		m.VoiceMode = VoiceModeMock
		m.Status = StatusVoiceReady
	}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := store.Update(meta.ID, func(m *Metadata) {
		m.Status = StatusSynced
		m.FinalURL = "/data/tutorials/" + meta.ID + "/final.mp4"
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if got.Title != "Counseling Guide" {
		t.Errorf("Title = %q, want preserved", got.Title)
	}
	if got.VoiceMode != VoiceModeMock {
		t.Errorf("VoiceMode = %q, want preserved MOCK", got.VoiceMode)
	}
	if got.Status != StatusSynced {
		t.Errorf("Status = %q, want SYNCED", got.Status)
	}
}

func TestStoreUpdateNotFound(t *testing.T) {
	store := NewStore(t.TempDir())

	if _, err := store.Update("nope", func(m *Metadata) {}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
}

func TestNewOverlayAssetName(t *testing.T) {
	name := NewOverlayAssetName("sticker.PNG")

	if !strings.HasSuffix(name, ".png") {
		t.Errorf("name = %q, want .png suffix", name)
	}
	if !strings.Contains(name, "_") {
		t.Errorf("name = %q, want timestamp_random form", name)
	}

	other := NewOverlayAssetName("sticker.PNG")
	if name == other {
		t.Error("two generated names collided")
	}
}

func TestNewOverlayAssetNameNoExtension(t *testing.T) {
	if name := NewOverlayAssetName("image"); !strings.HasSuffix(name, ".png") {
		t.Errorf("name = %q, want .png fallback", name)
	}
}
