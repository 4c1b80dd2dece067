package prompts

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadFrom(t *testing.T) {
	tmpDir := t.TempDir()

	promptsContent := `
system:
  script: "Custom system prompt"

script:
  tutorial: "Script for {{.Title}} with {{.SegmentCount}} segments"
`
	path := filepath.Join(tmpDir, "prompts.yaml")
	if err := os.WriteFile(path, []byte(promptsContent), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if p.System.Script != "Custom system prompt" {
		t.Errorf("System.Script = %q, want %q", p.System.Script, "Custom system prompt")
	}

	rendered, err := p.RenderTutorial(TutorialParams{Title: "Rank Analysis", SegmentCount: 3, DurationSeconds: 30})
	if err != nil {
		t.Fatalf("RenderTutorial() error = %v", err)
	}
	if rendered != "Script for Rank Analysis with 3 segments" {
		t.Errorf("RenderTutorial() = %q", rendered)
	}
}

func TestLoadFromMissingFileFallsBackToDefaults(t *testing.T) {
	p, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if p.System.Script == "" {
		t.Error("System.Script is empty, want compiled-in default")
	}

	rendered, err := p.RenderTutorial(TutorialParams{Title: "Counseling", SegmentCount: 4, DurationSeconds: 30})
	if err != nil {
		t.Fatalf("RenderTutorial() error = %v", err)
	}
	if !strings.Contains(rendered, "Counseling") {
		t.Errorf("RenderTutorial() = %q, want title substituted", rendered)
	}
	if !strings.Contains(rendered, "4 segments") {
		t.Errorf("RenderTutorial() = %q, want segment count substituted", rendered)
	}
}

func TestRenderTutorialBadTemplate(t *testing.T) {
	p := &Prompts{Script: ScriptPrompts{Tutorial: "{{.Broken"}}
	if _, err := p.RenderTutorial(TutorialParams{}); err == nil {
		t.Error("RenderTutorial() error = nil, want parse error")
	}
}
