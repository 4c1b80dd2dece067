package script

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.json")

	original := &Script{Segments: []Segment{
		{Start: 0, End: 5, Text: "Swagat hai."},
		{Start: 5, End: 12, Text: "Rank select karein."},
	}}

	if err := original.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(loaded.Segments) != 2 {
		t.Fatalf("segments = %d, want 2", len(loaded.Segments))
	}
	if loaded.Segments[1].Text != "Rank select karein." {
		t.Errorf("segment text = %q", loaded.Segments[1].Text)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestJoinText(t *testing.T) {
	tests := []struct {
		name     string
		segments []Segment
		want     string
	}{
		{
			name: "pauseBetweenSegments",
			segments: []Segment{
				{Text: "Pehla hissa."},
				{Text: "Doosra hissa."},
			},
			want: "Pehla hissa. ... Doosra hissa.",
		},
		{
			name: "emptySegmentsDropped",
			segments: []Segment{
				{Text: "Sirf yeh."},
				{Text: ""},
				{Text: "Aur yeh."},
			},
			want: "Sirf yeh. ... Aur yeh.",
		},
		{
			name:     "noSegments",
			segments: nil,
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Script{Segments: tt.segments}
			if got := s.JoinText(); got != tt.want {
				t.Errorf("JoinText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseResponse(t *testing.T) {
	tests := []struct {
		name         string
		content      string
		wantSegments int
		wantErr      bool
	}{
		{
			name:         "segmentsKey",
			content:      `{"segments":[{"start":0,"end":5,"text":"hi"}]}`,
			wantSegments: 1,
		},
		{
			name:         "legacyScriptKey",
			content:      `{"script":[{"start":0,"end":5,"text":"hi"},{"start":5,"end":9,"text":"bye"}]}`,
			wantSegments: 2,
		},
		{
			name:    "emptyObject",
			content: `{}`,
			wantErr: true,
		},
		{
			name:    "notJSON",
			content: `here is your script!`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := parseResponse(tt.content)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseResponse() error = %v", err)
			}
			if len(s.Segments) != tt.wantSegments {
				t.Errorf("segments = %d, want %d", len(s.Segments), tt.wantSegments)
			}
		})
	}
}

func TestMockScriptAlwaysValid(t *testing.T) {
	for i := 0; i < 20; i++ {
		s := mockScript()
		if len(s.Segments) == 0 {
			t.Fatal("mock script has no segments")
		}
		for _, seg := range s.Segments {
			if seg.Text == "" {
				t.Error("mock segment without text")
			}
			if seg.End <= seg.Start {
				t.Errorf("segment window [%v,%v] not increasing", seg.Start, seg.End)
			}
		}
	}
}

func TestIsUnauthorized(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "statusCode", err: errors.New("generate: error, status code: 401"), want: true},
		{name: "unauthorizedWording", err: errors.New("generate: Unauthorized"), want: true},
		{name: "invalidKeyWording", err: errors.New("generate: Invalid API Key provided"), want: true},
		{name: "serverError", err: errors.New("generate: error, status code: 500"), want: false},
		{name: "badResponse", err: errors.New("response contained no segments"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isUnauthorized(tt.err); got != tt.want {
				t.Errorf("isUnauthorized(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestGeneratorWithoutKeyUsesMock(t *testing.T) {
	g, err := NewGenerator("", "llama-3.3-70b-versatile", nil, 4, 30)
	if err != nil {
		t.Fatalf("NewGenerator() error = %v", err)
	}
	if !g.Mock() {
		t.Error("generator without key should report mock mode")
	}

	s, mock, err := g.Generate(t.Context(), "College Predictor Walkthrough")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !mock {
		t.Error("expected mock fallback")
	}
	if len(s.Segments) == 0 {
		t.Error("expected segments from mock script")
	}
}
