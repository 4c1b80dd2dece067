// Package script generates and persists the narration script for a
// tutorial. A script is an ordered list of timed segments stored as
// script.json next to the tutorial's media files.
package script

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Segment is one spoken passage with its approximate timeline placement in
// seconds.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

type Script struct {
	Segments []Segment `json:"segments"`
}

func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}

	var s Script
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	return &s, nil
}

func (s *Script) Save(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal script: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write script: %w", err)
	}
	return nil
}

// JoinText flattens the segments into the single passage handed to the
// voice synthesizer. A pause marker between segments gives the TTS engine a
// natural breath.
func (s *Script) JoinText() string {
	parts := make([]string, 0, len(s.Segments))
	for _, seg := range s.Segments {
		if seg.Text != "" {
			parts = append(parts, seg.Text)
		}
	}
	return strings.Join(parts, " ... ")
}
