package script

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"

	"github.com/conneroisu/groq-go"

	"neetstudio/pkg/prompts"
)

// Generator produces a narration script for a tutorial title. With an API
// key it asks the LLM; without one, or when the provider rejects the key, it
// falls back to a canned Hinglish script so the rest of the pipeline stays
// testable offline.
type Generator struct {
	client          *groq.Client
	model           groq.ChatModel
	prompts         *prompts.Prompts
	segmentCount    int
	durationSeconds int
}

func NewGenerator(apiKey, model string, p *prompts.Prompts, segmentCount, durationSeconds int) (*Generator, error) {
	g := &Generator{
		model:           groq.ChatModel(model),
		prompts:         p,
		segmentCount:    segmentCount,
		durationSeconds: durationSeconds,
	}

	if apiKey != "" {
		client, err := groq.NewClient(apiKey)
		if err != nil {
			return nil, fmt.Errorf("create groq client: %w", err)
		}
		g.client = client
	}

	return g, nil
}

// Mock reports whether the generator runs without a live LLM.
func (g *Generator) Mock() bool {
	return g.client == nil
}

// Generate returns a script for the given tutorial title. The second return
// value reports whether the canned fallback was used. Only a missing or
// rejected API key downgrades to the canned script; provider outages and
// malformed responses surface to the caller.
func (g *Generator) Generate(ctx context.Context, title string) (*Script, bool, error) {
	if g.client == nil {
		return mockScript(), true, nil
	}

	s, err := g.generate(ctx, title)
	if err != nil {
		if !isUnauthorized(err) {
			return nil, false, err
		}
		slog.Warn("llm rejected api key, falling back to canned script", "error", err)
		return mockScript(), true, nil
	}
	return s, false, nil
}

// isUnauthorized reports whether an LLM error is a credential rejection. The
// client surfaces HTTP failures as formatted strings, so this matches on the
// status code and the provider's wording.
func isUnauthorized(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "401") ||
		strings.Contains(msg, "unauthorized") ||
		strings.Contains(msg, "invalid api key")
}

func (g *Generator) generate(ctx context.Context, title string) (*Script, error) {
	prompt, err := g.prompts.RenderTutorial(prompts.TutorialParams{
		Title:           title,
		SegmentCount:    g.segmentCount,
		DurationSeconds: g.durationSeconds,
	})
	if err != nil {
		return nil, fmt.Errorf("render prompt: %w", err)
	}

	resp, err := g.client.ChatCompletion(ctx, groq.ChatCompletionRequest{
		Model: g.model,
		Messages: []groq.ChatCompletionMessage{
			{Role: groq.RoleSystem, Content: g.prompts.System.Script},
			{Role: groq.RoleUser, Content: prompt},
		},
		ResponseFormat: &groq.ChatResponseFormat{
			Type: "json_object",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response")
	}

	content := resp.Choices[0].Message.Content
	if content == "" {
		return nil, fmt.Errorf("empty response")
	}

	return parseResponse(content)
}

// parseResponse accepts the two shapes models actually return: segments
// under a "segments" key or under a legacy "script" key.
func parseResponse(content string) (*Script, error) {
	var wrapped struct {
		Segments []Segment `json:"segments"`
		Script   []Segment `json:"script"`
	}
	if err := json.Unmarshal([]byte(content), &wrapped); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	segments := wrapped.Segments
	if len(segments) == 0 {
		segments = wrapped.Script
	}
	if len(segments) == 0 {
		return nil, fmt.Errorf("response contained no segments")
	}

	return &Script{Segments: segments}, nil
}

var mockVariations = [][]Segment{
	{
		{Start: 0, End: 5, Text: "Swagat hai aapka NEET College Predictor mein."},
		{Start: 5, End: 12, Text: "Sabse pehle apna Rank aur Category select karein."},
		{Start: 12, End: 20, Text: "Ab 'Predict' button dabayein aur apne colleges dekhein."},
	},
	{
		{Start: 0, End: 4, Text: "Is tutorial mein hum Rank Analysis samjhenge."},
		{Start: 4, End: 10, Text: "Menu se 'Detailed Analysis' option chunen."},
		{Start: 10, End: 18, Text: "Yahan aap pichhle saalon ke cutoff trends dekh sakte hain."},
	},
	{
		{Start: 0, End: 5, Text: "Hello students! Aaj hum Counseling process dekhenge."},
		{Start: 5, End: 12, Text: "Counseling tab par click karke apne documents upload karein."},
		{Start: 12, End: 20, Text: "Verify hone ke baad aap choice filling start kar sakte hain."},
	},
}

func mockScript() *Script {
	variation := mockVariations[rand.Intn(len(mockVariations))]
	segments := make([]Segment, len(variation))
	copy(segments, variation)
	return &Script{Segments: segments}
}
