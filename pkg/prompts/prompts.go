package prompts

import (
	"bytes"
	"fmt"
	"os"
	"text/template"

	"gopkg.in/yaml.v3"
)

const defaultPromptsPath = "prompts.yaml"

const defaultSystemScript = "You are a NEET mentor recording voice-overs for screen-recorded tutorials " +
	"of a college predictor tool. You speak simple Hinglish with a calm, motivating tone. " +
	"Your audience is NEET UG aspirants. Always respond with JSON."

const defaultScriptTutorial = `Generate a spoken tutorial script for a video titled "{{.Title}}".
Explain step-by-step what the student is typically seeing in such a tool.
Format: JSON object with a "segments" array of objects carrying "start" (seconds, approximate), "end" and "text".
Generate {{.SegmentCount}} segments for a {{.DurationSeconds}}-second video.`

type Prompts struct {
	System SystemPrompts `yaml:"system"`
	Script ScriptPrompts `yaml:"script"`
}

type SystemPrompts struct {
	Script string `yaml:"script"`
}

type ScriptPrompts struct {
	Tutorial string `yaml:"tutorial"`
}

type TutorialParams struct {
	Title           string
	SegmentCount    int
	DurationSeconds int
}

// Defaults returns the compiled-in prompt set used when no prompts.yaml
// overrides them.
func Defaults() *Prompts {
	return &Prompts{
		System: SystemPrompts{Script: defaultSystemScript},
		Script: ScriptPrompts{Tutorial: defaultScriptTutorial},
	}
}

func Load() (*Prompts, error) {
	return LoadFrom(defaultPromptsPath)
}

func LoadFrom(path string) (*Prompts, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Defaults(), nil
		}
		return nil, fmt.Errorf("failed to read prompts file: %w", err)
	}

	p := Defaults()
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("failed to parse prompts file: %w", err)
	}

	return p, nil
}

func (p *Prompts) RenderTutorial(params TutorialParams) (string, error) {
	return render(p.Script.Tutorial, params)
}

func render(text string, params any) (string, error) {
	tmpl, err := template.New("prompt").Parse(text)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, params); err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}

	return buf.String(), nil
}
