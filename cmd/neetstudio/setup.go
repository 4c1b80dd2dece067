package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).MarginBottom(1)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
)

func runSetup() {
	fmt.Println(titleStyle.Render("🎥 NEET Studio Setup"))

	steps := []struct {
		name string
		fn   func() error
	}{
		{"Checking tools", checkTools},
		{"Creating directories", createDirectories},
		{"Configuring environment", configureEnv},
	}

	for _, step := range steps {
		if err := step.fn(); err != nil {
			fmt.Println(warnStyle.Render(fmt.Sprintf("%s: %v", step.name, err)))
			os.Exit(1)
		}
	}

	fmt.Println(successStyle.Render("\nSetup complete. Run: neetstudio serve"))
}

func checkTools() error {
	missing := []string{}
	for _, tool := range []string{"ffmpeg", "ffprobe"} {
		err := spinner.New().
			Title(fmt.Sprintf("Checking %s...", tool)).
			Action(func() {
				if !commandExists(tool) {
					missing = append(missing, tool)
				}
			}).
			Run()
		if err != nil {
			return err
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required tools: %s (install ffmpeg and retry)", strings.Join(missing, ", "))
	}

	fmt.Println(successStyle.Render("✓ ffmpeg and ffprobe found"))
	return nil
}

func createDirectories() error {
	dirs := []string{"data/tutorials", "data/temp_uploads"}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	fmt.Println(successStyle.Render("✓ Created directories"))
	return nil
}

func configureEnv() error {
	if _, err := os.Stat(".env"); err == nil {
		var overwrite bool
		if err := huh.NewConfirm().
			Title("Found existing .env file").
			Description("Overwrite?").
			Value(&overwrite).
			Run(); err != nil {
			return err
		}
		if !overwrite {
			fmt.Println(infoStyle.Render("Kept existing .env"))
			return nil
		}
	}

	env := make(map[string]string)

	if err := configureKeys(env); err != nil {
		return err
	}
	if err := configurePublishing(env); err != nil {
		return err
	}

	return writeEnvFile(env)
}

func configureKeys(env map[string]string) error {
	var groqKey, openAIKey string

	if err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Groq API key").
				Description("Used for script generation. Leave empty to use canned Hinglish scripts.").
				EchoMode(huh.EchoModePassword).
				Value(&groqKey),
			huh.NewInput().
				Title("OpenAI API key").
				Description("Used for voice synthesis. Leave empty to use a test tone.").
				EchoMode(huh.EchoModePassword).
				Value(&openAIKey),
		),
	).Run(); err != nil {
		return err
	}

	if groqKey != "" {
		env["GROQ_API_KEY"] = groqKey
	} else {
		fmt.Println(warnStyle.Render("○ Script generation will use canned scripts"))
	}
	if openAIKey != "" {
		env["OPENAI_API_KEY"] = openAIKey
	} else {
		fmt.Println(warnStyle.Render("○ Voice generation will use a test tone"))
	}

	return nil
}

func configurePublishing(env map[string]string) error {
	var setupPublish bool
	if err := huh.NewConfirm().
		Title("Configure publishing?").
		Description("YouTube uploads and Cloud Storage archival").
		Value(&setupPublish).
		Run(); err != nil {
		return err
	}
	if !setupPublish {
		return nil
	}

	var clientID, clientSecret, bucket string
	if err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("YouTube OAuth client ID").
				Value(&clientID),
			huh.NewInput().
				Title("YouTube OAuth client secret").
				EchoMode(huh.EchoModePassword).
				Value(&clientSecret),
			huh.NewInput().
				Title("GCS bucket").
				Description("Bucket for published videos. Leave empty to skip.").
				Value(&bucket),
		),
	).Run(); err != nil {
		return err
	}

	if clientID != "" && clientSecret != "" {
		env["YOUTUBE_CLIENT_ID"] = clientID
		env["YOUTUBE_CLIENT_SECRET"] = clientSecret
		fmt.Println(infoStyle.Render("Run 'neetstudio auth' after setup to complete the OAuth flow"))
	}
	if bucket != "" {
		env["GCS_BUCKET"] = bucket
	}

	return nil
}

func writeEnvFile(env map[string]string) error {
	var b strings.Builder
	for key, value := range env {
		fmt.Fprintf(&b, "%s=%s\n", key, value)
	}

	if err := os.WriteFile(".env", []byte(b.String()), 0600); err != nil {
		return fmt.Errorf("write .env: %w", err)
	}

	fmt.Println(successStyle.Render("✓ Wrote .env"))
	return nil
}

func commandExists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
