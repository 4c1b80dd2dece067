package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/browser"

	"neetstudio/internal/publish"
	"neetstudio/pkg/config"
)

const callbackAddr = ":8085"

var (
	authInfoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	authSuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	authErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

func runAuth() {
	flag.Parse()

	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Println(authErrorStyle.Render(fmt.Sprintf("Failed to load config: %v", err)))
		os.Exit(1)
	}

	if cfg.YouTubeClientID == "" || cfg.YouTubeClientSecret == "" {
		fmt.Println(authErrorStyle.Render("YOUTUBE_CLIENT_ID and YOUTUBE_CLIENT_SECRET must be set in .env"))
		os.Exit(1)
	}

	auth := publish.NewYouTubeAuth(
		cfg.YouTubeClientID,
		cfg.YouTubeClientSecret,
		cfg.Publish.YouTube.TokenPath,
		"http://localhost:8085/callback",
	)

	if err := runYouTubeAuth(ctx, auth); err != nil {
		fmt.Println(authErrorStyle.Render(fmt.Sprintf("Authentication failed: %v", err)))
		os.Exit(1)
	}

	fmt.Println(authSuccessStyle.Render("✓ YouTube authentication complete"))
	fmt.Println(authSuccessStyle.Render("  Token saved to: " + cfg.Publish.YouTube.TokenPath))
}

// runYouTubeAuth runs the OAuth loopback flow: open the consent page in a
// browser, catch the redirect on a local listener, exchange the code.
func runYouTubeAuth(ctx context.Context, auth *publish.YouTubeAuth) error {
	codeChan := make(chan string, 1)
	errChan := make(chan error, 1)

	listener, err := net.Listen("tcp", callbackAddr)
	if err != nil {
		return fmt.Errorf("failed to start callback server: %w", err)
	}

	server := &http.Server{
		ReadHeaderTimeout: 10 * time.Second,
	}
	server.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/callback" {
			http.NotFound(w, r)
			return
		}

		code := r.URL.Query().Get("code")
		if code == "" {
			errChan <- fmt.Errorf("no code in callback")
			_, _ = fmt.Fprintf(w, "<html><body><h1>Error</h1><p>No authorization code received.</p></body></html>")
			return
		}

		codeChan <- code
		_, _ = fmt.Fprintf(w, "<html><body><h1>Success!</h1><p>You can close this window and return to the terminal.</p></body></html>")
	})

	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	authURL := auth.GetAuthURL()
	fmt.Println(authInfoStyle.Render("\nOpening browser for YouTube authentication..."))
	fmt.Println(authInfoStyle.Render("If browser doesn't open, visit:\n" + authURL))

	_ = browser.OpenURL(authURL)

	fmt.Println(authInfoStyle.Render("\nWaiting for authentication..."))

	select {
	case code := <-codeChan:
		return auth.Exchange(ctx, code)
	case err := <-errChan:
		return err
	case <-time.After(5 * time.Minute):
		return fmt.Errorf("authentication timed out")
	}
}
