package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"neetstudio/internal/app"
	"neetstudio/internal/overlay"
	"neetstudio/internal/server"
	"neetstudio/pkg/config"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	os.Args = append([]string{os.Args[0]}, os.Args[2:]...)

	switch cmd {
	case "serve":
		runServe()
	case "sync":
		runSync()
	case "setup":
		runSetup()
	case "auth":
		runAuth()
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Usage: neetstudio <command> [options]

Commands:
  serve       Run the tutorial studio HTTP server
  sync        Composite overlays and voice onto a tutorial from the CLI
  setup       Interactive setup wizard
  auth        Authenticate with YouTube (OAuth)

Sync options:
  -id         Tutorial id
  -overlays   Path to a JSON file with overlay descriptors
  -trim-start Trim start in seconds
  -trim-end   Trim end in seconds

Examples:
  neetstudio serve
  neetstudio sync -id 3f2a... -overlays overlays.json -trim-start 1.5
  neetstudio auth`)
}

func initLogging() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))
}

func runServe() {
	flag.Parse()
	initLogging()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	service, err := app.Build(ctx, cfg)
	if err != nil {
		slog.Error("Failed to build service", "error", err)
		os.Exit(1)
	}

	srv := server.New(service, cfg.Server.Addr, cfg.Server.DataDir, cfg.Server.MaxUploadMB)
	if err := srv.Run(ctx); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func runSync() {
	id := flag.String("id", "", "Tutorial id")
	overlaysPath := flag.String("overlays", "", "Path to JSON file with overlay descriptors")
	trimStart := flag.Float64("trim-start", 0, "Trim start in seconds")
	trimEnd := flag.Float64("trim-end", 0, "Trim end in seconds")
	previewWidth := flag.Float64("preview-width", 0, "Preview canvas width the overlays were authored on")
	previewHeight := flag.Float64("preview-height", 0, "Preview canvas height the overlays were authored on")
	flag.Parse()

	initLogging()

	if *id == "" {
		fmt.Println("Error: -id is required")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	service, err := app.Build(ctx, cfg)
	if err != nil {
		slog.Error("Failed to build service", "error", err)
		os.Exit(1)
	}

	var raws []overlay.Raw
	if *overlaysPath != "" {
		data, err := os.ReadFile(*overlaysPath)
		if err != nil {
			slog.Error("Failed to read overlays file", "error", err)
			os.Exit(1)
		}
		if err := json.Unmarshal(data, &raws); err != nil {
			slog.Error("Failed to parse overlays file", "error", err)
			os.Exit(1)
		}
	}

	result, err := service.Sync(ctx, app.SyncParams{
		ID:            *id,
		Overlays:      raws,
		TrimStart:     *trimStart,
		TrimEnd:       *trimEnd,
		PreviewWidth:  *previewWidth,
		PreviewHeight: *previewHeight,
	})
	if err != nil {
		slog.Error("Sync failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Sync complete", "url", result.URL, "took", result.Duration)
	for _, skipped := range result.SkippedOverlays {
		slog.Warn("Overlay skipped", "reason", skipped)
	}
}
