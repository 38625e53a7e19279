package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/assetforge/internal/assets"
	"git.home.luguber.info/inful/assetforge/internal/config"
	"git.home.luguber.info/inful/assetforge/internal/version"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"assetforge.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Build struct {
		Force  bool `short:"f" help:"Recompile every asset regardless of staleness"`
		DryRun bool `help:"Compute and report staleness without touching the output tree"`
	} `cmd:"" help:"Copy/compile assets into the output directory"`

	Discover struct{} `cmd:"" help:"List discovered asset files without writing"`

	Init struct {
		Force bool `help:"Overwrite existing configuration file"`
	} `cmd:"" help:"Initialize a new configuration file"`

	Version struct{} `cmd:"" help:"Print version information"`
}

func main() {
	kctx := kong.Parse(&CLI)

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch kctx.Command() {
	case "build":
		cfg, err := config.Load(CLI.Config)
		if err != nil {
			slog.Error("Failed to load configuration", "error", err)
			os.Exit(1)
		}
		if err := runBuild(ctx, cfg, assets.WriteOptions{Force: CLI.Build.Force, DryRun: CLI.Build.DryRun}); err != nil {
			slog.Error("Build failed", "error", err)
			os.Exit(1)
		}
	case "discover":
		cfg, err := config.Load(CLI.Config)
		if err != nil {
			slog.Error("Failed to load configuration", "error", err)
			os.Exit(1)
		}
		if err := runDiscover(cfg); err != nil {
			slog.Error("Discover failed", "error", err)
			os.Exit(1)
		}
	case "init":
		if err := runInit(CLI.Config, CLI.Init.Force); err != nil {
			slog.Error("Init failed", "error", err)
			os.Exit(1)
		}
		fmt.Printf("Created %s\n", CLI.Config)
	case "version":
		fmt.Printf("assetforge %s (commit %s, built %s)\n", version.Version, version.GitCommit, version.BuildTime)
	}
}
