package main

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/golangdaddy/backroads/pkg/audio"
	"github.com/golangdaddy/backroads/pkg/config"
	"github.com/golangdaddy/backroads/pkg/game"
	"github.com/golangdaddy/backroads/pkg/input"
	"github.com/golangdaddy/backroads/pkg/logging"
	"github.com/golangdaddy/backroads/pkg/vehicle"
)

func main() {
	if err := config.Load("."); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg, err := config.Get()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.Development)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	if f := config.ConfigFile(); f != "" {
		logger.Info("config loaded", zap.String("file", f))
	}

	presets, err := loadPresets(cfg.PresetsFile)
	if err != nil {
		logger.Fatal("load presets", zap.String("file", cfg.PresetsFile), zap.Error(err))
	}

	bindings, err := input.DefaultBindings().WithOverrides(cfg.Bindings)
	if err != nil {
		logger.Fatal("key bindings", zap.Error(err))
	}

	var sink audio.Sink = audio.Nop{}
	if cfg.Audio.Enabled {
		sm := audio.NewSoundManager(logger)
		if err := sm.Initialize(); err != nil {
			logger.Warn("audio unavailable, running silent", zap.Error(err))
		} else {
			defer sm.Close()
			sink = sm
		}
	}

	g, err := game.NewGame(game.Deps{
		Config:  cfg,
		Logger:  logger,
		Input:   input.NewEbiten(bindings),
		Sink:    sink,
		Presets: presets,
	})
	if err != nil {
		logger.Fatal("start game", zap.Error(err))
	}

	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)

	logger.Info("starting", zap.Int("tps", cfg.TPS), zap.Int("presets", len(presets)))
	if err := ebiten.RunGame(g); err != nil {
		logger.Fatal("game loop", zap.Error(err))
	}
}

// loadPresets reads the preset file when one is configured, else the built-in cars
func loadPresets(path string) ([]vehicle.Preset, error) {
	if path == "" {
		return vehicle.DefaultPresets(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return vehicle.LoadPresets(f)
}
