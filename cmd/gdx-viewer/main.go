package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/gdxcore/armature"
	"github.com/plus3/gdxcore/ecs"
	"github.com/plus3/gdxcore/ecs/debugui"
	debugui_ebiten "github.com/plus3/gdxcore/ecs/debugui/ebiten"
	"github.com/plus3/gdxcore/scene"
	"github.com/plus3/gdxcore/tween"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(lvl),
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		DisableCaller:    true,
	}
	return config.Build()
}

// load decodes every scene file and builds it into engine.
func load(engine *ecs.Engine, screen scene.Screen, paths []string) error {
	scenes, err := scene.LoadAll(context.Background(), paths...)
	if err != nil {
		return err
	}
	builder := scene.NewBuilder(engine, screen)
	for i, s := range scenes {
		if _, err := builder.Build(s); err != nil {
			return fmt.Errorf("build %s: %w", paths[i], err)
		}
	}
	return nil
}

func main() {
	width := flag.Int("width", 1280, "Window width in pixels.")
	height := flag.Int("height", 720, "Window height in pixels.")
	debug := flag.Bool("debug", true, "Overlay the ImGui entity inspector.")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn or error.")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] scene.yaml...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	logger, err := newLogger(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid log level: %v\n", err)
		os.Exit(2)
	}
	defer logger.Sync()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	screen := scene.Screen{Width: *width, Height: *height}
	engine := ecs.NewEngine(ecs.WithLogger(logger.Named("engine")))
	engine.Register(tween.NewSystem())
	engine.Register(armature.NewSystem())
	engine.Register(scene.NewSpriteSystem())

	if err := load(engine, screen, flag.Args()); err != nil {
		logger.Fatal("failed to load scenes", zap.Error(err))
	}

	viewer := NewViewer(engine)
	engine.Register(newControlSystem(engine, viewer))
	logger.Info("scenes loaded",
		zap.Strings("files", flag.Args()),
		zap.Int("entities", engine.Count()),
		zap.Int("cameras", len(viewer.cameras)),
	)

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	var game ebiten.Game = viewer
	if *debug {
		backend := ebitenbackend.NewEbitenBackend()
		backend.CreateWindow("gdx viewer", *width, *height)
		imgui.CurrentIO().SetIniFilename("")
		debugui.SpawnDebugUI(engine)
		game = debugui_ebiten.NewHost(engine, backend, viewer.Draw)
	} else {
		ebiten.SetWindowSize(*width, *height)
		ebiten.SetWindowTitle("gdx viewer")
	}

	if err := ebiten.RunGame(game); err != nil {
		logger.Fatal("viewer stopped", zap.Error(err))
	}
}
