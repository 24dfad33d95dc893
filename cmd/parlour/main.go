package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"victorian-room/config"
	"victorian-room/core"
	"victorian-room/internal/logger"
	"victorian-room/internal/opengl"
	"victorian-room/internal/window"
	"victorian-room/renderer"
	"victorian-room/scene"
)

var clearColor = core.Color{R: 0.05, G: 0.05, B: 0.08, A: 1}

func main() {
	configPath := flag.String("config", "configs/parlour.yaml", "path to the YAML config")
	logLevel := flag.String("log-level", "", "debug, info, warn or error (overrides the config)")
	logFormat := flag.String("log-format", "", "console or json (overrides the config)")
	writeConfig := flag.String("write-config", "", "write the effective config to this path and exit")
	flag.Parse()

	cfg, cfgErr := config.LoadConfig(*configPath)
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}

	sync, err := logger.Init(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(2)
	}
	defer sync()

	if cfgErr != nil {
		logger.Log.Warn("Config not loaded", zap.String("path", *configPath), zap.Error(cfgErr))
	}

	if *writeConfig != "" {
		if err := config.SaveConfig(cfg, *writeConfig); err != nil {
			logger.Log.Fatal("Write config", zap.Error(err))
		}
		logger.Log.Info("Config written", zap.String("path", *writeConfig))
		return
	}

	if err := cfg.Validate(); err != nil {
		logger.Log.Fatal("Invalid config", zap.Error(err))
	}

	if err := run(cfg); err != nil {
		logger.Log.Fatal("Parlour stopped", zap.Error(err))
	}
}

func run(cfg *config.Config) error {
	windowConfig := window.DefaultConfig()
	windowConfig.Title = cfg.Window.Title
	windowConfig.Width = cfg.Window.Width
	windowConfig.Height = cfg.Window.Height
	windowConfig.VSync = cfg.Window.VSync
	windowConfig.Fullscreen = cfg.Window.Fullscreen

	win, err := window.New(windowConfig)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	defer win.Destroy()

	scene.MaxTextureSize = cfg.Assets.MaxTextureSize
	search := cfg.Assets.SearchPaths

	gpu, err := opengl.NewRenderer(opengl.Config{
		ShadowResolution: cfg.Shadow.Resolution,
		ClearColor:       clearColor,
		SmokeTexture:     scene.NewSmokeTexture(cfg.Smoke.Texture),
		FlameTexture:     loadTexture(search, cfg.Flame.Texture),
	})
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	defer gpu.Destroy()

	roomSpec := scene.DefaultRoomSpec()
	roomSpec.Width = cfg.Room.Width
	roomSpec.Height = cfg.Room.Height
	roomSpec.Depth = cfg.Room.Depth

	reg := scene.NewMaterialRegistry()
	registerRoomMaterials(reg, cfg.Assets)
	props := loadProps(reg, cfg)
	if err := gpu.SetMaterials(reg); err != nil {
		logger.Log.Warn("Some materials lost their texture", zap.Error(err))
	}

	smoke, err := scene.NewSmokeEmitter(scene.SmokeSettings{
		Origin:     cfg.Smoke.Origin.Vec(),
		Capacity:   cfg.Smoke.Capacity,
		Interval:   cfg.Smoke.Interval,
		Lifetime:   cfg.Smoke.Lifetime,
		LifeJitter: cfg.Smoke.LifeJitter,
		Seed:       cfg.Smoke.Seed,
	})
	if err != nil {
		return fmt.Errorf("smoke: %w", err)
	}

	engine := renderer.NewRenderEngine(gpu, &renderer.Scene{
		Room:   scene.BuildRoom(roomSpec),
		Window: scene.BuildWindowPane(roomSpec),
		Props:  props,
		Smoke:  smoke,
		Flame:  scene.NewFlame(cfg.Flame.Position.Vec(), cfg.Flame.BaseSize),
		Sun:    scene.NewSun(cfg.Lighting.SunPosition.Vec(), cfg.Lighting.SunTarget.Vec()),
		Frustum: scene.ShadowFrustum{
			HalfExtent: cfg.Shadow.HalfExtent,
			Near:       cfg.Shadow.Near,
			Far:        cfg.Shadow.Far,
		},
	})
	engine.SmokeStep = cfg.Smoke.FixedStep

	width, height := win.GetFramebufferSize()
	camera := scene.NewCamera(
		cfg.Camera.Position.Vec(),
		mgl32.DegToRad(cfg.Camera.FOV),
		float32(width)/float32(max(height, 1)),
		cfg.Camera.Near,
		cfg.Camera.Far,
	)
	controls := Controls{
		MoveSpeed:      cfg.Camera.MoveSpeed,
		TurnSpeed:      cfg.Camera.TurnSpeed,
		BrightnessRate: cfg.Lighting.BrightnessRate,
	}

	fc := &scene.FrameContext{
		Time:             float32(win.Time()),
		Camera:           camera,
		GlobalBrightness: cfg.Lighting.GlobalBrightness,
		LocalBrightness:  cfg.Lighting.LocalBrightness,
	}

	logger.Log.Info("Parlour ready",
		zap.Int("props", len(props)),
		zap.Int("materials", reg.Len()),
		zap.Int("shadow_resolution", cfg.Shadow.Resolution))

	frames := 0
	lastTitle := time.Now()
	for !win.ShouldClose() {
		win.PollEvents()
		fc.Advance(float32(win.Time()))
		fc.Width, fc.Height = win.GetFramebufferSize()

		if controls.Update(win, fc, fc.Delta) {
			win.Close()
		}

		engine.Frame(fc)
		win.SwapBuffers()

		frames++
		if elapsed := time.Since(lastTitle); elapsed >= time.Second {
			fps := int(float64(frames) / elapsed.Seconds())
			win.SetTitle(statusTitle(cfg.Window.Title, fps, fc, engine.Stats()))
			logger.Log.Debug("Frame stats",
				zap.Int("fps", fps),
				zap.Any("stats", engine.Stats()))
			frames = 0
			lastTitle = time.Now()
		}
	}

	logger.Log.Info("Exiting")
	return nil
}
