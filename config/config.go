package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v2"
)

// Config represents the main configuration
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Camera   CameraConfig   `yaml:"camera"`
	Lighting LightingConfig `yaml:"lighting"`
	Shadow   ShadowConfig   `yaml:"shadow"`
	Room     RoomConfig     `yaml:"room"`
	Smoke    SmokeConfig    `yaml:"smoke"`
	Flame    FlameConfig    `yaml:"flame"`
	Assets   AssetsConfig   `yaml:"assets"`
	Props    []PropConfig   `yaml:"props"`
	Log      LogConfig      `yaml:"log"`
}

// Vec3 is a YAML-friendly 3-component vector, written as {x: .., y: .., z: ..}.
type Vec3 struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
	Z float32 `yaml:"z"`
}

func (v Vec3) Vec() mgl32.Vec3 {
	return mgl32.Vec3{v.X, v.Y, v.Z}
}

type WindowConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Title      string `yaml:"title"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// CameraConfig holds the starting pose and the controller speeds.
// Speeds are per second; FOV is in degrees.
type CameraConfig struct {
	Position  Vec3    `yaml:"position,flow"`
	FOV       float32 `yaml:"fov"`
	Near      float32 `yaml:"near"`
	Far       float32 `yaml:"far"`
	MoveSpeed float32 `yaml:"move_speed"`
	TurnSpeed float32 `yaml:"turn_speed"`
}

type LightingConfig struct {
	GlobalBrightness float32 `yaml:"global_brightness"`
	LocalBrightness  float32 `yaml:"local_brightness"`
	BrightnessRate   float32 `yaml:"brightness_rate"`
	SunPosition      Vec3    `yaml:"sun_position,flow"`
	SunTarget        Vec3    `yaml:"sun_target,flow"`
}

type ShadowConfig struct {
	Resolution int     `yaml:"resolution"`
	HalfExtent float32 `yaml:"half_extent"`
	Near       float32 `yaml:"near"`
	Far        float32 `yaml:"far"`
}

type RoomConfig struct {
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
	Depth  float32 `yaml:"depth"`
}

type SmokeConfig struct {
	Origin     Vec3    `yaml:"origin,flow"`
	Capacity   int     `yaml:"capacity"`
	Interval   float32 `yaml:"interval"`
	Lifetime   float32 `yaml:"lifetime"`
	LifeJitter float32 `yaml:"life_jitter"`
	// FixedStep, when > 0, replaces the frame delta for the smoke simulation.
	FixedStep float32 `yaml:"fixed_step"`
	Seed      int64   `yaml:"seed"` // 0 means random
	Texture   int     `yaml:"texture_size"`
}

type FlameConfig struct {
	Position Vec3    `yaml:"position,flow"`
	BaseSize float32 `yaml:"base_size"`
	Texture  string  `yaml:"texture"`
}

// AssetsConfig lists texture files relative to one of the search paths.
type AssetsConfig struct {
	SearchPaths    []string `yaml:"search_paths"`
	Wallpaper      string   `yaml:"wallpaper"`
	Floor          string   `yaml:"floor"`
	Plinth         string   `yaml:"plinth"`
	Cornice        string   `yaml:"cornice"`
	Door           string   `yaml:"door"`
	Window         string   `yaml:"window"`
	MaxTextureSize int      `yaml:"max_texture_size"`
}

// PropConfig places one model file in the room. RotationY is in degrees.
type PropConfig struct {
	Name      string  `yaml:"name"`
	Path      string  `yaml:"path"`
	Position  Vec3    `yaml:"position,flow"`
	Scale     float32 `yaml:"scale"`
	RotationY float32 `yaml:"rotation_y"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // console, json
}

// DefaultConfig creates a default configuration
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  1920,
			Height: 1080,
			Title:  "Victorian Room",
			VSync:  true,
		},
		Camera: CameraConfig{
			Position:  Vec3{0, 1.7, 0},
			FOV:       90,
			Near:      0.1,
			Far:       100,
			MoveSpeed: 0.54,
			TurnSpeed: 0.24,
		},
		Lighting: LightingConfig{
			GlobalBrightness: 3.0,
			LocalBrightness:  1.0,
			BrightnessRate:   0.3,
			SunPosition:      Vec3{10, 2, 3.5},
			SunTarget:        Vec3{0, 0, 0},
		},
		Shadow: ShadowConfig{
			Resolution: 2048,
			HalfExtent: 10,
			Near:       0.1,
			Far:        20,
		},
		Room: RoomConfig{
			Width:  6,
			Height: 3.5,
			Depth:  8,
		},
		Smoke: SmokeConfig{
			Origin:     Vec3{0.025, 1.06, -2.0},
			Capacity:   150,
			Interval:   0.03,
			Lifetime:   2.5,
			LifeJitter: 0.2,
			Texture:    256,
		},
		Flame: FlameConfig{
			Position: Vec3{-0.44, 1.515, -1.9},
			BaseSize: 0.12,
			Texture:  "img/flame.png",
		},
		Assets: AssetsConfig{
			SearchPaths:    []string{".", "assets", "../assets"},
			Wallpaper:      "img/papierpeint.jpg",
			Floor:          "img/parquetbois.jpg",
			Plinth:         "img/plinthe.jpg",
			Cornice:        "img/stuc.jpg",
			Door:           "img/portev.png",
			Window:         "img/window1024.png",
			MaxTextureSize: 4096,
		},
		Props: []PropConfig{
			{Name: "table", Path: "obj/old_table.obj", Position: Vec3{0, 0, -2}, Scale: 0.015},
			{Name: "frame", Path: "obj/SM_frame_01.obj", Position: Vec3{0, 1.8, -3.999}, Scale: 0.05},
			{Name: "ashtray", Path: "obj/objCigarrete.obj", Position: Vec3{0, 1, -2}, Scale: 0.05},
			{Name: "pipe", Path: "obj/Pipe.obj", Position: Vec3{0.15, 1, -2}, Scale: 0.05},
			{Name: "couch", Path: "obj/couch1.obj", Position: Vec3{1.5, 0, 3.4}, Scale: 0.3},
			{Name: "fireplace", Path: "obj/fireplace.obj", Position: Vec3{0, 0, -3.71}, Scale: 0.03},
			{Name: "candle", Path: "obj/candle.obj", Position: Vec3{-0.45, 1, -1.9}, Scale: 0.015},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads the configuration from a file. On any failure the
// defaults are returned together with the error.
func LoadConfig(filePath string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filePath)
	if err != nil {
		return config, fmt.Errorf("config file not found, using defaults: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return DefaultConfig(), fmt.Errorf("error parsing config: %w", err)
	}

	return config, nil
}

// SaveConfig saves the configuration to a file
func SaveConfig(config *Config, filePath string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("error serializing config: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// Validate reports every value the renderer cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		errs = append(errs, fmt.Errorf("camera near/far %v/%v invalid", c.Camera.Near, c.Camera.Far))
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		errs = append(errs, fmt.Errorf("camera fov %v out of (0,180)", c.Camera.FOV))
	}
	if !inBrightnessRange(c.Lighting.GlobalBrightness) || !inBrightnessRange(c.Lighting.LocalBrightness) {
		errs = append(errs, fmt.Errorf("brightness must be within [0,4]"))
	}
	if c.Lighting.SunPosition == c.Lighting.SunTarget {
		errs = append(errs, errors.New("sun position and target coincide"))
	}
	if c.Shadow.Resolution <= 0 {
		errs = append(errs, fmt.Errorf("shadow resolution %d must be positive", c.Shadow.Resolution))
	}
	if c.Shadow.HalfExtent <= 0 || c.Shadow.Near >= c.Shadow.Far {
		errs = append(errs, errors.New("shadow frustum is empty"))
	}
	if c.Room.Width <= 0 || c.Room.Height <= 0 || c.Room.Depth <= 0 {
		errs = append(errs, errors.New("room dimensions must be positive"))
	}
	if c.Smoke.Capacity < 0 {
		errs = append(errs, fmt.Errorf("smoke capacity %d is negative", c.Smoke.Capacity))
	}
	if c.Smoke.Interval <= 0 {
		errs = append(errs, fmt.Errorf("smoke interval %v must be positive", c.Smoke.Interval))
	}
	if c.Smoke.Lifetime <= 0 {
		errs = append(errs, fmt.Errorf("smoke lifetime %v must be positive", c.Smoke.Lifetime))
	}
	if c.Smoke.LifeJitter < 0 || c.Smoke.LifeJitter >= 1 {
		errs = append(errs, fmt.Errorf("smoke life jitter %v out of [0,1)", c.Smoke.LifeJitter))
	}
	for i, p := range c.Props {
		if p.Path == "" {
			errs = append(errs, fmt.Errorf("prop %d (%s): empty path", i, p.Name))
		}
		if p.Scale <= 0 {
			errs = append(errs, fmt.Errorf("prop %d (%s): scale %v must be positive", i, p.Name, p.Scale))
		}
	}
	return errors.Join(errs...)
}

func inBrightnessRange(v float32) bool {
	return v >= 0 && v <= 4
}
