package main

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"victorian-room/config"
	"victorian-room/internal/logger"
	"victorian-room/scene"
)

// assetPaths expands a relative asset path into one candidate per search
// directory, in search order. Absolute paths are returned as-is.
func assetPaths(searchPaths []string, path string) []string {
	if filepath.IsAbs(path) || len(searchPaths) == 0 {
		return []string{path}
	}
	out := make([]string, 0, len(searchPaths))
	for _, dir := range searchPaths {
		out = append(out, filepath.Join(dir, path))
	}
	return out
}

// resolver returns the first candidate of path that exists on disk, or the
// first candidate when none does so the loader reports a useful error.
func resolver(searchPaths []string) func(string) string {
	return func(path string) string {
		candidates := assetPaths(searchPaths, path)
		for _, c := range candidates {
			if _, err := os.Stat(c); err == nil {
				return c
			}
		}
		return candidates[0]
	}
}

// loadTexture tries every candidate path. Failures are logged and nil is
// returned; the material then falls back to its diffuse colour.
func loadTexture(searchPaths []string, path string) *scene.Texture {
	if path == "" {
		return nil
	}
	tex, err := scene.LoadTextureFirst(assetPaths(searchPaths, path)...)
	if err != nil {
		logger.Log.Warn("Texture unavailable", zap.String("path", path), zap.Error(err))
		return nil
	}
	logger.Log.Debug("Texture loaded",
		zap.String("path", path),
		zap.Int("width", tex.Width),
		zap.Int("height", tex.Height))
	return tex
}

// registerRoomMaterials fills the fixed ids used by the room shell and the
// glass pane.
func registerRoomMaterials(reg *scene.MaterialRegistry, a config.AssetsConfig) {
	room := []struct {
		id   int
		name string
		path string
	}{
		{scene.MaterialWallpaper, "wallpaper", a.Wallpaper},
		{scene.MaterialFloor, "floor", a.Floor},
		{scene.MaterialPlinth, "plinth", a.Plinth},
		{scene.MaterialCornice, "cornice", a.Cornice},
		{scene.MaterialDoor, "door", a.Door},
		{scene.MaterialGlass, "window", a.Window},
	}
	for _, m := range room {
		mat := scene.NewTexturedMaterial(m.name, loadTexture(a.SearchPaths, m.path))
		if err := reg.Set(m.id, mat); err != nil {
			logger.Log.Error("Room material rejected", zap.String("name", m.name), zap.Error(err))
		}
	}
}

// loadProps loads every configured model, appending its materials after the
// room's.
func loadProps(reg *scene.MaterialRegistry, cfg *config.Config) []*scene.Prop {
	specs := make([]scene.PropSpec, 0, len(cfg.Props))
	for _, p := range cfg.Props {
		specs = append(specs, scene.PropSpec{
			Name:      p.Name,
			Path:      p.Path,
			Position:  p.Position.Vec(),
			Scale:     p.Scale,
			RotationY: p.RotationY,
		})
	}

	props, errs := scene.LoadProps(specs, reg, resolver(cfg.Assets.SearchPaths))
	for _, err := range errs {
		logger.Log.Warn("Prop skipped", zap.Error(err))
	}
	for _, p := range props {
		logger.Log.Info("Prop loaded",
			zap.String("name", p.Name),
			zap.Int("triangles", p.Model.Mesh.TriangleCount()),
			zap.Int("materials", len(p.Model.Materials)),
			zap.Int("material_offset", p.Model.MaterialOffset))
	}
	return props
}
