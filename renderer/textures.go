package renderer

import (
	"log/slog"
	"os"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// TextureCache loads sprite textures from an assets directory on first use.
// Missing files are remembered so the disk is checked once per name.
type TextureCache struct {
	dir      string
	logger   *slog.Logger
	textures map[string]rl.Texture2D
	missing  map[string]bool
}

// NewTextureCache creates a cache reading <dir>/<name>.png.
func NewTextureCache(dir string, logger *slog.Logger) *TextureCache {
	return &TextureCache{
		dir:      dir,
		logger:   logger,
		textures: make(map[string]rl.Texture2D),
		missing:  make(map[string]bool),
	}
}

// Get returns the texture for name. ok is false when no texture exists and
// the caller should draw a fallback. Requires an open window.
func (c *TextureCache) Get(name string) (rl.Texture2D, bool) {
	if name == "" || c.missing[name] {
		return rl.Texture2D{}, false
	}
	if tex, ok := c.textures[name]; ok {
		return tex, true
	}

	path := filepath.Join(c.dir, name+".png")
	if _, err := os.Stat(path); err != nil {
		c.missing[name] = true
		c.logger.Debug("sprite not found, using fallback colour", "sprite", name, "path", path)
		return rl.Texture2D{}, false
	}
	tex := rl.LoadTexture(path)
	if tex.ID == 0 {
		c.missing[name] = true
		c.logger.Warn("failed to load sprite", "sprite", name, "path", path)
		return rl.Texture2D{}, false
	}
	c.textures[name] = tex
	return tex, true
}

// Unload frees all loaded textures.
func (c *TextureCache) Unload() {
	for name, tex := range c.textures {
		rl.UnloadTexture(tex)
		delete(c.textures, name)
	}
}
