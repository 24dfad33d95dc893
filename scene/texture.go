package scene

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// TextureFormat is the pixel layout of Texture.Pixels.
type TextureFormat int

const (
	FormatRGBA8 TextureFormat = iota // 4 bytes per pixel
	FormatR8                         // 1 byte per pixel, sampled as white with alpha = R
)

// TextureWrap selects the edge addressing mode.
type TextureWrap int

const (
	WrapRepeat TextureWrap = iota
	WrapClamp
)

// Texture holds CPU-side pixel data for a 2D texture.
// GLID is set by the OpenGL backend after upload; do not access directly.
type Texture struct {
	Name   string
	Width  int
	Height int
	Format TextureFormat
	Wrap   TextureWrap
	// Pixels are row-major, top-to-bottom.
	Pixels []byte
	// GLID is the OpenGL texture object ID, set by opengl.UploadTexture.
	GLID uint32
}

// MaxTextureSize bounds the larger side of loaded textures; bigger images
// are resampled down. Zero disables the limit.
var MaxTextureSize = 4096

// LoadTexture reads a PNG, JPEG, BMP, TIFF or WebP file from disk and returns
// a CPU-side RGBA8 Texture.
func LoadTexture(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture %q: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode texture %q: %w", path, err)
	}

	rgba := toRGBA(img, MaxTextureSize)
	return &Texture{
		Name:   path,
		Width:  rgba.Rect.Dx(),
		Height: rgba.Rect.Dy(),
		Pixels: rgba.Pix,
	}, nil
}

// LoadTextureFirst tries each path in turn and returns the first texture
// that loads. The error lists every failed attempt.
func LoadTextureFirst(paths ...string) (*Texture, error) {
	var errs []error
	for _, p := range paths {
		tex, err := LoadTexture(p)
		if err == nil {
			return tex, nil
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return nil, errors.New("no texture paths given")
	}
	return nil, errors.Join(errs...)
}

// toRGBA converts img to a tightly packed RGBA image no larger than maxSize.
func toRGBA(img image.Image, maxSize int) *image.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSize > 0 && (w > maxSize || h > maxSize) {
		scale := float64(maxSize) / float64(max(w, h))
		w = max(1, int(math.Round(float64(w)*scale)))
		h = max(1, int(math.Round(float64(h)*scale)))
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(dst, dst.Rect, img, b, draw.Src, nil)
		return dst
	}
	if rgba, ok := img.(*image.RGBA); ok && b.Min == (image.Point{}) && rgba.Stride == 4*w {
		return rgba
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Rect, img, b.Min, draw.Src)
	return dst
}

// NewSolidTexture creates a 1x1 texture with the given RGBA color values (0–255).
func NewSolidTexture(name string, r, g, b, a uint8) *Texture {
	return &Texture{
		Name:   name,
		Width:  1,
		Height: 1,
		Pixels: []byte{r, g, b, a},
	}
}

// NewSmokeTexture builds the soft round smoke sprite: a single channel
// gaussian exp(-1.5 d²) where d is the distance from the centre in
// half-widths. It is sampled as white with the value in alpha.
func NewSmokeTexture(size int) *Texture {
	if size < 1 {
		size = 1
	}
	pix := make([]byte, size*size)
	half := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := (float64(x) + 0.5 - half) / half
			dy := (float64(y) + 0.5 - half) / half
			v := math.Exp(-(dx*dx + dy*dy) * 1.5)
			pix[y*size+x] = uint8(math.Min(255, v*255))
		}
	}
	return &Texture{
		Name:   "smoke",
		Width:  size,
		Height: size,
		Format: FormatR8,
		Wrap:   WrapClamp,
		Pixels: pix,
	}
}
