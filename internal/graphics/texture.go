package graphics

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"io/fs"
	"log"
	"os"

	"github.com/go-gl/gl/v4.1-core/gl"
	"golang.org/x/image/colornames"
	"golang.org/x/image/draw"

	"voxel-terrain/internal/config"
)

// palette colors the generated atlas, one entry per material.
var palette = []color.RGBA{
	colornames.Forestgreen, colornames.Saddlebrown, colornames.Slategray, colornames.Sandybrown,
	colornames.Steelblue, colornames.Khaki, colornames.Firebrick, colornames.Ghostwhite,
	colornames.Darkolivegreen, colornames.Peru, colornames.Dimgray, colornames.Gold,
	colornames.Teal, colornames.Orchid, colornames.Coral, colornames.Black,
}

// AtlasImage returns the atlas as a square RGBA image of cfg.Size pixels.
// The configured texture is scaled to that size; when it does not exist a
// flat-colored atlas with one tile per material is generated instead.
func AtlasImage(cfg config.Atlas) (*image.RGBA, error) {
	size := max(cfg.Size, 1)
	dst := image.NewRGBA(image.Rect(0, 0, size, size))

	src, err := decodeImage(cfg.Texture)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Printf("atlas %q not found, generating %dx%d tiles", cfg.Texture, cfg.Columns, cfg.Rows)
		paintTiles(dst, cfg)
		return dst, nil
	case err != nil:
		return nil, err
	}

	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst, nil
}

func decodeImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture file: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// paintTiles fills the atlas grid with material 0 at the top-left, the
// same arrangement as an atlas image on disk.
func paintTiles(dst *image.RGBA, cfg config.Atlas) {
	size := dst.Bounds().Dx()
	step := float32(size) * cfg.Step
	for id := range cfg.Materials() {
		col, row := id%cfg.Columns, id/cfg.Columns
		x0 := int(float32(col) * step)
		y0 := int(float32(row) * step)
		r := image.Rect(x0, y0, min(x0+int(step), size), min(y0+int(step), size))
		draw.Draw(dst, r, &image.Uniform{C: palette[id%len(palette)]}, image.Point{}, draw.Src)
	}
}

// flipRows returns img upside down. GL reads the first row in memory as
// t = 0, the bottom of texture space.
func flipRows(img *image.RGBA) *image.RGBA {
	flipped := image.NewRGBA(img.Bounds())
	h := img.Bounds().Dy()
	for y := range h {
		copy(flipped.Pix[y*flipped.Stride:(y+1)*flipped.Stride], img.Pix[(h-1-y)*img.Stride:(h-y)*img.Stride])
	}
	return flipped
}

// LoadAtlas uploads the atlas texture and returns its GL name.
func LoadAtlas(cfg config.Atlas) (uint32, error) {
	rgba, err := AtlasImage(cfg)
	if err != nil {
		return 0, err
	}

	flipped := flipRows(rgba)

	var texture uint32
	gl.GenTextures(1, &texture)
	gl.BindTexture(gl.TEXTURE_2D, texture)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)

	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA,
		int32(flipped.Rect.Size().X),
		int32(flipped.Rect.Size().Y),
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(flipped.Pix),
	)

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return texture, nil
}
