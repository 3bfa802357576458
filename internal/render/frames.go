package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
)

// FrameWriter renders grid snapshots as numbered PNG files in a directory.
type FrameWriter struct {
	dir     string
	palette []color.RGBA
	scale   int
}

// NewFrameWriter prepares a writer emitting frames into dir at the given
// integer pixel scale.
func NewFrameWriter(dir string, palette []color.RGBA, scale int) *FrameWriter {
	if scale < 1 {
		scale = 1
	}
	return &FrameWriter{dir: dir, palette: palette, scale: scale}
}

// CleanDir removes every entry inside dir so a fresh run starts from an
// empty frames directory.
func CleanDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("render: clean %s: %w", dir, err)
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(dir, e.Name())); err != nil {
			return fmt.Errorf("render: clean %s: %w", dir, err)
		}
	}
	return nil
}

// WriteFrame encodes the cells as a PNG named after the zero-padded
// iteration number and returns the file path.
func (fw *FrameWriter) WriteFrame(iteration int, cells []uint8, w, h int) (string, error) {
	if len(cells) != w*h {
		return "", fmt.Errorf("render: cell buffer length %d does not match %dx%d grid", len(cells), w, h)
	}

	buf := make([]byte, 4*w*h)
	fillPaletteRGBA(buf, cells, fw.palette)

	img := image.NewRGBA(image.Rect(0, 0, w*fw.scale, h*fw.scale))
	for y := 0; y < h*fw.scale; y++ {
		for x := 0; x < w*fw.scale; x++ {
			src := ((y/fw.scale)*w + x/fw.scale) * 4
			dst := img.PixOffset(x, y)
			copy(img.Pix[dst:dst+4], buf[src:src+4])
		}
	}

	path := filepath.Join(fw.dir, fmt.Sprintf("%03d.png", iteration))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("render: create frame: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return "", fmt.Errorf("render: encode frame %s: %w", path, err)
	}
	return path, nil
}
