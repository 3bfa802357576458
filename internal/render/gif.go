package render

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// AssembleGIF reads every PNG frame in framesDir in frame-number order
// and encodes them as an animated GIF at outPath. Delay is per frame in
// hundredths of a second.
func AssembleGIF(framesDir, outPath string, delay int) error {
	entries, err := os.ReadDir(framesDir)
	if err != nil {
		return fmt.Errorf("render: read frames dir %s: %w", framesDir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".png") {
			continue
		}
		names = append(names, e.Name())
	}
	// Lexical order misplaces frame 1000 before 999, so sort on the
	// numeric frame index when the name carries one.
	sort.Slice(names, func(i, j int) bool {
		a, aok := frameIndex(names[i])
		b, bok := frameIndex(names[j])
		if aok && bok {
			return a < b
		}
		if aok != bok {
			return aok
		}
		return names[i] < names[j]
	})

	anim := &gif.GIF{}
	for _, name := range names {
		img, err := readPNG(filepath.Join(framesDir, name))
		if err != nil {
			return err
		}
		bounds := img.Bounds()
		paletted := image.NewPaletted(bounds, palette.Plan9)
		draw.FloydSteinberg.Draw(paletted, bounds, img, image.Point{})
		anim.Image = append(anim.Image, paletted)
		anim.Delay = append(anim.Delay, delay)
	}
	if len(anim.Image) == 0 {
		return fmt.Errorf("render: no PNG frames found in %s", framesDir)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("render: create gif: %w", err)
	}
	defer f.Close()
	if err := gif.EncodeAll(f, anim); err != nil {
		return fmt.Errorf("render: encode gif %s: %w", outPath, err)
	}
	return nil
}

// frameIndex extracts the frame number from a file name like "007.png".
func frameIndex(name string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSuffix(name, ".png"))
	return n, err == nil
}

func readPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("render: open frame %s: %w", path, err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("render: decode frame %s: %w", path, err)
	}
	return img, nil
}
