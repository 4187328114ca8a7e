// Package export writes rendered frames to image files.
package export

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/san-kum/scisim/internal/dynamo"
	"github.com/san-kum/scisim/internal/surface"
)

// Format is an output file kind picked from a path's extension.
type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
	GIF Format = "gif"
)

func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return PNG, nil
	case ".svg":
		return SVG, nil
	case ".gif":
		return GIF, nil
	}
	return "", fmt.Errorf("%w: unsupported output %q", dynamo.ErrInvalidConfig, path)
}

func create(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func WritePNG(path string, r *surface.Raster) error {
	return create(path, r.EncodePNG)
}

func WriteSVG(path string, s *surface.SVG) error {
	return create(path, func(w io.Writer) error {
		_, err := s.WriteTo(w)
		return err
	})
}

// Quantize maps a frame onto the web-safe palette with dithering.
func Quantize(img image.Image) *image.Paletted {
	b := img.Bounds()
	p := image.NewPaletted(b, palette.WebSafe)
	draw.FloydSteinberg.Draw(p, b, img, b.Min)
	return p
}

// EncodeGIF writes frames as a looping animation. delay is per frame in
// hundredths of a second.
func EncodeGIF(w io.Writer, frames []image.Image, delay int) error {
	if len(frames) == 0 {
		return fmt.Errorf("%w: no frames", dynamo.ErrInvalidConfig)
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range frames {
		pf, ok := frame.(*image.Paletted)
		if !ok {
			pf = Quantize(frame)
		}
		anim.Image = append(anim.Image, pf)
		anim.Delay = append(anim.Delay, delay)
	}
	return gif.EncodeAll(w, &anim)
}

func WriteGIF(path string, frames []image.Image, delay int) error {
	return create(path, func(w io.Writer) error {
		return EncodeGIF(w, frames, delay)
	})
}

// DelayFor converts a frame rate into a GIF delay, at least 2 (browsers
// clamp smaller values).
func DelayFor(fps float64) int {
	if fps <= 0 {
		return 4
	}
	d := int(100/fps + 0.5)
	if d < 2 {
		d = 2
	}
	return d
}
