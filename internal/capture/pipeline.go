// Package capture normalizes incoming still images into stored frames.
//
// Every accepted image is decoded, scaled down to the configured maximum
// width when wider, and re-encoded as JPEG before it is appended to its
// project. Images at or below the maximum width keep their original size.
package capture

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"io"
	"log/slog"
	"math"

	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"flipbook/internal/config"
	"flipbook/internal/logging"
	"flipbook/internal/project"
	"flipbook/internal/services"
)

// Pipeline turns raw image bytes into normalized frames appended to a
// project.
type Pipeline struct {
	registry *project.Registry
	maxWidth int
	quality  int
	logger   *slog.Logger
}

// NewPipeline builds a capture pipeline over the given registry.
func NewPipeline(cfg *config.Config, registry *project.Registry, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		registry: registry,
		maxWidth: cfg.Capture.MaxWidth,
		quality:  cfg.Capture.JPEGQuality,
		logger:   logging.NewComponentLogger(logger, "capture"),
	}
}

// Capture decodes one image from r, normalizes it, and appends it to the
// named project. It returns the project's new frame count. On a decode
// failure the project is left untouched.
func (p *Pipeline) Capture(ctx context.Context, projectName string, r io.Reader) (int, error) {
	src, format, err := image.Decode(r)
	if err != nil {
		return 0, services.Wrap(services.ErrDecode, "capture", "decode", "unreadable image data", err)
	}

	frame, width, height, err := p.normalize(src)
	if err != nil {
		return 0, err
	}

	count, err := p.registry.AppendFrame(ctx, projectName, frame)
	if err != nil && !services.IsWarning(err) {
		return 0, err
	}

	p.logger.Info("frame captured",
		logging.String("project", projectName),
		logging.String("format", format),
		logging.Int("width", width),
		logging.Int("height", height),
		logging.Int("frames", count))
	return count, err
}

// normalize scales the image to fit the maximum width and re-encodes it as
// JPEG. Aspect ratio is preserved; dimensions are rounded to the nearest
// pixel.
func (p *Pipeline) normalize(src image.Image) (project.StoredImage, int, int, error) {
	bounds := src.Bounds()
	srcW := bounds.Dx()
	srcH := bounds.Dy()
	if srcW <= 0 || srcH <= 0 {
		return nil, 0, 0, services.Wrap(services.ErrDecode, "capture", "normalize", "image has no pixels", nil)
	}

	scale := 1.0
	if srcW > p.maxWidth {
		scale = float64(p.maxWidth) / float64(srcW)
	}
	width := int(math.Round(float64(srcW) * scale))
	height := int(math.Round(float64(srcH) * scale))
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	if scale == 1.0 {
		draw.Copy(dst, image.Point{}, src, bounds, draw.Src, nil)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Src, nil)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: p.quality}); err != nil {
		return nil, 0, 0, services.Wrap(services.ErrDecode, "capture", "normalize", "jpeg encode failed", err)
	}
	return buf.Bytes(), width, height, nil
}
