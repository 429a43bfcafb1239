package gifenc

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"log/slog"
	"math"

	_ "image/jpeg"
	_ "image/png"

	"github.com/google/uuid"
	xdraw "golang.org/x/image/draw"

	"flipbook/internal/config"
	"flipbook/internal/logging"
	"flipbook/internal/project"
	"flipbook/internal/services"
)

// Artifact is a finished animation ready to be written out.
type Artifact struct {
	ID          string
	ProjectName string
	Data        []byte
	DelayMS     int
	Width       int
	Height      int
	FrameCount  int
}

// Assembler builds animations from project frames.
type Assembler struct {
	workers    int
	quality    int
	maxDelayMS int
	logger     *slog.Logger
}

// NewAssembler builds an assembler from the export configuration.
func NewAssembler(cfg *config.Config, logger *slog.Logger) *Assembler {
	return &Assembler{
		workers:    cfg.Export.Workers,
		quality:    cfg.Export.Quality,
		maxDelayMS: cfg.Export.MaxDelayMS,
		logger:     logging.NewComponentLogger(logger, "gifenc"),
	}
}

// Assemble renders the project's frames into an animated GIF with the given
// per-frame delay in milliseconds. The animation loops forever.
func (a *Assembler) Assemble(ctx context.Context, proj project.Project, delayMS int) (*Artifact, error) {
	if len(proj.Frames) == 0 {
		return nil, services.Wrap(services.ErrNoFrames, "gifenc", "assemble", proj.Name, nil)
	}
	if delayMS <= 0 || delayMS > a.maxDelayMS {
		return nil, services.Wrap(services.ErrInvalidDelay, "gifenc", "assemble",
			fmt.Sprintf("delay must be between 1 and %d milliseconds", a.maxDelayMS), nil)
	}

	snapshots, width, height, err := a.renderCanvas(proj)
	if err != nil {
		return nil, err
	}

	delayCS := int(math.Round(float64(delayMS) / 10.0))
	enc := encoder{workers: a.workers, quality: a.quality}
	data, err := enc.encode(ctx, snapshots, delayCS)
	if err != nil {
		return nil, err
	}

	artifact := &Artifact{
		ID:          uuid.New().String(),
		ProjectName: proj.Name,
		Data:        data,
		DelayMS:     delayMS,
		Width:       width,
		Height:      height,
		FrameCount:  len(snapshots),
	}
	a.logger.Info("animation assembled",
		logging.String("project", proj.Name),
		logging.String("artifact", artifact.ID),
		logging.Int("frames", artifact.FrameCount),
		logging.Int("width", width),
		logging.Int("height", height),
		logging.Int("bytes", len(data)))
	return artifact, nil
}

// renderCanvas decodes each stored frame and stretches it onto a canvas
// sized by the first frame, snapshotting the canvas after every draw.
func (a *Assembler) renderCanvas(proj project.Project) ([]*image.RGBA, int, int, error) {
	first, err := decodeFrame(proj.Frames[0])
	if err != nil {
		return nil, 0, 0, services.Wrap(services.ErrEncoding, "gifenc", "render", "decode first frame", err)
	}
	width := first.Bounds().Dx()
	height := first.Bounds().Dy()

	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	snapshots := make([]*image.RGBA, 0, len(proj.Frames))

	for i, stored := range proj.Frames {
		src := first
		if i > 0 {
			src, err = decodeFrame(stored)
			if err != nil {
				return nil, 0, 0, services.Wrap(services.ErrEncoding, "gifenc", "render", "decode frame", err)
			}
		}

		// Stretch-fill the whole canvas so frames of other sizes still
		// cover it edge to edge.
		xdraw.ApproxBiLinear.Scale(canvas, canvas.Bounds(), src, src.Bounds(), xdraw.Src, nil)

		snapshot := image.NewRGBA(canvas.Bounds())
		copy(snapshot.Pix, canvas.Pix)
		snapshots = append(snapshots, snapshot)
	}

	return snapshots, width, height, nil
}

func decodeFrame(stored project.StoredImage) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(stored))
	if err != nil {
		return nil, err
	}
	return img, nil
}
