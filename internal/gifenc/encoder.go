package gifenc

import (
	"bytes"
	"context"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"sync"

	"flipbook/internal/services"
)

// ditherThreshold splits the 1-30 quality scale. Better (lower) values get
// the slower error-diffusion quantization.
const ditherThreshold = 15

type frameJob struct {
	index int
	src   *image.RGBA
}

// encoder quantizes frames on a worker pool and serializes the result.
type encoder struct {
	workers int
	quality int
}

// encode converts the canvas snapshots to paletted frames and writes the
// animation. Output frame order matches input order regardless of which
// worker finishes first.
func (e encoder) encode(ctx context.Context, frames []*image.RGBA, delayCS int) ([]byte, error) {
	workers := e.workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(frames) {
		workers = len(frames)
	}

	jobs := make(chan frameJob)
	paletted := make([]*image.Paletted, len(frames))

	var wg sync.WaitGroup
	var once sync.Once
	var workerErr error

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				if err := ctx.Err(); err != nil {
					once.Do(func() { workerErr = err })
					continue
				}
				paletted[job.index] = e.quantize(job.src)
			}
		}()
	}

	for i, frame := range frames {
		jobs <- frameJob{index: i, src: frame}
	}
	close(jobs)
	wg.Wait()

	if workerErr != nil {
		return nil, services.Wrap(services.ErrEncoding, "gifenc", "encode", "frame quantization aborted", workerErr)
	}

	anim := &gif.GIF{
		Image:     paletted,
		Delay:     make([]int, len(paletted)),
		LoopCount: 0,
	}
	for i := range anim.Delay {
		anim.Delay[i] = delayCS
	}

	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, anim); err != nil {
		return nil, services.Wrap(services.ErrEncoding, "gifenc", "encode", "gif serialization failed", err)
	}
	return buf.Bytes(), nil
}

func (e encoder) quantize(src *image.RGBA) *image.Paletted {
	dst := image.NewPaletted(src.Bounds(), palette.Plan9)
	if e.quality <= ditherThreshold {
		draw.FloydSteinberg.Draw(dst, src.Bounds(), src, image.Point{})
	} else {
		draw.Draw(dst, src.Bounds(), src, image.Point{}, draw.Src)
	}
	return dst
}
