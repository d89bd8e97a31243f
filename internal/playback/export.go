package playback

import (
	"context"
	"fmt"
	"image"
	"os"

	"roboreplay/internal/logging"
	"roboreplay/internal/media"
)

// ExportOptions controls a frame export run.
type ExportOptions struct {
	Start float64 // simulated seconds, inclusive
	Stop  float64 // clamped to the recorded duration
	Step  float64 // defaults to the log's step duration; negative exports backwards

	Loop    int // GIF repeat count; 0 loops forever
	DelayMS int // per-frame duration in milliseconds

	BaseName string // artifacts are <BaseName>.gif and <BaseName>.mp4
	Video    bool   // also transcode to video

	Progress func(done, total int) // optional
}

// ExportResult holds the produced artifacts. VideoErr carries a
// recoverable transcode failure; the GIF bytes stay valid regardless.
type ExportResult struct {
	Frames    []image.Image
	GIF       []byte
	GIFPath   string
	VideoPath string
	VideoErr  error
}

// Exporter renders a time range frame by frame and assembles the media
// artifacts. It is a straight-line loop with no concurrency; callers
// cancel through ctx.
type Exporter struct {
	controller *Controller
	encoder    media.VideoEncoder
}

// NewExporter wires an exporter to a controller. encoder may be nil when
// video export is never requested.
func NewExporter(c *Controller, encoder media.VideoEncoder) *Exporter {
	return &Exporter{controller: c, encoder: encoder}
}

// Export renders frames over [Start, Stop] and writes the artifacts.
func (e *Exporter) Export(ctx context.Context, opts ExportOptions) (*ExportResult, error) {
	logger := logging.FromContext(ctx)
	log := e.controller.scrubber.Log()

	stop := opts.Stop
	if limit := log.Duration(); stop > limit {
		stop = limit
	}
	step := opts.Step
	if step == 0 {
		step = log.StepDuration()
	}

	total := StepCount(opts.Start, stop, step)
	res := &ExportResult{}
	for t := range Steps(opts.Start, stop, step) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		res.Frames = append(res.Frames, e.controller.Seek(t))
		if opts.Progress != nil {
			opts.Progress(len(res.Frames), total)
		}
	}
	if len(res.Frames) == 0 {
		return nil, fmt.Errorf("playback: export range [%g, %g] by %g is empty", opts.Start, stop, step)
	}

	gifBytes, err := media.EncodeGIF(res.Frames, opts.Loop, opts.DelayMS)
	if err != nil {
		return nil, err
	}
	res.GIF = gifBytes

	if opts.BaseName != "" {
		res.GIFPath = opts.BaseName + ".gif"
		if err := os.WriteFile(res.GIFPath, gifBytes, 0o644); err != nil {
			return nil, err
		}
		logger.Info("animated gif written", "path", res.GIFPath, "frames", len(res.Frames))
	}

	if opts.Video {
		if e.encoder == nil {
			res.VideoErr = fmt.Errorf("playback: no video encoder configured")
			return res, nil
		}
		if res.GIFPath == "" {
			res.VideoErr = fmt.Errorf("playback: video export needs a base name to transcode from")
			return res, nil
		}
		videoPath := opts.BaseName + ".mp4"
		if _, err := os.Stat(videoPath); err == nil {
			if err := os.Remove(videoPath); err != nil {
				return nil, err
			}
		}
		if err := e.encoder.Encode(ctx, res.GIFPath, videoPath); err != nil {
			// recoverable: the gif artifact is intact
			logger.Error("video transcode failed", "path", videoPath, "err", err)
			res.VideoErr = err
			return res, nil
		}
		res.VideoPath = videoPath
		logger.Info("video written", "path", videoPath)
	}

	return res, nil
}
