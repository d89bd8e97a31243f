package media

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// EncodeError reports a failed video transcode. It is recoverable: the
// animated-image artifact produced before the transcode remains valid.
type EncodeError struct {
	Path     string
	ExitCode int
	Err      error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("media: encoding %s failed (exit %d): %v", e.Path, e.ExitCode, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// VideoEncoder transcodes an animated image into a video container. It is
// an explicit collaborator so tests can stub the external process.
type VideoEncoder interface {
	Encode(ctx context.Context, gifPath, videoPath string) error
}

// FFmpegEncoder shells out to ffmpeg, blocking until it exits. A zero exit
// status is the only success signal.
type FFmpegEncoder struct {
	Binary string // defaults to "ffmpeg"
}

// Encode implements VideoEncoder.
func (f FFmpegEncoder) Encode(ctx context.Context, gifPath, videoPath string) error {
	bin := f.Binary
	if bin == "" {
		bin = "ffmpeg"
	}
	cmd := exec.CommandContext(ctx, bin,
		"-i", gifPath,
		"-movflags", "faststart",
		"-pix_fmt", "yuv420p",
		"-vf", "scale=trunc(iw/2)*2:trunc(ih/2)*2",
		videoPath,
	)
	if err := cmd.Run(); err != nil {
		code := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
		}
		return &EncodeError{Path: videoPath, ExitCode: code, Err: err}
	}
	return nil
}
