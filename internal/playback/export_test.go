package playback

import (
	"bytes"
	"context"
	"errors"
	"image/gif"
	"os"
	"path/filepath"
	"testing"

	"roboreplay/internal/media"
)

type stubEncoder struct {
	err   error
	calls int
	gif   string
	video string
}

func (s *stubEncoder) Encode(ctx context.Context, gifPath, videoPath string) error {
	s.calls++
	s.gif, s.video = gifPath, videoPath
	if s.err != nil {
		return s.err
	}
	return os.WriteFile(videoPath, []byte("video"), 0o644)
}

func TestExportFullRange(t *testing.T) {
	c := testController(3)
	ex := NewExporter(c, nil)

	var progress []int
	res, err := ex.Export(context.Background(), ExportOptions{
		Start:   0,
		Stop:    10, // clamped to 0.3
		Step:    0.1,
		DelayMS: 50,
		Progress: func(done, total int) {
			progress = append(progress, done)
		},
	})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	// stop clamps to the recorded 0.3s; the inclusive range covers the
	// final boundary as well, so 4 frames with the last step duplicated
	if len(res.Frames) != 4 {
		t.Fatalf("expected 4 frames (stop clamped to recorded data), got %d", len(res.Frames))
	}
	if len(progress) != 4 || progress[3] != 4 {
		t.Fatalf("unexpected progress reports: %v", progress)
	}

	anim, err := gif.DecodeAll(bytes.NewReader(res.GIF))
	if err != nil {
		t.Fatalf("gif decode: %v", err)
	}
	if len(anim.Image) != 4 {
		t.Fatalf("expected 4 gif frames, got %d", len(anim.Image))
	}
	if anim.Delay[0] != 5 {
		t.Fatalf("expected 50ms delay = 5 hundredths, got %d", anim.Delay[0])
	}
}

func TestExportEmptyLogYieldsSingleFrame(t *testing.T) {
	c := testController(0)
	ex := NewExporter(c, nil)

	res, err := ex.Export(context.Background(), ExportOptions{Start: 0, Stop: 1.0, Step: 0.1})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if len(res.Frames) != 1 {
		t.Fatalf("expected exactly one frame at t=0, got %d", len(res.Frames))
	}
}

func TestExportWritesArtifacts(t *testing.T) {
	c := testController(3)
	enc := &stubEncoder{}
	ex := NewExporter(c, enc)

	base := filepath.Join(t.TempDir(), "movie")
	res, err := ex.Export(context.Background(), ExportOptions{
		Stop: 0.3, BaseName: base, Video: true,
	})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if res.VideoErr != nil {
		t.Fatalf("unexpected video error: %v", res.VideoErr)
	}
	if res.GIFPath != base+".gif" || res.VideoPath != base+".mp4" {
		t.Fatalf("unexpected artifact paths: %q %q", res.GIFPath, res.VideoPath)
	}
	if _, err := os.Stat(res.GIFPath); err != nil {
		t.Fatalf("gif artifact missing: %v", err)
	}
	if enc.calls != 1 || enc.gif != res.GIFPath {
		t.Fatalf("encoder not invoked as expected: %+v", enc)
	}
}

func TestExportRemovesStaleVideo(t *testing.T) {
	c := testController(3)
	enc := &stubEncoder{err: &media.EncodeError{ExitCode: 1, Err: errors.New("exit status 1")}}
	ex := NewExporter(c, enc)

	base := filepath.Join(t.TempDir(), "movie")
	stale := base + ".mp4"
	if err := os.WriteFile(stale, []byte("old"), 0o644); err != nil {
		t.Fatalf("seed stale video: %v", err)
	}

	res, err := ex.Export(context.Background(), ExportOptions{
		Stop: 0.3, BaseName: base, Video: true,
	})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if res.VideoErr == nil {
		t.Fatal("expected recoverable video error")
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Fatal("expected stale video to be removed before re-encoding")
	}
}

func TestExportEncoderFailureKeepsGIF(t *testing.T) {
	c := testController(3)
	enc := &stubEncoder{err: &media.EncodeError{Path: "movie.mp4", ExitCode: 1, Err: errors.New("exit status 1")}}
	ex := NewExporter(c, enc)

	base := filepath.Join(t.TempDir(), "movie")
	res, err := ex.Export(context.Background(), ExportOptions{
		Stop: 0.3, BaseName: base, Video: true,
	})
	if err != nil {
		t.Fatalf("Export: expected recoverable failure, got fatal %v", err)
	}

	var encErr *media.EncodeError
	if !errors.As(res.VideoErr, &encErr) || encErr.ExitCode != 1 {
		t.Fatalf("expected EncodeError with exit 1, got %v", res.VideoErr)
	}
	if len(res.GIF) == 0 {
		t.Fatal("expected gif bytes to survive a failed transcode")
	}
	if _, err := gif.DecodeAll(bytes.NewReader(res.GIF)); err != nil {
		t.Fatalf("gif no longer well-formed: %v", err)
	}
}

func TestExportCancellable(t *testing.T) {
	c := testController(3)
	ex := NewExporter(c, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ex.Export(ctx, ExportOptions{Stop: 0.3}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestExportEmptyRangeErrors(t *testing.T) {
	c := testController(3)
	ex := NewExporter(c, nil)

	if _, err := ex.Export(context.Background(), ExportOptions{Start: 1, Stop: 0.3, Step: 0.1}); err == nil {
		t.Fatal("expected error for empty range")
	}
}
