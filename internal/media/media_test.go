package media

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"testing"
)

func solidFrame(c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestEncodePNG(t *testing.T) {
	data, err := EncodePNG(solidFrame(color.White))
	if err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}
	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png decode: %v", err)
	}
	if decoded.Bounds().Dx() != 16 {
		t.Fatalf("unexpected bounds: %v", decoded.Bounds())
	}
}

func TestEncodeGIF(t *testing.T) {
	frames := []image.Image{
		solidFrame(color.White),
		solidFrame(color.Black),
	}
	data, err := EncodeGIF(frames, 2, 80)
	if err != nil {
		t.Fatalf("EncodeGIF: %v", err)
	}

	anim, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("gif decode: %v", err)
	}
	if len(anim.Image) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(anim.Image))
	}
	if anim.LoopCount != 2 {
		t.Fatalf("expected loop count passed through, got %d", anim.LoopCount)
	}
	if anim.Delay[0] != 8 {
		t.Fatalf("expected 80ms delay = 8 hundredths, got %d", anim.Delay[0])
	}
}

func TestEncodeGIFNoFrames(t *testing.T) {
	if _, err := EncodeGIF(nil, 0, 100); err == nil {
		t.Fatal("expected error for empty frame list")
	}
}

func TestEncodeErrorUnwrap(t *testing.T) {
	inner := errors.New("exit status 1")
	err := &EncodeError{Path: "m.mp4", ExitCode: 1, Err: inner}
	if !errors.Is(err, inner) {
		t.Fatal("expected Unwrap to expose the process error")
	}
	if err.Error() == "" {
		t.Fatal("expected a message")
	}
}
