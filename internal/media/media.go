// Package media encodes rendered frames into shareable artifacts: static
// PNGs, animated GIFs, and ffmpeg-transcoded videos.
package media

import (
	"bytes"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/png"
)

// EncodePNG encodes a single frame as PNG bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeGIF assembles frames into one animated GIF. loop is the repeat
// count (0 means loop forever) and delayMS the per-frame duration; both
// are passed through verbatim.
func EncodeGIF(frames []image.Image, loop, delayMS int) ([]byte, error) {
	if len(frames) == 0 {
		return nil, fmt.Errorf("media: no frames to encode")
	}
	if delayMS <= 0 {
		delayMS = 100
	}

	anim := &gif.GIF{LoopCount: loop}
	for _, frame := range frames {
		bounds := frame.Bounds()
		pal := image.NewPaletted(bounds, palette.Plan9)
		draw.FloydSteinberg.Draw(pal, bounds, frame, bounds.Min)
		anim.Image = append(anim.Image, pal)
		anim.Delay = append(anim.Delay, delayMS/10) // GIF delays are in 1/100s
	}

	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, anim); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
