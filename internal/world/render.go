package world

import (
	"image"
	"math"

	"github.com/gogpu/gg"
)

type backgroundCache struct {
	buf *gg.ImageBuf
}

// ResetBackground regenerates the cached ground image (ground fill, grid
// lines, border). Called at construction and whenever playback returns to
// time zero, since time zero is defined as the pristine initial condition.
func (w *World) ResetBackground() {
	dc := gg.NewContext(int(w.Width), int(w.Height))
	dc.SetHexColor(w.Ground)
	dc.DrawRectangle(0, 0, w.Width, w.Height)
	dc.Fill()

	if w.Grid > 0 {
		dc.SetRGBA(0, 0, 0, 0.08)
		dc.SetLineWidth(1)
		for x := w.Grid; x < w.Width; x += w.Grid {
			dc.DrawLine(x, 0, x, w.Height)
		}
		for y := w.Grid; y < w.Height; y += w.Grid {
			dc.DrawLine(0, y, w.Width, y)
		}
		dc.Stroke()
	}

	dc.SetRGB(0.2, 0.2, 0.2)
	dc.SetLineWidth(2)
	dc.DrawRectangle(1, 1, w.Width-2, w.Height-2)
	dc.Stroke()

	w.background = &backgroundCache{buf: gg.ImageBufFromImage(dc.Image())}
}

// Render rasterizes the world: background, trails, then robot bodies
// with a heading tick. Stalled robots get a warning ring.
func (w *World) Render() image.Image {
	dc := gg.NewContext(int(w.Width), int(w.Height))
	if w.background == nil {
		w.ResetBackground()
	}
	dc.DrawImage(w.background.buf, 0, 0)

	for _, r := range w.robots {
		if len(r.Trace) > 1 {
			dc.SetHexColor(r.Color)
			dc.SetLineWidth(1.5)
			dc.MoveTo(r.Trace[0].X, r.Trace[0].Y)
			for _, p := range r.Trace[1:] {
				dc.LineTo(p.X, p.Y)
			}
			dc.Stroke()
		}
	}

	for _, r := range w.robots {
		dc.SetHexColor(r.Color)
		dc.DrawCircle(r.X, r.Y, r.Radius)
		dc.Fill()

		// heading tick
		dc.SetRGB(1, 1, 1)
		dc.SetLineWidth(2)
		dc.DrawLine(r.X, r.Y, r.X+r.Radius*math.Cos(r.A), r.Y+r.Radius*math.Sin(r.A))
		dc.Stroke()

		if r.Stalled {
			dc.SetRGB(0.9, 0.1, 0.1)
			dc.SetLineWidth(1.5)
			dc.DrawCircle(r.X, r.Y, r.Radius+3)
			dc.Stroke()
		}
	}

	return dc.Image()
}
