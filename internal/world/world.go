// Package world holds the simulated arena the recorder captures and the
// playback scrubber repositions. It owns robot kinematics, bounded trail
// accumulation, and rendering; it knows nothing about recording or playback.
package world

import (
	"math"

	"roboreplay/internal/config"
)

// Pose is a position plus heading.
type Pose struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	A float64 `json:"a"`
}

// Robot holds runtime state for one simulated robot.
type Robot struct {
	Name   string
	Color  string
	Radius float64

	X, Y, A    float64 // pose; A in radians
	VX, VY, VA float64 // world-frame translational and angular velocity
	Stalled    bool

	TraceEnabled   bool
	MaxTraceLength int
	Trace          []Pose

	// scripted drive used while recording
	forward float64
	turn    float64
}

// Pose returns the robot's current pose.
func (r *Robot) Pose() Pose { return Pose{X: r.X, Y: r.Y, A: r.A} }

// World is the arena containing robots, simulated time, and a cached
// background. A recording session steps it forward; playback repositions
// its robots from recorded state.
type World struct {
	Width  float64
	Height float64
	Grid   float64
	Ground string

	Time   float64
	robots []*Robot

	background *backgroundCache
	updates    uint64
}

// New builds a world from config.
func New(cfg *config.Config) *World {
	ground := cfg.World.Ground
	if ground == "" {
		ground = "#f8f8f0"
	}
	w := &World{
		Width:  cfg.World.Width,
		Height: cfg.World.Height,
		Grid:   cfg.World.Grid,
		Ground: ground,
	}
	for _, rc := range cfg.Robots {
		color := rc.Color
		if color == "" {
			color = "#cc3333"
		}
		w.robots = append(w.robots, &Robot{
			Name:           rc.Name,
			Color:          color,
			Radius:         rc.Radius,
			X:              rc.X,
			Y:              rc.Y,
			A:              rc.A,
			TraceEnabled:   rc.Trace.Enabled,
			MaxTraceLength: rc.Trace.MaxLength,
			forward:        rc.Drive.Forward,
			turn:           rc.Drive.Turn,
		})
	}
	w.ResetBackground()
	return w
}

// Robots returns the tracked robots in stable order.
func (w *World) Robots() []*Robot { return w.robots }

// Robot returns the robot at index i, or nil when out of range.
func (w *World) Robot(i int) *Robot {
	if i < 0 || i >= len(w.robots) {
		return nil
	}
	return w.robots[i]
}

// Step advances the live simulation by dt simulated seconds: integrates
// each robot's scripted drive, detects boundary stalls, and extends live
// trails. Used only while recording; playback bypasses it entirely.
func (w *World) Step(dt float64) {
	for _, r := range w.robots {
		a := r.A + r.turn*dt
		vx := r.forward * math.Cos(a)
		vy := r.forward * math.Sin(a)
		x := r.X + vx*dt
		y := r.Y + vy*dt

		stalled := false
		if x < r.Radius {
			x, stalled = r.Radius, true
		} else if x > w.Width-r.Radius {
			x, stalled = w.Width-r.Radius, true
		}
		if y < r.Radius {
			y, stalled = r.Radius, true
		} else if y > w.Height-r.Radius {
			y, stalled = w.Height-r.Radius, true
		}

		r.A = math.Mod(a, 2*math.Pi)
		r.X, r.Y = x, y
		r.VX, r.VY, r.VA = vx, vy, r.turn
		r.Stalled = stalled

		if r.TraceEnabled {
			r.Trace = append(r.Trace, r.Pose())
			if over := len(r.Trace) - r.MaxTraceLength - 1; over > 0 {
				r.Trace = r.Trace[over:]
			}
		}
	}
	w.Time += dt
	w.updates++
}

// SetPose repositions robot i without clearing its trail.
func (w *World) SetPose(i int, x, y, a float64) {
	if r := w.Robot(i); r != nil {
		r.X, r.Y, r.A = x, y, a
	}
}

// SetVelocity overwrites robot i's velocity components.
func (w *World) SetVelocity(i int, vx, vy, va float64) {
	if r := w.Robot(i); r != nil {
		r.VX, r.VY, r.VA = vx, vy, va
	}
}

// SetStalled overwrites robot i's stall flag.
func (w *World) SetStalled(i int, stalled bool) {
	if r := w.Robot(i); r != nil {
		r.Stalled = stalled
	}
}

// SetTrace replaces robot i's visible trail.
func (w *World) SetTrace(i int, trace []Pose) {
	if r := w.Robot(i); r != nil {
		r.Trace = trace
	}
}

// SetTime overwrites the world's simulated-time field.
func (w *World) SetTime(t float64) { w.Time = t }

// Update advances internal bookkeeping by one logical update so derived
// display state is refreshed on the next Render.
func (w *World) Update() { w.updates++ }

// Updates reports how many logical updates have been applied.
func (w *World) Updates() uint64 { return w.updates }
