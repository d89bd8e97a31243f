package playback

import (
	"math"
	"testing"
)

func collect(start, stop, step float64) []float64 {
	var out []float64
	for t := range Steps(start, stop, step) {
		out = append(out, t)
	}
	return out
}

func TestStepsAscendingInclusive(t *testing.T) {
	got := collect(0, 1, 0.25)
	want := []float64{0, 0.25, 0.5, 0.75, 1}
	if len(got) != len(want) {
		t.Fatalf("expected %d values, got %v", len(want), got)
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Fatalf("value %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestStepsDescendingInclusive(t *testing.T) {
	got := collect(1, 0, -0.5)
	want := []float64{1, 0.5, 0}
	if len(got) != len(want) {
		t.Fatalf("expected %d values, got %v", len(want), got)
	}
}

func TestStepsDegenerateRange(t *testing.T) {
	if got := collect(0, 0, 0.1); len(got) != 1 || got[0] != 0 {
		t.Fatalf("expected single value 0, got %v", got)
	}
	if got := collect(1, 0, 0.1); got != nil {
		t.Fatalf("expected no values for inverted range, got %v", got)
	}
	if got := collect(0, 1, 0); got != nil {
		t.Fatalf("expected no values for zero step, got %v", got)
	}
}

func TestStepsRestartable(t *testing.T) {
	seq := Steps(0, 0.3, 0.1)
	first := 0
	for range seq {
		first++
	}
	second := 0
	for range seq {
		second++
	}
	if first != second {
		t.Fatalf("expected restartable sequence, got %d then %d", first, second)
	}
}

func TestStepCount(t *testing.T) {
	cases := []struct {
		start, stop, step float64
		want              int
	}{
		{0, 1, 0.25, 5},
		{0, 0, 0.1, 1},
		{1, 0, -0.5, 3},
		{0, 1, 0, 0},
		{1, 0, 0.1, 0},
	}
	for _, c := range cases {
		if got := StepCount(c.start, c.stop, c.step); got != c.want {
			t.Fatalf("StepCount(%v,%v,%v): expected %d, got %d", c.start, c.stop, c.step, c.want, got)
		}
	}
}
