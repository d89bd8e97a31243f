package playback

import (
	"iter"
	"math"
)

// Steps returns a lazy, restartable sequence over [start, stop] with
// inclusive bounds, ascending when step > 0 and descending when step < 0.
// A zero step yields nothing.
func Steps(start, stop, step float64) iter.Seq[float64] {
	return func(yield func(float64) bool) {
		switch {
		case step > 0:
			for t := start; t <= stop; t += step {
				if !yield(t) {
					return
				}
			}
		case step < 0:
			for t := start; t >= stop; t += step {
				if !yield(t) {
					return
				}
			}
		}
	}
}

// StepCount reports how many values Steps will yield.
func StepCount(start, stop, step float64) int {
	if step == 0 {
		return 0
	}
	span := stop - start
	if (step > 0 && span < 0) || (step < 0 && span > 0) {
		return 0
	}
	return int(math.Abs(span)/math.Abs(step)) + 1
}
