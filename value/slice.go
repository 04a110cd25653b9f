package value

import (
	"math"

	"github.com/cycraft-corp/hakka-json/errors"
)

// Auto marks an omitted slice bound. A slice with Auto bounds covers the
// whole sequence in step direction.
const Auto int = math.MinInt

// normSlice normalizes (start, stop, step) against a sequence of length n
// using half-open, possibly-negative-step rules: negative indices count
// from the end, out-of-range bounds clamp, a zero step fails.
func normSlice(start, stop, step, n int) (int64, int64, int64, error) {
	if step == 0 {
		return 0, 0, 0, errors.ValueError(errors.PhaseAccess, "slice step cannot be zero")
	}
	if step == Auto {
		step = 1
	}

	if step > 0 {
		start = clampBound(start, n, 0, 0, n)
		stop = clampBound(stop, n, n, 0, n)
	} else {
		start = clampBound(start, n, n-1, -1, n-1)
		stop = clampBound(stop, n, -1, -1, n-1)
	}
	return int64(start), int64(stop), int64(step), nil
}

func clampBound(i, n, auto, lo, hi int) int {
	if i == Auto {
		return auto
	}
	if i < 0 {
		i += n
	}
	if i < lo {
		return lo
	}
	if i > hi {
		return hi
	}
	return i
}

// sliceLen reports how many positions a normalized slice addresses.
func sliceLen(start, stop, step int64) int {
	if step > 0 {
		if stop <= start {
			return 0
		}
		return int((stop - start + step - 1) / step)
	}
	if start <= stop {
		return 0
	}
	return int((start - stop - step - 1) / -step)
}

// normIndex normalizes a possibly negative scalar index against length n,
// failing with an index error when out of range.
func normIndex(i, n int) (uint32, error) {
	idx := i
	if idx < 0 {
		idx += n
	}
	if idx < 0 || idx >= n {
		return 0, errors.IndexError(errors.PhaseAccess, i, n)
	}
	return uint32(idx), nil
}
