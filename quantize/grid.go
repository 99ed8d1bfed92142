package quantize

import "github.com/Fontikcz12/quantizer/model"

// Tick snaps tick to the grid of gridSize ticks anchored at startTick and
// moves it toward that target by strength (0 keeps tick, 1 lands on the
// target). The partial shift is truncated toward zero. gridSize must be
// positive.
func Tick(tick, gridSize, startTick int64, mode model.Mode, strength float64) int64 {
	target := startTick + gridIndex(tick-startTick, gridSize, mode)*gridSize
	shift := target - tick
	return tick + int64(float64(shift)*strength)
}

func gridIndex(relative, gridSize int64, mode model.Mode) int64 {
	q, r := floorDivMod(relative, gridSize)
	switch mode {
	case model.Forward:
		if r > 0 {
			return q + 1
		}
		return q
	case model.Backward:
		return q
	default:
		return roundHalfEven(q, r, gridSize)
	}
}

// floorDivMod returns q, r with a = q*b + r and 0 <= r < b for b > 0.
func floorDivMod(a, b int64) (int64, int64) {
	q, r := a/b, a%b
	if r != 0 && (r < 0) != (b < 0) {
		q--
		r += b
	}
	return q, r
}

// roundHalfEven rounds the position q + r/gridSize to a whole grid index.
// An exact half goes to the even index.
func roundHalfEven(q, r, gridSize int64) int64 {
	switch twice := 2 * r; {
	case twice < gridSize:
		return q
	case twice > gridSize:
		return q + 1
	case q%2 == 0:
		return q
	default:
		return q + 1
	}
}
