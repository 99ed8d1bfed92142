package quantize

import (
	"fmt"
	"testing"

	"github.com/Fontikcz12/quantizer/model"
	"github.com/stretchr/testify/assert"
)

var modes = []model.Mode{model.Nearest, model.Forward, model.Backward}

func TestTickByMode(t *testing.T) {
	cases := []struct {
		tick, grid, start int64
		mode              model.Mode
		want              int64
	}{
		{44, 15, 0, model.Nearest, 45},
		{44, 15, 0, model.Forward, 45},
		{44, 15, 0, model.Backward, 30},
		{45, 15, 0, model.Forward, 45},
		{45, 15, 0, model.Backward, 45},
		{376, 120, 0, model.Forward, 480},
		{376, 120, 0, model.Nearest, 360},
		{5, 15, 100, model.Forward, 10},
		{5, 15, 100, model.Backward, -5},
		{5, 15, 100, model.Nearest, 10},
		{-7, 10, 0, model.Forward, 0},
		{-7, 10, 0, model.Backward, -10},
		{-7, 10, 0, model.Nearest, -10},
		{130, 120, 10, model.Nearest, 130},
	}

	for _, c := range cases {
		name := fmt.Sprintf("%d on grid %d from %d %v", c.tick, c.grid, c.start, c.mode)
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, c.want, Tick(c.tick, c.grid, c.start, c.mode, 1.0))
		})
	}
}

func TestNearestTiesRoundToEven(t *testing.T) {
	cases := map[int64]int64{
		5:   0,   // 0.5
		15:  20,  // 1.5
		25:  20,  // 2.5
		35:  40,  // 3.5
		-5:  0,   // -0.5
		-15: -20, // -1.5
		-25: -20, // -2.5
	}
	for tick, want := range cases {
		assert.Equal(t, want, Tick(tick, 10, 0, model.Nearest, 1.0), "tick %d", tick)
	}
}

func TestPartialStrengthTruncatesTowardZero(t *testing.T) {
	assert := assert.New(t)
	// shift +1 at half strength is 0.5, truncated to 0
	assert.Equal(int64(44), Tick(44, 15, 0, model.Nearest, 0.5))
	// shift +70 at a quarter is 17.5
	assert.Equal(int64(67), Tick(50, 120, 0, model.Forward, 0.25))
	// shift -70 at a quarter is -17.5
	assert.Equal(int64(53), Tick(70, 120, 0, model.Backward, 0.25))
	assert.Equal(int64(85), Tick(50, 120, 0, model.Forward, 0.5))
}

func TestZeroStrengthIsNoop(t *testing.T) {
	for _, m := range modes {
		for _, start := range []int64{0, 7, 500} {
			for tick := int64(0); tick < 400; tick += 3 {
				assert.Equal(t, tick, Tick(tick, 17, start, m, 0.0))
			}
		}
	}
}

func TestNearestLandsOnGridWithinHalfStep(t *testing.T) {
	for _, grid := range []int64{1, 2, 7, 15, 120, 480} {
		for tick := int64(-1000); tick <= 1000; tick++ {
			got := Tick(tick, grid, 0, model.Nearest, 1.0)
			if got%grid != 0 {
				t.Fatalf("tick %d grid %d: %d is not on the grid", tick, grid, got)
			}
			diff := got - tick
			if diff < 0 {
				diff = -diff
			}
			if 2*diff > grid {
				t.Fatalf("tick %d grid %d: moved %d ticks", tick, grid, diff)
			}
		}
	}
}

func TestFullStrengthIsIdempotent(t *testing.T) {
	for _, m := range modes {
		for _, grid := range []int64{3, 10, 96} {
			for tick := int64(-300); tick <= 300; tick++ {
				once := Tick(tick, grid, 0, m, 1.0)
				twice := Tick(once, grid, 0, m, 1.0)
				if once != twice {
					t.Fatalf("%v tick %d grid %d: %d then %d", m, tick, grid, once, twice)
				}
			}
		}
	}
}

func TestFloorDivMod(t *testing.T) {
	cases := [][4]int64{
		{7, 3, 2, 1},
		{-7, 3, -3, 2},
		{-6, 3, -2, 0},
		{0, 5, 0, 0},
	}
	for _, c := range cases {
		q, r := floorDivMod(c[0], c[1])
		assert.Equal(t, c[2], q, "%d / %d", c[0], c[1])
		assert.Equal(t, c[3], r, "%d %% %d", c[0], c[1])
	}
}
