package quantize

import (
	"sort"

	"github.com/Fontikcz12/quantizer/model"
	"github.com/Fontikcz12/quantizer/util"
)

// ResolveOverlaps shortens notes so each one ends at least minGap ticks
// before the next onset, never below 1 tick of duration. notes is sorted in
// place by quantized onset (stable) and returned. A minGap of 0 leaves
// notes untouched. Unknown algorithms fall back to the adjacent pass.
func ResolveOverlaps(notes []model.QuantizedNote, minGap int64, algo model.OverlapAlgorithm) []model.QuantizedNote {
	if minGap <= 0 {
		return notes
	}
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].QuantizedOn < notes[j].QuantizedOn
	})

	adjacentPass(notes, minGap)
	return notes
}

func adjacentPass(notes []model.QuantizedNote, minGap int64) {
	for i := 0; i+1 < len(notes); i++ {
		current := &notes[i]
		requiredEnd := notes[i+1].QuantizedOn - minGap
		if current.QuantizedOff > requiredEnd {
			current.QuantizedOff = util.Max(requiredEnd, current.QuantizedOn+1)
		}
	}
}
