package quantize

import (
	"strconv"

	"github.com/Fontikcz12/quantizer/model"
	"github.com/Fontikcz12/quantizer/util"
)

// Notes snaps every note onset to the grid described by cfg and keeps each
// note's duration. Overlaps are resolved afterwards unless cfg.MinGap is 0.
// The returned notes are in onset order when overlaps were resolved and in
// input order otherwise.
func Notes(notes []model.NoteEvent, cfg model.GridConfig) ([]model.QuantizedNote, model.Stats, error) {
	if err := cfg.Validate(); err != nil {
		return nil, model.Stats{}, err
	}
	if len(notes) == 0 {
		return nil, model.Stats{}, model.NewInputError("no notes to quantize")
	}

	res := make([]model.QuantizedNote, 0, len(notes))
	var totalShift int64
	for i, n := range notes {
		if err := validateNote(n); err != nil {
			return nil, model.Stats{}, model.NewInputError("note %d: %v", i+1, err)
		}
		on := Tick(n.OnTick, cfg.GridSize, cfg.StartTick, cfg.Mode, cfg.Strength)
		q := model.QuantizedNote{
			NoteEvent:    n,
			QuantizedOn:  on,
			QuantizedOff: on + n.Duration,
			Shift:        on - n.OnTick,
		}
		totalShift += util.Abs(q.Shift)
		res = append(res, q)
	}

	if cfg.MinGap > 0 {
		res = ResolveOverlaps(res, cfg.MinGap, cfg.Overlap)
	}

	stats := model.Stats{
		NoteCount:  len(res),
		TotalShift: totalShift,
		AvgShift:   avgShift(totalShift, len(res)),
	}
	return res, stats, nil
}

// avgShift rounds to one decimal on the exact binary value, ties to even,
// so 0.25 gives 0.2 and 0.35 (stored just below) gives 0.3.
func avgShift(total int64, count int) float64 {
	avg := float64(total) / float64(count)
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(avg, 'f', 1, 64), 64)
	if err != nil {
		return avg
	}
	return rounded
}

func validateNote(n model.NoteEvent) error {
	switch {
	case n.OnTick < 0:
		return model.NewInputError("negative onset %d", n.OnTick)
	case n.Duration < 0:
		return model.NewInputError("negative duration %d", n.Duration)
	case n.Pitch > 127:
		return model.NewInputError("pitch %d out of range", n.Pitch)
	case n.Velocity > 127:
		return model.NewInputError("velocity %d out of range", n.Velocity)
	}
	return nil
}
