package sample

import (
	"github.com/Fontikcz12/quantizer/constants"
	"github.com/Fontikcz12/quantizer/model"
)

const Filename = "sample_notes.mid"

var onsets = []struct {
	on    int64
	pitch uint8
}{
	{44, 60},
	{376, 62},
	{433, 64},
	{487, 65},
	{533, 67},
	{600, 69},
}

// Notes returns six slightly off-grid quarter-ish notes on a C major run,
// each 60 ticks long at velocity 100.
func Notes() []model.NoteEvent {
	const duration = 60
	res := make([]model.NoteEvent, 0, len(onsets))
	for _, o := range onsets {
		res = append(res, model.NoteEvent{
			OnTick:   o.on,
			OffTick:  o.on + duration,
			Pitch:    o.pitch,
			Velocity: 100,
			Duration: duration,
		})
	}
	return res
}

func Response(logs []string) model.SampleResponse {
	return model.SampleResponse{
		Notes:         Notes(),
		Filename:      Filename,
		TicksPerBeat:  constants.DefaultTicksPerBeat,
		Tempo:         constants.DefaultTempo,
		TimeSignature: constants.DefaultTimeSignature,
		Logs:          logs,
	}
}
