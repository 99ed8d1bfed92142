package reconstruct

import (
	"sort"
	"strings"

	"github.com/Fontikcz12/quantizer/model"
)

// maxDelta is the largest value a MIDI variable length quantity can hold.
const maxDelta = 0x0FFFFFFF

// TieOrder decides how a NoteOn and a NoteOff on the same tick are ordered.
type TieOrder uint8

const (
	// TieStable keeps the order the events were generated in, notes sorted
	// by quantized onset with each NoteOn followed by its NoteOff.
	TieStable TieOrder = iota
	// TieOffBeforeOn releases notes before starting new ones on the same tick.
	TieOffBeforeOn
)

func ParseTieOrder(s string) (TieOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "stable":
		return TieStable, nil
	case "off-before-on", "off_before_on":
		return TieOffBeforeOn, nil
	}
	return 0, model.NewInputError("unknown tie order %q", s)
}

type timedEvent struct {
	at  int64
	evt model.RawEvent
}

// Events turns quantized notes into a single delta-timed event stream. The
// stream starts with a tempo and a time signature entry, both at delta 0.
func Events(notes []model.QuantizedNote, h model.Header, order TieOrder) ([]model.RawEvent, error) {
	if len(notes) == 0 {
		return nil, model.NewInputError("no notes to export")
	}
	if h.Tempo == 0 {
		return nil, model.NewInputError("tempo must be positive")
	}
	if h.TimeSignature.Numerator == 0 || h.TimeSignature.Denominator == 0 {
		return nil, model.NewInputError("invalid time signature %v", h.TimeSignature)
	}

	sorted := make([]model.QuantizedNote, len(notes))
	copy(sorted, notes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].QuantizedOn < sorted[j].QuantizedOn
	})

	timeline := make([]timedEvent, 0, 2*len(sorted))
	for i, n := range sorted {
		if n.QuantizedOn < 0 {
			return nil, model.NewInputError("note %d starts before tick 0 (%d)", i+1, n.QuantizedOn)
		}
		if n.QuantizedOff < n.QuantizedOn {
			return nil, model.NewInputError("note %d ends before it starts (%d < %d)", i+1, n.QuantizedOff, n.QuantizedOn)
		}
		if n.Pitch > 127 || n.Velocity > 127 {
			return nil, model.NewInputError("note %d has pitch %d velocity %d", i+1, n.Pitch, n.Velocity)
		}
		timeline = append(timeline,
			timedEvent{at: n.QuantizedOn, evt: model.RawEvent{Kind: model.KindNoteOn, Pitch: n.Pitch, Velocity: n.Velocity}},
			timedEvent{at: n.QuantizedOff, evt: model.RawEvent{Kind: model.KindNoteOff, Pitch: n.Pitch}},
		)
	}

	sort.SliceStable(timeline, func(i, j int) bool {
		if timeline[i].at != timeline[j].at {
			return timeline[i].at < timeline[j].at
		}
		return order == TieOffBeforeOn &&
			timeline[i].evt.Kind == model.KindNoteOff &&
			timeline[j].evt.Kind == model.KindNoteOn
	})

	res := make([]model.RawEvent, 0, len(timeline)+2)
	res = append(res,
		model.RawEvent{Kind: model.KindTempo, Tempo: h.Tempo},
		model.RawEvent{Kind: model.KindTimeSignature, TimeSignature: h.TimeSignature},
	)
	var lastTime int64
	for _, te := range timeline {
		delta := te.at - lastTime
		if delta > maxDelta {
			return nil, model.NewInputError("gap of %d ticks before tick %d is too long for midi", delta, te.at)
		}
		te.evt.Delta = uint32(delta)
		res = append(res, te.evt)
		lastTime = te.at
	}
	return res, nil
}
