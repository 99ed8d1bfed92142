package extract

import (
	"sort"

	"github.com/Fontikcz12/quantizer/constants"
	"github.com/Fontikcz12/quantizer/model"
)

// Pending is a NoteOn still waiting for its NoteOff.
type Pending struct {
	OnTick   int64
	Velocity uint8
}

// OpenNotePolicy decides which note stays pending when a NoteOn arrives for
// a pitch that is already sounding on the same track.
type OpenNotePolicy func(pending, incoming Pending) Pending

// ReplacePending drops the earlier note and keeps the new one. This is the
// default and the earlier note is never emitted.
func ReplacePending(_, incoming Pending) Pending {
	return incoming
}

// KeepFirst ignores the repeated NoteOn.
func KeepFirst(pending, _ Pending) Pending {
	return pending
}

type Result struct {
	Notes         []model.NoteEvent
	Tempo         uint32
	TimeSignature model.TimeSignature

	// leniency counters, none of these are errors
	Duplicated int // NoteOn for an already sounding pitch
	Unmatched  int // NoteOff without a pending NoteOn
	Dangling   int // NoteOn never closed before the end of its track
}

func Tracks(tracks [][]model.RawEvent) Result {
	return TracksWithPolicy(tracks, ReplacePending)
}

// TracksWithPolicy pairs NoteOn/NoteOff events per track and pitch into notes
// with absolute ticks, ordered by onset. Tempo and time signature are the last
// ones seen, walking tracks in order.
func TracksWithPolicy(tracks [][]model.RawEvent, policy OpenNotePolicy) Result {
	res := Result{
		Tempo:         constants.DefaultTempo,
		TimeSignature: constants.DefaultTimeSignature,
	}

	for trackIdx, events := range tracks {
		var absTicks int64
		pending := make(map[uint8]Pending)
		for _, evt := range events {
			absTicks += int64(evt.Delta)
			switch {
			case evt.Kind == model.KindNoteOn && evt.Velocity > 0:
				incoming := Pending{OnTick: absTicks, Velocity: evt.Velocity}
				if prev, ok := pending[evt.Pitch]; ok {
					res.Duplicated++
					incoming = policy(prev, incoming)
				}
				pending[evt.Pitch] = incoming
			// NoteOn with velocity 0 is a note off
			case evt.Kind == model.KindNoteOn, evt.Kind == model.KindNoteOff:
				p, ok := pending[evt.Pitch]
				if !ok {
					res.Unmatched++
					continue
				}
				delete(pending, evt.Pitch)
				res.Notes = append(res.Notes, model.NoteEvent{
					OnTick:   p.OnTick,
					OffTick:  absTicks,
					Pitch:    evt.Pitch,
					Velocity: p.Velocity,
					Track:    trackIdx,
					Duration: absTicks - p.OnTick,
				})
			case evt.Kind == model.KindTempo:
				res.Tempo = evt.Tempo
			case evt.Kind == model.KindTimeSignature:
				res.TimeSignature = evt.TimeSignature
			}
		}
		res.Dangling += len(pending)
	}

	sort.SliceStable(res.Notes, func(i, j int) bool {
		return res.Notes[i].OnTick < res.Notes[j].OnTick
	})
	return res
}
