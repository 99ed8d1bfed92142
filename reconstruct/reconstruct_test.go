package reconstruct

import (
	"testing"

	"github.com/Fontikcz12/quantizer/extract"
	"github.com/Fontikcz12/quantizer/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var header = model.Header{
	TicksPerBeat:  480,
	Tempo:         500000,
	TimeSignature: model.TimeSignature{Numerator: 4, Denominator: 4},
}

func qn(pitch, velocity uint8, on, off int64) model.QuantizedNote {
	return model.QuantizedNote{
		NoteEvent:    model.NoteEvent{Pitch: pitch, Velocity: velocity, Duration: off - on},
		QuantizedOn:  on,
		QuantizedOff: off,
	}
}

func TestEventsAreDeltaEncoded(t *testing.T) {
	notes := []model.QuantizedNote{qn(62, 90, 480, 540), qn(60, 100, 120, 180)}
	events, err := Events(notes, header, TieStable)
	require.NoError(t, err)

	assert.Equal(t, []model.RawEvent{
		{Kind: model.KindTempo, Tempo: 500000},
		{Kind: model.KindTimeSignature, TimeSignature: header.TimeSignature},
		{Delta: 120, Kind: model.KindNoteOn, Pitch: 60, Velocity: 100},
		{Delta: 60, Kind: model.KindNoteOff, Pitch: 60},
		{Delta: 300, Kind: model.KindNoteOn, Pitch: 62, Velocity: 90},
		{Delta: 60, Kind: model.KindNoteOff, Pitch: 62},
	}, events)
}

func kindsAndPitches(events []model.RawEvent) [][2]int {
	var res [][2]int
	for _, e := range events[2:] {
		res = append(res, [2]int{int(e.Kind), int(e.Pitch)})
	}
	return res
}

func TestAbuttingNotesReleaseFirst(t *testing.T) {
	notes := []model.QuantizedNote{qn(62, 100, 120, 240), qn(60, 100, 0, 120)}
	events, err := Events(notes, header, TieStable)
	require.NoError(t, err)

	on, off := int(model.KindNoteOn), int(model.KindNoteOff)
	assert.Equal(t, [][2]int{{on, 60}, {off, 60}, {on, 62}, {off, 62}}, kindsAndPitches(events))
}

func TestTieOrder(t *testing.T) {
	// the zero length note 60 is generated after 62's NoteOn on the same tick
	notes := []model.QuantizedNote{qn(62, 100, 100, 110), qn(60, 100, 100, 100)}
	on, off := int(model.KindNoteOn), int(model.KindNoteOff)

	stable, err := Events(notes, header, TieStable)
	require.NoError(t, err)
	assert.Equal(t, [][2]int{{on, 62}, {on, 60}, {off, 60}, {off, 62}}, kindsAndPitches(stable))

	offFirst, err := Events(notes, header, TieOffBeforeOn)
	require.NoError(t, err)
	assert.Equal(t, [][2]int{{off, 60}, {on, 62}, {on, 60}, {off, 62}}, kindsAndPitches(offFirst))

	var deltas []uint32
	for _, e := range offFirst[2:] {
		deltas = append(deltas, e.Delta)
	}
	assert.Equal(t, []uint32{100, 0, 0, 10}, deltas)
}

func TestRoundTripThroughExtractor(t *testing.T) {
	notes := []model.QuantizedNote{
		qn(60, 100, 0, 100),
		qn(64, 80, 120, 200),
		qn(67, 70, 240, 480),
		qn(72, 60, 250, 300),
	}
	events, err := Events(notes, header, TieStable)
	require.NoError(t, err)

	res := extract.Tracks([][]model.RawEvent{events})
	require.Len(t, res.Notes, len(notes))
	for i, n := range res.Notes {
		assert.Equal(t, notes[i].QuantizedOn, n.OnTick)
		assert.Equal(t, notes[i].QuantizedOff, n.OffTick)
		assert.Equal(t, notes[i].Pitch, n.Pitch)
		assert.Equal(t, notes[i].Velocity, n.Velocity)
	}
	assert.Equal(t, header.Tempo, res.Tempo)
	assert.Equal(t, header.TimeSignature, res.TimeSignature)
}

func TestEventsRejectsBadInput(t *testing.T) {
	cases := map[string]struct {
		notes []model.QuantizedNote
		h     model.Header
	}{
		"no notes":       {nil, header},
		"negative onset": {[]model.QuantizedNote{qn(60, 100, -10, 20)}, header},
		"ends early":     {[]model.QuantizedNote{qn(60, 100, 50, 20)}, header},
		"zero tempo":     {[]model.QuantizedNote{qn(60, 100, 0, 20)}, model.Header{TimeSignature: header.TimeSignature, Tempo: 0}},
		"huge gap":       {[]model.QuantizedNote{qn(60, 100, 0x10000000, 0x10000010)}, header},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Events(c.notes, c.h, TieStable)
			assert.True(t, model.IsInputError(err))
		})
	}
}

func TestParseTieOrder(t *testing.T) {
	order, err := ParseTieOrder("")
	require.NoError(t, err)
	assert.Equal(t, TieStable, order)

	order, err = ParseTieOrder("off-before-on")
	require.NoError(t, err)
	assert.Equal(t, TieOffBeforeOn, order)

	_, err = ParseTieOrder("random")
	assert.True(t, model.IsInputError(err))
}
