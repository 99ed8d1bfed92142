package midi

import (
	"bytes"
	"testing"

	"github.com/Fontikcz12/quantizer/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	events := []model.RawEvent{
		{Kind: model.KindTempo, Tempo: 500000},
		{Kind: model.KindTimeSignature, TimeSignature: model.TimeSignature{Numerator: 3, Denominator: 4}},
		{Delta: 120, Kind: model.KindNoteOn, Pitch: 60, Velocity: 100},
		{Delta: 60, Kind: model.KindNoteOff, Pitch: 60},
		{Delta: 300, Kind: model.KindNoteOn, Pitch: 62, Velocity: 90},
		{Delta: 60, Kind: model.KindNoteOff, Pitch: 62},
	}
	s, err := Encode(events, 480)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, s))

	parsed, err := Read(&buf)
	require.NoError(t, err)
	song, err := Decode(parsed)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal(uint16(480), song.TicksPerBeat)
	require.Len(t, song.Tracks, 1)

	// the codec appends an end of track event
	got := song.Tracks[0]
	require.Len(t, got, len(events)+1)
	assert.Equal(events, got[:len(events)])
	assert.Equal(model.KindOther, got[len(events)].Kind)
}

func TestEncodeCarriesDeltaOfDroppedEvents(t *testing.T) {
	events := []model.RawEvent{
		{Delta: 10, Kind: model.KindNoteOn, Pitch: 60, Velocity: 100},
		{Delta: 5, Kind: model.KindOther},
		{Delta: 20, Kind: model.KindNoteOff, Pitch: 60},
	}
	s, err := Encode(events, 96)
	require.NoError(t, err)
	require.Len(t, s.Tracks, 1)
	assert.Equal(t, uint32(10), s.Tracks[0][0].Delta)
	assert.Equal(t, uint32(25), s.Tracks[0][1].Delta)
}

func TestEncodeRejectsBadResolution(t *testing.T) {
	_, err := Encode(nil, 0)
	assert.True(t, model.IsInputError(err))
}

func TestReadGarbage(t *testing.T) {
	_, err := Read(bytes.NewReader([]byte("definitely not a midi file")))
	assert.Error(t, err)
	assert.True(t, model.IsCodecError(err))
}

func TestOutputName(t *testing.T) {
	cases := map[string]string{
		"song.mid":          "song_quantized.mid",
		"song.MIDI":         "song_quantized.mid",
		"song.midi":         "song_quantized.mid",
		"take.1.mid":        "take.1_quantized.mid",
		"noext":             "noext_quantized.mid",
		"../../etc/passwd":  "passwd_quantized.mid",
		`C:\music\song.mid`: "song_quantized.mid",
		"":                  "input_quantized.mid",
	}
	for in, want := range cases {
		assert.Equal(t, want, OutputName(in), in)
	}
}
