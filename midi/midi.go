package midi

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/Fontikcz12/quantizer/model"
	"github.com/pkg/errors"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const microsecondsPerMinute = 60000000

func Read(r io.Reader) (s *smf.SMF, e error) {
	// the parser can panic on malformed input
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r := recover(); r != nil {
			s, e = nil, model.NewCodecError(fmt.Errorf("%v", r), "parsing midi file")
		}
	}()

	res, err := smf.ReadFrom(r)
	if err != nil {
		return nil, model.NewCodecError(err, "parsing midi file")
	}
	return res, nil
}

func ReadMidiFile(path string) (*smf.SMF, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading midi file %s", path)
	}
	defer f.Close()
	return Read(f)
}

// Decode flattens a parsed file into per-track raw events.
func Decode(s *smf.SMF) (model.Song, error) {
	ticks, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok {
		return model.Song{}, model.NewCodecError(errors.Errorf("time format %v", s.TimeFormat), "unsupported midi file")
	}

	song := model.Song{
		Format:       s.Format(),
		TicksPerBeat: uint16(ticks),
		Tracks:       make([][]model.RawEvent, 0, len(s.Tracks)),
	}
	for _, track := range s.Tracks {
		events := make([]model.RawEvent, 0, len(track))
		for _, evt := range track {
			events = append(events, decodeEvent(evt))
		}
		song.Tracks = append(song.Tracks, events)
	}
	return song, nil
}

func decodeEvent(evt smf.Event) model.RawEvent {
	res := model.RawEvent{Delta: evt.Delta}
	var channel, key, velocity uint8
	var bpm float64
	var num, denom, cpt, dsqpq uint8
	switch {
	case evt.Message.GetNoteOn(&channel, &key, &velocity):
		res.Kind = model.KindNoteOn
		res.Pitch = key
		res.Velocity = velocity
	case evt.Message.GetNoteOff(&channel, &key, &velocity):
		res.Kind = model.KindNoteOff
		res.Pitch = key
		res.Velocity = velocity
	case evt.Message.GetMetaTempo(&bpm):
		res.Kind = model.KindTempo
		if bpm > 0 {
			res.Tempo = uint32(math.Round(microsecondsPerMinute / bpm))
		}
	case evt.Message.GetMetaTimeSig(&num, &denom, &cpt, &dsqpq):
		res.Kind = model.KindTimeSignature
		res.TimeSignature = model.TimeSignature{Numerator: num, Denominator: denom}
	}
	return res
}

// Encode writes events into a single track file. Events without a midi
// counterpart are dropped but their delta is carried over to the next one.
func Encode(events []model.RawEvent, ticksPerBeat uint16) (*smf.SMF, error) {
	if ticksPerBeat == 0 || ticksPerBeat > 0x7FFF {
		return nil, model.NewInputError("ticks per beat out of range: %d", ticksPerBeat)
	}

	res := smf.New()
	res.TimeFormat = smf.MetricTicks(ticksPerBeat)

	var track smf.Track
	var carry uint32
	for _, evt := range events {
		msg, ok := encodeEvent(evt)
		if !ok {
			carry += evt.Delta
			continue
		}
		track = append(track, smf.Event{Delta: carry + evt.Delta, Message: msg})
		carry = 0
	}
	track.Close(carry)

	if err := res.Add(track); err != nil {
		return nil, model.NewCodecError(err, "adding track")
	}
	return res, nil
}

func encodeEvent(evt model.RawEvent) (smf.Message, bool) {
	switch evt.Kind {
	case model.KindNoteOn:
		return smf.Message(gomidi.NoteOn(0, evt.Pitch, evt.Velocity)), true
	case model.KindNoteOff:
		return smf.Message(gomidi.NoteOff(0, evt.Pitch)), true
	case model.KindTempo:
		if evt.Tempo == 0 {
			return nil, false
		}
		return smf.MetaTempo(microsecondsPerMinute / float64(evt.Tempo)), true
	case model.KindTimeSignature:
		ts := evt.TimeSignature
		return smf.MetaTimeSig(ts.Numerator, ts.Denominator, 24, 8), true
	}
	return nil, false
}

func Write(w io.Writer, s *smf.SMF) error {
	if _, err := s.WriteTo(w); err != nil {
		return model.NewCodecError(err, "writing midi file")
	}
	return nil
}

// OutputName derives the exported file name, "song.mid" becomes
// "song_quantized.mid".
func OutputName(original string) string {
	base := filepath.Base(strings.ReplaceAll(original, "\\", "/"))
	if base == "." || base == "/" || base == ".." {
		base = "input.mid"
	}
	lower := strings.ToLower(base)
	for _, ext := range []string{".midi", ".mid"} {
		if strings.HasSuffix(lower, ext) {
			base = base[:len(base)-len(ext)]
			break
		}
	}
	return base + "_quantized.mid"
}
