package model

type EventKind uint8

const (
	KindOther EventKind = iota
	KindNoteOn
	KindNoteOff
	KindTempo
	KindTimeSignature
)

// RawEvent is a single track event as the codec hands it over. Delta is
// relative to the previous event of the same track.
type RawEvent struct {
	Delta    uint32
	Kind     EventKind
	Pitch    uint8
	Velocity uint8

	// only meaningful for KindTempo, microseconds per quarter note
	Tempo         uint32
	TimeSignature TimeSignature
}

type NoteEvent struct {
	OnTick   int64 `json:"original_on"`
	OffTick  int64 `json:"original_off"`
	Pitch    uint8 `json:"note"`
	Velocity uint8 `json:"velocity"`
	Track    int   `json:"track"`
	Duration int64 `json:"duration"`
}

type QuantizedNote struct {
	NoteEvent
	QuantizedOn  int64 `json:"quantized_on"`
	QuantizedOff int64 `json:"quantized_off"`
	Shift        int64 `json:"shift"`
}

type Stats struct {
	NoteCount  int     `json:"note_count"`
	TotalShift int64   `json:"total_shift"`
	AvgShift   float64 `json:"avg_shift"`
}

// Header holds the file-level values an exported stream is written with.
type Header struct {
	TicksPerBeat  uint16
	Tempo         uint32
	TimeSignature TimeSignature
}

type Song struct {
	Format       uint16
	TicksPerBeat uint16
	Tracks       [][]RawEvent
}
