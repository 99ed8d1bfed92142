package model

type ErrorResponse struct {
	Error string `json:"error"`
}

type AnalyzeResponse struct {
	Filename      string        `json:"filename"`
	Format        uint16        `json:"format"`
	Tracks        int           `json:"tracks"`
	TicksPerBeat  uint16        `json:"ticks_per_beat"`
	Tempo         uint32        `json:"tempo"`
	TimeSignature TimeSignature `json:"time_signature"`
	Notes         []NoteEvent   `json:"notes"`
	NoteCount     int           `json:"note_count"`
	Logs          []string      `json:"logs"`
}

// QuantizeRequest mirrors the quantize form; Strength is a percentage.
type QuantizeRequest struct {
	Notes     []NoteEvent `json:"notes"`
	GridSize  int64       `json:"grid_size"`
	StartTick int64       `json:"start_tick"`
	Mode      string      `json:"mode"`
	Strength  float64     `json:"strength"`
	MinGap    int64       `json:"min_gap"`
	Overlap   string      `json:"overlap"`
}

func (r QuantizeRequest) GridConfig() (GridConfig, error) {
	mode, err := ParseMode(r.Mode)
	if err != nil {
		return GridConfig{}, err
	}
	overlap, err := ParseOverlapAlgorithm(r.Overlap)
	if err != nil {
		return GridConfig{}, err
	}
	cfg := GridConfig{
		GridSize:  r.GridSize,
		StartTick: r.StartTick,
		Mode:      mode,
		Strength:  r.Strength / 100.0,
		MinGap:    r.MinGap,
		Overlap:   overlap,
	}
	return cfg, cfg.Validate()
}

type QuantizeResponse struct {
	QuantizedNotes []QuantizedNote `json:"quantized_notes"`
	Stats          Stats           `json:"stats"`
	Logs           []string        `json:"logs"`
}

type ExportRequest struct {
	Filename       string          `json:"filename"`
	QuantizedNotes []QuantizedNote `json:"quantized_notes"`
	TicksPerBeat   uint16          `json:"ticks_per_beat"`
	Tempo          uint32          `json:"tempo"`
	TimeSignature  TimeSignature   `json:"time_signature"`
	TieOrder       string          `json:"tie_order"`
}

func (r ExportRequest) Header() Header {
	return Header{
		TicksPerBeat:  r.TicksPerBeat,
		Tempo:         r.Tempo,
		TimeSignature: r.TimeSignature,
	}
}

type ExportResponse struct {
	Success     bool   `json:"success"`
	Filename    string `json:"filename"`
	Message     string `json:"message"`
	DownloadURL string `json:"download_url"`
}

type SampleResponse struct {
	Notes         []NoteEvent   `json:"notes"`
	Filename      string        `json:"filename"`
	TicksPerBeat  uint16        `json:"ticks_per_beat"`
	Tempo         uint32        `json:"tempo"`
	TimeSignature TimeSignature `json:"time_signature"`
	Logs          []string      `json:"logs"`
}
