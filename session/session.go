package session

import (
	"io"

	"github.com/Fontikcz12/quantizer/extract"
	"github.com/Fontikcz12/quantizer/midi"
	"github.com/Fontikcz12/quantizer/model"
	"github.com/Fontikcz12/quantizer/quantize"
	"github.com/Fontikcz12/quantizer/reconstruct"
	"github.com/Fontikcz12/quantizer/sample"
	"github.com/sirupsen/logrus"
	"gitlab.com/gomidi/midi/v2/smf"
)

// Analyze reads a midi file and lists its notes.
func Analyze(filename string, r io.Reader) (model.AnalyzeResponse, error) {
	log := NewLog()
	parsed, err := midi.Read(r)
	if err != nil {
		return model.AnalyzeResponse{}, err
	}
	song, err := midi.Decode(parsed)
	if err != nil {
		return model.AnalyzeResponse{}, err
	}

	res := extract.Tracks(song.Tracks)
	if res.Duplicated > 0 || res.Unmatched > 0 || res.Dangling > 0 {
		logrus.WithFields(logrus.Fields{
			"file":       filename,
			"duplicated": res.Duplicated,
			"unmatched":  res.Unmatched,
			"dangling":   res.Dangling,
		}).Warn("ignored unpaired note events")
	}
	log.Add("MIDI file analyzed: %d notes found", len(res.Notes))

	notes := res.Notes
	if notes == nil {
		notes = []model.NoteEvent{}
	}
	return model.AnalyzeResponse{
		Filename:      filename,
		Format:        song.Format,
		Tracks:        len(song.Tracks),
		TicksPerBeat:  song.TicksPerBeat,
		Tempo:         res.Tempo,
		TimeSignature: res.TimeSignature,
		Notes:         notes,
		NoteCount:     len(notes),
		Logs:          log.Lines(),
	}, nil
}

func Quantize(req model.QuantizeRequest) (model.QuantizeResponse, error) {
	log := NewLog()
	cfg, err := req.GridConfig()
	if err != nil {
		return model.QuantizeResponse{}, err
	}
	if len(req.Notes) == 0 {
		return model.QuantizeResponse{}, model.NewInputError("no notes given")
	}

	log.Add("Quantizing %d notes", len(req.Notes))
	log.Add("Parameters: grid=%d, start=%d, mode=%v, strength=%v%%", cfg.GridSize, cfg.StartTick, cfg.Mode, req.Strength)
	if cfg.MinGap > 0 {
		log.Add("Resolving overlaps with a minimum gap of %d ticks", cfg.MinGap)
	}

	notes, stats, err := quantize.Notes(req.Notes, cfg)
	if err != nil {
		return model.QuantizeResponse{}, err
	}
	for i, n := range notes {
		log.Add("Note %d: %d -> %d (shift: %d)", i+1, n.OnTick, n.QuantizedOn, n.Shift)
	}
	log.Add("Quantization finished!")

	logrus.WithFields(logrus.Fields{
		"notes": stats.NoteCount,
		"grid":  cfg.GridSize,
		"mode":  cfg.Mode,
	}).Info("quantized notes")

	return model.QuantizeResponse{
		QuantizedNotes: notes,
		Stats:          stats,
		Logs:           log.Lines(),
	}, nil
}

// Render builds the midi file for an export request and the name it should
// be saved under.
func Render(req model.ExportRequest) (*smf.SMF, string, error) {
	order, err := reconstruct.ParseTieOrder(req.TieOrder)
	if err != nil {
		return nil, "", err
	}
	events, err := reconstruct.Events(req.QuantizedNotes, req.Header(), order)
	if err != nil {
		return nil, "", err
	}
	s, err := midi.Encode(events, req.TicksPerBeat)
	if err != nil {
		return nil, "", err
	}
	return s, midi.OutputName(req.Filename), nil
}

func Sample() model.SampleResponse {
	log := NewLog()
	log.Add("Sample notes added")
	return sample.Response(log.Lines())
}
