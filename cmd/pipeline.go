package cmd

import (
	"os"
	"path/filepath"

	"github.com/Fontikcz12/quantizer/midi"
	"github.com/Fontikcz12/quantizer/model"
	"github.com/Fontikcz12/quantizer/session"
	"github.com/pkg/errors"
)

// quantizeFile runs analyze, quantize and export for a single file on disk.
func quantizeFile(inPath, outPath string, flags *quantizeFlags) (model.Stats, error) {
	f, err := os.Open(inPath)
	if err != nil {
		return model.Stats{}, errors.Wrapf(err, "opening %s", inPath)
	}
	defer f.Close()

	analysis, err := session.Analyze(filepath.Base(inPath), f)
	if err != nil {
		return model.Stats{}, err
	}

	req := flags.request
	req.Notes = analysis.Notes
	quantized, err := session.Quantize(req)
	if err != nil {
		return model.Stats{}, err
	}

	smfFile, _, err := session.Render(model.ExportRequest{
		Filename:       analysis.Filename,
		QuantizedNotes: quantized.QuantizedNotes,
		TicksPerBeat:   analysis.TicksPerBeat,
		Tempo:          analysis.Tempo,
		TimeSignature:  analysis.TimeSignature,
		TieOrder:       flags.tieOrder,
	})
	if err != nil {
		return model.Stats{}, err
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return model.Stats{}, errors.Wrap(err, "creating output dir")
	}
	out, err := os.Create(outPath)
	if err != nil {
		return model.Stats{}, errors.Wrapf(err, "creating %s", outPath)
	}
	if err := midi.Write(out, smfFile); err != nil {
		out.Close()
		return model.Stats{}, err
	}
	return quantized.Stats, errors.Wrapf(out.Close(), "closing %s", outPath)
}
