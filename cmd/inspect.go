package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/Fontikcz12/quantizer/extract"
	"github.com/Fontikcz12/quantizer/midi"
	"github.com/Fontikcz12/quantizer/model"
	"github.com/dustin/go-humanize"
	"github.com/hako/durafmt"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.mid>",
	Short: "Inspects a midi file",
	Long:  `Prints the header, per track event counts and the approximate length of a midi file.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return inspect(cmd, args[0])
	},
}

func inspect(cmd *cobra.Command, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.Wrap(err, "inspecting midi file")
	}
	parsed, err := midi.ReadMidiFile(path)
	if err != nil {
		return err
	}
	song, err := midi.Decode(parsed)
	if err != nil {
		return err
	}
	res := extract.Tracks(song.Tracks)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "file: %v (%v)\n", path, humanize.Bytes(uint64(info.Size())))
	fmt.Fprintf(out, "format: %v, ticks per beat: %v\n", song.Format, song.TicksPerBeat)
	fmt.Fprintf(out, "tempo: %v µs/beat, time signature: %v\n", res.Tempo, res.TimeSignature)

	var lastTick int64
	for i, track := range song.Tracks {
		var abs int64
		counts := make(map[model.EventKind]int)
		for _, evt := range track {
			abs += int64(evt.Delta)
			counts[evt.Kind]++
		}
		if abs > lastTick {
			lastTick = abs
		}
		fmt.Fprintf(out, "track %v: %v events, %v note on, %v note off\n",
			i, len(track), counts[model.KindNoteOn], counts[model.KindNoteOff])
	}

	fmt.Fprintf(out, "notes: %v (duplicated %v, unmatched %v, dangling %v)\n",
		len(res.Notes), res.Duplicated, res.Unmatched, res.Dangling)
	fmt.Fprintf(out, "length: %v\n", durafmt.Parse(songLength(lastTick, song.TicksPerBeat, res.Tempo)).LimitFirstN(2))
	return nil
}

// songLength assumes a single tempo for the whole file.
func songLength(ticks int64, ticksPerBeat uint16, tempo uint32) time.Duration {
	if ticksPerBeat == 0 {
		return 0
	}
	return time.Duration(ticks) * time.Duration(tempo) * time.Microsecond / time.Duration(ticksPerBeat)
}
