package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/Fontikcz12/quantizer/midi"
	"github.com/spf13/cobra"
)

var quantizeOpts *quantizeFlags

func init() {
	rootCmd.AddCommand(quantizeCmd)
	quantizeOpts = addQuantizeFlags(quantizeCmd.Flags())
}

var quantizeCmd = &cobra.Command{
	Use:   "quantize <in.mid> [out.mid]",
	Short: "Quantizes a midi file",
	Long:  `Quantizes every note onset of a midi file and writes a single track file. Without an output path the result goes next to the input as <name>_quantized.mid.`,
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := args[0]
		out := filepath.Join(filepath.Dir(in), midi.OutputName(in))
		if len(args) == 2 {
			out = args[1]
		}

		stats, err := quantizeFile(in, out, quantizeOpts)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d notes, total shift %d, average shift %.1f\n",
			out, stats.NoteCount, stats.TotalShift, stats.AvgShift)
		return nil
	},
}
