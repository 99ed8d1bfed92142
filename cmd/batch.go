package cmd

import (
	"fmt"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/Fontikcz12/quantizer/midi"
	"github.com/Fontikcz12/quantizer/util"
	"github.com/pkg/errors"
	"github.com/remeh/sizedwaitgroup"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	batchOpts *quantizeFlags
	batchJobs int
	batchMax  int
)

func init() {
	rootCmd.AddCommand(batchCmd)
	batchOpts = addQuantizeFlags(batchCmd.Flags())
	batchCmd.Flags().IntVar(&batchJobs, "jobs", runtime.NumCPU(), "files processed in parallel")
	batchCmd.Flags().IntVar(&batchMax, "max", 0, "process at most this many files, 0 for all")
}

var batchCmd = &cobra.Command{
	Use:   "batch <dir> <outdir>",
	Short: "Quantizes every midi file below a directory",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := util.GatherAllMidiPaths(args[0], batchMax)
		if err != nil {
			return errors.Wrap(err, "collecting midi files")
		}
		failed := runBatch(paths, args[0], args[1], batchJobs)
		fmt.Fprintf(cmd.OutOrStdout(), "Quantized %d of %d midi files\n", len(paths)-failed, len(paths))
		if failed > 0 {
			return errors.Errorf("%d files failed", failed)
		}
		return nil
	},
}

// runBatch mirrors the input tree below outDir and returns how many files
// failed. One bad file does not stop the others.
func runBatch(paths []string, inDir, outDir string, jobs int) int {
	if jobs < 1 {
		jobs = 1
	}
	var mu sync.Mutex
	var failed int

	wg := sizedwaitgroup.New(jobs)
	for i, path := range paths {
		wg.Add()
		go func(i int, path string) {
			defer wg.Done()
			log := logrus.WithField("file", path)

			rel, err := filepath.Rel(inDir, path)
			if err != nil {
				rel = filepath.Base(path)
			}
			out := filepath.Join(outDir, filepath.Dir(rel), midi.OutputName(rel))
			stats, err := quantizeFile(path, out, batchOpts)
			if err != nil {
				log.WithError(err).Warn("skipping")
				mu.Lock()
				failed++
				mu.Unlock()
				return
			}
			log.WithField("notes", stats.NoteCount).Infof("processed %v of %v midi files", i+1, len(paths))
		}(i, path)
	}
	wg.Wait()
	return failed
}
