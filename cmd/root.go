package cmd

import (
	"github.com/Fontikcz12/quantizer/constants"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "quantizer",
	Short: "MIDI note quantizer",
	Long:  `Snaps MIDI note onsets to a rhythmic grid and writes the result back out as a MIDI file.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// a missing .env is fine, the environment still applies
		if err := godotenv.Load(); err == nil {
			logrus.Debug("loaded .env file")
		}
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		logrus.SetLevel(constants.GetLogLevel())
	},
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
