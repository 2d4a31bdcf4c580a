package cmd

import (
	"github.com/colortelevision/midi-scale-conv/constants"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "scaleconv",
	Short: "Moves MIDI performances from one scale to another",
	Long: `Detects the key of each track in a MIDI file and remaps every note
from a source scale to the same degree of a target scale, keeping rhythm,
velocity and octave.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return errors.Wrap(err, "bad --log-level")
		}
		logrus.SetLevel(level)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", constants.GetLogLevel(), "debug, info, warn or error")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
