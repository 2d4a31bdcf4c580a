package cmd

import (
	"github.com/colortelevision/midi-scale-conv/constants"
	"github.com/colortelevision/midi-scale-conv/midi"
	"github.com/colortelevision/midi-scale-conv/transform"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	fromScale  string
	toScale    string
	outputPath string
)

func init() {
	transformCmd.Flags().StringVar(&fromScale, "from", "ionian", "scale the performance is written in")
	transformCmd.Flags().StringVar(&toScale, "to", "aeolian", "scale to move the performance into")
	transformCmd.Flags().StringVarP(&outputPath, "out", "o", constants.DefaultOutputName, "output file")
	rootCmd.AddCommand(transformCmd)
}

var transformCmd = &cobra.Command{
	Use:   "transform <file.mid>",
	Short: "Moves a MIDI file into another scale",
	Long: `Moves a MIDI file into another scale. The key is detected per track and
each note is mapped to the same degree of the target scale. Notes outside the
source scale snap to the nearest degree first.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTransform(cmd, args[0], outputPath)
	},
}

func runTransform(cmd *cobra.Command, inPath, outPath string) error {
	perf, err := midi.ReadMidiFile(inPath)
	if err != nil {
		return err
	}
	logrus.WithField("file", inPath).Info("Read " + midi.Describe(perf))

	res, reports, err := transform.ByName(perf, fromScale, toScale)
	if err != nil {
		return err
	}
	printReports(cmd.OutOrStdout(), reports)

	if err := midi.WriteMidiFile(outPath, res); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{"from": fromScale, "to": toScale}).Info("Wrote " + outPath)
	return nil
}
