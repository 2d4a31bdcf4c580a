package cmd

import (
	"fmt"
	"io"

	"github.com/colortelevision/midi-scale-conv/midi"
	"github.com/colortelevision/midi-scale-conv/model"
	"github.com/colortelevision/midi-scale-conv/transform"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(detectCmd)
}

var detectCmd = &cobra.Command{
	Use:   "detect <file.mid>",
	Short: "Detects the key of each track",
	Long:  `Detects the key of each track with notes. The key of the first such track is reported as the key of the file.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		perf, err := midi.ReadMidiFile(args[0])
		if err != nil {
			return err
		}
		return detect(cmd.OutOrStdout(), perf)
	},
}

func printReports(w io.Writer, reports []transform.TrackReport) {
	for _, r := range reports {
		if !r.HasKey {
			fmt.Fprintf(w, "track %d %q: no notes\n", r.Index, r.Name)
			continue
		}
		fmt.Fprintf(w, "track %d %q: %d notes, key %s\n", r.Index, r.Name, r.NumNotes, r.KeyName())
	}
}

func detect(w io.Writer, perf model.Performance) error {
	printReports(w, transform.DetectKeys(perf))
	k, err := transform.PrimaryKey(perf)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Detected key: %s\n", model.PitchClassName(k))
	return nil
}
