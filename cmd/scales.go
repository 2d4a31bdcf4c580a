package cmd

import (
	"fmt"
	"io"

	"github.com/colortelevision/midi-scale-conv/scale"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(scalesCmd)
}

var scalesCmd = &cobra.Command{
	Use:   "scales",
	Short: "Lists the available scales",
	Long:  `Lists the available scales. Either the name or the short name in the first column can be passed to --from and --to.`,
	Run: func(cmd *cobra.Command, args []string) {
		printScales(cmd.OutOrStdout())
	},
}

func printScales(w io.Writer) {
	for _, s := range scale.Catalog {
		fmt.Fprintf(w, "%-16s %-24s %-40v %s\n", scale.Slug(s.Name), s.Name, s.Pattern, s.Example)
	}
}
