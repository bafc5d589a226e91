package docchat

import (
	"fmt"

	"github.com/mwiater/docchat/internal/display"
	"github.com/spf13/cobra"
)

// showModesCmd describes the answer modes.
var showModesCmd = &cobra.Command{
	Use:   "modes",
	Short: "Describe the answer modes",
	Run: func(cmd *cobra.Command, args []string) {
		plain, _ := cmd.Flags().GetBool("plain")
		out := newFrame(GetConfig(), plain)
		display.DescribeModes(out)
		fmt.Fprintln(cmd.OutOrStdout(), out.String())
	},
}

func init() {
	showModesCmd.Flags().Bool("plain", false, "render without colors")
	showCmd.AddCommand(showModesCmd)
}
