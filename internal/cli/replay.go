package docchat

import (
	"fmt"

	"github.com/spf13/cobra"
)

// replayCmd redraws the saved conversation.
var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay the conversation log",
	Long:  `Replay every turn stored in the history file exactly as it was first shown.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		plain, _ := cmd.Flags().GetBool("plain")

		session, err := newSession(cfg, true)
		if err != nil {
			return err
		}
		if len(session.Entries()) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No conversation recorded yet.")
			return nil
		}

		out := newFrame(cfg, plain)
		session.Replay(out)
		fmt.Fprintln(cmd.OutOrStdout(), out.String())
		return nil
	},
}

func init() {
	replayCmd.Flags().Bool("plain", false, "render without colors")
	rootCmd.AddCommand(replayCmd)
}
