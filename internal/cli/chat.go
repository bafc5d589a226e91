// internal/cli/chat.go
package docchat

import (
	"context"

	"github.com/mwiater/docchat/internal/tui"
	"github.com/spf13/cobra"
)

var startTUI = tui.Start

// chatCmd represents the 'chat' command.
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long:  `The 'chat' command opens the chat view: answers with their sources, a mode switch and the replayed conversation.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		session, err := newSession(cfg, true)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		return startTUI(ctx, cfg, session)
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
