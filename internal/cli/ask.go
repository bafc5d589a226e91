package docchat

import (
	"context"
	"fmt"
	"strings"

	"github.com/mwiater/docchat/internal/display"
	"github.com/spf13/cobra"
)

// askCmd sends one question to the backend and renders the answer.
var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask the backend a question and render the answer",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		question := strings.TrimSpace(strings.Join(args, " "))
		if question == "" {
			return fmt.Errorf("question is required")
		}
		cfg := GetConfig()
		plain, _ := cmd.Flags().GetBool("plain")

		session, err := newSession(cfg, true)
		if err != nil {
			return err
		}

		out := newFrame(cfg, plain)
		out.BeginMessage(display.RoleUser)
		out.Markdown(question)
		_, askErr := session.Ask(context.Background(), question, out)
		fmt.Fprintln(cmd.OutOrStdout(), out.String())
		return askErr
	},
}

func init() {
	askCmd.Flags().Bool("plain", false, "render without colors")
	rootCmd.AddCommand(askCmd)
}
