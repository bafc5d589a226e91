package docchat

import (
	"fmt"

	"github.com/mwiater/docchat/internal/display"
	"github.com/spf13/cobra"
)

// renderCmd draws a saved backend response and records it in the conversation log.
var renderCmd = &cobra.Command{
	Use:   "render <response.json|->",
	Short: "Render a backend response and append it to the conversation log",
	Long: `Render a response object ({"answer": ..., "context": [...]}) in the configured mode.
The user question (--question) and the display record are appended to the history file
unless --ephemeral is set.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		plain, _ := cmd.Flags().GetBool("plain")
		ephemeral, _ := cmd.Flags().GetBool("ephemeral")
		question, _ := cmd.Flags().GetString("question")

		resp, err := readResponse(args[0], cmd.InOrStdin())
		if err != nil {
			return err
		}

		session, err := newSession(cfg, !ephemeral)
		if err != nil {
			return err
		}

		out := newFrame(cfg, plain)
		if question != "" {
			if err := session.Submit(question); err != nil {
				return err
			}
			out.BeginMessage(display.RoleUser)
			out.Markdown(question)
		}

		_, renderErr := session.Respond(session.Mode(), resp, out)
		fmt.Fprintln(cmd.OutOrStdout(), out.String())
		return renderErr
	},
}

func init() {
	renderCmd.Flags().Bool("plain", false, "render without colors")
	renderCmd.Flags().Bool("ephemeral", false, "do not write to the history file")
	renderCmd.Flags().StringP("question", "q", "", "user question to record before the answer")
	rootCmd.AddCommand(renderCmd)
}
