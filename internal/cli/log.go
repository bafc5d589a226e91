package docchat

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/k0kubun/pp/v3"
	"github.com/mwiater/docchat/internal/convlog"
	"github.com/spf13/cobra"
)

var (
	okText   = color.New(color.FgGreen).SprintFunc()
	failText = color.New(color.FgRed).SprintFunc()
)

// logCmd groups commands that manage the conversation log.
var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Manage the conversation log",
}

// logResetCmd clears the conversation log, as a session reset does.
var logResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the conversation log",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := GetConfig().HistoryPath()
		if err := convlog.NewStore(path).Clear(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s cleared %s\n", okText("✓"), path)
		return nil
	},
}

// logValidateCmd checks a saved log against the record schema.
var logValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a conversation log file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := GetConfig().HistoryPath()
		if len(args) == 1 {
			path = args[0]
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		l, err := convlog.DecodeStrict(data)
		if err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %v\n", failText("✗"), path, err)
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %d messages (session %s)\n", okText("✓"), path, l.Len(), l.SessionID)
		return nil
	},
}

// logDumpCmd prints the decoded records for debugging.
var logDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the decoded conversation log",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := convlog.NewStore(GetConfig().HistoryPath()).Load()
		if err != nil {
			return err
		}
		printer := pp.New()
		printer.SetOutput(cmd.OutOrStdout())
		printer.SetColoringEnabled(false)
		for i, e := range l.Entries {
			fmt.Fprintf(cmd.OutOrStdout(), "#%d %s\n", i, e.Role)
			printer.Println(e.Content)
		}
		return nil
	},
}

func init() {
	logCmd.AddCommand(logResetCmd, logValidateCmd, logDumpCmd)
	rootCmd.AddCommand(logCmd)
}
