package docchat

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mwiater/docchat/internal/appconfig"
	"github.com/mwiater/docchat/internal/chat"
	"github.com/mwiater/docchat/internal/display"
	"github.com/mwiater/docchat/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// resetLocalFlags restores every subcommand flag to its default between runs.
func resetLocalFlags(cmd *cobra.Command) {
	cmd.LocalNonPersistentFlags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	for _, sub := range cmd.Commands() {
		resetLocalFlags(sub)
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetLocalFlags(rootCmd)
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		_ = logging.Close()
	})
	err := rootCmd.Execute()
	return buf.String(), err
}

func baseArgs(dir string) []string {
	return []string{
		"--config", filepath.Join(dir, "missing.json"),
		"--historyFile", filepath.Join(dir, "history.json"),
		"--logFile", filepath.Join(dir, "docchat.log"),
		"--mode", "search",
		"--backendURL", "",
	}
}

func TestRenderThenReplay(t *testing.T) {
	dir := t.TempDir()
	resp := writeFile(t, dir, "resp.json", `{"answer":"hello","context":[
		{"metadata":{"source":"a.pdf","page":0}},
		{"metadata":{"source":"a.pdf","page":0}},
		{"metadata":{"source":"b.txt"}}
	]}`)

	out, err := run(t, append([]string{"render", resp, "--plain", "-q", "where are the docs?"}, baseArgs(dir)...)...)
	if err != nil {
		t.Fatalf("render error: %v\n%s", err, out)
	}
	if strings.Count(out, "a.pdf（ページNo.1）") != 1 || !strings.Contains(out, "b.txt") {
		t.Fatalf("unexpected render output:\n%s", out)
	}

	replayed, err := run(t, append([]string{"replay", "--plain"}, baseArgs(dir)...)...)
	if err != nil {
		t.Fatalf("replay error: %v\n%s", err, replayed)
	}
	for _, want := range []string{"where are the docs?", "hello", "a.pdf（ページNo.1）", "b.txt"} {
		if !strings.Contains(replayed, want) {
			t.Fatalf("expected %q in replay:\n%s", want, replayed)
		}
	}

	validated, err := run(t, append([]string{"log", "validate"}, baseArgs(dir)...)...)
	if err != nil || !strings.Contains(validated, "2 messages") {
		t.Fatalf("validate: err=%v out=%s", err, validated)
	}

	dumped, err := run(t, append([]string{"log", "dump"}, baseArgs(dir)...)...)
	if err != nil || !strings.Contains(dumped, "#1 assistant") {
		t.Fatalf("dump: err=%v out=%s", err, dumped)
	}

	if _, err := run(t, append([]string{"log", "reset"}, baseArgs(dir)...)...); err != nil {
		t.Fatalf("reset error: %v", err)
	}
	empty, err := run(t, append([]string{"replay"}, baseArgs(dir)...)...)
	if err != nil || !strings.Contains(empty, "No conversation recorded yet.") {
		t.Fatalf("replay after reset: err=%v out=%s", err, empty)
	}
}

func TestRenderInquiryMissingSourceFails(t *testing.T) {
	dir := t.TempDir()
	resp := writeFile(t, dir, "resp.json", `{"answer":"x","context":[{"metadata":{"page":1}}]}`)
	args := append([]string{"render", resp, "--plain", "--ephemeral"}, baseArgs(dir)...)
	args = append(args, "--mode", "inquiry")
	if _, err := run(t, args...); err == nil {
		t.Fatalf("expected missing source error")
	}
	if _, err := os.Stat(filepath.Join(dir, "history.json")); !os.IsNotExist(err) {
		t.Fatalf("ephemeral render must not write history, stat err=%v", err)
	}
}

func TestPersistentPreRunEUsesConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.json", `{"mode":"inquiry","sourcesHeading":"出典","width":72}`)
	for _, name := range []string{"mode", "width", "historyFile", "logFile", "backendURL"} {
		flag := rootCmd.PersistentFlags().Lookup(name)
		_ = flag.Value.Set(flag.DefValue)
		flag.Changed = false
	}

	out, err := run(t, "show", "config", "--config", cfgPath, "--logFile", filepath.Join(dir, "docchat.log"))
	if err != nil {
		t.Fatalf("show config error: %v", err)
	}
	cfg := GetConfig()
	if cfg.RenderWidth() != 72 || cfg.SourcesHeading != "出典" {
		t.Fatalf("config not applied: %+v", cfg)
	}
	if !strings.Contains(out, "Config file: "+cfgPath) {
		t.Fatalf("expected config path in output:\n%s", out)
	}
}

func TestChatCmdStartsTUI(t *testing.T) {
	dir := t.TempDir()
	original := startTUI
	t.Cleanup(func() { startTUI = original })

	called := 0
	startTUI = func(ctx context.Context, cfg *appconfig.Config, session *chat.Session) error {
		called++
		if cfg == nil || session == nil {
			t.Errorf("expected config and session")
		}
		return nil
	}
	if _, err := run(t, append([]string{"chat"}, baseArgs(dir)...)...); err != nil {
		t.Fatalf("chat error: %v", err)
	}
	if called != 1 {
		t.Fatalf("expected TUI to start once, got %d", called)
	}
}

func TestGetConfigReadsFileBeforeRootRuns(t *testing.T) {
	savedConfig, savedFile := currentConfig, cfgFile
	t.Cleanup(func() { currentConfig, cfgFile = savedConfig, savedFile })

	dir := t.TempDir()
	currentConfig = nil
	cfgFile = writeFile(t, dir, "config.json", `{"mode":"inquiry","historyFile":"h.json"}`)

	cfg := GetConfig()
	if cfg.HistoryPath() != "h.json" || cfg.StartMode() != display.ModeInquiry || cfg.ConfigPath != cfgFile {
		t.Fatalf("unexpected config %#v", cfg)
	}

	cfgFile = filepath.Join(dir, "missing.json")
	if got := GetConfig(); got.HistoryFile != "" {
		t.Fatalf("expected defaults for a missing file, got %#v", got)
	}
}

func TestCommandHelpUsesPlainPunctuation(t *testing.T) {
	var check func(cmd *cobra.Command)
	check = func(cmd *cobra.Command) {
		if strings.Contains(cmd.Short, "—") {
			t.Fatalf("%s: short help %q contains an em dash", cmd.CommandPath(), cmd.Short)
		}
		for _, sub := range cmd.Commands() {
			check(sub)
		}
	}
	check(rootCmd)
}
