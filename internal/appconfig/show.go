package appconfig

import (
	"fmt"
	"io"
)

// ShowConfig prints the current configuration summary.
func ShowConfig(out io.Writer, file string, cfg *Config) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}

	if cfg == nil {
		cfg = &Config{}
	}
	opts := cfg.RenderOptions()

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintf(out, "  Debug:           %v\n", cfg.Debug)
	fmt.Fprintf(out, "  App Name:        %s\n", cfg.Title())
	fmt.Fprintf(out, "  Start Mode:      %s\n", cfg.StartMode())
	fmt.Fprintf(out, "  Backend URL:     %s\n", valueOrNone(cfg.BackendURL))
	fmt.Fprintf(out, "  Timeout:         %s\n", cfg.RequestTimeout())
	fmt.Fprintf(out, "  History File:    %s\n", cfg.HistoryPath())
	fmt.Fprintf(out, "  Log File:        %s\n", cfg.LogFilePath())
	fmt.Fprintf(out, "  Width:           %d\n", cfg.RenderWidth())
	fmt.Fprintf(out, "  No Document Match Answer: %s\n", valueOrDefault(opts.NoDocMatchAnswer))
	fmt.Fprintf(out, "  Inquiry No Match Answer:  %s\n", valueOrDefault(opts.InquiryNoMatchAnswer))
	fmt.Fprintf(out, "  Sources Heading:          %s\n", valueOrDefault(opts.SourcesHeading))
}

func valueOrNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

func valueOrDefault(s string) string {
	if s == "" {
		return "(default)"
	}
	return s
}
