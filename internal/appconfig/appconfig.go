// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/mwiater/docchat/internal/display"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// DefaultAppName is the title shown at the top of the chat view.
	DefaultAppName = "社内情報特化型生成AI検索アプリ"
	// defaultRequestTimeout is the default timeout for backend requests.
	defaultRequestTimeout = 120 * time.Second
	// defaultHistoryFile is where the conversation log is kept when the config omits it.
	defaultHistoryFile = "history/conversation.json"
	// defaultWidth is the render width used outside of the interactive view.
	defaultWidth = 100
)

// Config represents the top-level application configuration.
type Config struct {
	Debug                bool   `json:"debug"`
	AppName              string `json:"appName,omitempty"`
	Mode                 string `json:"mode,omitempty"`
	BackendURL           string `json:"backendURL,omitempty"`
	TimeoutSeconds       int    `json:"timeout,omitempty" mapstructure:"timeout"`
	HistoryFile          string `json:"historyFile,omitempty"`
	LogFile              string `json:"logFile,omitempty"`
	Width                int    `json:"width,omitempty"`
	NoDocMatchAnswer     string `json:"noDocMatchAnswer,omitempty"`
	InquiryNoMatchAnswer string `json:"inquiryNoMatchAnswer,omitempty"`
	SourcesHeading       string `json:"sourcesHeading,omitempty"`
	ConfigPath           string `json:"-" mapstructure:"-"`
}

// RequestTimeout returns the timeout duration for backend requests, falling back to the default if not specified.
func (c Config) RequestTimeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return defaultRequestTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// LogFilePath returns the path to the application log file, applying a default if not set.
func (c Config) LogFilePath() string {
	if path := c.LogFile; strings.TrimSpace(path) != "" {
		return path
	}
	return "docchat.log"
}

// HistoryPath returns the conversation log file.
func (c Config) HistoryPath() string {
	if path := strings.TrimSpace(c.HistoryFile); path != "" {
		return path
	}
	return defaultHistoryFile
}

// Title returns the application title.
func (c Config) Title() string {
	if name := strings.TrimSpace(c.AppName); name != "" {
		return name
	}
	return DefaultAppName
}

// RenderWidth returns the width used for non-interactive output.
func (c Config) RenderWidth() int {
	if c.Width <= 0 {
		return defaultWidth
	}
	return c.Width
}

// StartMode returns the configured initial mode, or search when unset or unknown.
func (c Config) StartMode() display.Mode {
	mode, err := display.ParseMode(c.Mode)
	if err != nil {
		return display.ModeSearch
	}
	return mode
}

// RenderOptions returns the sentinel answers and heading for the renderers.
func (c Config) RenderOptions() display.Options {
	return display.Options{
		NoDocMatchAnswer:     c.NoDocMatchAnswer,
		InquiryNoMatchAnswer: c.InquiryNoMatchAnswer,
		SourcesHeading:       c.SourcesHeading,
	}
}

// Validate reports configuration values that cannot be used.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Mode) != "" {
		if _, err := display.ParseMode(c.Mode); err != nil {
			return err
		}
	}
	if c.BackendURL != "" {
		u, err := url.Parse(c.BackendURL)
		if err != nil {
			return fmt.Errorf("invalid backendURL %q: %w", c.BackendURL, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("invalid backendURL %q: scheme must be http or https", c.BackendURL)
		}
	}
	if c.TimeoutSeconds < 0 {
		return errors.New("timeout must not be negative")
	}
	return nil
}

// Load reads the application configuration from the specified path.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	config, err := loadFromPath(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("no configuration file found at %q", path)
		}
		return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	config.ConfigPath = path
	return config, nil
}

// loadFromPath is a helper function that loads the configuration from a specific file path.
func loadFromPath(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var config Config
	if err := json.NewDecoder(file).Decode(&config); err != nil {
		return Config{}, err
	}
	if config.TimeoutSeconds <= 0 {
		config.TimeoutSeconds = int(defaultRequestTimeout.Seconds())
	}

	return config, nil
}
