package docchat

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mwiater/docchat/internal/appconfig"
	"github.com/mwiater/docchat/internal/backend"
	"github.com/mwiater/docchat/internal/chat"
	"github.com/mwiater/docchat/internal/convlog"
	"github.com/mwiater/docchat/internal/display"
	"github.com/mwiater/docchat/internal/terminal"
)

// newSession opens the session stored in the history file. persist=false
// keeps the conversation in memory only.
func newSession(cfg *appconfig.Config, persist bool) (*chat.Session, error) {
	opts := chat.Options{
		Mode:   cfg.StartMode(),
		Render: cfg.RenderOptions(),
		Debug:  cfg.Debug,
	}
	if persist {
		opts.Store = convlog.NewStore(cfg.HistoryPath())
	}

	client, err := backend.New(cfg)
	switch {
	case err == nil:
		opts.Backend = client
	case !errors.Is(err, backend.ErrNoEndpoint):
		return nil, err
	}

	return chat.NewSession(opts)
}

// frame is the surface used by the non-interactive commands.
type frame interface {
	display.Surface
	String() string
}

func newFrame(cfg *appconfig.Config, plain bool) frame {
	if plain {
		return terminal.NewPlain(cfg.RenderWidth())
	}
	return terminal.New(cfg.RenderWidth())
}

// readResponse decodes a response object from path, or from stdin when path is "-".
func readResponse(path string, stdin io.Reader) (display.Response, error) {
	if path == "-" {
		return backend.ReadResponse(stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return display.Response{}, fmt.Errorf("open response: %w", err)
	}
	defer f.Close()
	return backend.ReadResponse(f)
}
