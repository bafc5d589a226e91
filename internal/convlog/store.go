package convlog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mwiater/docchat/internal/display"
	"github.com/mwiater/docchat/internal/logging"
	"github.com/spf13/cast"
)

// Store keeps a conversation log in a JSON file.
type Store struct {
	Path string
}

// NewStore returns a Store backed by path.
func NewStore(path string) *Store {
	return &Store{Path: path}
}

// Load reads the log. A missing file yields a fresh, empty log. A bare JSON
// array of messages is accepted as well.
func (s *Store) Load() (*Log, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read conversation log %q: %w", s.Path, err)
	}
	return Decode(data)
}

// Decode parses a saved log for replay. A message that fails the entry schema,
// the record decode or record validation is kept as Raw content so it shows
// as text and the messages around it still replay. Only a document that is
// not a log at all is an error.
func Decode(data []byte) (*Log, error) {
	return decode(data, false)
}

// DecodeStrict parses a saved log and rejects it when any message is invalid.
func DecodeStrict(data []byte) (*Log, error) {
	return decode(data, true)
}

type wireLog struct {
	SessionID any               `json:"session_id"`
	StartedAt any               `json:"started_at"`
	Messages  []json.RawMessage `json:"messages"`
}

func decode(data []byte, strict bool) (*Log, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return New(), nil
	}
	if trimmed[0] == '[' {
		trimmed = append(append([]byte(`{"messages":`), trimmed...), '}')
	}
	if strict {
		if err := ValidateDocument(trimmed); err != nil {
			return nil, err
		}
	}

	var doc wireLog
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("decode conversation log: %w", err)
	}

	l := New()
	if id := cast.ToString(doc.SessionID); id != "" {
		l.SessionID = id
	}
	if started, err := cast.ToTimeE(doc.StartedAt); err == nil && !started.IsZero() {
		l.StartedAt = started
	}
	for i, raw := range doc.Messages {
		e, err := decodeEntry(raw)
		if err != nil {
			if strict {
				return nil, fmt.Errorf("messages[%d]: %w", i, err)
			}
			logging.LogEvent("[LOG] messages[%d] kept as raw content: %v", i, err)
			e = rawEntry(raw)
		}
		l.Entries = append(l.Entries, e)
	}
	return l, nil
}

func decodeEntry(raw json.RawMessage) (Entry, error) {
	if err := ValidateEntry(raw); err != nil {
		return Entry{}, err
	}
	var e Entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return Entry{}, err
	}
	if v, ok := e.Content.(interface{ Validate() error }); ok {
		if err := v.Validate(); err != nil {
			return Entry{}, err
		}
	}
	return e, nil
}

// rawEntry keeps what it can of a message that did not decode: its role when
// readable and its content verbatim.
func rawEntry(raw json.RawMessage) Entry {
	e := Entry{Role: display.RoleAssistant, Content: display.Raw{JSON: append(json.RawMessage(nil), raw...)}}
	var w struct {
		Role    any             `json:"role"`
		Content json.RawMessage `json:"content"`
	}
	if err := json.Unmarshal(raw, &w); err != nil {
		return e
	}
	e.Role = normalizeRole(cast.ToString(w.Role))
	if len(w.Content) > 0 {
		e.Content = display.Raw{JSON: w.Content}
	}
	return e
}

// Save writes the log, replacing the file atomically.
func (s *Store) Save(l *Log) error {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return fmt.Errorf("encode conversation log: %w", err)
	}
	if dir := filepath.Dir(s.Path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmp := s.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, s.Path); err != nil {
		return err
	}
	logging.LogEvent("[LOG] saved %d messages to %s (session %s)", l.Len(), s.Path, l.SessionID)
	return nil
}

// Clear deletes the saved log.
func (s *Store) Clear() error {
	if err := os.Remove(s.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	logging.LogEvent("[LOG] cleared %s", s.Path)
	return nil
}
