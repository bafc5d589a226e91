// Package convlog holds the conversation log of a chat session and replays it
// onto a display surface.
package convlog

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mwiater/docchat/internal/display"
)

// Entry is one turn of the conversation.
type Entry struct {
	Role    display.Role
	Content display.Content
}

type wireEntry struct {
	Role    string          `json:"role"`
	Content json.RawMessage `json:"content"`
}

// MarshalJSON writes {"role": ..., "content": ...}.
func (e Entry) MarshalJSON() ([]byte, error) {
	content := e.Content
	if content == nil {
		content = display.Text("")
	}
	data, err := json.Marshal(content)
	if err != nil {
		return nil, fmt.Errorf("encode %s content: %w", e.Role, err)
	}
	return json.Marshal(wireEntry{Role: string(e.Role), Content: data})
}

// UnmarshalJSON accepts any content shape. Unknown roles are read as assistant.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var w wireEntry
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	content, err := display.DecodeContent(w.Content)
	if err != nil {
		return err
	}
	*e = Entry{Role: normalizeRole(w.Role), Content: content}
	return nil
}

func normalizeRole(role string) display.Role {
	if strings.TrimSpace(role) == string(display.RoleUser) {
		return display.RoleUser
	}
	return display.RoleAssistant
}

// Log is the append-only record of one session. The owner creates it at
// session start and resets it when the session is cleared.
type Log struct {
	SessionID string    `json:"session_id"`
	StartedAt time.Time `json:"started_at"`
	Entries   []Entry   `json:"messages"`
}

// New starts an empty log with a fresh session ID.
func New() *Log {
	return &Log{
		SessionID: uuid.NewString(),
		StartedAt: time.Now().UTC(),
		Entries:   []Entry{},
	}
}

// AppendUser records a user turn.
func (l *Log) AppendUser(text string) {
	l.Entries = append(l.Entries, Entry{Role: display.RoleUser, Content: display.Text(text)})
}

// AppendAssistant records an assistant turn.
func (l *Log) AppendAssistant(content display.Content) {
	if content == nil {
		content = display.Text("")
	}
	l.Entries = append(l.Entries, Entry{Role: display.RoleAssistant, Content: content})
}

// Len returns the number of turns.
func (l *Log) Len() int {
	return len(l.Entries)
}

// Snapshot returns a copy of the entries.
func (l *Log) Snapshot() []Entry {
	return append([]Entry(nil), l.Entries...)
}

// Reset clears the log and starts a new session.
func (l *Log) Reset() {
	*l = *New()
}

// Validate checks every stored record.
func (l *Log) Validate() error {
	for i, e := range l.Entries {
		v, ok := e.Content.(interface{ Validate() error })
		if !ok {
			continue
		}
		if err := v.Validate(); err != nil {
			return fmt.Errorf("messages[%d]: %w", i, err)
		}
	}
	return nil
}
