package display

import (
	"fmt"
	"strings"
)

// Surface is the set of drawing primitives the renderers and the replayer use.
type Surface interface {
	// BeginMessage starts a new chat bubble for role.
	BeginMessage(role Role)
	Markdown(text string)
	Heading(text string)
	Divider()
	// Info draws a neutral annotated line, Success a highlighted one.
	Info(text, icon string)
	Success(text, icon string)
}

// Recorder is a Surface that keeps every call as a plain text line.
type Recorder struct {
	lines []string
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) BeginMessage(role Role) { r.add("[%s]", role) }
func (r *Recorder) Markdown(text string)   { r.add("markdown: %s", text) }
func (r *Recorder) Heading(text string)    { r.add("heading: %s", text) }
func (r *Recorder) Divider()               { r.add("---") }

func (r *Recorder) Info(text, icon string)    { r.add("info[%s]: %s", icon, text) }
func (r *Recorder) Success(text, icon string) { r.add("success[%s]: %s", icon, text) }

func (r *Recorder) add(format string, args ...any) {
	r.lines = append(r.lines, fmt.Sprintf(format, args...))
}

// Lines returns a copy of the recorded calls.
func (r *Recorder) Lines() []string {
	return append([]string(nil), r.lines...)
}

// String joins the recorded calls with newlines.
func (r *Recorder) String() string {
	return strings.Join(r.lines, "\n")
}

// Reset drops everything recorded so far.
func (r *Recorder) Reset() {
	r.lines = r.lines[:0]
}
