// Package output provides mode-aware rendering for CLI commands.
//
// The renderer adapts to its environment: styled text on a terminal,
// Markdown when piped (agent- and doc-friendly), or JSON on request.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Mode selects the output format.
type Mode string

const (
	ModeAuto     Mode = "auto"
	ModeText     Mode = "text"
	ModeMarkdown Mode = "markdown"
	ModeJSON     Mode = "json"
)

// Renderer writes command output in the selected mode.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	styles *Styles
}

// NewRenderer creates a renderer. An empty or unrecognized mode behaves
// like ModeAuto.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	switch mode {
	case ModeText, ModeMarkdown, ModeJSON:
	default:
		mode = ModeAuto
	}
	return &Renderer{
		out:    out,
		errOut: errOut,
		mode:   mode,
		styles: NewStyles(),
	}
}

// EffectiveMode resolves ModeAuto to text on a terminal and markdown
// otherwise.
func (r *Renderer) EffectiveMode() Mode {
	if r.mode != ModeAuto {
		return r.mode
	}
	if f, ok := r.out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return ModeText
	}
	return ModeMarkdown
}

// Writer returns the destination writer.
func (r *Renderer) Writer() io.Writer {
	return r.out
}

// Styles returns the lipgloss style set for text mode.
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Printf writes formatted output.
func (r *Renderer) Printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}

// Println writes a line of output.
func (r *Renderer) Println(args ...any) {
	fmt.Fprintln(r.out, args...)
}

// Header writes a section header in the current mode's idiom.
func (r *Renderer) Header(level int, text string) {
	switch r.EffectiveMode() {
	case ModeMarkdown:
		r.Println(FormatHeader(level, text))
		r.Println()
	default:
		style := r.styles.Header1
		if level > 1 {
			style = r.styles.Header2
		}
		r.Println(style.Render(text))
	}
}

// JSON writes v as indented JSON.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Success writes a success line to stdout.
func (r *Renderer) Success(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if r.EffectiveMode() == ModeText {
		msg = r.styles.Success.Render(msg)
	}
	fmt.Fprintln(r.out, msg)
}

// Warning writes a warning line to stderr.
func (r *Renderer) Warning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if r.EffectiveMode() == ModeText {
		msg = r.styles.Warning.Render(msg)
	}
	fmt.Fprintln(r.errOut, msg)
}
