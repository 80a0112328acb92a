package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/jmoiron/mctext/markup"
)

// Format is an output format.
type Format string

const (
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatMarkup Format = "markup"
	FormatPlain  Format = "plain"
	FormatANSI   Format = "ansi"
)

func (f Format) Valid() bool {
	switch f {
	case FormatJSON, FormatYAML, FormatMarkup, FormatPlain, FormatANSI:
		return true
	}
	return false
}

// Renderer writes documents and values in one output format.
type Renderer struct {
	format  Format
	writer  io.Writer
	noColor bool
}

func NewRenderer(format Format, noColor bool) *Renderer {
	return &Renderer{format: format, writer: os.Stdout, noColor: noColor}
}

func (r *Renderer) SetWriter(w io.Writer) {
	r.writer = w
}

// RenderDocument writes doc in the renderer's format.
func (r *Renderer) RenderDocument(doc markup.Document) error {
	switch r.format {
	case FormatJSON:
		return r.RenderJSON(doc)
	case FormatYAML:
		return r.RenderYAML(doc)
	case FormatMarkup:
		r.RenderText(markup.Serialize(doc))
	case FormatPlain:
		r.RenderText(doc.PlainText())
	case FormatANSI:
		r.RenderText(r.ansi(doc))
	default:
		return fmt.Errorf("unknown output format %q", r.format)
	}
	return nil
}

// RenderValue writes v as JSON or YAML, falling back to JSON for the text
// formats.
func (r *Renderer) RenderValue(v any) error {
	if r.format == FormatYAML {
		return r.RenderYAML(v)
	}
	return r.RenderJSON(v)
}

func (r *Renderer) RenderJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(r.writer, string(data))
	return nil
}

func (r *Renderer) RenderYAML(v any) error {
	enc := yaml.NewEncoder(r.writer)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func (r *Renderer) RenderText(text string) {
	fmt.Fprintln(r.writer, text)
}

// ansiColors approximates the chat palette with the 16 terminal colors.
var ansiColors = map[markup.Color]color.Attribute{
	markup.Black:       color.FgBlack,
	markup.DarkBlue:    color.FgBlue,
	markup.DarkGreen:   color.FgGreen,
	markup.DarkAqua:    color.FgCyan,
	markup.DarkRed:     color.FgRed,
	markup.DarkPurple:  color.FgMagenta,
	markup.Gold:        color.FgYellow,
	markup.Gray:        color.FgWhite,
	markup.DarkGray:    color.FgHiBlack,
	markup.Blue:        color.FgHiBlue,
	markup.Green:       color.FgHiGreen,
	markup.Aqua:        color.FgHiCyan,
	markup.Red:         color.FgHiRed,
	markup.LightPurple: color.FgHiMagenta,
	markup.Yellow:      color.FgHiYellow,
	markup.White:       color.FgHiWhite,
}

var ansiDecorations = []struct {
	d    markup.Decoration
	attr color.Attribute
}{
	{markup.Bold, color.Bold},
	{markup.Italic, color.Italic},
	{markup.Underlined, color.Underline},
	{markup.Strikethrough, color.CrossedOut},
	{markup.Obfuscated, color.ReverseVideo},
}

// ansi renders doc with terminal escapes. Click and hover actions have no
// terminal form; they are listed after the text in a faint footnote.
func (r *Renderer) ansi(doc markup.Document) string {
	var b strings.Builder
	var notes []string
	for _, s := range doc {
		if s.Text == "" {
			continue
		}
		var attrs []color.Attribute
		if a, ok := ansiColors[s.Color]; ok {
			attrs = append(attrs, a)
		}
		for _, x := range ansiDecorations {
			if s.Decorations.Has(x.d) {
				attrs = append(attrs, x.attr)
			}
		}
		if len(attrs) == 0 {
			b.WriteString(s.Text)
		} else {
			b.WriteString(r.style(attrs...).Sprint(s.Text))
		}
		if s.Click != nil {
			notes = append(notes, fmt.Sprintf("%q: %s %s", s.Text, s.Click.Kind, s.Click.Value))
		}
		if s.Hover != nil {
			notes = append(notes, fmt.Sprintf("%q: %s %q", s.Text, s.Hover.Kind, s.Hover.Contents.PlainText()))
		}
	}
	if len(notes) > 0 {
		faint := r.style(color.Faint)
		for _, n := range notes {
			b.WriteString("\n")
			b.WriteString(faint.Sprint("  " + n))
		}
	}
	return b.String()
}

// style returns a color that honors --no-color but is otherwise enabled even
// when stdout is not a terminal, since ansi output was asked for.
func (r *Renderer) style(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if r.noColor {
		c.DisableColor()
	} else {
		c.EnableColor()
	}
	return c
}
