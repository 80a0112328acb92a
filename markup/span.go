package markup

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// Color is a named chat color. The zero value means no color is set and the
// span inherits whatever the renderer uses by default.
type Color uint8

const (
	ColorNone Color = iota
	Black
	DarkBlue
	DarkGreen
	DarkAqua
	DarkRed
	DarkPurple
	Gold
	Gray
	DarkGray
	Blue
	Green
	Aqua
	Red
	LightPurple
	Yellow
	White
)

var colorNames = [...]string{
	ColorNone:   "",
	Black:       "black",
	DarkBlue:    "dark_blue",
	DarkGreen:   "dark_green",
	DarkAqua:    "dark_aqua",
	DarkRed:     "dark_red",
	DarkPurple:  "dark_purple",
	Gold:        "gold",
	Gray:        "gray",
	DarkGray:    "dark_gray",
	Blue:        "blue",
	Green:       "green",
	Aqua:        "aqua",
	Red:         "red",
	LightPurple: "light_purple",
	Yellow:      "yellow",
	White:       "white",
}

// Colors lists every named color in legacy code order (0-9, a-f).
var Colors = []Color{
	Black, DarkBlue, DarkGreen, DarkAqua, DarkRed, DarkPurple, Gold, Gray,
	DarkGray, Blue, Green, Aqua, Red, LightPurple, Yellow, White,
}

func (c Color) String() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}
	return fmt.Sprintf("Color(%d)", c)
}

// ParseColor resolves a color name case-insensitively.
func ParseColor(name string) (Color, bool) {
	name = fold(name)
	if name == "" {
		return ColorNone, false
	}
	for _, c := range Colors {
		if colorNames[c] == name {
			return c, true
		}
	}
	return ColorNone, false
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*c = ColorNone
		return nil
	}
	v, ok := ParseColor(string(b))
	if !ok {
		return fmt.Errorf("markup: unknown color %q", b)
	}
	*c = v
	return nil
}

// Decoration is a set of text decorations; several may be active at once.
type Decoration uint8

const (
	Bold Decoration = 1 << iota
	Italic
	Underlined
	Strikethrough
	Obfuscated
)

// Decorations lists each single decoration in the order tags are emitted.
var Decorations = []Decoration{Bold, Italic, Underlined, Strikethrough, Obfuscated}

var decorationNames = map[Decoration]string{
	Bold:          "bold",
	Italic:        "italic",
	Underlined:    "underlined",
	Strikethrough: "strikethrough",
	Obfuscated:    "obfuscated",
}

// ParseDecoration resolves a single decoration name case-insensitively.
func ParseDecoration(name string) (Decoration, bool) {
	name = fold(name)
	for _, d := range Decorations {
		if decorationNames[d] == name {
			return d, true
		}
	}
	return 0, false
}

// Has reports whether every decoration in x is set in d.
func (d Decoration) Has(x Decoration) bool { return d&x == x }

func (d Decoration) With(x Decoration) Decoration    { return d | x }
func (d Decoration) Without(x Decoration) Decoration { return d &^ x }

// Names returns the names of the set decorations in emission order.
func (d Decoration) Names() []string {
	var names []string
	for _, x := range Decorations {
		if d.Has(x) {
			names = append(names, decorationNames[x])
		}
	}
	return names
}

func (d Decoration) String() string { return strings.Join(d.Names(), ",") }

func (d Decoration) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *Decoration) UnmarshalText(b []byte) error {
	var set Decoration
	for _, name := range strings.Split(string(b), ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		x, ok := ParseDecoration(name)
		if !ok {
			return fmt.Errorf("markup: unknown decoration %q", name)
		}
		set = set.With(x)
	}
	*d = set
	return nil
}

// ClickKind is what happens when a span is clicked.
type ClickKind uint8

const (
	RunCommand ClickKind = iota + 1
	SuggestCommand
	OpenURL
	ChangePage
)

var clickNames = map[ClickKind]string{
	RunCommand:     "run_command",
	SuggestCommand: "suggest_command",
	OpenURL:        "open_url",
	ChangePage:     "change_page",
}

func ParseClickKind(name string) (ClickKind, bool) {
	for k, n := range clickNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

func (k ClickKind) String() string {
	if n, ok := clickNames[k]; ok {
		return n
	}
	return fmt.Sprintf("ClickKind(%d)", k)
}

func (k ClickKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *ClickKind) UnmarshalText(b []byte) error {
	v, ok := ParseClickKind(string(b))
	if !ok {
		return fmt.Errorf("markup: unknown click action %q", b)
	}
	*k = v
	return nil
}

// ClickAction is attached to a span by a <click:kind:value> tag.
type ClickAction struct {
	Kind  ClickKind `json:"kind" yaml:"kind"`
	Value string    `json:"value" yaml:"value"`
}

// HoverKind selects how a client renders a hover payload.
type HoverKind uint8

const (
	ShowText HoverKind = iota + 1
	ShowItem
	ShowEntity
)

var hoverNames = map[HoverKind]string{
	ShowText:   "show_text",
	ShowItem:   "show_item",
	ShowEntity: "show_entity",
}

func ParseHoverKind(name string) (HoverKind, bool) {
	for k, n := range hoverNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

func (k HoverKind) String() string {
	if n, ok := hoverNames[k]; ok {
		return n
	}
	return fmt.Sprintf("HoverKind(%d)", k)
}

func (k HoverKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *HoverKind) UnmarshalText(b []byte) error {
	v, ok := ParseHoverKind(string(b))
	if !ok {
		return fmt.Errorf("markup: unknown hover action %q", b)
	}
	*k = v
	return nil
}

// HoverPayload is attached to a span by a <hover:kind:"markup"> tag. Its
// contents are parsed from the quoted markup.
type HoverPayload struct {
	Kind     HoverKind `json:"kind" yaml:"kind"`
	Contents Document  `json:"contents" yaml:"contents"`
}

// Span is a run of text with its fully resolved style. Spans are values; the
// click and hover pointers are shared between spans opened by the same tag and
// must not be mutated.
type Span struct {
	Text        string        `json:"text" yaml:"text"`
	Color       Color         `json:"color,omitempty" yaml:"color,omitempty"`
	Decorations Decoration    `json:"decorations,omitempty" yaml:"decorations,omitempty"`
	Click       *ClickAction  `json:"click,omitempty" yaml:"click,omitempty"`
	Hover       *HoverPayload `json:"hover,omitempty" yaml:"hover,omitempty"`
}

// SameStyle reports whether s and o render with the same color, decorations,
// click action and hover payload.
func (s Span) SameStyle(o Span) bool {
	return s.Color == o.Color &&
		s.Decorations == o.Decorations &&
		clickEqual(s.Click, o.Click) &&
		hoverEqual(s.Hover, o.Hover)
}

// Document is an ordered sequence of spans. Order is rendering order.
type Document []Span

// Equal reports whether d and o have the same spans in the same order.
func (d Document) Equal(o Document) bool {
	if len(d) != len(o) {
		return false
	}
	for i := range d {
		if d[i].Text != o[i].Text || !d[i].SameStyle(o[i]) {
			return false
		}
	}
	return true
}

// Compact merges adjacent spans that have the same style and drops empty
// spans. A document with no text compacts to the single empty span.
func (d Document) Compact() Document {
	out := make(Document, 0, len(d))
	for _, s := range d {
		if s.Text == "" {
			continue
		}
		if n := len(out); n > 0 && out[n-1].SameStyle(s) {
			out[n-1].Text += s.Text
			continue
		}
		out = append(out, s)
	}
	if len(out) == 0 {
		return Document{{}}
	}
	return out
}

// Equivalent reports whether d and o render the same text with the same style
// on every character, regardless of where the span boundaries fall.
func (d Document) Equivalent(o Document) bool {
	return d.Compact().Equal(o.Compact())
}

// PlainText concatenates the text of every span.
func (d Document) PlainText() string {
	var b strings.Builder
	for _, s := range d {
		b.WriteString(s.Text)
	}
	return b.String()
}

func clickEqual(a, b *ClickAction) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}

func hoverEqual(a, b *HoverPayload) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return a.Kind == b.Kind && a.Contents.Equivalent(b.Contents)
}

// fold normalizes a tag name for case-insensitive lookup. A Caser keeps state,
// so each call gets its own.
func fold(s string) string {
	return cases.Fold().String(s)
}
