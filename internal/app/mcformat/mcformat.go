// Package mcformat handles legacy Minecraft formatting codes ('§' or '&'
// followed by a code character) and renders documents to HTML.
//
// Color codes: 0-9, a-f. Formats: k (obfuscated), l (bold), m (strikethrough),
// n (underline), o (italic), r (reset). As in the vanilla client, a color code
// also clears any active formats.
package mcformat

import (
	"html/template"
	"strings"

	"github.com/jmoiron/mctext/markup"
)

const codes = "0123456789abcdef"

var formatCodes = map[rune]markup.Decoration{
	'k': markup.Obfuscated,
	'l': markup.Bold,
	'm': markup.Strikethrough,
	'n': markup.Underlined,
	'o': markup.Italic,
}

func colorCode(c markup.Color) byte {
	for i, x := range markup.Colors {
		if x == c {
			return codes[i]
		}
	}
	return 0
}

func lower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

// isCode reports whether r is a known code character.
func isCode(r rune) bool {
	r = lower(r)
	_, ok := formatCodes[r]
	return ok || r == 'r' || strings.ContainsRune(codes, r)
}

// FromLegacy converts a legacy coded string to a document. A '§' or '&' that
// is not followed by a known code is kept as text.
func FromLegacy(s string) markup.Document {
	var (
		doc markup.Document
		cur markup.Span
		b   strings.Builder
	)
	flush := func() {
		if b.Len() > 0 {
			cur.Text = b.String()
			doc = append(doc, cur)
			b.Reset()
		}
	}
	rs := []rune(s)
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		if (r == '§' || r == '&') && i+1 < len(rs) && isCode(rs[i+1]) {
			code := lower(rs[i+1])
			flush()
			switch {
			case code == 'r':
				cur = markup.Span{}
			case formatCodes[code] != 0:
				cur.Decorations = cur.Decorations.With(formatCodes[code])
			default:
				cur = markup.Span{Color: markup.Colors[strings.IndexRune(codes, code)]}
			}
			i++
			continue
		}
		b.WriteRune(r)
	}
	flush()
	if len(doc) == 0 {
		return markup.Document{{}}
	}
	return doc
}

// ToLegacy writes doc with '§' codes. Click and hover actions cannot be
// expressed and are dropped.
func ToLegacy(doc markup.Document) string {
	var (
		b    strings.Builder
		prev markup.Span
	)
	for _, s := range doc {
		if s.Text == "" {
			continue
		}
		if s.Color != prev.Color || s.Decorations != prev.Decorations {
			if s.Color != markup.ColorNone {
				b.WriteRune('§')
				b.WriteByte(colorCode(s.Color))
			} else if prev.Color != markup.ColorNone || prev.Decorations != 0 {
				b.WriteString("§r")
			}
			for _, d := range markup.Decorations {
				if s.Decorations.Has(d) {
					b.WriteRune('§')
					b.WriteRune(decorationCode(d))
				}
			}
		}
		b.WriteString(s.Text)
		prev = s
	}
	return b.String()
}

func decorationCode(d markup.Decoration) rune {
	for r, x := range formatCodes {
		if x == d {
			return r
		}
	}
	return 'r'
}

// StripLegacy removes formatting codes from s, leaving unknown '&' or '§'
// sequences alone.
func StripLegacy(s string) string {
	if !strings.ContainsAny(s, "&§") {
		return s
	}
	return FromLegacy(s).PlainText()
}

// Format converts a legacy coded string to HTML.
func Format(s string) template.HTML { return HTML(FromLegacy(s)) }

// HTML renders doc as spans carrying classes like `mc-c6`, `mc-bold`.
// Click actions become data attributes and hover text becomes a title.
func HTML(doc markup.Document) template.HTML {
	var b strings.Builder
	for _, s := range doc {
		if s.Text == "" {
			continue
		}
		classes := []string{"mc-text"}
		if s.Color != markup.ColorNone {
			classes = append(classes, "mc-c"+string(colorCode(s.Color)))
		}
		if s.Decorations.Has(markup.Bold) {
			classes = append(classes, "mc-bold")
		}
		if s.Decorations.Has(markup.Italic) {
			classes = append(classes, "mc-italic")
		}
		if s.Decorations.Has(markup.Underlined) {
			classes = append(classes, "mc-underline")
		}
		if s.Decorations.Has(markup.Strikethrough) {
			classes = append(classes, "mc-strike")
		}
		if s.Decorations.Has(markup.Obfuscated) {
			classes = append(classes, "mc-obf")
		}
		b.WriteString(`<span class="`)
		b.WriteString(strings.Join(classes, " "))
		b.WriteString(`"`)
		if s.Click != nil {
			b.WriteString(` data-click="`)
			b.WriteString(template.HTMLEscapeString(s.Click.Kind.String()))
			b.WriteString(`" data-value="`)
			b.WriteString(template.HTMLEscapeString(s.Click.Value))
			b.WriteString(`"`)
		}
		if s.Hover != nil {
			b.WriteString(` title="`)
			b.WriteString(template.HTMLEscapeString(s.Hover.Contents.PlainText()))
			b.WriteString(`"`)
		}
		b.WriteString(">")
		b.WriteString(template.HTMLEscapeString(s.Text))
		b.WriteString("</span>")
	}
	return template.HTML(b.String())
}
