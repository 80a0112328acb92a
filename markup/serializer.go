package markup

import "strings"

// Serialize writes markup that parses back to a Document equivalent to doc.
// Tags are only opened and closed where the style changes between adjacent
// spans, so every stack in the parser is at most one deep.
//
// Span text is written verbatim. Text that itself looks like a tag must be
// escaped by the caller beforehand. Where two runs of text would join into a
// tag that neither contains, an empty click pair is written between them.
func Serialize(doc Document) string {
	var w writer
	for i, s := range doc {
		var prev, next *Span
		if i > 0 {
			prev = &doc[i-1]
		}
		if i+1 < len(doc) {
			next = &doc[i+1]
		}

		// open
		if s.Color != ColorNone && (prev == nil || prev.Color != s.Color) {
			w.tag("<" + s.Color.String() + ">")
		}
		for _, d := range Decorations {
			if s.Decorations.Has(d) && (prev == nil || !prev.Decorations.Has(d)) {
				w.tag("<" + decorationNames[d] + ">")
			}
		}
		if s.Hover != nil && (prev == nil || !hoverEqual(prev.Hover, s.Hover)) {
			w.tag(hoverTag(s.Hover))
		}
		if s.Click != nil && (prev == nil || !clickEqual(prev.Click, s.Click)) {
			w.tag(clickTag(s.Click))
		}

		w.text(s.Text)

		// close
		if s.Click != nil && (next == nil || !clickEqual(s.Click, next.Click)) {
			w.tag("</click>")
		}
		if s.Hover != nil && (next == nil || !hoverEqual(s.Hover, next.Hover)) {
			w.tag("</hover>")
		}
		for j := len(Decorations) - 1; j >= 0; j-- {
			d := Decorations[j]
			if s.Decorations.Has(d) && (next == nil || !next.Decorations.Has(d)) {
				w.tag("</" + decorationNames[d] + ">")
			}
		}
		if s.Color != ColorNone && (next == nil || next.Color != s.Color) {
			w.tag("</" + s.Color.String() + ">")
		}
	}
	return w.String()
}

// Separators open and close a click at once, which changes no style. The
// quoted form also ends a pending quoted payload.
const (
	separator       = "<click:run_command:/></click>"
	quotedSeparator = `<click:run_command:"/"></click>`
)

// writer builds markup while tracking each '<' in literal text that could
// still become a tag depending on what is written after it.
type writer struct {
	strings.Builder
	pending []int
}

func (w *writer) tag(s string) {
	w.guard(s)
	w.WriteString(s)
	w.settle()
}

func (w *writer) text(s string) {
	if s == "" {
		return
	}
	w.guard(s)
	start := w.Len()
	w.WriteString(s)
	for i := 0; i < len(s); i++ {
		if s[i] == '<' {
			w.pending = append(w.pending, start+i)
		}
	}
	w.settle()
}

// guard writes a separator when appending next would complete a tag that
// starts in earlier literal text.
func (w *writer) guard(next string) {
	if len(w.pending) == 0 {
		return
	}
	base := w.pending[0]
	tail := w.String()[base:] + next
	quoted := false
	clash := false
	for _, p := range w.pending {
		if strings.IndexByte(tail[p-base:], '"') >= 0 {
			quoted = true
		}
		if scanTag(tail, p-base) == tagComplete {
			clash = true
		}
	}
	if !clash {
		return
	}
	// the separator starts with '<', and its quote is not followed by '>', so
	// no pending tag can complete through it
	if quoted {
		w.WriteString(quotedSeparator)
	} else {
		w.WriteString(separator)
	}
	w.pending = w.pending[:0]
}

// settle forgets pending offsets that can no longer start a tag.
func (w *writer) settle() {
	s := w.String()
	keep := w.pending[:0]
	for _, p := range w.pending {
		if scanTag(s, p) == tagPartial {
			keep = append(keep, p)
		}
	}
	w.pending = keep
}

func clickTag(c *ClickAction) string {
	var b strings.Builder
	b.WriteString("<click:")
	b.WriteString(c.Kind.String())
	b.WriteByte(':')
	// a bare value cannot contain tag delimiters or end like an escaped tag
	bare := !strings.ContainsAny(c.Value, "<>") && !strings.HasSuffix(c.Value, `\`)
	if !bare && !strings.Contains(c.Value, `"`) {
		b.WriteByte('"')
		b.WriteString(c.Value)
		b.WriteByte('"')
	} else {
		b.WriteString(c.Value)
	}
	b.WriteByte('>')
	return b.String()
}

func hoverTag(h *HoverPayload) string {
	inner := Serialize(h.Contents)
	if inner == "" {
		// a quoted payload cannot be empty
		inner = "<bold></bold>"
	}
	return "<hover:" + h.Kind.String() + `:"` + inner + `">`
}
