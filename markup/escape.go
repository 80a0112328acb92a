package markup

import "strings"

// Escape prefixes the delimiters of every tag in s with a backslash so the
// text can be shown verbatim. Quoted tag payloads are escaped first.
//
// Escape is not idempotent: the tokenizer does not treat a backslash
// specially, so escaping an escaped string escapes the same tags again.
func Escape(s string) string {
	var b strings.Builder
	tz := NewTokenizer(s)
	for tz.Next() {
		tok := tz.Token()
		b.WriteString(tok.Text)
		b.WriteString(`\<`)
		b.WriteString(tok.Body)
		if tok.HasInner {
			b.WriteByte('"')
			b.WriteString(Escape(tok.Inner))
			b.WriteByte('"')
		}
		b.WriteString(`\>`)
	}
	b.WriteString(tz.Rest())
	return b.String()
}

// Strip removes every tag from s and keeps only the literal text.
//
// Dropping a tag can join two literal fragments into a new tag ("<<b>b>"
// becomes "<b>"), so Strip repeats until nothing changes.
func Strip(s string) string {
	for {
		out := stripOnce(s)
		if len(out) == len(s) {
			return out
		}
		s = out
	}
}

func stripOnce(s string) string {
	var b strings.Builder
	tz := NewTokenizer(s)
	for tz.Next() {
		b.WriteString(tz.Token().Text)
	}
	b.WriteString(tz.Rest())
	return b.String()
}
