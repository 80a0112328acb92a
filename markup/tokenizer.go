package markup

import "strings"

// Token is a single tag located by the Tokenizer.
type Token struct {
	// Text is the literal text between the previous token (or the start of
	// input) and this one.
	Text string
	// Raw is everything between the angle brackets, quoted payload included.
	Raw string
	// Body is Raw without the quoted payload. For tags without a payload it
	// equals Raw.
	Body string
	// Inner is the quoted payload with its quotes removed.
	Inner    string
	HasInner bool
	// Pos and End are the byte offsets of '<' and one past '>' in the input.
	Pos, End int
}

// Tokenizer scans markup for tags. It is used like bufio.Scanner:
//
//	tz := NewTokenizer(s)
//	for tz.Next() {
//		tok := tz.Token()
//	}
//	rest := tz.Rest()
//
// A tag is <body> or <body"inner">, where body is a non-empty run without
// '<', '>' or '"' and inner is a non-empty run without '"'. A '<' that does not
// begin a complete tag is literal text.
type Tokenizer struct {
	src  string
	off  int // end of the last token
	scan int // next offset to look for '<'
	tok  Token
}

func NewTokenizer(s string) *Tokenizer {
	return &Tokenizer{src: s}
}

// Next advances to the next tag, returning false when none remain.
func (t *Tokenizer) Next() bool {
	for t.scan < len(t.src) {
		i := strings.IndexByte(t.src[t.scan:], '<')
		if i < 0 {
			t.scan = len(t.src)
			return false
		}
		start := t.scan + i
		tok, ok := matchTag(t.src, start)
		if !ok {
			t.scan = start + 1
			continue
		}
		tok.Text = t.src[t.off:start]
		t.tok = tok
		t.off = tok.End
		t.scan = tok.End
		return true
	}
	return false
}

// Token returns the tag found by the last call to Next.
func (t *Tokenizer) Token() Token { return t.tok }

// Rest returns the literal text after the last tag. It is only meaningful
// once Next has returned false.
func (t *Tokenizer) Rest() string { return t.src[t.off:] }

// matchTag tries to read a tag starting at s[start] == '<'.
func matchTag(s string, start int) (Token, bool) {
	i := start + 1
	for i < len(s) && s[i] != '<' && s[i] != '>' && s[i] != '"' {
		i++
	}
	if i == start+1 || i >= len(s) {
		return Token{}, false
	}
	body := s[start+1 : i]
	switch s[i] {
	case '>':
		return Token{Raw: body, Body: body, Pos: start, End: i + 1}, true
	case '"':
		j := strings.IndexByte(s[i+1:], '"')
		if j <= 0 {
			return Token{}, false
		}
		q := i + 1 + j
		if q+1 >= len(s) || s[q+1] != '>' {
			return Token{}, false
		}
		return Token{
			Raw:      s[start+1 : q+1],
			Body:     body,
			Inner:    s[i+1 : q],
			HasInner: true,
			Pos:      start,
			End:      q + 2,
		}, true
	}
	return Token{}, false
}

type tagState int

const (
	tagNone     tagState = iota // s[start:] does not begin a tag
	tagComplete                 // s[start:] begins a tag
	tagPartial                  // s[start:] is a proper prefix of a tag
)

// scanTag classifies the text at s[start] == '<' the way matchTag reads it,
// telling apart a failed match from one that ran out of input.
func scanTag(s string, start int) tagState {
	i := start + 1
	for i < len(s) && s[i] != '<' && s[i] != '>' && s[i] != '"' {
		i++
	}
	switch {
	case i >= len(s):
		return tagPartial
	case i == start+1 || s[i] == '<':
		return tagNone
	case s[i] == '>':
		return tagComplete
	}
	j := strings.IndexByte(s[i+1:], '"')
	switch {
	case j < 0:
		return tagPartial
	case j == 0:
		return tagNone
	}
	q := i + 1 + j
	switch {
	case q+1 >= len(s):
		return tagPartial
	case s[q+1] == '>':
		return tagComplete
	}
	return tagNone
}

// Tokens collects every tag in s. It is mostly useful in tests and tools.
func Tokens(s string) (toks []Token, rest string) {
	tz := NewTokenizer(s)
	for tz.Next() {
		toks = append(toks, tz.Token())
	}
	return toks, tz.Rest()
}
