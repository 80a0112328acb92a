package markup

import (
	"log/slog"
	"strings"
)

// Parser turns markup into a Document. The zero value is not usable; create
// one with NewParser. A Parser holds only configuration, so one value may be
// shared between goroutines.
type Parser struct {
	maxDepth  int
	maxLength int
	strict    bool
}

// Option configures a Parser.
type Option func(*Parser)

// WithMaxDepth limits how deeply hover payloads may nest. Zero forbids hover
// tags altogether; a negative depth means no limit, which is the default.
func WithMaxDepth(n int) Option { return func(p *Parser) { p.maxDepth = n } }

// WithMaxLength limits the input size in bytes. Zero means no limit.
func WithMaxLength(n int) Option { return func(p *Parser) { p.maxLength = n } }

// WithStrict rejects unknown tags and tags still open at the end of input.
func WithStrict() Option { return func(p *Parser) { p.strict = true } }

func NewParser(opts ...Option) *Parser {
	p := &Parser{maxDepth: -1}
	for _, o := range opts {
		o(p)
	}
	return p
}

var defaultParser = NewParser()

// Parse parses markup with the lenient defaults: unknown tags are ignored and
// tags left open at the end of the input are fine.
func Parse(text string) (Document, error) { return defaultParser.Parse(text) }

// ParseWith substitutes placeholders and parses the result.
func ParseWith(text string, p Placeholders) (Document, error) {
	return defaultParser.Parse(Substitute(text, p))
}

// Parse parses text into a Document. A failed parse returns a nil Document.
func (p *Parser) Parse(text string) (Document, error) {
	if p.maxLength > 0 && len(text) > p.maxLength {
		return nil, &ParseError{Err: ErrInputTooLarge, Reason: "input too large"}
	}
	return p.parse(text, 0)
}

// stack is a LIFO owned by a single parse call.
type stack[T any] []T

func (s *stack[T]) push(v T) { *s = append(*s, v) }

func (s *stack[T]) pop() bool {
	if len(*s) == 0 {
		return false
	}
	*s = (*s)[:len(*s)-1]
	return true
}

func (s stack[T]) peek() (v T) {
	if len(s) > 0 {
		v = s[len(s)-1]
	}
	return v
}

type parseState struct {
	clicks      stack[*ClickAction]
	hovers      stack[*HoverPayload]
	colors      stack[Color]
	decorations Decoration
	out         Document
}

// emit appends text styled with the current top of every stack.
func (st *parseState) emit(text string) {
	if text == "" {
		return
	}
	st.out = append(st.out, Span{
		Text:        text,
		Color:       st.colors.peek(),
		Decorations: st.decorations,
		Click:       st.clicks.peek(),
		Hover:       st.hovers.peek(),
	})
}

func (p *Parser) parse(text string, depth int) (Document, error) {
	var st parseState
	tz := NewTokenizer(text)
	for tz.Next() {
		tok := tz.Token()
		st.emit(tok.Text)
		if err := p.apply(&st, tok, depth); err != nil {
			return nil, err
		}
	}
	st.emit(tz.Rest())

	if p.strict {
		if err := st.unclosed(); err != nil {
			return nil, err
		}
	}
	if len(st.out) == 0 {
		return Document{{}}, nil
	}
	return st.out, nil
}

// apply performs the state transition for one tag.
func (p *Parser) apply(st *parseState, tok Token, depth int) error {
	switch {
	case strings.HasSuffix(tok.Raw, `\`):
		// written by Escape
		slog.Debug("ignoring escaped tag", "tag", tok.Raw, "offset", tok.Pos)
	case strings.HasPrefix(tok.Raw, "click:"):
		c, err := parseClick(tok)
		if err != nil {
			return err
		}
		st.clicks.push(c)
	case tok.Raw == "/click":
		if !st.clicks.pop() {
			return tagError(ErrUnbalancedClose, "unbalanced click tag", tok)
		}
	case strings.HasPrefix(tok.Raw, "hover:"):
		h, err := p.parseHover(tok, depth)
		if err != nil {
			return err
		}
		st.hovers.push(h)
	case tok.Raw == "/hover":
		if !st.hovers.pop() {
			return tagError(ErrUnbalancedClose, "unbalanced hover tag", tok)
		}
	default:
		return p.applyStyle(st, tok)
	}
	return nil
}

func (p *Parser) applyStyle(st *parseState, tok Token) error {
	name, closing := strings.CutPrefix(tok.Raw, "/")
	if c, ok := ParseColor(name); ok {
		if !closing {
			st.colors.push(c)
			return nil
		}
		// the closed color need not match the open one
		if !st.colors.pop() {
			return tagError(ErrUnbalancedClose, "unbalanced color tag", tok)
		}
		return nil
	}
	if d, ok := ParseDecoration(name); ok {
		if closing {
			st.decorations = st.decorations.Without(d)
		} else {
			st.decorations = st.decorations.With(d)
		}
		return nil
	}
	if p.strict {
		return tagError(ErrUnknownTag, "unknown tag", tok)
	}
	slog.Debug("ignoring unknown tag", "tag", tok.Raw, "offset", tok.Pos)
	return nil
}

// parseClick reads <click:kind:value>. A value written entirely as a quoted
// string is unquoted.
func parseClick(tok Token) (*ClickAction, error) {
	rest := strings.TrimPrefix(tok.Raw, "click:")
	name, value, ok := strings.Cut(rest, ":")
	if !ok || name == "" {
		return nil, tagError(ErrMalformedTag, "click tag needs an action and a value", tok)
	}
	kind, ok := ParseClickKind(name)
	if !ok {
		return nil, tagError(ErrUnknownActionKind, "invalid click action", tok)
	}
	if tok.HasInner && value == `"`+tok.Inner+`"` {
		value = tok.Inner
	}
	return &ClickAction{Kind: kind, Value: value}, nil
}

// parseHover reads <hover:kind:"markup"> and parses the quoted markup as a
// document of its own.
func (p *Parser) parseHover(tok Token, depth int) (*HoverPayload, error) {
	name, ok := strings.CutPrefix(tok.Body, "hover:")
	if ok {
		name, ok = strings.CutSuffix(name, ":")
	}
	if !ok || !tok.HasInner || name == "" || strings.Contains(name, ":") {
		return nil, tagError(ErrMalformedTag, `hover tag needs an action and quoted contents`, tok)
	}
	kind, ok := ParseHoverKind(name)
	if !ok {
		return nil, tagError(ErrUnknownActionKind, "invalid hover action", tok)
	}
	if p.maxDepth >= 0 && depth+1 > p.maxDepth {
		return nil, tagError(ErrDepthExceeded, "hover nesting too deep", tok)
	}
	contents, err := p.parse(tok.Inner, depth+1)
	if err != nil {
		return nil, err
	}
	return &HoverPayload{Kind: kind, Contents: contents}, nil
}

func (st *parseState) unclosed() error {
	var open []string
	if len(st.clicks) > 0 {
		open = append(open, "click")
	}
	if len(st.hovers) > 0 {
		open = append(open, "hover")
	}
	if len(st.colors) > 0 {
		open = append(open, st.colors.peek().String())
	}
	open = append(open, st.decorations.Names()...)
	if len(open) == 0 {
		return nil
	}
	return &ParseError{Err: ErrUnclosedTag, Reason: "unclosed tags: " + strings.Join(open, ", ")}
}
