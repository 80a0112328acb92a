// Package chat converts documents to and from Minecraft text components, the
// JSON (or SNBT) structure that /tellraw, signs, books and item names use.
package chat

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/mctext/markup"
	"github.com/jmoiron/mctext/snbt"
)

// Component is a text component. Unset style fields are inherited from the
// parent component.
type Component struct {
	Text          string      `json:"text" yaml:"text"`
	Color         string      `json:"color,omitempty" yaml:"color,omitempty"`
	Bold          *bool       `json:"bold,omitempty" yaml:"bold,omitempty"`
	Italic        *bool       `json:"italic,omitempty" yaml:"italic,omitempty"`
	Underlined    *bool       `json:"underlined,omitempty" yaml:"underlined,omitempty"`
	Strikethrough *bool       `json:"strikethrough,omitempty" yaml:"strikethrough,omitempty"`
	Obfuscated    *bool       `json:"obfuscated,omitempty" yaml:"obfuscated,omitempty"`
	ClickEvent    *ClickEvent `json:"clickEvent,omitempty" yaml:"clickEvent,omitempty"`
	HoverEvent    *HoverEvent `json:"hoverEvent,omitempty" yaml:"hoverEvent,omitempty"`
	Extra         []Component `json:"extra,omitempty" yaml:"extra,omitempty"`
}

type ClickEvent struct {
	Action string `json:"action" yaml:"action"`
	Value  string `json:"value" yaml:"value"`
}

// HoverEvent carries its text in Contents. Value is the pre-1.16 spelling and
// is only read, never written.
type HoverEvent struct {
	Action   string     `json:"action" yaml:"action"`
	Contents *Component `json:"contents,omitempty" yaml:"contents,omitempty"`
	Value    *Component `json:"value,omitempty" yaml:"value,omitempty"`
}

// UnmarshalJSON accepts the three shapes a component may take: a bare string,
// an object, or an array whose first element is the parent of the rest.
func (c *Component) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return errors.New("chat: empty component")
	}
	switch b[0] {
	case '"':
		*c = Component{}
		return json.Unmarshal(b, &c.Text)
	case '[':
		var list []Component
		if err := json.Unmarshal(b, &list); err != nil {
			return err
		}
		if len(list) == 0 {
			return errors.New("chat: empty component list")
		}
		*c = list[0]
		c.Extra = append(c.Extra, list[1:]...)
		return nil
	}
	type plain Component
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*c = Component(p)
	return nil
}

// Encode builds a component tree for doc: an empty root whose children are
// the spans, so that no span inherits style from another.
func Encode(doc markup.Document) Component {
	root := Component{}
	for _, s := range doc {
		if s.Text == "" {
			continue
		}
		root.Extra = append(root.Extra, fromSpan(s))
	}
	return root
}

func fromSpan(s markup.Span) Component {
	c := Component{Text: s.Text, Color: s.Color.String()}
	set := func(d markup.Decoration) *bool {
		if s.Decorations.Has(d) {
			t := true
			return &t
		}
		return nil
	}
	c.Bold = set(markup.Bold)
	c.Italic = set(markup.Italic)
	c.Underlined = set(markup.Underlined)
	c.Strikethrough = set(markup.Strikethrough)
	c.Obfuscated = set(markup.Obfuscated)
	if s.Click != nil {
		c.ClickEvent = &ClickEvent{Action: s.Click.Kind.String(), Value: s.Click.Value}
	}
	if s.Hover != nil {
		contents := Encode(s.Hover.Contents)
		c.HoverEvent = &HoverEvent{Action: s.Hover.Kind.String(), Contents: &contents}
	}
	return c
}

// Marshal encodes doc as component JSON.
func Marshal(doc markup.Document) ([]byte, error) {
	return json.Marshal(Encode(doc))
}

// MarshalSNBT encodes doc as an SNBT text component.
func MarshalSNBT(doc markup.Document) (string, error) {
	return snbt.Marshal(Encode(doc).Compound())
}

// Compound converts c to an SNBT compound with the same keys as its JSON form.
func (c Component) Compound() snbt.Compound {
	out := snbt.Compound{{Key: "text", Value: c.Text}}
	if c.Color != "" {
		out.Set("color", c.Color)
	}
	flags := []struct {
		key string
		v   *bool
	}{
		{"bold", c.Bold},
		{"italic", c.Italic},
		{"underlined", c.Underlined},
		{"strikethrough", c.Strikethrough},
		{"obfuscated", c.Obfuscated},
	}
	for _, f := range flags {
		if f.v != nil {
			out.Set(f.key, *f.v)
		}
	}
	if c.ClickEvent != nil {
		out.Set("clickEvent", snbt.Compound{
			{Key: "action", Value: c.ClickEvent.Action},
			{Key: "value", Value: c.ClickEvent.Value},
		})
	}
	if h := c.HoverEvent; h != nil {
		ev := snbt.Compound{{Key: "action", Value: h.Action}}
		if h.Contents != nil {
			ev.Set("contents", h.Contents.Compound())
		}
		out.Set("hoverEvent", ev)
	}
	if len(c.Extra) > 0 {
		extra := make([]snbt.Compound, len(c.Extra))
		for i := range c.Extra {
			extra[i] = c.Extra[i].Compound()
		}
		out.Set("extra", extra)
	}
	return out
}

// Unmarshal decodes component JSON into a document.
func Unmarshal(data []byte) (markup.Document, error) {
	var c Component
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("chat: %w", err)
	}
	return Decode(c)
}

// Decode flattens a component tree into spans, resolving inherited style.
func Decode(c Component) (markup.Document, error) {
	var doc markup.Document
	if err := flatten(c, markup.Span{}, &doc); err != nil {
		return nil, err
	}
	if len(doc) == 0 {
		return markup.Document{{}}, nil
	}
	return doc, nil
}

func flatten(c Component, parent markup.Span, doc *markup.Document) error {
	s := parent
	s.Text = c.Text
	if c.Color != "" {
		// hex colors have no tag equivalent and are dropped
		if col, ok := markup.ParseColor(c.Color); ok {
			s.Color = col
		}
	}
	apply := func(v *bool, d markup.Decoration) {
		if v == nil {
			return
		}
		if *v {
			s.Decorations = s.Decorations.With(d)
		} else {
			s.Decorations = s.Decorations.Without(d)
		}
	}
	apply(c.Bold, markup.Bold)
	apply(c.Italic, markup.Italic)
	apply(c.Underlined, markup.Underlined)
	apply(c.Strikethrough, markup.Strikethrough)
	apply(c.Obfuscated, markup.Obfuscated)

	if ev := c.ClickEvent; ev != nil {
		kind, ok := markup.ParseClickKind(ev.Action)
		if !ok {
			return fmt.Errorf("chat: unsupported click action %q", ev.Action)
		}
		s.Click = &markup.ClickAction{Kind: kind, Value: ev.Value}
	}
	if ev := c.HoverEvent; ev != nil {
		kind, ok := markup.ParseHoverKind(ev.Action)
		if !ok {
			return fmt.Errorf("chat: unsupported hover action %q", ev.Action)
		}
		body := ev.Contents
		if body == nil {
			body = ev.Value
		}
		var contents markup.Document
		if body != nil {
			var err error
			if contents, err = Decode(*body); err != nil {
				return err
			}
		}
		s.Hover = &markup.HoverPayload{Kind: kind, Contents: contents}
	}

	if s.Text != "" {
		*doc = append(*doc, s)
	}
	for _, child := range c.Extra {
		if err := flatten(child, s, doc); err != nil {
			return err
		}
	}
	return nil
}
