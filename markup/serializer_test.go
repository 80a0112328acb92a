package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerialize(t *testing.T) {
	cases := []struct {
		name string
		doc  Document
		want string
	}{
		{"empty", Document{{}}, ""},
		{"plain", Document{{Text: "hi"}}, "hi"},
		{"bold", Document{{Text: "hi", Decorations: Bold}}, "<bold>hi</bold>"},
		{
			"shared color",
			Document{{Text: "a", Color: Red, Decorations: Bold}, {Text: "b", Color: Red}},
			"<red><bold>a</bold>b</red>",
		},
		{
			"color change",
			Document{{Text: "a", Color: Red}, {Text: "b", Color: Blue}, {Text: "c"}},
			"<red>a</red><blue>b</blue>c",
		},
		{"white is explicit", Document{{Text: "w", Color: White}}, "<white>w</white>"},
		{
			"decorations open in order and close in reverse",
			Document{{Text: "x", Decorations: Bold | Italic}},
			"<bold><italic>x</italic></bold>",
		},
		{
			"click",
			Document{{Text: "go", Click: &ClickAction{Kind: RunCommand, Value: "/spawn"}}, {Text: "!"}},
			"<click:run_command:/spawn>go</click>!",
		},
		{
			"quoted click value",
			Document{{Text: "go", Click: &ClickAction{Kind: OpenURL, Value: "https://x.io/?<a>"}}},
			`<click:open_url:"https://x.io/?<a>">go</click>`,
		},
		{
			"hover",
			Document{{Text: "x", Hover: &HoverPayload{Kind: ShowText, Contents: Document{{Text: "tip", Decorations: Bold}}}}},
			`<hover:show_text:"<bold>tip</bold>">x</hover>`,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Serialize(c.doc))
		})
	}
}

func TestSerialize_StructurallyEqualActionsShareTags(t *testing.T) {
	doc := Document{
		{Text: "a", Click: &ClickAction{Kind: RunCommand, Value: "/x"}},
		{Text: "b", Decorations: Bold, Click: &ClickAction{Kind: RunCommand, Value: "/x"}},
		{Text: "c", Hover: &HoverPayload{Kind: ShowText, Contents: Document{{Text: "t"}}}},
		{Text: "d", Hover: &HoverPayload{Kind: ShowText, Contents: Document{{Text: "t"}}}},
	}
	want := `<click:run_command:/x>a<bold>b</click></bold>` +
		`<hover:show_text:"t">cd</hover>`
	assert.Equal(t, want, Serialize(doc))
}

func TestSerialize_DifferentHoverContents(t *testing.T) {
	doc := Document{
		{Text: "a", Hover: &HoverPayload{Kind: ShowText, Contents: Document{{Text: "one"}}}},
		{Text: "b", Hover: &HoverPayload{Kind: ShowText, Contents: Document{{Text: "two"}}}},
	}
	out := Serialize(doc)
	assert.Equal(t, `<hover:show_text:"one">a</hover><hover:show_text:"two">b</hover>`, out)
	back, err := Parse(out)
	require.NoError(t, err)
	assert.True(t, doc.Equal(back))
}

func TestSerialize_EmptyHoverPayload(t *testing.T) {
	doc, err := Parse(`<hover:show_text:"<bold></bold>">x</hover>`)
	require.NoError(t, err)
	back, err := Parse(Serialize(doc))
	require.NoError(t, err)
	assert.True(t, doc.Equal(back))
}

func TestSerialize_RoundTrip(t *testing.T) {
	inputs := []string{
		"plain text",
		"<bold>hi</bold>",
		"<red><bold>a</bold>b</red>",
		"<red>a<blue>b</red>c</blue>d",
		"<white>w</white> and <gray>g</gray>",
		"<gold>Welcome <bold>Steve</bold>! <click:run_command:/spawn><underlined>[spawn]</underlined></click></gold>",
		`<hover:show_text:"<bold>tip</bold> and <red>more</red>">x</hover>y`,
		`<click:open_url:"https://x.io/?q=<a>">link</click>`,
		`<hover:show_item:"<aqua>Diamond</aqua>"><click:suggest_command:/give @p diamond>item</click></hover>`,
		"<bold><italic>a</bold>b</italic>c",
		"<obfuscated>???</obfuscated><strikethrough>gone</strikethrough>",
		"a < b and c > d",
		"<red>left open",
	}
	for _, in := range inputs {
		doc, err := Parse(in)
		require.NoError(t, err, in)
		out := Serialize(doc)
		back, err := Parse(out)
		require.NoError(t, err, "reparse of %q", out)
		assert.True(t, doc.Equivalent(back), "round trip of %q through %q", in, out)
	}
}

func TestSerialize_TextDoesNotJoinIntoTags(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"<<x>b>", "<<click:run_command:/></click>b>"},
		{"a<<bold></bold>b>rest", "a<<click:run_command:/></click>b>rest"},
		{`<x"a<q"z">b">`, `<x"a<click:run_command:"/"></click>b">`},
		{`<x"a<q"z"><red>b">`, `<x"a<red><click:run_command:"/"></click>b"></red>`},
	}
	for _, c := range cases {
		doc, err := Parse(c.in)
		require.NoError(t, err, c.in)
		require.Greater(t, len(doc), 1, "%q should parse to several spans", c.in)
		out := Serialize(doc)
		assert.Equal(t, c.want, out)
		back, err := Parse(out)
		require.NoError(t, err, "reparse of %q", out)
		assert.True(t, doc.Equal(back), "round trip of %q through %q", c.in, out)
	}
}

func TestSerialize_NoSeparatorWhenTagsSplitText(t *testing.T) {
	doc, err := Parse("a<<bold>b>")
	require.NoError(t, err)
	assert.Equal(t, "a<<bold>b></bold>", Serialize(doc))
}

func TestSerialize_ClickValueEndingInBackslash(t *testing.T) {
	doc := Document{{Text: "x", Click: &ClickAction{Kind: RunCommand, Value: `/say \`}}}
	out := Serialize(doc)
	assert.Equal(t, `<click:run_command:"/say \">x</click>`, out)
	back, err := Parse(out)
	require.NoError(t, err)
	assert.True(t, doc.Equal(back))
}
