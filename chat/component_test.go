package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmoiron/mctext/markup"
)

func mustParse(t *testing.T, s string) markup.Document {
	t.Helper()
	doc, err := markup.Parse(s)
	require.NoError(t, err)
	return doc
}

func TestMarshal(t *testing.T) {
	doc := mustParse(t, "<red><bold>a</bold>b</red><click:run_command:/spawn>c</click>")
	b, err := Marshal(doc)
	require.NoError(t, err)
	want := `{"text":"","extra":[` +
		`{"text":"a","color":"red","bold":true},` +
		`{"text":"b","color":"red"},` +
		`{"text":"c","clickEvent":{"action":"run_command","value":"/spawn"}}]}`
	assert.JSONEq(t, want, string(b))
}

func TestMarshal_Hover(t *testing.T) {
	doc := mustParse(t, `<hover:show_text:"<bold>tip</bold>">x</hover>`)
	b, err := Marshal(doc)
	require.NoError(t, err)
	want := `{"text":"","extra":[{"text":"x","hoverEvent":{"action":"show_text",` +
		`"contents":{"text":"","extra":[{"text":"tip","bold":true}]}}}]}`
	assert.JSONEq(t, want, string(b))
}

func TestMarshalSNBT(t *testing.T) {
	doc := mustParse(t, `<gold>Hi <italic>there</italic></gold>`)
	s, err := MarshalSNBT(doc)
	require.NoError(t, err)
	assert.Equal(t, `{text:"",extra:[{text:"Hi ",color:"gold"},{text:"there",color:"gold",italic:true}]}`, s)
}

func TestUnmarshal_Shapes(t *testing.T) {
	cases := []struct {
		in   string
		want markup.Document
	}{
		{`"plain"`, markup.Document{{Text: "plain"}}},
		{`{"text":"x","color":"aqua"}`, markup.Document{{Text: "x", Color: markup.Aqua}}},
		{
			`[{"text":"a","bold":true},{"text":"b"},{"text":"c","bold":false}]`,
			markup.Document{
				{Text: "a", Decorations: markup.Bold},
				{Text: "b", Decorations: markup.Bold},
				{Text: "c"},
			},
		},
		{`{"text":"","color":"#ff0000","extra":["x"]}`, markup.Document{{Text: "x"}}},
		{`{"text":""}`, markup.Document{{}}},
	}
	for _, c := range cases {
		doc, err := Unmarshal([]byte(c.in))
		require.NoError(t, err, c.in)
		assert.Equal(t, c.want, doc, c.in)
	}
}

func TestUnmarshal_LegacyHoverValue(t *testing.T) {
	doc, err := Unmarshal([]byte(`{"text":"x","hoverEvent":{"action":"show_item","value":{"text":"Sword","color":"aqua"}}}`))
	require.NoError(t, err)
	require.Len(t, doc, 1)
	require.NotNil(t, doc[0].Hover)
	assert.Equal(t, markup.ShowItem, doc[0].Hover.Kind)
	assert.Equal(t, markup.Document{{Text: "Sword", Color: markup.Aqua}}, doc[0].Hover.Contents)
}

func TestUnmarshal_Errors(t *testing.T) {
	for _, in := range []string{
		`{"text":"x","clickEvent":{"action":"copy_to_clipboard","value":"y"}}`,
		`{"text":"x","hoverEvent":{"action":"show_achievement"}}`,
		`[]`,
		`{`,
	} {
		_, err := Unmarshal([]byte(in))
		assert.Error(t, err, in)
	}
}

func TestRoundTrip(t *testing.T) {
	for _, in := range []string{
		"plain",
		"",
		"<red><bold>a</bold>b</red>c",
		`<hover:show_entity:"<gray>Creeper</gray>"><click:suggest_command:/kill @e>boom</click></hover> <obfuscated>x</obfuscated>`,
	} {
		doc := mustParse(t, in)
		b, err := Marshal(doc)
		require.NoError(t, err)
		back, err := Unmarshal(b)
		require.NoError(t, err)
		assert.True(t, doc.Equivalent(back), "round trip of %q via %s", in, b)
	}
}
