package mcformat

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jmoiron/mctext/markup"
)

func TestFromLegacy(t *testing.T) {
	got := FromLegacy("&cHi &lthere")
	want := markup.Document{
		{Text: "Hi ", Color: markup.Red},
		{Text: "there", Color: markup.Red, Decorations: markup.Bold},
	}
	assert.Equal(t, want, got)
}

func TestFromLegacy_ColorClearsFormats(t *testing.T) {
	got := FromLegacy("§l§obold§6gold§rplain")
	want := markup.Document{
		{Text: "bold", Decorations: markup.Bold | markup.Italic},
		{Text: "gold", Color: markup.Gold},
		{Text: "plain"},
	}
	assert.Equal(t, want, got)
}

func TestFromLegacy_UnknownCodesAreText(t *testing.T) {
	assert.Equal(t, markup.Document{{Text: "Tom & Jerry &z"}}, FromLegacy("Tom & Jerry &z"))
	assert.Equal(t, markup.Document{{}}, FromLegacy(""))
	assert.Equal(t, markup.Document{{Text: "end&"}}, FromLegacy("end&"))
}

func TestToLegacy(t *testing.T) {
	doc, err := markup.Parse("<red>a<bold>b</bold></red>c<italic>d</italic>")
	assert.NoError(t, err)
	assert.Equal(t, "§ca§c§lb§rc§od", ToLegacy(doc))
	assert.True(t, doc.Equivalent(FromLegacy(ToLegacy(doc))))
}

func TestStripLegacy(t *testing.T) {
	assert.Equal(t, "poly-α-olefin", StripLegacy("&6poly-α-olefin&r"))
	assert.Equal(t, "a & b", StripLegacy("a & b"))
	assert.Equal(t, "plain", StripLegacy("plain"))
}

func TestHTML(t *testing.T) {
	doc, err := markup.Parse(`<gold><bold>A</bold></gold><click:run_command:/spawn>&<hover:show_text:"tip">x</hover></click>`)
	assert.NoError(t, err)
	want := `<span class="mc-text mc-c6 mc-bold">A</span>` +
		`<span class="mc-text" data-click="run_command" data-value="/spawn">&amp;</span>` +
		`<span class="mc-text" data-click="run_command" data-value="/spawn" title="tip">x</span>`
	assert.Equal(t, want, string(HTML(doc)))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, `<span class="mc-text mc-ca">ok</span>`, string(Format("&aok")))
}
