package markup

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// fragments are joined at random to build markup. Lone angle brackets let
// literal text join into tag-shaped runs; quotes stay out of literal text.
var fragments = []string{
	"hello", " ", "world", "!", "x", "<", ">", "b>",
	"<red>", "</red>", "<blue>", "</blue>", "<white>", "</white>", "<GOLD>",
	"<bold>", "</bold>", "<italic>", "</italic>", "<underlined>", "</underlined>",
	"<strikethrough>", "</strikethrough>", "<obfuscated>", "</obfuscated>",
	"<click:run_command:/spawn>", "<click:open_url:https://example.com/a?b=c>",
	`<click:suggest_command:"/msg <player> ">`, "</click>",
	`<hover:show_text:"<bold>tip</bold> text">`, `<hover:show_item:"<aqua>gem</aqua>">`,
	`<hover:show_entity:"<gray>Zombie</gray>">`, "</hover>",
	"<unknown>", "</unknown>",
}

func genMarkup() gopter.Gen {
	return gen.SliceOf(gen.IntRange(0, len(fragments)-1)).Map(func(idx []int) string {
		var b strings.Builder
		for _, i := range idx {
			b.WriteString(fragments[i])
		}
		return b.String()
	})
}

// genNoise builds strings that are mostly delimiters, which is where the
// tokenizer's edge cases live.
func genNoise() gopter.Gen {
	alphabet := []string{"<", ">", `"`, "/", ":", "a", "b", " ", "\\"}
	return gen.SliceOf(gen.IntRange(0, len(alphabet)-1)).Map(func(idx []int) string {
		var b strings.Builder
		for _, i := range idx {
			b.WriteString(alphabet[i])
		}
		return b.String()
	})
}

func TestProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(1847)
	parameters.MinSuccessfulTests = 300

	properties := gopter.NewProperties(parameters)

	properties.Property("strip is idempotent", prop.ForAll(
		func(s string) bool {
			once := Strip(s)
			return Strip(once) == once
		},
		genNoise(),
	))

	properties.Property("strip removes every tag", prop.ForAll(
		func(s string) bool {
			toks, _ := Tokens(Strip(s))
			return len(toks) == 0
		},
		genNoise(),
	))

	properties.Property("tokens and literal text cover the input", prop.ForAll(
		func(s string) bool {
			var b strings.Builder
			tz := NewTokenizer(s)
			for tz.Next() {
				tok := tz.Token()
				b.WriteString(tok.Text)
				b.WriteString(s[tok.Pos:tok.End])
			}
			b.WriteString(tz.Rest())
			return b.String() == s
		},
		genNoise(),
	))

	properties.Property("parse never panics on noise", prop.ForAll(
		func(s string) bool {
			doc, err := Parse(s)
			return (err == nil) == (doc != nil)
		},
		genNoise(),
	))

	properties.Property("serialize inverts parse", prop.ForAll(
		func(s string) bool {
			doc, err := Parse(s)
			if err != nil {
				// unbalanced closing tags are expected from random input
				return true
			}
			back, err := Parse(Serialize(doc))
			return err == nil && doc.Equivalent(back)
		},
		genMarkup(),
	))

	properties.Property("spans are never empty", prop.ForAll(
		func(s string) bool {
			doc, err := Parse(s)
			if err != nil {
				return true
			}
			if len(doc) == 1 {
				return true
			}
			for _, sp := range doc {
				if sp.Text == "" {
					return false
				}
			}
			return true
		},
		genMarkup(),
	))

	properties.Property("plain text survives parsing", prop.ForAll(
		func(s string) bool {
			doc, err := Parse(s)
			if err != nil {
				return true
			}
			// a single pass, since dropping tags can form new ones
			return doc.PlainText() == stripOnce(s)
		},
		genMarkup(),
	))

	properties.Property("escaped markup parses without styles", prop.ForAll(
		func(s string) bool {
			doc, err := Parse(Escape(s))
			if err != nil {
				return false
			}
			for _, sp := range doc {
				if sp.Color != ColorNone || sp.Decorations != 0 || sp.Click != nil || sp.Hover != nil {
					return false
				}
			}
			return true
		},
		genMarkup(),
	))

	properties.TestingRun(t)
}
