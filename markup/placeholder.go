package markup

import (
	"errors"
	"sort"
	"strings"
)

// ErrOddPlaceholders is returned by Pairs when a key has no value.
var ErrOddPlaceholders = errors.New("markup: placeholders must be key/value pairs")

// Placeholders maps a placeholder name to its replacement. The name is used
// without brackets: {"name": "World"} replaces "<name>".
type Placeholders map[string]string

// Pairs builds Placeholders from alternating keys and values.
func Pairs(kv ...string) (Placeholders, error) {
	if len(kv)%2 != 0 {
		return nil, ErrOddPlaceholders
	}
	p := make(Placeholders, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		p[kv[i]] = kv[i+1]
	}
	return p, nil
}

// Substitute replaces every "<key>" in text with its value. Replacement is
// textual and happens in a single pass, so a value that itself contains a
// placeholder is left as is. When two keys match at the same offset the longer
// one wins.
func Substitute(text string, p Placeholders) string {
	if len(p) == 0 || !strings.Contains(text, "<") {
		return text
	}
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	oldnew := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		oldnew = append(oldnew, "<"+k+">", p[k])
	}
	return strings.NewReplacer(oldnew...).Replace(text)
}
