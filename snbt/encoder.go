package snbt

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strconv"
	"unicode/utf8"
)

// SelfEncoder can render itself to SNBT.
type SelfEncoder interface {
	SNBT() string
}

// Encode writes v to w as SNBT. Supported types are Compound,
// map[string]any, []any, string, bool, the integer and float kinds, and
// anything implementing SelfEncoder.
func Encode(w io.Writer, v Value) error { return encodeValue(w, v) }

func encodeValue(w io.Writer, v any) error {
	switch x := v.(type) {
	case nil:
		return errors.New("snbt: cannot encode nil value")
	case Compound:
		return encodeCompound(w, x)
	case map[string]any:
		return encodeCompound(w, sortedCompound(x))
	case []any:
		return encodeList(w, x)
	case []Compound:
		l := make([]any, len(x))
		for i := range x {
			l[i] = x[i]
		}
		return encodeList(w, l)
	case string:
		encodeString(w, x)
		return nil
	case bool:
		if x {
			io.WriteString(w, "true")
		} else {
			io.WriteString(w, "false")
		}
		return nil
	case int:
		io.WriteString(w, strconv.FormatInt(int64(x), 10))
		return nil
	case int64:
		io.WriteString(w, strconv.FormatInt(x, 10)+"L")
		return nil
	case float32:
		io.WriteString(w, formatFloat(float64(x), 32)+"f")
		return nil
	case float64:
		io.WriteString(w, formatFloat(x, 64)+"d")
		return nil
	case SelfEncoder:
		io.WriteString(w, x.SNBT())
		return nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int8:
		io.WriteString(w, strconv.FormatInt(rv.Int(), 10)+"b")
		return nil
	case reflect.Int16:
		io.WriteString(w, strconv.FormatInt(rv.Int(), 10)+"s")
		return nil
	case reflect.Int32:
		io.WriteString(w, strconv.FormatInt(rv.Int(), 10))
		return nil
	case reflect.Uint8, reflect.Uint16, reflect.Uint32:
		io.WriteString(w, strconv.FormatUint(rv.Uint(), 10))
		return nil
	}
	return fmt.Errorf("snbt: unsupported type %T", v)
}

func sortedCompound(m map[string]any) Compound {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	c := make(Compound, 0, len(keys))
	for _, k := range keys {
		c = append(c, Field{Key: k, Value: m[k]})
	}
	return c
}

func encodeCompound(w io.Writer, c Compound) error {
	io.WriteString(w, "{")
	for i, f := range c {
		if i > 0 {
			io.WriteString(w, ",")
		}
		encodeKey(w, f.Key)
		io.WriteString(w, ":")
		if err := encodeValue(w, f.Value); err != nil {
			return fmt.Errorf("snbt: key %q: %w", f.Key, err)
		}
	}
	io.WriteString(w, "}")
	return nil
}

func encodeList(w io.Writer, l []any) error {
	io.WriteString(w, "[")
	for i, it := range l {
		if i > 0 {
			io.WriteString(w, ",")
		}
		if err := encodeValue(w, it); err != nil {
			return err
		}
	}
	io.WriteString(w, "]")
	return nil
}

func encodeKey(w io.Writer, k string) {
	if isIdent(k) {
		io.WriteString(w, k)
		return
	}
	encodeString(w, k)
}

// isIdent reports whether k can be written without quotes.
func isIdent(s string) bool {
	if s == "" {
		return false
	}
	r, size := utf8.DecodeRuneInString(s)
	if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || r == '_') {
		return false
	}
	for _, r := range s[size:] {
		if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-' || r == '.' || r == '+' {
			continue
		}
		return false
	}
	return true
}

// encodeString writes a quoted string. Single quotes are preferred when the
// string contains double quotes, which keeps JSON-looking payloads readable.
func encodeString(w io.Writer, s string) {
	q := byte('"')
	if containsByte(s, '"') && !containsByte(s, '\'') {
		q = '\''
	}
	buf := make([]byte, 0, len(s)+2)
	buf = append(buf, q)
	for _, r := range s {
		switch r {
		case '\\':
			buf = append(buf, `\\`...)
		case rune(q):
			buf = append(buf, '\\', q)
		case '\n':
			buf = append(buf, `\n`...)
		case '\r':
			buf = append(buf, `\r`...)
		case '\t':
			buf = append(buf, `\t`...)
		default:
			if r < 0x20 {
				buf = append(buf, fmt.Sprintf(`\u%04x`, r)...)
			} else {
				buf = utf8.AppendRune(buf, r)
			}
		}
	}
	buf = append(buf, q)
	w.Write(buf)
}

func containsByte(s string, c byte) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			return true
		}
	}
	return false
}

// formatFloat uses the shortest form but always keeps a decimal point.
func formatFloat(f float64, bits int) string {
	s := strconv.FormatFloat(f, 'g', -1, bits)
	for i := 0; i < len(s); i++ {
		if s[i] == '.' || s[i] == 'e' || s[i] == 'E' {
			return s
		}
	}
	return s + ".0"
}
