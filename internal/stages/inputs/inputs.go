// Package inputs converts structured test case input into the text a program reads from stdin.
package inputs

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"math/big"
	"strconv"
	"strings"
	"unicode"
)

// Normalize renders raw test case input as stdin text.
//
//	{"nums": [2, 7, 11, 15], "target": 9} -> "2 7 11 15\n9"
//	[1, 2, 3]                            -> "1 2 3"
//	"hello"                              -> "hello"
//	{"ok": true, "grid": [[1, 2]]}       -> "True\n[1, 2]"
//
// Object fields keep their declaration order and a repeated key keeps its first position with
// its last value. Input that is not valid JSON is returned verbatim.
func Normalize(raw string) string {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	value, err := decodeValue(dec)
	if err != nil {
		return raw
	}
	// Trailing data means raw was not a single JSON document.
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return raw
	}

	switch v := value.(type) {
	case object:
		lines := make([]string, 0, len(v))
		for _, field := range v {
			if arr, ok := field.value.([]any); ok {
				lines = append(lines, joinElements(arr))
				continue
			}
			lines = append(lines, render(field.value))
		}
		return strings.Join(lines, "\n")
	case []any:
		return joinElements(v)
	default:
		return render(v)
	}
}

type field struct {
	key   string
	value any
}

// object is a JSON object with its field order preserved.
type object []field

// set replaces the value of an existing key in place or appends a new field.
func (o object) set(key string, value any) object {
	for i := range o {
		if o[i].key == key {
			o[i].value = value
			return o
		}
	}
	return append(o, field{key: key, value: value})
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := object{}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, errors.New("object key is not a string")
				}
				value, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				obj = obj.set(key, value)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return obj, nil
		case '[':
			arr := []any{}
			for dec.More() {
				value, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				arr = append(arr, value)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return arr, nil
		default:
			return nil, errors.New("unexpected delimiter")
		}
	default:
		return tok, nil
	}
}

func joinElements(arr []any) string {
	parts := make([]string, len(arr))
	for i, el := range arr {
		parts[i] = render(el)
	}
	return strings.Join(parts, " ")
}

// render returns the string form of a decoded value: strings unquoted, integers
// exact, floats in shortest round-trip form, True/False/None for literals and
// nested containers in their repr form.
func render(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return repr(value)
}

func repr(value any) string {
	switch v := value.(type) {
	case nil:
		return "None"
	case string:
		return quote(v)
	case json.Number:
		return formatNumber(v.String())
	case bool:
		if v {
			return "True"
		}
		return "False"
	case []any:
		parts := make([]string, len(v))
		for i, el := range v {
			parts[i] = repr(el)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case object:
		parts := make([]string, len(v))
		for i, f := range v {
			parts[i] = quote(f.key) + ": " + repr(f.value)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return ""
	}
}

// formatNumber renders a JSON number literal. Literals without a fraction or
// exponent are integers of arbitrary size, everything else is a float64.
func formatNumber(literal string) string {
	if !strings.ContainsAny(literal, ".eE") {
		if n, ok := new(big.Int).SetString(literal, 10); ok {
			return n.String()
		}
	}
	f, err := strconv.ParseFloat(literal, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return literal
	}
	return formatFloat(f)
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	sci := strconv.FormatFloat(f, 'e', -1, 64)
	exp, err := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	if err != nil || exp < -4 || exp >= 16 {
		return sci
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// quote renders s as a single-quoted literal, switching to double quotes when s
// contains a single quote and no double quote.
func quote(s string) string {
	q := '\''
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		q = '"'
	}

	var b strings.Builder
	b.WriteRune(q)
	for _, r := range s {
		switch {
		case r == q || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case unicode.IsPrint(r):
			b.WriteRune(r)
		case r < 0x100:
			fmt.Fprintf(&b, `\x%02x`, r)
		case r < 0x10000:
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			fmt.Fprintf(&b, `\U%08x`, r)
		}
	}
	b.WriteRune(q)
	return b.String()
}
