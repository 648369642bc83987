package verifier

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"math/big"
	"sort"
	"strconv"
	"strings"
)

// Characters removed from the end of array-like output such as "1, 2,".
const trailingSeparators = ", \n\r\t"

// Normalize canonicalizes program output so that outputs printed with different
// brackets, separators or spacing compare equal. The first rule that applies wins:
//
//  1. JSON values are re-encoded compactly with sorted object keys.
//  2. Text containing commas or spaces is split into tokens; each token becomes an
//     integer, a float or an unquoted string and the tokens are encoded as a JSON array.
//  3. Anything else is returned trimmed.
//
// Rule 2 also splits legitimate multi-word strings, so `hello world` normalizes to
// ["hello","world"].
func Normalize(output string) string {
	output = strings.TrimSpace(output)

	if canonical, ok := canonicalJSON(output); ok {
		return canonical
	}

	cleaned := strings.TrimRight(output, trailingSeparators)
	if strings.ContainsAny(cleaned, ", ") {
		parts := strings.Fields(strings.ReplaceAll(cleaned, ",", " "))
		if len(parts) > 0 {
			var buf bytes.Buffer
			buf.WriteByte('[')
			for i, part := range parts {
				if i > 0 {
					buf.WriteByte(',')
				}
				buf.WriteString(encodeToken(part))
			}
			buf.WriteByte(']')
			return buf.String()
		}
	}

	return output
}

func canonicalJSON(s string) (string, bool) {
	if s == "" {
		return "", false
	}

	p := &jsonParser{input: s}
	value, err := p.parseValue()
	if err != nil {
		return "", false
	}
	p.skipWhitespace()
	if p.pos != len(p.input) {
		return "", false
	}

	var buf bytes.Buffer
	encodeValue(&buf, value)
	return buf.String(), true
}

func encodeValue(buf *bytes.Buffer, value any) {
	switch v := value.(type) {
	case nil:
		buf.WriteString("null")
	case bool:
		buf.WriteString(strconv.FormatBool(v))
	case json.Number:
		buf.WriteString(canonicalNumber(v.String()))
	case float64:
		buf.WriteString(formatFloat(v))
	case string:
		buf.WriteString(quote(v))
	case []any:
		buf.WriteByte('[')
		for i, el := range v {
			if i > 0 {
				buf.WriteByte(',')
			}
			encodeValue(buf, el)
		}
		buf.WriteByte(']')
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(quote(k))
			buf.WriteByte(':')
			encodeValue(buf, v[k])
		}
		buf.WriteByte('}')
	}
}

// canonicalNumber formats a JSON number literal. Literals without a fraction or
// exponent are integers of arbitrary size, everything else is a float64.
func canonicalNumber(literal string) string {
	if !strings.ContainsAny(literal, ".eE") {
		if n, ok := new(big.Int).SetString(literal, 10); ok {
			return n.String()
		}
	}
	f, ok := parseFloat(literal)
	if !ok {
		return literal
	}
	return formatFloat(f)
}

// encodeToken encodes one whitespace/comma separated token of array-like output.
func encodeToken(token string) string {
	if n, ok := new(big.Int).SetString(token, 10); ok {
		return n.String()
	}
	if f, ok := parseFloat(token); ok {
		return formatFloat(f)
	}
	return quote(strings.Trim(token, `"'`))
}

// parseFloat parses a decimal float, also accepting nan and inf spellings.
// Literals too large for a float64 become infinities.
func parseFloat(s string) (float64, bool) {
	unsigned := strings.TrimLeft(s, "+-")
	if strings.HasPrefix(unsigned, "0x") || strings.HasPrefix(unsigned, "0X") {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return f, true
}

// formatFloat renders f with the shortest representation that round-trips.
// Integral values keep a ".0" suffix so 1.0 and 1 stay distinct, and
// exponents outside [-4, 16) switch to scientific notation.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
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

func quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return `""`
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
