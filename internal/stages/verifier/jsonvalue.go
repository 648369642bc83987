package verifier

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
)

var errInvalidJSON = errors.New("invalid json")

// jsonParser decodes a single JSON value. Besides standard JSON it accepts the
// NaN, Infinity and -Infinity literals that many languages print for non-finite floats.
// Numbers are returned as json.Number, non-finite literals as float64.
type jsonParser struct {
	input string
	pos   int
}

func (p *jsonParser) skipWhitespace() {
	for p.pos < len(p.input) {
		switch p.input[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *jsonParser) consume(literal string) bool {
	if strings.HasPrefix(p.input[p.pos:], literal) {
		p.pos += len(literal)
		return true
	}
	return false
}

func (p *jsonParser) parseValue() (any, error) {
	p.skipWhitespace()
	if p.pos >= len(p.input) {
		return nil, errInvalidJSON
	}

	switch c := p.input[p.pos]; {
	case c == '{':
		return p.parseObject()
	case c == '[':
		return p.parseArray()
	case c == '"':
		return p.parseString()
	case p.consume("true"):
		return true, nil
	case p.consume("false"):
		return false, nil
	case p.consume("null"):
		return nil, nil
	case p.consume("NaN"):
		return math.NaN(), nil
	case p.consume("Infinity"):
		return math.Inf(1), nil
	case p.consume("-Infinity"):
		return math.Inf(-1), nil
	case c == '-' || (c >= '0' && c <= '9'):
		return p.parseNumber()
	default:
		return nil, errInvalidJSON
	}
}

func (p *jsonParser) parseObject() (any, error) {
	p.pos++
	obj := map[string]any{}

	p.skipWhitespace()
	if p.consume("}") {
		return obj, nil
	}
	for {
		p.skipWhitespace()
		if p.pos >= len(p.input) || p.input[p.pos] != '"' {
			return nil, errInvalidJSON
		}
		key, err := p.parseString()
		if err != nil {
			return nil, err
		}
		p.skipWhitespace()
		if !p.consume(":") {
			return nil, errInvalidJSON
		}
		value, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		obj[key] = value

		p.skipWhitespace()
		if p.consume("}") {
			return obj, nil
		}
		if !p.consume(",") {
			return nil, errInvalidJSON
		}
	}
}

func (p *jsonParser) parseArray() (any, error) {
	p.pos++
	arr := []any{}

	p.skipWhitespace()
	if p.consume("]") {
		return arr, nil
	}
	for {
		value, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		arr = append(arr, value)

		p.skipWhitespace()
		if p.consume("]") {
			return arr, nil
		}
		if !p.consume(",") {
			return nil, errInvalidJSON
		}
	}
}

// parseString finds the closing quote and lets encoding/json validate and unescape the literal.
func (p *jsonParser) parseString() (string, error) {
	start := p.pos
	p.pos++
	for p.pos < len(p.input) {
		switch p.input[p.pos] {
		case '\\':
			p.pos += 2
		case '"':
			p.pos++
			var s string
			if err := json.Unmarshal([]byte(p.input[start:p.pos]), &s); err != nil {
				return "", errInvalidJSON
			}
			return s, nil
		default:
			p.pos++
		}
	}
	return "", errInvalidJSON
}

func (p *jsonParser) parseNumber() (any, error) {
	start := p.pos
	p.consume("-")

	switch {
	case p.consume("0"):
	case p.digits() == 0:
		return nil, errInvalidJSON
	}
	if p.consume(".") && p.digits() == 0 {
		return nil, errInvalidJSON
	}
	if p.consume("e") || p.consume("E") {
		if !p.consume("+") {
			p.consume("-")
		}
		if p.digits() == 0 {
			return nil, errInvalidJSON
		}
	}
	return json.Number(p.input[start:p.pos]), nil
}

func (p *jsonParser) digits() int {
	start := p.pos
	for p.pos < len(p.input) && p.input[p.pos] >= '0' && p.input[p.pos] <= '9' {
		p.pos++
	}
	return p.pos - start
}
