package traj

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/ardnew/traj/log"
)

// ParseJSON decodes a relaxed JSON document.
//
// In addition to standard JSON, the reader accepts
//   - comments: // line, /* block */ and # line
//   - unquoted object keys made of identifier characters
//   - single-quoted strings
//   - a trailing comma after the last element of an object or array
//
// Objects decode to *[Map], arrays to []any, integers to int, other numbers
// to float64, and true, false and null to bool and nil. Input must be valid
// UTF-8, \u escapes of surrogates must come in pairs, and integers must fit
// in an int.
func ParseJSON(ctx context.Context, data []byte, opts ...Option) (any, error) {
	var cfg config

	cfg.apply(opts...)

	p := &parser{
		input:  data,
		line:   1,
		col:    1,
		logger: cfg.logger,
	}

	if !p.validUTF8() {
		return nil, p.errorf("invalid UTF-8")
	}

	p.skipWhitespaceAndComments()

	if p.eof() {
		return nil, p.errorf("empty document")
	}

	value, err := p.parseValue()
	if err != nil {
		return nil, err
	}

	p.skipWhitespaceAndComments()

	if !p.eof() {
		return nil, p.errorf("unexpected trailing content")
	}

	p.logger.TraceContext(ctx, "parse complete",
		slog.Int("source_bytes", len(data)),
		slog.String("type", TypeName(value)))

	return value, nil
}

// parser holds the parser state.
type parser struct {
	input  []byte
	pos    int
	line   int
	col    int
	logger log.Logger
}

func (p *parser) errorf(issue string, attrs ...slog.Attr) error {
	return ErrSyntax.With(
		slog.String("issue", issue),
		slog.Any("position", p.position()),
	).With(attrs...)
}

// parseValue parses any value at the current position.
func (p *parser) parseValue() (any, error) {
	switch ch := p.peek(); {
	case ch == '{':
		return p.parseObject()

	case ch == '[':
		return p.parseArray()

	case ch == '"' || ch == '\'':
		return p.parseString()

	case ch == '-' || ch == '+' || ch == '.' || isDigit(ch):
		return p.parseNumber()

	case isIdentifierStart(ch):
		pos := p.position()
		word := p.parseIdentifier()

		switch word {
		case "true":
			return true, nil
		case "false":
			return false, nil
		case "null":
			return nil, nil
		}

		return nil, ErrSyntax.With(
			slog.String("issue", "unexpected identifier"),
			slog.String("identifier", word),
			slog.Any("position", pos),
		)

	default:
		return nil, p.errorf("unexpected character", slog.String("char", string(ch)))
	}
}

// parseObject parses: '{' (Key ':' Value (',' Key ':' Value)* ','?)? '}'.
func (p *parser) parseObject() (*Map, error) {
	p.advance() // skip '{'

	m := &Map{}

	for {
		p.skipWhitespaceAndComments()

		if p.eof() {
			return nil, p.errorf("unterminated object", slog.String("expected", "}"))
		}

		if p.expect('}') {
			return m, nil
		}

		key, err := p.parseKey()
		if err != nil {
			return nil, err
		}

		p.skipWhitespaceAndComments()

		if !p.expect(':') {
			return nil, p.errorf("missing colon after key",
				slog.String("expected", ":"),
				slog.String("key", key))
		}

		p.skipWhitespaceAndComments()

		value, err := p.parseValue()
		if err != nil {
			return nil, err
		}

		m.Set(key, value)

		p.skipWhitespaceAndComments()

		if p.expect(',') {
			continue
		}

		if p.expect('}') {
			return m, nil
		}

		return nil, p.errorf("expected ',' or '}' after object member",
			slog.String("key", key))
	}
}

// parseKey parses a quoted string or a bare identifier key.
func (p *parser) parseKey() (string, error) {
	switch ch := p.peek(); {
	case ch == '"' || ch == '\'':
		return p.parseString()

	case isIdentifierStart(ch) || isDigit(ch):
		return p.parseIdentifier(), nil

	default:
		return "", p.errorf("expected object key", slog.String("char", string(ch)))
	}
}

// parseArray parses: '[' (Value (',' Value)* ','?)? ']'.
func (p *parser) parseArray() ([]any, error) {
	p.advance() // skip '['

	list := make([]any, 0)

	for {
		p.skipWhitespaceAndComments()

		if p.eof() {
			return nil, p.errorf("unterminated array", slog.String("expected", "]"))
		}

		if p.expect(']') {
			return list, nil
		}

		value, err := p.parseValue()
		if err != nil {
			return nil, err
		}

		list = append(list, value)

		p.skipWhitespaceAndComments()

		if p.expect(',') {
			continue
		}

		if p.expect(']') {
			return list, nil
		}

		return nil, p.errorf("expected ',' or ']' after array element")
	}
}

// parseString parses a single or double quoted string with JSON escapes.
func (p *parser) parseString() (string, error) {
	start := p.position()
	quote := p.peek()

	p.advance() // skip opening quote

	var sb strings.Builder

	for !p.eof() {
		ch := p.peek()

		switch ch {
		case quote:
			p.advance()

			return sb.String(), nil

		case '\n':
			return "", p.errorf("newline in string")

		case '\\':
			p.advance()

			if err := p.parseEscape(&sb); err != nil {
				return "", err
			}

		default:
			sb.WriteRune(ch)
			p.advance()
		}
	}

	return "", ErrSyntax.With(
		slog.String("issue", "unterminated string"),
		slog.Any("position", start),
	)
}

func (p *parser) parseEscape(sb *strings.Builder) error {
	if p.eof() {
		return p.errorf("unterminated escape")
	}

	ch := p.peek()
	p.advance()

	switch ch {
	case '"', '\'', '\\', '/':
		sb.WriteRune(ch)
	case 'b':
		sb.WriteByte('\b')
	case 'f':
		sb.WriteByte('\f')
	case 'n':
		sb.WriteByte('\n')
	case 'r':
		sb.WriteByte('\r')
	case 't':
		sb.WriteByte('\t')
	case 'u':
		r, err := p.parseHex4()
		if err != nil {
			return err
		}

		if utf16.IsSurrogate(r) {
			if p.peekN(2) != `\u` {
				return p.errorf("unpaired surrogate", slog.String("hex", strconv.FormatInt(int64(r), 16)))
			}

			p.advance()
			p.advance()

			r2, err := p.parseHex4()
			if err != nil {
				return err
			}

			if r = utf16.DecodeRune(r, r2); r == unicode.ReplacementChar {
				return p.errorf("unpaired surrogate", slog.String("hex", strconv.FormatInt(int64(r2), 16)))
			}
		}

		sb.WriteRune(r)
	default:
		return p.errorf("invalid escape", slog.String("char", string(ch)))
	}

	return nil
}

func (p *parser) parseHex4() (rune, error) {
	hex := p.peekN(4)
	if len(hex) < 4 { //nolint:mnd
		return 0, p.errorf("short unicode escape")
	}

	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, p.errorf("invalid unicode escape", slog.String("hex", hex))
	}

	for range 4 {
		p.advance()
	}

	return rune(n), nil
}

// parseNumber parses a JSON number. Integers stay integers; one that does
// not fit in an int is a syntax error.
func (p *parser) parseNumber() (any, error) {
	pos := p.position()
	start := p.pos

	if p.peek() == '-' || p.peek() == '+' {
		p.advance()
	}

	isFloat := false

	for !p.eof() {
		ch := p.peek()

		switch {
		case isDigit(ch):
		case ch == '.' || ch == 'e' || ch == 'E':
			isFloat = true
		case (ch == '-' || ch == '+') && isFloat:
			prev := p.input[p.pos-1]
			if prev != 'e' && prev != 'E' {
				goto done
			}
		default:
			goto done
		}

		p.advance()
	}

done:
	text := strings.TrimPrefix(string(p.input[start:p.pos]), "+")

	if !isFloat {
		n, err := strconv.Atoi(text)
		if err == nil {
			return n, nil
		}

		if errors.Is(err, strconv.ErrRange) {
			return nil, ErrSyntax.With(
				slog.String("issue", "integer out of range"),
				slog.String("text", text),
				slog.Any("position", pos),
			)
		}
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, ErrSyntax.With(
			slog.String("issue", "invalid number"),
			slog.String("text", text),
			slog.Any("position", pos),
		)
	}

	return f, nil
}

// parseIdentifier parses a bare word made of identifier characters.
func (p *parser) parseIdentifier() string {
	start := p.pos

	for !p.eof() && isIdentifierContinue(p.peek()) {
		p.advance()
	}

	return string(p.input[start:p.pos])
}

// Helper methods

func (p *parser) peek() rune {
	if p.eof() {
		return 0
	}

	r, _ := utf8.DecodeRune(p.input[p.pos:])

	return r
}

func (p *parser) peekN(n int) string {
	if p.pos+n > len(p.input) {
		return string(p.input[p.pos:])
	}

	return string(p.input[p.pos : p.pos+n])
}

func (p *parser) advance() {
	if p.eof() {
		return
	}

	r, size := utf8.DecodeRune(p.input[p.pos:])

	p.pos += size
	if r == '\n' {
		p.line++
		p.col = 1
	} else {
		p.col++
	}
}

func (p *parser) expect(ch rune) bool {
	if p.peek() == ch {
		p.advance()

		return true
	}

	return false
}

// validUTF8 reports whether the rest of the input is valid UTF-8. If not, the
// parser is left at the first invalid byte.
func (p *parser) validUTF8() bool {
	for !p.eof() {
		if r, size := utf8.DecodeRune(p.input[p.pos:]); r == utf8.RuneError && size <= 1 {
			return false
		}

		p.advance()
	}

	p.pos, p.line, p.col = 0, 1, 1

	return true
}

func (p *parser) eof() bool {
	return p.pos >= len(p.input)
}

func (p *parser) position() Position {
	return Position{
		Offset: p.pos,
		Line:   p.line,
		Column: p.col,
	}
}

func (p *parser) skipWhitespace() {
	for !p.eof() && unicode.IsSpace(p.peek()) {
		p.advance()
	}
}

func (p *parser) skipWhitespaceAndComments() {
	for {
		p.skipWhitespace()

		if p.eof() {
			return
		}

		switch {
		case p.peekN(2) == "//", p.peek() == '#':
			p.skipLineComment()
		case p.peekN(2) == "/*":
			p.skipBlockComment()
		default:
			return
		}
	}
}

func (p *parser) skipLineComment() {
	for !p.eof() && p.peek() != '\n' {
		p.advance()
	}
}

func (p *parser) skipBlockComment() {
	p.advance() // skip '/'
	p.advance() // skip '*'

	for !p.eof() {
		if p.peekN(2) == "*/" {
			p.advance() // skip '*'
			p.advance() // skip '/'

			return
		}

		p.advance()
	}
}

// Character classification

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isIdentifierStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_' || r == '$'
}

func isIdentifierContinue(r rune) bool {
	return isIdentifierStart(r) || unicode.IsDigit(r) || r == '.' || r == '-'
}
