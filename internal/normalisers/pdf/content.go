package pdf

import (
	"encoding/hex"
	"strconv"
	"strings"
	"unicode"
)

// tjSpaceThreshold is the TJ kerning (thousandths of an em) wide enough to be a word gap.
const tjSpaceThreshold = -250

// operand is a parsed content-stream operand.
type operand struct {
	str   string
	num   float64
	isStr bool
	isNum bool
	array []operand
}

// extractTextFromStream interprets the text operators of a page content stream.
// Line moves become newlines so the chunker can split on them.
func extractTextFromStream(data []byte) string {
	var sb strings.Builder
	var stack []operand

	newline := func() {
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
	}

	lex := lexer{data: data}
	for {
		tok, ok := lex.next()
		if !ok {
			break
		}
		if tok.kind != tokOperator {
			stack = append(stack, tok.value)
			continue
		}

		switch tok.op {
		case "Tj":
			if s, ok := lastString(stack); ok {
				sb.WriteString(s)
			}
		case "'", `"`:
			newline()
			if s, ok := lastString(stack); ok {
				sb.WriteString(s)
			}
		case "TJ":
			if len(stack) > 0 {
				for _, el := range stack[len(stack)-1].array {
					switch {
					case el.isStr:
						sb.WriteString(el.str)
					case el.isNum && el.num <= tjSpaceThreshold:
						sb.WriteByte(' ')
					}
				}
			}
		case "Td", "TD":
			if len(stack) >= 2 && stack[len(stack)-1].isNum && stack[len(stack)-1].num != 0 {
				newline()
			} else if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
		case "T*", "ET":
			newline()
		}
		stack = stack[:0]
	}

	return cleanText(sb.String())
}

func lastString(stack []operand) (string, bool) {
	if len(stack) == 0 || !stack[len(stack)-1].isStr {
		return "", false
	}
	return stack[len(stack)-1].str, true
}

// cleanText drops unprintable runes, collapses horizontal whitespace and
// limits blank lines to one.
func cleanText(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.Join(strings.Fields(strings.Map(func(r rune) rune {
			if unicode.IsPrint(r) || unicode.IsSpace(r) {
				return r
			}
			return -1
		}, line)), " ")
		if line == "" {
			if !blank && len(out) > 0 {
				out = append(out, "")
			}
			blank = true
			continue
		}
		blank = false
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

type tokenKind int

const (
	tokOperand tokenKind = iota
	tokOperator
)

type token struct {
	kind  tokenKind
	op    string
	value operand
}

// lexer tokenises the subset of content-stream syntax text extraction needs.
type lexer struct {
	data []byte
	pos  int
}

func isDelimiter(c byte) bool {
	return strings.IndexByte("()<>[]{}/%", c) >= 0
}

func isWhite(c byte) bool {
	return c == ' ' || c == '\n' || c == '\r' || c == '\t' || c == '\f' || c == 0
}

func (l *lexer) next() (token, bool) {
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		switch {
		case isWhite(c):
			l.pos++
		case c == '%':
			for l.pos < len(l.data) && l.data[l.pos] != '\n' && l.data[l.pos] != '\r' {
				l.pos++
			}
		case c == '(':
			return token{kind: tokOperand, value: operand{str: l.literalString(), isStr: true}}, true
		case c == '<' && l.pos+1 < len(l.data) && l.data[l.pos+1] == '<':
			l.skipDict()
		case c == '<':
			return token{kind: tokOperand, value: operand{str: l.hexString(), isStr: true}}, true
		case c == '[':
			l.pos++
			return token{kind: tokOperand, value: operand{array: l.array()}}, true
		case c == ']' || c == '>' || c == ')' || c == '{' || c == '}':
			l.pos++
		case c == '/':
			l.pos++
			l.word()
			return token{kind: tokOperand}, true
		default:
			w := l.word()
			if w == "" {
				l.pos++
				continue
			}
			if f, err := strconv.ParseFloat(w, 64); err == nil {
				return token{kind: tokOperand, value: operand{num: f, isNum: true}}, true
			}
			if w == "BI" {
				l.skipInlineImage()
				continue
			}
			return token{kind: tokOperator, op: w}, true
		}
	}
	return token{}, false
}

func (l *lexer) word() string {
	start := l.pos
	for l.pos < len(l.data) && !isWhite(l.data[l.pos]) && !isDelimiter(l.data[l.pos]) {
		l.pos++
	}
	return string(l.data[start:l.pos])
}

// array reads operands up to the matching ']'.
func (l *lexer) array() []operand {
	var items []operand
	for l.pos < len(l.data) {
		for l.pos < len(l.data) && isWhite(l.data[l.pos]) {
			l.pos++
		}
		if l.pos >= len(l.data) {
			break
		}
		if l.data[l.pos] == ']' {
			l.pos++
			break
		}
		tok, ok := l.next()
		if !ok {
			break
		}
		if tok.kind == tokOperand {
			items = append(items, tok.value)
		}
	}
	return items
}

// literalString reads a balanced (...) string and decodes escapes.
func (l *lexer) literalString() string {
	l.pos++ // (
	var sb strings.Builder
	depth := 1
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		l.pos++
		switch c {
		case '\\':
			if l.pos >= len(l.data) {
				return sb.String()
			}
			e := l.data[l.pos]
			l.pos++
			switch e {
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case 't':
				sb.WriteByte('\t')
			case 'b', 'f':
			case '\n':
			case '\r':
				if l.pos < len(l.data) && l.data[l.pos] == '\n' {
					l.pos++
				}
			default:
				if e >= '0' && e <= '7' {
					val := int(e - '0')
					for i := 0; i < 2 && l.pos < len(l.data) && l.data[l.pos] >= '0' && l.data[l.pos] <= '7'; i++ {
						val = val*8 + int(l.data[l.pos]-'0')
						l.pos++
					}
					sb.WriteRune(rune(byte(val)))
				} else {
					sb.WriteByte(e)
				}
			}
		case '(':
			depth++
			sb.WriteByte(c)
		case ')':
			depth--
			if depth == 0 {
				return sb.String()
			}
			sb.WriteByte(c)
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

// hexString reads <...> and decodes it as single-byte text.
func (l *lexer) hexString() string {
	l.pos++ // <
	start := l.pos
	for l.pos < len(l.data) && l.data[l.pos] != '>' {
		l.pos++
	}
	digits := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, string(l.data[start:l.pos]))
	l.pos++ // >
	if len(digits)%2 == 1 {
		digits += "0"
	}
	raw, err := hex.DecodeString(digits)
	if err != nil {
		return ""
	}
	var sb strings.Builder
	for _, b := range raw {
		sb.WriteRune(rune(b))
	}
	return sb.String()
}

func (l *lexer) skipDict() {
	depth := 0
	for l.pos+1 < len(l.data) {
		switch {
		case l.data[l.pos] == '<' && l.data[l.pos+1] == '<':
			depth++
			l.pos += 2
		case l.data[l.pos] == '>' && l.data[l.pos+1] == '>':
			depth--
			l.pos += 2
			if depth == 0 {
				return
			}
		default:
			l.pos++
		}
	}
	l.pos = len(l.data)
}

// skipInlineImage jumps past binary image data up to the EI operator.
func (l *lexer) skipInlineImage() {
	for l.pos+2 < len(l.data) {
		if isWhite(l.data[l.pos]) && l.data[l.pos+1] == 'E' && l.data[l.pos+2] == 'I' &&
			(l.pos+3 == len(l.data) || isWhite(l.data[l.pos+3])) {
			l.pos += 3
			return
		}
		l.pos++
	}
	l.pos = len(l.data)
}
