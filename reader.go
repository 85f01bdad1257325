package mu

import (
	"errors"
	"strconv"
	"strings"
)

// ErrEOF is returned by Reader.Read (and surfaces as NIL through
// Environment.ReadStream) when the stream is exhausted before a form
// begins, spec.md §6.1.
var ErrEOF = errors.New("mu: end of stream")

// errSkip is an internal sentinel a reader macro returns to mean "I
// consumed input but produced no form" (line comments, block
// comments); the caller loops around and tries again.
var errSkip = errors.New("mu: reader skip")

// namedCharLiterals backs spec.md §4.2's `#\` named-character syntax.
var namedCharLiterals = map[string]byte{
	"newline":   '\n',
	"space":     ' ',
	"tab":       '\t',
	"return":    '\r',
	"linefeed":  '\n',
	"page":      '\f',
	"rubout":    0x7f,
	"backspace": 0x08,
}

// Reader consumes bytes from one stream and produces one form at a
// time (spec.md §4.2). It holds no state across calls other than the
// readtable, the stream itself and a line/column count, so a single Reader can be reused
// for an entire input.
type Reader struct {
	env    *Environment
	stream Value
	rt     *Readtable
	line   int
	column int
}

// NewReader creates a reader over stream using env's readtable.
func NewReader(env *Environment, stream Value) *Reader {
	return &Reader{env: env, stream: stream, rt: env.Readtable, line: 1, column: 1}
}

func (rd *Reader) nextByte() (byte, bool, error) {
	v, err := rd.env.ReadByte(rd.stream)
	if err != nil {
		return 0, false, err
	}
	if Null(v) {
		return 0, true, nil
	}
	b := byte(FixnumValue(v))
	if b == '\n' {
		rd.line++
		rd.column = 1
	} else {
		rd.column++
	}
	return b, false, nil
}

func (rd *Reader) unreadByte() error {
	return rd.env.UnreadByte(rd.stream)
}

func (rd *Reader) peekByte() (byte, bool, error) {
	b, eof, err := rd.nextByte()
	if err != nil || eof {
		return b, eof, err
	}
	_ = rd.unreadByte()
	return b, false, nil
}

// Read parses and returns the next form on the reader's stream, or
// ErrEOF once the stream is exhausted before any form starts.
func (rd *Reader) Read() (Value, error) {
	for {
		b, eof, err := rd.nextByte()
		if err != nil {
			return NIL, err
		}
		if eof {
			return NIL, ErrEOF
		}
		switch rd.rt.classOf(b) {
		case ccWhitespace:
			continue
		case ccMacroTerminating, ccMacroNonTerminating:
			fn, ok := rd.rt.macroFor(b)
			if !ok {
				return NIL, NewConditionError(ClassRead, NIL, "unmapped macro character: "+string(b))
			}
			v, err := fn(rd, b)
			if err == errSkip {
				continue
			}
			return v, err
		case ccMultiEscape:
			return rd.readPipeSymbol()
		default:
			_ = rd.unreadByte()
			return rd.readAtom()
		}
	}
}

// readToken collects a run of constituent/escaped bytes, stopping
// before whitespace or a terminating macro character, per spec.md
// §4.2's `\` escape-for-the-next-byte rule.
func (rd *Reader) readToken() (string, error) {
	var sb strings.Builder
	for {
		b, eof, err := rd.nextByte()
		if err != nil {
			return "", err
		}
		if eof {
			break
		}
		class := rd.rt.classOf(b)
		if class == ccEscape {
			nb, eof2, err2 := rd.nextByte()
			if err2 != nil {
				return "", err2
			}
			if eof2 {
				return "", NewConditionError(ClassRead, NIL, "end of stream after escape")
			}
			sb.WriteByte(nb)
			continue
		}
		if class == ccWhitespace || class == ccMacroTerminating {
			_ = rd.unreadByte()
			break
		}
		sb.WriteByte(b)
	}
	return sb.String(), nil
}

func (rd *Reader) readPipeSymbol() (Value, error) {
	var sb strings.Builder
	for {
		b, eof, err := rd.nextByte()
		if err != nil {
			return NIL, err
		}
		if eof {
			return NIL, NewConditionError(ClassRead, NIL, "unterminated |...| symbol")
		}
		if b == '|' {
			break
		}
		if rd.rt.classOf(b) == ccEscape {
			nb, eof2, err2 := rd.nextByte()
			if err2 != nil {
				return NIL, err2
			}
			if eof2 {
				return NIL, NewConditionError(ClassRead, NIL, "end of stream after escape")
			}
			sb.WriteByte(nb)
			continue
		}
		sb.WriteByte(b)
	}
	return rd.symbolValue(sb.String())
}

// readAtom reads one token and classifies it as a fixnum, a float, a
// keyword, or a (possibly namespace-qualified) symbol, per spec.md
// §4.2's "unadorned atom" rule and symbol syntax.
func (rd *Reader) readAtom() (Value, error) {
	tok, err := rd.readToken()
	if err != nil {
		return NIL, err
	}
	if tok == "" {
		return NIL, NewConditionError(ClassRead, NIL, "empty token")
	}
	if tok == "." {
		return NIL, NewConditionError(ClassRead, NIL, "stray `.` outside a list")
	}
	if n, ok := ParseFixnum(tok); ok {
		return n, nil
	}
	if f, ok := parseFloat(tok); ok {
		return f, nil
	}
	if tok == "nil" {
		return NIL, nil
	}
	return rd.symbolValue(tok)
}

// ParseFixnum parses tok as a base-10 fixnum, rejecting values whose
// magnitude would collide with the tag field (spec.md §4.2).
func ParseFixnum(tok string) (Value, bool) {
	if tok == "" {
		return NIL, false
	}
	n, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		return NIL, false
	}
	if !FixnumInRange(n) {
		return NIL, false
	}
	return MakeFixnum(n), true
}

func parseFloat(tok string) (Value, bool) {
	f, err := strconv.ParseFloat(tok, 32)
	if err != nil {
		return NIL, false
	}
	hasDigit := false
	for _, r := range tok {
		if r >= '0' && r <= '9' {
			hasDigit = true
			break
		}
	}
	if !hasDigit {
		return NIL, false
	}
	return MakeFloat(float32(f)), true
}

// symbolValue resolves tok's symbol syntax: `ns:name`, `ns::name`,
// `:name` (keyword), or a bare `name` interned in the current
// namespace, per spec.md §4.2.
func (rd *Reader) symbolValue(tok string) (Value, error) {
	if strings.HasPrefix(tok, ":") {
		name := tok[1:]
		if len(name) > 7 {
			return NIL, NewConditionError(ClassRead, NIL, "keyword longer than 7 bytes: "+tok)
		}
		return MakeKeyword(name), nil
	}
	if idx := strings.Index(tok, "::"); idx >= 0 {
		nsName, name := tok[:idx], tok[idx+2:]
		ns, err := rd.env.FindNamespace(nsName)
		if err != nil {
			return NIL, err
		}
		return InternPrivate(rd.env.Heap, ns, name), nil
	}
	if idx := strings.Index(tok, ":"); idx >= 0 {
		nsName, name := tok[:idx], tok[idx+1:]
		ns, err := rd.env.FindNamespace(nsName)
		if err != nil {
			return NIL, err
		}
		return Intern(rd.env.Heap, ns, name), nil
	}
	return Intern(rd.env.Heap, rd.env.CurrentNamespace, tok), nil
}

// skipToSignificant consumes whitespace bytes (but not macro-invoking
// bytes), used by list/vector readers between elements.
func (rd *Reader) skipToSignificant() error {
	for {
		b, eof, err := rd.nextByte()
		if err != nil {
			return err
		}
		if eof {
			return ErrEOF
		}
		if rd.rt.classOf(b) != ccWhitespace {
			_ = rd.unreadByte()
			return nil
		}
	}
}

// --- built-in reader macros ---

func readListMacro(rd *Reader, _ byte) (Value, error) {
	var items []Value
	tail := NIL
	for {
		if err := rd.skipToSignificant(); err != nil {
			return NIL, NewConditionError(ClassRead, NIL, "unterminated list")
		}
		b, eof, err := rd.peekByte()
		if err != nil {
			return NIL, err
		}
		if eof {
			return NIL, NewConditionError(ClassRead, NIL, "unterminated list")
		}
		if b == ')' {
			_, _, _ = rd.nextByte()
			break
		}
		// A standalone `.` between two elements makes a dotted pair.
		if b == '.' {
			_, _, _ = rd.nextByte()
			nb, eof2, err2 := rd.peekByte()
			if err2 != nil {
				return NIL, err2
			}
			if eof2 || rd.rt.classOf(nb) == ccWhitespace || nb == ')' {
				v, err := rd.Read()
				if err != nil {
					return NIL, err
				}
				tail = v
				if err := rd.skipToSignificant(); err != nil {
					return NIL, err
				}
				closeB, _, err := rd.nextByte()
				if err != nil || closeB != ')' {
					return NIL, NewConditionError(ClassRead, NIL, "malformed dotted list")
				}
				break
			}
			_ = rd.unreadByte()
		}
		v, err := rd.Read()
		if err != nil {
			return NIL, err
		}
		items = append(items, v)
	}
	result := tail
	for i := len(items) - 1; i >= 0; i-- {
		result = rd.env.Heap.Cons(items[i], result)
	}
	return result, nil
}

func readUnmatchedCloseMacro(_ *Reader, _ byte) (Value, error) {
	return NIL, NewConditionError(ClassRead, NIL, "stray `)`")
}

func readStringMacro(rd *Reader, _ byte) (Value, error) {
	var sb strings.Builder
	for {
		b, eof, err := rd.nextByte()
		if err != nil {
			return NIL, err
		}
		if eof {
			return NIL, NewConditionError(ClassRead, NIL, "unterminated string")
		}
		if b == '"' {
			break
		}
		if b == '\\' {
			nb, eof2, err2 := rd.nextByte()
			if err2 != nil {
				return NIL, err2
			}
			if eof2 {
				return NIL, NewConditionError(ClassRead, NIL, "unterminated string")
			}
			sb.WriteByte(nb)
			continue
		}
		sb.WriteByte(b)
	}
	return rd.env.Heap.MakeString(sb.String()), nil
}

func readLineCommentMacro(rd *Reader, _ byte) (Value, error) {
	for {
		b, eof, err := rd.nextByte()
		if err != nil {
			return NIL, err
		}
		if eof || b == '\n' {
			return NIL, errSkip
		}
	}
}

func readQuoteMacro(rd *Reader, _ byte) (Value, error) {
	form, err := rd.Read()
	if err != nil {
		return NIL, err
	}
	return rd.env.Heap.Cons(MakeKeyword("quote"), rd.env.Heap.Cons(form, NIL)), nil
}

func readDispatchMacro(rd *Reader, _ byte) (Value, error) {
	b, eof, err := rd.nextByte()
	if err != nil {
		return NIL, err
	}
	if eof {
		return NIL, NewConditionError(ClassRead, NIL, "end of stream after `#`")
	}
	switch b {
	case '\\':
		return rd.readCharLiteral()
	case '(':
		return rd.readVectorLiteral()
	case 'x', 'X':
		return rd.readRadixFixnum(16)
	case 'd', 'D':
		return rd.readRadixFixnum(10)
	case 'o', 'O':
		return rd.readRadixFixnum(8)
	case '<':
		return rd.readBroketObject()
	case '\'':
		form, err := rd.Read()
		if err != nil {
			return NIL, err
		}
		closure := Intern(rd.env.Heap, rd.env.CoreNamespace, "closure")
		return rd.env.Heap.Cons(closure, rd.env.Heap.Cons(form, NIL)), nil
	case ':':
		name, err := rd.readToken()
		if err != nil {
			return NIL, err
		}
		return rd.env.Heap.NewSymbol(NIL, name), nil
	case '.':
		form, err := rd.Read()
		if err != nil {
			return NIL, err
		}
		compiled, err := rd.env.Compile(form)
		if err != nil {
			return NIL, err
		}
		return rd.env.Eval(compiled)
	case '|':
		return rd.skipBlockComment()
	}
	return NIL, NewConditionError(ClassRead, NIL, "unmapped `#` dispatch character: "+string(b))
}

func (rd *Reader) readCharLiteral() (Value, error) {
	first, eof, err := rd.nextByte()
	if err != nil {
		return NIL, err
	}
	if eof {
		return NIL, NewConditionError(ClassRead, NIL, "end of stream after `#\\`")
	}
	nb, eof2, err2 := rd.peekByte()
	if err2 == nil && !eof2 && (isAlpha(first) && isAlpha(nb)) {
		tok, err := rd.readToken()
		if err != nil {
			return NIL, err
		}
		name := strings.ToLower(string(first) + tok)
		if b, ok := namedCharLiterals[name]; ok {
			return MakeChar(b), nil
		}
		if len(name) == 1 {
			return MakeChar(name[0]), nil
		}
		return NIL, NewConditionError(ClassRead, NIL, "unknown character literal: #\\"+name)
	}
	return MakeChar(first), nil
}

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func (rd *Reader) readVectorLiteral() (Value, error) {
	formList, err := readListMacro(rd, '(')
	if err != nil {
		return NIL, err
	}
	items := rd.env.Heap.ListToSlice(formList)
	if len(items) == 0 {
		return NIL, NewConditionError(ClassRead, NIL, "#( vector missing element-class keyword")
	}
	class, ok := vectorElementClassFromKeyword(items[0])
	rest := items[1:]
	if !ok {
		// No leading element-class keyword: `#(a b c)` reads as a :t vector.
		class, rest = vecElemT, items
	}
	vec := rd.env.Heap.MakeVector(class, len(rest))
	for i, item := range rest {
		rd.env.Heap.VectorSet(vec, i, item)
	}
	return vec, nil
}

func (rd *Reader) readRadixFixnum(base int) (Value, error) {
	tok, err := rd.readToken()
	if err != nil {
		return NIL, err
	}
	n, perr := strconv.ParseInt(tok, base, 64)
	if perr != nil {
		return NIL, NewConditionError(ClassRead, NIL, "malformed #"+radixLetter(base)+" number: "+tok)
	}
	if !FixnumInRange(n) {
		return NIL, NewConditionError(ClassRead, NIL, "fixnum out of range: "+tok)
	}
	return MakeFixnum(n), nil
}

func radixLetter(base int) string {
	switch base {
	case 16:
		return "x"
	case 8:
		return "o"
	default:
		return "d"
	}
}

// readBroketObject parses `#<:class #xHEX attrs>`, spec.md §4.2/§4.3's
// round-trip syntax for opaque printed objects. Attrs are read and
// discarded; the result is the raw tagged value reconstructed from
// HEX, not an equivalent live object (spec.md's documented round-trip
// gap).
func (rd *Reader) readBroketObject() (Value, error) {
	if err := rd.skipToSignificant(); err != nil {
		return NIL, err
	}
	if _, err := rd.readClassKeywordToken(); err != nil {
		return NIL, err
	}
	if err := rd.skipToSignificant(); err != nil {
		return NIL, err
	}
	hashB, _, err := rd.nextByte()
	if err != nil || hashB != '#' {
		return NIL, NewConditionError(ClassRead, NIL, "malformed #< object: expected #xHEX")
	}
	xB, _, err := rd.nextByte()
	if err != nil || (xB != 'x' && xB != 'X') {
		return NIL, NewConditionError(ClassRead, NIL, "malformed #< object: expected #xHEX")
	}
	hexTok, err := rd.readToken()
	if err != nil {
		return NIL, err
	}
	n, perr := strconv.ParseUint(hexTok, 16, 64)
	if perr != nil {
		return NIL, NewConditionError(ClassRead, NIL, "malformed #< object hex payload")
	}
	if err := rd.skipToSignificant(); err != nil {
		return NIL, err
	}
	openB, _, err := rd.nextByte()
	if err != nil || openB != '(' {
		return NIL, NewConditionError(ClassRead, NIL, "malformed #< object: expected attrs list")
	}
	if _, err := readListMacro(rd, '('); err != nil {
		return NIL, err
	}
	if err := rd.skipToSignificant(); err != nil {
		return NIL, err
	}
	closeB, _, err := rd.nextByte()
	if err != nil || closeB != '>' {
		return NIL, NewConditionError(ClassRead, NIL, "malformed #< object: missing `>`")
	}
	return Value(n), nil
}

func (rd *Reader) readClassKeywordToken() (string, error) {
	b, _, err := rd.nextByte()
	if err != nil {
		return "", err
	}
	if b != ':' {
		return "", NewConditionError(ClassRead, NIL, "malformed #< object: expected class keyword")
	}
	return rd.readToken()
}

func (rd *Reader) skipBlockComment() (Value, error) {
	depth := 1
	for depth > 0 {
		b, eof, err := rd.nextByte()
		if err != nil {
			return NIL, err
		}
		if eof {
			return NIL, NewConditionError(ClassRead, NIL, "unterminated block comment")
		}
		if b == '#' {
			nb, eof2, err2 := rd.peekByte()
			if err2 == nil && !eof2 && nb == '|' {
				_, _, _ = rd.nextByte()
				depth++
			}
		} else if b == '|' {
			nb, eof2, err2 := rd.peekByte()
			if err2 == nil && !eof2 && nb == '#' {
				_, _, _ = rd.nextByte()
				depth--
			}
		}
	}
	return NIL, errSkip
}
