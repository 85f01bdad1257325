package mu

import (
	"fmt"
	"strconv"
	"strings"
)

// Printer renders a Value back to text, the mirror image of Reader.
// escape selects between the machine-readable syntax (strings quoted,
// characters as `#\x`) and the display syntax a human-facing REPL
// print would use, per spec.md §4.3.
type Printer struct {
	env    *Environment
	escape bool
}

// Print writes v's textual representation to stream.
func (p *Printer) Print(stream, v Value) error {
	return p.env.WriteString(stream, p.Render(v))
}

// Render returns v's textual representation as a Go string, the
// engine behind both Print and Environment.PrintToString.
func (p *Printer) Render(v Value) string {
	h := p.env.Heap
	switch {
	case Null(v):
		return "nil"
	case v == T:
		return "t"
	case IsFixnum(v):
		return strconv.FormatInt(FixnumValue(v), 10)
	case IsFloat(v):
		return strconv.FormatFloat(float64(FloatValue(v)), 'g', -1, 32)
	case IsChar(v):
		return p.renderChar(v)
	case IsKeyword(v):
		return ":" + KeywordName(v)
	case IsImmediateString(v):
		return p.renderString(ImmediateStringValue(v))
	case h.IsString(v):
		return p.renderString(h.StringValue(v))
	case IsHeapSymbol(v):
		return p.renderSymbol(v)
	case IsPair(v):
		return p.renderList(v)
	case IsExtended(v):
		return p.renderExtended(v)
	case IsFunction(v):
		return p.broket("func", uint64(v), NIL)
	default:
		return p.broket("addr", uint64(v), NIL)
	}
}

func (p *Printer) renderChar(v Value) string {
	b := CharValue(v)
	if !p.escape {
		return string(b)
	}
	for name, lit := range namedCharLiterals {
		if lit == b && name != "linefeed" {
			return "#\\" + name
		}
	}
	return "#\\" + string(b)
}

func (p *Printer) renderString(s string) string {
	if !p.escape {
		return s
	}
	var sb strings.Builder
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"', '\\':
			sb.WriteByte('\\')
			sb.WriteByte(s[i])
		default:
			sb.WriteByte(s[i])
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

func (p *Printer) renderSymbol(v Value) string {
	h := p.env.Heap
	name := h.SymbolName(v)
	ns := h.SymbolNamespace(v)
	if Null(ns) {
		return "#:" + name
	}
	nsName := h.NamespaceName(ns)
	if ns == p.env.CurrentNamespace {
		return name
	}
	return nsName + ":" + name
}

func (p *Printer) renderList(v Value) string {
	h := p.env.Heap
	var sb strings.Builder
	sb.WriteByte('(')
	first := true
	for IsPair(v) {
		if !first {
			sb.WriteByte(' ')
		}
		first = false
		sb.WriteString(p.Render(h.Car(v)))
		v = h.Cdr(v)
	}
	if !Null(v) {
		sb.WriteString(" . ")
		sb.WriteString(p.Render(v))
	}
	sb.WriteByte(')')
	return sb.String()
}

func (p *Printer) renderExtended(v Value) string {
	h := p.env.Heap
	switch h.classOf(heapOffset(v)) {
	case classVector:
		return p.renderVector(v)
	case classMacro:
		return p.broket("macro", uint64(v), NIL)
	case classNamespace:
		return "#<:ns " + h.NamespaceName(v) + ">"
	case classStream:
		return p.broket("stream", uint64(v), NIL)
	case classCondition:
		return p.renderCondition(v)
	case classStruct:
		return p.renderStruct(v)
	default:
		return p.broket("addr", uint64(v), NIL)
	}
}

// renderVector always prints the explicit element-class form of
// spec.md §4.3's vector syntax, a :t-element vector included
// (`#(:t a b c)`); the bare form without a class keyword is never printed.
func (p *Printer) renderVector(v Value) string {
	h := p.env.Heap
	n := h.VectorLength(v)
	classKw := h.VectorElementClass(v)
	var sb strings.Builder
	sb.WriteString("#(")
	sb.WriteString(p.Render(classKw))
	for i := 0; i < n; i++ {
		sb.WriteByte(' ')
		sb.WriteString(p.Render(h.VectorRef(v, i)))
	}
	sb.WriteByte(')')
	return sb.String()
}

func (p *Printer) renderCondition(v Value) string {
	h := p.env.Heap
	class := h.ConditionClass(v)
	reason := h.ConditionReason(v)
	return fmt.Sprintf("#<:except %s %q>", p.Render(class), reason)
}

func (p *Printer) renderStruct(v Value) string {
	h := p.env.Heap
	typ := h.StructType(v)
	return "#<:struct " + p.Render(typ) + " " + p.Render(h.StructSlots(v)) + ">"
}

// broket is the round-trip fallback syntax for opaque heap objects
// spec.md §4.3 names: `#<:class #xHEX ()>`. The attrs list is always
// empty here; nothing in this runtime attaches printable attributes
// to a function/stream/macro cell.
func (p *Printer) broket(class string, raw uint64, attrs Value) string {
	attrsText := p.Render(attrs)
	if Null(attrs) {
		attrsText = "()"
	}
	return fmt.Sprintf("#<:%s #x%x %s>", class, raw, attrsText)
}
