package mu

// This file collects the fixed payload sizes for every concrete heap
// class (spec.md §3.2) and the `type-of` mapping from a value to its
// printable system-class keyword (SPEC_FULL.md §C).

const (
	sizePair      = 16 // car, cdr
	sizeSymbol    = 24 // namespace, name, value
	sizeFunction  = 56 // name, primitive, source, capturedEnv, frameID, arity, context
	sizeMacro     = 8  // function
	sizeNamespace = 16 // name, imports
	sizeStream    = 16 // platform id (as fixnum), function-or-nil
	sizeCondition = 32 // class keyword, frame view, source, reason
	sizeStruct    = 16 // type keyword, slots
)

// vectorHeaderSize is the fixed part of a vector's payload preceding
// its inline elements: element_class, length, base_offset.
const vectorHeaderSize = 24

// vectorElementClass mirrors spec.md §3.2's vector element classes.
type vectorElementClass int

const (
	vecElemT vectorElementClass = iota
	vecElemFixnum
	vecElemByte
	vecElemChar
	vecElemFloat
)

func (c vectorElementClass) elementSize() int {
	switch c {
	case vecElemByte, vecElemChar:
		return 1
	case vecElemFloat:
		return 4
	default:
		return 8
	}
}

func (c vectorElementClass) keyword() Value {
	switch c {
	case vecElemT:
		return T
	case vecElemFixnum:
		return MakeKeyword("fixnum")
	case vecElemByte:
		return MakeKeyword("byte")
	case vecElemChar:
		return MakeKeyword("char")
	case vecElemFloat:
		return MakeKeyword("float")
	default:
		return NIL
	}
}

func vectorElementClassFromKeyword(k Value) (vectorElementClass, bool) {
	if !IsKeyword(k) {
		return 0, false
	}
	switch KeywordName(k) {
	case "t":
		return vecElemT, true
	case "fixnum":
		return vecElemFixnum, true
	case "byte":
		return vecElemByte, true
	case "char":
		return vecElemChar, true
	case "float":
		return vecElemFloat, true
	}
	return 0, false
}

// TypeOf returns the system-class keyword of v, as exposed by the
// `type-of` primitive (SPEC_FULL.md §C).
func TypeOf(h *Heap, v Value) Value {
	if IsFixnum(v) {
		return MakeKeyword("fixnum")
	}
	if isImmediate(v) {
		switch immediateClass(v) {
		case immClassChar:
			return MakeKeyword("char")
		case immClassString:
			return MakeKeyword("string")
		case immClassKeyword:
			return MakeKeyword("keyword")
		case immClassFloat:
			return MakeKeyword("float")
		}
	}
	switch tagOf(v) {
	case tagAddress:
		return MakeKeyword("addr")
	case tagSymbol:
		return MakeKeyword("symbol")
	case tagFunction:
		return MakeKeyword("func")
	case tagPair:
		return MakeKeyword("cons")
	case tagExtended:
		switch h.classOf(heapOffset(v)) {
		case classVector:
			return MakeKeyword("vector")
		case classString:
			return MakeKeyword("string")
		case classMacro:
			return MakeKeyword("macro")
		case classNamespace:
			return MakeKeyword("ns")
		case classStream:
			return MakeKeyword("stream")
		case classCondition:
			return MakeKeyword("except")
		case classStruct:
			return MakeKeyword("struct")
		}
	}
	return NIL
}
