package mu

import "math"

// Value is the runtime's tagged 64-bit word. The low 3 bits are a
// primary tag that discriminates eight classes; everything above
// that is either an immediate payload or a byte offset into the
// heap's backing region.
type Value uint64

const tagMask = 0x7

// Primary tags, see spec.md §3.1.
const (
	tagAddress     = 0
	tagFixnumEven  = 1
	tagSymbol      = 2
	tagFunction    = 3
	tagPair        = 4
	tagFixnumOdd   = 5
	tagImmediate   = 6
	tagExtended    = 7
)

// Immediate classes, carried in bits [3..4] when the primary tag is
// tagImmediate. See spec.md §3.1.1.
const (
	immClassChar = iota
	immClassString
	immClassKeyword
	immClassFloat
)

// Fixnum range bounds, spec.md §8 property 2.
const (
	FixnumMax = int64(1) << 61
	FixnumMin = -FixnumMax
)

func tagOf(v Value) int { return int(v) & tagMask }

// IsFixnum reports whether v is a fixnum. Fixnums occupy two of the
// eight primary tag slots (1 and 5, binary 001 and 101) -- both share
// low bits 01, which is why the test masks the low two bits rather
// than one; tagFunction (011) and tagExtended (111) also have bit 0
// set, so a single-bit test would misclassify them as fixnums too.
func IsFixnum(v Value) bool { return v&3 == 1 }

// MakeFixnum encodes n as a fixnum. n must be within
// [FixnumMin, FixnumMax); callers that parse untrusted numeric text
// must range-check before calling this (see ParseFixnum).
func MakeFixnum(n int64) Value {
	return Value(uint64(n<<2) | 1)
}

// FixnumValue decodes a fixnum's payload. The shift is arithmetic
// (sign-extending), matching spec.md §3.1's "sign_extend(raw >> 2)".
func FixnumValue(v Value) int64 { return int64(v) >> 2 }

// FixnumInRange reports whether n can be round-tripped through
// MakeFixnum/FixnumValue without its top two bits colliding with the
// tag field, per spec.md §4.2's numeric-parsing requirement.
func FixnumInRange(n int64) bool { return n >= FixnumMin && n < FixnumMax }

func isImmediate(v Value) bool { return !IsFixnum(v) && tagOf(v) == tagImmediate }

func immediateClass(v Value) int { return int(v>>3) & 0x3 }

func immediateLength(v Value) int { return int(v>>5) & 0x7 }

// IsKeyword reports whether v is an immediate keyword. Keywords are
// always immediate; invariant 3 of spec.md §3.3 follows directly: a
// keyword can never also be a heap symbol pointer.
func IsKeyword(v Value) bool {
	return isImmediate(v) && immediateClass(v) == immClassKeyword
}

// IsChar reports whether v is an immediate character.
func IsChar(v Value) bool {
	return isImmediate(v) && immediateClass(v) == immClassChar
}

// IsImmediateString reports whether v is a short (<=7 byte) string
// stored inline rather than as a heap String.
func IsImmediateString(v Value) bool {
	return isImmediate(v) && immediateClass(v) == immClassString
}

// IsFloat reports whether v is an immediate single-precision float.
func IsFloat(v Value) bool {
	return isImmediate(v) && immediateClass(v) == immClassFloat
}

func makeImmediateBytes(class int, b []byte) Value {
	if len(b) > 7 {
		panic("mu: immediate payload longer than 7 bytes")
	}
	var payload uint64
	for i := len(b) - 1; i >= 0; i-- {
		payload = (payload << 8) | uint64(b[i])
	}
	word := uint64(tagImmediate) | uint64(class)<<3 | uint64(len(b))<<5 | payload<<8
	return Value(word)
}

func immediateBytes(v Value) []byte {
	n := immediateLength(v)
	out := make([]byte, n)
	payload := uint64(v) >> 8
	for i := 0; i < n; i++ {
		out[i] = byte(payload)
		payload >>= 8
	}
	return out
}

// MakeChar encodes a single byte as an immediate character.
func MakeChar(b byte) Value { return makeImmediateBytes(immClassChar, []byte{b}) }

// CharValue decodes an immediate character's byte.
func CharValue(v Value) byte {
	bs := immediateBytes(v)
	if len(bs) == 0 {
		return 0
	}
	return bs[0]
}

// MakeImmediateString encodes s (<=7 bytes) as an immediate string.
func MakeImmediateString(s string) Value {
	return makeImmediateBytes(immClassString, []byte(s))
}

// ImmediateStringValue decodes an immediate string's bytes.
func ImmediateStringValue(v Value) string { return string(immediateBytes(v)) }

// MakeKeyword encodes name (<=7 bytes) as an immediate keyword.
func MakeKeyword(name string) Value {
	if len(name) > 7 {
		panic("mu: keyword name longer than 7 bytes: " + name)
	}
	return makeImmediateBytes(immClassKeyword, []byte(name))
}

// KeywordName decodes an immediate keyword's print name.
func KeywordName(v Value) string { return string(immediateBytes(v)) }

// MakeFloat encodes f as an immediate single-precision float. Its 32
// raw bits are copied into the high half of the word, per spec.md
// §3.1.1, rather than packed alongside class/length like the other
// immediate classes.
func MakeFloat(f float32) Value {
	bits := uint64(math.Float32bits(f))
	return Value(bits<<32 | uint64(immClassFloat)<<3 | tagImmediate)
}

// FloatValue decodes an immediate float.
func FloatValue(v Value) float32 {
	return math.Float32frombits(uint32(uint64(v) >> 32))
}

func floatBits(f float32) uint32   { return math.Float32bits(f) }
func floatFromBits(b uint32) float32 { return math.Float32frombits(b) }

// Distinguished immediates, spec.md §3.1.2.
var (
	T   = MakeKeyword("t")
	NIL = MakeKeyword("nil")

	// UNBOUND is the sentinel a symbol's value slot holds until it
	// is first bound, spec.md §3.3 invariant 5. It is carried on
	// the otherwise-unused address tag rather than on a fifth
	// immediate class, since the immediate class field only has
	// room for four classes and UNBOUND is never visible as a
	// printable value.
	UNBOUND = Value(tagAddress | 1<<3)
)

// Null reports whether v is NIL: the empty list, boolean false, and
// the "no value" sentinel.
func Null(v Value) bool { return v == NIL }

// Bool returns T if cond else NIL.
func Bool(cond bool) Value {
	if cond {
		return T
	}
	return NIL
}

// Truthy reports whether v should be treated as true in a boolean
// context: everything except NIL.
func Truthy(v Value) bool { return v != NIL }

// IsHeapSymbol reports whether v is a tagged pointer to a heap
// symbol cell (as opposed to an immediate keyword).
func IsHeapSymbol(v Value) bool { return !IsFixnum(v) && tagOf(v) == tagSymbol }

func IsFunction(v Value) bool { return !IsFixnum(v) && tagOf(v) == tagFunction }
func IsPair(v Value) bool     { return !IsFixnum(v) && tagOf(v) == tagPair }
func IsExtended(v Value) bool { return !IsFixnum(v) && tagOf(v) == tagExtended }
func IsAddress(v Value) bool  { return !IsFixnum(v) && tagOf(v) == tagAddress }

// heapOffset/withHeapOffset encode/decode a byte offset into the
// heap's backing region for the three pointer-carrying tags.
func heapOffset(v Value) int { return int(v >> 3) }

func withHeapOffset(tag int, offset int) Value {
	return Value(uint64(offset)<<3 | uint64(tag))
}
