package mu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixnum_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		n    int64
	}{
		{"zero", 0},
		{"positive", 42},
		{"negative", -42},
		{"near max", FixnumMax - 1},
		{"near min", FixnumMin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := MakeFixnum(tt.n)
			assert.True(t, IsFixnum(v))
			assert.Equal(t, tt.n, FixnumValue(v))
		})
	}
}

func TestFixnumInRange(t *testing.T) {
	assert.True(t, FixnumInRange(0))
	assert.True(t, FixnumInRange(FixnumMax-1))
	assert.False(t, FixnumInRange(FixnumMax))
	assert.True(t, FixnumInRange(FixnumMin))
	assert.False(t, FixnumInRange(FixnumMin-1))
}

func TestImmediate_CharStringKeyword(t *testing.T) {
	c := MakeChar('x')
	assert.True(t, IsChar(c))
	assert.False(t, IsFixnum(c))
	assert.Equal(t, byte('x'), CharValue(c))

	s := MakeImmediateString("abc")
	assert.True(t, IsImmediateString(s))
	assert.Equal(t, "abc", ImmediateStringValue(s))

	k := MakeKeyword("foo")
	assert.True(t, IsKeyword(k))
	assert.Equal(t, "foo", KeywordName(k))
}

func TestMakeKeyword_PanicsOnLongName(t *testing.T) {
	assert.Panics(t, func() { MakeKeyword("toolongname") })
}

func TestMakeImmediateBytes_PanicsOnLongPayload(t *testing.T) {
	assert.Panics(t, func() { MakeImmediateString("toolongname") })
}

func TestFloat_RoundTrip(t *testing.T) {
	f := MakeFloat(3.5)
	assert.True(t, IsFloat(f))
	assert.False(t, IsFixnum(f))
	assert.Equal(t, float32(3.5), FloatValue(f))
}

func TestDistinguishedImmediates(t *testing.T) {
	assert.True(t, Null(NIL))
	assert.False(t, Null(T))
	assert.True(t, IsKeyword(T))
	assert.True(t, IsKeyword(NIL))
	assert.Equal(t, "t", KeywordName(T))
	assert.Equal(t, "nil", KeywordName(NIL))
}

func TestBoolTruthy(t *testing.T) {
	assert.Equal(t, T, Bool(true))
	assert.Equal(t, NIL, Bool(false))
	assert.True(t, Truthy(T))
	assert.True(t, Truthy(MakeFixnum(0)))
	assert.False(t, Truthy(NIL))
}

func TestTagPredicates_AreMutuallyExclusive(t *testing.T) {
	values := []Value{
		MakeFixnum(7),
		MakeChar('z'),
		MakeImmediateString("hi"),
		MakeKeyword("kw"),
		MakeFloat(1.25),
		T,
		NIL,
	}
	for _, v := range values {
		count := 0
		for _, pred := range []func(Value) bool{IsFixnum, IsChar, IsImmediateString, IsKeyword, IsFloat} {
			if pred(v) {
				count++
			}
		}
		assert.Equal(t, 1, count, "value %x should match exactly one immediate predicate", uint64(v))
	}
}

func TestHeapOffset_RoundTrip(t *testing.T) {
	v := withHeapOffset(tagPair, 128)
	assert.Equal(t, 128, heapOffset(v))
	assert.True(t, IsPair(v))
}

// TestPrimaryTagPredicates_AreMutuallyExclusive builds one value per
// primary tag (including tagFunction and tagExtended, both of which
// have bit 0 set and so collide with a fixnum test that only checks
// the low bit) and asserts at most one primary-tag predicate matches
// each (address and immediate values match none of them).
func TestPrimaryTagPredicates_AreMutuallyExclusive(t *testing.T) {
	values := []Value{
		withHeapOffset(tagAddress, 8),
		MakeFixnum(8), // even n -> tagFixnumEven
		withHeapOffset(tagSymbol, 8),
		withHeapOffset(tagFunction, 8),
		withHeapOffset(tagPair, 8),
		MakeFixnum(7), // odd n -> tagFixnumOdd
		MakeChar('z'), // tagImmediate
		withHeapOffset(tagExtended, 8),
	}
	preds := []func(Value) bool{IsFixnum, IsHeapSymbol, IsFunction, IsPair, IsExtended}
	for _, v := range values {
		count := 0
		for _, pred := range preds {
			if pred(v) {
				count++
			}
		}
		assert.LessOrEqual(t, count, 1, "value %x should match at most one primary-tag predicate", uint64(v))
	}
	assert.True(t, IsFunction(withHeapOffset(tagFunction, 8)))
	assert.False(t, IsFixnum(withHeapOffset(tagFunction, 8)))
	assert.True(t, IsExtended(withHeapOffset(tagExtended, 8)))
	assert.False(t, IsFixnum(withHeapOffset(tagExtended, 8)))
}
