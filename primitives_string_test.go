package mu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringPrimitives(t *testing.T) {
	env := newTestEnv(t)
	tests := []struct {
		name string
		src  string
		want Value
	}{
		{"string-length", `(string-length "hello")`, MakeFixnum(5)},
		{"string-concat", `(string-concat "foo" "bar")`, env.Heap.MakeString("foobar")},
		{"string-eq true", `(string-eq "a" "a")`, T},
		{"string-eq false", `(string-eq "a" "b")`, NIL},
		{"string-upcase", `(string-upcase "abc")`, env.Heap.MakeString("ABC")},
		{"string-downcase", `(string-downcase "ABC")`, env.Heap.MakeString("abc")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := evalSrc(t, env, tt.src)
			if env.Heap.IsString(tt.want) {
				gs, ok := stringText(env.Heap, got)
				require.True(t, ok)
				ws, _ := stringText(env.Heap, tt.want)
				assert.Equal(t, ws, gs)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStringPrimitives_StringRef(t *testing.T) {
	env := newTestEnv(t)
	got := evalSrc(t, env, `(string-ref "abc" 1)`)
	assert.Equal(t, MakeChar('b'), got)
}

func TestStringPrimitives_StringRefOutOfRangeRaisesCondition(t *testing.T) {
	env := newTestEnv(t)
	form, err := env.ReadString(`(string-ref "abc" 9)`)
	require.NoError(t, err)
	_, err = env.EvalForm(form)
	assert.Error(t, err)
	cond, ok := err.(*Condition)
	require.True(t, ok)
	assert.Equal(t, ClassRange, cond.Class)
}

func TestStringPrimitives_SymbolStringRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	got := evalSrc(t, env, `(symbol-to-string (string-to-symbol "frobnicate"))`)
	s, ok := stringText(env.Heap, got)
	require.True(t, ok)
	assert.Equal(t, "frobnicate", s)
}
