package mu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrinter_Atoms(t *testing.T) {
	env := newTestEnv(t)
	assert.Equal(t, "nil", env.PrintToString(NIL, true))
	assert.Equal(t, "t", env.PrintToString(T, true))
	assert.Equal(t, "42", env.PrintToString(MakeFixnum(42), true))
	assert.Equal(t, "-7", env.PrintToString(MakeFixnum(-7), true))
	assert.Equal(t, ":foo", env.PrintToString(MakeKeyword("foo"), true))
}

func TestPrinter_StringEscaping(t *testing.T) {
	env := newTestEnv(t)
	s := env.Heap.MakeString(`say "hi"`)
	assert.Equal(t, `"say \"hi\""`, env.PrintToString(s, true))
	assert.Equal(t, `say "hi"`, env.PrintToString(s, false))
}

func TestPrinter_List(t *testing.T) {
	env := newTestEnv(t)
	list := env.Heap.SliceToList([]Value{MakeFixnum(1), MakeFixnum(2), MakeFixnum(3)})
	assert.Equal(t, "(1 2 3)", env.PrintToString(list, true))
}

func TestPrinter_DottedPair(t *testing.T) {
	env := newTestEnv(t)
	p := env.Heap.Cons(MakeFixnum(1), MakeFixnum(2))
	assert.Equal(t, "(1 . 2)", env.PrintToString(p, true))
}

func TestPrinter_Symbol_UnqualifiedInCurrentNamespace(t *testing.T) {
	env := newTestEnv(t)
	sym := Intern(env.Heap, env.CurrentNamespace, "my-sym")
	assert.Equal(t, "my-sym", env.PrintToString(sym, true))
}

func TestPrinter_Symbol_QualifiedInOtherNamespace(t *testing.T) {
	env := newTestEnv(t)
	other := env.EnsureNamespace("other")
	sym := Intern(env.Heap, other, "my-sym")
	assert.Equal(t, "other:my-sym", env.PrintToString(sym, true))
}

func TestPrinter_Vector(t *testing.T) {
	env := newTestEnv(t)
	v := env.Heap.MakeVector(vecElemT, 2)
	env.Heap.VectorSet(v, 0, MakeFixnum(1))
	env.Heap.VectorSet(v, 1, MakeFixnum(2))
	assert.Equal(t, "#(:t 1 2)", env.PrintToString(v, true))
}

func TestPrinter_Char(t *testing.T) {
	env := newTestEnv(t)
	assert.Equal(t, `#\newline`, env.PrintToString(MakeChar('\n'), true))
	assert.Equal(t, "\n", env.PrintToString(MakeChar('\n'), false))
}
