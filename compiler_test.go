package mu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compileSrc(t *testing.T, env *Environment, src string) Value {
	t.Helper()
	form, err := env.ReadString(src)
	require.NoError(t, err)
	compiled, err := env.Compile(form)
	require.NoError(t, err)
	return compiled
}

func TestCompile_SymbolRefOutsideLambdaIsUnchanged(t *testing.T) {
	env := newTestEnv(t)
	sym, err := env.ReadString("some-global")
	require.NoError(t, err)
	compiled, err := env.Compile(sym)
	require.NoError(t, err)
	assert.Equal(t, sym, compiled)
}

func TestCompile_ParamRefBecomesFrameRef(t *testing.T) {
	env := newTestEnv(t)
	compiled := compileSrc(t, env, "(:lambda (x) x)")
	body := env.Heap.ListToSlice(env.Heap.Cdr(compiled))
	// body[0]=frame_id, body[1]=arity, body[2]=first body form
	ref := body[2]
	assert.True(t, IsPair(ref))
	assert.Equal(t, kwFrameRef, env.Heap.Car(ref))
}

func TestCompile_LetqBecomesSetLocal(t *testing.T) {
	env := newTestEnv(t)
	compiled := compileSrc(t, env, "(:lambda (x) (:letq y x) y)")
	body := env.Heap.ListToSlice(env.Heap.Cdr(compiled))
	setlocForm := body[2]
	assert.Equal(t, kwSetLocal, env.Heap.Car(setlocForm))
	items := env.Heap.ListToSlice(env.Heap.Cdr(setlocForm))
	assert.Equal(t, MakeFixnum(1), items[0]) // index 1: after the one param
}

func TestCompile_DuplicateParamNameErrors(t *testing.T) {
	env := newTestEnv(t)
	form, err := env.ReadString("(:lambda (x x) x)")
	require.NoError(t, err)
	_, err = env.Compile(form)
	assert.Error(t, err)
}

func TestCompile_RestMissingNameErrors(t *testing.T) {
	env := newTestEnv(t)
	form, err := env.ReadString("(:lambda (x :rest) x)")
	require.NoError(t, err)
	_, err = env.Compile(form)
	assert.Error(t, err)
}

func TestCompile_QuoteIsLeftAsIs(t *testing.T) {
	env := newTestEnv(t)
	form, err := env.ReadString("(:quote (a b))")
	require.NoError(t, err)
	compiled, err := env.Compile(form)
	require.NoError(t, err)
	assert.Equal(t, form, compiled)
}

func TestCompile_NestedLambdaResolvesOuterAtDepth1(t *testing.T) {
	env := newTestEnv(t)
	compiled := compileSrc(t, env, "(:lambda (x) (:lambda (y) x))")
	outerBody := env.Heap.ListToSlice(env.Heap.Cdr(compiled))
	inner := outerBody[2]
	innerBody := env.Heap.ListToSlice(env.Heap.Cdr(inner))
	ref := innerBody[2]
	assert.Equal(t, kwFrameRef, env.Heap.Car(ref))
	items := env.Heap.ListToSlice(env.Heap.Cdr(ref))
	assert.Equal(t, MakeFixnum(1), items[0]) // depth 1: one lambda up
	assert.Equal(t, MakeFixnum(0), items[1]) // index 0: x is the first param
}
