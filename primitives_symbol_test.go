package mu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymbolPrimitives_InternAndBoundp(t *testing.T) {
	env := newTestEnv(t)
	assert.Equal(t, NIL, evalSrc(t, env, `(boundp (intern "frobnicate"))`))
	evalSrc(t, env, `(set-symbol-value (intern "frobnicate") 42)`)
	assert.Equal(t, T, evalSrc(t, env, `(boundp (intern "frobnicate"))`))
	assert.Equal(t, MakeFixnum(42), evalSrc(t, env, `(symbol-value (intern "frobnicate"))`))
}

func TestSymbolPrimitives_SymbolValueUnboundRaisesCondition(t *testing.T) {
	env := newTestEnv(t)
	form, err := env.ReadString(`(symbol-value (intern "never-bound-xyz"))`)
	require.NoError(t, err)
	_, err = env.EvalForm(form)
	assert.Error(t, err)
	cond, ok := err.(*Condition)
	require.True(t, ok)
	assert.Equal(t, ClassUnsym, cond.Class)
}

func TestSymbolPrimitives_Eq(t *testing.T) {
	env := newTestEnv(t)
	assert.Equal(t, T, evalSrc(t, env, "(eq 1 1)"))
	assert.Equal(t, NIL, evalSrc(t, env, "(eq 1 2)"))
	assert.Equal(t, T, evalSrc(t, env, "(eq :foo :foo)"))
}

func TestSymbolPrimitives_Closure(t *testing.T) {
	env := newTestEnv(t)
	got := evalSrc(t, env, "(closure (:lambda (x) x))")
	assert.True(t, IsFunction(got))
}

func TestSymbolPrimitives_ClosureOnNonFunctionRaisesCondition(t *testing.T) {
	env := newTestEnv(t)
	form, err := env.ReadString("(closure 1)")
	require.NoError(t, err)
	_, err = env.EvalForm(form)
	assert.Error(t, err)
	cond, ok := err.(*Condition)
	require.True(t, ok)
	assert.Equal(t, ClassType, cond.Class)
}

func TestSymbolPrimitives_InNamespace(t *testing.T) {
	env := newTestEnv(t)
	got := evalSrc(t, env, `(in-namespace "scratch")`)
	assert.Equal(t, env.CurrentNamespace, got)
}
