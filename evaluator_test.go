package mu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEval_LambdaCallsWithParameters(t *testing.T) {
	env := newTestEnv(t)
	got := evalSrc(t, env, "((:lambda (x y) (fx-add x y)) 3 4)")
	assert.Equal(t, MakeFixnum(7), got)
}

func TestEval_LetqIntroducesLocal(t *testing.T) {
	env := newTestEnv(t)
	got := evalSrc(t, env, "((:lambda (x) (:letq y (fx-mul x 2)) (fx-add x y)) 5)")
	assert.Equal(t, MakeFixnum(15), got)
}

func TestEval_Defsym(t *testing.T) {
	env := newTestEnv(t)
	got := evalSrc(t, env, "(:defsym my-answer 42)")
	assert.Equal(t, MakeFixnum(42), got)
	assert.Equal(t, MakeFixnum(42), evalSrc(t, env, "my-answer"))
}

func TestEval_Quote(t *testing.T) {
	env := newTestEnv(t)
	got := evalSrc(t, env, "(:quote (a b c))")
	assert.True(t, IsPair(got))
	items := env.Heap.ListToSlice(got)
	assert.Len(t, items, 3)
}

func TestEval_UnboundSymbolRaisesCondition(t *testing.T) {
	env := newTestEnv(t)
	form, err := env.ReadString("totally-unbound-name")
	require.NoError(t, err)
	_, err = env.EvalForm(form)
	require.Error(t, err)
	cond, ok := err.(*Condition)
	require.True(t, ok)
	assert.Equal(t, ClassUnsym, cond.Class)
}

func TestEval_WrongArgCountRaisesCondition(t *testing.T) {
	env := newTestEnv(t)
	form, err := env.ReadString("((:lambda (x y) x) 1)")
	require.NoError(t, err)
	_, err = env.EvalForm(form)
	require.Error(t, err)
	cond, ok := err.(*Condition)
	require.True(t, ok)
	assert.Equal(t, ClassControl, cond.Class)
}

func TestEval_RestParameter(t *testing.T) {
	env := newTestEnv(t)
	got := evalSrc(t, env, "((:lambda (a :rest b) (cons a b)) 1 2 3)")
	assert.True(t, IsPair(got))
	assert.Equal(t, MakeFixnum(1), env.Heap.Car(got))
	assert.Equal(t, []Value{MakeFixnum(2), MakeFixnum(3)}, env.Heap.ListToSlice(env.Heap.Cdr(got)))
}

// TestEval_ClosureCapturesEnclosingFrame exercises the lexical-chain
// resolution path (resolveFrame/frmref): an inner lambda, created and
// called while its enclosing activation is still on the call stack,
// resolves a depth-1 reference back to the enclosing parameter.
func TestEval_ClosureCapturesEnclosingFrame(t *testing.T) {
	env := newTestEnv(t)
	got := evalSrc(t, env,
		"((:lambda (x) ((:lambda (y) (fx-add x y)) 5)) 10)")
	assert.Equal(t, MakeFixnum(15), got)
}

func TestEval_MacroExpandsAtCompileTime(t *testing.T) {
	env := newTestEnv(t)
	_ = evalSrc(t, env, "(:defsym double (:macro (x) (list (:quote fx-mul) x x)))")
	got := evalSrc(t, env, "(double 6)")
	assert.Equal(t, MakeFixnum(36), got)
}
