package mu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVectorPrimitives_MakeRefSet(t *testing.T) {
	env := newTestEnv(t)
	got := evalSrc(t, env, `((:lambda (v) (vector-set v 1 99) (vector-ref v 1)) (make-vector :fixnum 3))`)
	assert.Equal(t, MakeFixnum(99), got)
}

func TestVectorPrimitives_Length(t *testing.T) {
	env := newTestEnv(t)
	assert.Equal(t, MakeFixnum(5), evalSrc(t, env, "(vector-length (make-vector :t 5))"))
}

func TestVectorPrimitives_ToListAndBack(t *testing.T) {
	env := newTestEnv(t)
	got := evalSrc(t, env, "(vector-to-list (list-to-vector :t (list 1 2 3)))")
	want := []Value{MakeFixnum(1), MakeFixnum(2), MakeFixnum(3)}
	assert.Equal(t, want, env.Heap.ListToSlice(got))
}

func TestVectorPrimitives_RefOutOfRangeRaisesCondition(t *testing.T) {
	env := newTestEnv(t)
	form, err := env.ReadString("(vector-ref (make-vector :t 2) 9)")
	require.NoError(t, err)
	_, err = env.EvalForm(form)
	assert.Error(t, err)
	cond, ok := err.(*Condition)
	require.True(t, ok)
	assert.Equal(t, ClassRange, cond.Class)
}

func TestVectorPrimitives_MakeVectorBadClassRaisesCondition(t *testing.T) {
	env := newTestEnv(t)
	form, err := env.ReadString("(make-vector :bogus 2)")
	require.NoError(t, err)
	_, err = env.EvalForm(form)
	assert.Error(t, err)
	cond, ok := err.(*Condition)
	require.True(t, ok)
	assert.Equal(t, ClassType, cond.Class)
}
