package mu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructPrimitives_MakeRefSet(t *testing.T) {
	env := newTestEnv(t)
	got := evalSrc(t, env, "(struct-ref (make-struct :point :x 1 :y 2) :y)")
	assert.Equal(t, MakeFixnum(2), got)
}

func TestStructPrimitives_StructType(t *testing.T) {
	env := newTestEnv(t)
	got := evalSrc(t, env, "(struct-type (make-struct :point :x 1))")
	assert.Equal(t, MakeKeyword("point"), got)
}

func TestStructPrimitives_Structp(t *testing.T) {
	env := newTestEnv(t)
	assert.Equal(t, T, evalSrc(t, env, "(structp (make-struct :point :x 1))"))
	assert.Equal(t, NIL, evalSrc(t, env, "(structp 1)"))
}

func TestStructPrimitives_Set(t *testing.T) {
	env := newTestEnv(t)
	got := evalSrc(t, env,
		"((:lambda (s) (struct-set s :x 99) (struct-ref s :x)) (make-struct :point :x 1))")
	assert.Equal(t, MakeFixnum(99), got)
}

func TestStructPrimitives_RefMissingSlotRaisesCondition(t *testing.T) {
	env := newTestEnv(t)
	form, err := env.ReadString("(struct-ref (make-struct :point :x 1) :z)")
	require.NoError(t, err)
	_, err = env.EvalForm(form)
	assert.Error(t, err)
	cond, ok := err.(*Condition)
	require.True(t, ok)
	assert.Equal(t, ClassUnslot, cond.Class)
}
