package mu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemPrimitives_TypeOf(t *testing.T) {
	env := newTestEnv(t)
	assert.Equal(t, MakeKeyword("fixnum"), evalSrc(t, env, "(type-of 1)"))
	assert.Equal(t, MakeKeyword("cons"), evalSrc(t, env, "(type-of (cons 1 2))"))
	assert.Equal(t, MakeKeyword("keyword"), evalSrc(t, env, "(type-of nil)"))
}

func TestSystemPrimitives_GC(t *testing.T) {
	env := newTestEnv(t)
	got := evalSrc(t, env, "(gc)")
	assert.True(t, IsFixnum(got))
}

func TestSystemPrimitives_ConditionIntrospection(t *testing.T) {
	env := newTestEnv(t)
	got := evalSrc(t, env,
		`(with-condition :simple (:lambda () (raise :range nil "oops")) (:lambda (c) (conditionp c)))`)
	assert.Equal(t, T, got)
}

func TestSystemPrimitives_ConditionClassOnNonConditionRaisesCondition(t *testing.T) {
	env := newTestEnv(t)
	form, err := env.ReadString("(condition-class 1)")
	require.NoError(t, err)
	_, err = env.EvalForm(form)
	assert.Error(t, err)
	cond, ok := err.(*Condition)
	require.True(t, ok)
	assert.Equal(t, ClassType, cond.Class)
}
