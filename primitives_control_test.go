package mu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestControl_BlockReturn(t *testing.T) {
	env := newTestEnv(t)
	got := evalSrc(t, env,
		`(block :my-tag (:lambda () (return :my-tag 99) 1))`)
	assert.Equal(t, MakeFixnum(99), got)
}

func TestControl_BlockWithoutReturnRunsThunkToCompletion(t *testing.T) {
	env := newTestEnv(t)
	got := evalSrc(t, env, `(block :my-tag (:lambda () (fx-add 1 2)))`)
	assert.Equal(t, MakeFixnum(3), got)
}

func TestControl_ReturnToMismatchedTagPropagates(t *testing.T) {
	env := newTestEnv(t)
	form, err := env.ReadString(`(block :outer (:lambda () (return :inner 1)))`)
	require.NoError(t, err)
	_, err = env.EvalForm(form)
	assert.Error(t, err)
}

func TestControl_RaiseWithCondition(t *testing.T) {
	env := newTestEnv(t)
	got := evalSrc(t, env,
		`(with-condition :type (:lambda () (raise :type nil "bad thing")) (:lambda (c) (condition-reason c)))`)
	s, ok := stringText(env.Heap, got)
	require.True(t, ok)
	assert.Equal(t, "bad thing", s)
}

func TestControl_WithConditionClassMismatchPropagates(t *testing.T) {
	env := newTestEnv(t)
	form, err := env.ReadString(
		`(with-condition :unsym (:lambda () (raise :type nil "bad thing")) (:lambda (c) c))`)
	require.NoError(t, err)
	_, err = env.EvalForm(form)
	assert.Error(t, err)
	uw, ok := asUnwind(err)
	require.True(t, ok)
	require.NotNil(t, uw.Condition)
	assert.Equal(t, ClassType, uw.Condition.Class)
}

func TestControl_WithConditionSimpleCatchesAnyClass(t *testing.T) {
	env := newTestEnv(t)
	got := evalSrc(t, env,
		`(with-condition :simple (:lambda () (raise :zerodiv nil "div0")) (:lambda (c) (condition-class c)))`)
	assert.Equal(t, MakeKeyword("zerodiv"), got)
}
