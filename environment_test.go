package mu

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestEnv builds an Environment over a small heap (tests never need
// the 64MiB production default) and registers it for cleanup.
func newTestEnv(t *testing.T) *Environment {
	t.Helper()
	cfg := NewConfig()
	cfg.SetInt("heap.size", 1<<20)
	env, err := NewEnvironment(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = env.Close() })
	return env
}

// evalSrc reads, compiles, and evaluates the first form in src.
func evalSrc(t *testing.T, env *Environment, src string) Value {
	t.Helper()
	form, err := env.ReadString(src)
	require.NoError(t, err)
	result, err := env.EvalForm(form)
	require.NoError(t, err)
	return result
}

func TestNewEnvironment_WiresCoreNamespaceAndStreams(t *testing.T) {
	env := newTestEnv(t)
	assert.False(t, Null(env.CoreNamespace))
	assert.Equal(t, env.CoreNamespace, env.CurrentNamespace)
	assert.True(t, env.Heap.IsStream(env.Stdin))
	assert.True(t, env.Heap.IsStream(env.Stdout))
}

func TestEnvironment_ReadStringEvalForm(t *testing.T) {
	env := newTestEnv(t)
	assert.Equal(t, MakeFixnum(3), evalSrc(t, env, "(fx-add 1 2)"))
}

func TestEnvironment_PrintToString(t *testing.T) {
	env := newTestEnv(t)
	assert.Equal(t, "3", env.PrintToString(MakeFixnum(3), true))
	assert.Equal(t, `"hi"`, env.PrintToString(env.Heap.MakeString("hi"), true))
	assert.Equal(t, "hi", env.PrintToString(env.Heap.MakeString("hi"), false))
}

func TestEnvironment_FindNamespace(t *testing.T) {
	env := newTestEnv(t)
	ns, err := env.FindNamespace("")
	require.NoError(t, err)
	assert.Equal(t, env.CurrentNamespace, ns)

	_, err = env.FindNamespace("does-not-exist")
	assert.Error(t, err)

	created := env.EnsureNamespace("extra")
	ns2, err := env.FindNamespace("extra")
	require.NoError(t, err)
	assert.Equal(t, created, ns2)
}

func TestEnvironment_WithConditionCatchesMatchingClass(t *testing.T) {
	env := newTestEnv(t)
	form, err := env.ReadString("(fx-div 1 0)")
	require.NoError(t, err)

	result, err := env.WithCondition(ClassZeroDiv,
		func() (Value, error) { return env.EvalForm(form) },
		func(c Value) (Value, error) { return c, nil },
	)
	require.NoError(t, err)
	assert.True(t, env.Heap.IsCondition(result))
}

func TestEnvironment_REPL_EvaluatesAndPrints(t *testing.T) {
	env := newTestEnv(t)
	in := bytes.NewBufferString("(fx-add 40 2)\n")
	var out bytes.Buffer
	err := env.REPL(in, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "42")
}

func TestEnvironment_GC(t *testing.T) {
	env := newTestEnv(t)
	_ = evalSrc(t, env, "(cons 1 2)")
	n := env.GC()
	assert.GreaterOrEqual(t, n, 0)
}
