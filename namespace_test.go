package mu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNamespace_InternReturnsSameSymbolForSameName(t *testing.T) {
	h := newTestHeap(t)
	ns := h.NewNamespace("scratch")
	a := Intern(h, ns, "foo")
	b := Intern(h, ns, "foo")
	assert.Equal(t, a, b)
}

func TestNamespace_InternDistinctNamesDistinctSymbols(t *testing.T) {
	h := newTestHeap(t)
	ns := h.NewNamespace("scratch")
	a := Intern(h, ns, "foo")
	b := Intern(h, ns, "bar")
	assert.NotEqual(t, a, b)
}

func TestNamespace_FindTraversesImportChain(t *testing.T) {
	h := newTestHeap(t)
	base := h.NewNamespace("base")
	derived := h.NewNamespace("derived")
	h.AddImport(derived, base)

	sym := Intern(h, base, "shared")
	found := Find(h, derived, "shared")
	assert.Equal(t, sym, found)
}

func TestNamespace_FindMissReturnsNil(t *testing.T) {
	h := newTestHeap(t)
	ns := h.NewNamespace("scratch")
	assert.Equal(t, NIL, Find(h, ns, "nope"))
}

func TestNamespace_InternPrivateDoesNotShadowExternLookup(t *testing.T) {
	h := newTestHeap(t)
	ns := h.NewNamespace("scratch")
	priv := InternPrivate(h, ns, "secret")
	assert.Equal(t, NIL, Find(h, ns, "secret"))
	again := InternPrivate(h, ns, "secret")
	assert.Equal(t, priv, again)
}

func TestNamespace_InternValueSetsInitialOnlyOnFreshSymbol(t *testing.T) {
	h := newTestHeap(t)
	ns := h.NewNamespace("scratch")
	sym := InternValue(h, ns, "x", MakeFixnum(7))
	assert.Equal(t, MakeFixnum(7), h.SymbolValue(sym))

	again := InternValue(h, ns, "x", MakeFixnum(99))
	assert.Equal(t, sym, again)
	assert.Equal(t, MakeFixnum(7), h.SymbolValue(again))
}

func TestNamespace_AddImportOrderPreserved(t *testing.T) {
	h := newTestHeap(t)
	ns := h.NewNamespace("scratch")
	a := h.NewNamespace("a")
	b := h.NewNamespace("b")
	h.AddImport(ns, a)
	h.AddImport(ns, b)
	assert.Equal(t, []Value{a, b}, h.NamespaceImports(ns))
}
