package mu

// Symbol: {namespace_or_nil, name_string, value_or_UNBOUND},
// spec.md §3.2. Keywords are immediates (tag.go) and never reach this
// file; every value tagged tagSymbol is a heap cell allocated here.

// NewSymbol allocates an uninterned or interned heap symbol. ns may
// be NIL for an uninterned symbol (spec.md §4.2's `#:` syntax).
func (h *Heap) NewSymbol(ns Value, name string) Value {
	off := h.alloc(sizeSymbol, classSymbol)
	h.writeValue(off, ns)
	h.writeValue(off+8, h.MakeString(name))
	h.writeValue(off+16, UNBOUND)
	return withHeapOffset(tagSymbol, off)
}

func (h *Heap) SymbolNamespace(v Value) Value { return h.readValue(heapOffset(v)) }
func (h *Heap) SymbolNameString(v Value) Value { return h.readValue(heapOffset(v) + 8) }
func (h *Heap) SymbolName(v Value) string      { return h.StringValue(h.SymbolNameString(v)) }

// SymbolValue returns a symbol's bound value, or UNBOUND if it has
// never been bound (spec.md §3.3 invariant 5).
func (h *Heap) SymbolValue(v Value) Value { return h.readValue(heapOffset(v) + 16) }

// SetSymbolValue binds (or rebinds) v's value slot.
func (h *Heap) SetSymbolValue(v, val Value) { h.writeValue(heapOffset(v)+16, val) }

// IsBound reports whether a symbol has ever been given a value.
func (h *Heap) IsBound(v Value) bool { return h.SymbolValue(v) != UNBOUND }

func (h *Heap) symbolChildren(off int) []Value {
	return []Value{
		h.readValue(off),
		h.readValue(off + 8),
		h.readValue(off + 16),
	}
}
