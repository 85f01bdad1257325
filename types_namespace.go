package mu

import "hash/fnv"

// Namespace: {name_string, imports_list, externs_map, interns_map},
// spec.md §3.2 and §4.4. The two maps are kept in the heap's side
// tables (heap.go's nsExterns/nsInterns) keyed by this object's
// payload offset; the heap payload itself only carries the name and
// the import chain, both plain tagged values.

func fnv1a(name string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	return h.Sum64()
}

// NewNamespace allocates an empty namespace with no imports.
func (h *Heap) NewNamespace(name string) Value {
	off := h.alloc(sizeNamespace, classNamespace)
	h.writeValue(off, h.MakeString(name))
	h.writeValue(off+8, NIL)
	h.nsExterns[off] = make(map[uint64]Value)
	h.nsInterns[off] = make(map[uint64]Value)
	return withHeapOffset(tagExtended, off)
}

func (h *Heap) NamespaceName(v Value) string {
	return h.StringValue(h.readValue(heapOffset(v)))
}

// NamespaceImports returns the ordered list of imported namespaces.
func (h *Heap) NamespaceImports(v Value) []Value {
	return h.ListToSlice(h.readValue(heapOffset(v) + 8))
}

// AddImport appends ns to v's import chain, in order.
func (h *Heap) AddImport(v, ns Value) {
	off := heapOffset(v)
	imports := h.readValue(off + 8)
	items := h.ListToSlice(imports)
	items = append(items, ns)
	h.writeValue(off+8, h.SliceToList(items))
}

func (h *Heap) externsOf(v Value) map[uint64]Value { return h.nsExterns[heapOffset(v)] }
func (h *Heap) internsOf(v Value) map[uint64]Value { return h.nsInterns[heapOffset(v)] }

// FindExtern looks up name in v's externs partition only (no import
// chain traversal, no interns); used by Find (namespace.go) as the
// first probe of spec.md §4.4's lookup algorithm.
func (h *Heap) FindExtern(v Value, name string) (Value, bool) {
	sym, ok := h.externsOf(v)[fnv1a(name)]
	return sym, ok
}

// FindIntern looks up name in v's interns partition only.
func (h *Heap) FindIntern(v Value, name string) (Value, bool) {
	sym, ok := h.internsOf(v)[fnv1a(name)]
	return sym, ok
}

// InternExtern inserts a fresh symbol into v's externs partition if
// name is not already present there, and returns the (possibly
// pre-existing) symbol. It does not consult v's import chain; that is
// namespace.go's Find's job.
func (h *Heap) InternExtern(v Value, name string) Value {
	table := h.externsOf(v)
	key := fnv1a(name)
	if sym, ok := table[key]; ok {
		return sym
	}
	sym := h.NewSymbol(v, name)
	table[key] = sym
	return sym
}

// InternPrivate inserts a fresh symbol into v's interns partition.
func (h *Heap) InternPrivate(v Value, name string) Value {
	table := h.internsOf(v)
	key := fnv1a(name)
	if sym, ok := table[key]; ok {
		return sym
	}
	sym := h.NewSymbol(v, name)
	table[key] = sym
	return sym
}

// InternExternValue is InternExtern but also assigns an initial bound
// value when the symbol is freshly created, matching spec.md §4.4's
// "variant accepts an initial bound value".
func (h *Heap) InternExternValue(v Value, name string, initial Value) Value {
	table := h.externsOf(v)
	key := fnv1a(name)
	if sym, ok := table[key]; ok {
		return sym
	}
	sym := h.NewSymbol(v, name)
	h.SetSymbolValue(sym, initial)
	table[key] = sym
	return sym
}

func (h *Heap) namespaceChildren(off int) []Value {
	out := []Value{h.readValue(off), h.readValue(off + 8)}
	for _, sym := range h.nsExterns[off] {
		out = append(out, sym)
	}
	for _, sym := range h.nsInterns[off] {
		out = append(out, sym)
	}
	return out
}
