package mu

// Find implements spec.md §4.4's lookup algorithm: probe ns's
// externs, then recursively probe each imported namespace in order,
// returning NIL on a total miss.
func Find(h *Heap, ns Value, name string) Value {
	if sym, ok := h.FindExtern(ns, name); ok {
		return sym
	}
	for _, imp := range h.NamespaceImports(ns) {
		if sym := Find(h, imp, name); !Null(sym) {
			return sym
		}
	}
	return NIL
}

// Intern is spec.md §4.4's intern-as-extern: returns the existing
// symbol if Find already hits, otherwise inserts a fresh one into
// ns's externs.
func Intern(h *Heap, ns Value, name string) Value {
	if sym := Find(h, ns, name); !Null(sym) {
		return sym
	}
	return h.InternExtern(ns, name)
}

// InternValue is Intern with an initial bound value applied only when
// the symbol is freshly created.
func InternValue(h *Heap, ns Value, name string, initial Value) Value {
	if sym := Find(h, ns, name); !Null(sym) {
		return sym
	}
	return h.InternExternValue(ns, name, initial)
}

// InternPrivate is spec.md §4.4's intern_private: always probes and
// inserts against ns's interns partition specifically, never externs
// or the import chain.
func InternPrivate(h *Heap, ns Value, name string) Value {
	return h.InternPrivate(ns, name)
}
