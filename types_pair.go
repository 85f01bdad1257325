package mu

// Pair is the cons cell: spec.md §3.2's fundamental list building
// block. It is also the allocator's fast-path class (§4.1): dead
// pairs are threaded onto a free list instead of falling back to the
// bump path.

// Cons allocates a new pair cell (car . cdr).
func (h *Heap) Cons(car, cdr Value) Value {
	off := h.alloc(sizePair, classPair)
	h.writeValue(off, car)
	h.writeValue(off+8, cdr)
	return withHeapOffset(tagPair, off)
}

// Car returns the first slot of a pair. Calling it on a non-pair is a
// programmer error in this package; primitives validate first and
// raise a `:cell` condition instead of calling this directly on bad
// input.
func (h *Heap) Car(v Value) Value {
	if Null(v) {
		return NIL
	}
	return h.readValue(heapOffset(v))
}

// Cdr returns the second slot of a pair.
func (h *Heap) Cdr(v Value) Value {
	if Null(v) {
		return NIL
	}
	return h.readValue(heapOffset(v) + 8)
}

// SetCar/SetCdr mutate a pair in place (rplaca/rplacd-style).
func (h *Heap) SetCar(v, car Value) { h.writeValue(heapOffset(v), car) }
func (h *Heap) SetCdr(v, cdr Value) { h.writeValue(heapOffset(v)+8, cdr) }

// ListToSlice walks a proper (or improper) NIL-terminated chain of
// pairs into a Go slice. An improper list's final cdr is dropped;
// callers that care about dotted tails should walk the chain
// themselves.
func (h *Heap) ListToSlice(v Value) []Value {
	var out []Value
	for IsPair(v) {
		out = append(out, h.Car(v))
		v = h.Cdr(v)
	}
	return out
}

// SliceToList builds a fresh NIL-terminated list from a Go slice, in
// order.
func (h *Heap) SliceToList(items []Value) Value {
	result := NIL
	for i := len(items) - 1; i >= 0; i-- {
		result = h.Cons(items[i], result)
	}
	return result
}

// ListLength counts the pairs in a proper list.
func (h *Heap) ListLength(v Value) int {
	n := 0
	for IsPair(v) {
		n++
		v = h.Cdr(v)
	}
	return n
}
