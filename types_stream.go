package mu

// Stream: {platform_stream_id_or_invalid, function_or_nil}, spec.md
// §3.2/§4.7. The heap cell only carries a handle (a fixnum index into
// the owning Environment's stream table, stream.go) and an optional
// function value for function-backed streams; the actual byte source/
// sink lives in Go-level state the heap doesn't need to know about.

const invalidStreamHandle = -1

// NewStream allocates a stream cell for handle (an index into
// Environment.streams) with no backing function.
func (h *Heap) NewStream(handle int) Value {
	off := h.alloc(sizeStream, classStream)
	h.writeValue(off, MakeFixnum(int64(handle)))
	h.writeValue(off+8, NIL)
	return withHeapOffset(tagExtended, off)
}

// NewFunctionStream allocates a stream cell backed by a user function
// instead of a platform handle (spec.md §4.7's function streams).
func (h *Heap) NewFunctionStream(fn Value) Value {
	off := h.alloc(sizeStream, classStream)
	h.writeValue(off, MakeFixnum(invalidStreamHandle))
	h.writeValue(off+8, fn)
	return withHeapOffset(tagExtended, off)
}

func (h *Heap) IsStream(v Value) bool {
	return IsExtended(v) && h.classOf(heapOffset(v)) == classStream
}

// StreamHandle returns the platform handle, or (0, false) for a
// function stream.
func (h *Heap) StreamHandle(v Value) (int, bool) {
	n := int(FixnumValue(h.readValue(heapOffset(v))))
	if n == invalidStreamHandle {
		return 0, false
	}
	return n, true
}

// StreamFunction returns the backing function, or NIL for a
// platform-handle stream.
func (h *Heap) StreamFunction(v Value) Value { return h.readValue(heapOffset(v) + 8) }
