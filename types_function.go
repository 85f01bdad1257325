package mu

// Function: {name, primitive_descriptor_or_nil, source_form,
// captured_env, frame_id, arity_encoded, context_frames}, spec.md
// §3.2. A primitive's descriptor is a fixnum index into the owning
// Environment's primitive table (environment.go); user-defined functions
// carry NIL there and instead have a non-empty body in source_form.

const (
	fnName      = 0
	fnPrimitive = 8
	fnSource    = 16
	fnCaptured  = 24
	fnFrameID   = 32
	fnArity     = 40
	fnContext   = 48
)

// Arity is a function's parsed parameter-list contract, spec.md §3.3
// invariant 6 / §4.5's arity encoding.
type Arity struct {
	Required int
	HasRest  bool
}

func encodeArity(a Arity) int64 {
	rest := int64(0)
	if a.HasRest {
		rest = 1
	}
	return int64(a.Required)<<1 | rest
}

func decodeArity(n int64) Arity {
	return Arity{Required: int(n >> 1), HasRest: n&1 == 1}
}

// NewFunction allocates a function cell. frameID must be unique and
// monotonically assigned within the environment (spec.md §3.3
// invariant 9); source is the list of compiled body forms (NIL for a
// primitive); capturedEnv is the lexical environment stack captured
// at :lambda time (a list of the enclosing frame_ids as fixnums).
func (h *Heap) NewFunction(name, source, capturedEnv Value, frameID int64, arity Arity) Value {
	off := h.alloc(sizeFunction, classFunction)
	h.writeValue(off+fnName, name)
	h.writeValue(off+fnPrimitive, NIL)
	h.writeValue(off+fnSource, source)
	h.writeValue(off+fnCaptured, capturedEnv)
	h.writeValue(off+fnFrameID, MakeFixnum(frameID))
	h.writeValue(off+fnArity, MakeFixnum(encodeArity(arity)))
	h.writeValue(off+fnContext, NIL)
	return withHeapOffset(tagFunction, off)
}

// NewPrimitive allocates a function cell wrapping a primitive table
// index (environment.go's primitive registry).
func (h *Heap) NewPrimitive(name Value, index int, arity Arity, frameID int64) Value {
	off := h.alloc(sizeFunction, classFunction)
	h.writeValue(off+fnName, name)
	h.writeValue(off+fnPrimitive, MakeFixnum(int64(index)))
	h.writeValue(off+fnSource, NIL)
	h.writeValue(off+fnCaptured, NIL)
	h.writeValue(off+fnFrameID, MakeFixnum(frameID))
	h.writeValue(off+fnArity, MakeFixnum(encodeArity(arity)))
	h.writeValue(off+fnContext, NIL)
	return withHeapOffset(tagFunction, off)
}

func (h *Heap) FunctionName(v Value) Value       { return h.readValue(heapOffset(v) + fnName) }
func (h *Heap) FunctionSource(v Value) Value     { return h.readValue(heapOffset(v) + fnSource) }
func (h *Heap) FunctionCaptured(v Value) Value   { return h.readValue(heapOffset(v) + fnCaptured) }
func (h *Heap) FunctionContext(v Value) Value    { return h.readValue(heapOffset(v) + fnContext) }
func (h *Heap) SetFunctionContext(v, ctx Value)  { h.writeValue(heapOffset(v)+fnContext, ctx) }

// FunctionFrameID returns the function's unique frame_id, used to key
// the evaluator's per-function frame cache (spec.md §4.6).
func (h *Heap) FunctionFrameID(v Value) int64 {
	return FixnumValue(h.readValue(heapOffset(v) + fnFrameID))
}

// FunctionArity decodes a function's parameter-list contract.
func (h *Heap) FunctionArity(v Value) Arity {
	return decodeArity(FixnumValue(h.readValue(heapOffset(v) + fnArity)))
}

// PrimitiveIndex returns (index, true) if v wraps a primitive, or
// (0, false) for a user-defined function.
func (h *Heap) PrimitiveIndex(v Value) (int, bool) {
	d := h.readValue(heapOffset(v) + fnPrimitive)
	if Null(d) {
		return 0, false
	}
	return int(FixnumValue(d)), true
}

func (h *Heap) functionChildren(off int) []Value {
	return []Value{
		h.readValue(off + fnName),
		h.readValue(off + fnSource),
		h.readValue(off + fnCaptured),
		h.readValue(off + fnContext),
	}
}
