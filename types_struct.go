package mu

// Struct: {type_keyword, slots_list}, spec.md §3.2 and
// SPEC_FULL.md §C's struct primitives.

// NewStruct allocates a struct of the given type, with slots as its
// (name . value) alist.
func (h *Heap) NewStruct(typ Value, slots Value) Value {
	off := h.alloc(sizeStruct, classStruct)
	h.writeValue(off, typ)
	h.writeValue(off+8, slots)
	return withHeapOffset(tagExtended, off)
}

func (h *Heap) IsStruct(v Value) bool {
	return IsExtended(v) && h.classOf(heapOffset(v)) == classStruct
}

func (h *Heap) StructType(v Value) Value  { return h.readValue(heapOffset(v)) }
func (h *Heap) StructSlots(v Value) Value { return h.readValue(heapOffset(v) + 8) }

// StructRef looks up slotName in v's slot alist, returning (value,
// true) on hit.
func (h *Heap) StructRef(v Value, slotName string) (Value, bool) {
	slots := h.StructSlots(v)
	for IsPair(slots) {
		entry := h.Car(slots)
		if h.IsString(h.Car(entry)) && h.StringValue(h.Car(entry)) == slotName {
			return h.Cdr(entry), true
		}
		slots = h.Cdr(slots)
	}
	return NIL, false
}

// StructSet sets (or adds) a slot's value in place; it returns
// nothing. Structs are otherwise immutable from the
// primitive layer's point of view; this mutates in place since the
// slots list is owned exclusively by this struct cell.
func (h *Heap) StructSet(v Value, slotName string, val Value) {
	slots := h.StructSlots(v)
	for IsPair(slots) {
		entry := h.Car(slots)
		if h.IsString(h.Car(entry)) && h.StringValue(h.Car(entry)) == slotName {
			h.SetCdr(entry, val)
			return
		}
		slots = h.Cdr(slots)
	}
	newSlots := h.Cons(h.Cons(h.MakeString(slotName), val), h.StructSlots(v))
	h.writeValue(heapOffset(v)+8, newSlots)
}

func (h *Heap) structChildren(off int) []Value {
	return []Value{h.readValue(off), h.readValue(off + 8)}
}
