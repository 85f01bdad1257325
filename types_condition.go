package mu

// Condition: {tag_keyword, frame_view, source_value, reason_string},
// spec.md §3.2 and §7's error taxonomy.

// NewCondition allocates a condition object. frameView is a snapshot
// value describing the frame the condition was raised in (the callers
// in this package pass the raising frame_id as a fixnum).
func (h *Heap) NewCondition(class Value, frameView, source Value, reason string) Value {
	off := h.alloc(sizeCondition, classCondition)
	h.writeValue(off, class)
	h.writeValue(off+8, frameView)
	h.writeValue(off+16, source)
	h.writeValue(off+24, h.MakeString(reason))
	return withHeapOffset(tagExtended, off)
}

func (h *Heap) IsCondition(v Value) bool {
	return IsExtended(v) && h.classOf(heapOffset(v)) == classCondition
}

func (h *Heap) ConditionClass(v Value) Value  { return h.readValue(heapOffset(v)) }
func (h *Heap) ConditionFrame(v Value) Value  { return h.readValue(heapOffset(v) + 8) }
func (h *Heap) ConditionSource(v Value) Value { return h.readValue(heapOffset(v) + 16) }
func (h *Heap) ConditionReason(v Value) string {
	return h.StringValue(h.readValue(heapOffset(v) + 24))
}

func (h *Heap) conditionChildren(off int) []Value {
	return []Value{
		h.readValue(off),
		h.readValue(off + 8),
		h.readValue(off + 16),
		h.readValue(off + 24),
	}
}
