package mu

import (
	"encoding/binary"
	"fmt"
	"syscall"
)

// heapClass is the system-class tag stored in every object header's
// high byte, spec.md §3.2.
type heapClass uint8

const (
	classFree heapClass = iota
	classPair
	classVector
	classString
	classSymbol
	classFunction
	classMacro
	classNamespace
	classStream
	classCondition
	classStruct
)

func (c heapClass) String() string {
	names := [...]string{"free", "pair", "vector", "string", "symbol",
		"function", "macro", "namespace", "stream", "condition", "struct"}
	if int(c) < len(names) {
		return names[c]
	}
	return "unknown"
}

// headerSize is the fixed 8-byte header every heap object is
// preceded by, spec.md §3.2.
const headerSize = 8

// DefaultHeapSize is the default size of the heap's backing region,
// a multiple of the platform page size (spec.md §4.1 suggests 64 MiB).
const DefaultHeapSize = 64 * 1024 * 1024

// HeapExhausted is raised when the bump allocator runs off the end of
// the backing region. spec.md §4.1 calls this a fatal error: alloc
// panics with it, and nothing in the runtime recovers that panic.
type HeapExhausted struct {
	Requested int
}

func (e *HeapExhausted) Error() string {
	return fmt.Sprintf("mu: heap exhausted allocating %d bytes", e.Requested)
}

// Heap is a bump allocator over a single contiguous mmap'd region.
// It is not safe for concurrent use; spec.md §5 requires GC to only
// run at a quiescent point with no primitive holding unrooted heap
// pointers in locals.
type Heap struct {
	data []byte
	top  int // bump pointer: next free byte offset

	pairFree    int // offset of most-recently-freed pair cell, or 0 (none)
	pairFreeLen int

	// freeBlocks buckets dead non-pair objects by class so a
	// subsequent allocation of the same class can reuse one
	// instead of bumping. This is the "optimization, not an
	// invariant" biasing described in spec.md §4.1.
	freeBlocks map[heapClass][]int

	// nsExterns/nsInterns hold each namespace's two name->symbol
	// partitions, keyed by the namespace object's payload offset
	// and then by an FNV-1a hash of the name (spec.md §4.4). Go's
	// native map is the idiomatic stand-in for the source's
	// in-heap hash table; the namespace's heap payload itself only
	// carries its name and import chain (types_namespace.go), and
	// these side tables are walked directly by the mark phase so
	// every symbol reachable from a namespace still gets traced.
	nsExterns map[int]map[uint64]Value
	nsInterns map[int]map[uint64]Value

	bytesAllocated int
}

// NewHeap maps an anonymous, private region of size bytes (size is
// passed to mmap as given) and returns a heap ready to allocate from it. The
// backing file is anonymous and is never visible on disk, per
// spec.md §6.3.
func NewHeap(size int) (*Heap, error) {
	if size <= 0 {
		size = DefaultHeapSize
	}
	data, err := syscall.Mmap(-1, 0, size, syscall.PROT_READ|syscall.PROT_WRITE, syscall.MAP_PRIVATE|syscall.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("mu: mmap heap region: %w", err)
	}
	return &Heap{
		data:       data,
		top:        0,
		freeBlocks: make(map[heapClass][]int),
		nsExterns:  make(map[int]map[uint64]Value),
		nsInterns:  make(map[int]map[uint64]Value),
	}, nil
}

// Close unmaps the heap's backing region.
func (h *Heap) Close() error {
	if h.data == nil {
		return nil
	}
	err := syscall.Munmap(h.data)
	h.data = nil
	return err
}

func roundUp8(n int) int { return (n + 7) &^ 7 }

func (h *Heap) readValue(off int) Value {
	return Value(binary.LittleEndian.Uint64(h.data[off : off+8]))
}

func (h *Heap) writeValue(off int, v Value) {
	binary.LittleEndian.PutUint64(h.data[off:off+8], uint64(v))
}

func (h *Heap) readByte(off int) byte  { return h.data[off] }
func (h *Heap) writeByte(off int, b byte) { h.data[off] = b }

func (h *Heap) readU16(off int) uint16 { return binary.LittleEndian.Uint16(h.data[off : off+2]) }
func (h *Heap) writeU16(off int, v uint16) {
	binary.LittleEndian.PutUint16(h.data[off:off+2], v)
}

func (h *Heap) readU32(off int) uint32 { return binary.LittleEndian.Uint32(h.data[off : off+4]) }
func (h *Heap) writeU32(off int, v uint32) {
	binary.LittleEndian.PutUint32(h.data[off:off+4], v)
}

// Header accessors. headerOff is the byte offset of the 8-byte
// header itself; objOff-headerSize for an object whose payload
// starts at objOff.

func (h *Heap) classAt(headerOff int) heapClass { return heapClass(h.readByte(headerOff + 7)) }
func (h *Heap) setClassAt(headerOff int, c heapClass) { h.writeByte(headerOff+7, byte(c)) }

func (h *Heap) sizeUnitsAt(headerOff int) uint16     { return h.readU16(headerOff + 4) }
func (h *Heap) setSizeUnitsAt(headerOff int, u uint16) { h.writeU16(headerOff+4, u) }

func (h *Heap) markBitAt(headerOff int) bool { return h.data[headerOff+6]&1 != 0 }
func (h *Heap) setMarkBitAt(headerOff int, m bool) {
	if m {
		h.data[headerOff+6] |= 1
	} else {
		h.data[headerOff+6] &^= 1
	}
}

func (h *Heap) relocAt(headerOff int) uint32     { return h.readU32(headerOff) }
func (h *Heap) setRelocAt(headerOff int, r uint32) { h.writeU32(headerOff, r) }

// headerFor returns the header offset preceding the object whose
// payload starts at objOff, matching spec.md §3.3 invariant 2's
// "header(v)-1".
func headerFor(objOff int) int { return objOff - headerSize }

func (h *Heap) classOf(objOff int) heapClass { return h.classAt(headerFor(objOff)) }

// payloadSize returns the object's payload size in bytes (excluding
// its header), i.e. sizeUnits*8.
func (h *Heap) payloadSize(objOff int) int {
	return int(h.sizeUnitsAt(headerFor(objOff))) * 8
}

// alloc bumps the allocator by headerSize+round_up_8(size), writes a
// zeroed header for class c, and returns the offset of the object's
// payload (one header past the new header), per spec.md §4.1.
func (h *Heap) alloc(size int, c heapClass) int {
	if off, ok := h.reuse(size, c); ok {
		return off
	}
	rounded := roundUp8(size)
	total := headerSize + rounded
	if h.top+total > len(h.data) {
		panic(&HeapExhausted{Requested: total})
	}
	headerOff := h.top
	objOff := headerOff + headerSize
	for i := 0; i < total; i++ {
		h.data[headerOff+i] = 0
	}
	h.setSizeUnitsAt(headerOff, uint16(rounded/8))
	h.setClassAt(headerOff, c)
	h.top += total
	h.bytesAllocated += total
	return objOff
}

// reuse attempts to satisfy an allocation from a free list instead of
// bumping the pointer. Pair cells are O(1) via the dedicated free
// list; other classes scan a small per-class bucket of freed blocks,
// per spec.md §4.1.
func (h *Heap) reuse(size int, c heapClass) (int, bool) {
	if c == classPair && h.pairFreeLen > 0 {
		objOff := h.pairFree
		next := h.pairFreeNext(objOff)
		h.pairFree = next
		h.pairFreeLen--
		// zero the payload; the header's class/size are already
		// correct from when the cell was first allocated.
		for i := 0; i < h.payloadSize(objOff); i++ {
			h.data[objOff+i] = 0
		}
		h.setMarkBitAt(headerFor(objOff), false)
		return objOff, true
	}
	needed := roundUp8(size)
	bucket := h.freeBlocks[c]
	for i, off := range bucket {
		if h.payloadSize(off) >= needed {
			h.freeBlocks[c] = append(bucket[:i], bucket[i+1:]...)
			for j := 0; j < h.payloadSize(off); j++ {
				h.data[off+j] = 0
			}
			h.setMarkBitAt(headerFor(off), false)
			return off, true
		}
	}
	return 0, false
}

// pairFreeNext/setPairFreeNext thread the pair free list through the
// dead cell's car slot. spec.md's Design Notes call out that the
// source reuses this slot without clearing its class; we make that
// explicit here via dedicated accessors (rather than a raw car
// read/write) so the reuse is never confused with a live pair's car
// during the mark phase -- free cells are swept before any mark pass
// can reach them, but the accessor keeps the intent visible.
func (h *Heap) pairFreeNext(objOff int) int {
	v := h.readValue(objOff)
	if !IsAddress(v) {
		return 0
	}
	return heapOffset(v)
}

func (h *Heap) setPairFreeNext(objOff int, next int) {
	h.writeValue(objOff, withHeapOffset(tagAddress, next))
}

// BytesAllocated returns the cumulative number of bytes handed out by
// the bump allocator across the heap's lifetime (not current usage).
func (h *Heap) BytesAllocated() int { return h.bytesAllocated }

// Collect runs one stop-the-world mark-sweep cycle rooted at roots
// and returns the number of bytes reclaimed, per spec.md §4.1 and the
// `gc` primitive's contract (§8 scenario table, §C of SPEC_FULL.md).
func (h *Heap) Collect(roots []Value) int {
	// Blocks already on a free list were reported by an earlier cycle;
	// the sweep below threads them again but they are not counted twice.
	alreadyFree := 0
	for off, n := h.pairFree, h.pairFreeLen; n > 0; off, n = h.pairFreeNext(off), n-1 {
		alreadyFree += headerSize + h.payloadSize(off)
	}
	for _, bucket := range h.freeBlocks {
		for _, off := range bucket {
			alreadyFree += headerSize + h.payloadSize(off)
		}
	}
	h.pairFree, h.pairFreeLen = 0, 0

	h.clearMarks()
	h.freeBlocks = make(map[heapClass][]int)

	for _, r := range roots {
		h.mark(r)
	}

	reclaimed := h.sweep()
	return reclaimed - alreadyFree
}

// clearMarks walks every header from the start of the heap to the
// bump pointer, clearing its mark bit, per spec.md §4.1 step 1.
func (h *Heap) clearMarks() {
	off := 0
	for off < h.top {
		headerOff := off
		h.setMarkBitAt(headerOff, false)
		off = headerOff + headerSize + int(h.sizeUnitsAt(headerOff))*8
	}
}

// mark sets v's header mark bit (if v is a heap pointer with a live
// header) and recurses into its class-specific children. Re-entrancy
// is guarded by checking the mark bit before recursing, which is what
// makes this safe over cyclic pair/vector structures (spec.md
// Design Notes).
func (h *Heap) mark(v Value) {
	if IsFixnum(v) || isImmediate(v) || IsAddress(v) {
		return
	}
	objOff := heapOffset(v)
	if objOff <= 0 || objOff > h.top {
		return
	}
	headerOff := headerFor(objOff)
	if h.markBitAt(headerOff) {
		return
	}
	h.setMarkBitAt(headerOff, true)
	for _, child := range h.children(v) {
		h.mark(child)
	}
}

// sweep scans headers from heap start to the bump pointer; every
// unmarked header becomes free. Pair cells are threaded onto the
// free list; other classes are bucketed by class for linear-scan
// reuse. Returns total bytes reclaimed.
func (h *Heap) sweep() int {
	reclaimed := 0
	off := 0
	for off < h.top {
		headerOff := off
		size := int(h.sizeUnitsAt(headerOff)) * 8
		next := headerOff + headerSize + size
		class := h.classAt(headerOff)
		if !h.markBitAt(headerOff) && class != classFree {
			objOff := headerOff + headerSize
			reclaimed += headerSize + size
			if class == classPair {
				h.setPairFreeNext(objOff, h.pairFree)
				h.pairFree = objOff
				h.pairFreeLen++
				// class stays classPair: the free-list slot is
				// still a pair-shaped cell waiting for reuse.
			} else {
				h.freeBlocks[class] = append(h.freeBlocks[class], objOff)
			}
		}
		off = next
	}
	return reclaimed
}

// children returns the tagged values a heap object directly
// references, used by the mark phase. It dispatches on v's class;
// immediates, fixnums, and raw addresses have already been filtered
// out by the caller.
func (h *Heap) children(v Value) []Value {
	switch tagOf(v) {
	case tagPair:
		p := heapOffset(v)
		return []Value{h.readValue(p), h.readValue(p + 8)}
	case tagFunction:
		return h.functionChildren(heapOffset(v))
	case tagSymbol:
		return h.symbolChildren(heapOffset(v))
	case tagExtended:
		off := heapOffset(v)
		switch h.classOf(off) {
		case classVector:
			return h.vectorChildren(off)
		case classString:
			return nil
		case classMacro:
			return []Value{h.readValue(off)}
		case classNamespace:
			return h.namespaceChildren(off)
		case classStream:
			return []Value{h.readValue(off + 8)}
		case classCondition:
			return h.conditionChildren(off)
		case classStruct:
			return h.structChildren(off)
		}
	}
	return nil
}
