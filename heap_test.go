package mu

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHeap(t *testing.T) *Heap {
	t.Helper()
	h, err := NewHeap(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = h.Close() })
	return h
}

func TestHeap_ConsCarCdr(t *testing.T) {
	h := newTestHeap(t)
	p := h.Cons(MakeFixnum(1), MakeFixnum(2))
	assert.True(t, IsPair(p))
	assert.Equal(t, MakeFixnum(1), h.Car(p))
	assert.Equal(t, MakeFixnum(2), h.Cdr(p))
}

func TestHeap_SetCarSetCdr(t *testing.T) {
	h := newTestHeap(t)
	p := h.Cons(MakeFixnum(1), MakeFixnum(2))
	h.SetCar(p, MakeFixnum(10))
	h.SetCdr(p, MakeFixnum(20))
	assert.Equal(t, MakeFixnum(10), h.Car(p))
	assert.Equal(t, MakeFixnum(20), h.Cdr(p))
}

func TestHeap_SliceListRoundTrip(t *testing.T) {
	h := newTestHeap(t)
	items := []Value{MakeFixnum(1), MakeFixnum(2), MakeFixnum(3)}
	list := h.SliceToList(items)
	assert.Equal(t, 3, h.ListLength(list))
	assert.Equal(t, items, h.ListToSlice(list))
}

func TestHeap_NullCarCdr(t *testing.T) {
	h := newTestHeap(t)
	assert.Equal(t, NIL, h.Car(NIL))
	assert.Equal(t, NIL, h.Cdr(NIL))
}

func TestHeap_CollectReclaimsUnreachablePairs(t *testing.T) {
	h := newTestHeap(t)
	kept := h.Cons(MakeFixnum(1), NIL)
	_ = h.Cons(MakeFixnum(2), NIL) // unreachable once collected

	before := h.BytesAllocated()
	reclaimed := h.Collect([]Value{kept})
	assert.Greater(t, reclaimed, 0)
	assert.Equal(t, before, h.BytesAllocated(), "collect must not change cumulative allocation count")

	// kept pair must still be readable after the sweep.
	assert.Equal(t, MakeFixnum(1), h.Car(kept))
}

func TestHeap_CollectReusesPairFreeList(t *testing.T) {
	h := newTestHeap(t)
	_ = h.Cons(MakeFixnum(1), NIL)
	h.Collect(nil) // nothing rooted: every pair becomes free

	topBefore := h.top
	_ = h.Cons(MakeFixnum(2), NIL)
	assert.Equal(t, topBefore, h.top, "reused pair cell must not bump the allocator")
}

func TestHeap_CollectKeepsReachableChain(t *testing.T) {
	h := newTestHeap(t)
	tail := h.Cons(MakeFixnum(3), NIL)
	mid := h.Cons(MakeFixnum(2), tail)
	head := h.Cons(MakeFixnum(1), mid)

	h.Collect([]Value{head})
	assert.Equal(t, []Value{MakeFixnum(1), MakeFixnum(2), MakeFixnum(3)}, h.ListToSlice(head))
}

func TestHeap_CyclicPairDoesNotHang(t *testing.T) {
	h := newTestHeap(t)
	a := h.Cons(MakeFixnum(1), NIL)
	h.SetCdr(a, a) // self-cycle
	done := make(chan struct{})
	go func() {
		h.Collect([]Value{a})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Collect did not terminate on a cyclic pair graph")
	}
}
