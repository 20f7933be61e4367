package pipeline

import (
	"github.com/sarchlab/akita/v4/sim"
)

// HookPosFIFOPush marks when an element is pushed onto the back of a
// BoundedFIFO.
var HookPosFIFOPush = &sim.HookPos{Name: "FIFO Push"}

// HookPosFIFOPull marks when an element leaves a BoundedFIFO, whether
// from the front (PopFront) or from the middle (Pull).
var HookPosFIFOPull = &sim.HookPos{Name: "FIFO Pull"}

// BoundedFIFO is a fixed-capacity queue used for every inter-stage
// buffer in the pipeline (PreIssue, PreALU, PostALU, PreMemAddr,
// PreMem, PostMem). Unlike a plain ring buffer it supports Pull, which
// removes an entry at an arbitrary position while preserving the
// relative order of what remains, the operation Issue needs to skip
// over a hazarded PreIssue candidate without disturbing FIFO order.
//
// It embeds sim.HookableBase so pushes and pulls are observable the
// same way akita's own sim.Buffer makes Push/Pop observable.
type BoundedFIFO[T any] struct {
	sim.HookableBase

	name     string
	capacity int
	entries  []T
}

// NewBoundedFIFO creates an empty BoundedFIFO of the given capacity.
func NewBoundedFIFO[T any](name string, capacity int) *BoundedFIFO[T] {
	return &BoundedFIFO[T]{name: name, capacity: capacity}
}

// Name satisfies sim.Named.
func (f *BoundedFIFO[T]) Name() string { return f.name }

// IsEmpty reports whether the queue holds no entries.
func (f *BoundedFIFO[T]) IsEmpty() bool { return len(f.entries) == 0 }

// IsFull reports whether the queue is at capacity.
func (f *BoundedFIFO[T]) IsFull() bool { return len(f.entries) >= f.capacity }

// NumEmpty reports how many more entries can be pushed before the
// queue is full.
func (f *BoundedFIFO[T]) NumEmpty() int { return f.capacity - len(f.entries) }

// Len reports the number of occupied entries.
func (f *BoundedFIFO[T]) Len() int { return len(f.entries) }

// PushBack appends e to the back of the queue. On a full queue it does
// nothing and drops e silently: callers check IsFull or NumEmpty first,
// as the pipeline's NumEmpty-gated Fetch/Issue logic does.
func (f *BoundedFIFO[T]) PushBack(e T) {
	if f.IsFull() {
		return
	}
	f.entries = append(f.entries, e)
	if f.NumHooks() > 0 {
		f.InvokeHook(sim.HookCtx{Domain: f, Pos: HookPosFIFOPush, Item: e})
	}
}

// PopFront removes and returns the front entry. ok is false if the
// queue was empty.
func (f *BoundedFIFO[T]) PopFront() (e T, ok bool) {
	if f.IsEmpty() {
		return e, false
	}
	e = f.entries[0]
	f.entries = f.entries[1:]
	if f.NumHooks() > 0 {
		f.InvokeHook(sim.HookCtx{Domain: f, Pos: HookPosFIFOPull, Item: e})
	}
	return e, true
}

// Pull removes and returns the entry at pos (0-based from the front),
// shifting everything behind it forward by one so the remaining
// entries keep their relative order. ok is false if pos is out of
// range.
func (f *BoundedFIFO[T]) Pull(pos int) (e T, ok bool) {
	if pos < 0 || pos >= len(f.entries) {
		return e, false
	}
	e = f.entries[pos]
	f.entries = append(f.entries[:pos], f.entries[pos+1:]...)
	if f.NumHooks() > 0 {
		f.InvokeHook(sim.HookCtx{Domain: f, Pos: HookPosFIFOPull, Item: e})
	}
	return e, true
}

// Peek returns the entry at pos without removing it.
func (f *BoundedFIFO[T]) Peek(pos int) (e T, ok bool) {
	if pos < 0 || pos >= len(f.entries) {
		return e, false
	}
	return f.entries[pos], true
}

// Each calls fn for every entry from front to back, in order. fn must
// not mutate the queue; callers that need to remove entries while
// scanning (Issue's hazard scan) collect positions first and Pull them
// afterward.
func (f *BoundedFIFO[T]) Each(fn func(pos int, e T)) {
	for i, e := range f.entries {
		fn(i, e)
	}
}

// Snapshot returns a copy of the queue's current contents, for trace
// rendering.
func (f *BoundedFIFO[T]) Snapshot() []T {
	out := make([]T, len(f.entries))
	copy(out, f.entries)
	return out
}
