// Package handle implements the owned-value handles the provider/consumer
// contract uses to move samples between a producer and its subscribers
// without copying: a Mutable handle is held by exactly one writer, a Shared
// handle may be held by many readers, and a Mutable can be converted into a
// Shared by an explicit, one-way Freeze.
//
// Dereferencing an empty handle panics rather than returning a zero value,
// the same "fatal on programmer misuse" idiom as uuid.MustParse panicking
// on a malformed UUID.
package handle

// box is the shared container a Mutable and the Shared handles it spawns
// point at. Only one Mutable may exist for a box at a time; Freeze consumes
// the Mutable and leaves any number of Shared handles referencing the same
// box.
type box[T any] struct {
	value T
	set   bool
}

// Mutable is a move-only, single-owner handle around a heap value of type
// T. The zero Mutable is empty.
type Mutable[T any] struct {
	b *box[T]
}

// NewMutable allocates a fresh, empty Mutable handle.
func NewMutable[T any]() Mutable[T] {
	return Mutable[T]{b: &box[T]{}}
}

// Empty reports whether the handle currently carries no value.
func (m Mutable[T]) Empty() bool {
	return m.b == nil || !m.b.set
}

// Set stores a value in the handle, overwriting any previous value.
func (m Mutable[T]) Set(v T) {
	if m.b == nil {
		panic("handle: Set called on a zero Mutable")
	}
	m.b.value = v
	m.b.set = true
}

// Deref returns the carried value. Dereferencing an empty handle is a fatal
// programming error and panics.
func (m Mutable[T]) Deref() T {
	if m.Empty() {
		panic("handle: dereference of an empty Mutable handle")
	}
	return m.b.value
}

// Freeze moves ownership of the underlying value into a new Shared handle.
// The Mutable it was called on must not be used afterwards — Go cannot
// enforce move-only semantics statically, so callers are expected to treat
// m as consumed.
func (m Mutable[T]) Freeze() Shared[T] {
	if m.b == nil {
		panic("handle: Freeze called on a zero Mutable")
	}
	return Shared[T]{b: m.b}
}

// Shared is a many-reader, read-only handle around a heap value. Copying a
// Shared handle is cheap (it copies a pointer) and the underlying value
// survives until the last copy is dropped by the garbage collector — no
// explicit refcounting is required in Go.
type Shared[T any] struct {
	b *box[T]
}

// NewShared wraps a value directly in a Shared handle, used by providers
// that copy-publish via Set rather than allocate/setAllocated.
func NewShared[T any](v T) Shared[T] {
	return Shared[T]{b: &box[T]{value: v, set: true}}
}

// Empty reports whether the handle carries no value.
func (s Shared[T]) Empty() bool {
	return s.b == nil || !s.b.set
}

// Deref returns the carried value. Dereferencing an empty handle panics.
func (s Shared[T]) Deref() T {
	if s.Empty() {
		panic("handle: dereference of an empty Shared handle")
	}
	return s.b.value
}
