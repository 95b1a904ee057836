package domain

import "fmt"

// IndexError reports scalar indexed access outside [0, size). Slice access
// clamps instead and never produces this error.
type IndexError struct {
	Index int
	Size  int
}

func (e IndexError) Error() string {
	return fmt.Sprintf("index %d out of range for size %d", e.Index, e.Size)
}

// UnsupportedModelError reports a reference argument whose type none of the
// experiment slots recognises. It is surfaced before any mutation occurs.
type UnsupportedModelError struct {
	Type string
}

func (e UnsupportedModelError) Error() string {
	return fmt.Sprintf("unsupported model reference type %s", e.Type)
}

// KindMismatchError reports a replace call whose old and new references
// target different slots.
type KindMismatchError struct {
	Old ModelKind
	New ModelKind
}

func (e KindMismatchError) Error() string {
	return fmt.Sprintf("cannot replace %s reference with %s reference", e.Old, e.New)
}
