package domain

// ExperimentList is an ordered, index-addressable sequence of experiments.
// The zero value is ready to use. The list owns the sequence only: model
// instances referenced by its experiments are shared with any other
// experiment or list holding them, and stay alive as long as anything does.
//
// Element positions are stable between mutations. Deleting position i
// shifts all later positions down by one; nothing reorders implicitly.
// Duplicate experiments, by value or by shared references, are permitted.
//
// The list is not safe for concurrent mutation. Mutating an experiment
// obtained from Get while iterating is well defined; appending to or
// removing from the list during iteration is undefined.
type ExperimentList struct {
	items []*Experiment
}

// NewExperimentList builds a list from the supplied experiments, copied in
// order. The copies share the model instances the originals reference.
func NewExperimentList(experiments ...Experiment) *ExperimentList {
	list := &ExperimentList{items: make([]*Experiment, 0, len(experiments))}
	for _, e := range experiments {
		list.Append(e)
	}
	return list
}

// Append adds a copy of e at the end of the sequence.
func (l *ExperimentList) Append(e Experiment) {
	l.items = append(l.items, &e)
}

// Extend appends a copy of every experiment in other, preserving order.
func (l *ExperimentList) Extend(other *ExperimentList) {
	if other == nil {
		return
	}
	for _, e := range other.items {
		l.Append(*e)
	}
}

// Clear removes every experiment, releasing the list's share of their
// references.
func (l *ExperimentList) Clear() {
	l.items = nil
}

// Empty reports whether the list holds no experiments.
func (l *ExperimentList) Empty() bool {
	return len(l.items) == 0
}

// Size returns the number of experiments in the list.
func (l *ExperimentList) Size() int {
	return len(l.items)
}

// Get returns the live experiment stored at position i. Mutations through
// the returned pointer are visible to the list.
func (l *ExperimentList) Get(i int) (*Experiment, error) {
	if i < 0 || i >= len(l.items) {
		return nil, IndexError{Index: i, Size: len(l.items)}
	}
	return l.items[i], nil
}

// Set overwrites position i in place with a copy of e. References obtained
// earlier through Get observe the new value.
func (l *ExperimentList) Set(i int, e Experiment) error {
	if i < 0 || i >= len(l.items) {
		return IndexError{Index: i, Size: len(l.items)}
	}
	*l.items[i] = e
	return nil
}

// Delete removes position i, shifting subsequent experiments down by one.
func (l *ExperimentList) Delete(i int) error {
	if i < 0 || i >= len(l.items) {
		return IndexError{Index: i, Size: len(l.items)}
	}
	l.items = append(l.items[:i], l.items[i+1:]...)
	return nil
}

// Slice returns a new list holding copies of the experiments visited by
// stepping i = start, start+step, ... while i < stop and i < Size().
// Bounds are clamped rather than checked: out-of-range values yield a
// short or empty result, never an error. Steps below 1 are treated as 1.
func (l *ExperimentList) Slice(start, stop, step int) *ExperimentList {
	if step < 1 {
		step = 1
	}
	if start < 0 {
		start = 0
	}
	out := &ExperimentList{}
	for i := start; i < stop && i < len(l.items); i += step {
		out.Append(*l.items[i])
	}
	return out
}

// Experiments returns the stored experiments in sequence order. The
// pointers are live references into the list.
func (l *ExperimentList) Experiments() []*Experiment {
	out := make([]*Experiment, len(l.items))
	copy(out, l.items)
	return out
}

// Contains reports whether any experiment in the list references ref: by
// pointer identity for the five typed model kinds, by the object's own
// equality contract for profile and imageset objects. Value-equal but
// distinct instances never match.
func (l *ExperimentList) Contains(ref any) (bool, error) {
	kind, err := kindOf(ref)
	if err != nil {
		return false, err
	}
	for _, e := range l.items {
		if e.holds(kind, ref) {
			return true, nil
		}
	}
	return false, nil
}

// Indices returns the ascending positions of every experiment referencing
// ref, using the same matching rule as Contains. No match yields an empty
// result, not an error.
func (l *ExperimentList) Indices(ref any) ([]int, error) {
	kind, err := kindOf(ref)
	if err != nil {
		return nil, err
	}
	var out []int
	for i, e := range l.items {
		if e.holds(kind, ref) {
			out = append(out, i)
		}
	}
	return out, nil
}

// Replace retargets every slot referencing old onto new, in a single pass
// over the list. Matching follows the Contains rule, so experiments holding
// instances merely value-equal to old are untouched, and zero matches is a
// silent no-op. Both arguments must target the same slot kind; argument
// validation happens before any mutation.
func (l *ExperimentList) Replace(old, new any) error {
	oldKind, err := kindOf(old)
	if err != nil {
		return err
	}
	newKind, err := kindOf(new)
	if err != nil {
		return err
	}
	if oldKind != newKind {
		return KindMismatchError{Old: oldKind, New: newKind}
	}
	for _, e := range l.items {
		e.retarget(oldKind, old, new)
	}
	return nil
}

// Query selects experiments by slot reference. Nil fields impose no
// constraint; every supplied field must match its slot, by the same
// identity or equality rule used by Indices.
type Query struct {
	Beam       *Beam
	Detector   *Detector
	Goniometer *Goniometer
	Scan       *Scan
	Crystal    *Crystal
	Profile    Object
	Imageset   Object
}

func (q Query) matches(e *Experiment) bool {
	if q.Beam != nil && e.Beam != q.Beam {
		return false
	}
	if q.Detector != nil && e.Detector != q.Detector {
		return false
	}
	if q.Goniometer != nil && e.Goniometer != q.Goniometer {
		return false
	}
	if q.Scan != nil && e.Scan != q.Scan {
		return false
	}
	if q.Crystal != nil && e.Crystal != q.Crystal {
		return false
	}
	if q.Profile != nil && (e.Profile == nil || !e.Profile.Equal(q.Profile)) {
		return false
	}
	if q.Imageset != nil && (e.Imageset == nil || !e.Imageset.Equal(q.Imageset)) {
		return false
	}
	return true
}

// Where returns the ascending positions of experiments matching every
// supplied filter of q. An empty query matches every experiment, yielding
// the full index range.
func (l *ExperimentList) Where(q Query) []int {
	out := make([]int, 0, len(l.items))
	for i, e := range l.items {
		if q.matches(e) {
			out = append(out, i)
		}
	}
	return out
}
