package domain

import (
	"errors"
	"testing"
)

func TestContainsByIdentityNotValue(t *testing.T) {
	shared := &Beam{Wavelength: 0.9}
	twin := &Beam{Wavelength: 0.9} // value-equal, distinct instance
	list := NewExperimentList(
		Experiment{Beam: shared},
		Experiment{Beam: twin},
		Experiment{},
	)

	ok, err := list.Contains(shared)
	if err != nil || !ok {
		t.Fatalf("contains(shared): %v %v", ok, err)
	}
	indices, err := list.Indices(shared)
	if err != nil {
		t.Fatalf("indices: %v", err)
	}
	if len(indices) != 1 || indices[0] != 0 {
		t.Fatalf("indices(shared): got %v want [0]", indices)
	}
	indices, _ = list.Indices(twin)
	if len(indices) != 1 || indices[0] != 1 {
		t.Fatalf("indices(twin): got %v want [1]", indices)
	}
}

func TestIndicesAscendingNoDuplicates(t *testing.T) {
	detector := &Detector{Name: "eiger"}
	list := NewExperimentList(
		Experiment{Detector: detector},
		Experiment{},
		Experiment{Detector: detector},
		Experiment{Detector: detector},
	)
	indices, err := list.Indices(detector)
	if err != nil {
		t.Fatalf("indices: %v", err)
	}
	want := []int{0, 2, 3}
	if len(indices) != len(want) {
		t.Fatalf("indices: got %v want %v", indices, want)
	}
	for i := range want {
		if indices[i] != want[i] {
			t.Fatalf("indices: got %v want %v", indices, want)
		}
	}
}

func TestIndicesNoMatchIsEmptyNotError(t *testing.T) {
	list := NewExperimentList(Experiment{Beam: &Beam{}})
	indices, err := list.Indices(&Scan{})
	if err != nil {
		t.Fatalf("indices: %v", err)
	}
	if len(indices) != 0 {
		t.Fatalf("expected empty indices, got %v", indices)
	}
	ok, err := list.Contains(&Goniometer{})
	if err != nil || ok {
		t.Fatalf("contains on absent model: %v %v", ok, err)
	}
}

func TestReplaceRetargetsAllIdentityMatches(t *testing.T) {
	old := &Beam{Wavelength: 0.9}
	twin := &Beam{Wavelength: 0.9}
	next := &Beam{Wavelength: 1.0}
	list := NewExperimentList(
		Experiment{Beam: old},
		Experiment{Beam: old},
		Experiment{Beam: twin},
		Experiment{Beam: old},
	)

	wantIndices, _ := list.Indices(old)
	if err := list.Replace(old, next); err != nil {
		t.Fatalf("replace: %v", err)
	}

	newIndices, _ := list.Indices(next)
	if len(newIndices) != len(wantIndices) {
		t.Fatalf("indices(next): got %v want %v", newIndices, wantIndices)
	}
	for i := range wantIndices {
		if newIndices[i] != wantIndices[i] {
			t.Fatalf("indices(next): got %v want %v", newIndices, wantIndices)
		}
	}
	oldIndices, _ := list.Indices(old)
	if len(oldIndices) != 0 {
		t.Fatalf("indices(old) after replace: got %v want empty", oldIndices)
	}
	// The value-equal twin is untouched.
	e, _ := list.Get(2)
	if e.Beam != twin {
		t.Fatalf("replace retargeted a value-equal instance")
	}
}

func TestReplaceZeroMatchesIsNoOp(t *testing.T) {
	beam := &Beam{Wavelength: 0.9}
	list := NewExperimentList(Experiment{Beam: beam})
	if err := list.Replace(&Beam{Wavelength: 2}, &Beam{Wavelength: 3}); err != nil {
		t.Fatalf("replace with no matches: %v", err)
	}
	e, _ := list.Get(0)
	if e.Beam != beam {
		t.Fatalf("no-op replace mutated the list")
	}
}

func TestReplaceKindMismatchFailsBeforeMutating(t *testing.T) {
	beam := &Beam{Wavelength: 0.9}
	list := NewExperimentList(Experiment{Beam: beam})
	err := list.Replace(beam, &Detector{})
	var mismatch KindMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected KindMismatchError, got %v", err)
	}
	e, _ := list.Get(0)
	if e.Beam != beam {
		t.Fatalf("failed replace mutated the list")
	}
}

func TestUnsupportedReferenceType(t *testing.T) {
	list := NewExperimentList(Experiment{})
	var unsupported UnsupportedModelError
	if _, err := list.Contains(42); !errors.As(err, &unsupported) {
		t.Fatalf("contains: expected UnsupportedModelError, got %v", err)
	}
	if _, err := list.Indices("beam"); !errors.As(err, &unsupported) {
		t.Fatalf("indices: expected UnsupportedModelError, got %v", err)
	}
	if err := list.Replace(struct{}{}, struct{}{}); !errors.As(err, &unsupported) {
		t.Fatalf("replace: expected UnsupportedModelError, got %v", err)
	}
}

func TestGenericObjectMatchesEitherGenericSlot(t *testing.T) {
	imageset := &Imageset{ID: "sweep-1"}
	profile := &Profile{Name: "gaussian_rs"}
	list := NewExperimentList(
		Experiment{Imageset: imageset},
		Experiment{Profile: profile},
		Experiment{},
	)

	indices, err := list.Indices(imageset)
	if err != nil {
		t.Fatalf("indices(imageset): %v", err)
	}
	if len(indices) != 1 || indices[0] != 0 {
		t.Fatalf("indices(imageset): got %v want [0]", indices)
	}
	indices, _ = list.Indices(profile)
	if len(indices) != 1 || indices[0] != 1 {
		t.Fatalf("indices(profile): got %v want [1]", indices)
	}
	// A value-equal but distinct imageset does not match the identity-based
	// built-in equality.
	ok, _ := list.Contains(&Imageset{ID: "sweep-1"})
	if ok {
		t.Fatalf("distinct imageset instance should not match")
	}
}

// valueImageset implements Object with value equality, exercising the
// capability contract with semantics other than identity.
type valueImageset struct{ id string }

func (v valueImageset) Equal(other Object) bool {
	o, ok := other.(valueImageset)
	return ok && o.id == v.id
}

func TestGenericObjectValueEqualityContract(t *testing.T) {
	list := NewExperimentList(
		Experiment{Imageset: valueImageset{id: "a"}},
		Experiment{Imageset: valueImageset{id: "b"}},
	)
	ok, err := list.Contains(valueImageset{id: "a"})
	if err != nil || !ok {
		t.Fatalf("contains by value contract: %v %v", ok, err)
	}
	if err := list.Replace(valueImageset{id: "a"}, valueImageset{id: "c"}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	indices, _ := list.Indices(valueImageset{id: "c"})
	if len(indices) != 1 || indices[0] != 0 {
		t.Fatalf("indices after generic replace: got %v", indices)
	}
}

func TestReplaceGenericObject(t *testing.T) {
	old := &Imageset{ID: "old"}
	next := &Imageset{ID: "new"}
	list := NewExperimentList(
		Experiment{Imageset: old},
		Experiment{Imageset: old},
		Experiment{Imageset: next},
	)
	if err := list.Replace(old, next); err != nil {
		t.Fatalf("replace: %v", err)
	}
	indices, _ := list.Indices(next)
	if len(indices) != 3 {
		t.Fatalf("indices(next): got %v want all three", indices)
	}
	if indices2, _ := list.Indices(old); len(indices2) != 0 {
		t.Fatalf("indices(old): got %v want empty", indices2)
	}
}

func TestExperimentContains(t *testing.T) {
	beam := &Beam{}
	imageset := &Imageset{ID: "x"}
	e := Experiment{Beam: beam, Imageset: imageset}
	if ok, err := e.Contains(beam); err != nil || !ok {
		t.Fatalf("contains(beam): %v %v", ok, err)
	}
	if ok, err := e.Contains(imageset); err != nil || !ok {
		t.Fatalf("contains(imageset): %v %v", ok, err)
	}
	if ok, _ := e.Contains(&Beam{}); ok {
		t.Fatalf("distinct beam should not match")
	}
	if _, err := e.Contains(3.14); err == nil {
		t.Fatalf("expected unsupported reference error")
	}
}
