package domain

import "testing"

func TestWhereEmptyQueryReturnsFullRange(t *testing.T) {
	list := NewExperimentList(
		Experiment{}, Experiment{}, Experiment{}, Experiment{}, Experiment{},
	)
	got := list.Where(Query{})
	if len(got) != 5 {
		t.Fatalf("where(): got %v want [0 1 2 3 4]", got)
	}
	for i, idx := range got {
		if idx != i {
			t.Fatalf("where(): got %v want [0 1 2 3 4]", got)
		}
	}
}

func TestWhereIsConjunctionOfFilters(t *testing.T) {
	beam := &Beam{Wavelength: 0.9}
	detector := &Detector{Name: "pilatus"}
	list := NewExperimentList(
		Experiment{Beam: beam, Detector: detector},
		Experiment{Beam: beam},
		Experiment{Detector: detector},
		Experiment{Beam: beam, Detector: detector},
	)

	byBeam := list.Where(Query{Beam: beam})
	byDetector := list.Where(Query{Detector: detector})
	both := list.Where(Query{Beam: beam, Detector: detector})

	// where(f1 and f2) equals the intersection of the single-filter results.
	inBeam := make(map[int]bool, len(byBeam))
	for _, i := range byBeam {
		inBeam[i] = true
	}
	var intersection []int
	for _, i := range byDetector {
		if inBeam[i] {
			intersection = append(intersection, i)
		}
	}
	if len(both) != len(intersection) {
		t.Fatalf("conjunction: got %v want %v", both, intersection)
	}
	for i := range both {
		if both[i] != intersection[i] {
			t.Fatalf("conjunction: got %v want %v", both, intersection)
		}
	}
	if len(both) != 2 || both[0] != 0 || both[1] != 3 {
		t.Fatalf("where(beam, detector): got %v want [0 3]", both)
	}
}

func TestWhereMatchesEquivalentToIndices(t *testing.T) {
	scan := &Scan{ImageRange: [2]int{1, 900}}
	list := NewExperimentList(
		Experiment{Scan: scan},
		Experiment{},
		Experiment{Scan: scan},
	)
	fromWhere := list.Where(Query{Scan: scan})
	fromIndices, err := list.Indices(scan)
	if err != nil {
		t.Fatalf("indices: %v", err)
	}
	if len(fromWhere) != len(fromIndices) {
		t.Fatalf("where %v != indices %v", fromWhere, fromIndices)
	}
	for i := range fromWhere {
		if fromWhere[i] != fromIndices[i] {
			t.Fatalf("where %v != indices %v", fromWhere, fromIndices)
		}
	}
}

func TestWhereGenericFiltersUseEqualityContract(t *testing.T) {
	imageset := &Imageset{ID: "sweep-1"}
	profile := &Profile{Name: "gaussian_rs"}
	list := NewExperimentList(
		Experiment{Imageset: imageset, Profile: profile},
		Experiment{Imageset: imageset},
		Experiment{Profile: profile},
	)
	got := list.Where(Query{Imageset: imageset, Profile: profile})
	if len(got) != 1 || got[0] != 0 {
		t.Fatalf("where(imageset, profile): got %v want [0]", got)
	}
	// The imageset filter constrains only the imageset slot: an experiment
	// holding the object in its profile slot does not match.
	got = list.Where(Query{Imageset: imageset})
	if len(got) != 2 || got[0] != 0 || got[1] != 1 {
		t.Fatalf("where(imageset): got %v want [0 1]", got)
	}
}

func TestWhereNoMatchesReturnsEmpty(t *testing.T) {
	list := NewExperimentList(Experiment{Beam: &Beam{}})
	got := list.Where(Query{Beam: &Beam{}})
	if len(got) != 0 {
		t.Fatalf("where on foreign beam: got %v want empty", got)
	}
}
