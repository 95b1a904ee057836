package domain

import "fmt"

// NewSharedImagesetRule returns the default rule requiring experiments that
// share an imageset to agree on the instrument models that imageset
// physically determines: beam, detector, goniometer and scan. Crystal and
// profile may differ across the group, since several lattices can be
// indexed from one set of images. Experiments without an imageset form
// singleton groups and are trivially consistent.
func NewSharedImagesetRule() ConsistencyRule {
	return sharedImagesetRule{}
}

type sharedImagesetRule struct{}

func (sharedImagesetRule) Name() string { return "shared_imageset" }

func (sharedImagesetRule) Evaluate(list *ExperimentList) Result {
	type group struct {
		imageset Object
		indices  []int
	}
	experiments := list.Experiments()

	// Groups are keyed by the imageset's own equality contract, not map
	// keys, so value-equality Object implementations group correctly.
	var groups []group
	for i, e := range experiments {
		if e.Imageset == nil {
			continue
		}
		placed := false
		for gi := range groups {
			if groups[gi].imageset.Equal(e.Imageset) {
				groups[gi].indices = append(groups[gi].indices, i)
				placed = true
				break
			}
		}
		if !placed {
			groups = append(groups, group{imageset: e.Imageset, indices: []int{i}})
		}
	}

	res := Result{}
	for _, g := range groups {
		if len(g.indices) < 2 {
			continue
		}
		first := experiments[g.indices[0]]
		for _, idx := range g.indices[1:] {
			e := experiments[idx]
			for _, slot := range []struct {
				kind     ModelKind
				disagree bool
			}{
				{KindBeam, e.Beam != first.Beam},
				{KindDetector, e.Detector != first.Detector},
				{KindGoniometer, e.Goniometer != first.Goniometer},
				{KindScan, e.Scan != first.Scan},
			} {
				if slot.disagree {
					res.Violations = append(res.Violations, Violation{
						Rule: "shared_imageset",
						Message: fmt.Sprintf(
							"experiments %d and %d share an imageset but hold different %s models",
							g.indices[0], idx, slot.kind),
						Indices: []int{g.indices[0], idx},
					})
				}
			}
		}
	}
	return res
}
