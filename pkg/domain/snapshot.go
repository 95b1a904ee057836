package domain

import (
	"encoding/json"
	"fmt"
)

// Snapshot is the structured, format-agnostic representation of an
// experiment list. Each model instance appears exactly once in its table;
// experiment records refer to table positions, so decoding restores the
// sharing present when the snapshot was taken.
type Snapshot struct {
	Experiments []ExperimentRecord `json:"experiment"`
	Beams       []Beam             `json:"beam,omitempty"`
	Detectors   []Detector         `json:"detector,omitempty"`
	Goniometers []Goniometer       `json:"goniometer,omitempty"`
	Scans       []Scan             `json:"scan,omitempty"`
	Crystals    []Crystal          `json:"crystal,omitempty"`
	Profiles    []Profile          `json:"profile,omitempty"`
	Imagesets   []Imageset         `json:"imageset,omitempty"`
}

// ExperimentRecord references models by table position. Nil means the slot
// is absent.
type ExperimentRecord struct {
	Beam       *int `json:"beam,omitempty"`
	Detector   *int `json:"detector,omitempty"`
	Goniometer *int `json:"goniometer,omitempty"`
	Scan       *int `json:"scan,omitempty"`
	Crystal    *int `json:"crystal,omitempty"`
	Profile    *int `json:"profile,omitempty"`
	Imageset   *int `json:"imageset,omitempty"`
}

// Export builds a snapshot of the list. Model instances are deduplicated by
// identity. Generic slots must hold the built-in *Profile and *Imageset
// types; other Object implementations cannot be carried by the structured
// representation and fail the export before anything is written.
func (l *ExperimentList) Export() (Snapshot, error) {
	snap := Snapshot{Experiments: make([]ExperimentRecord, 0, len(l.items))}
	beams := map[*Beam]int{}
	detectors := map[*Detector]int{}
	goniometers := map[*Goniometer]int{}
	scans := map[*Scan]int{}
	crystals := map[*Crystal]int{}
	profiles := map[*Profile]int{}
	imagesets := map[*Imageset]int{}

	for i, e := range l.items {
		rec := ExperimentRecord{}
		if e.Beam != nil {
			idx, ok := beams[e.Beam]
			if !ok {
				idx = len(snap.Beams)
				snap.Beams = append(snap.Beams, *e.Beam)
				beams[e.Beam] = idx
			}
			rec.Beam = &idx
		}
		if e.Detector != nil {
			idx, ok := detectors[e.Detector]
			if !ok {
				idx = len(snap.Detectors)
				snap.Detectors = append(snap.Detectors, *e.Detector)
				detectors[e.Detector] = idx
			}
			rec.Detector = &idx
		}
		if e.Goniometer != nil {
			idx, ok := goniometers[e.Goniometer]
			if !ok {
				idx = len(snap.Goniometers)
				snap.Goniometers = append(snap.Goniometers, *e.Goniometer)
				goniometers[e.Goniometer] = idx
			}
			rec.Goniometer = &idx
		}
		if e.Scan != nil {
			idx, ok := scans[e.Scan]
			if !ok {
				idx = len(snap.Scans)
				snap.Scans = append(snap.Scans, *e.Scan)
				scans[e.Scan] = idx
			}
			rec.Scan = &idx
		}
		if e.Crystal != nil {
			idx, ok := crystals[e.Crystal]
			if !ok {
				idx = len(snap.Crystals)
				snap.Crystals = append(snap.Crystals, *e.Crystal)
				crystals[e.Crystal] = idx
			}
			rec.Crystal = &idx
		}
		if e.Profile != nil {
			p, ok := e.Profile.(*Profile)
			if !ok {
				return Snapshot{}, fmt.Errorf("experiment %d: profile %T cannot be exported", i, e.Profile)
			}
			idx, seen := profiles[p]
			if !seen {
				idx = len(snap.Profiles)
				snap.Profiles = append(snap.Profiles, *p)
				profiles[p] = idx
			}
			rec.Profile = &idx
		}
		if e.Imageset != nil {
			s, ok := e.Imageset.(*Imageset)
			if !ok {
				return Snapshot{}, fmt.Errorf("experiment %d: imageset %T cannot be exported", i, e.Imageset)
			}
			idx, seen := imagesets[s]
			if !seen {
				idx = len(snap.Imagesets)
				snap.Imagesets = append(snap.Imagesets, *s)
				imagesets[s] = idx
			}
			rec.Imageset = &idx
		}
		snap.Experiments = append(snap.Experiments, rec)
	}
	return snap, nil
}

// FromSnapshot reconstructs an experiment list, restoring shared
// references: records naming the same table position end up sharing one
// instance.
func FromSnapshot(snap Snapshot) (*ExperimentList, error) {
	beams := make([]*Beam, len(snap.Beams))
	for i := range snap.Beams {
		b := snap.Beams[i]
		beams[i] = &b
	}
	detectors := make([]*Detector, len(snap.Detectors))
	for i := range snap.Detectors {
		d := snap.Detectors[i]
		detectors[i] = &d
	}
	goniometers := make([]*Goniometer, len(snap.Goniometers))
	for i := range snap.Goniometers {
		g := snap.Goniometers[i]
		goniometers[i] = &g
	}
	scans := make([]*Scan, len(snap.Scans))
	for i := range snap.Scans {
		s := snap.Scans[i]
		scans[i] = &s
	}
	crystals := make([]*Crystal, len(snap.Crystals))
	for i := range snap.Crystals {
		c := snap.Crystals[i]
		crystals[i] = &c
	}
	profiles := make([]*Profile, len(snap.Profiles))
	for i := range snap.Profiles {
		p := snap.Profiles[i]
		profiles[i] = &p
	}
	imagesets := make([]*Imageset, len(snap.Imagesets))
	for i := range snap.Imagesets {
		s := snap.Imagesets[i]
		imagesets[i] = &s
	}

	list := &ExperimentList{items: make([]*Experiment, 0, len(snap.Experiments))}
	for i, rec := range snap.Experiments {
		e := Experiment{}
		if rec.Beam != nil {
			if *rec.Beam < 0 || *rec.Beam >= len(beams) {
				return nil, fmt.Errorf("experiment %d: beam %w", i, IndexError{Index: *rec.Beam, Size: len(beams)})
			}
			e.Beam = beams[*rec.Beam]
		}
		if rec.Detector != nil {
			if *rec.Detector < 0 || *rec.Detector >= len(detectors) {
				return nil, fmt.Errorf("experiment %d: detector %w", i, IndexError{Index: *rec.Detector, Size: len(detectors)})
			}
			e.Detector = detectors[*rec.Detector]
		}
		if rec.Goniometer != nil {
			if *rec.Goniometer < 0 || *rec.Goniometer >= len(goniometers) {
				return nil, fmt.Errorf("experiment %d: goniometer %w", i, IndexError{Index: *rec.Goniometer, Size: len(goniometers)})
			}
			e.Goniometer = goniometers[*rec.Goniometer]
		}
		if rec.Scan != nil {
			if *rec.Scan < 0 || *rec.Scan >= len(scans) {
				return nil, fmt.Errorf("experiment %d: scan %w", i, IndexError{Index: *rec.Scan, Size: len(scans)})
			}
			e.Scan = scans[*rec.Scan]
		}
		if rec.Crystal != nil {
			if *rec.Crystal < 0 || *rec.Crystal >= len(crystals) {
				return nil, fmt.Errorf("experiment %d: crystal %w", i, IndexError{Index: *rec.Crystal, Size: len(crystals)})
			}
			e.Crystal = crystals[*rec.Crystal]
		}
		if rec.Profile != nil {
			if *rec.Profile < 0 || *rec.Profile >= len(profiles) {
				return nil, fmt.Errorf("experiment %d: profile %w", i, IndexError{Index: *rec.Profile, Size: len(profiles)})
			}
			e.Profile = profiles[*rec.Profile]
		}
		if rec.Imageset != nil {
			if *rec.Imageset < 0 || *rec.Imageset >= len(imagesets) {
				return nil, fmt.Errorf("experiment %d: imageset %w", i, IndexError{Index: *rec.Imageset, Size: len(imagesets)})
			}
			e.Imageset = imagesets[*rec.Imageset]
		}
		list.items = append(list.items, &e)
	}
	return list, nil
}

// MarshalJSON encodes the list through its snapshot representation.
func (l ExperimentList) MarshalJSON() ([]byte, error) {
	snap, err := l.Export()
	if err != nil {
		return nil, err
	}
	return json.Marshal(snap)
}

// UnmarshalJSON decodes a snapshot and rebuilds the list from it.
func (l *ExperimentList) UnmarshalJSON(data []byte) error {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return err
	}
	decoded, err := FromSnapshot(snap)
	if err != nil {
		return err
	}
	*l = *decoded
	return nil
}
