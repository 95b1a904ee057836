package domain

import "fmt"

// Experiment records the instrument configuration used for one acquisition.
// The five typed slots hold shared model instances compared by pointer
// identity: arbitrarily many experiments, in any number of lists, may hold
// the same instance. The profile and imageset slots hold opaque objects
// compared by their own equality contract. Any slot may be nil.
type Experiment struct {
	Beam       *Beam
	Detector   *Detector
	Goniometer *Goniometer
	Scan       *Scan
	Crystal    *Crystal
	Profile    Object
	Imageset   Object
}

// kindOf classifies a reference argument, returning the slot it targets.
// Typed nil pointers are valid and match experiments whose slot is absent.
func kindOf(ref any) (ModelKind, error) {
	switch ref.(type) {
	case *Beam:
		return KindBeam, nil
	case *Detector:
		return KindDetector, nil
	case *Goniometer:
		return KindGoniometer, nil
	case *Scan:
		return KindScan, nil
	case *Crystal:
		return KindCrystal, nil
	case Object:
		return KindObject, nil
	default:
		return "", UnsupportedModelError{Type: fmt.Sprintf("%T", ref)}
	}
}

// Contains reports whether any slot of the experiment references ref, by
// pointer identity for the five typed kinds or by the object's equality
// contract for the generic slots.
func (e *Experiment) Contains(ref any) (bool, error) {
	kind, err := kindOf(ref)
	if err != nil {
		return false, err
	}
	return e.holds(kind, ref), nil
}

func (e *Experiment) holds(kind ModelKind, ref any) bool {
	switch kind {
	case KindBeam:
		return e.Beam == ref.(*Beam)
	case KindDetector:
		return e.Detector == ref.(*Detector)
	case KindGoniometer:
		return e.Goniometer == ref.(*Goniometer)
	case KindScan:
		return e.Scan == ref.(*Scan)
	case KindCrystal:
		return e.Crystal == ref.(*Crystal)
	case KindObject:
		obj := ref.(Object)
		if e.Profile != nil && e.Profile.Equal(obj) {
			return true
		}
		return e.Imageset != nil && e.Imageset.Equal(obj)
	}
	return false
}

// retarget swaps every slot of the given kind that matches old onto new.
// Both arguments must already be classified as kind.
func (e *Experiment) retarget(kind ModelKind, old, new any) {
	switch kind {
	case KindBeam:
		if e.Beam == old.(*Beam) {
			e.Beam = new.(*Beam)
		}
	case KindDetector:
		if e.Detector == old.(*Detector) {
			e.Detector = new.(*Detector)
		}
	case KindGoniometer:
		if e.Goniometer == old.(*Goniometer) {
			e.Goniometer = new.(*Goniometer)
		}
	case KindScan:
		if e.Scan == old.(*Scan) {
			e.Scan = new.(*Scan)
		}
	case KindCrystal:
		if e.Crystal == old.(*Crystal) {
			e.Crystal = new.(*Crystal)
		}
	case KindObject:
		obj, repl := old.(Object), new.(Object)
		if e.Profile != nil && e.Profile.Equal(obj) {
			e.Profile = repl
		}
		if e.Imageset != nil && e.Imageset.Equal(obj) {
			e.Imageset = repl
		}
	}
}
