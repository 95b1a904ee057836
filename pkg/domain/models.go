// Package domain defines the instrument model types, the Experiment record,
// and the ExperimentList container with identity-based shared-reference
// management used by beamcore.
package domain

// ModelKind identifies the experiment slot a shared reference targets.
type ModelKind string

// Slot kinds recognised by the identity index and replacement engine.
const (
	// KindBeam identifies the beam slot.
	KindBeam ModelKind = "beam"
	// KindDetector identifies the detector slot.
	KindDetector ModelKind = "detector"
	// KindGoniometer identifies the goniometer slot.
	KindGoniometer ModelKind = "goniometer"
	// KindScan identifies the scan slot.
	KindScan ModelKind = "scan"
	// KindCrystal identifies the crystal slot.
	KindCrystal ModelKind = "crystal"
	// KindObject identifies the generic profile/imageset slots, matched by
	// the referenced object's own equality contract.
	KindObject ModelKind = "object"
)

// Beam describes the incident beam used during acquisition.
type Beam struct {
	Direction       [3]float64 `json:"direction"`
	Wavelength      float64    `json:"wavelength"`
	Divergence      float64    `json:"divergence"`
	SigmaDivergence float64    `json:"sigma_divergence"`
}

// Detector describes a single-panel detector geometry.
type Detector struct {
	Name      string     `json:"name"`
	Distance  float64    `json:"distance"`
	PixelSize [2]float64 `json:"pixel_size"`
	ImageSize [2]int     `json:"image_size"`
	Trusted   [2]float64 `json:"trusted_range"`
}

// Goniometer describes the rotation hardware orientation.
type Goniometer struct {
	RotationAxis  [3]float64 `json:"rotation_axis"`
	FixedRotation [9]float64 `json:"fixed_rotation"`
}

// Scan describes the image range and oscillation of a sweep.
type Scan struct {
	ImageRange   [2]int     `json:"image_range"`
	Oscillation  [2]float64 `json:"oscillation"`
	ExposureTime float64    `json:"exposure_time"`
}

// Crystal describes the indexed lattice for an experiment.
type Crystal struct {
	UnitCell   [6]float64 `json:"unit_cell"`
	SpaceGroup string     `json:"space_group"`
	UMatrix    [9]float64 `json:"u_matrix"`
}

// Object is the capability contract for values stored in the generic
// profile and imageset slots. Equal reports whether other denotes the same
// object under whatever equality the implementation defines; the built-in
// types use pointer identity, other implementations may use value equality.
type Object interface {
	Equal(other Object) bool
}

// Imageset identifies the set of acquired images backing one or more
// experiments. Frame data itself lives in blob storage, keyed by the paths
// recorded here.
type Imageset struct {
	ID       string   `json:"id"`
	Template string   `json:"template"`
	Paths    []string `json:"paths,omitempty"`
}

// Equal reports pointer identity: two references are equal only when they
// denote the same Imageset instance.
func (s *Imageset) Equal(other Object) bool {
	o, ok := other.(*Imageset)
	return ok && o == s
}

// Profile holds opaque profile-model parameters attached to an experiment.
type Profile struct {
	Name       string             `json:"name"`
	Parameters map[string]float64 `json:"parameters,omitempty"`
}

// Equal reports pointer identity, matching the Imageset contract.
func (p *Profile) Equal(other Object) bool {
	o, ok := other.(*Profile)
	return ok && o == p
}
