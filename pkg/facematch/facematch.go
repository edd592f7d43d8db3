package facematch

import (
	"errors"
	"fmt"
	"image"
	"sort"
	"sync"

	"gonum.org/v1/gonum/floats"
)

// EncodingLength is the embedding size produced by the reference face model.
const EncodingLength = 128

// DefaultTolerance is the maximum embedding distance accepted as a match.
const DefaultTolerance = 0.6

var (
	ErrNoFaceDetected        = errors.New("no face detected in the image")
	ErrMultipleFacesDetected = errors.New("multiple faces detected, ensure only one face is visible")
	ErrFeatureExtraction     = errors.New("could not extract face features")
	ErrNotRecognized         = errors.New("face not recognized")
)

// Encoding is a fixed-length embedding vector for one face.
type Encoding []float64

// Rect locates a face within the source image.
type Rect struct {
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
	Left   int `json:"left"`
}

// Enrollment pairs an identity with its stored embedding.
type Enrollment struct {
	IdentityKey string
	Encoding    Encoding
}

// Match is the outcome of a successful recognition query.
type Match struct {
	IdentityKey string  `json:"identity_key"`
	Confidence  float64 `json:"confidence"`
	Location    Rect    `json:"face_location"`
}

// Extractor is the black-box face model boundary: one call locates every
// face in a decoded image and computes its embedding. Locations and
// encodings come from the same model pass, index i of each describes the
// same face, and nothing is carried between calls, so one Extractor can
// serve concurrent requests.
type Extractor interface {
	Observe(img image.Image) ([]Rect, []Encoding, error)
}

// Registry holds the enrolled encodings. Reload replaces its contents in one
// atomic swap so concurrent recognition observes either the old set or the
// new set, never a half-built one.
type Registry struct {
	mu      sync.RWMutex
	entries []Enrollment
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Reload discards the current registry contents and installs the supplied
// enrollments. Entries are sorted by identity key so that equal-distance
// matches resolve deterministically to the lowest key.
func (r *Registry) Reload(enrollments []Enrollment) {
	entries := make([]Enrollment, 0, len(enrollments))
	for _, e := range enrollments {
		if len(e.Encoding) == 0 {
			continue
		}
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].IdentityKey < entries[j].IdentityKey
	})

	r.mu.Lock()
	r.entries = entries
	r.mu.Unlock()
}

// Snapshot returns the current enrollment set for a consistent read.
func (r *Registry) Snapshot() []Enrollment {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.entries
}

// Len reports the number of enrolled identities.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Matcher answers enrollment and recognition queries against a Registry.
type Matcher struct {
	extractor Extractor
	registry  *Registry
	tolerance float64
}

func NewMatcher(extractor Extractor, registry *Registry, tolerance float64) *Matcher {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	return &Matcher{
		extractor: extractor,
		registry:  registry,
		tolerance: tolerance,
	}
}

// Registry exposes the backing registry so callers can trigger reloads after
// enrollment changes.
func (m *Matcher) Registry() *Registry {
	return m.registry
}

// Encode computes the embedding for the single face in img. Enrollment
// requires exactly one visible face.
func (m *Matcher) Encode(img image.Image) (Encoding, error) {
	locations, encodings, err := m.extractor.Observe(img)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeatureExtraction, err)
	}

	if len(locations) == 0 {
		return nil, ErrNoFaceDetected
	}
	if len(locations) > 1 {
		return nil, ErrMultipleFacesDetected
	}
	if len(encodings) == 0 {
		return nil, ErrFeatureExtraction
	}

	return encodings[0], nil
}

// Recognize finds the enrolled identity closest to a face in img. Every
// detected face is tried in order and the first one with an enrollment
// within tolerance wins. Confidence is 1 minus the embedding distance.
func (m *Matcher) Recognize(img image.Image) (Match, error) {
	locations, encodings, err := m.extractor.Observe(img)
	if err != nil {
		return Match{}, fmt.Errorf("%w: %v", ErrFeatureExtraction, err)
	}
	if len(locations) == 0 {
		return Match{}, ErrNoFaceDetected
	}
	if len(encodings) == 0 {
		return Match{}, ErrFeatureExtraction
	}

	enrollments := m.registry.Snapshot()

	for i, encoding := range encodings {
		best, distance, ok := closestWithin(enrollments, encoding, m.tolerance)
		if !ok {
			continue
		}

		location := Rect{}
		if i < len(locations) {
			location = locations[i]
		}

		return Match{
			IdentityKey: best.IdentityKey,
			Confidence:  1 - distance,
			Location:    location,
		}, nil
	}

	return Match{}, ErrNotRecognized
}

// closestWithin scans enrollments for the minimum-distance entry no farther
// than tolerance. Enrollments are sorted by identity key, so an exact
// distance tie goes to the lowest key.
func closestWithin(enrollments []Enrollment, encoding Encoding, tolerance float64) (Enrollment, float64, bool) {
	var (
		best         Enrollment
		bestDistance float64
		found        bool
	)

	for _, enrollment := range enrollments {
		d, err := Distance(enrollment.Encoding, encoding)
		if err != nil {
			continue
		}
		if d > tolerance {
			continue
		}
		if !found || d < bestDistance {
			best = enrollment
			bestDistance = d
			found = true
		}
	}

	return best, bestDistance, found
}

// Distance is the Euclidean distance between two encodings.
func Distance(a, b Encoding) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("encoding length mismatch: %d vs %d", len(a), len(b))
	}
	return floats.Distance(a, b, 2), nil
}
