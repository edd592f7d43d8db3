package facematch

import (
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeExtractor returns canned locations and encodings, standing in for the
// real face model.
type fakeExtractor struct {
	locations []Rect
	encodings []Encoding
	err       error
}

func (f *fakeExtractor) Observe(_ image.Image) ([]Rect, []Encoding, error) {
	return f.locations, f.encodings, f.err
}

func testImage() image.Image {
	return image.NewRGBA(image.Rect(0, 0, 4, 4))
}

// encodingAt builds a 128-d vector whose distance from the zero vector is v.
func encodingAt(v float64) Encoding {
	e := make(Encoding, EncodingLength)
	e[0] = v
	return e
}

func TestEncode_NoFace(t *testing.T) {
	m := NewMatcher(&fakeExtractor{}, NewRegistry(), 0)

	_, err := m.Encode(testImage())
	assert.ErrorIs(t, err, ErrNoFaceDetected)
}

func TestEncode_MultipleFaces(t *testing.T) {
	ex := &fakeExtractor{locations: []Rect{{0, 10, 10, 0}, {20, 30, 30, 20}}}
	m := NewMatcher(ex, NewRegistry(), 0)

	_, err := m.Encode(testImage())
	assert.ErrorIs(t, err, ErrMultipleFacesDetected)
}

func TestEncode_ExtractionFailure(t *testing.T) {
	ex := &fakeExtractor{err: errors.New("model crashed")}
	m := NewMatcher(ex, NewRegistry(), 0)

	_, err := m.Encode(testImage())
	assert.ErrorIs(t, err, ErrFeatureExtraction)
}

func TestEncode_SingleFace(t *testing.T) {
	ex := &fakeExtractor{
		locations: []Rect{{0, 10, 10, 0}},
		encodings: []Encoding{encodingAt(0.3)},
	}
	m := NewMatcher(ex, NewRegistry(), 0)

	encoding, err := m.Encode(testImage())
	require.NoError(t, err)
	assert.Len(t, encoding, EncodingLength)
}

func TestRecognize_EmptyRegistry(t *testing.T) {
	ex := &fakeExtractor{
		locations: []Rect{{0, 10, 10, 0}},
		encodings: []Encoding{encodingAt(0.1)},
	}
	m := NewMatcher(ex, NewRegistry(), 0)

	_, err := m.Recognize(testImage())
	assert.ErrorIs(t, err, ErrNotRecognized)
}

func TestRecognize_NoFace(t *testing.T) {
	m := NewMatcher(&fakeExtractor{}, NewRegistry(), 0)

	_, err := m.Recognize(testImage())
	assert.ErrorIs(t, err, ErrNoFaceDetected)
}

func TestRecognize_WithinTolerance(t *testing.T) {
	registry := NewRegistry()
	registry.Reload([]Enrollment{{IdentityKey: "alice", Encoding: encodingAt(0)}})

	ex := &fakeExtractor{
		locations: []Rect{{5, 40, 40, 5}},
		encodings: []Encoding{encodingAt(0.4)},
	}
	m := NewMatcher(ex, registry, 0.6)

	match, err := m.Recognize(testImage())
	require.NoError(t, err)
	assert.Equal(t, "alice", match.IdentityKey)
	assert.InDelta(t, 0.6, match.Confidence, 1e-9)
	assert.Equal(t, Rect{5, 40, 40, 5}, match.Location)
}

func TestRecognize_OutsideTolerance(t *testing.T) {
	registry := NewRegistry()
	registry.Reload([]Enrollment{{IdentityKey: "alice", Encoding: encodingAt(0)}})

	ex := &fakeExtractor{
		locations: []Rect{{0, 10, 10, 0}},
		encodings: []Encoding{encodingAt(0.8)},
	}
	m := NewMatcher(ex, registry, 0.6)

	_, err := m.Recognize(testImage())
	assert.ErrorIs(t, err, ErrNotRecognized)
}

func TestRecognize_ClosestEnrollmentWins(t *testing.T) {
	registry := NewRegistry()
	registry.Reload([]Enrollment{
		{IdentityKey: "bob", Encoding: encodingAt(0.5)},
		{IdentityKey: "alice", Encoding: encodingAt(0)},
	})

	ex := &fakeExtractor{
		locations: []Rect{{0, 10, 10, 0}},
		encodings: []Encoding{encodingAt(0.1)},
	}
	m := NewMatcher(ex, registry, 0.6)

	match, err := m.Recognize(testImage())
	require.NoError(t, err)
	assert.Equal(t, "alice", match.IdentityKey)
}

func TestRecognize_EqualDistanceTieGoesToLowestKey(t *testing.T) {
	registry := NewRegistry()
	registry.Reload([]Enrollment{
		{IdentityKey: "zed", Encoding: encodingAt(0.2)},
		{IdentityKey: "amy", Encoding: encodingAt(0.4)},
	})

	// Query sits exactly between the two enrollments.
	ex := &fakeExtractor{
		locations: []Rect{{0, 10, 10, 0}},
		encodings: []Encoding{encodingAt(0.3)},
	}
	m := NewMatcher(ex, registry, 0.6)

	match, err := m.Recognize(testImage())
	require.NoError(t, err)
	assert.Equal(t, "amy", match.IdentityKey)
}

func TestRegistry_ReloadReplacesContents(t *testing.T) {
	registry := NewRegistry()
	registry.Reload([]Enrollment{{IdentityKey: "alice", Encoding: encodingAt(0)}})

	ex := &fakeExtractor{
		locations: []Rect{{0, 10, 10, 0}},
		encodings: []Encoding{encodingAt(0.1)},
	}
	m := NewMatcher(ex, registry, 0.6)

	match, err := m.Recognize(testImage())
	require.NoError(t, err)
	assert.Equal(t, "alice", match.IdentityKey)

	// A reload with a different population must leave no residue.
	registry.Reload([]Enrollment{{IdentityKey: "carol", Encoding: encodingAt(3)}})

	_, err = m.Recognize(testImage())
	assert.ErrorIs(t, err, ErrNotRecognized)
	assert.Equal(t, 1, registry.Len())
}

func TestRegistry_ReloadSkipsEmptyEncodings(t *testing.T) {
	registry := NewRegistry()
	registry.Reload([]Enrollment{
		{IdentityKey: "alice", Encoding: encodingAt(0)},
		{IdentityKey: "ghost"},
	})

	assert.Equal(t, 1, registry.Len())
}

func TestRoundTrip_SameEncodingMatchesWithFullConfidence(t *testing.T) {
	enrolled := encodingAt(0.25)

	registry := NewRegistry()
	registry.Reload([]Enrollment{{IdentityKey: "alice", Encoding: enrolled}})

	ex := &fakeExtractor{
		locations: []Rect{{0, 10, 10, 0}},
		encodings: []Encoding{enrolled},
	}
	m := NewMatcher(ex, registry, 0.6)

	match, err := m.Recognize(testImage())
	require.NoError(t, err)
	assert.Equal(t, "alice", match.IdentityKey)
	assert.InDelta(t, 1.0, match.Confidence, 1e-9)
}

func TestDistance_LengthMismatch(t *testing.T) {
	_, err := Distance(make(Encoding, 64), make(Encoding, EncodingLength))
	assert.Error(t, err)
}
