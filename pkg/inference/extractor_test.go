package inference

import (
	"errors"
	"image"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"IntelliguardGolang/pkg/facematch"
	"IntelliguardGolang/pkg/ppe"
)

// fakeClient answers face frames from a queue, one response per call.
type fakeClient struct {
	mu        sync.Mutex
	responses [][]FaceObservation
	err       error
	calls     int
}

func (f *fakeClient) ProcessPPEFrame(frame []byte) ([]ppe.RawDetection, error) { return nil, nil }

func (f *fakeClient) ProcessFaceFrame(frame []byte) ([]FaceObservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	faces := f.responses[f.calls%len(f.responses)]
	f.calls++
	return faces, nil
}

func (f *fakeClient) IsConnected(channel Channel) bool { return true }
func (f *fakeClient) Reconnect(channel Channel) error  { return nil }
func (f *fakeClient) CloseConnections()                {}

func testFrame() image.Image {
	return image.NewRGBA(image.Rect(0, 0, 32, 32))
}

func TestObserveMapsBoxesAndEncodings(t *testing.T) {
	client := &fakeClient{
		responses: [][]FaceObservation{{
			{Box: [4]int{10, 50, 60, 5}, Encoding: []float64{0.1, 0.2}},
			{Box: [4]int{0, 30, 10, 20}, Encoding: []float64{0.9}},
		}},
	}
	e := NewExtractor(client)

	locations, encodings, err := e.Observe(testFrame())
	require.NoError(t, err)
	require.Len(t, locations, 2)
	require.Len(t, encodings, 2)
	assert.Equal(t, facematch.Rect{Top: 10, Right: 50, Bottom: 60, Left: 5}, locations[0])
	assert.Equal(t, facematch.Encoding{0.1, 0.2}, encodings[0])
	assert.Equal(t, facematch.Encoding{0.9}, encodings[1])
	assert.Equal(t, 1, client.calls)
}

// frameKeyedClient derives the embedding from the frame it was sent, so a
// cross-wired reply is detectable.
type frameKeyedClient struct{}

func (frameKeyedClient) ProcessPPEFrame(frame []byte) ([]ppe.RawDetection, error) { return nil, nil }

func (frameKeyedClient) ProcessFaceFrame(frame []byte) ([]FaceObservation, error) {
	return []FaceObservation{
		{Box: [4]int{0, 10, 10, 0}, Encoding: []float64{float64(len(frame))}},
	}, nil
}

func (frameKeyedClient) IsConnected(channel Channel) bool { return true }
func (frameKeyedClient) Reconnect(channel Channel) error  { return nil }
func (frameKeyedClient) CloseConnections()                {}

func TestObserveKeepsConcurrentCallsApart(t *testing.T) {
	e := NewExtractor(frameKeyedClient{})

	frameA := image.NewRGBA(image.Rect(0, 0, 8, 8))
	frameB := image.NewRGBA(image.Rect(0, 0, 256, 256))

	payloadA, err := encodeFrame(frameA)
	require.NoError(t, err)
	payloadB, err := encodeFrame(frameB)
	require.NoError(t, err)
	require.NotEqual(t, len(payloadA), len(payloadB))

	// Interleaved callers on the shared extractor must each keep the
	// embedding from their own image, never a neighbour's.
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, encodings, err := e.Observe(frameA)
			assert.NoError(t, err)
			assert.Equal(t, facematch.Encoding{float64(len(payloadA))}, encodings[0])
		}()

		wg.Add(1)
		go func() {
			defer wg.Done()
			_, encodings, err := e.Observe(frameB)
			assert.NoError(t, err)
			assert.Equal(t, facematch.Encoding{float64(len(payloadB))}, encodings[0])
		}()
	}
	wg.Wait()
}

func TestObservePropagatesError(t *testing.T) {
	client := &fakeClient{err: errors.New("sidecar down")}
	e := NewExtractor(client)

	_, _, err := e.Observe(testFrame())
	assert.Error(t, err)
}
