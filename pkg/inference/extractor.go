package inference

import (
	"bytes"
	"image"
	"image/jpeg"

	"IntelliguardGolang/pkg/facematch"
)

// Extractor adapts the face encoding channel into the facematch.Extractor
// boundary. The sidecar returns boxes and embeddings in one round trip and
// every Observe call makes its own, so the adapter holds no state and is
// safe to share across concurrent requests.
type Extractor struct {
	client IInference
}

func NewExtractor(client IInference) *Extractor {
	return &Extractor{client: client}
}

func (e *Extractor) Observe(img image.Image) ([]facematch.Rect, []facematch.Encoding, error) {
	frame, err := encodeFrame(img)
	if err != nil {
		return nil, nil, err
	}

	faces, err := e.client.ProcessFaceFrame(frame)
	if err != nil {
		return nil, nil, err
	}

	locations := make([]facematch.Rect, 0, len(faces))
	encodings := make([]facematch.Encoding, 0, len(faces))
	for _, f := range faces {
		locations = append(locations, facematch.Rect{
			Top:    f.Box[0],
			Right:  f.Box[1],
			Bottom: f.Box[2],
			Left:   f.Box[3],
		})
		encodings = append(encodings, facematch.Encoding(f.Encoding))
	}

	return locations, encodings, nil
}

func encodeFrame(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
