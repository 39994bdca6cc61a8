// Package recognizer isolates the external face recognition service behind
// a narrow interface: detect-and-encode turning an image into face encodings,
// plus distance math over those encodings. The matching loop never touches
// the vision model directly, so it stays testable with stub vectors.
package recognizer

import (
	"context"
	"math"
)

// Encoding is a face feature vector produced by the encoder service,
// one per detected face, in detection order.
type Encoding []float32

// Encoder detects faces in an image and returns one encoding per face.
// An image without faces yields an empty slice and no error.
type Encoder interface {
	DetectAndEncode(ctx context.Context, imageData []byte) ([]Encoding, error)
}

// Distance returns the euclidean distance between two encodings.
// Mismatched or empty vectors yield +Inf so they can never match.
func Distance(a, b Encoding) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return math.Inf(1)
	}
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}

// Compare reports whether the candidate encoding matches the known encoding
// within the given tolerance (distance <= tolerance).
func Compare(known, candidate Encoding, tolerance float64) bool {
	return Distance(known, candidate) <= tolerance
}

// Confidence converts a face distance into a percentage score, clamped at
// zero for distances beyond 1.
func Confidence(distance float64) float64 {
	return math.Max(0, 1.0-distance) * 100
}
