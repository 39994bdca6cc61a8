// Package matcher runs the face comparison loop: every face of an uploaded
// image against every face of each selected bulk image.
package matcher

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mkotas/face-match/internal/config"
	"github.com/mkotas/face-match/internal/recognizer"
	"github.com/mkotas/face-match/internal/store"
)

// Result is one matched (uploaded face, bulk face) pair.
type Result struct {
	UploadedFaceIndex      int     `json:"uploaded_face_index"`
	MatchedFaceIndexInBulk int     `json:"matched_face_index_in_bulk"`
	MatchedFile            string  `json:"matched_file"`
	MatchedID              any     `json:"matched_id"`
	Confidence             string  `json:"confidence"`
	FaceDistance           float64 `json:"face_distance"`
}

// Matcher compares uploaded face encodings against candidate images from
// the bulk area. Bulk images are re-read and re-encoded on every call;
// nothing is cached between requests.
type Matcher struct {
	store     *store.FileStore
	encoder   recognizer.Encoder
	tolerance float64
	threshold float64
	logger    *slog.Logger
}

// New creates a matcher with the configured thresholds.
func New(st *store.FileStore, enc recognizer.Encoder, cfg config.MatchingConfig, logger *slog.Logger) *Matcher {
	return &Matcher{
		store:     st,
		encoder:   enc,
		tolerance: cfg.Tolerance,
		threshold: cfg.DistanceThreshold,
		logger:    logger,
	}
}

// Match runs uploaded encodings against each candidate in mapping order.
// Candidates that are missing, unreadable or contain no faces are logged
// and skipped; they never fail the whole run. A pair is reported when the
// comparison passes the tolerance AND the distance stays strictly below
// the distance threshold.
func (m *Matcher) Match(ctx context.Context, uploaded []recognizer.Encoding, candidates *Candidates) []Result {
	var results []Result

	for _, name := range candidates.Names() {
		if !m.store.Exists(store.AreaBulk, name) {
			m.logger.Warn("bulk image not found", "file", name)
			continue
		}

		data, err := m.store.Read(store.AreaBulk, name)
		if err != nil {
			m.logger.Warn("failed to read bulk image", "file", name, "error", err)
			continue
		}

		bulkEncodings, err := m.encoder.DetectAndEncode(ctx, data)
		if err != nil {
			m.logger.Warn("error processing bulk image", "file", name, "error", err)
			continue
		}
		if len(bulkEncodings) == 0 {
			m.logger.Warn("no faces detected in bulk image", "file", name)
			continue
		}

		for i, uploadedEnc := range uploaded {
			for j, bulkEnc := range bulkEncodings {
				distance := recognizer.Distance(bulkEnc, uploadedEnc)
				// The tolerance match is necessary but not sufficient;
				// the tighter distance threshold is the actual gate.
				if !recognizer.Compare(bulkEnc, uploadedEnc, m.tolerance) || distance >= m.threshold {
					continue
				}

				result := Result{
					UploadedFaceIndex:      i,
					MatchedFaceIndexInBulk: j,
					MatchedFile:            name,
					MatchedID:              candidates.ID(name),
					Confidence:             FormatConfidence(distance),
					FaceDistance:           distance,
				}
				results = append(results, result)
				m.logger.Info("match found",
					"file", name,
					"uploaded_face", i,
					"bulk_face", j,
					"distance", distance,
					"confidence", result.Confidence,
				)
			}
		}
	}

	return results
}

// FormatConfidence renders a face distance as the percentage string
// reported to callers, e.g. "80.00 %".
func FormatConfidence(distance float64) string {
	return fmt.Sprintf("%.2f %%", recognizer.Confidence(distance))
}
