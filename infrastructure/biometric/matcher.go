package biometric

import (
	"context"
	"errors"
	"math"

	"botosafe.io/infrastructure/logger"
)

// DescriptorLength is the dimensionality of the face descriptors the
// recognition model produces.
const DescriptorLength = 128

// MatchThreshold is the cosine-similarity acceptance floor. Raising it
// rejects more impostors at the cost of more false rejections under bad
// lighting or extreme angles.
const MatchThreshold = 0.90

var ErrInvalidEmbeddingFormat = errors.New("invalid embedding format")

type MatchReason string

const (
	ReasonNoEmbeddingOnFile MatchReason = "NoEmbeddingOnFile"
	ReasonBelowThreshold    MatchReason = "BelowThreshold"
	ReasonNoFaceDetected    MatchReason = "NoFaceDetected"
	ReasonExtractionError   MatchReason = "ExtractionError"
)

// MatchResult is the per-attempt verification outcome. It is never
// persisted.
type MatchResult struct {
	Matched    bool        `json:"matched"`
	Similarity float64     `json:"similarity"`
	Reason     MatchReason `json:"reason,omitempty"`
}

// EmbeddingStore is the persistence port for enrolled descriptors. FindByOwner
// returns nil with no error when the owner has never enrolled.
type EmbeddingStore interface {
	FindByOwner(ctx context.Context, ownerID string) ([]float64, error)
	Upsert(ctx context.Context, ownerID string, embedding []float64) (created bool, err error)
}

// Matcher normalizes, persists and compares face descriptors against a fixed
// similarity threshold.
type Matcher struct {
	Store      EmbeddingStore
	Threshold  float64
	Dimensions int
}

func NewMatcher(store EmbeddingStore) *Matcher {
	return &Matcher{
		Store:      store,
		Threshold:  MatchThreshold,
		Dimensions: DescriptorLength,
	}
}

// Enroll normalizes the raw descriptor and upserts it for the owner. A prior
// enrollment is overwritten wholesale; created reports whether this was a
// first enrollment.
func (m *Matcher) Enroll(ctx context.Context, ownerID string, raw []float64) (created bool, err error) {
	if err := m.validate(raw); err != nil {
		return false, err
	}
	return m.Store.Upsert(ctx, ownerID, Normalize(raw))
}

// Match compares the probe descriptor against the owner's enrolled one. A
// missing enrollment and a below-threshold similarity are both ordinary
// unmatched outcomes, not errors; err is reserved for storage faults and
// malformed probes.
func (m *Matcher) Match(ctx context.Context, ownerID string, probe []float64) (*MatchResult, error) {
	if err := m.validate(probe); err != nil {
		return nil, err
	}

	stored, err := m.Store.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return &MatchResult{Matched: false, Reason: ReasonNoEmbeddingOnFile}, nil
	}

	similarity := CosineSimilarity(Normalize(probe), Normalize(stored))
	if similarity < m.Threshold {
		return &MatchResult{Matched: false, Similarity: similarity, Reason: ReasonBelowThreshold}, nil
	}
	return &MatchResult{Matched: true, Similarity: similarity}, nil
}

func (m *Matcher) validate(embedding []float64) error {
	if m.Dimensions > 0 && len(embedding) != m.Dimensions {
		return ErrInvalidEmbeddingFormat
	}
	if len(embedding) == 0 {
		return ErrInvalidEmbeddingFormat
	}
	for _, component := range embedding {
		if math.IsNaN(component) || math.IsInf(component, 0) {
			return ErrInvalidEmbeddingFormat
		}
	}
	return nil
}

// Normalize divides every component by the vector's Euclidean norm. An
// all-zero vector is returned unchanged; upstream extraction failure is the
// caller's problem to surface.
func Normalize(embedding []float64) []float64 {
	var sum float64
	for _, component := range embedding {
		sum += component * component
	}
	norm := math.Sqrt(sum)
	if norm == 0 {
		return embedding
	}
	normalized := make([]float64, len(embedding))
	for i, component := range embedding {
		normalized[i] = component / norm
	}
	return normalized
}

// CosineSimilarity computes dot(a,b) / (|a|*|b|). Mismatched dimensions
// yield 0.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		logger.Error("embedding dimension mismatch", logger.LoggerOptions{
			Key: "dimensions",
			Data: map[string]int{
				"a": len(a),
				"b": len(b),
			},
		})
		return 0.0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0.0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
