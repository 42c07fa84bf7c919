package biometric

import (
	"context"
	"errors"
	"math"
	"testing"
)

type memoryEmbeddingStore struct {
	embeddings map[string][]float64
	err        error
}

func newMemoryEmbeddingStore() *memoryEmbeddingStore {
	return &memoryEmbeddingStore{embeddings: map[string][]float64{}}
}

func (s *memoryEmbeddingStore) FindByOwner(_ context.Context, ownerID string) ([]float64, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.embeddings[ownerID], nil
}

func (s *memoryEmbeddingStore) Upsert(_ context.Context, ownerID string, embedding []float64) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	_, existed := s.embeddings[ownerID]
	s.embeddings[ownerID] = embedding
	return !existed, nil
}

func testMatcher(store EmbeddingStore, dimensions int) *Matcher {
	matcher := NewMatcher(store)
	matcher.Dimensions = dimensions
	return matcher
}

func TestNormalize(t *testing.T) {
	t.Run("produces a unit vector", func(t *testing.T) {
		normalized := Normalize([]float64{3, 4})
		if !almostEqual(normalized[0], 0.6) || !almostEqual(normalized[1], 0.8) {
			t.Errorf("unexpected normalized vector %v", normalized)
		}
		norm := math.Hypot(normalized[0], normalized[1])
		if !almostEqual(norm, 1) {
			t.Errorf("expected unit norm, got %v", norm)
		}
	})

	t.Run("zero vector is returned unchanged", func(t *testing.T) {
		zero := []float64{0, 0, 0}
		normalized := Normalize(zero)
		for i, component := range normalized {
			if component != 0 {
				t.Errorf("component %d changed to %v", i, component)
			}
		}
	})

	t.Run("input is not mutated", func(t *testing.T) {
		input := []float64{3, 4}
		Normalize(input)
		if input[0] != 3 || input[1] != 4 {
			t.Errorf("input mutated to %v", input)
		}
	})
}

func TestCosineSimilarity(t *testing.T) {
	cases := []struct {
		name     string
		a, b     []float64
		expected float64
	}{
		{"identical vectors", []float64{0.6, 0.8}, []float64{0.6, 0.8}, 1},
		{"orthogonal vectors", []float64{0.6, 0.8}, []float64{0.8, -0.6}, 0},
		{"opposite vectors", []float64{1, 0}, []float64{-1, 0}, -1},
		{"mismatched dimensions", []float64{1, 0}, []float64{1, 0, 0}, 0},
		{"zero vector operand", []float64{0, 0}, []float64{1, 0}, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := CosineSimilarity(c.a, c.b); !almostEqual(got, c.expected) {
				t.Errorf("expected %v, got %v", c.expected, got)
			}
		})
	}
}

func TestMatcherEnroll(t *testing.T) {
	t.Run("first enrollment reports created", func(t *testing.T) {
		store := newMemoryEmbeddingStore()
		matcher := testMatcher(store, 2)

		created, err := matcher.Enroll(context.Background(), "voter-1", []float64{3, 4})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !created {
			t.Error("expected created=true for a first enrollment")
		}
		stored := store.embeddings["voter-1"]
		if !almostEqual(stored[0], 0.6) || !almostEqual(stored[1], 0.8) {
			t.Errorf("expected normalized storage, got %v", stored)
		}
	})

	t.Run("re-enrollment overwrites and reports updated", func(t *testing.T) {
		store := newMemoryEmbeddingStore()
		matcher := testMatcher(store, 2)

		if _, err := matcher.Enroll(context.Background(), "voter-1", []float64{3, 4}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		created, err := matcher.Enroll(context.Background(), "voter-1", []float64{0, 5})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if created {
			t.Error("expected created=false for a re-enrollment")
		}
		stored := store.embeddings["voter-1"]
		if !almostEqual(stored[0], 0) || !almostEqual(stored[1], 1) {
			t.Errorf("expected the new embedding to replace the old, got %v", stored)
		}
	})

	invalid := []struct {
		name      string
		embedding []float64
	}{
		{"wrong dimensions", []float64{1, 2, 3}},
		{"NaN component", []float64{math.NaN(), 1}},
		{"infinite component", []float64{math.Inf(1), 1}},
	}
	for _, c := range invalid {
		t.Run(c.name, func(t *testing.T) {
			matcher := testMatcher(newMemoryEmbeddingStore(), 2)
			if _, err := matcher.Enroll(context.Background(), "voter-1", c.embedding); !errors.Is(err, ErrInvalidEmbeddingFormat) {
				t.Errorf("expected ErrInvalidEmbeddingFormat, got %v", err)
			}
		})
	}
}

func TestMatcherMatch(t *testing.T) {
	t.Run("matching probe passes the threshold", func(t *testing.T) {
		store := newMemoryEmbeddingStore()
		matcher := testMatcher(store, 2)
		if _, err := matcher.Enroll(context.Background(), "voter-1", []float64{0.6, 0.8}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		result, err := matcher.Match(context.Background(), "voter-1", []float64{6, 8})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.Matched {
			t.Errorf("expected a match, got %+v", result)
		}
		if !almostEqual(result.Similarity, 1) {
			t.Errorf("expected similarity 1, got %v", result.Similarity)
		}
	})

	t.Run("dissimilar probe is rejected below threshold", func(t *testing.T) {
		store := newMemoryEmbeddingStore()
		matcher := testMatcher(store, 2)
		if _, err := matcher.Enroll(context.Background(), "voter-1", []float64{0.6, 0.8}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		result, err := matcher.Match(context.Background(), "voter-1", []float64{0.8, -0.6})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Matched {
			t.Errorf("expected no match, got %+v", result)
		}
		if result.Reason != ReasonBelowThreshold {
			t.Errorf("expected reason %q, got %q", ReasonBelowThreshold, result.Reason)
		}
	})

	t.Run("unenrolled owner is not an error", func(t *testing.T) {
		matcher := testMatcher(newMemoryEmbeddingStore(), 2)

		result, err := matcher.Match(context.Background(), "voter-9", []float64{0.6, 0.8})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Matched {
			t.Errorf("expected no match, got %+v", result)
		}
		if result.Reason != ReasonNoEmbeddingOnFile {
			t.Errorf("expected reason %q, got %q", ReasonNoEmbeddingOnFile, result.Reason)
		}
	})

	t.Run("storage failure is surfaced", func(t *testing.T) {
		store := newMemoryEmbeddingStore()
		store.err = errors.New("connection reset")
		matcher := testMatcher(store, 2)

		if _, err := matcher.Match(context.Background(), "voter-1", []float64{0.6, 0.8}); err == nil {
			t.Error("expected the storage error to be returned")
		}
	})

	t.Run("malformed probe is rejected", func(t *testing.T) {
		matcher := testMatcher(newMemoryEmbeddingStore(), 2)
		if _, err := matcher.Match(context.Background(), "voter-1", []float64{math.NaN(), 0}); !errors.Is(err, ErrInvalidEmbeddingFormat) {
			t.Errorf("expected ErrInvalidEmbeddingFormat, got %v", err)
		}
	})
}
