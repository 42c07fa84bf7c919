package verification_usecases

import (
	"context"
	"errors"
	"testing"

	"botosafe.io/infrastructure/biometric"
)

func TestFrameReplayEnrollment(t *testing.T) {
	detector := newFakeDetector()
	detector.descriptors[frameHeadTurn] = []float64{3, 4}
	store := &memoryStore{embeddings: map[string][]float64{}}
	orchestrator := newTestOrchestrator(NewFrameReplay(challengeFrames()), detector, store)

	result, err := orchestrator.Run(context.Background(), "voter-1", PurposeEnrollment, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Verified || !result.Created {
		t.Errorf("expected a first enrollment, got %+v", result)
	}
	if store.embeddings["voter-1"] == nil {
		t.Error("expected the descriptor to be persisted")
	}
}

func TestFrameReplayRewindsForEachAttempt(t *testing.T) {
	// the descriptor never matches, so every retry has to get the clip back
	// from the first frame to clear the challenges again
	detector := newFakeDetector()
	detector.descriptors[frameHeadTurn] = []float64{0.8, -0.6}
	store := &memoryStore{embeddings: map[string][]float64{
		"voter-1": {0.6, 0.8},
	}}
	orchestrator := newTestOrchestrator(NewFrameReplay(challengeFrames()), detector, store)

	result, err := orchestrator.Run(context.Background(), "voter-1", PurposeLogin, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Verified {
		t.Fatalf("expected verification to fail, got %+v", result)
	}
	if result.Attempts != orchestrator.MaxAttempts {
		t.Errorf("expected %d attempts, got %d", orchestrator.MaxAttempts, result.Attempts)
	}
}

func TestFrameReplayIncompleteClip(t *testing.T) {
	orchestrator := newTestOrchestrator(
		NewFrameReplay([]biometric.Frame{{frameBlink}, {frameMouthOpen}}),
		newFakeDetector(), &memoryStore{embeddings: map[string][]float64{}})

	if _, err := orchestrator.Run(context.Background(), "voter-1", PurposeLogin, ""); !errors.Is(err, ErrCameraUnavailable) {
		t.Errorf("expected ErrCameraUnavailable, got %v", err)
	}
}

func TestFrameReplayEmptyClip(t *testing.T) {
	orchestrator := newTestOrchestrator(NewFrameReplay(nil),
		newFakeDetector(), &memoryStore{embeddings: map[string][]float64{}})

	if _, err := orchestrator.Run(context.Background(), "voter-1", PurposeEnrollment, ""); !errors.Is(err, ErrCameraUnavailable) {
		t.Errorf("expected ErrCameraUnavailable, got %v", err)
	}
}
