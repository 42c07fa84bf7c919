package verification_usecases

import (
	"context"
	"errors"
	"time"

	"botosafe.io/infrastructure/auth"
	"botosafe.io/infrastructure/biometric"
	"botosafe.io/infrastructure/logger"
)

// ErrCameraUnavailable terminates a verification session. There is no retry
// path; the voter has to fix their device and start over.
var ErrCameraUnavailable = errors.New("camera unavailable")

// Camera acquires a frame stream from the capture device.
type Camera interface {
	Acquire(ctx context.Context) (Stream, error)
}

// Stream delivers frames one at a time. Next blocks until a frame is
// available or the context ends. Release stops capture and frees the device.
type Stream interface {
	Next(ctx context.Context) (biometric.Frame, error)
	Release()
}

type Purpose string

const (
	PurposeEnrollment Purpose = "enrollment"
	PurposeLogin      Purpose = "login"
	PurposeVoting     Purpose = "voting"
)

// SessionResult is the outcome of one full verification session.
type SessionResult struct {
	Verified   bool
	Similarity float64
	Reason     biometric.MatchReason
	Token      *string
	Created    bool
	Attempts   int
}

// Orchestrator drives a verification session end to end: capture frames,
// clear the liveness challenges, extract a descriptor and match or enroll
// it, then mint the credential the purpose calls for.
type Orchestrator struct {
	Camera         Camera
	Detector       biometric.Detector
	Matcher        *biometric.Matcher
	LivenessConfig biometric.LivenessConfig
	ExtractTimeout time.Duration
	MaxAttempts    int
	Now            func() time.Time
}

func NewOrchestrator(camera Camera, detector biometric.Detector, matcher *biometric.Matcher) *Orchestrator {
	return &Orchestrator{
		Camera:         camera,
		Detector:       detector,
		Matcher:        matcher,
		LivenessConfig: biometric.DefaultLivenessConfig(),
		ExtractTimeout: 10 * time.Second,
		MaxAttempts:    3,
		Now:            time.Now,
	}
}

// Run executes a verification session for the owner. For voting the caller
// supplies the election the credential must bind to; other purposes ignore
// electionID. A failed match resets all liveness progress and starts the
// capture over, up to MaxAttempts times.
func (o *Orchestrator) Run(ctx context.Context, ownerID string, purpose Purpose, electionID string) (*SessionResult, error) {
	session := biometric.NewLivenessSession(o.LivenessConfig)
	result := &SessionResult{}

	for attempt := 1; attempt <= o.MaxAttempts; attempt++ {
		result.Attempts = attempt
		session.Reset()

		descriptor, err := o.captureAndExtract(ctx, session)
		if err != nil {
			return nil, err
		}
		if descriptor == nil {
			result.Reason = biometric.ReasonNoFaceDetected
			continue
		}

		if purpose == PurposeEnrollment {
			created, err := o.Matcher.Enroll(ctx, ownerID, descriptor)
			if err != nil {
				return nil, err
			}
			result.Verified = true
			result.Created = created
			result.Reason = ""
			return result, nil
		}

		match, err := o.Matcher.Match(ctx, ownerID, descriptor)
		if err != nil {
			return nil, err
		}
		result.Similarity = match.Similarity
		result.Reason = match.Reason
		if !match.Matched {
			if match.Reason == biometric.ReasonNoEmbeddingOnFile {
				// retrying cannot conjure an enrollment
				return result, nil
			}
			logger.Info("face match failed, restarting liveness challenges", logger.LoggerOptions{
				Key:  "attempt",
				Data: attempt,
			})
			continue
		}

		token, err := o.mintCredential(ownerID, purpose, electionID)
		if err != nil {
			return nil, err
		}
		result.Verified = true
		result.Token = token
		result.Reason = ""
		return result, nil
	}
	return result, nil
}

// captureAndExtract runs the liveness loop over the stream and, once the
// challenges pass, extracts a descriptor from the last frame that contained
// a face. Per frame detection failures are logged and skipped; only the
// camera and the context can abort the loop.
func (o *Orchestrator) captureAndExtract(ctx context.Context, session *biometric.LivenessSession) ([]float64, error) {
	stream, err := o.Camera.Acquire(ctx)
	if err != nil {
		logger.Error("could not acquire camera stream", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, ErrCameraUnavailable
	}
	released := false
	defer func() {
		if !released {
			stream.Release()
		}
	}()

	var lastGoodFrame biometric.Frame
	for !session.Passed() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		frame, err := stream.Next(ctx)
		if err != nil {
			return nil, ErrCameraUnavailable
		}

		landmarks, err := o.Detector.Detect(frame)
		if err != nil {
			logger.Warning("skipping frame after detection failure", logger.LoggerOptions{
				Key:  "error",
				Data: err,
			})
			continue
		}
		if landmarks != nil {
			lastGoodFrame = frame
		}
		session.Observe(landmarks)
	}

	// the device is free the moment the challenges pass; extraction only
	// needs the frame already in hand
	stream.Release()
	released = true

	if lastGoodFrame == nil {
		return nil, nil
	}

	return o.extractWithBudget(ctx, lastGoodFrame)
}

// extractWithBudget bounds descriptor extraction to ExtractTimeout so a
// stalled model call cannot hold the session open indefinitely.
func (o *Orchestrator) extractWithBudget(ctx context.Context, frame biometric.Frame) ([]float64, error) {
	extractCtx, cancel := context.WithTimeout(ctx, o.ExtractTimeout)
	defer cancel()

	type extraction struct {
		descriptor []float64
		err        error
	}
	done := make(chan extraction, 1)
	go func() {
		descriptor, err := o.Detector.ExtractDescriptor(frame)
		done <- extraction{descriptor, err}
	}()

	select {
	case <-extractCtx.Done():
		logger.Error("descriptor extraction exceeded its time budget")
		return nil, extractCtx.Err()
	case result := <-done:
		if result.err != nil {
			logger.Error("descriptor extraction failed", logger.LoggerOptions{
				Key:  "error",
				Data: result.err,
			})
			return nil, result.err
		}
		return result.descriptor, nil
	}
}

func (o *Orchestrator) mintCredential(ownerID string, purpose Purpose, electionID string) (*string, error) {
	now := o.Now()
	switch purpose {
	case PurposeLogin:
		return auth.GenerateSessionToken(auth.SessionClaimsData{
			UserID:     ownerID,
			StrongAuth: true,
			IssuedAt:   now.Unix(),
			ExpiresAt:  now.Add(auth.SessionTokenTTL).Unix(),
		})
	case PurposeVoting:
		return auth.GenerateVoteToken(auth.VoteClaimsData{
			VoterID:    ownerID,
			ElectionID: electionID,
			IssuedAt:   now.Unix(),
			ExpiresAt:  now.Add(auth.VoteTokenTTL).Unix(),
		})
	}
	return nil, nil
}
