package biometric

// LivenessStage is the current challenge in a liveness session. Stages are
// strictly ordered; a session can only move forward, one stage per observed
// frame at most.
type LivenessStage uint8

const (
	StageAwaitingBlink LivenessStage = iota
	StageAwaitingMouthOpen
	StageAwaitingHeadTurn
	StagePassed
)

func (s LivenessStage) String() string {
	switch s {
	case StageAwaitingBlink:
		return "awaiting_blink"
	case StageAwaitingMouthOpen:
		return "awaiting_mouth_open"
	case StageAwaitingHeadTurn:
		return "awaiting_head_turn"
	case StagePassed:
		return "passed"
	}
	return "unknown"
}

type LivenessConfig struct {
	EARThreshold  float64
	MARThreshold  float64
	HeadTurnLeft  float64
	HeadTurnRight float64
}

// DefaultLivenessConfig returns the calibrated challenge thresholds: a blink
// closes the eye below 0.30, an open mouth exceeds 0.60, and a head turn
// moves the nose outside the 0.35-0.65 band.
func DefaultLivenessConfig() LivenessConfig {
	return LivenessConfig{
		EARThreshold:  0.30,
		MARThreshold:  0.60,
		HeadTurnLeft:  0.35,
		HeadTurnRight: 0.65,
	}
}

type LivenessProgress struct {
	Blink     bool `json:"blink"`
	MouthOpen bool `json:"mouthOpen"`
	HeadTurn  bool `json:"headTurn"`
}

// LivenessSession is the per-capture challenge state machine. It is not safe
// for concurrent use; the orchestrator serializes frame delivery.
type LivenessSession struct {
	config   LivenessConfig
	stage    LivenessStage
	progress LivenessProgress
}

func NewLivenessSession(config LivenessConfig) *LivenessSession {
	return &LivenessSession{config: config}
}

// Observe evaluates one detection frame against the current challenge and
// returns the stage after evaluation. A nil frame (no face detected) leaves
// the state unchanged. Frames satisfying a later challenge while an earlier
// one is pending do not advance the machine. Once passed, further frames are
// ignored.
func (s *LivenessSession) Observe(frame *LandmarkFrame) LivenessStage {
	if s.stage == StagePassed || frame == nil || len(frame.Positions) < LandmarkCount {
		return s.stage
	}

	switch s.stage {
	case StageAwaitingBlink:
		leftEAR, leftOK := EyeAspectRatio(frame.LeftEye())
		rightEAR, rightOK := EyeAspectRatio(frame.RightEye())
		if !leftOK || !rightOK {
			return s.stage
		}
		if (leftEAR+rightEAR)/2 < s.config.EARThreshold {
			s.progress.Blink = true
			s.stage = StageAwaitingMouthOpen
		}
	case StageAwaitingMouthOpen:
		mar, ok := MouthAspectRatio(frame.Mouth())
		if !ok {
			return s.stage
		}
		if mar > s.config.MARThreshold {
			s.progress.MouthOpen = true
			s.stage = StageAwaitingHeadTurn
		}
	case StageAwaitingHeadTurn:
		ratio, ok := HeadTurnRatio(frame.NoseTip(), frame.LeftFaceEdge(), frame.RightFaceEdge())
		if !ok {
			return s.stage
		}
		if ratio < s.config.HeadTurnLeft || ratio > s.config.HeadTurnRight {
			s.progress.HeadTurn = true
			s.stage = StagePassed
		}
	}
	return s.stage
}

func (s *LivenessSession) Stage() LivenessStage {
	return s.stage
}

func (s *LivenessSession) Passed() bool {
	return s.stage == StagePassed
}

func (s *LivenessSession) Progress() LivenessProgress {
	return s.progress
}

// Reset returns the session to the first challenge with all progress
// cleared. Partial progress never survives a reset.
func (s *LivenessSession) Reset() {
	s.stage = StageAwaitingBlink
	s.progress = LivenessProgress{}
}
