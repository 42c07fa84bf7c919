package biometric

import "testing"

// buildFrame synthesizes a 68-point detection with controllable eye opening,
// inner lip gap and horizontal nose position. eyeHalfGap sets the vertical
// lid half distance over a 12 unit eye width, so EAR = eyeHalfGap / 6.
// mouthGap is the inner lip distance over a 20 unit mouth width, so
// MAR = mouthGap / 20. noseRatio places the nose tip between face edges at
// X=0 and X=100.
func buildFrame(eyeHalfGap, mouthGap, noseRatio float64) *LandmarkFrame {
	positions := make([]Point, LandmarkCount)

	positions[0] = Point{X: 0, Y: 50}
	positions[16] = Point{X: 100, Y: 50}
	positions[30] = Point{X: noseRatio * 100, Y: 55}

	buildEye := func(start int, originX float64) {
		positions[start] = Point{X: originX, Y: 40}
		positions[start+1] = Point{X: originX + 4, Y: 40 - eyeHalfGap}
		positions[start+2] = Point{X: originX + 8, Y: 40 - eyeHalfGap}
		positions[start+3] = Point{X: originX + 12, Y: 40}
		positions[start+4] = Point{X: originX + 8, Y: 40 + eyeHalfGap}
		positions[start+5] = Point{X: originX + 4, Y: 40 + eyeHalfGap}
	}
	buildEye(36, 20)
	buildEye(42, 60)

	positions[48] = Point{X: 40, Y: 70}
	positions[54] = Point{X: 60, Y: 70}
	positions[61] = Point{X: 50, Y: 70 - mouthGap/2}
	positions[67] = Point{X: 50, Y: 70 + mouthGap/2}

	return &LandmarkFrame{Positions: positions}
}

func neutralFrame() *LandmarkFrame   { return buildFrame(2.4, 4, 0.5) }
func blinkFrame() *LandmarkFrame     { return buildFrame(0.6, 4, 0.5) }
func mouthOpenFrame() *LandmarkFrame { return buildFrame(2.4, 14, 0.5) }
func headTurnFrame() *LandmarkFrame  { return buildFrame(2.4, 4, 0.2) }

func TestLivenessSessionFullSequence(t *testing.T) {
	session := NewLivenessSession(DefaultLivenessConfig())

	if stage := session.Observe(neutralFrame()); stage != StageAwaitingBlink {
		t.Fatalf("neutral frame advanced the session to %v", stage)
	}
	if stage := session.Observe(blinkFrame()); stage != StageAwaitingMouthOpen {
		t.Fatalf("expected blink to advance to mouth challenge, got %v", stage)
	}
	if stage := session.Observe(neutralFrame()); stage != StageAwaitingMouthOpen {
		t.Fatalf("neutral frame advanced the session to %v", stage)
	}
	if stage := session.Observe(mouthOpenFrame()); stage != StageAwaitingHeadTurn {
		t.Fatalf("expected open mouth to advance to head turn, got %v", stage)
	}
	if stage := session.Observe(headTurnFrame()); stage != StagePassed {
		t.Fatalf("expected head turn to pass the session, got %v", stage)
	}
	if !session.Passed() {
		t.Error("expected session to report passed")
	}
	progress := session.Progress()
	if !progress.Blink || !progress.MouthOpen || !progress.HeadTurn {
		t.Errorf("expected all challenges recorded, got %+v", progress)
	}
}

func TestLivenessSessionChallengeOrder(t *testing.T) {
	cases := []struct {
		name  string
		frame *LandmarkFrame
	}{
		{"mouth open before blink", mouthOpenFrame()},
		{"head turn before blink", headTurnFrame()},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			session := NewLivenessSession(DefaultLivenessConfig())
			if stage := session.Observe(c.frame); stage != StageAwaitingBlink {
				t.Errorf("out of order frame advanced the session to %v", stage)
			}
		})
	}

	t.Run("head turn before mouth open", func(t *testing.T) {
		session := NewLivenessSession(DefaultLivenessConfig())
		session.Observe(blinkFrame())
		if stage := session.Observe(headTurnFrame()); stage != StageAwaitingMouthOpen {
			t.Errorf("out of order frame advanced the session to %v", stage)
		}
	})
}

func TestLivenessSessionSingleTransitionPerFrame(t *testing.T) {
	// one frame satisfying every challenge at once may only clear the
	// current one
	session := NewLivenessSession(DefaultLivenessConfig())
	everything := buildFrame(0.6, 14, 0.2)

	if stage := session.Observe(everything); stage != StageAwaitingMouthOpen {
		t.Fatalf("expected exactly one transition, got %v", stage)
	}
	if stage := session.Observe(everything); stage != StageAwaitingHeadTurn {
		t.Fatalf("expected exactly one transition, got %v", stage)
	}
	if stage := session.Observe(everything); stage != StagePassed {
		t.Fatalf("expected exactly one transition, got %v", stage)
	}
}

func TestLivenessSessionIgnoresUnusableFrames(t *testing.T) {
	session := NewLivenessSession(DefaultLivenessConfig())
	session.Observe(blinkFrame())

	if stage := session.Observe(nil); stage != StageAwaitingMouthOpen {
		t.Errorf("nil frame changed the stage to %v", stage)
	}
	if stage := session.Observe(&LandmarkFrame{Positions: make([]Point, 10)}); stage != StageAwaitingMouthOpen {
		t.Errorf("short frame changed the stage to %v", stage)
	}
}

func TestLivenessSessionPassedIsTerminal(t *testing.T) {
	session := NewLivenessSession(DefaultLivenessConfig())
	session.Observe(blinkFrame())
	session.Observe(mouthOpenFrame())
	session.Observe(headTurnFrame())

	if stage := session.Observe(neutralFrame()); stage != StagePassed {
		t.Errorf("frame after pass changed the stage to %v", stage)
	}
}

func TestLivenessSessionReset(t *testing.T) {
	session := NewLivenessSession(DefaultLivenessConfig())
	session.Observe(blinkFrame())
	session.Observe(mouthOpenFrame())

	session.Reset()

	if session.Stage() != StageAwaitingBlink {
		t.Fatalf("expected reset to return to the blink challenge, got %v", session.Stage())
	}
	if progress := session.Progress(); progress != (LivenessProgress{}) {
		t.Errorf("expected reset to clear progress, got %+v", progress)
	}
	if stage := session.Observe(mouthOpenFrame()); stage != StageAwaitingBlink {
		t.Errorf("expected no credit for pre-reset progress, got %v", stage)
	}
}
