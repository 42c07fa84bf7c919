package biometric

import "math"

// LandmarkCount is the number of points in the 68-point facial landmark
// convention the detection model emits.
const LandmarkCount = 68

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LandmarkFrame is one detection result: the 68 landmark positions for a
// single face, indexed per the standard 68-point contour layout.
type LandmarkFrame struct {
	Positions []Point
}

// LeftEye returns the 6-point left eye contour (positions 36-41).
func (f *LandmarkFrame) LeftEye() []Point {
	return f.Positions[36:42]
}

// RightEye returns the 6-point right eye contour (positions 42-47).
func (f *LandmarkFrame) RightEye() []Point {
	return f.Positions[42:48]
}

// Mouth returns the 20-point mouth contour (positions 48-67). Index 0 and 6
// are the outer corners; 13 and 19 are the inner-lip vertical pair.
func (f *LandmarkFrame) Mouth() []Point {
	return f.Positions[48:68]
}

// NoseTip returns the tip of the nose (position 30).
func (f *LandmarkFrame) NoseTip() Point {
	return f.Positions[30]
}

// LeftFaceEdge returns the leftmost jaw point (position 0).
func (f *LandmarkFrame) LeftFaceEdge() Point {
	return f.Positions[0]
}

// RightFaceEdge returns the rightmost jaw point (position 16).
func (f *LandmarkFrame) RightFaceEdge() Point {
	return f.Positions[16]
}

// EyeAspectRatio computes the eye aspect ratio over a 6-point eye contour:
// the two vertical lid distances over twice the horizontal corner distance.
// A lower ratio means a more closed eye. ok is false when the contour is
// malformed or the horizontal distance is zero; callers must not act on the
// ratio in that case.
func EyeAspectRatio(eye []Point) (ratio float64, ok bool) {
	if len(eye) < 6 {
		return 0, false
	}
	v1 := distance(eye[1], eye[5])
	v2 := distance(eye[2], eye[4])
	h := distance(eye[0], eye[3])
	if h == 0 {
		return 0, false
	}
	return (v1 + v2) / (2 * h), true
}

// MouthAspectRatio computes the inner-lip vertical distance over the mouth
// width for a 20-point mouth contour. ok is false on malformed input or a
// zero-width mouth.
func MouthAspectRatio(mouth []Point) (ratio float64, ok bool) {
	if len(mouth) < 20 {
		return 0, false
	}
	v := distance(mouth[13], mouth[19])
	h := distance(mouth[0], mouth[6])
	if h == 0 {
		return 0, false
	}
	return v / h, true
}

// HeadTurnRatio normalizes the horizontal nose-tip position between the left
// and right face edges. 0.5 is a centered head; values toward 0 or 1 mean
// the head has turned. ok is false when the face has zero width.
func HeadTurnRatio(noseTip, leftEdge, rightEdge Point) (ratio float64, ok bool) {
	width := rightEdge.X - leftEdge.X
	if width == 0 {
		return 0, false
	}
	return (noseTip.X - leftEdge.X) / width, true
}

func distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
