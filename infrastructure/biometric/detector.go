package biometric

// Frame is a single captured camera image, encoded as the capture layer
// produced it (JPEG or PNG bytes).
type Frame []byte

// Detector is the capability boundary to the face model. Detect returns the
// 68 facial landmark positions for the most prominent face, or nil when the
// frame contains no detectable face. ExtractDescriptor returns the face
// descriptor for the frame, or nil when no face is found. Both treat the
// no-face case as an ordinary outcome rather than an error.
type Detector interface {
	Detect(frame Frame) (*LandmarkFrame, error)
	ExtractDescriptor(frame Frame) ([]float64, error)
}
