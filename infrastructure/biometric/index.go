package biometric

import (
	"errors"
	"os"

	"botosafe.io/infrastructure/network"
)

var ErrFaceServiceUnavailable = errors.New("face service unavailable")

var FaceService Detector

func InitialiseBiometricService() {
	FaceService = &RemoteFace{
		Network: &network.NetworkController{
			BaseUrl: os.Getenv("FACE_SERVICE_URL"),
		},
	}
}
