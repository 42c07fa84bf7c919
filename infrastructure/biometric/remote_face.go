package biometric

import (
	"encoding/base64"
	"encoding/json"

	"botosafe.io/infrastructure/logger"
	"botosafe.io/infrastructure/network"
)

type frameRequest struct {
	Frame string `json:"frame"`
}

type detectFaceResponse struct {
	FaceFound bool    `json:"faceFound"`
	Positions []Point `json:"positions"`
}

type extractDescriptorResponse struct {
	FaceFound  bool      `json:"faceFound"`
	Descriptor []float64 `json:"descriptor"`
}

// RemoteFace talks to the face model sidecar over HTTP. The sidecar hosts the
// landmark and recognition networks so this service stays free of native
// inference dependencies.
type RemoteFace struct {
	Network *network.NetworkController
}

func (r *RemoteFace) Detect(frame Frame) (*LandmarkFrame, error) {
	requestBody := frameRequest{
		Frame: base64.StdEncoding.EncodeToString(frame),
	}

	response, statusCode, err := r.Network.Post("/detect-face", nil, requestBody)
	if err != nil {
		logger.Error("error detecting face landmarks", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}

	if statusCode == nil || *statusCode != 200 {
		logger.Error("face detection failed with status code", logger.LoggerOptions{
			Key:  "status_code",
			Data: statusCode,
		})
		return nil, ErrFaceServiceUnavailable
	}

	var result detectFaceResponse
	if err := json.Unmarshal(*response, &result); err != nil {
		logger.Error("error unmarshaling face detection response", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}

	if !result.FaceFound {
		return nil, nil
	}
	return &LandmarkFrame{Positions: result.Positions}, nil
}

func (r *RemoteFace) ExtractDescriptor(frame Frame) ([]float64, error) {
	requestBody := frameRequest{
		Frame: base64.StdEncoding.EncodeToString(frame),
	}

	response, statusCode, err := r.Network.Post("/extract-descriptor", nil, requestBody)
	if err != nil {
		logger.Error("error extracting face descriptor", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}

	if statusCode == nil || *statusCode != 200 {
		logger.Error("descriptor extraction failed with status code", logger.LoggerOptions{
			Key:  "status_code",
			Data: statusCode,
		})
		return nil, ErrFaceServiceUnavailable
	}

	var result extractDescriptorResponse
	if err := json.Unmarshal(*response, &result); err != nil {
		logger.Error("error unmarshaling descriptor response", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}

	if !result.FaceFound {
		return nil, nil
	}
	return result.Descriptor, nil
}
