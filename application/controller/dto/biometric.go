package dto

type RegisterFaceDTO struct {
	Embedding []float64 `json:"embedding" validate:"required,min=1"`
}

type FaceSessionDTO struct {
	Frames     []string `json:"frames" validate:"required,min=1,dive,base64"`
	Purpose    string   `json:"purpose" validate:"required,oneof=enrollment login voting"`
	ElectionID *string  `json:"electionId" validate:"required_if=Purpose voting"`
}

type VerifyFaceDTO struct {
	Embedding  []float64 `json:"embedding" validate:"required,min=1"`
	Purpose    string    `json:"purpose" validate:"required,oneof=login voting"`
	ElectionID *string   `json:"electionId" validate:"required_if=Purpose voting"`
}
