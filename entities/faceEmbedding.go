package entities

import (
	"time"

	"botosafe.io/application/utils"
)

// FaceEmbedding is the enrolled facial descriptor for one voter. There is at
// most one document per voter; re-enrollment overwrites the vector wholesale.
type FaceEmbedding struct {
	VoterID   string    `bson:"voterID" json:"voterID"`
	Embedding []float64 `bson:"embedding" json:"embedding"`

	ID        string    `bson:"_id" json:"id"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (model FaceEmbedding) ParseModel() any {
	now := time.Now()
	if model.CreatedAt.IsZero() {
		model.CreatedAt = now
		model.ID = utils.GenerateULIDString()
	}
	model.UpdatedAt = now
	return &model
}
