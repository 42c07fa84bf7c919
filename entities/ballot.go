package entities

import (
	"time"

	"botosafe.io/application/utils"
)

// SealedChoice is one position's encrypted selection. The plaintext
// position/candidate pair never persists.
type SealedChoice struct {
	PositionID string `bson:"positionID" json:"positionID"`
	Ciphertext string `bson:"ciphertext" json:"-"`
}

// Ballot is the single vote document for a (voter, election) pair. The
// compound unique index on voterID+electionID is what enforces one ballot
// per voter per election.
type Ballot struct {
	VoterID    string         `bson:"voterID" json:"voterID"`
	ElectionID string         `bson:"electionID" json:"electionID"`
	Choices    []SealedChoice `bson:"choices" json:"choices"`
	CastAt     time.Time      `bson:"castAt" json:"castAt"`

	ID        string    `bson:"_id" json:"id"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (model Ballot) ParseModel() any {
	now := time.Now()
	if model.CreatedAt.IsZero() {
		model.CreatedAt = now
		model.ID = utils.GenerateULIDString()
	}
	model.UpdatedAt = now
	return &model
}
