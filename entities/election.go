package entities

import (
	"time"

	"botosafe.io/application/utils"
)

type Election struct {
	Name      string    `bson:"name" json:"name"`
	StartTime time.Time `bson:"startTime" json:"startTime"`
	EndTime   time.Time `bson:"endTime" json:"endTime"`

	ID        string    `bson:"_id" json:"id"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Open reports whether t falls inside the voting window.
func (e Election) Open(t time.Time) bool {
	return !t.Before(e.StartTime) && !t.After(e.EndTime)
}

func (model Election) ParseModel() any {
	now := time.Now()
	if model.CreatedAt.IsZero() {
		model.CreatedAt = now
		model.ID = utils.GenerateULIDString()
	}
	model.UpdatedAt = now
	return &model
}
