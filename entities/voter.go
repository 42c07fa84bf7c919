package entities

import (
	"time"

	"botosafe.io/application/utils"
)

// This represents a student registered to vote on botosafe
type Voter struct {
	FullName      string  `bson:"fullName" json:"fullname"`
	Email         string  `bson:"email" json:"email" validate:"email"`
	Password      string  `bson:"password" json:"-"`
	Role          string  `bson:"role" json:"role"`
	Approved      bool    `bson:"approved" json:"approved"`
	Deactivated   bool    `bson:"deactivated" json:"deactivated"`
	BlockedReason *string `bson:"blockedReason" json:"blockedReason"`

	ID        string     `bson:"_id" json:"id"`
	CreatedAt time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time  `bson:"updatedAt" json:"updatedAt"`
	DeletedAt *time.Time `bson:"deletedAt" json:"deletedAt"`
}

func (model Voter) ParseModel() any {
	now := time.Now()
	if model.CreatedAt.IsZero() {
		model.CreatedAt = now
		model.ID = utils.GenerateULIDString()
	}
	model.UpdatedAt = now
	return &model
}
