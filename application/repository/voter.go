package repository

import (
	"sync"

	"botosafe.io/entities"
	"botosafe.io/infrastructure/database/connection/datastore"
	"botosafe.io/infrastructure/database/repository/mongo"
)

var voterOnce = sync.Once{}

var voterRepository mongo.MongoRepository[entities.Voter]

func VoterRepo() *mongo.MongoRepository[entities.Voter] {
	voterOnce.Do(func() {
		voterRepository = mongo.MongoRepository[entities.Voter]{Model: datastore.VoterModel}
	})
	return &voterRepository
}
