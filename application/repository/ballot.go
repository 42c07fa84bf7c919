package repository

import (
	"sync"

	"botosafe.io/entities"
	"botosafe.io/infrastructure/database/connection/datastore"
	"botosafe.io/infrastructure/database/repository/mongo"
)

var ballotOnce = sync.Once{}

var ballotRepository mongo.MongoRepository[entities.Ballot]

func BallotRepo() *mongo.MongoRepository[entities.Ballot] {
	ballotOnce.Do(func() {
		ballotRepository = mongo.MongoRepository[entities.Ballot]{Model: datastore.BallotModel}
	})
	return &ballotRepository
}
