package repository

import (
	"sync"

	"botosafe.io/entities"
	"botosafe.io/infrastructure/database/connection/datastore"
	"botosafe.io/infrastructure/database/repository/mongo"
)

var electionOnce = sync.Once{}

var electionRepository mongo.MongoRepository[entities.Election]

func ElectionRepo() *mongo.MongoRepository[entities.Election] {
	electionOnce.Do(func() {
		electionRepository = mongo.MongoRepository[entities.Election]{Model: datastore.ElectionModel}
	})
	return &electionRepository
}
