package repository

import (
	"context"
	"sync"

	"botosafe.io/entities"
	"botosafe.io/infrastructure/database/connection/datastore"
	"botosafe.io/infrastructure/database/repository/mongo"
)

var faceEmbeddingOnce = sync.Once{}

var faceEmbeddingRepository mongo.MongoRepository[entities.FaceEmbedding]

func FaceEmbeddingRepo() *mongo.MongoRepository[entities.FaceEmbedding] {
	faceEmbeddingOnce.Do(func() {
		faceEmbeddingRepository = mongo.MongoRepository[entities.FaceEmbedding]{Model: datastore.FaceEmbeddingModel}
	})
	return &faceEmbeddingRepository
}

// FaceEmbeddingStore adapts the embedding collection to the matcher's
// storage port.
type FaceEmbeddingStore struct{}

func (FaceEmbeddingStore) FindByOwner(ctx context.Context, ownerID string) ([]float64, error) {
	record, err := FaceEmbeddingRepo().FindOneByFilter(ctx, map[string]interface{}{
		"voterID": ownerID,
	})
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}
	return record.Embedding, nil
}

// Upsert is a single atomic write so concurrent first enrollments cannot
// race each other into the unique index on voterID.
func (FaceEmbeddingStore) Upsert(ctx context.Context, ownerID string, embedding []float64) (bool, error) {
	return FaceEmbeddingRepo().UpdateOrCreateByFilter(ctx, map[string]interface{}{
		"voterID": ownerID,
	}, map[string]interface{}{
		"voterID":   ownerID,
		"embedding": embedding,
	})
}
