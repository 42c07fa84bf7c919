package mongo

import (
	"context"
	"time"

	"botosafe.io/application/utils"
	"botosafe.io/infrastructure/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultTimeout = 15 * time.Second

func (repo *MongoRepository[T]) CreateOne(ctx context.Context, payload T) (*T, error) {
	c, cancel := repo.prepare(ctx)
	defer cancel()

	parsed := payload.ParseModel().(*T)
	_, err := repo.Model.InsertOne(c, parsed)
	if err != nil {
		logger.Error("mongo error occured while running CreateOne", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "collection",
			Data: repo.Model.Name(),
		})
		return nil, err
	}
	return parsed, nil
}

func (repo *MongoRepository[T]) FindOneByFilter(ctx context.Context, filter map[string]interface{}, opts ...*FindOptions) (*T, error) {
	c, cancel := repo.prepare(ctx)
	defer cancel()

	findOpts := options.FindOne()
	if len(opts) != 0 && opts[0].Projection != nil {
		findOpts.SetProjection(*opts[0].Projection)
	}

	var result T
	err := repo.Model.FindOne(c, normalizeFilter(filter), findOpts).Decode(&result)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		logger.Error("mongo error occured while running FindOneByFilter", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "collection",
			Data: repo.Model.Name(),
		})
		return nil, err
	}
	return &result, nil
}

func (repo *MongoRepository[T]) FindByID(ctx context.Context, id string, opts ...*FindOptions) (*T, error) {
	return repo.FindOneByFilter(ctx, map[string]interface{}{"_id": id}, opts...)
}

// UpdatePartialByFilter applies $set on the matched document. It reports
// whether a document matched.
func (repo *MongoRepository[T]) UpdatePartialByFilter(ctx context.Context, filter map[string]interface{}, update map[string]interface{}) (bool, error) {
	c, cancel := repo.prepare(ctx)
	defer cancel()

	update["updatedAt"] = time.Now()
	result, err := repo.Model.UpdateOne(c, normalizeFilter(filter), bson.M{"$set": update})
	if err != nil {
		logger.Error("mongo error occured while running UpdatePartialByFilter", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "collection",
			Data: repo.Model.Name(),
		})
		return false, err
	}
	return result.MatchedCount != 0, nil
}

// UpdateOrCreateByFilter upserts the payload fields on the matched document.
// It reports whether a new document was created.
func (repo *MongoRepository[T]) UpdateOrCreateByFilter(ctx context.Context, filter map[string]interface{}, update map[string]interface{}) (bool, error) {
	c, cancel := repo.prepare(ctx)
	defer cancel()

	now := time.Now()
	update["updatedAt"] = now
	result, err := repo.Model.UpdateOne(c, normalizeFilter(filter), bson.M{
		"$set": update,
		"$setOnInsert": bson.M{
			"_id":       utils.GenerateULIDString(),
			"createdAt": now,
		},
	}, options.Update().SetUpsert(true))
	if err != nil {
		logger.Error("mongo error occured while running UpdateOrCreateByFilter", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "collection",
			Data: repo.Model.Name(),
		})
		return false, err
	}
	return result.UpsertedCount != 0, nil
}

func (repo *MongoRepository[T]) CountDocs(ctx context.Context, filter map[string]interface{}) (int64, error) {
	c, cancel := repo.prepare(ctx)
	defer cancel()

	count, err := repo.Model.CountDocuments(c, normalizeFilter(filter))
	if err != nil {
		logger.Error("mongo error occured while running CountDocs", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "collection",
			Data: repo.Model.Name(),
		})
		return 0, err
	}
	return count, nil
}

func (repo *MongoRepository[T]) prepare(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, defaultTimeout)
}

func normalizeFilter(filter map[string]interface{}) bson.M {
	parsed := bson.M{}
	for key, value := range filter {
		parsed[key] = value
	}
	return parsed
}
