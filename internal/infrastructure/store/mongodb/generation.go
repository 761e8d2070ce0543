package mongodb

import (
	"context"

	"jark/internal/domain/entity"
	"jark/internal/domain/repository"
	"jark/internal/infrastructure/metrics"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const generationsCollection = "generations"

type MongoGenerationRepo struct {
	col *mongo.Collection
}

func NewMongoGenerationRepo(db *mongo.Database) repository.GenerationRepository {
	col := db.Collection(generationsCollection)

	_, _ = col.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{Keys: bson.D{bson.E{Key: "engine", Value: 1}, bson.E{Key: "status", Value: 1}}},
		{Keys: bson.D{bson.E{Key: "created_at", Value: -1}}},
	})

	return &MongoGenerationRepo{
		col: col,
	}
}

func (r *MongoGenerationRepo) Save(ctx context.Context, rec *entity.GenerationRecord) error {
	_, err := r.col.InsertOne(ctx, rec)
	if err != nil {
		metrics.IncError("mongo_generation_repo", "save_error")
		return err
	}
	return nil
}
