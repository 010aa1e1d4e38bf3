package repository

import (
	"context"
	"errors"

	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// StatsRepo persists materialized per-user stats snapshots, one document per
// user keyed by user ID.
type StatsRepo struct {
	MongoCollection *mongo.Collection
}

// Retrieves MongoDB collection for stats snapshots
func GetStatsRepo(client *mongo.Client) *StatsRepo {
	dbName := utils.GetEnvAsString("MONGO_DB", "taskweek")
	collectionName := utils.GetEnvAsString("STATS_COLLECTION", "user_stats")
	return &StatsRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

// Retrieves a user's snapshot; returns nil when the user has never been
// materialized
func (r *StatsRepo) GetSnapshot(ctx context.Context, userID string) (*model.UserStatsSnapshot, error) {
	timer := utils.TrackDBOperation("find", "user_stats")
	defer timer.ObserveDuration()

	var snapshot model.UserStatsSnapshot
	err := r.MongoCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&snapshot)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		utils.TrackError("database", "snapshot_fetch_failed")
		return nil, err
	}
	return &snapshot, nil
}

// Replaces a user's snapshot in a single atomic upsert so readers never see
// a half-updated document
func (r *StatsRepo) UpsertSnapshot(ctx context.Context, snapshot *model.UserStatsSnapshot) error {
	timer := utils.TrackDBOperation("replace", "user_stats")
	defer timer.ObserveDuration()

	_, err := r.MongoCollection.ReplaceOne(ctx,
		bson.M{"_id": snapshot.UserID},
		snapshot,
		options.Replace().SetUpsert(true))
	if err != nil {
		utils.TrackError("database", "snapshot_upsert_failed")
		return err
	}
	return nil
}

// Retrieves every user's latest snapshot for the leaderboard
func (r *StatsRepo) AllSnapshots(ctx context.Context) ([]*model.UserStatsSnapshot, error) {
	timer := utils.TrackDBOperation("find", "user_stats")
	defer timer.ObserveDuration()

	cursor, err := r.MongoCollection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "productivity_score", Value: -1}}))
	if err != nil {
		utils.TrackError("database", "snapshot_list_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	var snapshots []*model.UserStatsSnapshot
	if err = cursor.All(ctx, &snapshots); err != nil {
		utils.TrackError("database", "snapshot_decode_failed")
		return nil, err
	}
	return snapshots, nil
}
