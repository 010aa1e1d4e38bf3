package repository

import (
	"context"
	"errors"
	"time"

	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FactsRepo is the completion fact feed. Facts are append-only: a revived
// task has its fact removed, never edited.
type FactsRepo struct {
	MongoCollection *mongo.Collection
}

// Retrieves MongoDB collection for completion facts
func GetFactsRepo(client *mongo.Client) *FactsRepo {
	dbName := utils.GetEnvAsString("MONGO_DB", "taskweek")
	collectionName := utils.GetEnvAsString("COMPLETIONS_COLLECTION", "completions")
	return &FactsRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

// Records a completion fact when a task transitions to completed
func (r *FactsRepo) RecordCompletion(ctx context.Context, fact *model.CompletionFact) error {
	timer := utils.TrackDBOperation("insert", "completions")
	defer timer.ObserveDuration()

	if fact.UserID == "" {
		utils.TrackError("database", "missing_user_id")
		return errors.New("user ID is required")
	}
	if fact.TaskID == "" {
		utils.TrackError("database", "missing_task_id")
		return errors.New("task ID is required")
	}
	if fact.CompletedAt.IsZero() {
		fact.CompletedAt = time.Now()
	}

	_, err := r.MongoCollection.InsertOne(ctx, fact)
	if err != nil {
		utils.TrackError("database", "fact_insert_failed")
		return err
	}
	return nil
}

// Removes the completion facts of a revived task
func (r *FactsRepo) RemoveForTask(ctx context.Context, userID, taskID string) error {
	timer := utils.TrackDBOperation("delete", "completions")
	defer timer.ObserveDuration()

	_, err := r.MongoCollection.DeleteMany(ctx, bson.M{
		"user_id": userID,
		"task_id": taskID,
	})
	if err != nil {
		utils.TrackError("database", "fact_delete_failed")
		return err
	}
	return nil
}

// Retrieves all completion facts for a user within a time range, in
// chronological order
func (r *FactsRepo) FactsInRange(ctx context.Context, userID string, start, end time.Time) ([]*model.CompletionFact, error) {
	timer := utils.TrackDBOperation("find", "completions")
	defer timer.ObserveDuration()

	filter := bson.M{
		"user_id":      userID,
		"completed_at": bson.M{"$gte": start, "$lte": end},
	}

	cursor, err := r.MongoCollection.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "completed_at", Value: 1}}))
	if err != nil {
		utils.TrackError("database", "fact_fetch_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	var facts []*model.CompletionFact
	if err = cursor.All(ctx, &facts); err != nil {
		utils.TrackError("database", "fact_decode_failed")
		return nil, err
	}
	return facts, nil
}

// Counts completion facts for a user within a time range
func (r *FactsRepo) CountInRange(ctx context.Context, userID string, start, end time.Time) (int, error) {
	timer := utils.TrackDBOperation("count", "completions")
	defer timer.ObserveDuration()

	count, err := r.MongoCollection.CountDocuments(ctx, bson.M{
		"user_id":      userID,
		"completed_at": bson.M{"$gte": start, "$lte": end},
	})
	if err != nil {
		utils.TrackError("database", "fact_count_failed")
		return 0, err
	}
	return int(count), nil
}

// DailyCounts groups completions by calendar day so the streak walk can run
// in chunks without materializing the fact history
func (r *FactsRepo) DailyCounts(ctx context.Context, userID string, start, end time.Time) (map[string]int, error) {
	timer := utils.TrackDBOperation("aggregate", "completions")
	defer timer.ObserveDuration()

	// $dateToString buckets by UTC unless told otherwise; day keys must
	// follow the range's location or the streak walk misses completions
	// near midnight.
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"user_id":      userID,
			"completed_at": bson.M{"$gte": start, "$lte": end},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{"$dateToString": bson.M{
				"format":   "%Y-%m-%d",
				"date":     "$completed_at",
				"timezone": start.Format("-07:00"),
			}},
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.MongoCollection.Aggregate(ctx, pipeline)
	if err != nil {
		utils.TrackError("database", "daily_count_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Day   string `bson:"_id"`
		Count int    `bson:"count"`
	}
	if err = cursor.All(ctx, &rows); err != nil {
		utils.TrackError("database", "daily_count_decode_failed")
		return nil, err
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Day] = row.Count
	}
	return counts, nil
}
