package repository

import (
	"context"
	"time"

	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// TasksRepo exposes read-only totals over the task store. Task CRUD belongs
// to the task service; this repo only counts.
type TasksRepo struct {
	MongoCollection *mongo.Collection
}

// Retrieves MongoDB collection for tasks
func GetTasksRepo(client *mongo.Client) *TasksRepo {
	dbName := utils.GetEnvAsString("MONGO_DB", "taskweek")
	collectionName := utils.GetEnvAsString("TASKS_COLLECTION", "tasks")
	return &TasksRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

// Counts all tasks for a user
func (r *TasksRepo) CountAll(ctx context.Context, userID string) (int, error) {
	timer := utils.TrackDBOperation("count", "tasks")
	defer timer.ObserveDuration()

	count, err := r.MongoCollection.CountDocuments(ctx, bson.M{"user_id": userID})
	if err != nil {
		utils.TrackError("database", "task_count_failed")
		return 0, err
	}
	return int(count), nil
}

// Counts completed tasks for a user
func (r *TasksRepo) CountCompleted(ctx context.Context, userID string) (int, error) {
	timer := utils.TrackDBOperation("count", "tasks")
	defer timer.ObserveDuration()

	count, err := r.MongoCollection.CountDocuments(ctx,
		bson.M{"user_id": userID, "complete": true})
	if err != nil {
		utils.TrackError("database", "completed_task_count_failed")
		return 0, err
	}
	return int(count), nil
}

// Counts incomplete tasks whose due date has passed
func (r *TasksRepo) CountOverdue(ctx context.Context, userID string, now time.Time) (int, error) {
	timer := utils.TrackDBOperation("count", "tasks")
	defer timer.ObserveDuration()

	count, err := r.MongoCollection.CountDocuments(ctx, bson.M{
		"user_id":  userID,
		"complete": false,
		"due_date": bson.M{"$lt": now, "$ne": time.Time{}},
	})
	if err != nil {
		utils.TrackError("database", "overdue_task_count_failed")
		return 0, err
	}
	return int(count), nil
}

// Counts pending high-priority tasks for a user
func (r *TasksRepo) CountHighPriorityPending(ctx context.Context, userID string) (int, error) {
	timer := utils.TrackDBOperation("count", "tasks")
	defer timer.ObserveDuration()

	count, err := r.MongoCollection.CountDocuments(ctx, bson.M{
		"user_id":  userID,
		"complete": false,
		"priority": model.PriorityHigh,
	})
	if err != nil {
		utils.TrackError("database", "high_priority_count_failed")
		return 0, err
	}
	return int(count), nil
}
