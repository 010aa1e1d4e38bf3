package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func SetupIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	completionsCollection := db.Collection("completions")
	tasksCollection := db.Collection("tasks")
	groupsCollection := db.Collection("groups")

	completionIndexes := []mongo.IndexModel{
		// Range queries: every window aggregation and the streak walk hit this
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "completed_at", Value: -1},
			},
			Options: options.Index().
				SetName("user_completions_date").
				SetUnique(false),
		},
		// Revival deletes by task
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "task_id", Value: 1},
			},
			Options: options.Index().
				SetName("user_task_completions"),
		},
	}

	taskIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().
				SetName("user_id_index"),
		},
		// Overdue counts filter on completion status and due date
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "complete", Value: 1},
				{Key: "due_date", Value: 1},
			},
			Options: options.Index().
				SetName("user_task_status_due"),
		},
	}

	groupIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().
				SetName("user_id_index"),
		},
	}

	_, err := completionsCollection.Indexes().CreateMany(ctx, completionIndexes)
	if err != nil {
		return fmt.Errorf("failed to create completions indexes: %w", err)
	}

	_, err = tasksCollection.Indexes().CreateMany(ctx, taskIndexes)
	if err != nil {
		return fmt.Errorf("failed to create tasks indexes: %w", err)
	}

	_, err = groupsCollection.Indexes().CreateMany(ctx, groupIndexes)
	if err != nil {
		return fmt.Errorf("failed to create groups indexes: %w", err)
	}

	log.Println("Successfully created all indexes")
	return nil
}
