package repository

import (
	"context"

	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// GroupsRepo is the read-only group directory used to decorate breakdowns.
type GroupsRepo struct {
	MongoCollection *mongo.Collection
}

// Retrieves MongoDB collection for groups
func GetGroupsRepo(client *mongo.Client) *GroupsRepo {
	dbName := utils.GetEnvAsString("MONGO_DB", "taskweek")
	collectionName := utils.GetEnvAsString("GROUPS_COLLECTION", "groups")
	return &GroupsRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

// Retrieves all of a user's groups keyed by group ID
func (r *GroupsRepo) GroupsByUser(ctx context.Context, userID string) (map[string]model.Group, error) {
	timer := utils.TrackDBOperation("find", "groups")
	defer timer.ObserveDuration()

	cursor, err := r.MongoCollection.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		utils.TrackError("database", "group_fetch_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	var groups []model.Group
	if err = cursor.All(ctx, &groups); err != nil {
		utils.TrackError("database", "group_decode_failed")
		return nil, err
	}

	byID := make(map[string]model.Group, len(groups))
	for _, group := range groups {
		byID[group.GroupID] = group
	}
	return byID, nil
}

// Counts a user's groups
func (r *GroupsRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	timer := utils.TrackDBOperation("count", "groups")
	defer timer.ObserveDuration()

	count, err := r.MongoCollection.CountDocuments(ctx, bson.M{"user_id": userID})
	if err != nil {
		utils.TrackError("database", "group_count_failed")
		return 0, err
	}
	return int(count), nil
}
