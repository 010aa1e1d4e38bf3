package model

import "time"

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// UngroupedKey is the group breakdown key for facts recorded without a group.
const UngroupedKey = "ungrouped"

// CompletionFact records that a task was completed at a specific time.
// Facts are immutable: reviving a task deletes its fact, it is never edited.
type CompletionFact struct {
	FactID           string    `bson:"_id,omitempty" json:"id"`
	TaskID           string    `bson:"task_id" json:"task_id"`
	UserID           string    `bson:"user_id" json:"user_id"`
	GroupID          string    `bson:"group_id,omitempty" json:"group_id,omitempty"`
	Priority         Priority  `bson:"priority" json:"priority"`
	CompletedAt      time.Time `bson:"completed_at" json:"completed_at"`
	EstimatedMinutes int       `bson:"estimated_minutes,omitempty" json:"estimated_minutes,omitempty"`
}

// Group is the directory entry used to decorate group breakdowns.
type Group struct {
	GroupID string `bson:"_id,omitempty" json:"id"`
	UserID  string `bson:"user_id" json:"user_id"`
	Name    string `bson:"name" json:"name"`
	Color   string `bson:"color,omitempty" json:"color,omitempty"`
	Icon    string `bson:"icon,omitempty" json:"icon,omitempty"`
}
