package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Group is a read-only category for posts. Groups are created
// out-of-band (seed script or shell); no handler mutates them.
type Group struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Slug        string             `bson:"slug" json:"slug"`
	Description string             `bson:"description" json:"description"`
}
