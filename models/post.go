package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Post struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	AuthorID  primitive.ObjectID  `bson:"authorId" json:"authorId"`
	Text      string              `bson:"text" json:"text"`
	GroupID   *primitive.ObjectID `bson:"groupId,omitempty" json:"groupId,omitempty"` // Optional
	CreatedAt int64               `bson:"createdAt" json:"createdAt"`
	Author    *User               `bson:"author,omitempty" json:"author,omitempty"` // Populated on reads only
	Group     *Group              `bson:"group,omitempty" json:"group,omitempty"`   // Populated on reads only
}
