package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"scribe/models"
)

type MongoStore struct {
	users  *mongo.Collection
	groups *mongo.Collection
	posts  *mongo.Collection
}

func NewMongoStore(client *mongo.Client, dbName string) *MongoStore {
	db := client.Database(dbName)
	return &MongoStore{
		users:  db.Collection("users"),
		groups: db.Collection("groups"),
		posts:  db.Collection("posts"),
	}
}

func (s *MongoStore) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if _, err := s.users.InsertOne(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

func (s *MongoStore) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := s.users.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return &user, nil
}

func (s *MongoStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.users.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return &user, nil
}

func (s *MongoStore) UpdateUserPassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error {
	res, err := s.users.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"passwordHash": passwordHash}})
	if err != nil {
		return fmt.Errorf("update user password: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("update user password: user %s not found", id.Hex())
	}
	return nil
}

func (s *MongoStore) CreateGroup(ctx context.Context, group models.Group) (*models.Group, error) {
	if group.ID.IsZero() {
		group.ID = primitive.NewObjectID()
	}
	if _, err := s.groups.InsertOne(ctx, group); err != nil {
		return nil, fmt.Errorf("create group: %w", err)
	}
	return &group, nil
}

func (s *MongoStore) ListGroups(ctx context.Context) ([]models.Group, error) {
	cursor, err := s.groups.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "title", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	defer cursor.Close(ctx)

	var groups []models.Group
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, fmt.Errorf("decode groups: %w", err)
	}
	return groups, nil
}

func (s *MongoStore) GetGroupByID(ctx context.Context, id primitive.ObjectID) (*models.Group, error) {
	var group models.Group
	err := s.groups.FindOne(ctx, bson.M{"_id": id}).Decode(&group)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get group by id: %w", err)
	}
	return &group, nil
}

func (s *MongoStore) GetGroupBySlug(ctx context.Context, slug string) (*models.Group, error) {
	var group models.Group
	err := s.groups.FindOne(ctx, bson.M{"slug": slug}).Decode(&group)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get group by slug: %w", err)
	}
	return &group, nil
}

func (s *MongoStore) CreatePost(ctx context.Context, post models.Post) (*models.Post, error) {
	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	post.Author = nil
	post.Group = nil
	if _, err := s.posts.InsertOne(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return &post, nil
}

func (s *MongoStore) GetPostByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	posts, err := s.aggregatePosts(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	if len(posts) == 0 {
		return nil, nil
	}
	return &posts[0], nil
}

// UpdatePost rewrites text and group only. AuthorID and CreatedAt are
// deliberately not part of the update document.
func (s *MongoStore) UpdatePost(ctx context.Context, id primitive.ObjectID, text string, groupID *primitive.ObjectID) error {
	update := bson.M{"$set": bson.M{"text": text}}
	if groupID != nil {
		update["$set"].(bson.M)["groupId"] = *groupID
	} else {
		update["$unset"] = bson.M{"groupId": ""}
	}

	res, err := s.posts.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("update post: post %s not found", id.Hex())
	}
	return nil
}

func (s *MongoStore) ListPosts(ctx context.Context) ([]models.Post, error) {
	posts, err := s.aggregatePosts(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

func (s *MongoStore) ListPostsByGroup(ctx context.Context, groupID primitive.ObjectID) ([]models.Post, error) {
	posts, err := s.aggregatePosts(ctx, bson.D{{Key: "groupId", Value: groupID}})
	if err != nil {
		return nil, fmt.Errorf("list posts by group: %w", err)
	}
	return posts, nil
}

func (s *MongoStore) ListPostsByAuthor(ctx context.Context, authorID primitive.ObjectID) ([]models.Post, error) {
	posts, err := s.aggregatePosts(ctx, bson.D{{Key: "authorId", Value: authorID}})
	if err != nil {
		return nil, fmt.Errorf("list posts by author: %w", err)
	}
	return posts, nil
}

// aggregatePosts fetches posts matching the filter, newest first, with
// author and group joined in. ObjectIDs break createdAt ties since they
// are themselves time-ordered.
func (s *MongoStore) aggregatePosts(ctx context.Context, match bson.D) ([]models.Post, error) {
	pipeline := mongo.Pipeline{}
	if match != nil {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: match}})
	}
	pipeline = append(pipeline,
		bson.D{{Key: "$sort", Value: bson.D{
			{Key: "createdAt", Value: -1},
			{Key: "_id", Value: -1},
		}}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "users"},
			{Key: "localField", Value: "authorId"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "author"},
		}}},
		bson.D{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$author"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "groups"},
			{Key: "localField", Value: "groupId"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "group"},
		}}},
		bson.D{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$group"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	)

	cursor, err := s.posts.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []models.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}
