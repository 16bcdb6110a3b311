package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"scribe/models"
)

// Store is everything the handlers need from persistence. Get* methods
// return (nil, nil) when the record does not exist; listings come back
// newest-first with Author and Group populated.
type Store interface {
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateUserPassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error

	CreateGroup(ctx context.Context, group models.Group) (*models.Group, error)
	ListGroups(ctx context.Context) ([]models.Group, error)
	GetGroupByID(ctx context.Context, id primitive.ObjectID) (*models.Group, error)
	GetGroupBySlug(ctx context.Context, slug string) (*models.Group, error)

	CreatePost(ctx context.Context, post models.Post) (*models.Post, error)
	GetPostByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	UpdatePost(ctx context.Context, id primitive.ObjectID, text string, groupID *primitive.ObjectID) error
	ListPosts(ctx context.Context) ([]models.Post, error)
	ListPostsByGroup(ctx context.Context, groupID primitive.ObjectID) ([]models.Post, error)
	ListPostsByAuthor(ctx context.Context, authorID primitive.ObjectID) ([]models.Post, error)
}

func Connect(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	log.Println("Connected to MongoDB successfully")
	return client, nil
}

func Disconnect(client *mongo.Client) error {
	if client == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.Disconnect(ctx); err != nil {
		return err
	}

	log.Println("Disconnected from MongoDB")
	return nil
}
