package database

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"scribe/models"
)

// MemoryStore is a mutex-guarded Store used by the tests and handy for
// local hacking without a Mongo instance. Semantics mirror MongoStore:
// Get* return (nil, nil) on miss, listings are newest-first with
// author/group populated.
type MemoryStore struct {
	mu     sync.RWMutex
	users  []models.User
	groups []models.Group
	posts  []models.Post
	seq    int64 // insertion counter, breaks createdAt ties
	order  map[primitive.ObjectID]int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{order: make(map[primitive.ObjectID]int64)}
}

func (s *MemoryStore) CreateUser(_ context.Context, user models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == user.Username {
			return nil, fmt.Errorf("create user: username %q already taken", user.Username)
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	s.users = append(s.users, user)
	return &user, nil
}

func (s *MemoryStore) GetUserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.ID == id {
			user := u
			return &user, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			user := u
			return &user, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) UpdateUserPassword(_ context.Context, id primitive.ObjectID, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].ID == id {
			s.users[i].PasswordHash = passwordHash
			return nil
		}
	}
	return fmt.Errorf("update user password: user %s not found", id.Hex())
}

func (s *MemoryStore) CreateGroup(_ context.Context, group models.Group) (*models.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, g := range s.groups {
		if g.Slug == group.Slug {
			return nil, fmt.Errorf("create group: slug %q already taken", group.Slug)
		}
	}
	if group.ID.IsZero() {
		group.ID = primitive.NewObjectID()
	}
	s.groups = append(s.groups, group)
	return &group, nil
}

func (s *MemoryStore) ListGroups(_ context.Context) ([]models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	groups := make([]models.Group, len(s.groups))
	copy(groups, s.groups)
	sort.Slice(groups, func(i, j int) bool { return groups[i].Title < groups[j].Title })
	return groups, nil
}

func (s *MemoryStore) GetGroupByID(_ context.Context, id primitive.ObjectID) (*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.groupByID(id), nil
}

func (s *MemoryStore) GetGroupBySlug(_ context.Context, slug string) (*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, g := range s.groups {
		if g.Slug == slug {
			group := g
			return &group, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) CreatePost(_ context.Context, post models.Post) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	post.Author = nil
	post.Group = nil
	s.seq++
	s.order[post.ID] = s.seq
	s.posts = append(s.posts, post)
	return &post, nil
}

func (s *MemoryStore) GetPostByID(_ context.Context, id primitive.ObjectID) (*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.posts {
		if p.ID == id {
			post := s.populate(p)
			return &post, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) UpdatePost(_ context.Context, id primitive.ObjectID, text string, groupID *primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.posts {
		if s.posts[i].ID == id {
			s.posts[i].Text = text
			s.posts[i].GroupID = groupID
			return nil
		}
	}
	return fmt.Errorf("update post: post %s not found", id.Hex())
}

func (s *MemoryStore) ListPosts(_ context.Context) ([]models.Post, error) {
	return s.listWhere(func(models.Post) bool { return true }), nil
}

func (s *MemoryStore) ListPostsByGroup(_ context.Context, groupID primitive.ObjectID) ([]models.Post, error) {
	return s.listWhere(func(p models.Post) bool {
		return p.GroupID != nil && *p.GroupID == groupID
	}), nil
}

func (s *MemoryStore) ListPostsByAuthor(_ context.Context, authorID primitive.ObjectID) ([]models.Post, error) {
	return s.listWhere(func(p models.Post) bool { return p.AuthorID == authorID }), nil
}

func (s *MemoryStore) listWhere(keep func(models.Post) bool) []models.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var posts []models.Post
	for _, p := range s.posts {
		if keep(p) {
			posts = append(posts, s.populate(p))
		}
	}
	sort.Slice(posts, func(i, j int) bool {
		if posts[i].CreatedAt != posts[j].CreatedAt {
			return posts[i].CreatedAt > posts[j].CreatedAt
		}
		return s.order[posts[i].ID] > s.order[posts[j].ID]
	})
	return posts
}

// populate attaches copies of the author and group. Callers hold the lock.
func (s *MemoryStore) populate(p models.Post) models.Post {
	for _, u := range s.users {
		if u.ID == p.AuthorID {
			author := u
			p.Author = &author
			break
		}
	}
	if p.GroupID != nil {
		p.Group = s.groupByID(*p.GroupID)
	}
	return p
}

func (s *MemoryStore) groupByID(id primitive.ObjectID) *models.Group {
	for _, g := range s.groups {
		if g.ID == id {
			group := g
			return &group
		}
	}
	return nil
}
