package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"scribe/config"
	"scribe/database"
	"scribe/middleware"
	"scribe/models"
	"scribe/routes"
)

const testSecret = "test-session-secret"

func newTestRouter(t *testing.T) (*gin.Engine, *database.MemoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := database.NewMemoryStore()
	router := routes.SetupRouter(store, config.Config{
		Port:          "8080",
		DBName:        "scribe_test",
		SessionSecret: testSecret,
	})
	return router, store
}

func createUser(t *testing.T, store *database.MemoryStore, username, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user, err := store.CreateUser(context.Background(), models.User{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().Unix(),
	})
	require.NoError(t, err)
	return user
}

func createGroup(t *testing.T, store *database.MemoryStore, title, slug string) *models.Group {
	t.Helper()
	group, err := store.CreateGroup(context.Background(), models.Group{
		Title:       title,
		Slug:        slug,
		Description: "test group",
	})
	require.NoError(t, err)
	return group
}

func createPost(t *testing.T, store *database.MemoryStore, author *models.User, text string, groupID *primitive.ObjectID) *models.Post {
	t.Helper()
	post, err := store.CreatePost(context.Background(), models.Post{
		AuthorID:  author.ID,
		Text:      text,
		GroupID:   groupID,
		CreatedAt: time.Now().Unix(),
	})
	require.NoError(t, err)
	return post
}

func sessionCookie(t *testing.T, user *models.User) *http.Cookie {
	t.Helper()
	claims := &middleware.Claims{
		UserID: user.ID.Hex(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return &http.Cookie{Name: middleware.SessionCookie, Value: signed}
}

func doGet(t *testing.T, router *gin.Engine, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, path, nil)
	require.NoError(t, err)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func doPostForm(t *testing.T, router *gin.Engine, path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func postCount(t *testing.T, store *database.MemoryStore) int {
	t.Helper()
	posts, err := store.ListPosts(context.Background())
	require.NoError(t, err)
	return len(posts)
}
