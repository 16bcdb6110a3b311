package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"scribe/database"
	"scribe/middleware"
	"scribe/models"
)

const storeTimeout = 10 * time.Second

func storeContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), storeTimeout)
}

// render writes an HTML page, always exposing the logged-in user (if
// any) to the navigation partial as "User".
func render(c *gin.Context, store database.Store, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if _, ok := data["User"]; !ok {
		data["User"] = sessionUser(c, store)
	}
	c.HTML(status, name, data)
}

func renderNotFound(c *gin.Context, store database.Store) {
	render(c, store, http.StatusNotFound, "404.html", nil)
}

func renderServerError(c *gin.Context, store database.Store, op string, err error) {
	log.Printf("%s error: %v", op, err)
	render(c, store, http.StatusInternalServerError, "500.html", nil)
}

// sessionUser loads the user behind the session cookie, or nil for
// guests and stale sessions.
func sessionUser(c *gin.Context, store database.Store) *models.User {
	idStr := c.GetString(middleware.ContextUserID)
	if idStr == "" {
		return nil
	}
	id, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		return nil
	}

	ctx, cancel := storeContext()
	defer cancel()

	user, err := store.GetUserByID(ctx, id)
	if err != nil {
		log.Printf("sessionUser error: %v", err)
		return nil
	}
	return user
}
