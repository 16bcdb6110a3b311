package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"scribe/database"
)

// Static pages. They still go through render so the nav shows the
// logged-in user.

func AboutAuthor(store database.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		render(c, store, http.StatusOK, "about_author.html", nil)
	}
}

func AboutTech(store database.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		render(c, store, http.StatusOK, "about_tech.html", nil)
	}
}
