package middleware

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	SessionCookie = "session"
	sessionTTL    = 24 * time.Hour

	// ContextUserID is where CurrentUser leaves the authenticated
	// user's id for downstream handlers.
	ContextUserID = "userId"
)

type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// IssueSession sets a signed session cookie for the given user.
func IssueSession(c *gin.Context, userID, secret string) error {
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(sessionTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return err
	}

	c.SetCookie(SessionCookie, signed, int(sessionTTL.Seconds()), "/", "", false, true)
	return nil
}

func ClearSession(c *gin.Context) {
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
}

// CurrentUser resolves the session cookie into a user id on the gin
// context. It never aborts; public pages just see no identity.
func CurrentUser(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(SessionCookie)
		if err != nil || cookie == "" {
			c.Next()
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(cookie, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.Next()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Next()
	}
}

// RequireLogin bounces anonymous requests to the login page, keeping
// the original path in ?next=.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextUserID) == "" {
			c.Redirect(http.StatusFound, "/auth/login/?next="+url.QueryEscape(c.Request.URL.Path))
			c.Abort()
			return
		}
		c.Next()
	}
}
