package handlers

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"scribe/database"
	"scribe/middleware"
	"scribe/models"
)

type AuthHandler struct {
	store  database.Store
	secret string
}

func NewAuthHandler(store database.Store, secret string) *AuthHandler {
	return &AuthHandler{store: store, secret: secret}
}

type SignupForm struct {
	Username  string `form:"username"`
	Password1 string `form:"password1"`
	Password2 string `form:"password2"`
}

type LoginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

type PasswordChangeForm struct {
	OldPassword  string `form:"old_password"`
	NewPassword1 string `form:"new_password1"`
	NewPassword2 string `form:"new_password2"`
}

// Signup renders the registration form and creates the account,
// logging the new user straight in.
func (h *AuthHandler) Signup(c *gin.Context) {
	if c.Request.Method == http.MethodGet {
		render(c, h.store, http.StatusOK, "signup.html", gin.H{"Form": SignupForm{}})
		return
	}

	var form SignupForm
	_ = c.ShouldBind(&form)
	form.Username = strings.TrimSpace(form.Username)

	ctx, cancel := storeContext()
	defer cancel()

	errs := make(map[string]string)
	if form.Username == "" {
		errs["username"] = "Username is required"
	} else {
		existing, err := h.store.GetUserByUsername(ctx, form.Username)
		if err != nil {
			renderServerError(c, h.store, "Signup", err)
			return
		}
		if existing != nil {
			errs["username"] = "Username already taken"
		}
	}
	if len(form.Password1) < 6 {
		errs["password1"] = "Password must be at least 6 characters"
	}
	if form.Password1 != form.Password2 {
		errs["password2"] = "Passwords do not match"
	}

	if len(errs) > 0 {
		render(c, h.store, http.StatusOK, "signup.html", gin.H{"Form": form, "Errors": errs})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(form.Password1), bcrypt.DefaultCost)
	if err != nil {
		renderServerError(c, h.store, "Signup", err)
		return
	}

	user, err := h.store.CreateUser(ctx, models.User{
		Username:     form.Username,
		PasswordHash: string(hashed),
		CreatedAt:    time.Now().Unix(),
	})
	if err != nil {
		renderServerError(c, h.store, "Signup", err)
		return
	}

	if err := middleware.IssueSession(c, user.ID.Hex(), h.secret); err != nil {
		renderServerError(c, h.store, "Signup", err)
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// Login authenticates against the stored bcrypt hash and issues the
// session cookie. A failed attempt re-renders with one generic message.
func (h *AuthHandler) Login(c *gin.Context) {
	next := safeNext(c)

	if c.Request.Method == http.MethodGet {
		render(c, h.store, http.StatusOK, "login.html", gin.H{"Form": LoginForm{}, "Next": next})
		return
	}

	var form LoginForm
	_ = c.ShouldBind(&form)
	form.Username = strings.TrimSpace(form.Username)

	ctx, cancel := storeContext()
	defer cancel()

	user, err := h.store.GetUserByUsername(ctx, form.Username)
	if err != nil {
		renderServerError(c, h.store, "Login", err)
		return
	}

	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(form.Password)) != nil {
		render(c, h.store, http.StatusOK, "login.html", gin.H{
			"Form":  form,
			"Next":  next,
			"Error": "Invalid username or password",
		})
		return
	}

	if err := middleware.IssueSession(c, user.ID.Hex(), h.secret); err != nil {
		renderServerError(c, h.store, "Login", err)
		return
	}

	if next == "" {
		next = "/"
	}
	c.Redirect(http.StatusFound, next)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.ClearSession(c)
	c.Redirect(http.StatusFound, "/")
}

// PasswordChange requires the current password before accepting a new
// one. Mounted behind RequireLogin.
func (h *AuthHandler) PasswordChange(c *gin.Context) {
	user := sessionUser(c, h.store)
	if user == nil {
		c.Redirect(http.StatusFound, "/auth/login/")
		return
	}

	if c.Request.Method == http.MethodGet {
		render(c, h.store, http.StatusOK, "password_change.html", gin.H{"Form": PasswordChangeForm{}})
		return
	}

	var form PasswordChangeForm
	_ = c.ShouldBind(&form)

	errs := make(map[string]string)
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(form.OldPassword)) != nil {
		errs["old_password"] = "Current password is incorrect"
	}
	if len(form.NewPassword1) < 6 {
		errs["new_password1"] = "Password must be at least 6 characters"
	}
	if form.NewPassword1 != form.NewPassword2 {
		errs["new_password2"] = "Passwords do not match"
	}

	if len(errs) > 0 {
		render(c, h.store, http.StatusOK, "password_change.html", gin.H{"Form": form, "Errors": errs})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(form.NewPassword1), bcrypt.DefaultCost)
	if err != nil {
		renderServerError(c, h.store, "PasswordChange", err)
		return
	}

	ctx, cancel := storeContext()
	defer cancel()

	if err := h.store.UpdateUserPassword(ctx, user.ID, string(hashed)); err != nil {
		renderServerError(c, h.store, "PasswordChange", err)
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// safeNext only allows same-site relative redirect targets.
func safeNext(c *gin.Context) string {
	next := c.Query("next")
	if next == "" {
		next = c.PostForm("next")
	}
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return ""
	}
	if _, err := url.Parse(next); err != nil {
		return ""
	}
	return next
}
