package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"scribe/config"
	"scribe/database"
	"scribe/forms"
	"scribe/middleware"
	"scribe/models"
	"scribe/pagination"
)

type PostsHandler struct {
	store database.Store
}

func NewPostsHandler(store database.Store) *PostsHandler {
	return &PostsHandler{store: store}
}

// Index is the global feed, newest first.
func (h *PostsHandler) Index(c *gin.Context) {
	ctx, cancel := storeContext()
	defer cancel()

	posts, err := h.store.ListPosts(ctx)
	if err != nil {
		renderServerError(c, h.store, "Index", err)
		return
	}

	page := pagination.Paginate(posts, c.Query("page"), config.PostsPerPage)
	render(c, h.store, http.StatusOK, "index.html", gin.H{"Page": page})
}

// GroupPosts lists one group's posts by slug.
func (h *PostsHandler) GroupPosts(c *gin.Context) {
	ctx, cancel := storeContext()
	defer cancel()

	group, err := h.store.GetGroupBySlug(ctx, c.Param("slug"))
	if err != nil {
		renderServerError(c, h.store, "GroupPosts", err)
		return
	}
	if group == nil {
		renderNotFound(c, h.store)
		return
	}

	posts, err := h.store.ListPostsByGroup(ctx, group.ID)
	if err != nil {
		renderServerError(c, h.store, "GroupPosts", err)
		return
	}

	page := pagination.Paginate(posts, c.Query("page"), config.PostsPerPage)
	render(c, h.store, http.StatusOK, "group_list.html", gin.H{
		"Group": group,
		"Page":  page,
	})
}

// Profile lists one author's posts by username.
func (h *PostsHandler) Profile(c *gin.Context) {
	ctx, cancel := storeContext()
	defer cancel()

	author, err := h.store.GetUserByUsername(ctx, c.Param("username"))
	if err != nil {
		renderServerError(c, h.store, "Profile", err)
		return
	}
	if author == nil {
		renderNotFound(c, h.store)
		return
	}

	posts, err := h.store.ListPostsByAuthor(ctx, author.ID)
	if err != nil {
		renderServerError(c, h.store, "Profile", err)
		return
	}

	page := pagination.Paginate(posts, c.Query("page"), config.PostsPerPage)
	render(c, h.store, http.StatusOK, "profile.html", gin.H{
		"Author":     author,
		"PostsCount": len(posts),
		"Page":       page,
	})
}

// PostDetail shows a single post.
func (h *PostsHandler) PostDetail(c *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		renderNotFound(c, h.store)
		return
	}

	ctx, cancel := storeContext()
	defer cancel()

	post, err := h.store.GetPostByID(ctx, postID)
	if err != nil {
		renderServerError(c, h.store, "PostDetail", err)
		return
	}
	if post == nil {
		renderNotFound(c, h.store)
		return
	}

	render(c, h.store, http.StatusOK, "post_detail.html", gin.H{"Post": post})
}

// PostCreate renders the empty form on GET and creates a post on POST.
// The author is always the logged-in user; the form has no say in it.
func (h *PostsHandler) PostCreate(c *gin.Context) {
	ctx, cancel := storeContext()
	defer cancel()

	author := sessionUser(c, h.store)
	if author == nil {
		c.Redirect(http.StatusFound, "/auth/login/")
		return
	}

	groups, err := h.store.ListGroups(ctx)
	if err != nil {
		renderServerError(c, h.store, "PostCreate", err)
		return
	}

	if c.Request.Method == http.MethodGet {
		render(c, h.store, http.StatusOK, "create_post.html", gin.H{
			"Form":   forms.PostForm{},
			"Groups": groups,
		})
		return
	}

	var form forms.PostForm
	_ = c.ShouldBind(&form)

	data, fieldErrs, err := form.Validate(ctx, h.store)
	if err != nil {
		renderServerError(c, h.store, "PostCreate", err)
		return
	}
	if fieldErrs != nil {
		render(c, h.store, http.StatusOK, "create_post.html", gin.H{
			"Form":   form,
			"Errors": fieldErrs,
			"Groups": groups,
		})
		return
	}

	post := models.Post{
		AuthorID:  author.ID,
		Text:      data.Text,
		GroupID:   data.GroupID,
		CreatedAt: time.Now().Unix(),
	}
	if _, err := h.store.CreatePost(ctx, post); err != nil {
		renderServerError(c, h.store, "PostCreate", err)
		return
	}

	c.Redirect(http.StatusFound, "/profile/"+author.Username+"/")
}

// PostEdit lets the author, and only the author, change a post's text
// and group. Anyone else is sent to the detail page without comment.
func (h *PostsHandler) PostEdit(c *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		renderNotFound(c, h.store)
		return
	}

	ctx, cancel := storeContext()
	defer cancel()

	post, err := h.store.GetPostByID(ctx, postID)
	if err != nil {
		renderServerError(c, h.store, "PostEdit", err)
		return
	}
	if post == nil {
		renderNotFound(c, h.store)
		return
	}

	detailURL := "/posts/" + post.ID.Hex() + "/"
	if c.GetString(middleware.ContextUserID) != post.AuthorID.Hex() {
		c.Redirect(http.StatusFound, detailURL)
		return
	}

	groups, err := h.store.ListGroups(ctx)
	if err != nil {
		renderServerError(c, h.store, "PostEdit", err)
		return
	}

	if c.Request.Method == http.MethodGet {
		form := forms.PostForm{Text: post.Text}
		if post.GroupID != nil {
			form.Group = post.GroupID.Hex()
		}
		render(c, h.store, http.StatusOK, "create_post.html", gin.H{
			"Form":   form,
			"Groups": groups,
			"IsEdit": true,
			"Post":   post,
		})
		return
	}

	var form forms.PostForm
	_ = c.ShouldBind(&form)

	data, fieldErrs, err := form.Validate(ctx, h.store)
	if err != nil {
		renderServerError(c, h.store, "PostEdit", err)
		return
	}
	if fieldErrs != nil {
		render(c, h.store, http.StatusOK, "create_post.html", gin.H{
			"Form":   form,
			"Errors": fieldErrs,
			"Groups": groups,
			"IsEdit": true,
			"Post":   post,
		})
		return
	}

	if err := h.store.UpdatePost(ctx, post.ID, data.Text, data.GroupID); err != nil {
		renderServerError(c, h.store, "PostEdit", err)
		return
	}

	c.Redirect(http.StatusFound, detailURL)
}
