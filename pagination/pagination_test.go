package pagination_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scribe/config"
	"scribe/models"
	"scribe/pagination"
)

func makePosts(n int) []models.Post {
	posts := make([]models.Post, n)
	for i := range posts {
		posts[i].Text = fmt.Sprintf("post %d", i)
	}
	return posts
}

func TestPaginateSplitsFullAndLastPage(t *testing.T) {
	posts := makePosts(config.PaginationTestAmount)

	first := pagination.Paginate(posts, "1", config.PostsPerPage)
	require.Len(t, first.Posts, config.PostsPerPage)
	assert.Equal(t, 1, first.Number)
	assert.Equal(t, 2, first.TotalPages)
	assert.True(t, first.HasNext)
	assert.False(t, first.HasPrevious)
	assert.Equal(t, "post 0", first.Posts[0].Text)

	second := pagination.Paginate(posts, "2", config.PostsPerPage)
	require.Len(t, second.Posts, config.PaginationTestAmount-config.PostsPerPage)
	assert.Equal(t, 2, second.Number)
	assert.False(t, second.HasNext)
	assert.True(t, second.HasPrevious)
	assert.Equal(t, 1, second.PrevPage)
	assert.Equal(t, "post 10", second.Posts[0].Text)
}

func TestPaginateDefaultsToFirstPage(t *testing.T) {
	posts := makePosts(config.PaginationTestAmount)

	for _, param := range []string{"", "abc", "-3", "0", "1.5"} {
		page := pagination.Paginate(posts, param, config.PostsPerPage)
		assert.Equal(t, 1, page.Number, "param %q", param)
		assert.Len(t, page.Posts, config.PostsPerPage, "param %q", param)
	}
}

func TestPaginateClampsPastTheEnd(t *testing.T) {
	posts := makePosts(config.PaginationTestAmount)

	page := pagination.Paginate(posts, "99", config.PostsPerPage)
	assert.Equal(t, 2, page.Number)
	assert.Len(t, page.Posts, 3)
	assert.False(t, page.HasNext)
}

func TestPaginateEmptyListing(t *testing.T) {
	page := pagination.Paginate(nil, "", config.PostsPerPage)
	assert.Empty(t, page.Posts)
	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 1, page.TotalPages)
	assert.False(t, page.HasNext)
	assert.False(t, page.HasPrevious)
}

func TestPaginateExactMultiple(t *testing.T) {
	posts := makePosts(2 * config.PostsPerPage)

	page := pagination.Paginate(posts, "2", config.PostsPerPage)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Posts, config.PostsPerPage)
	assert.False(t, page.HasNext)
}
