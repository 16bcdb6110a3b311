package pagination

import (
	"strconv"

	"scribe/models"
)

// Page is one fixed-size window over a post listing.
type Page struct {
	Posts       []models.Post
	Number      int
	TotalPages  int
	HasPrevious bool
	HasNext     bool
	PrevPage    int
	NextPage    int
}

// Paginate slices posts (already ordered) into windows of perPage and
// returns the window named by pageParam. A missing or malformed page
// parameter means page 1; a page past the end clamps to the last page;
// an empty listing is a single empty page, never an error.
func Paginate(posts []models.Post, pageParam string, perPage int) Page {
	number, err := strconv.Atoi(pageParam)
	if err != nil || number < 1 {
		number = 1
	}

	total := (len(posts) + perPage - 1) / perPage
	if total == 0 {
		total = 1
	}
	if number > total {
		number = total
	}

	start := (number - 1) * perPage
	end := start + perPage
	if start > len(posts) {
		start = len(posts)
	}
	if end > len(posts) {
		end = len(posts)
	}

	return Page{
		Posts:       posts[start:end],
		Number:      number,
		TotalPages:  total,
		HasPrevious: number > 1,
		HasNext:     number < total,
		PrevPage:    number - 1,
		NextPage:    number + 1,
	}
}
