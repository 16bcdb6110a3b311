package forms

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"scribe/database"
)

// PostForm carries the only two client-settable post fields. Author and
// creation time are never form inputs.
type PostForm struct {
	Text  string `form:"text"`
	Group string `form:"group"` // group id hex, empty for "no group"
}

// PostData is a validated, normalized form ready for persistence.
type PostData struct {
	Text    string
	GroupID *primitive.ObjectID
}

// Validate checks the form against the store and returns the normalized
// data, or a non-empty map of field name to message. Nothing is
// persisted here. The error return is a store failure, not a
// validation outcome.
func (f PostForm) Validate(ctx context.Context, store database.Store) (PostData, map[string]string, error) {
	errs := make(map[string]string)
	data := PostData{Text: strings.TrimSpace(f.Text)}

	if data.Text == "" {
		errs["text"] = "Text is required"
	}

	if g := strings.TrimSpace(f.Group); g != "" {
		groupID, err := primitive.ObjectIDFromHex(g)
		if err != nil {
			errs["group"] = "Choose a valid group"
		} else {
			group, err := store.GetGroupByID(ctx, groupID)
			if err != nil {
				return PostData{}, nil, err
			}
			if group == nil {
				errs["group"] = "Choose a valid group"
			} else {
				data.GroupID = &groupID
			}
		}
	}

	if len(errs) > 0 {
		return PostData{}, errs, nil
	}
	return data, nil, nil
}
