package blog

import (
	"errors"
	"fmt"
	"strings"
)

// Post is a single blog entry.
type Post struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  int    `json:"likes"`
}

// CreateRequest is the body accepted by POST /api/blogs. Likes is a pointer
// so an omitted value can be told apart from an explicit zero.
type CreateRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  *int   `json:"likes"`
}

// ValidationError reports one field that failed validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// ValidateCreate checks req and returns the post to persist. The returned
// error joins one *ValidationError per failing field.
func ValidateCreate(req CreateRequest) (Post, error) {
	var errs []error

	title := strings.TrimSpace(req.Title)
	if title == "" {
		errs = append(errs, &ValidationError{Field: "title", Reason: "is required"})
	}
	author := strings.TrimSpace(req.Author)
	if author == "" {
		errs = append(errs, &ValidationError{Field: "author", Reason: "is required"})
	}

	likes := 0
	if req.Likes != nil {
		likes = *req.Likes
		if likes < 0 {
			errs = append(errs, &ValidationError{Field: "likes", Reason: "must not be negative"})
		}
	}

	if len(errs) > 0 {
		return Post{}, errors.Join(errs...)
	}

	return Post{
		Title:  title,
		Author: author,
		URL:    strings.TrimSpace(req.URL),
		Likes:  likes,
	}, nil
}
