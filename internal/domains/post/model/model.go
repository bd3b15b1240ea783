package model

import (
	"oec/shared/model"
	"regexp"
	"strings"
	"time"
)

const (
	TableName  = "posts"
	EntityName = "post"

	FieldID          = "id"
	FieldTitle       = "title"
	FieldSlug        = "slug"
	FieldCoverImage  = "cover_image"
	FieldPublished   = "published"
	FieldPublishedAt = "published_at"
)

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

type Post struct {
	ID          string     `db:"id"`
	Title       string     `db:"title"`
	Slug        string     `db:"slug"`
	Excerpt     string     `db:"excerpt"`
	Body        string     `db:"body"`
	CoverImage  string     `db:"cover_image"`
	Published   bool       `db:"published"`
	PublishedAt *time.Time `db:"published_at"`
	model.Metadata
}

// Slugify lowercases s and joins its ASCII letter and digit runs with "-".
func Slugify(s string) string {
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(s), "-"), "-")
}
