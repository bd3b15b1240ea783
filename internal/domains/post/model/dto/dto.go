package dto

import (
	"oec/internal/domains/post/model"
	"oec/shared"
	gDto "oec/shared/dto"
	gModel "oec/shared/model"
	"time"

	"github.com/google/uuid"
)

type CreatePostRequest struct {
	Title      string `json:"title"       validate:"required,min=3,max=200"`
	Slug       string `json:"slug"        validate:"omitempty,max=200"`
	Excerpt    string `json:"excerpt"     validate:"omitempty,max=500"`
	Body       string `json:"body"        validate:"required"`
	CoverImage string `json:"cover_image" validate:"omitempty,url"`
	Published  bool   `json:"published"`
}

// ToModel derives the slug from the title when none is given.
func (c *CreatePostRequest) ToModel(user string, now time.Time) model.Post {
	slug := c.Slug
	if slug == "" {
		slug = c.Title
	}

	post := model.Post{
		ID:         uuid.NewString(),
		Title:      c.Title,
		Slug:       model.Slugify(slug),
		Excerpt:    c.Excerpt,
		Body:       c.Body,
		CoverImage: c.CoverImage,
		Published:  c.Published,
		Metadata:   gModel.NewMetadata(user, now),
	}

	if c.Published {
		post.PublishedAt = &now
	}

	return post
}

type UpdatePostRequest struct {
	Title      string `db:"title"       json:"title"       validate:"omitempty,min=3,max=200"`
	Slug       string `db:"slug"        json:"slug"        validate:"omitempty,max=200"`
	Excerpt    string `db:"excerpt"     json:"excerpt"     validate:"omitempty,max=500"`
	Body       string `db:"body"        json:"body"`
	CoverImage string `db:"cover_image" json:"cover_image" validate:"omitempty,url"`
	Published  *bool  `db:"published"   json:"published"`
}

type PostResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt"`
	Body        string     `json:"body,omitempty"`
	CoverImage  string     `json:"cover_image"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"published_at"`
	gDto.Metadata
}

func (r *PostResponse) FromModel(model model.Post) {
	r.ID = model.ID
	r.Title = model.Title
	r.Slug = model.Slug
	r.Excerpt = model.Excerpt
	r.Body = model.Body
	r.CoverImage = model.CoverImage
	r.Published = model.Published
	r.PublishedAt = model.PublishedAt
	r.Metadata.FromModel(model.Metadata)
}

type GetPostsResponse struct {
	Posts     []PostResponse `json:"posts"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

// FromModels leaves bodies out of listings.
func (r *GetPostsResponse) FromModels(models []model.Post, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Posts = make([]PostResponse, len(models))
	for i, m := range models {
		r.Posts[i].FromModel(m)
		r.Posts[i].Body = ""
	}
}
