package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"oec/config"
	"oec/infras/otel/mocks"
	s3Mocks "oec/infras/s3/mocks"
	postMocks "oec/internal/domains/post/mocks"
	"oec/internal/domains/post/model"
	"oec/internal/domains/post/model/dto"
	"oec/internal/domains/post/service"
	cacheMocks "oec/shared/cache/mocks"
	"oec/shared/constant"
	gDto "oec/shared/dto"
	"oec/shared/failure"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type postFixture struct {
	repo *postMocks.MockPost
	s3   *s3Mocks.MockS3
	svc  service.Post
}

func newFixture(t *testing.T) postFixture {
	ctrl := gomock.NewController(t)

	f := postFixture{
		repo: postMocks.NewMockPost(ctrl),
		s3:   s3Mocks.NewMockS3(ctrl),
	}

	cache := cacheMocks.NewMockRedisCache(ctrl)
	cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss")).AnyTimes()
	cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.New(f.repo, &config.Config{}, cache, mocks.NewOtel(), f.s3)

	return f
}

func editorContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "editor-1")
}

func TestService_Create(t *testing.T) {
	t.Run("published post gets a slug and date", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, post model.Post) error {
				assert.Equal(t, "dormitory-renovation-complete", post.Slug)
				assert.NotNil(t, post.PublishedAt)
				assert.Equal(t, "editor-1", post.CreatedBy)

				return nil
			})

		res, err := f.svc.Create(editorContext(), dto.CreatePostRequest{
			Title:     "Dormitory renovation complete",
			Body:      "All rooms in block B were renovated.",
			Published: true,
		})

		require.NoError(t, err)
		assert.True(t, res.Published)
	})

	t.Run("draft has no publish date", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, post model.Post) error {
				assert.Nil(t, post.PublishedAt)
				assert.Equal(t, "custom-slug", post.Slug)

				return nil
			})

		_, err := f.svc.Create(editorContext(), dto.CreatePostRequest{Title: "Draft", Slug: "Custom Slug", Body: "..."})

		require.NoError(t, err)
	})

	t.Run("slug taken", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeUniqueViolation})

		_, err := f.svc.Create(editorContext(), dto.CreatePostRequest{Title: "Hall prices", Body: "..."})

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("title without slug characters", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Create(editorContext(), dto.CreatePostRequest{Title: "???", Body: "..."})

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestService_GetPublished(t *testing.T) {
	t.Run("adds the published filter", func(t *testing.T) {
		f := newFixture(t)

		check := func(filter gDto.FilterGroup) {
			require.Len(t, filter.Filters, 2)

			published, ok := filter.Filters[0].(gDto.Filter)
			require.True(t, ok)
			assert.Equal(t, model.FieldPublished, published.Field)
			assert.Equal(t, true, published.Value)
		}

		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
				check(filter)

				return 1, nil
			})
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Post, error) {
				check(filter)

				return []model.Post{{ID: "p1", Title: "News", Body: "long body", Published: true}}, nil
			})

		res, err := f.svc.GetPublished(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorAnd,
			Filters:  []any{gDto.Filter{Field: model.FieldTitle, Operator: gDto.FilterOperatorLike, Value: "news"}},
		})

		require.NoError(t, err)
		require.Len(t, res.Posts, 1)
		assert.Empty(t, res.Posts[0].Body)
	})

	t.Run("no caller filter", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
				assert.Len(t, filter.Filters, 1)

				return 0, nil
			})
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

		res, err := f.svc.GetPublished(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd})

		require.NoError(t, err)
		assert.Equal(t, 1, res.TotalPage)
	})
}

func TestService_GetPublishedByID(t *testing.T) {
	t.Run("draft is hidden", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Post{ID: "p1", Published: false}, nil)

		_, err := f.svc.GetPublishedByID(context.Background(), "p1")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("published", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Post{ID: "p1", Body: "text", Published: true}, nil)

		res, err := f.svc.GetPublishedByID(context.Background(), "p1")

		require.NoError(t, err)
		assert.Equal(t, "text", res.Body)
	})
}

func TestService_Update(t *testing.T) {
	t.Run("publishing stamps the date once", func(t *testing.T) {
		f := newFixture(t)
		published := true

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Post{ID: "p1"}, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.IsType(t, time.Time{}, fields[model.FieldPublishedAt])
				assert.Equal(t, &published, fields[model.FieldPublished])

				return nil
			})

		err := f.svc.Update(editorContext(), dto.UpdatePostRequest{Published: &published}, "p1")

		require.NoError(t, err)
	})

	t.Run("unpublishing clears the date", func(t *testing.T) {
		f := newFixture(t)
		published := false
		at := time.Now()

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Post{ID: "p1", Published: true, PublishedAt: &at}, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				value, ok := fields[model.FieldPublishedAt]
				assert.True(t, ok)
				assert.Nil(t, value)

				return nil
			})

		err := f.svc.Update(editorContext(), dto.UpdatePostRequest{Published: &published}, "p1")

		require.NoError(t, err)
	})

	t.Run("replaced cover is removed", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Post{ID: "p1", CoverImage: "https://cdn.oec.et/assets/old.png"}, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.s3.EXPECT().GetObjectNameFromURL("", "https://cdn.oec.et/assets/old.png").Return("assets/old.png")
		f.s3.EXPECT().DeleteFile(gomock.Any(), "", "", "assets/old.png").Return(nil).AnyTimes()

		err := f.svc.Update(editorContext(), dto.UpdatePostRequest{CoverImage: "https://cdn.oec.et/assets/new.png"}, "p1")

		require.NoError(t, err)
	})

	t.Run("slug is normalised", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Post{ID: "p1"}, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, "fresh-slug", fields[model.FieldSlug])

				return nil
			})

		err := f.svc.Update(editorContext(), dto.UpdatePostRequest{Slug: "Fresh Slug"}, "p1")

		require.NoError(t, err)
	})

	t.Run("missing", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Post{}, nil)

		err := f.svc.Update(editorContext(), dto.UpdatePostRequest{Title: "New title"}, "p9")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestService_Delete(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Post{ID: "p1", CoverImage: "https://elsewhere.example/x.png"}, nil)
	f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
	f.s3.EXPECT().GetObjectNameFromURL(gomock.Any(), gomock.Any()).Return("")

	err := f.svc.Delete(editorContext(), "p1")

	require.NoError(t, err)
}
