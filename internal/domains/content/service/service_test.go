package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"oec/config"
	"oec/infras/otel/mocks"
	contentMocks "oec/internal/domains/content/mocks"
	"oec/internal/domains/content/model"
	"oec/internal/domains/content/model/dto"
	"oec/internal/domains/content/service"
	cacheMocks "oec/shared/cache/mocks"
	"oec/shared/constant"
	gDto "oec/shared/dto"
	"oec/shared/failure"

	"github.com/jmoiron/sqlx/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newService(t *testing.T) (*contentMocks.MockContent, service.Content) {
	ctrl := gomock.NewController(t)
	repo := contentMocks.NewMockContent(ctrl)

	cache := cacheMocks.NewMockRedisCache(ctrl)
	cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss")).AnyTimes()
	cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return repo, service.New(repo, &config.Config{}, cache, mocks.NewOtel())
}

func editorContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "editor-1")
}

func TestService_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, svc := newService(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Content{
			Key:     model.KeyBrand,
			Body:    types.JSONText(`{"name":"Oromia Education Center"}`),
			Version: 4,
		}, nil)

		res, err := svc.Get(context.Background(), model.KeyBrand)

		require.NoError(t, err)
		assert.Equal(t, 4, res.Version)
		assert.JSONEq(t, `{"name":"Oromia Education Center"}`, string(res.Body))
	})

	t.Run("missing", func(t *testing.T) {
		repo, svc := newService(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Content{}, nil)

		_, err := svc.Get(context.Background(), model.KeySite)

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestService_Put(t *testing.T) {
	body := json.RawMessage(`{"items":[{"title":"Closed on holidays"}]}`)

	t.Run("creates a new document", func(t *testing.T) {
		repo, svc := newService(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Content{}, nil)
		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, content model.Content) error {
				assert.Equal(t, model.KeyAnnouncements, content.Key)
				assert.Equal(t, 1, content.Version)
				assert.Equal(t, "editor-1", content.CreatedBy)

				return nil
			})

		res, err := svc.Put(editorContext(), model.KeyAnnouncements, dto.PutContentRequest{Body: body})

		require.NoError(t, err)
		assert.Equal(t, 1, res.Version)
	})

	t.Run("replaces the loaded version", func(t *testing.T) {
		repo, svc := newService(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Content{Key: model.KeyAnnouncements, Version: 2}, nil)
		repo.EXPECT().UpdateAffected(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, filter gDto.FilterGroup) (int64, error) {
				assert.Equal(t, 3, fields[model.FieldVersion])
				require.Len(t, filter.Filters, 2)
				assert.Equal(t, 2, filter.Filters[1].(gDto.Filter).Value)

				return 1, nil
			})

		res, err := svc.Put(editorContext(), model.KeyAnnouncements, dto.PutContentRequest{Body: body, Version: 2})

		require.NoError(t, err)
		assert.Equal(t, 3, res.Version)
		assert.JSONEq(t, string(body), string(res.Body))
	})

	t.Run("stale version", func(t *testing.T) {
		repo, svc := newService(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Content{Key: model.KeyAnnouncements, Version: 5}, nil)

		_, err := svc.Put(editorContext(), model.KeyAnnouncements, dto.PutContentRequest{Body: body, Version: 4})

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("concurrent writer wins", func(t *testing.T) {
		repo, svc := newService(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Content{Key: model.KeyAnnouncements, Version: 2}, nil)
		repo.EXPECT().UpdateAffected(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil)

		_, err := svc.Put(editorContext(), model.KeyAnnouncements, dto.PutContentRequest{Body: body, Version: 2})

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("versioned put on a missing key", func(t *testing.T) {
		repo, svc := newService(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Content{}, nil)

		_, err := svc.Put(editorContext(), model.KeySite, dto.PutContentRequest{Body: body, Version: 1})

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
