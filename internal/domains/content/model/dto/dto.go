package dto

import (
	"encoding/json"
	"oec/internal/domains/content/model"
	gDto "oec/shared/dto"
	gModel "oec/shared/model"
	"time"

	"github.com/jmoiron/sqlx/types"
)

// PutContentRequest replaces a document. Version is the one the editor loaded, 0 for a new key.
type PutContentRequest struct {
	Body    json.RawMessage `json:"body"    validate:"required,json"`
	Version int             `json:"version" validate:"min=0"`
}

func (p *PutContentRequest) ToModel(key, user string, now time.Time) model.Content {
	return model.Content{
		Key:      key,
		Body:     types.JSONText(p.Body),
		Version:  1,
		Metadata: gModel.NewMetadata(user, now),
	}
}

type ContentResponse struct {
	Key     string          `json:"key"`
	Body    json.RawMessage `json:"body"    swaggertype:"object"`
	Version int             `json:"version"`
	gDto.Metadata
}

func (r *ContentResponse) FromModel(model model.Content) {
	r.Key = model.Key
	r.Body = json.RawMessage(model.Body)
	r.Version = model.Version
	r.Metadata.FromModel(model.Metadata)
}
