package model

import (
	"oec/shared/model"

	"github.com/jmoiron/sqlx/types"
)

const (
	TableName  = "site_contents"
	EntityName = "site_content"

	FieldKey     = "key"
	FieldBody    = "body"
	FieldVersion = "version"
)

// Document keys editable from the admin panel.
const (
	KeySite              = "site"
	KeyAnnouncements     = "announcements"
	KeyAgreementTemplate = "agreement_template"
	KeyBrand             = "brand"
)

var Keys = []string{KeySite, KeyAnnouncements, KeyAgreementTemplate, KeyBrand}

// Content is one keyed JSON document rendered by the public site.
type Content struct {
	Key     string         `db:"key"`
	Body    types.JSONText `db:"body"`
	Version int            `db:"version"`
	model.Metadata
}
