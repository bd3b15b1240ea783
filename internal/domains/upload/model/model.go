package model

import (
	"errors"

	"oec/infras/airtable"
	"oec/infras/s3"
	bookingModel "oec/internal/domains/booking/model"
)

const EntityName = "upload"

// Kind names what an uploaded file is for. Every kind except KindAsset drives a booking action.
type Kind string

const (
	KindPaymentProof    Kind = "payment_proof"
	KindAgreement       Kind = "agreement"
	KindSignedAgreement Kind = "signed_agreement"
	KindAsset           Kind = "asset"
)

var actions = map[Kind]bookingModel.Action{
	KindPaymentProof:    bookingModel.ActionSubmitPaymentProof,
	KindAgreement:       bookingModel.ActionSendAgreement,
	KindSignedAgreement: bookingModel.ActionSignAgreement,
}

// Action returns the booking action a kind performs.
func (k Kind) Action() (bookingModel.Action, bool) {
	action, ok := actions[k]

	return action, ok
}

// Directory is the object prefix for the kind.
func (k Kind) Directory() string {
	if k == KindAsset {
		return "assets"
	}

	return "bookings/" + string(k)
}

const (
	MirrorCategoryNotConfigured  = "not_configured"
	MirrorCategoryAuth           = "auth"
	MirrorCategoryNotFound       = "not_found"
	MirrorCategorySchemaMismatch = "schema_mismatch"
	MirrorCategoryUnavailable    = "unavailable"
)

// MirrorCategory sorts a spreadsheet mirror failure into the categories reported to clients.
func MirrorCategory(err error) string {
	switch {
	case errors.Is(err, airtable.ErrNotConfigured):
		return MirrorCategoryNotConfigured
	case errors.Is(err, airtable.ErrUnauthorized):
		return MirrorCategoryAuth
	case errors.Is(err, airtable.ErrNotFound):
		return MirrorCategoryNotFound
	case errors.Is(err, airtable.ErrSchemaMismatch):
		return MirrorCategorySchemaMismatch
	default:
		return MirrorCategoryUnavailable
	}
}

// IsStorageUnconfigured reports a missing media host configuration.
func IsStorageUnconfigured(err error) bool {
	return errors.Is(err, s3.ErrNotConfigured)
}
