package validator_test

import (
	"oec/shared/validator"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type priceRequest struct {
	Name   string              `json:"name"   validate:"required"`
	Amount decimal.Decimal     `json:"amount" validate:"money"`
	Extra  decimal.NullDecimal `json:"extra"  validate:"omitempty,money"`
	Day    string              `json:"day"    validate:"omitempty,day"`
	Email  string              `json:"email"  validate:"omitempty,email"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		data    priceRequest
		wantErr string
	}{
		{
			name: "valid request",
			data: priceRequest{Name: "hall", Amount: decimal.NewFromInt(3000), Day: "2025-01-02"},
		},
		{
			name:    "missing name",
			data:    priceRequest{Amount: decimal.NewFromInt(1)},
			wantErr: "Name is required",
		},
		{
			name:    "negative amount",
			data:    priceRequest{Name: "hall", Amount: decimal.NewFromInt(-1)},
			wantErr: "Amount must be a non-negative amount",
		},
		{
			name: "negative optional amount",
			data: priceRequest{
				Name:   "hall",
				Amount: decimal.Zero,
				Extra:  decimal.NewNullDecimal(decimal.NewFromFloat(-0.5)),
			},
			wantErr: "Extra must be a non-negative amount",
		},
		{
			name:    "malformed day",
			data:    priceRequest{Name: "hall", Day: "02/01/2025"},
			wantErr: "Day must be a date formatted as YYYY-MM-DD",
		},
		{
			name:    "invalid email",
			data:    priceRequest{Name: "hall", Email: "not-an-email"},
			wantErr: "Email must be a valid email address",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.data)

			if tt.wantErr == "" {
				assert.NoError(t, err)

				return
			}

			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestValidate(t *testing.T) {
	req := priceRequest{}

	err := validator.Validate(strings.NewReader(`{"name":"section","amount":"150.50"}`), &req)
	assert.NoError(t, err)
	assert.Equal(t, "section", req.Name)
	assert.True(t, req.Amount.Equal(decimal.RequireFromString("150.5")))

	err = validator.Validate(strings.NewReader(`{"name":`), &req)
	assert.Error(t, err)
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name    string
		field   any
		tag     string
		wantErr bool
	}{
		{name: "png data url allowed", field: "data:image/png;base64,AAAA", tag: "mimetypes=image/png image/jpeg"},
		{name: "pdf data url rejected", field: "data:application/pdf;base64,AAAA", tag: "mimetypes=image/png image/jpeg", wantErr: true},
		{name: "plain content type allowed", field: "application/pdf", tag: "mimetypes=application/pdf"},
		{name: "size within limit", field: int64(1024), tag: "maxfilesize=1"},
		{name: "size above limit", field: int64(2 * 1024 * 1024), tag: "maxfilesize=1", wantErr: true},
		{name: "valid day", field: "2024-02-29", tag: "day"},
		{name: "impossible day", field: "2023-02-29", tag: "day", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
