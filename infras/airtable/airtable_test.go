package airtable_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"oec/config"
	"oec/infras/airtable"
	"oec/infras/otel/mocks"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConfig(apiURL string) *config.Config {
	cfg := &config.Config{}
	cfg.External.Airtable.APIURL = apiURL
	cfg.External.Airtable.AccessToken = "pat-test"
	cfg.External.Airtable.BaseID = "appBase"
	cfg.External.Airtable.TableName = "Payment Proofs"
	cfg.External.Airtable.TimeoutSecs = 5

	return cfg
}

func TestCreateRecord_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/appBase/Payment Proofs", r.URL.Path)
		assert.Equal(t, "Bearer pat-test", r.Header.Get("Authorization"))

		body := map[string]any{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{"Booking ID": "b-1"}, body["fields"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"rec123","fields":{"Booking ID":"b-1"}}`))
	}))
	defer server.Close()

	client := airtable.New(newConfig(server.URL), mocks.NewOtel())

	recordID, err := client.CreateRecord(context.Background(), airtable.Fields{"Booking ID": "b-1"})

	require.NoError(t, err)
	assert.Equal(t, "rec123", recordID)
}

func TestCreateRecord_ErrorCategories(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		category error
	}{
		{
			name:     "unauthorized",
			status:   http.StatusUnauthorized,
			body:     `{"error":{"type":"AUTHENTICATION_REQUIRED","message":"Authentication required"}}`,
			category: airtable.ErrUnauthorized,
		},
		{
			name:     "not found as bare string",
			status:   http.StatusNotFound,
			body:     `{"error":"NOT_FOUND"}`,
			category: airtable.ErrNotFound,
		},
		{
			name:     "model not found behind 403",
			status:   http.StatusForbidden,
			body:     `{"error":{"type":"INVALID_PERMISSIONS_OR_MODEL_NOT_FOUND","message":"Invalid permissions, or the requested model was not found."}}`,
			category: airtable.ErrNotFound,
		},
		{
			name:     "unknown field",
			status:   http.StatusUnprocessableEntity,
			body:     `{"error":{"type":"UNKNOWN_FIELD_NAME","message":"Unknown field name: \"Amount\""}}`,
			category: airtable.ErrSchemaMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := airtable.New(newConfig(server.URL), mocks.NewOtel())

			recordID, err := client.CreateRecord(context.Background(), airtable.Fields{"Amount": 10})

			assert.Empty(t, recordID)
			assert.ErrorIs(t, err, tt.category)

			var apiErr *airtable.Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
		})
	}
}

func TestCreateRecord_ServerErrorHasNoCategory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := airtable.New(newConfig(server.URL), mocks.NewOtel())

	_, err := client.CreateRecord(context.Background(), airtable.Fields{})

	require.Error(t, err)
	assert.NotErrorIs(t, err, airtable.ErrUnauthorized)
	assert.NotErrorIs(t, err, airtable.ErrNotFound)
	assert.NotErrorIs(t, err, airtable.ErrSchemaMismatch)
	assert.EqualError(t, err, "airtable responded 500")
}

func TestCreateRecord_NotConfigured(t *testing.T) {
	cfg := newConfig("https://api.airtable.com/v0")
	cfg.External.Airtable.AccessToken = ""
	cfg.External.Airtable.BaseID = ""

	client := airtable.New(cfg, mocks.NewOtel())

	_, err := client.CreateRecord(context.Background(), airtable.Fields{})

	assert.ErrorIs(t, err, airtable.ErrNotConfigured)
	assert.EqualError(t, err, "airtable is not configured: missing EXTERNAL_AIRTABLE_ACCESS_TOKEN, EXTERNAL_AIRTABLE_BASE_ID")
}
