package airtable

//go:generate go run go.uber.org/mock/mockgen -source=./airtable.go -destination=./mocks/airtable_mock.go -package=mocks

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"oec/config"
	"oec/infras/otel"
	"oec/shared/constant"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	maxErrorBodyBytes = 4 << 10
)

var (
	ErrNotConfigured  = errors.New("airtable is not configured")
	ErrUnauthorized   = errors.New("airtable rejected the access token")
	ErrNotFound       = errors.New("airtable base or table not found")
	ErrSchemaMismatch = errors.New("airtable table does not match the submitted fields")
)

// Error is a non-2xx answer from the Airtable API. It unwraps to one of the
// category errors above when the status or error type is a known one.
type Error struct {
	StatusCode int
	Type       string
	Message    string
	category   error
}

func (e *Error) Error() string {
	message := fmt.Sprintf("airtable responded %d", e.StatusCode)
	if e.Type != "" {
		message += " " + e.Type
	}

	if e.Message != "" {
		message += ": " + e.Message
	}

	return message
}

func (e *Error) Unwrap() error {
	return e.category
}

type Fields map[string]any

type Airtable interface {
	CreateRecord(ctx context.Context, fields Fields) (recordID string, err error)
}

type airtableImpl struct {
	config *config.Config
	otel   otel.Otel
	client *http.Client
}

func New(config *config.Config, otel otel.Otel) Airtable {
	return &airtableImpl{
		config: config,
		otel:   otel,
		client: &http.Client{
			Timeout: time.Duration(config.External.Airtable.TimeoutSecs) * time.Second,
		},
	}
}

func (a *airtableImpl) checkConfigured() error {
	airtableConfig := a.config.External.Airtable
	missing := []string{}

	for name, value := range map[string]string{
		"EXTERNAL_AIRTABLE_API_URL":      airtableConfig.APIURL,
		"EXTERNAL_AIRTABLE_ACCESS_TOKEN": airtableConfig.AccessToken,
		"EXTERNAL_AIRTABLE_BASE_ID":      airtableConfig.BaseID,
		"EXTERNAL_AIRTABLE_TABLE_NAME":   airtableConfig.TableName,
	} {
		if value == "" {
			missing = append(missing, name)
		}
	}

	if len(missing) == 0 {
		return nil
	}

	slices.Sort(missing)

	return fmt.Errorf("%w: missing %s", ErrNotConfigured, strings.Join(missing, ", "))
}

type createRecordRequest struct {
	Fields   Fields `json:"fields"`
	Typecast bool   `json:"typecast"`
}

type createRecordResponse struct {
	ID string `json:"id"`
}

type errorResponse struct {
	Error json.RawMessage `json:"error"`
}

type errorDetail struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func (a *airtableImpl) CreateRecord(ctx context.Context, fields Fields) (recordID string, err error) {
	ctx, scope := a.otel.NewScope(ctx, constant.OtelAirtableScopeName, constant.OtelAirtableScopeName+".CreateRecord")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = a.checkConfigured(); err != nil {
		return constant.Empty, err
	}

	airtableConfig := a.config.External.Airtable
	endpoint := strings.TrimSuffix(airtableConfig.APIURL, "/") + "/" +
		url.PathEscape(airtableConfig.BaseID) + "/" + url.PathEscape(airtableConfig.TableName)

	body, err := json.Marshal(createRecordRequest{Fields: fields, Typecast: true})
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to marshal airtable record: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to build airtable request: %w", err)
	}

	req.Header.Set(constant.RequestHeaderAuthorization, "Bearer "+airtableConfig.AccessToken)
	req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)

	scope.SetAttributes(map[string]any{
		"airtable.base":  airtableConfig.BaseID,
		"airtable.table": airtableConfig.TableName,
	})

	res, err := a.client.Do(req)
	if err != nil {
		log.Error().Err(err).Msg("failed to call airtable")

		return constant.Empty, fmt.Errorf("failed to call airtable: %w", err)
	}
	defer res.Body.Close()

	scope.SetAttribute("http.status_code", res.StatusCode)

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		apiErr := decodeError(res)

		log.Error().Err(apiErr).Int("status", res.StatusCode).Msg("airtable rejected record")

		return constant.Empty, apiErr
	}

	created := createRecordResponse{}
	if err = json.NewDecoder(res.Body).Decode(&created); err != nil {
		return constant.Empty, fmt.Errorf("failed to decode airtable response: %w", err)
	}

	return created.ID, nil
}

func decodeError(res *http.Response) *Error {
	apiErr := &Error{StatusCode: res.StatusCode}

	raw, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBodyBytes))

	payload := errorResponse{}
	if json.Unmarshal(raw, &payload) == nil && len(payload.Error) > 0 {
		detail := errorDetail{}
		if json.Unmarshal(payload.Error, &detail) != nil {
			// some endpoints answer with a bare string, e.g. {"error":"NOT_FOUND"}
			_ = json.Unmarshal(payload.Error, &detail.Type)
		}

		apiErr.Type = detail.Type
		apiErr.Message = detail.Message
	}

	switch {
	case res.StatusCode == http.StatusUnauthorized,
		apiErr.Type == "AUTHENTICATION_REQUIRED",
		apiErr.Type == "INVALID_PERMISSIONS":
		apiErr.category = ErrUnauthorized
	case res.StatusCode == http.StatusNotFound,
		apiErr.Type == "NOT_FOUND",
		apiErr.Type == "TABLE_NOT_FOUND",
		apiErr.Type == "INVALID_PERMISSIONS_OR_MODEL_NOT_FOUND":
		apiErr.category = ErrNotFound
	case res.StatusCode == http.StatusUnprocessableEntity,
		apiErr.Type == "UNKNOWN_FIELD_NAME",
		apiErr.Type == "INVALID_VALUE_FOR_COLUMN":
		apiErr.category = ErrSchemaMismatch
	case res.StatusCode == http.StatusForbidden:
		apiErr.category = ErrUnauthorized
	}

	return apiErr
}
