package upload

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"oec/infras/otel"
	"oec/internal/domains/upload/model"
	"oec/internal/domains/upload/model/dto"
	"oec/internal/domains/upload/service"
	"oec/shared/constant"
	"oec/shared/failure"
	"oec/shared/validator"
	"oec/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

var errFileRequired = errors.New("file is required")

type Handler struct {
	service service.Upload
	otel    otel.Otel
}

func New(service service.Upload, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/uploads", func(routerGroup chi.Router) {
		routerGroup.Post("/payment-proof", handler.PaymentProof)
		routerGroup.Post("/agreement", handler.Agreement)
		routerGroup.Post("/signed-agreement", handler.SignedAgreement)
		routerGroup.Post("/asset", handler.Asset)
	})
}

// PaymentProof stores a transfer receipt, moves the booking to awaiting verification and mirrors
// the payment to the spreadsheet.
// @Summary Upload a payment proof
// @Tags Upload
// @Accept multipart/form-data
// @Produce json
// @Param booking_id formData string true "Booking ID"
// @Param version formData integer true "Booking version"
// @Param notes formData string false "Notes"
// @Param file formData file true "PDF or image, up to 5 MB"
// @Success 200 {object} response.Data[dto.UploadResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 503 {object} response.Error
// @Router /v1/uploads/payment-proof [post]
// @Security BearerAuth
func (handler *Handler) PaymentProof(w http.ResponseWriter, r *http.Request) {
	handler.document(w, r, model.KindPaymentProof)
}

// Agreement attaches the agreement sent to the requester.
// @Summary Upload an agreement
// @Tags Upload
// @Accept multipart/form-data
// @Produce json
// @Param booking_id formData string true "Booking ID"
// @Param version formData integer true "Booking version"
// @Param notes formData string false "Notes"
// @Param file formData file true "PDF or image, up to 5 MB"
// @Success 200 {object} response.Data[dto.UploadResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/uploads/agreement [post]
// @Security BearerAuth
func (handler *Handler) Agreement(w http.ResponseWriter, r *http.Request) {
	handler.document(w, r, model.KindAgreement)
}

// SignedAgreement attaches the agreement signed by the requester.
// @Summary Upload a signed agreement
// @Tags Upload
// @Accept multipart/form-data
// @Produce json
// @Param booking_id formData string true "Booking ID"
// @Param version formData integer true "Booking version"
// @Param notes formData string false "Notes"
// @Param file formData file true "PDF or image, up to 5 MB"
// @Success 200 {object} response.Data[dto.UploadResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/uploads/signed-agreement [post]
// @Security BearerAuth
func (handler *Handler) SignedAgreement(w http.ResponseWriter, r *http.Request) {
	handler.document(w, r, model.KindSignedAgreement)
}

func (handler *Handler) document(w http.ResponseWriter, r *http.Request, kind model.Kind) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Document")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, failure.BadRequest(fmt.Errorf("failed to parse multipart form: %w", err)))

		return
	}

	file, fileHeader, err := r.FormFile(constant.FormFile)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, failure.BadRequest(errFileRequired))

		return
	}
	defer file.Close()

	version, _ := strconv.Atoi(r.FormValue("version"))

	req := dto.DocumentRequest{
		BookingID: r.FormValue("booking_id"),
		Version:   version,
		Notes:     r.FormValue("notes"),
		File:      dto.NewFile(file, fileHeader),
	}

	if err = validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Document(ctx, kind, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("kind", string(kind)).Msg("failed to upload document")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// Asset stores a site image.
// @Summary Upload a site asset
// @Tags Upload
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image, up to 2 MB"
// @Success 201 {object} response.Data[dto.UploadResponse]
// @Failure 400 {object} response.Error
// @Failure 503 {object} response.Error
// @Router /v1/uploads/asset [post]
// @Security BearerAuth
func (handler *Handler) Asset(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Asset")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, failure.BadRequest(fmt.Errorf("failed to parse multipart form: %w", err)))

		return
	}

	file, fileHeader, err := r.FormFile(constant.FormFile)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, failure.BadRequest(errFileRequired))

		return
	}
	defer file.Close()

	req := dto.NewAssetRequest(file, fileHeader)
	if err = validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Asset(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload asset")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}
