package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"path"

	"oec/config"
	"oec/infras/airtable"
	"oec/infras/otel"
	"oec/infras/s3"
	bookingDto "oec/internal/domains/booking/model/dto"
	bookingService "oec/internal/domains/booking/service"
	"oec/internal/domains/upload/model"
	"oec/internal/domains/upload/model/dto"
	"oec/shared/constant"
	"oec/shared/failure"
	"oec/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Upload interface {
	// Document stores the file, then moves the booking. The object is removed again when the
	// booking cannot move; on success the document it replaces is removed instead.
	Document(ctx context.Context, kind model.Kind, req dto.DocumentRequest) (dto.UploadResponse, error)
	Asset(ctx context.Context, req dto.AssetRequest) (dto.UploadResponse, error)
}

type serviceImpl struct {
	bookings bookingService.Booking
	s3       s3.S3
	airtable airtable.Airtable
	cfg      *config.Config
	otel     otel.Otel
}

func New(bookings bookingService.Booking, s3 s3.S3, airtable airtable.Airtable, cfg *config.Config, otel otel.Otel) Upload {
	return &serviceImpl{
		bookings: bookings,
		s3:       s3,
		airtable: airtable,
		cfg:      cfg,
		otel:     otel,
	}
}

func (s *serviceImpl) Document(ctx context.Context, kind model.Kind, req dto.DocumentRequest) (res dto.UploadResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Document")
	defer scope.End()
	defer scope.TraceIfError(err)

	action, ok := kind.Action()
	if !ok {
		return res, failure.BadRequestFromString(fmt.Sprintf("unknown document kind %q", kind)) // nolint:wrapcheck
	}

	// Loading first rejects foreign or missing bookings before anything is stored.
	current, err := s.bookings.Get(ctx, req.BookingID)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	url, objectName, err := s.upload(ctx, kind.Directory(), req.File.File, req.File.Header)
	if err != nil {
		return res, err
	}

	booking, err := s.bookings.Transition(ctx, req.BookingID, bookingDto.TransitionRequest{
		Action:      string(action),
		Version:     req.Version,
		Notes:       req.Notes,
		DocumentURL: url,
	})
	if err != nil {
		log.Error().Err(err).Str("booking", req.BookingID).Str("kind", string(kind)).Msg("failed to attach document")

		s.deleteObject(ctx, objectName)

		return res, err //nolint:wrapcheck
	}

	if previous := storedDocument(kind, current); previous != constant.Empty && previous != url {
		s.deleteObject(ctx, s.s3.GetObjectNameFromURL(constant.Empty, previous))
	}

	res.URL = url
	res.FileName = path.Base(objectName)
	res.Booking = &booking

	if kind == model.KindPaymentProof {
		s.mirror(ctx, booking, &res)
	}

	return res, nil
}

func (s *serviceImpl) Asset(ctx context.Context, req dto.AssetRequest) (res dto.UploadResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Asset")
	defer scope.End()
	defer scope.TraceIfError(err)

	url, objectName, err := s.upload(ctx, model.KindAsset.Directory(), req.File, req.Header)
	if err != nil {
		return res, err
	}

	res.URL = url
	res.FileName = path.Base(objectName)

	return res, nil
}

// mirror copies a payment proof to the spreadsheet. The booking is already updated, so failures
// are reported in the response instead of failing the request.
func (s *serviceImpl) mirror(ctx context.Context, booking bookingDto.BookingResponse, res *dto.UploadResponse) {
	recordID, err := s.airtable.CreateRecord(ctx, dto.PaymentProofFields(booking, res.URL, res.FileName, timezone.Now()))
	if err != nil {
		category := model.MirrorCategory(err)

		log.Warn().Err(err).Str("booking", booking.ID).Str("category", category).Msg("failed to mirror payment proof")

		res.Mirror = &dto.MirrorError{Category: category, Message: err.Error()}

		return
	}

	res.RecordID = recordID

	if err = s.bookings.SetAirtableRecord(ctx, booking.ID, recordID); err != nil {
		log.Warn().Err(err).Str("booking", booking.ID).Str("record", recordID).Msg("failed to keep airtable record id")
	}
}

func (s *serviceImpl) upload(ctx context.Context, directory string, file multipart.File, header *multipart.FileHeader) (url, objectName string, err error) {
	fileName := uuid.NewString() + path.Ext(header.Filename)

	url, err = s.s3.UploadFile(ctx, constant.Empty, directory, file, header, fileName)
	if err != nil {
		if model.IsStorageUnconfigured(err) {
			log.Error().Err(err).Msg("media storage is not configured")

			return constant.Empty, constant.Empty, failure.ServiceUnavailable(err.Error()) // nolint:wrapcheck
		}

		log.Error().Err(err).Str("directory", directory).Msg("failed to upload file")

		return constant.Empty, constant.Empty, fmt.Errorf("failed to upload file: %w", err)
	}

	return url, path.Join(directory, fileName), nil
}

// storedDocument is the URL a resubmission of kind replaces.
func storedDocument(kind model.Kind, booking bookingDto.BookingResponse) string {
	switch kind {
	case model.KindPaymentProof:
		return booking.PaymentProofURL
	case model.KindAgreement:
		return booking.AgreementURL
	case model.KindSignedAgreement:
		return booking.SignedAgreementURL
	default:
		return constant.Empty
	}
}

func (s *serviceImpl) deleteObject(ctx context.Context, objectName string) {
	if objectName == constant.Empty {
		return
	}

	if err := s.s3.DeleteFile(ctx, constant.Empty, constant.Empty, objectName); err != nil {
		log.Warn().Err(err).Str("object", objectName).Msg("failed to delete orphaned upload")
	}
}
