package service_test

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"

	"oec/config"
	"oec/infras/airtable"
	airtableMocks "oec/infras/airtable/mocks"
	"oec/infras/otel/mocks"
	"oec/infras/s3"
	s3Mocks "oec/infras/s3/mocks"
	bookingMocks "oec/internal/domains/booking/mocks"
	bookingModel "oec/internal/domains/booking/model"
	bookingDto "oec/internal/domains/booking/model/dto"
	"oec/internal/domains/upload/model"
	"oec/internal/domains/upload/model/dto"
	"oec/internal/domains/upload/service"
	"oec/shared/failure"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const bookingID = "5d0c7c52-3f0e-4c1b-8a8e-0d6c3c8f2a11"

type uploadFixture struct {
	bookings *bookingMocks.MockBookingService
	s3       *s3Mocks.MockS3
	airtable *airtableMocks.MockAirtable
	svc      service.Upload
}

func newFixture(t *testing.T) uploadFixture {
	ctrl := gomock.NewController(t)

	f := uploadFixture{
		bookings: bookingMocks.NewMockBookingService(ctrl),
		s3:       s3Mocks.NewMockS3(ctrl),
		airtable: airtableMocks.NewMockAirtable(ctrl),
	}

	f.svc = service.New(f.bookings, f.s3, f.airtable, &config.Config{}, mocks.NewOtel())

	return f
}

func documentRequest() dto.DocumentRequest {
	return dto.DocumentRequest{
		BookingID: bookingID,
		Version:   2,
		File: dto.File{
			Header:      &multipart.FileHeader{Filename: "receipt.pdf", Size: 1024},
			ContentType: "application/pdf",
			Size:        1024,
		},
	}
}

func storedBooking() bookingDto.BookingResponse {
	return bookingDto.BookingResponse{
		ID:            bookingID,
		Category:      bookingModel.CategoryFacility,
		RequesterName: "Abebe",
		Email:         "abebe@example.com",
		TotalCost:     decimal.NewFromInt(9000),
		PaymentStatus: bookingModel.PaymentAwaitingVerification,
		Version:       3,
	}
}

func TestService_Document_PaymentProof(t *testing.T) {
	t.Run("stores, moves the booking and mirrors", func(t *testing.T) {
		f := newFixture(t)

		f.bookings.EXPECT().Get(gomock.Any(), bookingID).Return(bookingDto.BookingResponse{ID: bookingID, Version: 2}, nil)
		f.s3.EXPECT().UploadFile(gomock.Any(), "", "bookings/payment_proof", gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _, directory string, _ multipart.File, _ *multipart.FileHeader, fileName string) (string, error) {
				assert.True(t, strings.HasSuffix(fileName, ".pdf"))

				return "https://cdn.oec.et/" + directory + "/" + fileName, nil
			})
		f.bookings.EXPECT().Transition(gomock.Any(), bookingID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, req bookingDto.TransitionRequest) (bookingDto.BookingResponse, error) {
				assert.Equal(t, string(bookingModel.ActionSubmitPaymentProof), req.Action)
				assert.Equal(t, 2, req.Version)
				assert.True(t, strings.HasPrefix(req.DocumentURL, "https://cdn.oec.et/bookings/payment_proof/"))

				return storedBooking(), nil
			})
		f.airtable.EXPECT().CreateRecord(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields airtable.Fields) (string, error) {
				assert.Equal(t, bookingID, fields["Booking ID"])
				assert.InDelta(t, 9000.0, fields["Total Cost"], 0.001)

				return "rec123", nil
			})
		f.bookings.EXPECT().SetAirtableRecord(gomock.Any(), bookingID, "rec123").Return(nil)

		res, err := f.svc.Document(context.Background(), model.KindPaymentProof, documentRequest())

		require.NoError(t, err)
		assert.Equal(t, "rec123", res.RecordID)
		assert.Nil(t, res.Mirror)
		assert.True(t, strings.HasSuffix(res.FileName, ".pdf"))
		require.NotNil(t, res.Booking)
		assert.Equal(t, 3, res.Booking.Version)
	})

	t.Run("mirror failures are categorised", func(t *testing.T) {
		tests := []struct {
			err      error
			category string
		}{
			{err: fmt.Errorf("%w: missing EXTERNAL_AIRTABLE_BASE_ID", airtable.ErrNotConfigured), category: model.MirrorCategoryNotConfigured},
			{err: fmt.Errorf("airtable responded 401: %w", airtable.ErrUnauthorized), category: model.MirrorCategoryAuth},
			{err: fmt.Errorf("wrapped: %w", airtable.ErrNotFound), category: model.MirrorCategoryNotFound},
			{err: airtable.ErrSchemaMismatch, category: model.MirrorCategorySchemaMismatch},
			{err: errors.New("dial tcp: i/o timeout"), category: model.MirrorCategoryUnavailable},
		}

		for _, tt := range tests {
			t.Run(tt.category, func(t *testing.T) {
				f := newFixture(t)

				f.bookings.EXPECT().Get(gomock.Any(), bookingID).Return(bookingDto.BookingResponse{ID: bookingID}, nil)
				f.s3.EXPECT().UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("https://cdn.oec.et/x.pdf", nil)
				f.bookings.EXPECT().Transition(gomock.Any(), bookingID, gomock.Any()).Return(storedBooking(), nil)
				f.airtable.EXPECT().CreateRecord(gomock.Any(), gomock.Any()).Return("", tt.err)

				res, err := f.svc.Document(context.Background(), model.KindPaymentProof, documentRequest())

				require.NoError(t, err)
				require.NotNil(t, res.Mirror)
				assert.Equal(t, tt.category, res.Mirror.Category)
				assert.Empty(t, res.RecordID)
			})
		}
	})

	t.Run("rejected transition removes the object", func(t *testing.T) {
		f := newFixture(t)

		f.bookings.EXPECT().Get(gomock.Any(), bookingID).Return(bookingDto.BookingResponse{ID: bookingID}, nil)
		f.s3.EXPECT().UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("https://cdn.oec.et/x.pdf", nil)
		f.bookings.EXPECT().Transition(gomock.Any(), bookingID, gomock.Any()).Return(bookingDto.BookingResponse{}, failure.StaleVersionError)
		f.s3.EXPECT().DeleteFile(gomock.Any(), "", "", gomock.Any()).
			DoAndReturn(func(_ context.Context, _, _, objectName string) error {
				assert.True(t, strings.HasPrefix(objectName, "bookings/payment_proof/"))

				return nil
			})

		_, err := f.svc.Document(context.Background(), model.KindPaymentProof, documentRequest())

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("foreign booking never reaches storage", func(t *testing.T) {
		f := newFixture(t)

		f.bookings.EXPECT().Get(gomock.Any(), bookingID).Return(bookingDto.BookingResponse{}, failure.ResourceRestrictedError)

		_, err := f.svc.Document(context.Background(), model.KindPaymentProof, documentRequest())

		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("storage not configured", func(t *testing.T) {
		f := newFixture(t)

		f.bookings.EXPECT().Get(gomock.Any(), bookingID).Return(bookingDto.BookingResponse{ID: bookingID}, nil)
		f.s3.EXPECT().UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return("", fmt.Errorf("%w: missing EXTERNAL_S3_BUCKET_NAME", s3.ErrNotConfigured))

		_, err := f.svc.Document(context.Background(), model.KindPaymentProof, documentRequest())

		require.Error(t, err)
		assert.Equal(t, http.StatusServiceUnavailable, failure.GetCode(err))
		assert.Contains(t, err.Error(), "EXTERNAL_S3_BUCKET_NAME")
	})
}

func TestService_Document_Agreement(t *testing.T) {
	f := newFixture(t)

	f.bookings.EXPECT().Get(gomock.Any(), bookingID).Return(bookingDto.BookingResponse{ID: bookingID}, nil)
	f.s3.EXPECT().UploadFile(gomock.Any(), "", "bookings/agreement", gomock.Any(), gomock.Any(), gomock.Any()).Return("https://cdn.oec.et/a.pdf", nil)
	f.bookings.EXPECT().Transition(gomock.Any(), bookingID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, req bookingDto.TransitionRequest) (bookingDto.BookingResponse, error) {
			assert.Equal(t, string(bookingModel.ActionSendAgreement), req.Action)

			return storedBooking(), nil
		})

	res, err := f.svc.Document(context.Background(), model.KindAgreement, documentRequest())

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.oec.et/a.pdf", res.URL)
	assert.Empty(t, res.RecordID)
}

func TestService_Document_Resubmit(t *testing.T) {
	t.Run("replaced agreement is removed from storage", func(t *testing.T) {
		f := newFixture(t)

		current := bookingDto.BookingResponse{ID: bookingID, AgreementURL: "https://cdn.oec.et/bookings/agreement/old.pdf"}

		f.bookings.EXPECT().Get(gomock.Any(), bookingID).Return(current, nil)
		f.s3.EXPECT().UploadFile(gomock.Any(), "", "bookings/agreement", gomock.Any(), gomock.Any(), gomock.Any()).Return("https://cdn.oec.et/bookings/agreement/new.pdf", nil)
		f.bookings.EXPECT().Transition(gomock.Any(), bookingID, gomock.Any()).Return(storedBooking(), nil)
		f.s3.EXPECT().GetObjectNameFromURL("", current.AgreementURL).Return("bookings/agreement/old.pdf")
		f.s3.EXPECT().DeleteFile(gomock.Any(), "", "", "bookings/agreement/old.pdf").Return(nil)

		res, err := f.svc.Document(context.Background(), model.KindAgreement, documentRequest())

		require.NoError(t, err)
		assert.Equal(t, "https://cdn.oec.et/bookings/agreement/new.pdf", res.URL)
	})

	t.Run("failed cleanup does not fail the upload", func(t *testing.T) {
		f := newFixture(t)

		current := bookingDto.BookingResponse{ID: bookingID, SignedAgreementURL: "https://cdn.oec.et/bookings/signed_agreement/old.pdf"}

		f.bookings.EXPECT().Get(gomock.Any(), bookingID).Return(current, nil)
		f.s3.EXPECT().UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("https://cdn.oec.et/bookings/signed_agreement/new.pdf", nil)
		f.bookings.EXPECT().Transition(gomock.Any(), bookingID, gomock.Any()).Return(storedBooking(), nil)
		f.s3.EXPECT().GetObjectNameFromURL("", current.SignedAgreementURL).Return("bookings/signed_agreement/old.pdf")
		f.s3.EXPECT().DeleteFile(gomock.Any(), "", "", "bookings/signed_agreement/old.pdf").Return(errors.New("access denied"))

		_, err := f.svc.Document(context.Background(), model.KindSignedAgreement, documentRequest())

		require.NoError(t, err)
	})

	t.Run("document from another host is left alone", func(t *testing.T) {
		f := newFixture(t)

		current := bookingDto.BookingResponse{ID: bookingID, AgreementURL: "https://files.example.com/agreement.pdf"}

		f.bookings.EXPECT().Get(gomock.Any(), bookingID).Return(current, nil)
		f.s3.EXPECT().UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("https://cdn.oec.et/bookings/agreement/new.pdf", nil)
		f.bookings.EXPECT().Transition(gomock.Any(), bookingID, gomock.Any()).Return(storedBooking(), nil)
		f.s3.EXPECT().GetObjectNameFromURL("", current.AgreementURL).Return("")

		_, err := f.svc.Document(context.Background(), model.KindAgreement, documentRequest())

		require.NoError(t, err)
	})
}

func TestService_Document_UnknownKind(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Document(context.Background(), model.KindAsset, documentRequest())

	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestService_Asset(t *testing.T) {
	f := newFixture(t)

	f.s3.EXPECT().UploadFile(gomock.Any(), "", "assets", gomock.Any(), gomock.Any(), gomock.Any()).Return("https://cdn.oec.et/assets/p.png", nil)

	res, err := f.svc.Asset(context.Background(), dto.AssetRequest{
		Header:      &multipart.FileHeader{Filename: "hall.png"},
		ContentType: "image/png",
	})

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.oec.et/assets/p.png", res.URL)
	assert.True(t, strings.HasSuffix(res.FileName, ".png"))
}
