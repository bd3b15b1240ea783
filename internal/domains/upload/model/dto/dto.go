package dto

import (
	"mime/multipart"
	"time"

	"oec/infras/airtable"
	bookingDto "oec/internal/domains/booking/model/dto"
)

type File struct {
	Header      *multipart.FileHeader `json:"-"`
	File        multipart.File        `json:"-"`
	ContentType string                `json:"-" validate:"required,mimetypes=application/pdf image/png image/jpg image/jpeg image/webp"`
	Size        int64                 `json:"-" validate:"maxfilesize=5"`
}

func NewFile(file multipart.File, header *multipart.FileHeader) File {
	return File{
		Header:      header,
		File:        file,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
	}
}

// DocumentRequest attaches a file to a booking and performs the kind's action.
type DocumentRequest struct {
	BookingID string `json:"booking_id" validate:"required,uuid"`
	Version   int    `json:"version"    validate:"required,min=1"`
	Notes     string `json:"notes"      validate:"omitempty,max=1000"`
	File      File   `json:"-"`
}

// AssetRequest is a site image such as a facility photo or a post cover.
type AssetRequest struct {
	Header      *multipart.FileHeader `json:"-"`
	File        multipart.File        `json:"-"`
	ContentType string                `json:"-" validate:"required,mimetypes=image/png image/jpg image/jpeg image/webp"`
	Size        int64                 `json:"-" validate:"maxfilesize=2"`
}

func NewAssetRequest(file multipart.File, header *multipart.FileHeader) AssetRequest {
	return AssetRequest{
		Header:      header,
		File:        file,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
	}
}

// MirrorError describes a spreadsheet mirror failure after the upload itself was committed.
type MirrorError struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

type UploadResponse struct {
	URL      string                      `json:"url"`
	FileName string                      `json:"file_name"`
	RecordID string                      `json:"record_id,omitempty"`
	Mirror   *MirrorError                `json:"mirror_error,omitempty"`
	Booking  *bookingDto.BookingResponse `json:"booking,omitempty"`
}

// PaymentProofFields is the spreadsheet row mirrored for a payment proof.
func PaymentProofFields(booking bookingDto.BookingResponse, url, fileName string, uploadedAt time.Time) airtable.Fields {
	fields := airtable.Fields{
		"Booking ID":     booking.ID,
		"Category":       booking.Category,
		"Building":       booking.Building,
		"Requester":      booking.RequesterName,
		"Email":          booking.Email,
		"Phone":          booking.Phone,
		"Start Date":     booking.StartDate,
		"End Date":       booking.EndDate,
		"Total Cost":     booking.TotalCost.InexactFloat64(),
		"Payment Status": booking.PaymentStatus,
		"Proof URL":      url,
		"File Name":      fileName,
		"Uploaded At":    uploadedAt.Format(time.RFC3339),
	}

	if booking.CompanyName != "" {
		fields["Company"] = booking.CompanyName
	}

	return fields
}
