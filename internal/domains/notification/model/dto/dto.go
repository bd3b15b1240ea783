package dto

import (
	"fmt"
	"oec/internal/domains/notification/model"
	"oec/shared"
	"oec/shared/constant"
	gDto "oec/shared/dto"
	gModel "oec/shared/model"
	"time"

	"github.com/google/uuid"
)

// NotificationFromBookingCreated builds the inbox entry for a new booking.
func NotificationFromBookingCreated(event model.BookingCreated, now time.Time) model.Notification {
	requester := event.RequesterName
	if event.CompanyName != constant.Empty {
		requester = fmt.Sprintf("%s (%s)", event.RequesterName, event.CompanyName)
	}

	return model.Notification{
		ID:        uuid.NewString(),
		Audience:  constant.RoleAdmin,
		Building:  event.Building,
		BookingID: event.BookingID,
		Title:     fmt.Sprintf("New %s booking", event.Category),
		Message: fmt.Sprintf("%s booked %s to %s, total %s. Contact %s %s.",
			requester, event.StartDate, event.EndDate, event.TotalCost.StringFixed(2), event.Email, event.Phone),
		Metadata: gModel.NewMetadata(constant.ContextSystem, now),
	}
}

type NotificationResponse struct {
	ID        string     `json:"id"`
	Building  string     `json:"building"`
	BookingID string     `json:"booking_id"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	Read      bool       `json:"read"`
	ReadAt    *time.Time `json:"read_at"`
	gDto.Metadata
}

func (r *NotificationResponse) FromModel(model model.Notification) {
	r.ID = model.ID
	r.Building = model.Building
	r.BookingID = model.BookingID
	r.Title = model.Title
	r.Message = model.Message
	r.Read = model.ReadAt != nil
	r.ReadAt = model.ReadAt
	r.Metadata.FromModel(model.Metadata)
}

type GetNotificationsResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	TotalPage     int                    `json:"total_page"`
	TotalData     int                    `json:"total_data"`
}

func (r *GetNotificationsResponse) FromModels(models []model.Notification, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Notifications = make([]NotificationResponse, len(models))
	for i, mod := range models {
		r.Notifications[i].FromModel(mod)
	}
}
