package get_user_bookings

import (
	"context"

	"github.com/mentorguru/MG-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	GetCandidateBookings(ctx context.Context, req *models.GetCandidateBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
