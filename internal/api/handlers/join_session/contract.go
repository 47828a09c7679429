package join_session

import (
	"context"

	"github.com/mentorguru/MG-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	Join(ctx context.Context, bookingID int64, req *models.JoinSessionRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
