package bookings

import (
	"context"
	"time"

	"github.com/mentorguru/MG-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByMentorWithFilter(ctx context.Context, filter domain.MentorBookingsFilter) ([]*domain.Booking, error)
	GetByCandidateWithFilter(ctx context.Context, filter domain.CandidateBookingsFilter) ([]*domain.Booking, error)
	GetInProgress(ctx context.Context) ([]*domain.Booking, error)
	UpdateStatusFrom(ctx context.Context, id int64, from, to domain.BookingStatus) error
	RecordJoin(ctx context.Context, id int64, role domain.CancelRole, at time.Time) error
	Cancel(ctx context.Context, id int64, cancelledBy domain.CancelRole, refundAmount float64, paymentStatus *domain.PaymentStatus) error
	CloseSession(ctx context.Context, id int64, status domain.BookingStatus, paymentStatus domain.PaymentStatus, refundAmount *float64) error
}

// PaymentServiceClient интерфейс клиента платежного шлюза
type PaymentServiceClient interface {
	ConfirmCaptureWithGracefulDegradation(ctx context.Context, bookingID int64, amount float64) error
	ConfirmRefundWithGracefulDegradation(ctx context.Context, bookingID int64, amount float64) error
}

// SweepMetrics интерфейс метрик автозакрытия сессий
type SweepMetrics interface {
	IncSweepProcessed(outcome string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
