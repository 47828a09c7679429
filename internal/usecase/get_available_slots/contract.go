package get_available_slots

import (
	"context"
	"time"

	"github.com/mentorguru/MG-BookingService/internal/domain"
	"github.com/mentorguru/MG-BookingService/internal/integrations/mentorservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetActiveByMentorAndDate(ctx context.Context, mentorID int64, date time.Time) ([]*domain.Booking, error)
}

// MentorServiceClient интерфейс клиента для MentorService
type MentorServiceClient interface {
	GetMentor(ctx context.Context, mentorID int64) (*mentorservice.Mentor, error)
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
