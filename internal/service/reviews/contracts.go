package reviews

import (
	"context"

	"github.com/mentorguru/MG-BookingService/internal/domain"
)

// ReviewRepository интерфейс репозитория отзывов
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) (*domain.Review, error)
	GetByMentor(ctx context.Context, mentorID int64) ([]*domain.Review, error)
	GetRatingForUpdate(ctx context.Context, mentorID int64) (*domain.MentorRating, error)
	SaveRating(ctx context.Context, rating *domain.MentorRating) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
