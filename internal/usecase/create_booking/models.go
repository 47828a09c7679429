package create_booking

import (
	"time"

	"github.com/mentorguru/MG-BookingService/internal/domain"
	"github.com/mentorguru/MG-BookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	MentorID        int64              // ID ментора
	CandidateID     int64              // ID кандидата
	SessionType     domain.SessionType // Тип сессии (demo / paid)
	Date            time.Time          // Дата сессии (без времени)
	StartTime       types.TimeString   // Время начала слота (например, "10:00")
	DurationMinutes int                // Длительность сессии в минутах
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64            // ID созданного бронирования
	MentorID        int64            // ID ментора
	CandidateID     int64            // ID кандидата
	SessionType     string           // Тип сессии
	BookingDate     time.Time        // Дата сессии
	StartTime       types.TimeString // Время начала
	DurationMinutes int              // Длительность в минутах
	Status          string           // Статус бронирования
	PaymentStatus   string           // Статус оплаты
	Amount          float64          // Стоимость сессии
	CreatedAt       time.Time        // Время создания
	UpdatedAt       time.Time        // Время обновления
}
