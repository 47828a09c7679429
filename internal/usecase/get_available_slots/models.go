package get_available_slots

import (
	"time"

	"github.com/mentorguru/MG-BookingService/internal/domain"
	"github.com/mentorguru/MG-BookingService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	MentorID    int64              // ID ментора
	Date        time.Time          // Дата для получения слотов (без времени)
	SessionType domain.SessionType // Тип сессии, задает шаг сетки слотов
}

// Response модель ответа со списком доступных слотов
type Response struct {
	MentorID    int64     // ID ментора
	Date        time.Time // Дата, на которую запрашивались слоты
	SessionType string    // Тип сессии
	Slots       []Slot    // Список доступных слотов, по возрастанию времени
}

// Slot модель доступного временного слота
type Slot struct {
	StartTime       types.TimeString // Время начала слота (например, "10:00")
	DurationMinutes int              // Длительность слота в минутах
}
