package domain

// Политика длительности слотов
// Гранулярность фиксирована типом сессии и не настраивается
// по-менторски (известное ограничение текущего дизайна)
const (
	DemoSlotMinutes = 15
	PaidSlotMinutes = 60

	// MaxDemoDurationMinutes максимальная длительность demo-сессии
	MaxDemoDurationMinutes = 15

	// MaxPendingBookings лимит одновременных pending-бронирований кандидата
	MaxPendingBookings = 3

	// JoinGraceMinutes допуск до начала и после конца сессии,
	// в пределах которого разрешено присоединение
	JoinGraceMinutes = 10
)

// Пороги политики возвратов при отмене кандидатом
const (
	FullRefundHours = 24 // >= 24 часов до начала: 100%
	HalfRefundHours = 1  // >= 1 часа до начала: 50%

	FullRefundPercent = 100
	HalfRefundPercent = 50
	NoRefundPercent   = 0
)

// Границы оценки в отзыве
const (
	MinRating = 1
	MaxRating = 5
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы, при которых бронирование занимает слот
// Используется в проверках конфликтов и генерации доступных слотов
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
}

// TerminalStatuses конечные статусы, переходы из них запрещены
var TerminalStatuses = []BookingStatus{
	StatusCompleted,
	StatusCancelled,
}

// SlotDurationFor возвращает гранулярность слота для типа сессии
func SlotDurationFor(sessionType SessionType) int {
	if sessionType == SessionDemo {
		return DemoSlotMinutes
	}
	return PaidSlotMinutes
}
