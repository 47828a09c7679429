package mentorservice

import "github.com/mentorguru/MG-BookingService/internal/domain"

// Mentor профиль ментора из MentorService
// ID ментора совпадает с ID его пользователя: шлюз передает его же
// в X-User-ID для вызовов с ролью mentor, проверки участия сравнивают
// MentorID бронирования с ним напрямую
type Mentor struct {
	ID           int64                       `json:"id"`
	Verified     bool                        `json:"verified"`
	HourlyRate   float64                     `json:"hourly_rate"`
	Availability []domain.AvailabilityWindow `json:"availability"`
}

// ErrorResponse модель ошибки от MentorService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
