package create_booking

import (
	"fmt"
	"time"

	"github.com/mentorguru/MG-BookingService/internal/domain"
	"github.com/mentorguru/MG-BookingService/internal/integrations/mentorservice"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.MentorID <= 0 {
		return fmt.Errorf("%w: mentorID must be positive", ErrInvalidInput)
	}

	if req.CandidateID <= 0 {
		return fmt.Errorf("%w: candidateID must be positive", ErrInvalidInput)
	}

	if req.SessionType != domain.SessionDemo && req.SessionType != domain.SessionPaid {
		return fmt.Errorf("%w: sessionType must be demo or paid", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	// Валидируем формат времени
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.DurationMinutes <= 0 {
		return fmt.Errorf("%w: durationMinutes must be positive", ErrInvalidInput)
	}

	// Слот не должен переваливать через полночь
	if _, err := req.StartTime.AddMinutes(req.DurationMinutes); err != nil {
		return fmt.Errorf("%w: session must end within the same day: %v", ErrInvalidInput, err)
	}

	return nil
}

// validateSessionInFuture проверяет, что начало сессии строго в будущем
func validateSessionInFuture(sessionStart, now time.Time) error {
	if !sessionStart.After(now) {
		return ErrPastBooking
	}
	return nil
}

// validateDemoDuration проверяет лимит длительности demo-сессии
func validateDemoDuration(sessionType domain.SessionType, durationMinutes int) error {
	if sessionType == domain.SessionDemo && durationMinutes > domain.MaxDemoDurationMinutes {
		return fmt.Errorf("%w: max %d minutes", ErrDemoTooLong, domain.MaxDemoDurationMinutes)
	}
	return nil
}

// validateWithinAvailability проверяет, что слот целиком попадает в одно из
// окон расписания ментора на этот день недели
func validateWithinAvailability(mentor *mentorservice.Mentor, req *Request) error {
	weekday := req.Date.Weekday()
	sessionEnd, err := req.StartTime.AddMinutes(req.DurationMinutes)
	if err != nil {
		return fmt.Errorf("%w: failed to calculate session end: %v", ErrInternal, err)
	}

	for _, window := range mentor.Availability {
		if !window.MatchesDay(weekday) {
			continue
		}
		if window.Covers(req.StartTime, sessionEnd) {
			return nil
		}
	}

	return ErrOutsideAvailability
}

// hasOverlap проверяет пересечение слота с активными бронированиями
// Сравнение на полуинтервалах: стык конец-в-начало пересечением не считается
func hasOverlap(sessionStart, sessionEnd time.Time, bookings []*domain.Booking) bool {
	for _, booking := range bookings {
		if !booking.IsActive() {
			continue
		}
		if domain.Overlaps(sessionStart, sessionEnd, booking.SessionStart(), booking.SessionEnd()) {
			return true
		}
	}
	return false
}

// sessionAmount вычисляет стоимость сессии
// Demo-сессии бесплатны, платные тарифицируются по часовой ставке ментора
func sessionAmount(sessionType domain.SessionType, hourlyRate float64, durationMinutes int) float64 {
	if sessionType == domain.SessionDemo {
		return 0
	}
	return hourlyRate * float64(durationMinutes) / 60
}
