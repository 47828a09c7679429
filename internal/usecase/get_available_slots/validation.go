package get_available_slots

import (
	"fmt"

	"github.com/mentorguru/MG-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.MentorID <= 0 {
		return fmt.Errorf("%w: mentorID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.SessionType != domain.SessionDemo && req.SessionType != domain.SessionPaid {
		return fmt.Errorf("%w: sessionType must be demo or paid", ErrInvalidInput)
	}

	return nil
}
