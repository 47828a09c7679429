package create_booking

import "errors"

var (
	// ErrMentorNotFound возвращается, когда ментор не найден
	ErrMentorNotFound = errors.New("create_booking: mentor not found")

	// ErrMentorUnavailable возвращается, когда ментор не верифицирован
	ErrMentorUnavailable = errors.New("create_booking: mentor is not available for booking")

	// ErrPastBooking возвращается при попытке забронировать сессию в прошлом
	ErrPastBooking = errors.New("create_booking: session start is in the past")

	// ErrDemoTooLong возвращается, когда длительность demo-сессии превышает лимит
	ErrDemoTooLong = errors.New("create_booking: demo session duration exceeds limit")

	// ErrDuplicateDemo возвращается при повторной demo-сессии с тем же ментором
	ErrDuplicateDemo = errors.New("create_booking: demo session with this mentor already exists")

	// ErrDemoNotCompleted возвращается при попытке платной сессии без завершенной demo
	ErrDemoNotCompleted = errors.New("create_booking: completed demo session with this mentor is required")

	// ErrOutsideAvailability возвращается, когда слот вне расписания ментора
	ErrOutsideAvailability = errors.New("create_booking: slot is outside mentor availability")

	// ErrSlotTaken возвращается, когда слот пересекается с активным бронированием ментора
	ErrSlotTaken = errors.New("create_booking: mentor already has a booking for this slot")

	// ErrDoubleBooked возвращается, когда слот пересекается с активным бронированием кандидата
	ErrDoubleBooked = errors.New("create_booking: candidate already has a booking for this slot")

	// ErrTooManyPending возвращается при превышении лимита pending-бронирований кандидата
	ErrTooManyPending = errors.New("create_booking: too many pending bookings")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
