package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied возвращается, когда пользователь не участник бронирования
	ErrAccessDenied = errors.New("access denied")

	// ErrCannotCancel возвращается, когда бронирование не может быть отменено
	ErrCannotCancel = errors.New("booking cannot be cancelled")

	// ErrInvalidTransition возвращается при недопустимом переходе статуса
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrInvalidSessionState возвращается при попытке присоединиться к сессии
	// в неподходящем статусе
	ErrInvalidSessionState = errors.New("session is not joinable in its current state")

	// ErrOutsideJoinWindow возвращается при попытке присоединиться вне временного окна
	ErrOutsideJoinWindow = errors.New("join attempt is outside the allowed time window")

	// ErrAlreadyJoined возвращается при повторном присоединении той же роли
	ErrAlreadyJoined = errors.New("participant has already joined this session")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
