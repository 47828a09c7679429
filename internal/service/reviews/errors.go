package reviews

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied возвращается, когда пользователь не кандидат этого бронирования
	ErrAccessDenied = errors.New("access denied")

	// ErrSessionNotCompleted возвращается при попытке оставить отзыв
	// на незавершенную сессию
	ErrSessionNotCompleted = errors.New("session is not completed")

	// ErrDuplicateReview возвращается при повторном отзыве на то же бронирование
	ErrDuplicateReview = errors.New("review already exists for this booking")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
