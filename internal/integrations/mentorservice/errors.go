package mentorservice

import "errors"

var (
	// ErrMentorNotFound возвращается, когда ментор не найден
	ErrMentorNotFound = errors.New("mentor not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("mentorservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("mentorservice client: invalid response")
)
