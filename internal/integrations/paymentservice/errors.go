package paymentservice

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("paymentservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от шлюза
	ErrInvalidResponse = errors.New("paymentservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Шлюз недоступен: статус оплаты записан локально, подтверждение не отправлено
	ErrServiceDegraded = errors.New("paymentservice unavailable: graceful degradation applied")
)
