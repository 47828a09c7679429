package review

import "errors"

var (
	// ErrDuplicateReview возвращается при попытке оставить второй отзыв на бронирование
	ErrDuplicateReview = errors.New("review.repository: review already exists for booking")

	// ErrRatingNotFound возвращается, когда агрегат рейтинга ментора еще не создан
	ErrRatingNotFound = errors.New("review.repository: mentor rating not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("review.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("review.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("review.repository: failed to scan row")
)
