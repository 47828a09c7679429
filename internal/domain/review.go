package domain

import (
	"math"
	"time"
)

// Review отзыв кандидата о завершенной сессии
// Не более одного отзыва на бронирование (уникальность по BookingID)
type Review struct {
	ID          int64
	BookingID   int64
	MentorID    int64
	CandidateID int64
	Rating      int
	Comment     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// MentorRating агрегат рейтинга ментора
// Обновляется инкрементально при каждом новом отзыве
type MentorRating struct {
	MentorID      int64
	AverageRating float64
	TotalReviews  int
	UpdatedAt     time.Time
}

// NextAverage вычисляет новое среднее после добавления оценки
// Округляется до двух знаков после запятой
func NextAverage(oldAverage float64, oldCount int, rating int) float64 {
	next := (oldAverage*float64(oldCount) + float64(rating)) / float64(oldCount+1)
	return math.Round(next*100) / 100
}
