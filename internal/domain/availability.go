package domain

import (
	"strings"
	"time"

	"github.com/mentorguru/MG-BookingService/pkg/types"
)

// AvailabilityWindow еженедельное окно доступности ментора
// Принадлежит профилю ментора (MentorService), здесь - read-only вход
type AvailabilityWindow struct {
	Day       string // день недели, например "monday" (регистр не важен)
	StartTime types.TimeString
	EndTime   types.TimeString
}

// MatchesDay проверяет, относится ли окно к указанному дню недели
// Сравнение без учета регистра
func (w AvailabilityWindow) MatchesDay(weekday time.Weekday) bool {
	return strings.EqualFold(w.Day, weekday.String())
}

// Covers проверяет, что интервал [start, end] целиком лежит внутри окна
// Сравнение через минуты от начала суток
func (w AvailabilityWindow) Covers(start, end types.TimeString) bool {
	return start.MinutesOfDay() >= w.StartTime.MinutesOfDay() &&
		end.MinutesOfDay() <= w.EndTime.MinutesOfDay()
}
