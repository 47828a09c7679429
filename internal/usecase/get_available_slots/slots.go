package get_available_slots

import (
	"time"

	"github.com/mentorguru/MG-BookingService/internal/domain"
	"github.com/mentorguru/MG-BookingService/pkg/types"
)

// findAvailabilityWindow возвращает первое окно расписания ментора,
// подходящее под день недели. Окна за пределами первого совпавшего
// не рассматриваются.
func findAvailabilityWindow(availability []domain.AvailabilityWindow, weekday time.Weekday) *domain.AvailabilityWindow {
	for i := range availability {
		if availability[i].MatchesDay(weekday) {
			return &availability[i]
		}
	}
	return nil
}

// generateTimeSlots генерирует сетку слотов внутри окна расписания
// Сетка строится от начала окна с фиксированным шагом slotDuration;
// неполный слот в хвосте окна отбрасывается. Слот, не помещающийся
// до полуночи, не помещается и в окно, поэтому выход AddMinutes за
// пределы суток завершает проход так же, как выход за конец окна
func generateTimeSlots(window *domain.AvailabilityWindow, slotDuration int) []types.TimeString {
	allSlots := make([]types.TimeString, 0)
	currentSlot := window.StartTime

	for currentSlot.IsBefore(window.EndTime) {
		slotEnd, err := currentSlot.AddMinutes(slotDuration)
		if err != nil {
			break
		}
		if slotEnd.IsAfter(window.EndTime) {
			break
		}

		allSlots = append(allSlots, currentSlot)
		currentSlot = slotEnd
	}

	return allSlots
}

// filterBookedSlots исключает слоты, пересекающиеся с активными бронированиями
// Пересечение на полуинтервалах: бронирование, заканчивающееся ровно
// в начале слота, слот не занимает
func filterBookedSlots(slots []types.TimeString, slotDuration int, date time.Time, bookings []*domain.Booking) []Slot {
	result := make([]Slot, 0, len(slots))

	for _, slotStart := range slots {
		start := slotStart.OnDate(date)
		end := start.Add(time.Duration(slotDuration) * time.Minute)

		taken := false
		for _, booking := range bookings {
			if !booking.IsActive() {
				continue
			}
			if domain.Overlaps(start, end, booking.SessionStart(), booking.SessionEnd()) {
				taken = true
				break
			}
		}

		if !taken {
			result = append(result, Slot{
				StartTime:       slotStart,
				DurationMinutes: slotDuration,
			})
		}
	}

	return result
}
