package get_available_slots

import (
	"github.com/mentorguru/MG-BookingService/internal/domain"
	getAvailableSlots "github.com/mentorguru/MG-BookingService/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель доступного слота
type SlotResponse struct {
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
}

// SlotsResponse HTTP модель списка слотов
type SlotsResponse struct {
	MentorID    int64          `json:"mentorId"`
	Date        string         `json:"date"`
	SessionType string         `json:"sessionType"`
	Slots       []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *SlotsResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = SlotResponse{
			StartTime:       slot.StartTime.String(),
			DurationMinutes: slot.DurationMinutes,
		}
	}

	return &SlotsResponse{
		MentorID:    resp.MentorID,
		Date:        resp.Date.Format(domain.DateFormat),
		SessionType: resp.SessionType,
		Slots:       slots,
	}
}
