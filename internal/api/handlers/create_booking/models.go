package create_booking

import (
	"time"

	"github.com/mentorguru/MG-BookingService/internal/domain"
	createBooking "github.com/mentorguru/MG-BookingService/internal/usecase/create_booking"
	"github.com/mentorguru/MG-BookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	MentorID        int64  `json:"mentorId" validate:"required,gt=0"`
	SessionType     string `json:"sessionType" validate:"required,oneof=demo paid"`
	BookingDate     string `json:"bookingDate" validate:"required"` // "2026-03-15"
	StartTime       string `json:"startTime" validate:"required"`   // "10:00"
	DurationMinutes int    `json:"durationMinutes" validate:"required,gt=0"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64   `json:"id"`
	MentorID        int64   `json:"mentorId"`
	CandidateID     int64   `json:"candidateId"`
	SessionType     string  `json:"sessionType"`
	BookingDate     string  `json:"bookingDate"`
	StartTime       string  `json:"startTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	PaymentStatus   string  `json:"paymentStatus"`
	Amount          float64 `json:"amount"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(candidateID int64) (*createBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		MentorID:        r.MentorID,
		CandidateID:     candidateID,
		SessionType:     domain.SessionType(r.SessionType),
		Date:            bookingDate,
		StartTime:       startTime,
		DurationMinutes: r.DurationMinutes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		MentorID:        resp.MentorID,
		CandidateID:     resp.CandidateID,
		SessionType:     resp.SessionType,
		BookingDate:     resp.BookingDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		PaymentStatus:   resp.PaymentStatus,
		Amount:          resp.Amount,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
