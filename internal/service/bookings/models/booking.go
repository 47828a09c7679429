package models

import (
	"errors"
	"time"

	"github.com/mentorguru/MG-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidRole возвращается при некорректной роли участника
	ErrInvalidRole = errors.New("invalid participant role")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	UserID int64  `json:"userId"`
	Role   string `json:"role"`
}

// UpdateStatusRequest запрос на обновление статуса бронирования
type UpdateStatusRequest struct {
	UserID int64  `json:"userId"`
	Role   string `json:"role"`
	Status string `json:"status"`
}

// JoinSessionRequest запрос на присоединение к сессии
type JoinSessionRequest struct {
	UserID int64  `json:"userId"`
	Role   string `json:"role"`
}

// GetCandidateBookingsRequest запрос на получение бронирований кандидата
type GetCandidateBookingsRequest struct {
	CandidateID     int64      `json:"candidateId"`
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить завершенные и отмененные
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetCandidateBookingsRequest) ToDomainFilter() (domain.CandidateBookingsFilter, error) {
	filter := domain.CandidateBookingsFilter{
		CandidateID:     r.CandidateID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// GetMentorBookingsRequest запрос на получение бронирований ментора
type GetMentorBookingsRequest struct {
	MentorID        int64      `json:"mentorId"`
	StartDate       *time.Time `json:"startDate,omitempty"`
	EndDate         *time.Time `json:"endDate,omitempty"`
	Status          *string    `json:"status,omitempty"`
	IncludeInactive bool       `json:"includeInactive,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetMentorBookingsRequest) ToDomainFilter() (domain.MentorBookingsFilter, error) {
	filter := domain.MentorBookingsFilter{
		MentorID:        r.MentorID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              int64  `json:"id"`
	MentorID        int64  `json:"mentorId"`
	CandidateID     int64  `json:"candidateId"`
	SessionType     string `json:"sessionType"`
	BookingDate     string `json:"bookingDate"` // "2026-03-15"
	StartTime       string `json:"startTime"`   // "10:00"
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`

	PaymentStatus string  `json:"paymentStatus"`
	Amount        float64 `json:"amount"`
	RefundAmount  float64 `json:"refundAmount"`

	MentorJoinedAt    *string `json:"mentorJoinedAt,omitempty"`    // ISO 8601 format
	CandidateJoinedAt *string `json:"candidateJoinedAt,omitempty"` // ISO 8601 format
	CancelledBy       *string `json:"cancelledBy,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// AutoCloseReport итоги одного прогона автозакрытия сессий
type AutoCloseReport struct {
	Processed int `json:"processed"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
	Failed    int `json:"failed"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:              b.ID,
		MentorID:        b.MentorID,
		CandidateID:     b.CandidateID,
		SessionType:     string(b.SessionType),
		BookingDate:     b.BookingDate.Format(domain.DateFormat),
		StartTime:       b.StartTime.String(),
		DurationMinutes: b.DurationMinutes,
		Status:          string(b.Status),
		PaymentStatus:   string(b.PaymentStatus),
		Amount:          b.Amount,
		RefundAmount:    b.RefundAmount,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}

	if b.MentorJoinedAt != nil {
		joinedStr := b.MentorJoinedAt.Format(time.RFC3339)
		resp.MentorJoinedAt = &joinedStr
	}
	if b.CandidateJoinedAt != nil {
		joinedStr := b.CandidateJoinedAt.Format(time.RFC3339)
		resp.CandidateJoinedAt = &joinedStr
	}
	if b.CancelledBy != nil {
		cancelledBy := string(*b.CancelledBy)
		resp.CancelledBy = &cancelledBy
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	if !domain.ValidBookingStatus(s) {
		return "", ErrInvalidStatus
	}

	return s, nil
}

// ToDomainRole конвертирует строку в domain.CancelRole с валидацией
func ToDomainRole(role string) (domain.CancelRole, error) {
	r := domain.CancelRole(role)

	if r != domain.RoleMentor && r != domain.RoleCandidate {
		return "", ErrInvalidRole
	}

	return r, nil
}
