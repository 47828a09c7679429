package domain

import (
	"time"

	"github.com/mentorguru/MG-BookingService/pkg/types"
)

// SessionType тип сессии с ментором
type SessionType string

const (
	SessionDemo SessionType = "demo"
	SessionPaid SessionType = "paid"
)

// BookingStatus статус бронирования
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusInProgress BookingStatus = "in-progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
)

// PaymentStatus статус оплаты бронирования
type PaymentStatus string

const (
	PaymentNotRequired PaymentStatus = "not-required"
	PaymentPending     PaymentStatus = "pending"
	PaymentPaid        PaymentStatus = "paid"
	PaymentRefunded    PaymentStatus = "refunded"
)

// CancelRole роль участника, отменившего бронирование
type CancelRole string

const (
	RoleMentor    CancelRole = "mentor"
	RoleCandidate CancelRole = "candidate"
)

// Booking бронирование сессии кандидата с ментором
type Booking struct {
	ID          int64
	MentorID    int64
	CandidateID int64

	SessionType     SessionType
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int

	Status        BookingStatus
	PaymentStatus PaymentStatus

	// Сумма фиксируется при создании: 0 для demo,
	// hourlyRate * duration / 60 для paid
	Amount float64

	// Отметки о присоединении к сессии, каждая ставится не более одного раза
	MentorJoinedAt    *time.Time
	CandidateJoinedAt *time.Time

	CancelledBy  *CancelRole
	RefundAmount float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SessionStart возвращает момент начала сессии (дата + время)
func (b *Booking) SessionStart() time.Time {
	return b.StartTime.OnDate(b.BookingDate)
}

// SessionEnd возвращает момент окончания сессии
func (b *Booking) SessionEnd() time.Time {
	return b.SessionStart().Add(time.Duration(b.DurationMinutes) * time.Minute)
}

// IsActive возвращает true, если бронирование занимает слот
// (участвует в проверках пересечений)
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending ||
		b.Status == StatusConfirmed ||
		b.Status == StatusInProgress
}

// IsTerminal возвращает true для завершенных и отмененных бронирований
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCompleted || b.Status == StatusCancelled
}

// CanBeJoined возвращает true, если к сессии можно присоединиться
// Присоединение разрешено только для confirmed и in-progress
func (b *Booking) CanBeJoined() bool {
	return b.Status == StatusConfirmed || b.Status == StatusInProgress
}

// JoinedAt возвращает отметку присоединения для указанной роли
func (b *Booking) JoinedAt(role CancelRole) *time.Time {
	if role == RoleMentor {
		return b.MentorJoinedAt
	}
	return b.CandidateJoinedAt
}

// Overlaps проверяет пересечение двух полуоткрытых интервалов [start, end)
// Сессия, заканчивающаяся ровно в момент начала другой, НЕ конфликтует
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// MentorBookingsFilter фильтр для выборки бронирований ментора
type MentorBookingsFilter struct {
	MentorID        int64
	StartDate       *time.Time
	EndDate         *time.Time
	Status          *BookingStatus
	IncludeInactive bool
}

// CandidateBookingsFilter фильтр для выборки бронирований кандидата
type CandidateBookingsFilter struct {
	CandidateID     int64
	StartDate       *time.Time
	EndDate         *time.Time
	Status          *BookingStatus
	IncludeInactive bool
}
