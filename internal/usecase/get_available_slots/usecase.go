package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/mentorguru/MG-BookingService/internal/domain"
	mentorClient "github.com/mentorguru/MG-BookingService/internal/integrations/mentorservice"
)

// UseCase use case для получения доступных слотов ментора
type UseCase struct {
	bookingRepo  BookingRepository
	mentorClient MentorServiceClient
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	mentorClient MentorServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		mentorClient: mentorClient,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
// Результат детерминирован по входным данным: одинаковое расписание
// и бронирования дают одинаковый список слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: mentor=%d, date=%s, type=%s",
		req.MentorID, req.Date.Format(domain.DateFormat), req.SessionType)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем ментора
	mentor, err := uc.mentorClient.GetMentor(ctx, req.MentorID)
	if err != nil {
		if errors.Is(err, mentorClient.ErrMentorNotFound) {
			uc.logger.Warn("GetAvailableSlots: mentor id=%d not found", req.MentorID)
			return nil, ErrMentorNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get mentor id=%d: %v", req.MentorID, err)
		return nil, fmt.Errorf("%w: failed to get mentor: %v", ErrInternal, err)
	}

	// Неверифицированный ментор недоступен для записи, наружу не отличаем
	// его от отсутствующего
	if !mentor.Verified {
		uc.logger.Warn("GetAvailableSlots: mentor id=%d is not verified", req.MentorID)
		return nil, ErrMentorNotFound
	}

	// 3. Ищем окно расписания на этот день недели
	window := findAvailabilityWindow(mentor.Availability, req.Date.Weekday())
	if window == nil {
		uc.logger.Info("GetAvailableSlots: mentor=%d has no availability on %s",
			req.MentorID, req.Date.Weekday())
		return uc.emptyResponse(req), nil
	}

	// 4. Генерируем сетку слотов с шагом, зависящим от типа сессии
	slotDuration := domain.SlotDurationFor(req.SessionType)
	timeSlots := generateTimeSlots(window, slotDuration)

	// 5. Получаем активные бронирования ментора на эту дату
	bookings, err := uc.bookingRepo.GetActiveByMentorAndDate(ctx, req.MentorID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 6. Исключаем занятые слоты
	slots := filterBookedSlots(timeSlots, slotDuration, req.Date, bookings)

	uc.logger.Info("GetAvailableSlots: %d of %d slots available for mentor=%d on %s",
		len(slots), len(timeSlots), req.MentorID, req.Date.Format(domain.DateFormat))

	return &Response{
		MentorID:    req.MentorID,
		Date:        req.Date,
		SessionType: string(req.SessionType),
		Slots:       slots,
	}, nil
}

func (uc *UseCase) emptyResponse(req *Request) *Response {
	return &Response{
		MentorID:    req.MentorID,
		Date:        req.Date,
		SessionType: string(req.SessionType),
		Slots:       []Slot{},
	}
}
