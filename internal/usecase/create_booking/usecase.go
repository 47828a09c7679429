package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mentorguru/MG-BookingService/internal/domain"
	mentorClient "github.com/mentorguru/MG-BookingService/internal/integrations/mentorservice"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	mentorClient MentorServiceClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	mentorClient MentorServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		mentorClient: mentorClient,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Использует сериализуемую транзакцию для предотвращения гонки данных
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: mentor=%d, candidate=%d, type=%s, date=%s, time=%s, duration=%d",
		req.MentorID, req.CandidateID, req.SessionType, req.Date.Format(domain.DateFormat), req.StartTime, req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем ментора и проверяем верификацию
	mentor, err := uc.mentorClient.GetMentor(ctx, req.MentorID)
	if err != nil {
		if errors.Is(err, mentorClient.ErrMentorNotFound) {
			uc.logger.Warn("CreateBooking: mentor id=%d not found", req.MentorID)
			return nil, ErrMentorNotFound
		}
		uc.logger.Error("CreateBooking: failed to get mentor id=%d: %v", req.MentorID, err)
		return nil, fmt.Errorf("%w: failed to get mentor: %v", ErrInternal, err)
	}

	if !mentor.Verified {
		uc.logger.Warn("CreateBooking: mentor id=%d is not verified", req.MentorID)
		return nil, ErrMentorUnavailable
	}

	// 4. Проверяем, что начало сессии в будущем
	sessionStart := req.StartTime.OnDate(req.Date)
	sessionEnd := sessionStart.Add(time.Duration(req.DurationMinutes) * time.Minute)

	if err := validateSessionInFuture(sessionStart, now); err != nil {
		uc.logger.Warn("CreateBooking: session start %s is in the past", sessionStart.Format(domain.DateFormat))
		return nil, err
	}

	// 5. Проверяем лимит длительности demo-сессии
	if err := validateDemoDuration(req.SessionType, req.DurationMinutes); err != nil {
		uc.logger.Warn("CreateBooking: demo duration validation failed: %v", err)
		return nil, err
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 6. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Одна demo-сессия на пару кандидат-ментор
		if req.SessionType == domain.SessionDemo {
			exists, err := uc.bookingRepo.HasDemoWith(txCtx, req.MentorID, req.CandidateID)
			if err != nil {
				uc.logger.Error("CreateBooking: failed to check existing demo: %v", err)
				return fmt.Errorf("%w: failed to check existing demo: %v", ErrInternal, err)
			}
			if exists {
				uc.logger.Warn("CreateBooking: demo already exists for mentor=%d, candidate=%d",
					req.MentorID, req.CandidateID)
				return ErrDuplicateDemo
			}
		}

		// 6.2. Платная сессия требует завершенной demo с этим ментором
		if req.SessionType == domain.SessionPaid {
			completed, err := uc.bookingRepo.HasCompletedDemoWith(txCtx, req.MentorID, req.CandidateID)
			if err != nil {
				uc.logger.Error("CreateBooking: failed to check completed demo: %v", err)
				return fmt.Errorf("%w: failed to check completed demo: %v", ErrInternal, err)
			}
			if !completed {
				uc.logger.Warn("CreateBooking: no completed demo for mentor=%d, candidate=%d",
					req.MentorID, req.CandidateID)
				return ErrDemoNotCompleted
			}
		}

		// 6.3. Слот должен попадать в расписание ментора
		if err := validateWithinAvailability(mentor, req); err != nil {
			uc.logger.Warn("CreateBooking: slot outside availability for mentor=%d", req.MentorID)
			return err
		}

		// 6.4. Активные бронирования ментора на эту дату с блокировкой (FOR UPDATE)
		mentorBookings, err := uc.bookingRepo.GetActiveByMentorAndDate(txCtx, req.MentorID, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get mentor bookings: %v", err)
			return fmt.Errorf("%w: failed to get mentor bookings: %v", ErrInternal, err)
		}

		if hasOverlap(sessionStart, sessionEnd, mentorBookings) {
			uc.logger.Warn("CreateBooking: slot taken for mentor=%d at %s %s",
				req.MentorID, req.Date.Format(domain.DateFormat), req.StartTime)
			return ErrSlotTaken
		}

		// 6.5. Активные бронирования кандидата на эту дату с блокировкой (FOR UPDATE)
		candidateBookings, err := uc.bookingRepo.GetActiveByCandidateAndDate(txCtx, req.CandidateID, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get candidate bookings: %v", err)
			return fmt.Errorf("%w: failed to get candidate bookings: %v", ErrInternal, err)
		}

		if hasOverlap(sessionStart, sessionEnd, candidateBookings) {
			uc.logger.Warn("CreateBooking: candidate=%d already booked at %s %s",
				req.CandidateID, req.Date.Format(domain.DateFormat), req.StartTime)
			return ErrDoubleBooked
		}

		// 6.6. Лимит одновременных pending-бронирований кандидата
		pendingCount, err := uc.bookingRepo.CountPending(txCtx, req.CandidateID)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to count pending bookings: %v", err)
			return fmt.Errorf("%w: failed to count pending bookings: %v", ErrInternal, err)
		}
		if pendingCount >= domain.MaxPendingBookings {
			uc.logger.Warn("CreateBooking: candidate=%d has %d pending bookings (limit %d)",
				req.CandidateID, pendingCount, domain.MaxPendingBookings)
			return ErrTooManyPending
		}

		// 6.7. Создаем бронирование
		booking := &domain.Booking{
			MentorID:        req.MentorID,
			CandidateID:     req.CandidateID,
			SessionType:     req.SessionType,
			BookingDate:     req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: req.DurationMinutes,
			Status:          domain.StatusPending,
			PaymentStatus:   paymentStatusFor(req.SessionType),
			Amount:          sessionAmount(req.SessionType, mentor.HourlyRate, req.DurationMinutes),
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	// Конвертируем в response
	return &Response{
		ID:              result.ID,
		MentorID:        result.MentorID,
		CandidateID:     result.CandidateID,
		SessionType:     string(result.SessionType),
		BookingDate:     result.BookingDate,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		PaymentStatus:   string(result.PaymentStatus),
		Amount:          result.Amount,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// paymentStatusFor возвращает начальный статус оплаты для типа сессии
func paymentStatusFor(sessionType domain.SessionType) domain.PaymentStatus {
	if sessionType == domain.SessionDemo {
		return domain.PaymentNotRequired
	}
	return domain.PaymentPending
}
