package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mentorguru/MG-BookingService/internal/domain"
	bookingRepo "github.com/mentorguru/MG-BookingService/internal/infra/storage/booking"
	"github.com/mentorguru/MG-BookingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo   BookingRepository
	paymentClient PaymentServiceClient
	sweepMetrics  SweepMetrics
	timeProvider  TimeProvider
	logger        Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	paymentClient PaymentServiceClient,
	sweepMetrics SweepMetrics,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:   bookingRepo,
		paymentClient: paymentClient,
		sweepMetrics:  sweepMetrics,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// GetByID получает бронирование по ID
// Бронирование видят только его участники - ментор и кандидат
func (s *Service) GetByID(ctx context.Context, id int64, userID int64, role string) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d, role=%s", id, userID, role)

	domainRole, err := models.ToDomainRole(role)
	if err != nil {
		s.logger.Warn("GetByID: invalid role=%s for user=%d", role, userID)
		return nil, fmt.Errorf("%w: invalid role", ErrInvalidInput)
	}

	booking, err := s.getBooking(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}

	if err := s.checkParticipant(booking, userID, domainRole); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetCandidateBookings получает историю бронирований кандидата
// Поддерживает фильтрацию по периоду, статусу и включению неактивных бронирований
func (s *Service) GetCandidateBookings(ctx context.Context, req *models.GetCandidateBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetCandidateBookings: fetching bookings for candidate=%d, status=%v", req.CandidateID, req.Status)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetCandidateBookings: invalid filter for candidate=%d: %v", req.CandidateID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByCandidateWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetCandidateBookings: repository error for candidate=%d: %v", req.CandidateID, err)
		return nil, fmt.Errorf("%w: GetCandidateBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCandidateBookings: successfully fetched %d bookings for candidate=%d", len(bookings), req.CandidateID)
	return models.FromDomainBookingList(bookings), nil
}

// GetMentorBookings получает бронирования ментора с фильтрацией
func (s *Service) GetMentorBookings(ctx context.Context, req *models.GetMentorBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetMentorBookings: fetching bookings for mentor=%d, status=%v", req.MentorID, req.Status)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetMentorBookings: invalid filter for mentor=%d: %v", req.MentorID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByMentorWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetMentorBookings: repository error for mentor=%d: %v", req.MentorID, err)
		return nil, fmt.Errorf("%w: GetMentorBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetMentorBookings: successfully fetched %d bookings for mentor=%d", len(bookings), req.MentorID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование с расчетом возврата
// Отмена ментором - полный возврат кандидату независимо от срока.
// Отмена кандидатом - возврат по времени до начала сессии:
// более 24 часов - 100%, от 1 до 24 часов - 50%, менее часа - 0%
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d, role=%s", bookingID, req.UserID, req.Role)

	domainRole, err := models.ToDomainRole(req.Role)
	if err != nil {
		s.logger.Warn("Cancel: invalid role=%s for user=%d", req.Role, req.UserID)
		return nil, fmt.Errorf("%w: invalid role", ErrInvalidInput)
	}

	booking, err := s.getBooking(ctx, bookingID, "Cancel")
	if err != nil {
		return nil, err
	}

	if err := s.checkParticipant(booking, req.UserID, domainRole); err != nil {
		s.logger.Warn("Cancel: access denied for user=%d to booking id=%d", req.UserID, bookingID)
		return nil, err
	}

	if booking.IsTerminal() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return nil, ErrCannotCancel
	}

	// Рассчитываем возврат по времени до начала сессии
	now := s.timeProvider.Now()
	hoursBefore := booking.SessionStart().Sub(now).Hours()
	percentage := domain.RefundPercentage(domainRole, hoursBefore)
	refundAmount := domain.RefundAmount(booking.Amount, percentage)

	// Статус оплаты помечается возвращенным по проценту, а не по сумме:
	// бесплатная demo-сессия с положенным возвратом тоже получает refunded
	var paymentStatus *domain.PaymentStatus
	if percentage > 0 {
		refunded := domain.PaymentRefunded
		paymentStatus = &refunded
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID, domainRole, refundAmount, paymentStatus); err != nil {
		if errors.Is(err, bookingRepo.ErrStaleStatus) {
			s.logger.Warn("Cancel: booking id=%d reached terminal status concurrently", bookingID)
			return nil, ErrCannotCancel
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Подтверждение возврата платежному шлюзу не блокирует отмену:
	// статусы уже записаны, при недоступности шлюза только логируем
	if refundAmount > 0 {
		if err := s.paymentClient.ConfirmRefundWithGracefulDegradation(ctx, bookingID, refundAmount); err != nil {
			s.logger.Warn("Cancel: refund confirmation degraded for booking id=%d: %v", bookingID, err)
		}
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d by %s, refund=%.2f (%d%%)",
		bookingID, domainRole, refundAmount, percentage)

	return s.fetchResponse(ctx, bookingID, "Cancel")
}

// UpdateStatus обновляет статус бронирования по таблице допустимых переходов
// pending -> confirmed/cancelled, confirmed -> in-progress/cancelled,
// in-progress -> completed/cancelled; терминальные статусы неизменяемы
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s by user=%d",
		bookingID, req.Status, req.UserID)

	domainRole, err := models.ToDomainRole(req.Role)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid role=%s for user=%d", req.Role, req.UserID)
		return fmt.Errorf("%w: invalid role", ErrInvalidInput)
	}

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	booking, err := s.getBooking(ctx, bookingID, "UpdateStatus")
	if err != nil {
		return err
	}

	// Статусом управляет только ментор бронирования
	if domainRole != domain.RoleMentor {
		s.logger.Warn("UpdateStatus: role=%s cannot manage status of booking id=%d", domainRole, bookingID)
		return ErrAccessDenied
	}

	if err := s.checkParticipant(booking, req.UserID, domainRole); err != nil {
		s.logger.Warn("UpdateStatus: access denied for user=%d to booking id=%d", req.UserID, bookingID)
		return err
	}

	if !domain.CanTransition(booking.Status, newStatus) {
		s.logger.Warn("UpdateStatus: transition %s -> %s is not allowed for booking id=%d",
			booking.Status, newStatus, bookingID)
		return ErrInvalidTransition
	}

	if err := s.bookingRepo.UpdateStatusFrom(ctx, bookingID, booking.Status, newStatus); err != nil {
		if errors.Is(err, bookingRepo.ErrStaleStatus) {
			s.logger.Warn("UpdateStatus: booking id=%d changed status concurrently", bookingID)
			return ErrInvalidTransition
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated booking id=%d to status=%s", bookingID, newStatus)
	return nil
}

// Join фиксирует присоединение участника к сессии
// Присоединиться можно в окне от 10 минут до начала до 10 минут после
// окончания сессии, каждая роль - не более одного раза.
// Первое присоединение переводит сессию в in-progress
func (s *Service) Join(ctx context.Context, bookingID int64, req *models.JoinSessionRequest) (*models.BookingResponse, error) {
	s.logger.Info("Join: user=%d, role=%s joining booking id=%d", req.UserID, req.Role, bookingID)

	domainRole, err := models.ToDomainRole(req.Role)
	if err != nil {
		s.logger.Warn("Join: invalid role=%s for user=%d", req.Role, req.UserID)
		return nil, fmt.Errorf("%w: invalid role", ErrInvalidInput)
	}

	booking, err := s.getBooking(ctx, bookingID, "Join")
	if err != nil {
		return nil, err
	}

	if err := s.checkParticipant(booking, req.UserID, domainRole); err != nil {
		s.logger.Warn("Join: access denied for user=%d to booking id=%d", req.UserID, bookingID)
		return nil, err
	}

	if !booking.CanBeJoined() {
		s.logger.Warn("Join: booking id=%d is not joinable, status=%s", bookingID, booking.Status)
		return nil, ErrInvalidSessionState
	}

	if booking.JoinedAt(domainRole) != nil {
		s.logger.Warn("Join: %s already joined booking id=%d", domainRole, bookingID)
		return nil, ErrAlreadyJoined
	}

	now := s.timeProvider.Now()
	if !withinJoinWindow(booking, now) {
		s.logger.Warn("Join: booking id=%d join window closed at %s", bookingID, now.Format(time.RFC3339))
		return nil, ErrOutsideJoinWindow
	}

	if err := s.bookingRepo.RecordJoin(ctx, bookingID, domainRole, now); err != nil {
		if errors.Is(err, bookingRepo.ErrStaleStatus) {
			s.logger.Warn("Join: booking id=%d changed state concurrently", bookingID)
			return nil, ErrInvalidSessionState
		}
		s.logger.Error("Join: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Join - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Join: %s joined booking id=%d", domainRole, bookingID)

	return s.fetchResponse(ctx, bookingID, "Join")
}

// AutoClose закрывает просроченные in-progress сессии
// Классификация по отметкам присоединения:
// оба присоединились - completed, оплата списывается;
// ментор не пришел - cancelled с полным возвратом кандидату;
// кандидат не пришел или не пришли оба - cancelled без возврата.
// Ошибка на одном бронировании не прерывает обработку остальных
func (s *Service) AutoClose(ctx context.Context) (*models.AutoCloseReport, error) {
	now := s.timeProvider.Now()

	bookings, err := s.bookingRepo.GetInProgress(ctx)
	if err != nil {
		s.logger.Error("AutoClose: failed to get in-progress bookings: %v", err)
		return nil, fmt.Errorf("%w: AutoClose - repository error: %v", ErrInternal, err)
	}

	report := &models.AutoCloseReport{}

	for _, booking := range bookings {
		if !now.After(booking.SessionEnd()) {
			continue
		}

		report.Processed++

		if err := s.closeExpired(ctx, booking); err != nil {
			if errors.Is(err, bookingRepo.ErrStaleStatus) {
				s.logger.Info("AutoClose: booking id=%d already closed concurrently", booking.ID)
				report.Processed--
				continue
			}
			s.logger.Error("AutoClose: failed to close booking id=%d: %v", booking.ID, err)
			s.sweepMetrics.IncSweepProcessed("failed")
			report.Failed++
			continue
		}

		if bothJoined(booking) {
			s.sweepMetrics.IncSweepProcessed("completed")
			report.Completed++
		} else {
			s.sweepMetrics.IncSweepProcessed("cancelled")
			report.Cancelled++
		}
	}

	if report.Processed > 0 {
		s.logger.Info("AutoClose: processed=%d, completed=%d, cancelled=%d, failed=%d",
			report.Processed, report.Completed, report.Cancelled, report.Failed)
	}

	return report, nil
}

// closeExpired классифицирует и закрывает одну просроченную сессию
func (s *Service) closeExpired(ctx context.Context, booking *domain.Booking) error {
	mentorJoined := booking.MentorJoinedAt != nil
	candidateJoined := booking.CandidateJoinedAt != nil
	isPaid := booking.SessionType == domain.SessionPaid

	var (
		status        domain.BookingStatus
		paymentStatus = booking.PaymentStatus
		refundAmount  *float64
		captureAmount float64
		confirmRefund float64
	)

	switch {
	case mentorJoined && candidateJoined:
		// Сессия состоялась
		status = domain.StatusCompleted
		if isPaid {
			paymentStatus = domain.PaymentPaid
			captureAmount = booking.Amount
		}

	case !mentorJoined && candidateJoined:
		// Ментор не пришел - полный возврат кандидату
		status = domain.StatusCancelled
		if isPaid {
			paymentStatus = domain.PaymentRefunded
			refundAmount = &booking.Amount
			confirmRefund = booking.Amount
		}

	default:
		// Кандидат не пришел или не пришли оба - без возврата
		status = domain.StatusCancelled
		if isPaid {
			paymentStatus = domain.PaymentPaid
			zero := 0.0
			refundAmount = &zero
		}
	}

	if err := s.bookingRepo.CloseSession(ctx, booking.ID, status, paymentStatus, refundAmount); err != nil {
		return err
	}

	// Подтверждения платежному шлюзу после записи статусов, деградация не
	// откатывает закрытие сессии
	if captureAmount > 0 {
		if err := s.paymentClient.ConfirmCaptureWithGracefulDegradation(ctx, booking.ID, captureAmount); err != nil {
			s.logger.Warn("AutoClose: capture confirmation degraded for booking id=%d: %v", booking.ID, err)
		}
	}
	if confirmRefund > 0 {
		if err := s.paymentClient.ConfirmRefundWithGracefulDegradation(ctx, booking.ID, confirmRefund); err != nil {
			s.logger.Warn("AutoClose: refund confirmation degraded for booking id=%d: %v", booking.ID, err)
		}
	}

	return nil
}

// Вспомогательные методы

func (s *Service) getBooking(ctx context.Context, id int64, op string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

func (s *Service) fetchResponse(ctx context.Context, id int64, op string) (*models.BookingResponse, error) {
	booking, err := s.getBooking(ctx, id, op)
	if err != nil {
		return nil, err
	}
	return models.FromDomainBooking(booking), nil
}

// checkParticipant проверяет, что пользователь участвует в бронировании
// в заявленной роли
func (s *Service) checkParticipant(booking *domain.Booking, userID int64, role domain.CancelRole) error {
	if role == domain.RoleMentor && booking.MentorID == userID {
		return nil
	}
	if role == domain.RoleCandidate && booking.CandidateID == userID {
		return nil
	}
	return ErrAccessDenied
}

// withinJoinWindow проверяет попадание в окно присоединения
// Окно [start - 10 минут, end + 10 минут], границы включительно
func withinJoinWindow(booking *domain.Booking, now time.Time) bool {
	grace := time.Duration(domain.JoinGraceMinutes) * time.Minute
	windowStart := booking.SessionStart().Add(-grace)
	windowEnd := booking.SessionEnd().Add(grace)
	return !now.Before(windowStart) && !now.After(windowEnd)
}

func bothJoined(booking *domain.Booking) bool {
	return booking.MentorJoinedAt != nil && booking.CandidateJoinedAt != nil
}
