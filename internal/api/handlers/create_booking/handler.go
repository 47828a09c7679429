package create_booking

import (
	"errors"
	"net/http"

	"github.com/mentorguru/MG-BookingService/internal/api/handlers"
	"github.com/mentorguru/MG-BookingService/internal/api/middleware"
	createBooking "github.com/mentorguru/MG-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDateTime     = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgMentorNotFound      = "ментор не найден"
	msgMentorUnavailable   = "ментор недоступен для бронирования"
	msgPastBooking         = "начало сессии уже прошло"
	msgDemoTooLong         = "demo-сессия не может быть длиннее 15 минут"
	msgDuplicateDemo       = "demo-сессия с этим ментором уже есть"
	msgDemoNotCompleted    = "для платной сессии нужна завершенная demo-сессия"
	msgOutsideAvailability = "слот вне расписания ментора"
	msgSlotTaken           = "слот уже занят у ментора"
	msgDoubleBooked        = "у вас уже есть бронирование на это время"
	msgTooManyPending      = "слишком много неподтвержденных бронирований"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Кандидат - аутентифицированный пользователь
	candidateID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(candidateID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrMentorNotFound):
			h.logger.Warn("POST /bookings - Mentor not found: mentor_id=%d", req.MentorID)
			handlers.RespondNotFound(w, msgMentorNotFound)

		case errors.Is(err, createBooking.ErrMentorUnavailable):
			h.logger.Warn("POST /bookings - Mentor unavailable: mentor_id=%d", req.MentorID)
			handlers.RespondForbidden(w, msgMentorUnavailable)

		case errors.Is(err, createBooking.ErrDemoNotCompleted):
			h.logger.Warn("POST /bookings - Demo not completed: mentor_id=%d, candidate_id=%d", req.MentorID, candidateID)
			handlers.RespondForbidden(w, msgDemoNotCompleted)

		case errors.Is(err, createBooking.ErrPastBooking):
			h.logger.Warn("POST /bookings - Past booking: mentor_id=%d, candidate_id=%d", req.MentorID, candidateID)
			handlers.RespondBadRequest(w, msgPastBooking)

		case errors.Is(err, createBooking.ErrDemoTooLong):
			h.logger.Warn("POST /bookings - Demo too long: mentor_id=%d, duration=%d", req.MentorID, req.DurationMinutes)
			handlers.RespondBadRequest(w, msgDemoTooLong)

		case errors.Is(err, createBooking.ErrOutsideAvailability):
			h.logger.Warn("POST /bookings - Outside availability: mentor_id=%d", req.MentorID)
			handlers.RespondBadRequest(w, msgOutsideAvailability)

		case errors.Is(err, createBooking.ErrDuplicateDemo):
			h.logger.Warn("POST /bookings - Duplicate demo: mentor_id=%d, candidate_id=%d", req.MentorID, candidateID)
			handlers.RespondError(w, http.StatusConflict, msgDuplicateDemo)

		case errors.Is(err, createBooking.ErrSlotTaken):
			h.logger.Warn("POST /bookings - Slot taken: mentor_id=%d", req.MentorID)
			handlers.RespondError(w, http.StatusConflict, msgSlotTaken)

		case errors.Is(err, createBooking.ErrDoubleBooked):
			h.logger.Warn("POST /bookings - Double booked: candidate_id=%d", candidateID)
			handlers.RespondError(w, http.StatusConflict, msgDoubleBooked)

		case errors.Is(err, createBooking.ErrTooManyPending):
			h.logger.Warn("POST /bookings - Too many pending: candidate_id=%d", candidateID)
			handlers.RespondError(w, http.StatusConflict, msgTooManyPending)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: mentor_id=%d, candidate_id=%d, error=%v",
				req.MentorID, candidateID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, mentor_id=%d, candidate_id=%d",
		result.ID, req.MentorID, candidateID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
