package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/mentorguru/MG-BookingService/internal/api/handlers"
	"github.com/mentorguru/MG-BookingService/internal/domain"
	getAvailableSlots "github.com/mentorguru/MG-BookingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidMentorID    = "некорректный ID ментора"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidSessionType = "некорректный тип сессии, ожидается demo или paid"
	msgMentorNotFound     = "ментор не найден"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/mentors/{mentorId}/slots?date=YYYY-MM-DD&sessionType=demo|paid
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	mentorID, err := strconv.ParseInt(vars["mentorId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /mentors/{id}/slots - Invalid mentor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMentorID)
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /mentors/{id}/slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	sessionType := domain.SessionType(r.URL.Query().Get("sessionType"))
	if sessionType != domain.SessionDemo && sessionType != domain.SessionPaid {
		h.logger.Warn("GET /mentors/{id}/slots - Invalid session type: %q", sessionType)
		handlers.RespondBadRequest(w, msgInvalidSessionType)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		MentorID:    mentorID,
		Date:        date,
		SessionType: sessionType,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrMentorNotFound):
			h.logger.Warn("GET /mentors/{id}/slots - Mentor not found: mentor_id=%d", mentorID)
			handlers.RespondNotFound(w, msgMentorNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /mentors/{id}/slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /mentors/{id}/slots - Failed to get slots: mentor_id=%d, error=%v", mentorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /mentors/{id}/slots - %d slots returned: mentor_id=%d, date=%s",
		len(result.Slots), mentorID, date.Format(domain.DateFormat))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
