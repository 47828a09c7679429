package join_session

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mentorguru/MG-BookingService/internal/api/handlers"
	"github.com/mentorguru/MG-BookingService/internal/api/middleware"
	"github.com/mentorguru/MG-BookingService/internal/service/bookings"
	"github.com/mentorguru/MG-BookingService/internal/service/bookings/models"
)

const (
	msgInvalidBookingID    = "некорректный ID бронирования"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgNotFound            = "бронирование не найдено"
	msgForbidden           = "доступ запрещен"
	msgInvalidSessionState = "к сессии нельзя присоединиться в текущем статусе"
	msgOutsideJoinWindow   = "окно присоединения к сессии закрыто"
	msgAlreadyJoined       = "вы уже присоединились к этой сессии"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/join
// Первое присоединение переводит сессию в in-progress
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/join - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/join - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	role, _ := middleware.GetUserRole(r.Context())

	serviceReq := &models.JoinSessionRequest{
		UserID: userID,
		Role:   role,
	}

	result, err := h.service.Join(r.Context(), bookingID, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/join - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/join - Access denied: booking_id=%d, user_id=%d",
				bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidSessionState):
			h.logger.Warn("POST /bookings/{id}/join - Invalid session state: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgInvalidSessionState)

		case errors.Is(err, bookings.ErrOutsideJoinWindow):
			h.logger.Warn("POST /bookings/{id}/join - Outside join window: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgOutsideJoinWindow)

		case errors.Is(err, bookings.ErrAlreadyJoined):
			h.logger.Warn("POST /bookings/{id}/join - Already joined: booking_id=%d, user_id=%d",
				bookingID, userID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyJoined)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/join - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBookingID)

		default:
			h.logger.Error("POST /bookings/{id}/join - Failed to join session: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/join - Joined successfully: booking_id=%d, user_id=%d, role=%s",
		bookingID, userID, role)
	handlers.RespondJSON(w, http.StatusOK, result)
}
