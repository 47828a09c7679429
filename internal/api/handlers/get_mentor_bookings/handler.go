package get_mentor_bookings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/mentorguru/MG-BookingService/internal/api/handlers"
	"github.com/mentorguru/MG-BookingService/internal/api/middleware"
	"github.com/mentorguru/MG-BookingService/internal/domain"
	"github.com/mentorguru/MG-BookingService/internal/service/bookings"
	"github.com/mentorguru/MG-BookingService/internal/service/bookings/models"
	"github.com/mentorguru/MG-BookingService/pkg/ptr"
)

const (
	msgInvalidMentorID = "некорректный ID ментора"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgForbidden       = "доступ запрещен"
	msgInvalidFilter   = "некорректные параметры фильтрации"
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

// Handle GET /api/v1/mentors/{mentorId}/bookings?status=&startDate=&endDate=&includeInactive=
// Расписание доступно только самому ментору
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	mentorID, err := strconv.ParseInt(vars["mentorId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /mentors/{id}/bookings - Invalid mentor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMentorID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /mentors/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	role, _ := middleware.GetUserRole(r.Context())
	if userID != mentorID || role != string(domain.RoleMentor) {
		h.logger.Warn("GET /mentors/{id}/bookings - Access denied: mentor_id=%d, user_id=%d, role=%s",
			mentorID, userID, role)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	req := &models.GetMentorBookingsRequest{MentorID: mentorID}

	query := r.URL.Query()

	if status := query.Get("status"); status != "" {
		req.Status = ptr.Ptr(status)
	}

	if startDateStr := query.Get("startDate"); startDateStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			h.logger.Warn("GET /mentors/{id}/bookings - Invalid startDate: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		req.StartDate = &startDate
	}

	if endDateStr := query.Get("endDate"); endDateStr != "" {
		endDate, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			h.logger.Warn("GET /mentors/{id}/bookings - Invalid endDate: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		req.EndDate = &endDate
	}

	req.IncludeInactive = query.Get("includeInactive") == "true"

	result, err := h.service.GetMentorBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /mentors/{id}/bookings - Invalid filter: mentor_id=%d, error=%v", mentorID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /mentors/{id}/bookings - Failed to get bookings: mentor_id=%d, error=%v", mentorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /mentors/{id}/bookings - %d bookings returned: mentor_id=%d", len(result.Bookings), mentorID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
