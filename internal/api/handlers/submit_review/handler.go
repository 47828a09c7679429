package submit_review

import (
	"errors"
	"net/http"

	"github.com/mentorguru/MG-BookingService/internal/api/handlers"
	"github.com/mentorguru/MG-BookingService/internal/api/middleware"
	"github.com/mentorguru/MG-BookingService/internal/service/reviews"
	"github.com/mentorguru/MG-BookingService/internal/service/reviews/models"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgBookingNotFound     = "бронирование не найдено"
	msgForbidden           = "доступ запрещен"
	msgSessionNotCompleted = "отзыв можно оставить только о завершенной сессии"
	msgDuplicateReview     = "отзыв об этой сессии уже есть"
)

type Handler struct {
	service ReviewService
	logger  Logger
}

func NewHandler(service ReviewService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/reviews
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	candidateID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /reviews - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req SubmitReviewRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reviews - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq := &models.SubmitReviewRequest{
		BookingID:   req.BookingID,
		CandidateID: candidateID,
		Rating:      req.Rating,
		Comment:     req.Comment,
	}

	result, err := h.service.Submit(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, reviews.ErrBookingNotFound):
			h.logger.Warn("POST /reviews - Booking not found: booking_id=%d", req.BookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, reviews.ErrAccessDenied):
			h.logger.Warn("POST /reviews - Access denied: booking_id=%d, candidate_id=%d",
				req.BookingID, candidateID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reviews.ErrSessionNotCompleted):
			h.logger.Warn("POST /reviews - Session not completed: booking_id=%d", req.BookingID)
			handlers.RespondError(w, http.StatusConflict, msgSessionNotCompleted)

		case errors.Is(err, reviews.ErrDuplicateReview):
			h.logger.Warn("POST /reviews - Duplicate review: booking_id=%d", req.BookingID)
			handlers.RespondError(w, http.StatusConflict, msgDuplicateReview)

		case errors.Is(err, reviews.ErrInvalidInput):
			h.logger.Warn("POST /reviews - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /reviews - Failed to submit review: booking_id=%d, error=%v",
				req.BookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reviews - Review submitted successfully: review_id=%d, booking_id=%d, rating=%d",
		result.ID, req.BookingID, req.Rating)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
