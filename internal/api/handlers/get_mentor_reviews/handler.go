package get_mentor_reviews

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mentorguru/MG-BookingService/internal/api/handlers"
	"github.com/mentorguru/MG-BookingService/internal/service/reviews/models"
)

const (
	msgInvalidMentorID = "некорректный ID ментора"
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

// MentorReviewsResponse HTTP модель отзывов о менторе с агрегатом
type MentorReviewsResponse struct {
	Rating  *models.MentorRatingResponse `json:"rating"`
	Reviews []models.ReviewResponse      `json:"reviews"`
}

// Handle GET /api/v1/mentors/{mentorId}/reviews
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	mentorID, err := strconv.ParseInt(vars["mentorId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /mentors/{id}/reviews - Invalid mentor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMentorID)
		return
	}

	reviewList, rating, err := h.service.GetMentorReviews(r.Context(), mentorID)
	if err != nil {
		h.logger.Error("GET /mentors/{id}/reviews - Failed to get reviews: mentor_id=%d, error=%v", mentorID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /mentors/{id}/reviews - %d reviews returned: mentor_id=%d", len(reviewList.Reviews), mentorID)
	handlers.RespondJSON(w, http.StatusOK, MentorReviewsResponse{
		Rating:  rating,
		Reviews: reviewList.Reviews,
	})
}
