package get_mentor_reviews

import (
	"context"

	"github.com/mentorguru/MG-BookingService/internal/service/reviews/models"
)

type ReviewService interface {
	GetMentorReviews(ctx context.Context, mentorID int64) (*models.ReviewListResponse, *models.MentorRatingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
