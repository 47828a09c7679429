package models

import (
	"time"

	"github.com/mentorguru/MG-BookingService/internal/domain"
)

// SubmitReviewRequest запрос на создание отзыва
type SubmitReviewRequest struct {
	BookingID   int64  `json:"bookingId"`
	CandidateID int64  `json:"candidateId"`
	Rating      int    `json:"rating"`
	Comment     string `json:"comment"`
}

// ReviewResponse ответ с данными отзыва
type ReviewResponse struct {
	ID          int64     `json:"id"`
	BookingID   int64     `json:"bookingId"`
	MentorID    int64     `json:"mentorId"`
	CandidateID int64     `json:"candidateId"`
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ReviewListResponse ответ со списком отзывов
type ReviewListResponse struct {
	Reviews []ReviewResponse `json:"reviews"`
}

// MentorRatingResponse ответ с агрегатом рейтинга ментора
type MentorRatingResponse struct {
	MentorID      int64   `json:"mentorId"`
	AverageRating float64 `json:"averageRating"`
	TotalReviews  int     `json:"totalReviews"`
}

// FromDomainReview конвертирует domain модель в DTO
func FromDomainReview(r *domain.Review) *ReviewResponse {
	if r == nil {
		return nil
	}

	return &ReviewResponse{
		ID:          r.ID,
		BookingID:   r.BookingID,
		MentorID:    r.MentorID,
		CandidateID: r.CandidateID,
		Rating:      r.Rating,
		Comment:     r.Comment,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// FromDomainReviewList конвертирует список domain моделей в DTO
func FromDomainReviewList(reviews []*domain.Review) *ReviewListResponse {
	if reviews == nil {
		return &ReviewListResponse{Reviews: []ReviewResponse{}}
	}

	resp := &ReviewListResponse{
		Reviews: make([]ReviewResponse, len(reviews)),
	}

	for i, review := range reviews {
		if reviewResp := FromDomainReview(review); reviewResp != nil {
			resp.Reviews[i] = *reviewResp
		}
	}

	return resp
}

// FromDomainRating конвертирует агрегат рейтинга в DTO
func FromDomainRating(r *domain.MentorRating) *MentorRatingResponse {
	if r == nil {
		return nil
	}

	return &MentorRatingResponse{
		MentorID:      r.MentorID,
		AverageRating: r.AverageRating,
		TotalReviews:  r.TotalReviews,
	}
}
