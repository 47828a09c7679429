package reviews

import (
	"context"
	"errors"
	"fmt"

	"github.com/mentorguru/MG-BookingService/internal/domain"
	bookingRepo "github.com/mentorguru/MG-BookingService/internal/infra/storage/booking"
	reviewRepo "github.com/mentorguru/MG-BookingService/internal/infra/storage/review"
	"github.com/mentorguru/MG-BookingService/internal/service/reviews/models"
)

// Service сервис для работы с отзывами
type Service struct {
	reviewRepo  ReviewRepository
	bookingRepo BookingRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса отзывов
func NewService(
	reviewRepo ReviewRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		reviewRepo:  reviewRepo,
		bookingRepo: bookingRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Submit создает отзыв о завершенной сессии и пересчитывает рейтинг ментора
// Отзыв оставляет только кандидат бронирования, не более одного на сессию.
// Вставка отзыва и пересчет агрегата выполняются в одной транзакции,
// строка агрегата блокируется на время пересчета
func (s *Service) Submit(ctx context.Context, req *models.SubmitReviewRequest) (*models.ReviewResponse, error) {
	s.logger.Info("Submit: review for booking=%d by candidate=%d, rating=%d",
		req.BookingID, req.CandidateID, req.Rating)

	if err := validateSubmitRequest(req); err != nil {
		s.logger.Warn("Submit: validation failed: %v", err)
		return nil, err
	}

	booking, err := s.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Submit: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Submit: repository error for booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: Submit - repository error: %v", ErrInternal, err)
	}

	if booking.CandidateID != req.CandidateID {
		s.logger.Warn("Submit: candidate=%d is not a participant of booking id=%d", req.CandidateID, req.BookingID)
		return nil, ErrAccessDenied
	}

	if booking.Status != domain.StatusCompleted {
		s.logger.Warn("Submit: booking id=%d is not completed, status=%s", req.BookingID, booking.Status)
		return nil, ErrSessionNotCompleted
	}

	var result *domain.Review

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Создаем отзыв, уникальность по бронированию обеспечивает БД
		review := &domain.Review{
			BookingID:   booking.ID,
			MentorID:    booking.MentorID,
			CandidateID: booking.CandidateID,
			Rating:      req.Rating,
			Comment:     req.Comment,
		}

		created, err := s.reviewRepo.Create(txCtx, review)
		if err != nil {
			if errors.Is(err, reviewRepo.ErrDuplicateReview) {
				s.logger.Warn("Submit: review already exists for booking id=%d", req.BookingID)
				return ErrDuplicateReview
			}
			s.logger.Error("Submit: failed to create review: %v", err)
			return fmt.Errorf("%w: Submit - failed to create review: %v", ErrInternal, err)
		}

		// 2. Читаем агрегат с блокировкой строки и пересчитываем
		rating, err := s.reviewRepo.GetRatingForUpdate(txCtx, booking.MentorID)
		if err != nil && !errors.Is(err, reviewRepo.ErrRatingNotFound) {
			s.logger.Error("Submit: failed to get mentor rating: %v", err)
			return fmt.Errorf("%w: Submit - failed to get mentor rating: %v", ErrInternal, err)
		}

		if rating == nil {
			rating = &domain.MentorRating{MentorID: booking.MentorID}
		}

		rating.AverageRating = domain.NextAverage(rating.AverageRating, rating.TotalReviews, req.Rating)
		rating.TotalReviews++

		if err := s.reviewRepo.SaveRating(txCtx, rating); err != nil {
			s.logger.Error("Submit: failed to save mentor rating: %v", err)
			return fmt.Errorf("%w: Submit - failed to save mentor rating: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("Submit: review id=%d created for booking=%d, mentor=%d",
		result.ID, result.BookingID, result.MentorID)

	return models.FromDomainReview(result), nil
}

// GetMentorReviews получает отзывы о менторе вместе с агрегатом рейтинга
func (s *Service) GetMentorReviews(ctx context.Context, mentorID int64) (*models.ReviewListResponse, *models.MentorRatingResponse, error) {
	s.logger.Info("GetMentorReviews: fetching reviews for mentor=%d", mentorID)

	reviews, err := s.reviewRepo.GetByMentor(ctx, mentorID)
	if err != nil {
		s.logger.Error("GetMentorReviews: repository error for mentor=%d: %v", mentorID, err)
		return nil, nil, fmt.Errorf("%w: GetMentorReviews - repository error: %v", ErrInternal, err)
	}

	rating, err := s.reviewRepo.GetRatingForUpdate(ctx, mentorID)
	if err != nil && !errors.Is(err, reviewRepo.ErrRatingNotFound) {
		s.logger.Error("GetMentorReviews: failed to get rating for mentor=%d: %v", mentorID, err)
		return nil, nil, fmt.Errorf("%w: GetMentorReviews - failed to get rating: %v", ErrInternal, err)
	}

	if rating == nil {
		rating = &domain.MentorRating{MentorID: mentorID}
	}

	s.logger.Info("GetMentorReviews: fetched %d reviews for mentor=%d", len(reviews), mentorID)
	return models.FromDomainReviewList(reviews), models.FromDomainRating(rating), nil
}

// validateSubmitRequest валидирует входные данные запроса
func validateSubmitRequest(req *models.SubmitReviewRequest) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingId must be positive", ErrInvalidInput)
	}

	if req.CandidateID <= 0 {
		return fmt.Errorf("%w: candidateId must be positive", ErrInvalidInput)
	}

	if req.Rating < domain.MinRating || req.Rating > domain.MaxRating {
		return fmt.Errorf("%w: rating must be between %d and %d", ErrInvalidInput, domain.MinRating, domain.MaxRating)
	}

	return nil
}
