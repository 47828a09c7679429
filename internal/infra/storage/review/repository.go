package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/mentorguru/MG-BookingService/internal/domain"
	"github.com/mentorguru/MG-BookingService/pkg/dbmetrics"
	"github.com/mentorguru/MG-BookingService/pkg/psqlbuilder"
)

const uniqueViolationCode = "23505"

// Repository репозиторий для работы с отзывами и агрегатами рейтинга
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория отзывов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый отзыв
// Уникальность по booking_id обеспечивает БД: нарушение уникального
// индекса транслируется в ErrDuplicateReview
func (r *Repository) Create(ctx context.Context, rv *domain.Review) (*domain.Review, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reviews").
		Columns(
			"booking_id",
			"mentor_id",
			"candidate_id",
			"rating",
			"comment",
		).
		Values(
			rv.BookingID,
			rv.MentorID,
			rv.CandidateID,
			rv.Rating,
			rv.Comment,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&rv.ID,
		&rv.CreatedAt,
		&rv.UpdatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolationCode {
			return nil, fmt.Errorf("%w: booking_id=%d", ErrDuplicateReview, rv.BookingID)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return rv, nil
}

// GetByBookingID получает отзыв по ID бронирования
func (r *Repository) GetByBookingID(ctx context.Context, bookingID int64) (*domain.Review, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"booking_id",
		"mentor_id",
		"candidate_id",
		"rating",
		"comment",
		"created_at",
		"updated_at",
	).
		From("reviews").
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - build select query: %v", ErrBuildQuery, err)
	}

	var rv domain.Review
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&rv.ID,
		&rv.BookingID,
		&rv.MentorID,
		&rv.CandidateID,
		&rv.Rating,
		&rv.Comment,
		&rv.CreatedAt,
		&rv.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - scan review: %v", ErrScanRow, err)
	}

	return &rv, nil
}

// GetByMentor получает отзывы о менторе, новые первыми
func (r *Repository) GetByMentor(ctx context.Context, mentorID int64) ([]*domain.Review, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"booking_id",
		"mentor_id",
		"candidate_id",
		"rating",
		"comment",
		"created_at",
		"updated_at",
	).
		From("reviews").
		Where(squirrel.Eq{"mentor_id": mentorID}).
		OrderBy("created_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByMentor - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByMentor - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	reviews := make([]*domain.Review, 0)
	for rows.Next() {
		var rv domain.Review
		err := rows.Scan(
			&rv.ID,
			&rv.BookingID,
			&rv.MentorID,
			&rv.CandidateID,
			&rv.Rating,
			&rv.Comment,
			&rv.CreatedAt,
			&rv.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByMentor - scan row: %v", ErrScanRow, err)
		}
		reviews = append(reviews, &rv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByMentor - rows error: %v", ErrScanRow, err)
	}

	return reviews, nil
}

// GetRatingForUpdate получает агрегат рейтинга ментора с блокировкой строки
// Вызывается внутри транзакции: конкурентные отзывы об одном менторе
// сериализуются на блокировке строки агрегата
func (r *Repository) GetRatingForUpdate(ctx context.Context, mentorID int64) (*domain.MentorRating, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"mentor_id",
		"average_rating",
		"total_reviews",
		"updated_at",
	).
		From("mentor_ratings").
		Where(squirrel.Eq{"mentor_id": mentorID})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetRatingForUpdate - build select query: %v", ErrBuildQuery, err)
	}

	var rating domain.MentorRating
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&rating.MentorID,
		&rating.AverageRating,
		&rating.TotalReviews,
		&rating.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrRatingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetRatingForUpdate - scan rating: %v", ErrScanRow, err)
	}

	return &rating, nil
}

// GetRating получает агрегат рейтинга ментора без блокировки
func (r *Repository) GetRating(ctx context.Context, mentorID int64) (*domain.MentorRating, error) {
	return r.GetRatingForUpdate(ctx, mentorID)
}

// SaveRating записывает агрегат рейтинга ментора (insert или update)
func (r *Repository) SaveRating(ctx context.Context, rating *domain.MentorRating) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("mentor_ratings").
		Columns("mentor_id", "average_rating", "total_reviews", "updated_at").
		Values(rating.MentorID, rating.AverageRating, rating.TotalReviews, squirrel.Expr("NOW()")).
		Suffix("ON CONFLICT (mentor_id) DO UPDATE SET average_rating = EXCLUDED.average_rating, total_reviews = EXCLUDED.total_reviews, updated_at = NOW()").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SaveRating - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SaveRating - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}
