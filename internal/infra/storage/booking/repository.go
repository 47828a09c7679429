package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/mentorguru/MG-BookingService/internal/domain"
	"github.com/mentorguru/MG-BookingService/pkg/dbmetrics"
	"github.com/mentorguru/MG-BookingService/pkg/psqlbuilder"
)

// bookingColumns полный набор колонок таблицы bookings
var bookingColumns = []string{
	"id",
	"mentor_id",
	"candidate_id",
	"session_type",
	"booking_date",
	"start_time",
	"duration_minutes",
	"status",
	"payment_status",
	"amount",
	"mentor_joined_at",
	"candidate_joined_at",
	"cancelled_by",
	"refund_amount",
	"created_at",
	"updated_at",
}

// Наборы статусов для SQL-условий, в строковом виде
var (
	activeStatusStrings   = statusStrings(domain.ActiveStatuses)
	terminalStatusStrings = statusStrings(domain.TerminalStatuses)
)

func statusStrings(statuses []domain.BookingStatus) []string {
	result := make([]string, len(statuses))
	for i, status := range statuses {
		result[i] = string(status)
	}
	return result
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её.
// Создание с проверкой конфликтов должно выполняться в сериализуемой
// транзакции: чтение активных бронирований и вставка - одна атомарная
// последовательность, иначе возможна гонка двойного бронирования.
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"mentor_id",
			"candidate_id",
			"session_type",
			"booking_date",
			"start_time",
			"duration_minutes",
			"status",
			"payment_status",
			"amount",
		).
		Values(
			b.MentorID,
			b.CandidateID,
			b.SessionType,
			b.BookingDate,
			b.StartTime,
			b.DurationMinutes,
			b.Status,
			b.PaymentStatus,
			b.Amount,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return b, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanBooking(executor.QueryRowContext(ctx, query, args...))
}

// GetActiveByMentorAndDate получает активные бронирования ментора на дату
// Внутри транзакции добавляет FOR UPDATE для блокировки строк
// (используется в проверке конфликтов при создании)
func (r *Repository) GetActiveByMentorAndDate(ctx context.Context, mentorID int64, date time.Time) ([]*domain.Booking, error) {
	return r.getActiveByOwnerAndDate(ctx, "mentor_id", mentorID, date)
}

// GetActiveByCandidateAndDate получает активные бронирования кандидата на дату
func (r *Repository) GetActiveByCandidateAndDate(ctx context.Context, candidateID int64, date time.Time) ([]*domain.Booking, error) {
	return r.getActiveByOwnerAndDate(ctx, "candidate_id", candidateID, date)
}

func (r *Repository) getActiveByOwnerAndDate(ctx context.Context, ownerColumn string, ownerID int64, date time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{ownerColumn: ownerID}).
		Where(squirrel.Eq{"booking_date": date}).
		Where(squirrel.Eq{"status": activeStatusStrings}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getActiveByOwnerAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getActiveByOwnerAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// HasDemoWith проверяет наличие не отмененного demo-бронирования пары кандидат-ментор
func (r *Repository) HasDemoWith(ctx context.Context, mentorID, candidateID int64) (bool, error) {
	return r.existsDemo(ctx, mentorID, candidateID, squirrel.NotEq{"status": string(domain.StatusCancelled)})
}

// HasCompletedDemoWith проверяет наличие завершенного demo-бронирования пары кандидат-ментор
func (r *Repository) HasCompletedDemoWith(ctx context.Context, mentorID, candidateID int64) (bool, error) {
	return r.existsDemo(ctx, mentorID, candidateID, squirrel.Eq{"status": string(domain.StatusCompleted)})
}

func (r *Repository) existsDemo(ctx context.Context, mentorID, candidateID int64, statusCond squirrel.Sqlizer) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("bookings").
		Where(squirrel.Eq{"mentor_id": mentorID}).
		Where(squirrel.Eq{"candidate_id": candidateID}).
		Where(squirrel.Eq{"session_type": string(domain.SessionDemo)}).
		Where(statusCond).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: existsDemo - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: existsDemo - scan: %v", ErrScanRow, err)
	}

	return true, nil
}

// CountPending возвращает количество pending-бронирований кандидата
func (r *Repository) CountPending(ctx context.Context, candidateID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"candidate_id": candidateID}).
		Where(squirrel.Eq{"status": string(domain.StatusPending)}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountPending - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountPending - scan: %v", ErrScanRow, err)
	}

	return count, nil
}

// GetInProgress получает все бронирования в статусе in-progress
// Используется периодическим sweep-ом автозакрытия
func (r *Repository) GetInProgress(ctx context.Context) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"status": string(domain.StatusInProgress)}).
		OrderBy("booking_date ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetInProgress - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetInProgress - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetByMentorWithFilter получает бронирования ментора с фильтрацией
func (r *Repository) GetByMentorWithFilter(ctx context.Context, filter domain.MentorBookingsFilter) ([]*domain.Booking, error) {
	return r.getWithFilter(ctx, "mentor_id", filter.MentorID, filter.StartDate, filter.EndDate, filter.Status, filter.IncludeInactive)
}

// GetByCandidateWithFilter получает бронирования кандидата с фильтрацией
func (r *Repository) GetByCandidateWithFilter(ctx context.Context, filter domain.CandidateBookingsFilter) ([]*domain.Booking, error) {
	return r.getWithFilter(ctx, "candidate_id", filter.CandidateID, filter.StartDate, filter.EndDate, filter.Status, filter.IncludeInactive)
}

func (r *Repository) getWithFilter(
	ctx context.Context,
	ownerColumn string,
	ownerID int64,
	startDate, endDate *time.Time,
	status *domain.BookingStatus,
	includeInactive bool,
) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{ownerColumn: ownerID})

	if startDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": *startDate})
	}
	if endDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": *endDate})
	}

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": string(*status)})
	} else if !includeInactive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": activeStatusStrings})
	}

	selectBuilder = selectBuilder.OrderBy("booking_date DESC, start_time DESC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// UpdateStatusFrom атомарно переводит бронирование из статуса from в to
// Текущий статус входит в WHERE: если строка уже изменена конкурентной
// операцией, обновление не затронет строк и вернется ErrStaleStatus
func (r *Repository) UpdateStatusFrom(ctx context.Context, id int64, from, to domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": from}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatusFrom - build update query: %v", ErrBuildQuery, err)
	}

	return r.execGuarded(ctx, executor, query, args, "UpdateStatusFrom")
}

// RecordJoin атомарно фиксирует присоединение участника к сессии
// Условия (статус confirmed/in-progress, отметка еще не стоит) входят в WHERE,
// поэтому повторный join той же роли и join после автозакрытия не проходят
func (r *Repository) RecordJoin(ctx context.Context, id int64, role domain.CancelRole, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	joinColumn := "candidate_joined_at"
	if role == domain.RoleMentor {
		joinColumn = "mentor_joined_at"
	}

	query, args, err := psqlbuilder.Update("bookings").
		Set(joinColumn, at).
		Set("status", domain.StatusInProgress).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": []string{string(domain.StatusConfirmed), string(domain.StatusInProgress)}}).
		Where(squirrel.Expr(joinColumn + " IS NULL")).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: RecordJoin - build update query: %v", ErrBuildQuery, err)
	}

	return r.execGuarded(ctx, executor, query, args, "RecordJoin")
}

// Cancel атомарно отменяет бронирование
// Терминальные статусы исключены условием WHERE; paymentStatus обновляется
// только если передан (nil - оставить прежний, возврат не положен)
func (r *Repository) Cancel(
	ctx context.Context,
	id int64,
	cancelledBy domain.CancelRole,
	refundAmount float64,
	paymentStatus *domain.PaymentStatus,
) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancelled_by", cancelledBy).
		Set("refund_amount", refundAmount).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.NotEq{"status": terminalStatusStrings})

	if paymentStatus != nil {
		updateBuilder = updateBuilder.Set("payment_status", *paymentStatus)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execGuarded(ctx, executor, query, args, "Cancel")
}

// CloseSession атомарно закрывает просроченную in-progress сессию
// Фильтр по статусу in-progress делает sweep идемпотентным: уже
// закрытая конкурентным прогоном или отменой строка не затрагивается
func (r *Repository) CloseSession(
	ctx context.Context,
	id int64,
	status domain.BookingStatus,
	paymentStatus domain.PaymentStatus,
	refundAmount *float64,
) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("payment_status", paymentStatus).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": string(domain.StatusInProgress)})

	if refundAmount != nil {
		updateBuilder = updateBuilder.Set("refund_amount", *refundAmount)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: CloseSession - build update query: %v", ErrBuildQuery, err)
	}

	return r.execGuarded(ctx, executor, query, args, "CloseSession")
}

// execGuarded выполняет охраняемое обновление
// 0 затронутых строк означает, что условие WHERE не выполнилось:
// строка исчезла или её статус изменен конкурентно
func (r *Repository) execGuarded(ctx context.Context, executor DBExecutor, query string, args []interface{}, op string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrStaleStatus
	}

	return nil
}

func (r *Repository) scanBooking(row *sql.Row) (*domain.Booking, error) {
	var b domain.Booking
	var cancelledBy sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&b.ID,
		&b.MentorID,
		&b.CandidateID,
		&b.SessionType,
		&b.BookingDate,
		&b.StartTime,
		&b.DurationMinutes,
		&b.Status,
		&b.PaymentStatus,
		&b.Amount,
		&b.MentorJoinedAt,
		&b.CandidateJoinedAt,
		&cancelledBy,
		&b.RefundAmount,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scanBooking - scan booking: %v", ErrScanRow, err)
	}

	if cancelledBy.Valid {
		role := domain.CancelRole(cancelledBy.String)
		b.CancelledBy = &role
	}
	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var b domain.Booking
		var cancelledBy sql.NullString
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&b.ID,
			&b.MentorID,
			&b.CandidateID,
			&b.SessionType,
			&b.BookingDate,
			&b.StartTime,
			&b.DurationMinutes,
			&b.Status,
			&b.PaymentStatus,
			&b.Amount,
			&b.MentorJoinedAt,
			&b.CandidateJoinedAt,
			&cancelledBy,
			&b.RefundAmount,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		if cancelledBy.Valid {
			role := domain.CancelRole(cancelledBy.String)
			b.CancelledBy = &role
		}
		b.CreatedAt = createdAt.Time
		b.UpdatedAt = updatedAt.Time

		bookings = append(bookings, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
