package booking

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorguru/MG-BookingService/internal/domain"
)

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(db), mock
}

func bookingRows() *sqlmock.Rows {
	return sqlmock.NewRows(bookingColumns)
}

func TestGetByID(t *testing.T) {
	repo, mock := newMockRepo(t)

	created := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT .+ FROM bookings WHERE id = \\$1").
		WithArgs(int64(7)).
		WillReturnRows(bookingRows().AddRow(
			int64(7), int64(10), int64(20), "paid",
			time.Date(2026, 4, 6, 0, 0, 0, 0, time.UTC), "14:00:00", 60,
			"confirmed", "pending", 120.0,
			nil, nil, nil, 0.0,
			created, created,
		))

	b, err := repo.GetByID(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, int64(7), b.ID)
	assert.Equal(t, domain.SessionPaid, b.SessionType)
	assert.Equal(t, domain.StatusConfirmed, b.Status)
	// TIME колонка приходит с секундами, храним "HH:MM"
	assert.Equal(t, "14:00", b.StartTime.String())
	assert.Nil(t, b.MentorJoinedAt)
	assert.Nil(t, b.CancelledBy)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT .+ FROM bookings WHERE id = \\$1").
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestHasDemoWith(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT 1 FROM bookings").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	exists, err := repo.HasDemoWith(context.Background(), 10, 20)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestHasDemoWith_None(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT 1 FROM bookings").
		WillReturnError(sql.ErrNoRows)

	exists, err := repo.HasDemoWith(context.Background(), 10, 20)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCountPending(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM bookings").
		WithArgs(int64(20), "pending").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountPending(context.Background(), 20)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestUpdateStatusFrom(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE bookings SET status = \\$1, updated_at = NOW\\(\\) WHERE id = \\$2 AND status = \\$3").
		WithArgs(domain.StatusConfirmed, int64(7), domain.StatusPending).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateStatusFrom(context.Background(), 7, domain.StatusPending, domain.StatusConfirmed)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusFrom_Stale(t *testing.T) {
	repo, mock := newMockRepo(t)

	// Статус уже изменен конкурентной операцией - WHERE не совпал
	mock.ExpectExec("UPDATE bookings").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatusFrom(context.Background(), 7, domain.StatusPending, domain.StatusConfirmed)
	assert.ErrorIs(t, err, ErrStaleStatus)
}

func TestCancel_UpdatesPaymentStatusWhenRefunded(t *testing.T) {
	repo, mock := newMockRepo(t)

	refunded := domain.PaymentRefunded
	mock.ExpectExec("UPDATE bookings SET status = .+ WHERE id = .+ AND status NOT IN").
		WithArgs(domain.StatusCancelled, domain.RoleCandidate, 60.0, refunded, int64(7), "completed", "cancelled").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Cancel(context.Background(), 7, domain.RoleCandidate, 60, &refunded)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancel_LeavesPaymentStatusWhenNoRefund(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE bookings SET status = .+ WHERE id = .+ AND status NOT IN").
		WithArgs(domain.StatusCancelled, domain.RoleCandidate, 0.0, int64(7), "completed", "cancelled").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Cancel(context.Background(), 7, domain.RoleCandidate, 0, nil)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancel_TerminalBookingStale(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE bookings").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Cancel(context.Background(), 7, domain.RoleMentor, 120, nil)
	assert.ErrorIs(t, err, ErrStaleStatus)
}

func TestRecordJoin_SecondJoinOfSameRoleStale(t *testing.T) {
	repo, mock := newMockRepo(t)

	// Отметка уже стоит - условие joinColumn IS NULL не выполнено
	mock.ExpectExec("UPDATE bookings SET mentor_joined_at = .+ AND mentor_joined_at IS NULL").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.RecordJoin(context.Background(), 7, domain.RoleMentor, time.Now())
	assert.ErrorIs(t, err, ErrStaleStatus)
}

func TestCloseSession_OnlyInProgress(t *testing.T) {
	repo, mock := newMockRepo(t)

	zero := 0.0
	mock.ExpectExec("UPDATE bookings SET status = .+ WHERE id = .+ AND status = \\$\\d").
		WithArgs(domain.StatusCancelled, domain.PaymentPaid, zero, int64(7), "in-progress").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.CloseSession(context.Background(), 7, domain.StatusCancelled, domain.PaymentPaid, &zero)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
