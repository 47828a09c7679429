package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorguru/MG-BookingService/internal/domain"
	bookingRepo "github.com/mentorguru/MG-BookingService/internal/infra/storage/booking"
	"github.com/mentorguru/MG-BookingService/internal/service/bookings/models"
)

type cancelCall struct {
	id            int64
	cancelledBy   domain.CancelRole
	refundAmount  float64
	paymentStatus *domain.PaymentStatus
}

type closeCall struct {
	id            int64
	status        domain.BookingStatus
	paymentStatus domain.PaymentStatus
	refundAmount  *float64
}

type joinCall struct {
	id   int64
	role domain.CancelRole
	at   time.Time
}

type updateCall struct {
	id   int64
	from domain.BookingStatus
	to   domain.BookingStatus
}

type fakeRepo struct {
	bookings   map[int64]*domain.Booking
	inProgress []*domain.Booking

	cancelErr error
	updateErr error
	joinErr   error
	closeErr  map[int64]error

	cancels []cancelCall
	closes  []closeCall
	joins   []joinCall
	updates []updateCall
}

func newFakeRepo(bookings ...*domain.Booking) *fakeRepo {
	m := make(map[int64]*domain.Booking, len(bookings))
	for _, b := range bookings {
		m[b.ID] = b
	}
	return &fakeRepo{bookings: m, closeErr: map[int64]error{}}
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeRepo) GetByMentorWithFilter(_ context.Context, filter domain.MentorBookingsFilter) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if b.MentorID == filter.MentorID {
			result = append(result, b)
		}
	}
	return result, nil
}

func (f *fakeRepo) GetByCandidateWithFilter(_ context.Context, filter domain.CandidateBookingsFilter) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if b.CandidateID == filter.CandidateID {
			result = append(result, b)
		}
	}
	return result, nil
}

func (f *fakeRepo) GetInProgress(_ context.Context) ([]*domain.Booking, error) {
	return f.inProgress, nil
}

func (f *fakeRepo) UpdateStatusFrom(_ context.Context, id int64, from, to domain.BookingStatus) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updates = append(f.updates, updateCall{id: id, from: from, to: to})
	return nil
}

func (f *fakeRepo) RecordJoin(_ context.Context, id int64, role domain.CancelRole, at time.Time) error {
	if f.joinErr != nil {
		return f.joinErr
	}
	f.joins = append(f.joins, joinCall{id: id, role: role, at: at})
	return nil
}

func (f *fakeRepo) Cancel(_ context.Context, id int64, cancelledBy domain.CancelRole, refundAmount float64, paymentStatus *domain.PaymentStatus) error {
	if f.cancelErr != nil {
		return f.cancelErr
	}
	f.cancels = append(f.cancels, cancelCall{id: id, cancelledBy: cancelledBy, refundAmount: refundAmount, paymentStatus: paymentStatus})
	return nil
}

func (f *fakeRepo) CloseSession(_ context.Context, id int64, status domain.BookingStatus, paymentStatus domain.PaymentStatus, refundAmount *float64) error {
	if err := f.closeErr[id]; err != nil {
		return err
	}
	f.closes = append(f.closes, closeCall{id: id, status: status, paymentStatus: paymentStatus, refundAmount: refundAmount})
	return nil
}

type paymentCall struct {
	bookingID int64
	amount    float64
}

type fakePaymentClient struct {
	captures []paymentCall
	refunds  []paymentCall
	err      error
}

func (f *fakePaymentClient) ConfirmCaptureWithGracefulDegradation(_ context.Context, bookingID int64, amount float64) error {
	f.captures = append(f.captures, paymentCall{bookingID: bookingID, amount: amount})
	return f.err
}

func (f *fakePaymentClient) ConfirmRefundWithGracefulDegradation(_ context.Context, bookingID int64, amount float64) error {
	f.refunds = append(f.refunds, paymentCall{bookingID: bookingID, amount: amount})
	return f.err
}

type fakeSweepMetrics struct {
	outcomes []string
}

func (f *fakeSweepMetrics) IncSweepProcessed(outcome string) {
	f.outcomes = append(f.outcomes, outcome)
}

type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const (
	mentorID    = int64(10)
	candidateID = int64(20)
)

// Сессия 2026-04-06 14:00-15:00 UTC
var sessionDate = time.Date(2026, 4, 6, 0, 0, 0, 0, time.UTC)

func paidBooking(id int64, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:              id,
		MentorID:        mentorID,
		CandidateID:     candidateID,
		SessionType:     domain.SessionPaid,
		BookingDate:     sessionDate,
		StartTime:       "14:00",
		DurationMinutes: 60,
		Status:          status,
		PaymentStatus:   domain.PaymentPending,
		Amount:          120,
	}
}

func newTestService(repo *fakeRepo, payment *fakePaymentClient, now time.Time) (*Service, *fakeSweepMetrics) {
	metrics := &fakeSweepMetrics{}
	svc := NewService(repo, payment, metrics, nopLogger{})
	svc.timeProvider = &fakeTimeProvider{now: now}
	return svc, metrics
}

func at(hour, min int) time.Time {
	return time.Date(2026, 4, 6, hour, min, 0, 0, time.UTC)
}

// GetByID

func TestGetByID_ParticipantAccess(t *testing.T) {
	repo := newFakeRepo(paidBooking(1, domain.StatusConfirmed))
	svc, _ := newTestService(repo, &fakePaymentClient{}, at(12, 0))

	tests := []struct {
		name    string
		userID  int64
		role    string
		wantErr error
	}{
		{"mentor sees own booking", mentorID, "mentor", nil},
		{"candidate sees own booking", candidateID, "candidate", nil},
		{"stranger denied", 99, "candidate", ErrAccessDenied},
		{"mentor id with candidate role denied", mentorID, "candidate", ErrAccessDenied},
		{"unknown role rejected", mentorID, "admin", ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.GetByID(context.Background(), 1, tt.userID, tt.role)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(1), resp.ID)
		})
	}
}

func TestGetByID_NotFound(t *testing.T) {
	svc, _ := newTestService(newFakeRepo(), &fakePaymentClient{}, at(12, 0))

	_, err := svc.GetByID(context.Background(), 404, mentorID, "mentor")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

// Cancel

func TestCancel_MentorAlwaysFullRefund(t *testing.T) {
	repo := newFakeRepo(paidBooking(1, domain.StatusConfirmed))
	payment := &fakePaymentClient{}
	// За 30 минут до начала
	svc, _ := newTestService(repo, payment, at(13, 30))

	_, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: mentorID, Role: "mentor"})
	require.NoError(t, err)

	require.Len(t, repo.cancels, 1)
	call := repo.cancels[0]
	assert.Equal(t, domain.RoleMentor, call.cancelledBy)
	assert.Equal(t, 120.0, call.refundAmount)
	require.NotNil(t, call.paymentStatus)
	assert.Equal(t, domain.PaymentRefunded, *call.paymentStatus)

	require.Len(t, payment.refunds, 1)
	assert.Equal(t, 120.0, payment.refunds[0].amount)
}

func TestCancel_CandidateRefundTiers(t *testing.T) {
	tests := []struct {
		name       string
		now        time.Time
		wantRefund float64
	}{
		{"more than 24 hours before", at(14, 0).AddDate(0, 0, -2), 120},
		{"10 hours before", at(4, 0), 60},
		{"30 minutes before", at(13, 30), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo(paidBooking(1, domain.StatusConfirmed))
			payment := &fakePaymentClient{}
			svc, _ := newTestService(repo, payment, tt.now)

			_, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: candidateID, Role: "candidate"})
			require.NoError(t, err)

			require.Len(t, repo.cancels, 1)
			call := repo.cancels[0]
			assert.Equal(t, tt.wantRefund, call.refundAmount)

			if tt.wantRefund > 0 {
				require.NotNil(t, call.paymentStatus)
				assert.Equal(t, domain.PaymentRefunded, *call.paymentStatus)
				require.Len(t, payment.refunds, 1)
				assert.Equal(t, tt.wantRefund, payment.refunds[0].amount)
			} else {
				// Без возврата статус оплаты не трогаем и шлюз не зовем
				assert.Nil(t, call.paymentStatus)
				assert.Empty(t, payment.refunds)
			}
		})
	}
}

func TestCancel_DemoMarkedRefundedOnPositivePercentage(t *testing.T) {
	// Процент положителен - статус оплаты становится refunded даже для
	// бесплатной demo-сессии; сумма возврата нулевая, шлюз не зовем
	demo := paidBooking(1, domain.StatusPending)
	demo.SessionType = domain.SessionDemo
	demo.PaymentStatus = domain.PaymentNotRequired
	demo.Amount = 0

	repo := newFakeRepo(demo)
	payment := &fakePaymentClient{}
	svc, _ := newTestService(repo, payment, at(4, 0))

	_, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: mentorID, Role: "mentor"})
	require.NoError(t, err)

	require.Len(t, repo.cancels, 1)
	assert.Equal(t, 0.0, repo.cancels[0].refundAmount)
	require.NotNil(t, repo.cancels[0].paymentStatus)
	assert.Equal(t, domain.PaymentRefunded, *repo.cancels[0].paymentStatus)
	assert.Empty(t, payment.refunds)
}

func TestCancel_ZeroPercentageLeavesPaymentUntouched(t *testing.T) {
	demo := paidBooking(1, domain.StatusPending)
	demo.SessionType = domain.SessionDemo
	demo.PaymentStatus = domain.PaymentNotRequired
	demo.Amount = 0

	repo := newFakeRepo(demo)
	payment := &fakePaymentClient{}
	// Кандидат отменяет за 30 минут до начала: процент нулевой
	svc, _ := newTestService(repo, payment, at(13, 30))

	_, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: candidateID, Role: "candidate"})
	require.NoError(t, err)

	require.Len(t, repo.cancels, 1)
	assert.Nil(t, repo.cancels[0].paymentStatus)
	assert.Empty(t, payment.refunds)
}

func TestCancel_TerminalBooking(t *testing.T) {
	repo := newFakeRepo(paidBooking(1, domain.StatusCompleted))
	svc, _ := newTestService(repo, &fakePaymentClient{}, at(12, 0))

	_, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: candidateID, Role: "candidate"})
	assert.ErrorIs(t, err, ErrCannotCancel)
	assert.Empty(t, repo.cancels)
}

func TestCancel_ConcurrentlyClosed(t *testing.T) {
	repo := newFakeRepo(paidBooking(1, domain.StatusConfirmed))
	repo.cancelErr = bookingRepo.ErrStaleStatus
	svc, _ := newTestService(repo, &fakePaymentClient{}, at(12, 0))

	_, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: candidateID, Role: "candidate"})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancel_PaymentDegradationDoesNotFailCancel(t *testing.T) {
	repo := newFakeRepo(paidBooking(1, domain.StatusConfirmed))
	payment := &fakePaymentClient{err: errors.New("gateway down")}
	svc, _ := newTestService(repo, payment, at(4, 0))

	_, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: candidateID, Role: "candidate"})
	assert.NoError(t, err)
	assert.Len(t, repo.cancels, 1)
}

// UpdateStatus

func TestUpdateStatus_AllowedTransition(t *testing.T) {
	repo := newFakeRepo(paidBooking(1, domain.StatusPending))
	svc, _ := newTestService(repo, &fakePaymentClient{}, at(12, 0))

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		UserID: mentorID,
		Role:   "mentor",
		Status: "confirmed",
	})
	require.NoError(t, err)

	require.Len(t, repo.updates, 1)
	assert.Equal(t, domain.StatusPending, repo.updates[0].from)
	assert.Equal(t, domain.StatusConfirmed, repo.updates[0].to)
}

func TestUpdateStatus_ForbiddenTransition(t *testing.T) {
	tests := []struct {
		name      string
		current   domain.BookingStatus
		requested string
	}{
		{"pending to completed", domain.StatusPending, "completed"},
		{"confirmed to completed", domain.StatusConfirmed, "completed"},
		{"completed to pending", domain.StatusCompleted, "pending"},
		{"cancelled to confirmed", domain.StatusCancelled, "confirmed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo(paidBooking(1, tt.current))
			svc, _ := newTestService(repo, &fakePaymentClient{}, at(12, 0))

			err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
				UserID: mentorID,
				Role:   "mentor",
				Status: tt.requested,
			})
			assert.ErrorIs(t, err, ErrInvalidTransition)
			assert.Empty(t, repo.updates)
		})
	}
}

func TestUpdateStatus_CandidateCannotManageStatus(t *testing.T) {
	repo := newFakeRepo(paidBooking(1, domain.StatusPending))
	svc, _ := newTestService(repo, &fakePaymentClient{}, at(12, 0))

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		UserID: candidateID,
		Role:   "candidate",
		Status: "confirmed",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, repo.updates)
}

func TestUpdateStatus_UnknownStatus(t *testing.T) {
	repo := newFakeRepo(paidBooking(1, domain.StatusPending))
	svc, _ := newTestService(repo, &fakePaymentClient{}, at(12, 0))

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		UserID: mentorID,
		Role:   "mentor",
		Status: "archived",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateStatus_ConcurrentChange(t *testing.T) {
	repo := newFakeRepo(paidBooking(1, domain.StatusPending))
	repo.updateErr = bookingRepo.ErrStaleStatus
	svc, _ := newTestService(repo, &fakePaymentClient{}, at(12, 0))

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		UserID: mentorID,
		Role:   "mentor",
		Status: "confirmed",
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

// Join

func TestJoin_WindowBoundaries(t *testing.T) {
	// Сессия 14:00-15:00, окно присоединения [13:50, 15:10]
	tests := []struct {
		name    string
		now     time.Time
		wantErr error
	}{
		{"exactly at window start", at(13, 50), nil},
		{"during session", at(14, 30), nil},
		{"exactly at window end", at(15, 10), nil},
		{"one minute before window", at(13, 49), ErrOutsideJoinWindow},
		{"one minute after window", at(15, 11), ErrOutsideJoinWindow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo(paidBooking(1, domain.StatusConfirmed))
			svc, _ := newTestService(repo, &fakePaymentClient{}, tt.now)

			_, err := svc.Join(context.Background(), 1, &models.JoinSessionRequest{UserID: mentorID, Role: "mentor"})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, repo.joins)
				return
			}
			require.NoError(t, err)
			require.Len(t, repo.joins, 1)
			assert.Equal(t, domain.RoleMentor, repo.joins[0].role)
			assert.Equal(t, tt.now, repo.joins[0].at)
		})
	}
}

func TestJoin_AlreadyJoined(t *testing.T) {
	booking := paidBooking(1, domain.StatusInProgress)
	joined := at(14, 1)
	booking.MentorJoinedAt = &joined

	repo := newFakeRepo(booking)
	svc, _ := newTestService(repo, &fakePaymentClient{}, at(14, 5))

	_, err := svc.Join(context.Background(), 1, &models.JoinSessionRequest{UserID: mentorID, Role: "mentor"})
	assert.ErrorIs(t, err, ErrAlreadyJoined)

	// Другая роль все еще может присоединиться
	_, err = svc.Join(context.Background(), 1, &models.JoinSessionRequest{UserID: candidateID, Role: "candidate"})
	assert.NoError(t, err)
}

func TestJoin_NotJoinableStatus(t *testing.T) {
	for _, status := range []domain.BookingStatus{domain.StatusPending, domain.StatusCompleted, domain.StatusCancelled} {
		t.Run(string(status), func(t *testing.T) {
			repo := newFakeRepo(paidBooking(1, status))
			svc, _ := newTestService(repo, &fakePaymentClient{}, at(14, 0))

			_, err := svc.Join(context.Background(), 1, &models.JoinSessionRequest{UserID: mentorID, Role: "mentor"})
			assert.ErrorIs(t, err, ErrInvalidSessionState)
		})
	}
}

func TestJoin_NotParticipant(t *testing.T) {
	repo := newFakeRepo(paidBooking(1, domain.StatusConfirmed))
	svc, _ := newTestService(repo, &fakePaymentClient{}, at(14, 0))

	_, err := svc.Join(context.Background(), 1, &models.JoinSessionRequest{UserID: 99, Role: "mentor"})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

// AutoClose

func expiredBooking(id int64, mentorJoined, candidateJoined bool) *domain.Booking {
	b := paidBooking(id, domain.StatusInProgress)
	if mentorJoined {
		ts := at(14, 0)
		b.MentorJoinedAt = &ts
	}
	if candidateJoined {
		ts := at(14, 2)
		b.CandidateJoinedAt = &ts
	}
	return b
}

func findClose(t *testing.T, closes []closeCall, id int64) closeCall {
	t.Helper()
	for _, c := range closes {
		if c.id == id {
			return c
		}
	}
	t.Fatalf("no close call for booking %d", id)
	return closeCall{}
}

func TestAutoClose_Classification(t *testing.T) {
	repo := newFakeRepo()
	repo.inProgress = []*domain.Booking{
		expiredBooking(1, true, true),   // оба пришли
		expiredBooking(2, false, true),  // ментор не пришел
		expiredBooking(3, true, false),  // кандидат не пришел
		expiredBooking(4, false, false), // не пришли оба
	}
	payment := &fakePaymentClient{}
	// Сессии закончились в 15:00
	svc, metrics := newTestService(repo, payment, at(16, 0))

	report, err := svc.AutoClose(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, report.Processed)
	assert.Equal(t, 1, report.Completed)
	assert.Equal(t, 3, report.Cancelled)
	assert.Equal(t, 0, report.Failed)

	// Оба пришли: completed, оплата списана
	c1 := findClose(t, repo.closes, 1)
	assert.Equal(t, domain.StatusCompleted, c1.status)
	assert.Equal(t, domain.PaymentPaid, c1.paymentStatus)
	assert.Nil(t, c1.refundAmount)
	require.Len(t, payment.captures, 1)
	assert.Equal(t, int64(1), payment.captures[0].bookingID)
	assert.Equal(t, 120.0, payment.captures[0].amount)

	// Ментор не пришел: cancelled с полным возвратом
	c2 := findClose(t, repo.closes, 2)
	assert.Equal(t, domain.StatusCancelled, c2.status)
	assert.Equal(t, domain.PaymentRefunded, c2.paymentStatus)
	require.NotNil(t, c2.refundAmount)
	assert.Equal(t, 120.0, *c2.refundAmount)
	require.Len(t, payment.refunds, 1)
	assert.Equal(t, int64(2), payment.refunds[0].bookingID)

	// Кандидат не пришел: cancelled без возврата, оплата остается у ментора
	c3 := findClose(t, repo.closes, 3)
	assert.Equal(t, domain.StatusCancelled, c3.status)
	assert.Equal(t, domain.PaymentPaid, c3.paymentStatus)
	require.NotNil(t, c3.refundAmount)
	assert.Equal(t, 0.0, *c3.refundAmount)

	// Не пришли оба: та же ветка, что и неявка кандидата
	c4 := findClose(t, repo.closes, 4)
	assert.Equal(t, domain.StatusCancelled, c4.status)
	assert.Equal(t, domain.PaymentPaid, c4.paymentStatus)

	assert.ElementsMatch(t, []string{"completed", "cancelled", "cancelled", "cancelled"}, metrics.outcomes)
}

func TestAutoClose_DemoPaymentUntouched(t *testing.T) {
	demo := expiredBooking(1, true, true)
	demo.SessionType = domain.SessionDemo
	demo.PaymentStatus = domain.PaymentNotRequired
	demo.Amount = 0

	repo := newFakeRepo()
	repo.inProgress = []*domain.Booking{demo}
	payment := &fakePaymentClient{}
	svc, _ := newTestService(repo, payment, at(16, 0))

	report, err := svc.AutoClose(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Completed)

	c := findClose(t, repo.closes, 1)
	assert.Equal(t, domain.StatusCompleted, c.status)
	assert.Equal(t, domain.PaymentNotRequired, c.paymentStatus)
	assert.Empty(t, payment.captures)
	assert.Empty(t, payment.refunds)
}

func TestAutoClose_SkipsUnexpiredSessions(t *testing.T) {
	repo := newFakeRepo()
	repo.inProgress = []*domain.Booking{expiredBooking(1, true, true)}
	// Сессия заканчивается ровно сейчас - еще не просрочена
	svc, _ := newTestService(repo, &fakePaymentClient{}, at(15, 0))

	report, err := svc.AutoClose(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, report.Processed)
	assert.Empty(t, repo.closes)
}

func TestAutoClose_FailureDoesNotStopSweep(t *testing.T) {
	repo := newFakeRepo()
	repo.inProgress = []*domain.Booking{
		expiredBooking(1, true, true),
		expiredBooking(2, true, true),
	}
	repo.closeErr[1] = errors.New("connection reset")
	svc, metrics := newTestService(repo, &fakePaymentClient{}, at(16, 0))

	report, err := svc.AutoClose(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, report.Processed)
	assert.Equal(t, 1, report.Completed)
	assert.Equal(t, 1, report.Failed)
	assert.ElementsMatch(t, []string{"failed", "completed"}, metrics.outcomes)
}

func TestAutoClose_ConcurrentlyClosedNotCounted(t *testing.T) {
	repo := newFakeRepo()
	repo.inProgress = []*domain.Booking{expiredBooking(1, true, true)}
	repo.closeErr[1] = bookingRepo.ErrStaleStatus
	svc, metrics := newTestService(repo, &fakePaymentClient{}, at(16, 0))

	report, err := svc.AutoClose(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, report.Processed)
	assert.Equal(t, 0, report.Failed)
	assert.Empty(t, metrics.outcomes)
}
