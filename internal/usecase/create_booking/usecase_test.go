package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorguru/MG-BookingService/internal/domain"
	"github.com/mentorguru/MG-BookingService/internal/integrations/mentorservice"
)

type fakeBookingRepo struct {
	mentorBookings    []*domain.Booking
	candidateBookings []*domain.Booking
	hasDemo           bool
	hasCompletedDemo  bool
	pendingCount      int

	created *domain.Booking
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	created := *booking
	created.ID = 77
	created.CreatedAt = time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	created.UpdatedAt = created.CreatedAt
	f.created = &created
	return &created, nil
}

func (f *fakeBookingRepo) GetActiveByMentorAndDate(_ context.Context, _ int64, _ time.Time) ([]*domain.Booking, error) {
	return f.mentorBookings, nil
}

func (f *fakeBookingRepo) GetActiveByCandidateAndDate(_ context.Context, _ int64, _ time.Time) ([]*domain.Booking, error) {
	return f.candidateBookings, nil
}

func (f *fakeBookingRepo) HasDemoWith(_ context.Context, _, _ int64) (bool, error) {
	return f.hasDemo, nil
}

func (f *fakeBookingRepo) HasCompletedDemoWith(_ context.Context, _, _ int64) (bool, error) {
	return f.hasCompletedDemo, nil
}

func (f *fakeBookingRepo) CountPending(_ context.Context, _ int64) (int, error) {
	return f.pendingCount, nil
}

type fakeMentorClient struct {
	mentor *mentorservice.Mentor
	err    error
}

func (f *fakeMentorClient) GetMentor(_ context.Context, _ int64) (*mentorservice.Mentor, error) {
	return f.mentor, f.err
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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

// 2026-04-06 - понедельник, "сейчас" - утро этого дня
var (
	monday  = time.Date(2026, 4, 6, 0, 0, 0, 0, time.UTC)
	testNow = time.Date(2026, 4, 6, 8, 0, 0, 0, time.UTC)
)

func verifiedMentor() *mentorservice.Mentor {
	return &mentorservice.Mentor{
		ID:         1,
		Verified:   true,
		HourlyRate: 120,
		Availability: []domain.AvailabilityWindow{
			{Day: "monday", StartTime: "09:00", EndTime: "18:00"},
		},
	}
}

func newTestUseCase(repo *fakeBookingRepo, client *fakeMentorClient) *UseCase {
	uc := NewUseCase(repo, client, fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: testNow}
	return uc
}

func paidRequest() *Request {
	return &Request{
		MentorID:        1,
		CandidateID:     2,
		SessionType:     domain.SessionPaid,
		Date:            monday,
		StartTime:       "10:00",
		DurationMinutes: 60,
	}
}

func demoRequest() *Request {
	return &Request{
		MentorID:        1,
		CandidateID:     2,
		SessionType:     domain.SessionDemo,
		Date:            monday,
		StartTime:       "10:00",
		DurationMinutes: 15,
	}
}

func TestExecute_CreatesPaidBooking(t *testing.T) {
	repo := &fakeBookingRepo{hasCompletedDemo: true}
	uc := newTestUseCase(repo, &fakeMentorClient{mentor: verifiedMentor()})

	resp, err := uc.Execute(context.Background(), paidRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(77), resp.ID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, string(domain.PaymentPending), resp.PaymentStatus)
	// 120/час за 60 минут
	assert.Equal(t, 120.0, resp.Amount)

	require.NotNil(t, repo.created)
	assert.Equal(t, domain.StatusPending, repo.created.Status)
}

func TestExecute_CreatesFreeDemoBooking(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(repo, &fakeMentorClient{mentor: verifiedMentor()})

	resp, err := uc.Execute(context.Background(), demoRequest())
	require.NoError(t, err)

	assert.Equal(t, string(domain.PaymentNotRequired), resp.PaymentStatus)
	assert.Equal(t, 0.0, resp.Amount)
}

func TestExecute_AmountProRatedByDuration(t *testing.T) {
	repo := &fakeBookingRepo{hasCompletedDemo: true}
	uc := newTestUseCase(repo, &fakeMentorClient{mentor: verifiedMentor()})

	req := paidRequest()
	req.DurationMinutes = 90

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// 120 * 90 / 60
	assert.Equal(t, 180.0, resp.Amount)
}

func TestExecute_MentorNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeMentorClient{err: mentorservice.ErrMentorNotFound})

	_, err := uc.Execute(context.Background(), paidRequest())
	assert.ErrorIs(t, err, ErrMentorNotFound)
}

func TestExecute_MentorNotVerified(t *testing.T) {
	mentor := verifiedMentor()
	mentor.Verified = false
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeMentorClient{mentor: mentor})

	_, err := uc.Execute(context.Background(), paidRequest())
	assert.ErrorIs(t, err, ErrMentorUnavailable)
}

func TestExecute_PastBooking(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{hasCompletedDemo: true}, &fakeMentorClient{mentor: verifiedMentor()})

	req := paidRequest()
	req.StartTime = "07:00" // раньше testNow (08:00 того же дня)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrPastBooking)
}

func TestExecute_DemoTooLong(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeMentorClient{mentor: verifiedMentor()})

	req := demoRequest()
	req.DurationMinutes = domain.MaxDemoDurationMinutes + 1

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDemoTooLong)
}

func TestExecute_DuplicateDemo(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{hasDemo: true}, &fakeMentorClient{mentor: verifiedMentor()})

	_, err := uc.Execute(context.Background(), demoRequest())
	assert.ErrorIs(t, err, ErrDuplicateDemo)
}

func TestExecute_PaidRequiresCompletedDemo(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{hasCompletedDemo: false}, &fakeMentorClient{mentor: verifiedMentor()})

	_, err := uc.Execute(context.Background(), paidRequest())
	assert.ErrorIs(t, err, ErrDemoNotCompleted)
}

func TestExecute_OutsideAvailability(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{hasCompletedDemo: true}, &fakeMentorClient{mentor: verifiedMentor()})

	req := paidRequest()
	req.StartTime = "17:30" // окончание 18:30 выходит за окно 09:00-18:00

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutsideAvailability)
}

func TestExecute_SlotTakenByMentor(t *testing.T) {
	repo := &fakeBookingRepo{
		hasCompletedDemo: true,
		mentorBookings: []*domain.Booking{
			{
				BookingDate:     monday,
				StartTime:       "10:30",
				DurationMinutes: 60,
				Status:          domain.StatusConfirmed,
			},
		},
	}
	uc := newTestUseCase(repo, &fakeMentorClient{mentor: verifiedMentor()})

	_, err := uc.Execute(context.Background(), paidRequest())
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestExecute_BackToBackDoesNotConflict(t *testing.T) {
	// Бронирование 09:00-10:00 стыкуется с запрошенным 10:00-11:00
	repo := &fakeBookingRepo{
		hasCompletedDemo: true,
		mentorBookings: []*domain.Booking{
			{
				BookingDate:     monday,
				StartTime:       "09:00",
				DurationMinutes: 60,
				Status:          domain.StatusConfirmed,
			},
		},
	}
	uc := newTestUseCase(repo, &fakeMentorClient{mentor: verifiedMentor()})

	_, err := uc.Execute(context.Background(), paidRequest())
	assert.NoError(t, err)
}

func TestExecute_CancelledBookingDoesNotConflict(t *testing.T) {
	repo := &fakeBookingRepo{
		hasCompletedDemo: true,
		mentorBookings: []*domain.Booking{
			{
				BookingDate:     monday,
				StartTime:       "10:00",
				DurationMinutes: 60,
				Status:          domain.StatusCancelled,
			},
		},
	}
	uc := newTestUseCase(repo, &fakeMentorClient{mentor: verifiedMentor()})

	_, err := uc.Execute(context.Background(), paidRequest())
	assert.NoError(t, err)
}

func TestExecute_CandidateDoubleBooked(t *testing.T) {
	repo := &fakeBookingRepo{
		hasCompletedDemo: true,
		candidateBookings: []*domain.Booking{
			{
				BookingDate:     monday,
				StartTime:       "10:00",
				DurationMinutes: 30,
				Status:          domain.StatusPending,
			},
		},
	}
	uc := newTestUseCase(repo, &fakeMentorClient{mentor: verifiedMentor()})

	_, err := uc.Execute(context.Background(), paidRequest())
	assert.ErrorIs(t, err, ErrDoubleBooked)
}

func TestExecute_TooManyPending(t *testing.T) {
	repo := &fakeBookingRepo{
		hasCompletedDemo: true,
		pendingCount:     domain.MaxPendingBookings,
	}
	uc := newTestUseCase(repo, &fakeMentorClient{mentor: verifiedMentor()})

	_, err := uc.Execute(context.Background(), paidRequest())
	assert.ErrorIs(t, err, ErrTooManyPending)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeMentorClient{mentor: verifiedMentor()})

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"zero mentor id", func(r *Request) { r.MentorID = 0 }},
		{"zero candidate id", func(r *Request) { r.CandidateID = 0 }},
		{"unknown session type", func(r *Request) { r.SessionType = "trial" }},
		{"zero date", func(r *Request) { r.Date = time.Time{} }},
		{"empty start time", func(r *Request) { r.StartTime = "" }},
		{"malformed start time", func(r *Request) { r.StartTime = "9:30" }},
		{"zero duration", func(r *Request) { r.DurationMinutes = 0 }},
		{"crosses midnight", func(r *Request) { r.StartTime = "23:30"; r.DurationMinutes = 60 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := paidRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
