package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dailyjobboost/api/internal/app"
	"github.com/dailyjobboost/api/internal/domain"
	"github.com/dailyjobboost/api/internal/mocks"
)

// tokyoNineAM returns an instant at which Tokyo's wall clock reads 09:00
// and no other supported zone is near its delivery minute.
func tokyoNineAM(t *testing.T) time.Time {
	t.Helper()

	loc, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	return time.Date(2026, 3, 2, 9, 0, 30, 0, loc)
}

func newTestScheduler(t *testing.T, cfg app.SchedulerConfig) *app.Scheduler {
	t.Helper()

	scheduler, err := app.NewScheduler(cfg)
	require.NoError(t, err)

	return scheduler
}

func TestScheduler_OnTick_DispatchesDueTimezone(t *testing.T) {
	t.Parallel()

	subscribers := mocks.NewMockSubscriberRepository(t)
	picker := mocks.NewMockQuotePicker(t)
	dispatcher := mocks.NewMockCohortDispatcher(t)

	cohort := testCohort("sub-1", "sub-2")
	quote := &domain.Quote{ID: "q-1", Content: "Ship it."}

	subscribers.EXPECT().
		ListActiveByTimezone(mock.Anything, "Asia/Tokyo").
		Return(cohort, nil).Once()
	picker.EXPECT().NextQuote(mock.Anything, cohort).Return(quote, nil).Once()
	dispatcher.EXPECT().
		Dispatch(mock.Anything, cohort, quote).
		Return(&domain.DispatchResult{Successful: 2}, nil).Once()

	now := tokyoNineAM(t)
	scheduler := newTestScheduler(t, app.SchedulerConfig{
		Subscribers: subscribers,
		Picker:      picker,
		Dispatcher:  dispatcher,
		Now:         func() time.Time { return now },
	})

	scheduler.OnTick(context.Background())
}

func TestScheduler_OnTick_SkipsOffMinuteTicks(t *testing.T) {
	t.Parallel()

	subscribers := mocks.NewMockSubscriberRepository(t)
	picker := mocks.NewMockQuotePicker(t)
	dispatcher := mocks.NewMockCohortDispatcher(t)

	// 09:01 in Tokyo. Nothing is due, so no repository call is expected.
	loc, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	now := time.Date(2026, 3, 2, 9, 1, 0, 0, loc)
	scheduler := newTestScheduler(t, app.SchedulerConfig{
		Subscribers: subscribers,
		Picker:      picker,
		Dispatcher:  dispatcher,
		Now:         func() time.Time { return now },
	})

	scheduler.OnTick(context.Background())
}

func TestScheduler_OnTick_FiresOncePerLocalDay(t *testing.T) {
	t.Parallel()

	subscribers := mocks.NewMockSubscriberRepository(t)
	picker := mocks.NewMockQuotePicker(t)
	dispatcher := mocks.NewMockCohortDispatcher(t)

	cohort := testCohort("sub-1")
	quote := &domain.Quote{ID: "q-1", Content: "Once."}

	subscribers.EXPECT().
		ListActiveByTimezone(mock.Anything, "Asia/Tokyo").
		Return(cohort, nil).Once()
	picker.EXPECT().NextQuote(mock.Anything, cohort).Return(quote, nil).Once()
	dispatcher.EXPECT().
		Dispatch(mock.Anything, cohort, quote).
		Return(&domain.DispatchResult{Successful: 1}, nil).Once()

	now := tokyoNineAM(t)
	scheduler := newTestScheduler(t, app.SchedulerConfig{
		Subscribers: subscribers,
		Picker:      picker,
		Dispatcher:  dispatcher,
		Now:         func() time.Time { return now },
	})

	// A slow previous run can land two ticks inside the same minute.
	scheduler.OnTick(context.Background())
	scheduler.OnTick(context.Background())
}

func TestScheduler_OnTick_RetriesWithinMinuteAfterFailure(t *testing.T) {
	t.Parallel()

	subscribers := mocks.NewMockSubscriberRepository(t)
	picker := mocks.NewMockQuotePicker(t)
	dispatcher := mocks.NewMockCohortDispatcher(t)

	cohort := testCohort("sub-1")
	quote := &domain.Quote{ID: "q-1", Content: "Retry."}

	subscribers.EXPECT().
		ListActiveByTimezone(mock.Anything, "Asia/Tokyo").
		Return(nil, errors.New("connection refused")).Once()
	subscribers.EXPECT().
		ListActiveByTimezone(mock.Anything, "Asia/Tokyo").
		Return(cohort, nil).Once()
	picker.EXPECT().NextQuote(mock.Anything, cohort).Return(quote, nil).Once()
	dispatcher.EXPECT().
		Dispatch(mock.Anything, cohort, quote).
		Return(&domain.DispatchResult{Successful: 1}, nil).Once()

	now := tokyoNineAM(t)
	scheduler := newTestScheduler(t, app.SchedulerConfig{
		Subscribers: subscribers,
		Picker:      picker,
		Dispatcher:  dispatcher,
		Now:         func() time.Time { return now },
	})

	// First tick fails before any email goes out, so the bucket stays
	// unmarked and the second tick in the same minute succeeds.
	scheduler.OnTick(context.Background())
	scheduler.OnTick(context.Background())
}

func TestScheduler_OnTick_NextDayFiresAgain(t *testing.T) {
	t.Parallel()

	subscribers := mocks.NewMockSubscriberRepository(t)
	picker := mocks.NewMockQuotePicker(t)
	dispatcher := mocks.NewMockCohortDispatcher(t)

	cohort := testCohort("sub-1")
	quote := &domain.Quote{ID: "q-1", Content: "Daily."}

	subscribers.EXPECT().
		ListActiveByTimezone(mock.Anything, "Asia/Tokyo").
		Return(cohort, nil).Twice()
	picker.EXPECT().NextQuote(mock.Anything, cohort).Return(quote, nil).Twice()
	dispatcher.EXPECT().
		Dispatch(mock.Anything, cohort, quote).
		Return(&domain.DispatchResult{Successful: 1}, nil).Twice()

	now := tokyoNineAM(t)
	scheduler := newTestScheduler(t, app.SchedulerConfig{
		Subscribers: subscribers,
		Picker:      picker,
		Dispatcher:  dispatcher,
		Now:         func() time.Time { return now },
	})

	scheduler.OnTick(context.Background())

	now = now.Add(24 * time.Hour)

	scheduler.OnTick(context.Background())
}

func TestScheduler_OnTick_TracksLosAngelesUTCOffsetAcrossDST(t *testing.T) {
	t.Parallel()

	// Los Angeles reads 09:00 at 17:00 UTC in winter but at 16:00 UTC in
	// summer. A scheduler keyed on a fixed UTC offset would miss one of
	// the two. At 16:00 UTC in winter it is Denver's slot instead.
	cases := []struct {
		name string
		now  time.Time
		due  string
	}{
		{
			name: "standard time fires at 17:00 UTC",
			now:  time.Date(2026, 1, 15, 17, 0, 0, 0, time.UTC),
			due:  "America/Los_Angeles",
		},
		{
			name: "daylight time fires at 16:00 UTC",
			now:  time.Date(2026, 7, 15, 16, 0, 0, 0, time.UTC),
			due:  "America/Los_Angeles",
		},
		{
			name: "16:00 UTC in winter belongs to Denver",
			now:  time.Date(2026, 1, 15, 16, 0, 0, 0, time.UTC),
			due:  "America/Denver",
		},
		{
			name: "17:00 UTC in summer is nobody's slot",
			now:  time.Date(2026, 7, 15, 17, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			subscribers := mocks.NewMockSubscriberRepository(t)
			picker := mocks.NewMockQuotePicker(t)
			dispatcher := mocks.NewMockCohortDispatcher(t)

			if tc.due != "" {
				cohort := testCohort("sub-1")
				quote := &domain.Quote{ID: "q-1", Content: "Sunrise."}

				subscribers.EXPECT().
					ListActiveByTimezone(mock.Anything, tc.due).
					Return(cohort, nil).Once()
				picker.EXPECT().
					NextQuote(mock.Anything, cohort).
					Return(quote, nil).Once()
				dispatcher.EXPECT().
					Dispatch(mock.Anything, cohort, quote).
					Return(&domain.DispatchResult{Successful: 1}, nil).Once()
			}

			now := tc.now
			scheduler := newTestScheduler(t, app.SchedulerConfig{
				Subscribers: subscribers,
				Picker:      picker,
				Dispatcher:  dispatcher,
				Now:         func() time.Time { return now },
			})

			scheduler.OnTick(context.Background())
		})
	}
}

func TestScheduler_DispatchAll_AggregatesZones(t *testing.T) {
	t.Parallel()

	subscribers := mocks.NewMockSubscriberRepository(t)
	picker := mocks.NewMockQuotePicker(t)
	dispatcher := mocks.NewMockCohortDispatcher(t)

	cohort := testCohort("sub-1", "sub-2")
	quote := &domain.Quote{ID: "q-1", Content: "Now."}

	// Only Tokyo has subscribers; the other eight zones are empty no-ops.
	subscribers.EXPECT().
		ListActiveByTimezone(mock.Anything, "Asia/Tokyo").
		Return(cohort, nil).Once()
	subscribers.EXPECT().
		ListActiveByTimezone(mock.Anything, mock.Anything).
		Return(domain.Cohort{}, nil)
	picker.EXPECT().NextQuote(mock.Anything, cohort).Return(quote, nil).Once()
	dispatcher.EXPECT().
		Dispatch(mock.Anything, cohort, quote).
		Return(&domain.DispatchResult{Successful: 2}, nil).Once()

	scheduler := newTestScheduler(t, app.SchedulerConfig{
		Subscribers: subscribers,
		Picker:      picker,
		Dispatcher:  dispatcher,
	})

	result, err := scheduler.DispatchAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Successful)
	assert.Zero(t, result.Failed)
}

func TestScheduler_DispatchAll_AllZonesFailing(t *testing.T) {
	t.Parallel()

	subscribers := mocks.NewMockSubscriberRepository(t)
	subscribers.EXPECT().
		ListActiveByTimezone(mock.Anything, mock.Anything).
		Return(nil, errors.New("connection refused"))

	scheduler := newTestScheduler(t, app.SchedulerConfig{
		Subscribers: subscribers,
		Picker:      mocks.NewMockQuotePicker(t),
		Dispatcher:  mocks.NewMockCohortDispatcher(t),
	})

	_, err := scheduler.DispatchAll(context.Background())
	assert.ErrorContains(t, err, "connection refused")
}

func TestScheduler_DispatchTimezone_UnknownZone(t *testing.T) {
	t.Parallel()

	scheduler := newTestScheduler(t, app.SchedulerConfig{
		Subscribers: mocks.NewMockSubscriberRepository(t),
		Picker:      mocks.NewMockQuotePicker(t),
		Dispatcher:  mocks.NewMockCohortDispatcher(t),
	})

	_, err := scheduler.DispatchTimezone(context.Background(), "Mars/Olympus_Mons")
	assert.ErrorIs(t, err, domain.ErrUnsupportedTimezone)
}

func TestScheduler_DispatchTimezone_EmptyCohort(t *testing.T) {
	t.Parallel()

	subscribers := mocks.NewMockSubscriberRepository(t)
	subscribers.EXPECT().
		ListActiveByTimezone(mock.Anything, "Europe/Paris").
		Return(domain.Cohort{}, nil)

	scheduler := newTestScheduler(t, app.SchedulerConfig{
		Subscribers: subscribers,
		Picker:      mocks.NewMockQuotePicker(t),
		Dispatcher:  mocks.NewMockCohortDispatcher(t),
	})

	result, err := scheduler.DispatchTimezone(context.Background(), "Europe/Paris")
	require.NoError(t, err)
	assert.Zero(t, result.Total())
}

func TestScheduler_DispatchTimezone_StorageOutageIsUnavailable(t *testing.T) {
	t.Parallel()

	subscribers := mocks.NewMockSubscriberRepository(t)
	subscribers.EXPECT().
		ListActiveByTimezone(mock.Anything, "Europe/London").
		Return(nil, errors.New("dial tcp: connection refused"))

	scheduler := newTestScheduler(t, app.SchedulerConfig{
		Subscribers: subscribers,
		Picker:      mocks.NewMockQuotePicker(t),
		Dispatcher:  mocks.NewMockCohortDispatcher(t),
	})

	_, err := scheduler.DispatchTimezone(context.Background(), "Europe/London")
	require.Error(t, err)
	assert.True(t, domain.IsUnavailable(err))
	assert.ErrorContains(t, err, "connection refused")
}

func TestScheduler_DispatchTimezone_PickerErrorPropagates(t *testing.T) {
	t.Parallel()

	subscribers := mocks.NewMockSubscriberRepository(t)
	picker := mocks.NewMockQuotePicker(t)

	cohort := testCohort("sub-1")

	subscribers.EXPECT().
		ListActiveByTimezone(mock.Anything, "America/Chicago").
		Return(cohort, nil)
	picker.EXPECT().
		NextQuote(mock.Anything, cohort).
		Return(nil, domain.ErrNoQuotesAvailable)

	scheduler := newTestScheduler(t, app.SchedulerConfig{
		Subscribers: subscribers,
		Picker:      picker,
		Dispatcher:  mocks.NewMockCohortDispatcher(t),
	})

	_, err := scheduler.DispatchTimezone(context.Background(), "America/Chicago")
	assert.ErrorIs(t, err, domain.ErrNoQuotesAvailable)
}
