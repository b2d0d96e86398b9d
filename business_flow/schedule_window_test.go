package businessflow_test

import (
	"context"
	"testing"
	"time"

	businessflow "github.com/cobraops/cobra-core/business_flow"
	"github.com/cobraops/cobra-core/models"
	apptest "github.com/cobraops/cobra-core/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scheduleFlow(repo *apptest.MemMessageScheduleRepository) businessflow.ScheduleWindowFlow {
	return businessflow.NewScheduleWindowFlow(repo, nil, "test")
}

func TestScheduleWindowUnconfiguredIsClosed(t *testing.T) {
	flow := scheduleFlow(apptest.NewMemMessageScheduleRepository())

	open, err := flow.IsOpen(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, open)
}

func TestScheduleWindowBoundariesAreInclusive(t *testing.T) {
	repo := apptest.NewMemMessageScheduleRepository()
	// 2026-01-05 is a Monday
	monday := 1
	require.NoError(t, repo.Save(context.Background(), &models.MessageSchedule{
		CompanyID: 1,
		Weekday:   monday,
		StartTime: "09:00",
		EndTime:   "18:00",
		Timezone:  "UTC",
	}))
	flow := scheduleFlow(repo)

	cases := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"exact start", time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC), true},
		{"exact end", time.Date(2026, 1, 5, 18, 0, 0, 0, time.UTC), true},
		{"inside", time.Date(2026, 1, 5, 12, 30, 0, 0, time.UTC), true},
		{"minute before start", time.Date(2026, 1, 5, 8, 59, 0, 0, time.UTC), false},
		{"minute after end", time.Date(2026, 1, 5, 18, 1, 0, 0, time.UTC), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			open, err := flow.IsOpenAt(context.Background(), 1, tc.at)
			require.NoError(t, err)
			assert.Equal(t, tc.want, open)
		})
	}
}

func TestScheduleWindowDayNotInSet(t *testing.T) {
	repo := apptest.NewMemMessageScheduleRepository()
	require.NoError(t, repo.Save(context.Background(), &models.MessageSchedule{
		CompanyID: 1,
		Weekday:   1,
		StartTime: "00:00",
		EndTime:   "23:59",
		Timezone:  "UTC",
	}))
	flow := scheduleFlow(repo)

	// 2026-01-06 is a Tuesday
	open, err := flow.IsOpenAt(context.Background(), 1, time.Date(2026, 1, 6, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, open)
}

func TestScheduleWindowHonorsTimezone(t *testing.T) {
	repo := apptest.NewMemMessageScheduleRepository()
	require.NoError(t, repo.Save(context.Background(), &models.MessageSchedule{
		CompanyID: 1,
		Weekday:   1,
		StartTime: "09:00",
		EndTime:   "18:00",
		Timezone:  "America/Lima", // UTC-5, no DST
	}))
	flow := scheduleFlow(repo)

	// 13:00 UTC on Monday is 08:00 in Lima, before the window
	open, err := flow.IsOpenAt(context.Background(), 1, time.Date(2026, 1, 5, 13, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, open)

	// 15:00 UTC is 10:00 in Lima, inside the window
	open, err = flow.IsOpenAt(context.Background(), 1, time.Date(2026, 1, 5, 15, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, open)
}

func TestScheduleWindowUnknownTimezoneFallsBackToUTC(t *testing.T) {
	repo := apptest.NewMemMessageScheduleRepository()
	require.NoError(t, repo.Save(context.Background(), &models.MessageSchedule{
		CompanyID: 1,
		Weekday:   1,
		StartTime: "09:00",
		EndTime:   "18:00",
		Timezone:  "Mars/Olympus",
	}))
	flow := scheduleFlow(repo)

	open, err := flow.IsOpenAt(context.Background(), 1, time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, open)
}
