package businessflow_test

import (
	"context"
	"testing"
	"time"

	"github.com/cobraops/cobra-core/app/dto"
	businessflow "github.com/cobraops/cobra-core/business_flow"
	apptest "github.com/cobraops/cobra-core/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scheduleConfigEnv() (*apptest.Fixtures, businessflow.ScheduleConfigFlow, businessflow.ScheduleWindowFlow) {
	f := apptest.NewFixtures()
	windowFlow := businessflow.NewScheduleWindowFlow(f.Schedules, nil, "test")
	return f, businessflow.NewScheduleConfigFlow(f.Companies, f.Schedules, windowFlow), windowFlow
}

func TestReplaceSchedulePersistsAndRoundTrips(t *testing.T) {
	f, flow, _ := scheduleConfigEnv()
	company := f.CreateCompany("Cobranzas SAC")

	resp, err := flow.ReplaceSchedule(context.Background(), &dto.ReplaceScheduleRequest{
		CompanyID: company.ID,
		Timezone:  "America/Lima",
		Days: []dto.ScheduleDay{
			{Weekday: 1, StartTime: "09:00", EndTime: "18:00"},
			{Weekday: 5, StartTime: "09:00", EndTime: "13:00"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "America/Lima", resp.Timezone)
	require.Len(t, resp.Days, 2)

	stored, err := flow.GetSchedule(context.Background(), company.ID)
	require.NoError(t, err)
	assert.Equal(t, resp.Days, stored.Days)
	assert.Equal(t, "America/Lima", stored.Timezone)
}

func TestReplaceScheduleEmptyDaysClosesWindow(t *testing.T) {
	f, flow, windowFlow := scheduleConfigEnv()
	company := f.CreateCompany("Cobranzas SAC")
	f.OpenAllWeek(company.ID)

	open, err := windowFlow.IsOpenAt(context.Background(), company.ID, time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.True(t, open)

	_, err = flow.ReplaceSchedule(context.Background(), &dto.ReplaceScheduleRequest{
		CompanyID: company.ID,
		Timezone:  "UTC",
		Days:      []dto.ScheduleDay{},
	})
	require.NoError(t, err)

	open, err = windowFlow.IsOpenAt(context.Background(), company.ID, time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, open)
}

func TestReplaceScheduleRejectsBadInput(t *testing.T) {
	f, flow, _ := scheduleConfigEnv()
	company := f.CreateCompany("Cobranzas SAC")

	cases := []struct {
		name string
		req  *dto.ReplaceScheduleRequest
	}{
		{"unknown timezone", &dto.ReplaceScheduleRequest{
			CompanyID: company.ID,
			Timezone:  "Mars/Olympus",
		}},
		{"weekday out of range", &dto.ReplaceScheduleRequest{
			CompanyID: company.ID,
			Timezone:  "UTC",
			Days:      []dto.ScheduleDay{{Weekday: 7, StartTime: "09:00", EndTime: "18:00"}},
		}},
		{"malformed start time", &dto.ReplaceScheduleRequest{
			CompanyID: company.ID,
			Timezone:  "UTC",
			Days:      []dto.ScheduleDay{{Weekday: 1, StartTime: "9am", EndTime: "18:00"}},
		}},
		{"end before start", &dto.ReplaceScheduleRequest{
			CompanyID: company.ID,
			Timezone:  "UTC",
			Days:      []dto.ScheduleDay{{Weekday: 1, StartTime: "18:00", EndTime: "09:00"}},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := flow.ReplaceSchedule(context.Background(), tc.req)
			var bizErr *businessflow.BusinessError
			require.ErrorAs(t, err, &bizErr)
			assert.Equal(t, businessflow.CodeValidationFailed, bizErr.Code)
		})
	}
}

func TestReplaceScheduleUnknownCompany(t *testing.T) {
	_, flow, _ := scheduleConfigEnv()

	_, err := flow.ReplaceSchedule(context.Background(), &dto.ReplaceScheduleRequest{
		CompanyID: 999,
		Timezone:  "UTC",
	})
	assert.True(t, businessflow.IsCompanyNotFound(err))
}
