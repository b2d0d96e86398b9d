package businessflow

import (
	"context"
	"log"
	"time"

	"github.com/cobraops/cobra-core/app/dto"
	"github.com/cobraops/cobra-core/models"
	"github.com/cobraops/cobra-core/repository"
)

// ScheduleConfigFlow manages per-company contact windows. Replacement is
// wholesale: the stored rows are dropped and rewritten in one transaction,
// then the window cache is invalidated so the next check sees the new rows.
type ScheduleConfigFlow interface {
	ReplaceSchedule(ctx context.Context, req *dto.ReplaceScheduleRequest) (*dto.ScheduleResponse, error)
	GetSchedule(ctx context.Context, companyID uint) (*dto.ScheduleResponse, error)
}

// ScheduleConfigFlowImpl implements the schedule configuration business flow
type ScheduleConfigFlowImpl struct {
	companyRepo  repository.CompanyRepository
	scheduleRepo repository.MessageScheduleRepository
	windowFlow   ScheduleWindowFlow
}

// NewScheduleConfigFlow creates a new schedule configuration flow instance
func NewScheduleConfigFlow(
	companyRepo repository.CompanyRepository,
	scheduleRepo repository.MessageScheduleRepository,
	windowFlow ScheduleWindowFlow,
) ScheduleConfigFlow {
	return &ScheduleConfigFlowImpl{
		companyRepo:  companyRepo,
		scheduleRepo: scheduleRepo,
		windowFlow:   windowFlow,
	}
}

// ReplaceSchedule swaps the company's whole contact window. An empty Days
// list is allowed and closes the window until the next reconfiguration.
func (f *ScheduleConfigFlowImpl) ReplaceSchedule(ctx context.Context, req *dto.ReplaceScheduleRequest) (*dto.ScheduleResponse, error) {
	company, err := f.companyRepo.ByID(ctx, req.CompanyID)
	if err != nil {
		return nil, NewBusinessError("COMPANY_LOOKUP_FAILED", "Failed to lookup company", err)
	}
	if company == nil {
		return nil, NewBusinessError(CodeNotFound, "Company not found", ErrCompanyNotFound)
	}

	if _, err := time.LoadLocation(req.Timezone); err != nil {
		return nil, NewBusinessErrorf(CodeValidationFailed, "Unknown timezone %q", err, req.Timezone)
	}

	rows := make([]*models.MessageSchedule, 0, len(req.Days))
	for _, day := range req.Days {
		if day.Weekday < 0 || day.Weekday > 6 {
			return nil, NewBusinessErrorf(CodeValidationFailed, "Weekday %d out of range", nil, day.Weekday)
		}
		start, err := minutesOfDay(day.StartTime)
		if err != nil {
			return nil, NewBusinessErrorf(CodeValidationFailed, "Invalid start time %q", err, day.StartTime)
		}
		end, err := minutesOfDay(day.EndTime)
		if err != nil {
			return nil, NewBusinessErrorf(CodeValidationFailed, "Invalid end time %q", err, day.EndTime)
		}
		if end < start {
			return nil, NewBusinessErrorf(CodeValidationFailed, "Window ends before it starts on weekday %d", nil, day.Weekday)
		}
		rows = append(rows, &models.MessageSchedule{
			CompanyID: req.CompanyID,
			Weekday:   day.Weekday,
			StartTime: day.StartTime,
			EndTime:   day.EndTime,
			Timezone:  req.Timezone,
		})
	}

	if err := f.scheduleRepo.ReplaceForCompany(ctx, req.CompanyID, rows); err != nil {
		return nil, NewBusinessError("SCHEDULE_REPLACE_FAILED", "Failed to replace schedule", err)
	}
	f.windowFlow.Invalidate(ctx, req.CompanyID)
	log.Printf("schedule: company %d reconfigured with %d days (%s)", req.CompanyID, len(rows), req.Timezone)

	return scheduleResponse(req.CompanyID, rows), nil
}

// GetSchedule returns the stored window for a company
func (f *ScheduleConfigFlowImpl) GetSchedule(ctx context.Context, companyID uint) (*dto.ScheduleResponse, error) {
	rows, err := f.scheduleRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, NewBusinessError("SCHEDULE_LOOKUP_FAILED", "Failed to load schedule", err)
	}
	return scheduleResponse(companyID, rows), nil
}

func scheduleResponse(companyID uint, rows []*models.MessageSchedule) *dto.ScheduleResponse {
	resp := &dto.ScheduleResponse{CompanyID: companyID, Days: make([]dto.ScheduleDay, 0, len(rows))}
	for _, row := range rows {
		resp.Timezone = row.Timezone
		resp.Days = append(resp.Days, dto.ScheduleDay{
			Weekday:   row.Weekday,
			StartTime: row.StartTime,
			EndTime:   row.EndTime,
		})
	}
	return resp
}
