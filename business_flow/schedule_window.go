package businessflow

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/cobraops/cobra-core/models"
	"github.com/cobraops/cobra-core/repository"
	"github.com/cobraops/cobra-core/utils"
	"github.com/redis/go-redis/v9"
)

// ScheduleWindowFlow decides whether outbound contact is permitted right now
// for a company. An unconfigured schedule always reads as closed; "not yet
// configured" is a safety default, never an error.
type ScheduleWindowFlow interface {
	IsOpen(ctx context.Context, companyID uint) (bool, error)
	IsOpenAt(ctx context.Context, companyID uint, now time.Time) (bool, error)
	Invalidate(ctx context.Context, companyID uint)
}

// ScheduleWindowFlowImpl implements the schedule window business flow
type ScheduleWindowFlowImpl struct {
	scheduleRepo repository.MessageScheduleRepository
	rc           *redis.Client
	cachePrefix  string
}

// NewScheduleWindowFlow creates a new schedule window flow instance.
// The redis client is optional; without it every check reads the database.
func NewScheduleWindowFlow(scheduleRepo repository.MessageScheduleRepository, rc *redis.Client, cachePrefix string) ScheduleWindowFlow {
	return &ScheduleWindowFlowImpl{
		scheduleRepo: scheduleRepo,
		rc:           rc,
		cachePrefix:  cachePrefix,
	}
}

// IsOpen checks the window against the current instant
func (s *ScheduleWindowFlowImpl) IsOpen(ctx context.Context, companyID uint) (bool, error) {
	return s.IsOpenAt(ctx, companyID, utils.UTCNow())
}

// IsOpenAt checks the window at an arbitrary instant. The instant is moved
// into the schedule's configured timezone before the weekday and
// time-of-day tests; both boundaries are inclusive, so the exact start and
// end instants pass.
func (s *ScheduleWindowFlowImpl) IsOpenAt(ctx context.Context, companyID uint, now time.Time) (bool, error) {
	rows, err := s.loadSchedule(ctx, companyID)
	if err != nil {
		return false, NewBusinessError("SCHEDULE_LOOKUP_FAILED", "Failed to load message schedule", err)
	}
	if len(rows) == 0 {
		return false, nil
	}

	loc, err := time.LoadLocation(rows[0].Timezone)
	if err != nil {
		log.Printf("schedule: unknown timezone %q for company %d, falling back to UTC", rows[0].Timezone, companyID)
		loc = time.UTC
	}
	local := now.In(loc)
	weekday := int(local.Weekday())

	for _, row := range rows {
		if row.Weekday != weekday {
			continue
		}
		start, err := minutesOfDay(row.StartTime)
		if err != nil {
			return false, NewBusinessError("SCHEDULE_MALFORMED", "Malformed schedule start time", err)
		}
		end, err := minutesOfDay(row.EndTime)
		if err != nil {
			return false, NewBusinessError("SCHEDULE_MALFORMED", "Malformed schedule end time", err)
		}
		nowMinutes := local.Hour()*60 + local.Minute()
		if nowMinutes >= start && nowMinutes <= end {
			return true, nil
		}
	}
	return false, nil
}

// Invalidate drops the cached schedule after a reconfiguration
func (s *ScheduleWindowFlowImpl) Invalidate(ctx context.Context, companyID uint) {
	if s.rc == nil {
		return
	}
	if err := s.rc.Del(ctx, s.cacheKey(companyID)).Err(); err != nil {
		log.Printf("schedule: failed to invalidate cache for company %d: %v", companyID, err)
	}
}

func (s *ScheduleWindowFlowImpl) cacheKey(companyID uint) string {
	return fmt.Sprintf("%s:schedule:%d", s.cachePrefix, companyID)
}

func (s *ScheduleWindowFlowImpl) loadSchedule(ctx context.Context, companyID uint) ([]*models.MessageSchedule, error) {
	if s.rc != nil {
		if cached, err := s.rc.Get(ctx, s.cacheKey(companyID)).Result(); err == nil {
			var rows []*models.MessageSchedule
			if err := json.Unmarshal([]byte(cached), &rows); err == nil {
				return rows, nil
			}
		}
	}

	rows, err := s.scheduleRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	if s.rc != nil {
		if encoded, err := json.Marshal(rows); err == nil {
			if err := s.rc.Set(ctx, s.cacheKey(companyID), encoded, utils.ScheduleCacheTTL).Err(); err != nil {
				log.Printf("schedule: failed to cache schedule for company %d: %v", companyID, err)
			}
		}
	}
	return rows, nil
}

func minutesOfDay(clock string) (int, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q: %w", clock, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}
