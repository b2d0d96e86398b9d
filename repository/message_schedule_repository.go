package repository

import (
	"context"
	"fmt"

	"github.com/cobraops/cobra-core/models"
	"gorm.io/gorm"
)

// MessageScheduleRepositoryImpl implements MessageScheduleRepository
type MessageScheduleRepositoryImpl struct {
	*BaseRepository[models.MessageSchedule, models.MessageScheduleFilter]
}

func NewMessageScheduleRepository(db *gorm.DB) MessageScheduleRepository {
	return &MessageScheduleRepositoryImpl{BaseRepository: NewBaseRepository[models.MessageSchedule, models.MessageScheduleFilter](db)}
}

func (r *MessageScheduleRepositoryImpl) ListByCompany(ctx context.Context, companyID uint) ([]*models.MessageSchedule, error) {
	filter := models.MessageScheduleFilter{CompanyID: &companyID}
	return r.ByFilter(ctx, filter, "weekday ASC", 0, 0)
}

// ReplaceForCompany swaps the company's whole schedule in one transaction.
// Partial patches are not supported; callers always send the full set.
func (r *MessageScheduleRepositoryImpl) ReplaceForCompany(ctx context.Context, companyID uint, rows []*models.MessageSchedule) error {
	return WithTransaction(ctx, r.DB, func(txCtx context.Context) error {
		db := r.getDB(txCtx)
		if err := db.Where("company_id = ?", companyID).Delete(&models.MessageSchedule{}).Error; err != nil {
			return fmt.Errorf("failed to delete existing schedule: %w", err)
		}
		for _, row := range rows {
			row.CompanyID = companyID
		}
		if len(rows) == 0 {
			return nil
		}
		if err := db.CreateInBatches(rows, 100).Error; err != nil {
			return fmt.Errorf("failed to insert schedule rows: %w", err)
		}
		return nil
	})
}

func (r *MessageScheduleRepositoryImpl) applyFilter(db *gorm.DB, f models.MessageScheduleFilter) *gorm.DB {
	if f.ID != nil {
		db = db.Where("id = ?", *f.ID)
	}
	if f.CompanyID != nil {
		db = db.Where("company_id = ?", *f.CompanyID)
	}
	if f.Weekday != nil {
		db = db.Where("weekday = ?", *f.Weekday)
	}
	return db
}

func (r *MessageScheduleRepositoryImpl) ByFilter(ctx context.Context, filter models.MessageScheduleFilter, orderBy string, limit, offset int) ([]*models.MessageSchedule, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.MessageSchedule{}), filter)
	if orderBy != "" {
		query = query.Order(orderBy)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	var rows []*models.MessageSchedule
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *MessageScheduleRepositoryImpl) Count(ctx context.Context, filter models.MessageScheduleFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.MessageSchedule{}), filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *MessageScheduleRepositoryImpl) Exists(ctx context.Context, filter models.MessageScheduleFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}
