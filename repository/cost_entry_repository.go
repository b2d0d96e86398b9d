package repository

import (
	"context"
	"time"

	"github.com/cobraops/cobra-core/models"
	"gorm.io/gorm"
)

// CostEntryRepositoryImpl implements CostEntryRepository
type CostEntryRepositoryImpl struct {
	*BaseRepository[models.CostEntry, models.CostEntryFilter]
}

func NewCostEntryRepository(db *gorm.DB) CostEntryRepository {
	return &CostEntryRepositoryImpl{BaseRepository: NewBaseRepository[models.CostEntry, models.CostEntryFilter](db)}
}

func (r *CostEntryRepositoryImpl) ListByCompany(ctx context.Context, companyID uint, after, before *time.Time) ([]*models.CostEntry, error) {
	filter := models.CostEntryFilter{CompanyID: &companyID, CreatedAfter: after, CreatedBefore: before}
	return r.ByFilter(ctx, filter, "created_at ASC", 0, 0)
}

func (r *CostEntryRepositoryImpl) applyFilter(db *gorm.DB, f models.CostEntryFilter) *gorm.DB {
	if f.ID != nil {
		db = db.Where("id = ?", *f.ID)
	}
	if f.CompanyID != nil {
		db = db.Where("company_id = ?", *f.CompanyID)
	}
	if f.Channel != nil {
		db = db.Where("channel = ?", *f.Channel)
	}
	if f.CreatedAfter != nil {
		db = db.Where("created_at >= ?", *f.CreatedAfter)
	}
	if f.CreatedBefore != nil {
		db = db.Where("created_at < ?", *f.CreatedBefore)
	}
	return db
}

func (r *CostEntryRepositoryImpl) ByFilter(ctx context.Context, filter models.CostEntryFilter, orderBy string, limit, offset int) ([]*models.CostEntry, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.CostEntry{}), filter)
	if orderBy != "" {
		query = query.Order(orderBy)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	var rows []*models.CostEntry
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *CostEntryRepositoryImpl) Count(ctx context.Context, filter models.CostEntryFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.CostEntry{}), filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *CostEntryRepositoryImpl) Exists(ctx context.Context, filter models.CostEntryFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}
