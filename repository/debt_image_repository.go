package repository

import (
	"context"

	"github.com/cobraops/cobra-core/models"
	"gorm.io/gorm"
)

// DebtImageRepositoryImpl implements DebtImageRepository
type DebtImageRepositoryImpl struct {
	*BaseRepository[models.DebtImage, models.DebtImageFilter]
}

func NewDebtImageRepository(db *gorm.DB) DebtImageRepository {
	return &DebtImageRepositoryImpl{BaseRepository: NewBaseRepository[models.DebtImage, models.DebtImageFilter](db)}
}

func (r *DebtImageRepositoryImpl) ListByDebtor(ctx context.Context, debtorID uint) ([]*models.DebtImage, error) {
	filter := models.DebtImageFilter{DebtorID: &debtorID}
	return r.ByFilter(ctx, filter, "created_at ASC", 0, 0)
}

func (r *DebtImageRepositoryImpl) applyFilter(db *gorm.DB, f models.DebtImageFilter) *gorm.DB {
	if f.ID != nil {
		db = db.Where("id = ?", *f.ID)
	}
	if f.DebtorID != nil {
		db = db.Where("debtor_id = ?", *f.DebtorID)
	}
	return db
}

func (r *DebtImageRepositoryImpl) ByFilter(ctx context.Context, filter models.DebtImageFilter, orderBy string, limit, offset int) ([]*models.DebtImage, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.DebtImage{}), filter)
	if orderBy != "" {
		query = query.Order(orderBy)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	var rows []*models.DebtImage
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *DebtImageRepositoryImpl) Count(ctx context.Context, filter models.DebtImageFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.DebtImage{}), filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *DebtImageRepositoryImpl) Exists(ctx context.Context, filter models.DebtImageFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}
