package repository

import (
	"context"

	"github.com/cobraops/cobra-core/models"
	"gorm.io/gorm"
)

// CompanyRepositoryImpl implements CompanyRepository
type CompanyRepositoryImpl struct {
	*BaseRepository[models.Company, models.CompanyFilter]
}

func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &CompanyRepositoryImpl{BaseRepository: NewBaseRepository[models.Company, models.CompanyFilter](db)}
}

func (r *CompanyRepositoryImpl) applyFilter(db *gorm.DB, f models.CompanyFilter) *gorm.DB {
	if f.ID != nil {
		db = db.Where("id = ?", *f.ID)
	}
	if f.Name != nil {
		db = db.Where("name = ?", *f.Name)
	}
	if f.Role != nil {
		db = db.Where("role = ?", *f.Role)
	}
	if f.IsActive != nil {
		db = db.Where("is_active = ?", *f.IsActive)
	}
	return db
}

func (r *CompanyRepositoryImpl) ByFilter(ctx context.Context, filter models.CompanyFilter, orderBy string, limit, offset int) ([]*models.Company, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Company{}), filter)
	if orderBy != "" {
		query = query.Order(orderBy)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	var rows []*models.Company
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *CompanyRepositoryImpl) Count(ctx context.Context, filter models.CompanyFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Company{}), filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *CompanyRepositoryImpl) Exists(ctx context.Context, filter models.CompanyFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}
