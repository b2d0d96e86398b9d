package repository

import (
	"context"
	"fmt"

	"github.com/cobraops/cobra-core/models"
	"github.com/cobraops/cobra-core/utils"
	"gorm.io/gorm"
)

// PendingMessageRepositoryImpl implements PendingMessageRepository
type PendingMessageRepositoryImpl struct {
	*BaseRepository[models.PendingMessage, models.PendingMessageFilter]
}

func NewPendingMessageRepository(db *gorm.DB) PendingMessageRepository {
	return &PendingMessageRepositoryImpl{BaseRepository: NewBaseRepository[models.PendingMessage, models.PendingMessageFilter](db)}
}

func (r *PendingMessageRepositoryImpl) ListPending(ctx context.Context) ([]*models.PendingMessage, error) {
	status := models.PendingStatusPending
	filter := models.PendingMessageFilter{Status: &status}
	return r.ByFilter(ctx, filter, "created_at ASC", 0, 0)
}

func (r *PendingMessageRepositoryImpl) UpdateStatus(ctx context.Context, id uint, status models.PendingStatus) error {
	db := r.getDB(ctx)
	err := db.Model(&models.PendingMessage{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "updated_at": utils.UTCNow()}).Error
	if err != nil {
		return fmt.Errorf("failed to update pending message status: %w", err)
	}
	return nil
}

func (r *PendingMessageRepositoryImpl) applyFilter(db *gorm.DB, f models.PendingMessageFilter) *gorm.DB {
	if f.ID != nil {
		db = db.Where("id = ?", *f.ID)
	}
	if f.CompanyID != nil {
		db = db.Where("company_id = ?", *f.CompanyID)
	}
	if f.Phone != nil {
		db = db.Where("phone = ?", *f.Phone)
	}
	if f.Message != nil {
		db = db.Where("message = ?", *f.Message)
	}
	if f.Channel != nil {
		db = db.Where("channel = ?", *f.Channel)
	}
	if f.FromNumber != nil {
		db = db.Where("from_number = ?", *f.FromNumber)
	}
	if f.Status != nil {
		db = db.Where("status = ?", *f.Status)
	}
	return db
}

func (r *PendingMessageRepositoryImpl) ByFilter(ctx context.Context, filter models.PendingMessageFilter, orderBy string, limit, offset int) ([]*models.PendingMessage, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.PendingMessage{}), filter)
	if orderBy != "" {
		query = query.Order(orderBy)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	var rows []*models.PendingMessage
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PendingMessageRepositoryImpl) Count(ctx context.Context, filter models.PendingMessageFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.PendingMessage{}), filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PendingMessageRepositoryImpl) Exists(ctx context.Context, filter models.PendingMessageFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}
