package repository

import (
	"context"
	"fmt"

	"github.com/cobraops/cobra-core/models"
	"gorm.io/gorm"
)

// PhoneLinkRepositoryImpl implements PhoneLinkRepository
type PhoneLinkRepositoryImpl struct {
	*BaseRepository[models.PhoneLink, models.PhoneLinkFilter]
}

func NewPhoneLinkRepository(db *gorm.DB) PhoneLinkRepository {
	return &PhoneLinkRepositoryImpl{BaseRepository: NewBaseRepository[models.PhoneLink, models.PhoneLinkFilter](db)}
}

// ByPair resolves the debtor-facing reverse lookup used by inbound
// processing: which link connects these two numbers, regardless of debtor.
func (r *PhoneLinkRepositoryImpl) ByPair(ctx context.Context, fromNumber, toNumber string) (*models.PhoneLink, error) {
	filter := models.PhoneLinkFilter{FromNumber: &fromNumber, ToNumber: &toNumber}
	links, err := r.ByFilter(ctx, filter, "id ASC", 1, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to find phone link by pair: %w", err)
	}
	if len(links) == 0 {
		return nil, nil
	}
	return links[0], nil
}

// ByTriple checks the uniqueness key used for idempotent link creation
func (r *PhoneLinkRepositoryImpl) ByTriple(ctx context.Context, debtorID uint, fromNumber, toNumber string) (*models.PhoneLink, error) {
	filter := models.PhoneLinkFilter{DebtorID: &debtorID, FromNumber: &fromNumber, ToNumber: &toNumber}
	links, err := r.ByFilter(ctx, filter, "id ASC", 1, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to find phone link by triple: %w", err)
	}
	if len(links) == 0 {
		return nil, nil
	}
	return links[0], nil
}

func (r *PhoneLinkRepositoryImpl) ListByDebtor(ctx context.Context, debtorID uint) ([]*models.PhoneLink, error) {
	filter := models.PhoneLinkFilter{DebtorID: &debtorID}
	return r.ByFilter(ctx, filter, "id ASC", 0, 0)
}

func (r *PhoneLinkRepositoryImpl) applyFilter(db *gorm.DB, f models.PhoneLinkFilter) *gorm.DB {
	if f.ID != nil {
		db = db.Where("id = ?", *f.ID)
	}
	if f.DebtorID != nil {
		db = db.Where("debtor_id = ?", *f.DebtorID)
	}
	if f.FromNumber != nil {
		db = db.Where("from_number = ?", *f.FromNumber)
	}
	if f.ToNumber != nil {
		db = db.Where("to_number = ?", *f.ToNumber)
	}
	if f.Kind != nil {
		db = db.Where("kind = ?", *f.Kind)
	}
	return db
}

func (r *PhoneLinkRepositoryImpl) ByFilter(ctx context.Context, filter models.PhoneLinkFilter, orderBy string, limit, offset int) ([]*models.PhoneLink, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.PhoneLink{}), filter)
	if orderBy != "" {
		query = query.Order(orderBy)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	var rows []*models.PhoneLink
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PhoneLinkRepositoryImpl) Count(ctx context.Context, filter models.PhoneLinkFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.PhoneLink{}), filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PhoneLinkRepositoryImpl) Exists(ctx context.Context, filter models.PhoneLinkFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}
