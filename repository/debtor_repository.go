package repository

import (
	"context"
	"fmt"

	"github.com/cobraops/cobra-core/models"
	"gorm.io/gorm"
)

// DebtorRepositoryImpl implements DebtorRepository
type DebtorRepositoryImpl struct {
	*BaseRepository[models.Debtor, models.DebtorFilter]
}

func NewDebtorRepository(db *gorm.DB) DebtorRepository {
	return &DebtorRepositoryImpl{BaseRepository: NewBaseRepository[models.Debtor, models.DebtorFilter](db)}
}

// ByDocument retrieves a debtor by its external identity within one company
func (r *DebtorRepositoryImpl) ByDocument(ctx context.Context, document string, companyID uint) (*models.Debtor, error) {
	filter := models.DebtorFilter{Document: &document, CompanyID: &companyID}
	debtors, err := r.ByFilter(ctx, filter, "", 1, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to find debtor by document: %w", err)
	}
	if len(debtors) == 0 {
		return nil, nil
	}
	return debtors[0], nil
}

// AppendEvent adds one row to the debtor's append-only audit trail
func (r *DebtorRepositoryImpl) AppendEvent(ctx context.Context, debtorID uint, text string) error {
	db := r.getDB(ctx)
	event := models.DebtorEvent{DebtorID: debtorID, Text: text}
	if err := db.Create(&event).Error; err != nil {
		return fmt.Errorf("failed to append debtor event: %w", err)
	}
	return nil
}

// ListEvents returns the debtor's audit trail in creation order
func (r *DebtorRepositoryImpl) ListEvents(ctx context.Context, debtorID uint) ([]*models.DebtorEvent, error) {
	db := r.getDB(ctx)
	var events []*models.DebtorEvent
	err := db.Where("debtor_id = ?", debtorID).Order("created_at ASC, id ASC").Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list debtor events: %w", err)
	}
	return events, nil
}

func (r *DebtorRepositoryImpl) applyFilter(db *gorm.DB, f models.DebtorFilter) *gorm.DB {
	if f.ID != nil {
		db = db.Where("id = ?", *f.ID)
	}
	if f.CompanyID != nil {
		db = db.Where("company_id = ?", *f.CompanyID)
	}
	if f.Document != nil {
		db = db.Where("document = ?", *f.Document)
	}
	if f.PaymentStatus != nil {
		db = db.Where("payment_status = ?", *f.PaymentStatus)
	}
	if f.DebtClass != nil {
		db = db.Where("debt_class = ?", *f.DebtClass)
	}
	if f.CreatedAfter != nil {
		db = db.Where("created_at >= ?", *f.CreatedAfter)
	}
	if f.CreatedBefore != nil {
		db = db.Where("created_at < ?", *f.CreatedBefore)
	}
	return db
}

func (r *DebtorRepositoryImpl) ByFilter(ctx context.Context, filter models.DebtorFilter, orderBy string, limit, offset int) ([]*models.Debtor, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Debtor{}), filter)
	if orderBy != "" {
		query = query.Order(orderBy)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	var rows []*models.Debtor
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *DebtorRepositoryImpl) Count(ctx context.Context, filter models.DebtorFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Debtor{}), filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *DebtorRepositoryImpl) Exists(ctx context.Context, filter models.DebtorFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}
