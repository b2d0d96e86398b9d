package repository

import (
	"context"
	"fmt"

	"github.com/cobraops/cobra-core/models"
	"gorm.io/gorm"
)

// ChatMessageRepositoryImpl implements ChatMessageRepository
type ChatMessageRepositoryImpl struct {
	*BaseRepository[models.ChatMessage, models.ChatMessageFilter]
}

func NewChatMessageRepository(db *gorm.DB) ChatMessageRepository {
	return &ChatMessageRepositoryImpl{BaseRepository: NewBaseRepository[models.ChatMessage, models.ChatMessageFilter](db)}
}

// Conversation loads both directions of the exchange between the company
// number and the debtor number on one channel, in creation order. That
// order is what the collection agent sees as history.
func (r *ChatMessageRepositoryImpl) Conversation(ctx context.Context, companyID uint, companyNumber, debtorNumber string, channel models.ChatChannel) ([]*models.ChatMessage, error) {
	db := r.getDB(ctx)
	var rows []*models.ChatMessage
	err := db.Model(&models.ChatMessage{}).
		Where("company_id = ? AND channel = ?", companyID, channel).
		Where("(from_number = ? AND to_number = ?) OR (from_number = ? AND to_number = ?)",
			companyNumber, debtorNumber, debtorNumber, companyNumber).
		Order("created_at ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}
	return rows, nil
}

func (r *ChatMessageRepositoryImpl) applyFilter(db *gorm.DB, f models.ChatMessageFilter) *gorm.DB {
	if f.ID != nil {
		db = db.Where("id = ?", *f.ID)
	}
	if f.CompanyID != nil {
		db = db.Where("company_id = ?", *f.CompanyID)
	}
	if f.Channel != nil {
		db = db.Where("channel = ?", *f.Channel)
	}
	if f.Direction != nil {
		db = db.Where("direction = ?", *f.Direction)
	}
	if f.FromNumber != nil {
		db = db.Where("from_number = ?", *f.FromNumber)
	}
	if f.ToNumber != nil {
		db = db.Where("to_number = ?", *f.ToNumber)
	}
	if f.Success != nil {
		db = db.Where("success = ?", *f.Success)
	}
	if f.CreatedAfter != nil {
		db = db.Where("created_at >= ?", *f.CreatedAfter)
	}
	if f.CreatedBefore != nil {
		db = db.Where("created_at < ?", *f.CreatedBefore)
	}
	return db
}

func (r *ChatMessageRepositoryImpl) ByFilter(ctx context.Context, filter models.ChatMessageFilter, orderBy string, limit, offset int) ([]*models.ChatMessage, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.ChatMessage{}), filter)
	if orderBy != "" {
		query = query.Order(orderBy)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	var rows []*models.ChatMessage
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ChatMessageRepositoryImpl) Count(ctx context.Context, filter models.ChatMessageFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.ChatMessage{}), filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ChatMessageRepositoryImpl) Exists(ctx context.Context, filter models.ChatMessageFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}
