// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"time"

	"github.com/cobraops/cobra-core/models"
)

// RepositoryContext key for transaction in context
type contextKey string

const TxContextKey contextKey = "tx"

type Repository[T any, F any] interface {
	ByID(ctx context.Context, id uint) (*T, error)
	ByFilter(ctx context.Context, filter F, orderBy string, limit, offset int) ([]*T, error)
	Save(ctx context.Context, entity *T) error
	SaveBatch(ctx context.Context, entities []*T) error
	Update(ctx context.Context, entity *T) error
	Count(ctx context.Context, filter F) (int64, error)
	Exists(ctx context.Context, filter F) (bool, error)
}

// CompanyRepository defines operations for companies
type CompanyRepository interface {
	Repository[models.Company, models.CompanyFilter]
}

// DebtorRepository defines operations for debtors and their event log
type DebtorRepository interface {
	Repository[models.Debtor, models.DebtorFilter]
	ByDocument(ctx context.Context, document string, companyID uint) (*models.Debtor, error)
	AppendEvent(ctx context.Context, debtorID uint, text string) error
	ListEvents(ctx context.Context, debtorID uint) ([]*models.DebtorEvent, error)
}

// PhoneLinkRepository defines operations for phone links
type PhoneLinkRepository interface {
	Repository[models.PhoneLink, models.PhoneLinkFilter]
	ByPair(ctx context.Context, fromNumber, toNumber string) (*models.PhoneLink, error)
	ByTriple(ctx context.Context, debtorID uint, fromNumber, toNumber string) (*models.PhoneLink, error)
	ListByDebtor(ctx context.Context, debtorID uint) ([]*models.PhoneLink, error)
}

// ChatMessageRepository defines operations for the append-only chat log
type ChatMessageRepository interface {
	Repository[models.ChatMessage, models.ChatMessageFilter]
	Conversation(ctx context.Context, companyID uint, companyNumber, debtorNumber string, channel models.ChatChannel) ([]*models.ChatMessage, error)
}

// CostEntryRepository defines operations for the append-only cost ledger
type CostEntryRepository interface {
	Repository[models.CostEntry, models.CostEntryFilter]
	ListByCompany(ctx context.Context, companyID uint, after, before *time.Time) ([]*models.CostEntry, error)
}

// PendingMessageRepository defines operations for the deferred-send queue
type PendingMessageRepository interface {
	Repository[models.PendingMessage, models.PendingMessageFilter]
	ListPending(ctx context.Context) ([]*models.PendingMessage, error)
	UpdateStatus(ctx context.Context, id uint, status models.PendingStatus) error
}

// MessageScheduleRepository defines operations for per-company contact windows
type MessageScheduleRepository interface {
	Repository[models.MessageSchedule, models.MessageScheduleFilter]
	ListByCompany(ctx context.Context, companyID uint) ([]*models.MessageSchedule, error)
	ReplaceForCompany(ctx context.Context, companyID uint, rows []*models.MessageSchedule) error
}

// DebtImageRepository defines operations for inbound payment-proof images
type DebtImageRepository interface {
	Repository[models.DebtImage, models.DebtImageFilter]
	ListByDebtor(ctx context.Context, debtorID uint) ([]*models.DebtImage, error)
}
