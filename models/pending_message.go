package models

import "time"

// PendingStatus enumerates lifecycle states of a deferred contact attempt
type PendingStatus string

const (
	PendingStatusPending PendingStatus = "pending"
	PendingStatusSent    PendingStatus = "sent"
	PendingStatusError   PendingStatus = "error"
)

// PendingMessage is a contact attempt deferred because the company's
// schedule window was closed. The composite unique index prevents the same
// deferred attempt from being queued twice; a drain job retries pending
// rows until the window opens. Errored rows are terminal.
type PendingMessage struct {
	ID         uint          `gorm:"primaryKey" json:"id"`
	CompanyID  uint          `gorm:"not null;uniqueIndex:uq_pending_messages_attempt;index:idx_pending_messages_company_id" json:"company_id"`
	Phone      string        `gorm:"size:255;not null;uniqueIndex:uq_pending_messages_attempt" json:"phone"`
	Message    string        `gorm:"type:text;not null;uniqueIndex:uq_pending_messages_attempt" json:"message"`
	Channel    CostChannel   `gorm:"type:cost_channel;not null;uniqueIndex:uq_pending_messages_attempt" json:"channel"`
	FromNumber string        `gorm:"size:255;not null;uniqueIndex:uq_pending_messages_attempt" json:"from_number"`
	Status     PendingStatus `gorm:"type:pending_status;not null;default:'pending';uniqueIndex:uq_pending_messages_attempt;index:idx_pending_messages_status" json:"status"`
	CreatedAt  time.Time     `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt  time.Time     `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (PendingMessage) TableName() string { return "pending_messages" }

// PendingMessageFilter provides filter fields for repository queries
type PendingMessageFilter struct {
	ID         *uint
	CompanyID  *uint
	Phone      *string
	Message    *string
	Channel    *CostChannel
	FromNumber *string
	Status     *PendingStatus
}
