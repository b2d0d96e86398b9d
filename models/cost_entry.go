package models

import "time"

// CostChannel enumerates billable communication channels
type CostChannel string

const (
	CostChannelWhatsApp    CostChannel = "whatsapp"
	CostChannelSMS         CostChannel = "sms"
	CostChannelCall        CostChannel = "call"
	CostChannelEmail       CostChannel = "email"
	CostChannelAgentRental CostChannel = "agent_rental"
)

// CostEntry is one row of the append-only cost ledger, written as a side
// effect of every billable communication attempt. Rows are never updated.
type CostEntry struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	CompanyID uint        `gorm:"not null;index:idx_cost_entries_company_id" json:"company_id"`
	Amount    float64     `gorm:"type:numeric(12,6);not null" json:"amount"`
	Channel   CostChannel `gorm:"type:cost_channel;not null;index:idx_cost_entries_channel" json:"channel"`
	CreatedAt time.Time   `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_cost_entries_created_at" json:"created_at"`
}

func (CostEntry) TableName() string { return "cost_entries" }

// CostEntryFilter provides filter fields for repository queries
type CostEntryFilter struct {
	ID            *uint
	CompanyID     *uint
	Channel       *CostChannel
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}
