package dto

import "time"

// ListCostsRequest queries the cost ledger for one company
type ListCostsRequest struct {
	CompanyID uint       `json:"company_id" validate:"required"`
	After     *time.Time `json:"after,omitempty"`
	Before    *time.Time `json:"before,omitempty"`
}

// CostEntryResponse is one ledger row
type CostEntryResponse struct {
	Amount    float64   `json:"amount"`
	Channel   string    `json:"channel"`
	CreatedAt time.Time `json:"created_at"`
}

// ListCostsResponse returns ledger rows plus their running total
type ListCostsResponse struct {
	CompanyID uint                `json:"company_id"`
	Total     float64             `json:"total"`
	Entries   []CostEntryResponse `json:"entries"`
}
