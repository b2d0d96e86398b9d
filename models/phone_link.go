package models

import "time"

// PhoneLinkKind distinguishes mobile links from landline links
type PhoneLinkKind string

const (
	PhoneLinkKindCellphone PhoneLinkKind = "cellphone"
	PhoneLinkKindTelephone PhoneLinkKind = "telephone"
)

// PhoneLink pairs the company-side number with a debtor number.
// (from_number, to_number, debtor_id) is unique; re-importing the same
// workbook row must not create duplicate links. The pair is also the join
// key for resolving inbound messages back to a debtor.
type PhoneLink struct {
	ID         uint          `gorm:"primaryKey" json:"id"`
	DebtorID   uint          `gorm:"not null;uniqueIndex:uq_phone_links_pair;index:idx_phone_links_debtor_id" json:"debtor_id"`
	FromNumber string        `gorm:"size:20;not null;uniqueIndex:uq_phone_links_pair" json:"from_number"`
	ToNumber   string        `gorm:"size:20;not null;uniqueIndex:uq_phone_links_pair;index:idx_phone_links_to_number" json:"to_number"`
	Kind       PhoneLinkKind `gorm:"type:phone_link_kind;not null;default:'cellphone'" json:"kind"`
	CreatedAt  time.Time     `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
}

func (PhoneLink) TableName() string { return "phone_links" }

// PhoneLinkFilter provides filter fields for repository queries
type PhoneLinkFilter struct {
	ID         *uint
	DebtorID   *uint
	FromNumber *string
	ToNumber   *string
	Kind       *PhoneLinkKind
}
