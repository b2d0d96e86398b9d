package models

import "time"

// DebtImage records an inbound payment-proof image (WhatsApp only) together
// with the text extracted from it by OCR.
type DebtImage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	DebtorID  uint      `gorm:"not null;index:idx_debt_images_debtor_id" json:"debtor_id"`
	ImageURL  string    `gorm:"size:512;not null" json:"image_url"`
	Text      string    `gorm:"type:text" json:"text"`
	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
}

func (DebtImage) TableName() string { return "debt_images" }

// DebtImageFilter provides filter fields for repository queries
type DebtImageFilter struct {
	ID       *uint
	DebtorID *uint
}
