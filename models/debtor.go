package models

import "time"

// PaymentStatus enumerates the debtor's position in the collection lifecycle
type PaymentStatus string

const (
	PaymentStatusNoContact          PaymentStatus = "no_contact"
	PaymentStatusContact            PaymentStatus = "contact"
	PaymentStatusContactedWithKnown PaymentStatus = "contacted_with_known"
	PaymentStatusNotPaid            PaymentStatus = "not_paid"
	PaymentStatusPartialPaid        PaymentStatus = "partial_paid"
	PaymentStatusPaymentAgreement   PaymentStatus = "payment_agreement"
	PaymentStatusFinancedPayment    PaymentStatus = "financed_payment"
	PaymentStatusPaid               PaymentStatus = "paid"
	PaymentStatusError              PaymentStatus = "error"
)

// ParsePaymentStatus maps the labels produced by the collection agent onto
// the canonical enum. Unknown labels fall back to PaymentStatusError.
func ParsePaymentStatus(label string) PaymentStatus {
	switch label {
	case "NoContact", string(PaymentStatusNoContact):
		return PaymentStatusNoContact
	case "Contact", string(PaymentStatusContact):
		return PaymentStatusContact
	case "ContactedWithKnown", string(PaymentStatusContactedWithKnown):
		return PaymentStatusContactedWithKnown
	case "NotPaid", string(PaymentStatusNotPaid):
		return PaymentStatusNotPaid
	case "PartialPaid", string(PaymentStatusPartialPaid):
		return PaymentStatusPartialPaid
	case "PaymentAgreement", string(PaymentStatusPaymentAgreement):
		return PaymentStatusPaymentAgreement
	case "FinancedPayment", string(PaymentStatusFinancedPayment):
		return PaymentStatusFinancedPayment
	case "Paid", string(PaymentStatusPaid):
		return PaymentStatusPaid
	default:
		return PaymentStatusError
	}
}

// DebtClass classifies how stale the debt was at import time
type DebtClass string

const (
	DebtClassChargedOff DebtClass = "charged_off"
	DebtClassOverdue    DebtClass = "overdue"
)

// Debtor represents a person owing money to a company.
// (document, company_id) is unique; resolution by document is find-or-create.
type Debtor struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	CompanyID     uint          `gorm:"not null;uniqueIndex:uq_debtors_document_company;index:idx_debtors_company_id" json:"company_id"`
	Name          string        `gorm:"size:255;not null" json:"name"`
	Document      string        `gorm:"size:64;not null;uniqueIndex:uq_debtors_document_company" json:"document"`
	Email         *string       `gorm:"size:255" json:"email,omitempty"`
	PaymentStatus PaymentStatus `gorm:"type:payment_status;not null;default:'no_contact';index:idx_debtors_payment_status" json:"payment_status"`
	DebtClass     DebtClass     `gorm:"type:debt_class;not null;default:'charged_off'" json:"debt_class"`
	DebtAmount    float64       `gorm:"type:numeric(14,2);default:0" json:"debt_amount"`
	DebtDate      *time.Time    `json:"debt_date,omitempty"`
	CreatedAt     time.Time     `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`

	Events []DebtorEvent `gorm:"foreignKey:DebtorID" json:"events,omitempty"`
}

func (Debtor) TableName() string { return "debtors" }

// DebtorFilter provides filter fields for repository queries
type DebtorFilter struct {
	ID            *uint
	CompanyID     *uint
	Document      *string
	PaymentStatus *PaymentStatus
	DebtClass     *DebtClass
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

// DebtorEvent is one entry of the debtor's append-only audit trail.
// Rows are never edited after creation.
type DebtorEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	DebtorID  uint      `gorm:"not null;index:idx_debtor_events_debtor_id" json:"debtor_id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_debtor_events_created_at" json:"created_at"`
}

func (DebtorEvent) TableName() string { return "debtor_events" }

// DebtorEventFilter provides filter fields for repository queries
type DebtorEventFilter struct {
	ID            *uint
	DebtorID      *uint
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}
