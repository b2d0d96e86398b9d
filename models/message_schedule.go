package models

import "time"

// MessageSchedule is one allowed weekday of a company's contact window.
// A logical schedule fans out to one row per allowed day; reconfiguration
// replaces all rows wholesale (delete-all-then-insert), never patches.
// Weekday follows time.Weekday numbering (0=Sunday..6=Saturday); start and
// end are "15:04" clock strings interpreted in Timezone, boundaries
// inclusive.
type MessageSchedule struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CompanyID uint      `gorm:"not null;index:idx_message_schedules_company_id" json:"company_id"`
	Weekday   int       `gorm:"not null" json:"weekday"`
	StartTime string    `gorm:"size:5;not null" json:"start_time"`
	EndTime   string    `gorm:"size:5;not null" json:"end_time"`
	Timezone  string    `gorm:"size:64;not null;default:'UTC'" json:"timezone"`
	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
}

func (MessageSchedule) TableName() string { return "message_schedules" }

// MessageScheduleFilter provides filter fields for repository queries
type MessageScheduleFilter struct {
	ID        *uint
	CompanyID *uint
	Weekday   *int
}
