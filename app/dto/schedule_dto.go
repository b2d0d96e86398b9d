package dto

// ScheduleDay is one allowed weekday of a company's contact window
type ScheduleDay struct {
	Weekday   int    `json:"weekday" validate:"min=0,max=6"`
	StartTime string `json:"start_time" validate:"required,len=5"`
	EndTime   string `json:"end_time" validate:"required,len=5"`
}

// ReplaceScheduleRequest swaps a company's whole schedule. Days may be
// empty, which closes the window entirely.
type ReplaceScheduleRequest struct {
	CompanyID uint          `json:"company_id" validate:"required"`
	Timezone  string        `json:"timezone" validate:"required"`
	Days      []ScheduleDay `json:"days" validate:"dive"`
}

// ScheduleResponse returns the stored schedule
type ScheduleResponse struct {
	CompanyID uint          `json:"company_id"`
	Timezone  string        `json:"timezone"`
	Days      []ScheduleDay `json:"days"`
}
