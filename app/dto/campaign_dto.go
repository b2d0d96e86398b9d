package dto

// RunCampaignRequest carries one uploaded workbook plus sending options.
// Workbook bytes arrive as a multipart file in the HTTP layer.
type RunCampaignRequest struct {
	CompanyID   uint   `json:"company_id" validate:"required"`
	Channel     string `json:"channel" validate:"required,oneof=whatsapp sms call email"`
	FromNumber  string `json:"from_number" validate:"omitempty,numeric"`
	CountryCode string `json:"country_code" validate:"omitempty,numeric"`
	Workbook    []byte `json:"-"`
}

// CampaignRunSummary reports what happened to every contact in the run
type CampaignRunSummary struct {
	TrackingID string `json:"tracking_id"`
	Channel    string `json:"channel"`
	Rows       int    `json:"rows"`
	Sent       int    `json:"sent"`
	Enqueued   int    `json:"enqueued"`
	Failed     int    `json:"failed"`
	Skipped    int    `json:"skipped"`
}
