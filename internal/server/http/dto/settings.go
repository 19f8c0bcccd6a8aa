package dto

import "time"

// DailyReportRequest toggles the daily report for a chat and optionally
// redirects it to another chat.
type DailyReportRequest struct {
	Enabled      *bool  `json:"enabled" binding:"required"`
	ReportChatID *int64 `json:"report_chat_id,omitempty"`
}

// SettingsResponse is the chat settings card.
type SettingsResponse struct {
	ChatID             int64      `json:"chat_id"`
	DailyReportEnabled bool       `json:"daily_report_enabled"`
	ReportChatID       int64      `json:"report_chat_id,omitempty"`
	LastReportDate     *time.Time `json:"last_report_date,omitempty"`
}
