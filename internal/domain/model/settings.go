package model

import "time"

// ChatSettings holds per-chat daily report configuration.
type ChatSettings struct {
	ChatID             int64
	DailyReportEnabled bool
	ReportChatID       int64
	LastReportDate     *time.Time
}

// Destination returns the chat that should receive reports. Falls back to the
// owning chat when no explicit destination is configured.
func (s ChatSettings) Destination() int64 {
	if s.ReportChatID != 0 {
		return s.ReportChatID
	}
	return s.ChatID
}

// ReportedOn reports whether the daily report was already produced on day.
func (s ChatSettings) ReportedOn(day time.Time) bool {
	if s.LastReportDate == nil {
		return false
	}
	y1, m1, d1 := s.LastReportDate.Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
