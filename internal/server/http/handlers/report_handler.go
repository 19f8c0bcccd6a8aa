package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dch2rfzbnb-cmyk/nano-crm/internal/report"
	"github.com/dch2rfzbnb-cmyk/nano-crm/internal/server/http/dto"
	"github.com/dch2rfzbnb-cmyk/nano-crm/internal/usecase"
)

// ReportHandler serves report downloads and chat settings.
type ReportHandler struct {
	facade ReportFacade
}

// NewReportHandler constructs ReportHandler.
func NewReportHandler(facade ReportFacade) *ReportHandler {
	return &ReportHandler{facade: facade}
}

// Get handles GET /api/reports/:chatID?scope=&format=&deliver=. Without
// deliver the rendered document comes back in the response body; with
// deliver=true it goes out through the gateway as an attachment.
func (h *ReportHandler) Get(c *gin.Context) {
	chatID, err := strconv.ParseInt(c.Param("chatID"), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	scope := resolveScope(c.Query("scope"))
	if scope == "" {
		c.Status(http.StatusBadRequest)
		return
	}
	format, ok := report.ParseFormat(c.Query("format"))
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	ctx := c.Request.Context()
	if c.Query("deliver") == "true" {
		if err := h.facade.SendReportDocument(ctx, chatID, scope, format); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusAccepted)
		return
	}

	doc, err := h.facade.BuildReport(ctx, chatID, scope, format)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+doc.Filename+`"`)
	c.Data(http.StatusOK, doc.MIME, doc.Content)
}

// Settings handles GET /api/settings/:chatID.
func (h *ReportHandler) Settings(c *gin.Context) {
	chatID, err := strconv.ParseInt(c.Param("chatID"), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	settings, err := h.facade.ChatSettings(c.Request.Context(), chatID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SettingsResponse{
		ChatID:             settings.ChatID,
		DailyReportEnabled: settings.DailyReportEnabled,
		ReportChatID:       settings.ReportChatID,
		LastReportDate:     settings.LastReportDate,
	})
}

// UpdateDailyReport handles POST /api/settings/:chatID/daily-report.
func (h *ReportHandler) UpdateDailyReport(c *gin.Context) {
	chatID, err := strconv.ParseInt(c.Param("chatID"), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.DailyReportRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Enabled == nil {
		c.Status(http.StatusBadRequest)
		return
	}

	ctx := c.Request.Context()
	if err := h.facade.SetDailyReportEnabled(ctx, chatID, *req.Enabled); err != nil {
		writeError(c, err)
		return
	}
	if req.ReportChatID != nil {
		if err := h.facade.SetReportChat(ctx, chatID, *req.ReportChatID); err != nil {
			writeError(c, err)
			return
		}
	}
	c.Status(http.StatusOK)
}

func resolveScope(raw string) usecase.ReportScope {
	switch usecase.ReportScope(raw) {
	case "":
		return usecase.ScopeDaily
	case usecase.ScopeAll:
		return usecase.ScopeAll
	case usecase.ScopeDaily:
		return usecase.ScopeDaily
	case usecase.ScopeActive:
		return usecase.ScopeActive
	}
	return ""
}
