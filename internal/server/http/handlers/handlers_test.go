package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/dch2rfzbnb-cmyk/nano-crm/internal/domain/errors"
	"github.com/dch2rfzbnb-cmyk/nano-crm/internal/domain/model"
	"github.com/dch2rfzbnb-cmyk/nano-crm/internal/report"
	"github.com/dch2rfzbnb-cmyk/nano-crm/internal/server/http/dto"
	"github.com/dch2rfzbnb-cmyk/nano-crm/internal/test"
	"github.com/dch2rfzbnb-cmyk/nano-crm/internal/usecase"
)

func performJSON(t *testing.T, engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func decodeMessageResponse(t *testing.T, rec *httptest.ResponseRecorder) dto.MessageResponse {
	t.Helper()
	var resp dto.MessageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func newMessageRouter(facade CRMFacade) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	h := NewMessageHandler(facade)
	engine.POST("/api/session", h.Session)
	engine.POST("/api/messages", h.Receive)
	engine.POST("/api/actions", h.Action)
	return engine
}

func TestSessionHandler(t *testing.T) {
	t.Run("accepts correct PIN", func(t *testing.T) {
		var gotUser int64
		facade := test.CRMFacadeStub{AuthFacadeStub: test.AuthFacadeStub{
			SubmitFn: func(_ context.Context, userID int64, pin string) error {
				gotUser = userID
				return nil
			},
		}}
		rec := performJSON(t, newMessageRouter(facade), http.MethodPost, "/api/session", `{"user_id":42,"pin":"4242"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		if gotUser != 42 {
			t.Errorf("user = %d, want 42", gotUser)
		}
	})

	t.Run("rejects wrong PIN", func(t *testing.T) {
		facade := test.CRMFacadeStub{AuthFacadeStub: test.AuthFacadeStub{
			SubmitFn: func(context.Context, int64, string) error {
				return domainErrors.ErrUnauthorized
			},
		}}
		rec := performJSON(t, newMessageRouter(facade), http.MethodPost, "/api/session", `{"user_id":42,"pin":"0000"}`)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		rec := performJSON(t, newMessageRouter(test.CRMFacadeStub{}), http.MethodPost, "/api/session", `{"user_id":42}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", rec.Code)
		}
	})
}

func TestReceiveCreatesOrder(t *testing.T) {
	facade := test.CRMFacadeStub{OrderFacadeStub: test.OrderFacadeStub{
		CreateFn: func(_ context.Context, text string, _ model.Manager, chatID, messageID int64) (*model.Order, error) {
			return &model.Order{ID: 9, Model: "iPhone", ChatID: chatID, MessageID: messageID, Status: model.OrderStatusNew}, nil
		},
	}}

	body := `{"chat_id":100,"message_id":200,"sender_name":"Мария","text":"iPhone / 45000 / Ленина 1 / Иван / "}`
	rec := performJSON(t, newMessageRouter(facade), http.MethodPost, "/api/messages", body)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	resp := decodeMessageResponse(t, rec)
	if resp.Kind != "created" || resp.Order == nil || resp.Order.ID != 9 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestReceiveDuplicate(t *testing.T) {
	facade := test.CRMFacadeStub{OrderFacadeStub: test.OrderFacadeStub{
		CreateFn: func(context.Context, string, model.Manager, int64, int64) (*model.Order, error) {
			return nil, &domainErrors.DuplicateOrderError{MatchedID: 5}
		},
	}}

	body := `{"chat_id":100,"message_id":200,"text":"iPhone / 45000 / Ленина 1 / Иван / "}`
	rec := performJSON(t, newMessageRouter(facade), http.MethodPost, "/api/messages", body)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d", rec.Code)
	}
	resp := decodeMessageResponse(t, rec)
	if resp.Kind != "duplicate" || resp.DuplicateOf != 5 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestReceiveParseError(t *testing.T) {
	facade := test.CRMFacadeStub{OrderFacadeStub: test.OrderFacadeStub{
		CreateFn: func(context.Context, string, model.Manager, int64, int64) (*model.Order, error) {
			return nil, domainErrors.NewParseError(domainErrors.ParseWrongFieldCount, "expected 5 fields")
		},
	}}

	body := `{"chat_id":100,"message_id":200,"text":"iPhone / 45000"}`
	rec := performJSON(t, newMessageRouter(facade), http.MethodPost, "/api/messages", body)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "wrong_field_count") {
		t.Errorf("reason missing: %s", rec.Body.String())
	}
}

func TestReceiveEditedMessage(t *testing.T) {
	var gotMessageID int64
	facade := test.CRMFacadeStub{OrderFacadeStub: test.OrderFacadeStub{
		EditByOriginFn: func(_ context.Context, chatID, messageID int64, text string) (*model.Order, error) {
			gotMessageID = messageID
			return &model.Order{ID: 3, ChatID: chatID, MessageID: messageID}, nil
		},
	}}

	body := `{"chat_id":100,"message_id":200,"text":"iPhone / 55000 / Ленина 1 / Иван / ","edited":true}`
	rec := performJSON(t, newMessageRouter(facade), http.MethodPost, "/api/messages", body)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if gotMessageID != 200 {
		t.Errorf("message id = %d", gotMessageID)
	}
	if resp := decodeMessageResponse(t, rec); resp.Kind != "updated" {
		t.Errorf("kind = %q", resp.Kind)
	}
}

func TestReceiveReplyAppendsComment(t *testing.T) {
	facade := test.CRMFacadeStub{OrderFacadeStub: test.OrderFacadeStub{
		ByOriginFn: func(_ context.Context, chatID, messageID int64) (*model.Order, error) {
			if messageID != 150 {
				t.Errorf("reply lookup message id = %d", messageID)
			}
			return &model.Order{ID: 3, ChatID: chatID}, nil
		},
		CommentFn: func(_ context.Context, id int64, text string) (*model.Order, error) {
			return &model.Order{ID: id, Comment: text}, nil
		},
	}}

	body := `{"chat_id":100,"message_id":200,"text":"клиент перезвонит","reply_to_message_id":150}`
	rec := performJSON(t, newMessageRouter(facade), http.MethodPost, "/api/messages", body)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	resp := decodeMessageResponse(t, rec)
	if resp.Kind != "comment" || resp.Order == nil || resp.Order.Comment != "клиент перезвонит" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestReceiveOrderCard(t *testing.T) {
	facade := test.CRMFacadeStub{OrderFacadeStub: test.OrderFacadeStub{
		OrderFn: func(_ context.Context, id int64) (*model.Order, error) {
			if id != 12 {
				t.Errorf("card id = %d", id)
			}
			return &model.Order{ID: id}, nil
		},
	}}

	body := `{"chat_id":100,"message_id":200,"text":"#12"}`
	rec := performJSON(t, newMessageRouter(facade), http.MethodPost, "/api/messages", body)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if resp := decodeMessageResponse(t, rec); resp.Kind != "card" {
		t.Errorf("kind = %q", resp.Kind)
	}
}

func TestReceiveSearch(t *testing.T) {
	facade := test.CRMFacadeStub{OrderFacadeStub: test.OrderFacadeStub{
		SearchFn: func(_ context.Context, query string, chatID int64) ([]model.Order, error) {
			if query != "иванов" || chatID != 100 {
				t.Errorf("unexpected search: %q %d", query, chatID)
			}
			return []model.Order{{ID: 1}, {ID: 2}}, nil
		},
	}}

	body := `{"chat_id":100,"message_id":200,"text":"иванов"}`
	rec := performJSON(t, newMessageRouter(facade), http.MethodPost, "/api/messages", body)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	resp := decodeMessageResponse(t, rec)
	if resp.Kind != "search" || len(resp.Orders) != 2 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestActionHandler(t *testing.T) {
	t.Run("setStatus", func(t *testing.T) {
		facade := test.CRMFacadeStub{OrderFacadeStub: test.OrderFacadeStub{
			SetStatusFn: func(_ context.Context, id int64, status model.OrderStatus) (*model.Order, error) {
				if id != 12 || status != model.OrderStatusPaid {
					t.Errorf("unexpected call: %d %s", id, status)
				}
				return &model.Order{ID: id, Status: status}, nil
			},
		}}
		rec := performJSON(t, newMessageRouter(facade), http.MethodPost, "/api/actions", `{"action":"setStatus:12:paid"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		if resp := decodeMessageResponse(t, rec); resp.Kind != "status" {
			t.Errorf("kind = %q", resp.Kind)
		}
	})

	t.Run("editField", func(t *testing.T) {
		facade := test.CRMFacadeStub{OrderFacadeStub: test.OrderFacadeStub{
			PatchFn: func(_ context.Context, id int64, field model.OrderField, value string) (*model.Order, error) {
				if id != 12 || field != model.FieldPrice || value != "50000" {
					t.Errorf("unexpected call: %d %s %q", id, field, value)
				}
				return &model.Order{ID: id, Price: value}, nil
			},
		}}
		rec := performJSON(t, newMessageRouter(facade), http.MethodPost, "/api/actions", `{"action":"editField:12:price","value":"50000"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("malformed actions rejected", func(t *testing.T) {
		for _, action := range []string{"setStatus:12", "setStatus:abc:paid", "unknown:12:x"} {
			rec := performJSON(t, newMessageRouter(test.CRMFacadeStub{}), http.MethodPost, "/api/actions", `{"action":"`+action+`"}`)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("action %q: status = %d", action, rec.Code)
			}
		}
	})
}

func newOrderRouter(facade OrderFacade) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	h := NewOrderHandler(facade)
	engine.GET("/api/orders/:id", h.Get)
	engine.GET("/api/orders", h.List)
	engine.POST("/api/orders/:id/message", h.Edit)
	engine.POST("/api/orders/bulk-status", h.BulkStatus)
	return engine
}

func TestOrderHandlerGet(t *testing.T) {
	facade := test.OrderFacadeStub{
		OrderFn: func(_ context.Context, id int64) (*model.Order, error) {
			if id == 404 {
				return nil, domainErrors.ErrNotFound
			}
			return &model.Order{ID: id, Model: "iPhone"}, nil
		},
	}
	engine := newOrderRouter(facade)

	rec := performJSON(t, engine, http.MethodGet, "/api/orders/12", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp dto.OrderResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.ID != 12 || resp.Model != "iPhone" {
		t.Errorf("unexpected order: %+v", resp)
	}

	if rec := performJSON(t, engine, http.MethodGet, "/api/orders/404", ""); rec.Code != http.StatusNotFound {
		t.Errorf("missing order: status = %d", rec.Code)
	}
	if rec := performJSON(t, engine, http.MethodGet, "/api/orders/abc", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("bad id: status = %d", rec.Code)
	}
}

func TestOrderHandlerList(t *testing.T) {
	facade := test.OrderFacadeStub{
		SearchFn: func(_ context.Context, query string, chatID int64) ([]model.Order, error) {
			return []model.Order{{ID: 1}}, nil
		},
		ByStatusFn: func(_ context.Context, chatID int64, status model.OrderStatus, limit int) ([]model.Order, error) {
			if status != model.OrderStatusNew || limit != 5 {
				t.Errorf("unexpected call: %s %d", status, limit)
			}
			return []model.Order{{ID: 1}, {ID: 2}}, nil
		},
	}
	engine := newOrderRouter(facade)

	if rec := performJSON(t, engine, http.MethodGet, "/api/orders?chat_id=100&q=иван", ""); rec.Code != http.StatusOK {
		t.Errorf("search: status = %d", rec.Code)
	}
	if rec := performJSON(t, engine, http.MethodGet, "/api/orders?chat_id=100&status=new&limit=5", ""); rec.Code != http.StatusOK {
		t.Errorf("status filter: status = %d", rec.Code)
	}
	if rec := performJSON(t, engine, http.MethodGet, "/api/orders?chat_id=100", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("no filter: status = %d", rec.Code)
	}
	if rec := performJSON(t, engine, http.MethodGet, "/api/orders?status=new", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("no chat: status = %d", rec.Code)
	}
}

func TestOrderHandlerEdit(t *testing.T) {
	facade := test.OrderFacadeStub{
		EditFn: func(_ context.Context, id int64, text string) (*model.Order, error) {
			if id != 12 || !strings.Contains(text, "55000") {
				t.Errorf("unexpected edit: %d %q", id, text)
			}
			return &model.Order{ID: id, Price: "55000"}, nil
		},
	}
	engine := newOrderRouter(facade)

	rec := performJSON(t, engine, http.MethodPost, "/api/orders/12/message", `{"text":"iPhone / 55000 / Ленина 1 / Иван / "}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	if rec := performJSON(t, engine, http.MethodPost, "/api/orders/12/message", `{}`); rec.Code != http.StatusBadRequest {
		t.Errorf("empty body: status = %d", rec.Code)
	}
}

func TestOrderHandlerBulkStatus(t *testing.T) {
	facade := test.OrderFacadeStub{
		BulkFn: func(_ context.Context, ids []int64, status model.OrderStatus) (int, error) {
			if len(ids) != 3 || status != model.OrderStatusPaid {
				t.Errorf("unexpected bulk: %v %s", ids, status)
			}
			return 2, nil
		},
	}
	engine := newOrderRouter(facade)

	rec := performJSON(t, engine, http.MethodPost, "/api/orders/bulk-status", `{"ids":[1,2,999],"status":"paid"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp dto.BulkStatusResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Updated != 2 {
		t.Errorf("updated = %d, want 2", resp.Updated)
	}
}

func newReportRouter(facade ReportFacade) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	h := NewReportHandler(facade)
	engine.GET("/api/reports/:chatID", h.Get)
	engine.GET("/api/settings/:chatID", h.Settings)
	engine.POST("/api/settings/:chatID/daily-report", h.UpdateDailyReport)
	return engine
}

func TestReportHandlerGet(t *testing.T) {
	facade := test.ReportFacadeStub{
		BuildFn: func(_ context.Context, chatID int64, scope usecase.ReportScope, format report.Format) (report.Document, error) {
			if scope != usecase.ScopeDaily || format != report.FormatCSV {
				t.Errorf("unexpected call: %s %s", scope, format)
			}
			return report.Document{Filename: "report.csv", MIME: "text/csv", Content: []byte("id,model\n")}, nil
		},
	}
	engine := newReportRouter(facade)

	rec := performJSON(t, engine, http.MethodGet, "/api/reports/100?format=csv", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "report.csv") {
		t.Errorf("content disposition = %q", got)
	}
	if rec.Body.String() != "id,model\n" {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestReportHandlerDeliver(t *testing.T) {
	delivered := false
	facade := test.ReportFacadeStub{
		SendFn: func(_ context.Context, chatID int64, scope usecase.ReportScope, format report.Format) error {
			delivered = true
			return nil
		},
	}
	engine := newReportRouter(facade)

	rec := performJSON(t, engine, http.MethodGet, "/api/reports/100?deliver=true", "")
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d", rec.Code)
	}
	if !delivered {
		t.Error("delivery not triggered")
	}
}

func TestReportHandlerRejectsBadParams(t *testing.T) {
	engine := newReportRouter(test.ReportFacadeStub{})

	if rec := performJSON(t, engine, http.MethodGet, "/api/reports/abc", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("bad chat id: status = %d", rec.Code)
	}
	if rec := performJSON(t, engine, http.MethodGet, "/api/reports/100?scope=weekly", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("bad scope: status = %d", rec.Code)
	}
	if rec := performJSON(t, engine, http.MethodGet, "/api/reports/100?format=pdf", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("bad format: status = %d", rec.Code)
	}
}

func TestReportHandlerSettings(t *testing.T) {
	facade := test.ReportFacadeStub{
		SettingsFn: func(_ context.Context, chatID int64) (*model.ChatSettings, error) {
			return &model.ChatSettings{ChatID: chatID, DailyReportEnabled: true, ReportChatID: 555}, nil
		},
	}
	engine := newReportRouter(facade)

	rec := performJSON(t, engine, http.MethodGet, "/api/settings/100", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp dto.SettingsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.ChatID != 100 || !resp.DailyReportEnabled || resp.ReportChatID != 555 {
		t.Errorf("unexpected settings: %+v", resp)
	}
}

func TestReportHandlerUpdateDailyReport(t *testing.T) {
	var enabled bool
	var reportChat int64
	facade := test.ReportFacadeStub{
		SetEnabledFn: func(_ context.Context, chatID int64, value bool) error {
			enabled = value
			return nil
		},
		SetReportToFn: func(_ context.Context, chatID, reportChatID int64) error {
			reportChat = reportChatID
			return nil
		},
	}
	engine := newReportRouter(facade)

	rec := performJSON(t, engine, http.MethodPost, "/api/settings/100/daily-report", `{"enabled":true,"report_chat_id":555}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !enabled || reportChat != 555 {
		t.Errorf("settings not applied: %v %d", enabled, reportChat)
	}

	if rec := performJSON(t, engine, http.MethodPost, "/api/settings/100/daily-report", `{}`); rec.Code != http.StatusBadRequest {
		t.Errorf("missing enabled: status = %d", rec.Code)
	}
}
