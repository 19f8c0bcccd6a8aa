package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/dch2rfzbnb-cmyk/nano-crm/internal/domain/errors"
	"github.com/dch2rfzbnb-cmyk/nano-crm/internal/domain/model"
)

// Format names an output rendering of an order report.
type Format string

const (
	// FormatCSV is a comma-separated table for spreadsheet import.
	FormatCSV Format = "csv"
	// FormatTable is a tab-separated table, friendlier for chat-pasted text.
	FormatTable Format = "table"
	// FormatText is a human-readable summary document.
	FormatText Format = "text"
)

// ParseFormat resolves a request string into a Format. Empty input defaults
// to text.
func ParseFormat(s string) (Format, bool) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return FormatText, true
	case FormatCSV:
		return FormatCSV, true
	case FormatTable:
		return FormatTable, true
	case FormatText:
		return FormatText, true
	}
	return "", false
}

// Document is a rendered report ready for delivery.
type Document struct {
	Filename string
	MIME     string
	Content  []byte
}

var headerRow = []string{
	"id", "model", "price", "address", "customer", "phone", "status", "created_at", "comment",
}

// Render produces the report document for the given format. day stamps the
// filename; a short random suffix keeps repeated reports from clobbering each
// other on the receiving side.
func Render(format Format, day time.Time, orders []model.Order, summary model.Summary) (Document, error) {
	switch format {
	case FormatCSV:
		content, err := renderTable(orders, ',')
		if err != nil {
			return Document{}, err
		}
		return Document{Filename: filename("report", day, "csv"), MIME: "text/csv", Content: content}, nil
	case FormatTable:
		content, err := renderTable(orders, '\t')
		if err != nil {
			return Document{}, err
		}
		return Document{Filename: filename("report", day, "tsv"), MIME: "text/tab-separated-values", Content: content}, nil
	case FormatText:
		return Document{
			Filename: filename("report", day, "txt"),
			MIME:     "text/plain; charset=utf-8",
			Content:  []byte(renderText(day, orders, summary)),
		}, nil
	default:
		return Document{}, fmt.Errorf("%w: report format %q", domainErrors.ErrInvalidField, format)
	}
}

func filename(prefix string, day time.Time, ext string) string {
	suffix := uuid.NewString()[:8]
	return fmt.Sprintf("%s-%s-%s.%s", prefix, day.Format("2006-01-02"), suffix, ext)
}

func renderTable(orders []model.Order, comma rune) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	writer.Comma = comma

	if err := writer.Write(headerRow); err != nil {
		return nil, err
	}
	for _, o := range orders {
		record := []string{
			strconv.FormatInt(o.ID, 10),
			o.Model,
			o.Price,
			o.Address,
			o.CustomerName,
			o.Phone,
			string(o.Status),
			o.CreatedAt.Format(time.RFC3339),
			o.Comment,
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderText(day time.Time, orders []model.Order, summary model.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Отчёт за %s\n", day.Format("02.01.2006"))
	fmt.Fprintf(&b, "Всего заказов: %d\n", summary.Count)
	fmt.Fprintf(&b, "Выручка: %s\n", summary.TotalRevenue.String())

	b.WriteString("\nПо статусам:\n")
	for _, status := range model.AllStatuses {
		if count := summary.StatusCounts[status]; count > 0 {
			fmt.Fprintf(&b, "  %s: %d\n", status, count)
		}
	}

	if len(orders) > 0 {
		b.WriteString("\nЗаказы:\n")
		for _, o := range orders {
			fmt.Fprintf(&b, "  #%d %s — %s, %s (%s)\n", o.ID, o.Model, o.Price, o.CustomerName, o.Status)
		}
	}
	return b.String()
}
