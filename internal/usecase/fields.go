package usecase

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	domainErrors "github.com/dch2rfzbnb-cmyk/nano-crm/internal/domain/errors"
	"github.com/dch2rfzbnb-cmyk/nano-crm/internal/domain/model"
)

// fieldCount is the exact number of slash-delimited segments in a submission:
// model / price / address / contact / comment.
const fieldCount = 5

var digitRunRe = regexp.MustCompile(`\d+`)

// ParseOrderFields splits a raw submission into typed order fields. The text
// must contain exactly five slash-delimited segments; the contact segment is
// decomposed into a normalized phone and a customer name.
func ParseOrderFields(raw string) (model.OrderFields, error) {
	parts := strings.Split(raw, "/")
	if len(parts) != fieldCount {
		return model.OrderFields{}, domainErrors.NewParseError(
			domainErrors.ParseWrongFieldCount,
			"expected 5 fields: model / price / address / contact / comment",
		)
	}

	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	phone, customer := NormalizePhone(parts[3])

	return model.OrderFields{
		Model:        parts[0],
		Price:        parts[1],
		Address:      parts[2],
		ContactRaw:   parts[3],
		Phone:        phone,
		CustomerName: customer,
		Comment:      parts[4],
	}, nil
}

// NormalizePhone extracts the longest contiguous digit run of length >= 10
// from the contact text and canonicalizes it: a leading "8" or "7" is
// rewritten to the +7 country prefix, anything else gets the prefix added.
// The remaining non-digit text, trimmed, becomes the customer name. Without a
// long enough digit run the phone is empty and the whole contact text is the
// customer name.
func NormalizePhone(contact string) (phone, customerName string) {
	contact = strings.TrimSpace(contact)
	if contact == "" {
		return "", ""
	}

	locs := digitRunRe.FindAllStringIndex(contact, -1)
	best := -1
	for i, loc := range locs {
		if best < 0 || loc[1]-loc[0] > locs[best][1]-locs[best][0] {
			best = i
		}
	}
	if best < 0 || locs[best][1]-locs[best][0] < 10 {
		return "", contact
	}

	start, end := locs[best][0], locs[best][1]
	digits := contact[start:end]

	// Swallow the explicit "+" country indicator next to the run.
	if start > 0 && contact[start-1] == '+' {
		start--
	}

	switch {
	case strings.HasPrefix(digits, "8"):
		phone = "+7" + digits[1:]
	case strings.HasPrefix(digits, "7"):
		phone = "+7" + digits[1:]
	default:
		phone = "+7" + digits
	}

	rest := contact[:start] + " " + contact[end:]
	customerName = strings.Join(strings.Fields(rest), " ")
	return phone, customerName
}

var priceNumberRe = regexp.MustCompile(`^-?\d+(?:[.,]\d+)?$`)

// ParsePrice opportunistically interprets free-form price text as a decimal
// number. Currency markers and digit-grouping spaces are tolerated; anything
// else makes the price non-numeric. Non-numeric prices are legal order data,
// they are just excluded from revenue sums.
func ParsePrice(text string) (decimal.Decimal, bool) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', ' ', '₽', '$', '€':
			return -1
		}
		return r
	}, strings.TrimSpace(text))

	if !priceNumberRe.MatchString(cleaned) {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(cleaned, ",", "."))
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}
