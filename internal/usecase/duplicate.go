package usecase

import (
	"strings"

	"github.com/dch2rfzbnb-cmyk/nano-crm/internal/domain/model"
)

// FindDuplicate compares a candidate submission against the recent-order
// window, most recent first. A duplicate is declared when model, price text,
// address, and normalized phone all match after case folding and whitespace
// collapsing. Returns the matched order or nil.
func FindDuplicate(candidate model.OrderFields, recent []model.Order) *model.Order {
	cm := foldForMatch(candidate.Model)
	cp := foldForMatch(candidate.Price)
	ca := foldForMatch(candidate.Address)
	cph := foldForMatch(candidate.Phone)

	for i := range recent {
		o := &recent[i]
		if foldForMatch(o.Model) == cm &&
			foldForMatch(o.Price) == cp &&
			foldForMatch(o.Address) == ca &&
			foldForMatch(o.Phone) == cph {
			return o
		}
	}
	return nil
}

// foldForMatch lowercases (both alphabets) and collapses runs of whitespace.
func foldForMatch(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
