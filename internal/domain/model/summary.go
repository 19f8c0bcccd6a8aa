package model

import "github.com/shopspring/decimal"

// Summary aggregates a set of orders for reporting. TotalRevenue covers only
// orders whose price text parsed as a number; Count covers all of them.
type Summary struct {
	Count        int
	TotalRevenue decimal.Decimal
	StatusCounts map[OrderStatus]int
}
