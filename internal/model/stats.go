package model

import "github.com/shopspring/decimal"

// CategoryTotal is the revenue attributed to one category.
type CategoryTotal struct {
	Name  Category `json:"name"`
	Total float64  `json:"total"`
}

// Stats is the dashboard summary derived from orders and history.
type Stats struct {
	TotalRevenue float64         `json:"totalRevenue"`
	TotalSales   int             `json:"totalSales"`
	Stats        []CategoryTotal `json:"stats"`
}

// ComputeStats derives revenue, sales count and per-category totals.
// Category totals come from line items and are not reconciled with order totals.
func ComputeStats(orders []Order) Stats {
	revenue := decimal.Zero
	byCategory := make(map[Category]decimal.Decimal, len(Categories))

	for _, o := range orders {
		revenue = revenue.Add(decimal.NewFromFloat(o.Total))
		for _, line := range o.Items {
			if !line.Category.Valid() {
				continue
			}
			byCategory[line.Category] = byCategory[line.Category].Add(LineSubtotal(line.Price, line.Quantity))
		}
	}

	breakdown := make([]CategoryTotal, len(Categories))
	for i, c := range Categories {
		breakdown[i] = CategoryTotal{Name: c, Total: byCategory[c].InexactFloat64()}
	}

	return Stats{
		TotalRevenue: revenue.InexactFloat64(),
		TotalSales:   len(orders),
		Stats:        breakdown,
	}
}
